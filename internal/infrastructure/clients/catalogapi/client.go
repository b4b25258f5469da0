// Package catalogapi is the HTTP client for the customer search endpoints.
// It adapts the REST contract onto the listing controller's Searcher
// interface, one searcher per catalog type.
package catalogapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/wanderlane/travelbook/backend/internal/domain/entities"
	"github.com/wanderlane/travelbook/backend/internal/listing"
	apperrors "github.com/wanderlane/travelbook/backend/pkg/errors"
	"github.com/wanderlane/travelbook/backend/pkg/retry"
)

// searchRetryConfig bounds transport retries well under the controller's
// patience. API-declared failures are never retried.
var searchRetryConfig = retry.Config{
	MaxAttempts:     2,
	InitialDelay:    200 * time.Millisecond,
	MaxDelay:        time.Second,
	BackoffFactor:   2.0,
	MaxTotalTimeout: 8 * time.Second,
}

// Client is the shared transport for the per-type searchers.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type searchRequest struct {
	PageIndex int            `json:"pageIndex"`
	PageSize  int            `json:"pageSize"`
	Filter    listing.Filter `json:"filter"`
}

type searchEnvelope struct {
	Success bool                       `json:"success"`
	Data    map[string]json.RawMessage `json:"data"`
	Message string                     `json:"message"`
}

// searchForCustomer posts one search and unpacks the enveloped response.
// The items array lives under a per-type key (accommodations/tours/combos).
func searchForCustomer[T any](ctx context.Context, c *Client, resource, itemsKey string, query listing.QueryState) ([]T, listing.ResultMeta, error) {
	payload, err := json.Marshal(searchRequest{
		PageIndex: query.PageIndex,
		PageSize:  query.PageSize,
		Filter:    query.Filter,
	})
	if err != nil {
		return nil, listing.ResultMeta{}, err
	}

	endpoint := fmt.Sprintf("%s/api/%s/search-for-customer", c.baseURL, resource)

	var items []T
	var meta listing.ResultMeta
	var apiErr error

	err = retry.Do(ctx, searchRetryConfig, func() error {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
		if err != nil {
			return err
		}
		httpReq.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(httpReq)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		var envelope searchEnvelope
		if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
			return apperrors.NewExternalError(fmt.Sprintf("catalog api returned status %d", resp.StatusCode), err)
		}
		if !envelope.Success {
			message := envelope.Message
			if message == "" {
				message = fmt.Sprintf("catalog api returned status %d", resp.StatusCode)
			}
			// A declared failure is an answer, not a flaky transport.
			apiErr = apperrors.NewExternalError(message, nil)
			return nil
		}

		if raw, ok := envelope.Data[itemsKey]; ok {
			if err := json.Unmarshal(raw, &items); err != nil {
				return err
			}
		}
		if raw, ok := envelope.Data["meta"]; ok {
			if err := json.Unmarshal(raw, &meta); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, listing.ResultMeta{}, err
	}
	if apiErr != nil {
		return nil, listing.ResultMeta{}, apiErr
	}
	return items, meta, nil
}

// AccommodationSearcher implements listing.Searcher for accommodations.
type AccommodationSearcher struct {
	client *Client
}

func NewAccommodationSearcher(client *Client) *AccommodationSearcher {
	return &AccommodationSearcher{client: client}
}

func (s *AccommodationSearcher) Search(ctx context.Context, query listing.QueryState) ([]entities.AccommodationSummary, listing.ResultMeta, error) {
	return searchForCustomer[entities.AccommodationSummary](ctx, s.client, "accommodations", "accommodations", query)
}

// TourSearcher implements listing.Searcher for tours.
type TourSearcher struct {
	client *Client
}

func NewTourSearcher(client *Client) *TourSearcher {
	return &TourSearcher{client: client}
}

func (s *TourSearcher) Search(ctx context.Context, query listing.QueryState) ([]entities.TourSummary, listing.ResultMeta, error) {
	return searchForCustomer[entities.TourSummary](ctx, s.client, "tours", "tours", query)
}

// ComboSearcher implements listing.Searcher for combos.
type ComboSearcher struct {
	client *Client
}

func NewComboSearcher(client *Client) *ComboSearcher {
	return &ComboSearcher{client: client}
}

func (s *ComboSearcher) Search(ctx context.Context, query listing.QueryState) ([]entities.ComboSummary, listing.ResultMeta, error) {
	return searchForCustomer[entities.ComboSummary](ctx, s.client, "combos", "combos", query)
}

var (
	_ listing.Searcher[entities.AccommodationSummary] = (*AccommodationSearcher)(nil)
	_ listing.Searcher[entities.TourSummary]          = (*TourSearcher)(nil)
	_ listing.Searcher[entities.ComboSummary]         = (*ComboSearcher)(nil)
)
