package catalogapi_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wanderlane/travelbook/backend/internal/infrastructure/clients/catalogapi"
	"github.com/wanderlane/travelbook/backend/internal/listing"
	apperrors "github.com/wanderlane/travelbook/backend/pkg/errors"
)

func TestAccommodationSearcher_Search(t *testing.T) {
	var gotBody map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/api/accommodations/search-for-customer", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"success": true,
			"data": {
				"accommodations": [
					{"id": "acc-1", "name": "Seaside Inn", "minRoomTypePrice": 120, "rating": 4.2}
				],
				"meta": {"totalCount": 1, "page": 2, "pageSize": 12, "totalPages": 1}
			},
			"message": "search completed"
		}`))
	}))
	defer server.Close()

	searcher := catalogapi.NewAccommodationSearcher(catalogapi.NewClient(server.URL))
	query := listing.QueryState{
		PageIndex: 2,
		PageSize:  12,
		Filter:    listing.Filter{"cityId": float64(3), "priceFrom": nil},
	}

	items, meta, err := searcher.Search(context.Background(), query)

	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, "Seaside Inn", items[0].Name)
	assert.Equal(t, 120.0, items[0].SortPrice())
	assert.Equal(t, 2, meta.Page)
	assert.Equal(t, float64(2), gotBody["pageIndex"])
	filter := gotBody["filter"].(map[string]interface{})
	assert.Equal(t, float64(3), filter["cityId"])
	assert.Nil(t, filter["priceFrom"])
}

func TestTourSearcher_DeclaredFailureBecomesExternalError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"success": false, "data": {}, "message": "departure date out of range"}`))
	}))
	defer server.Close()

	searcher := catalogapi.NewTourSearcher(catalogapi.NewClient(server.URL))

	_, _, err := searcher.Search(context.Background(), listing.QueryState{PageIndex: 1, PageSize: 12, Filter: listing.Filter{}})

	assert.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeExternal))
	assert.Contains(t, err.Error(), "departure date out of range")
}

func TestComboSearcher_CancelledContextAborts(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Drain the body so the server notices the client going away.
		_, _ = io.Copy(io.Discard, r.Body)
		close(started)
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))
	t.Cleanup(server.Close)
	t.Cleanup(func() { close(release) })

	searcher := catalogapi.NewComboSearcher(catalogapi.NewClient(server.URL))
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()

	_, _, err := searcher.Search(ctx, listing.QueryState{PageIndex: 1, PageSize: 12, Filter: listing.Filter{}})

	assert.ErrorIs(t, err, context.Canceled)
}
