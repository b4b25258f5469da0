package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wanderlane/travelbook/backend/internal/api/handlers"
	"github.com/wanderlane/travelbook/backend/internal/domain/entities"
	"github.com/wanderlane/travelbook/backend/internal/domain/repositories"
	apperrors "github.com/wanderlane/travelbook/backend/pkg/errors"
)

type stubAccommodationSearcher struct {
	lastQuery repositories.AccommodationSearchQuery
	items     []entities.AccommodationSummary
	meta      entities.ResultMeta
	err       error
}

func (s *stubAccommodationSearcher) SearchForCustomer(ctx context.Context, query repositories.AccommodationSearchQuery) ([]entities.AccommodationSummary, entities.ResultMeta, error) {
	s.lastQuery = query
	return s.items, s.meta, s.err
}

func (s *stubAccommodationSearcher) Suggest(ctx context.Context, prefix string, limit int) ([]entities.AccommodationSummary, error) {
	return s.items, s.err
}

func TestAccommodationHandler_SearchForCustomer_Success(t *testing.T) {
	searcher := &stubAccommodationSearcher{
		items: []entities.AccommodationSummary{
			{ID: "acc-1", Name: "Seaside Inn", MinRoomTypePrice: 120},
		},
		meta: entities.ResultMeta{TotalCount: 1, Page: 2, PageSize: 12, TotalPages: 1},
	}
	handler := handlers.NewAccommodationHandler(searcher, nil)

	body := `{"pageIndex":2,"pageSize":12,"filter":{"cityId":3,"starRating":4}}`
	req := httptest.NewRequest("POST", "/api/accommodations/search-for-customer", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.SearchForCustomer(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, searcher.lastQuery.PageIndex)
	if assert.NotNil(t, searcher.lastQuery.Filter.CityID) {
		assert.Equal(t, 3, *searcher.lastQuery.Filter.CityID)
	}
	if assert.NotNil(t, searcher.lastQuery.Filter.StarRating) {
		assert.Equal(t, 4, *searcher.lastQuery.Filter.StarRating)
	}

	var response struct {
		Success bool `json:"success"`
		Data    struct {
			Accommodations []entities.AccommodationSummary `json:"accommodations"`
			Meta           entities.ResultMeta             `json:"meta"`
		} `json:"data"`
		Message string `json:"message"`
	}
	assert.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.True(t, response.Success)
	assert.Len(t, response.Data.Accommodations, 1)
	assert.Equal(t, 120.0, response.Data.Accommodations[0].MinRoomTypePrice)
	assert.Equal(t, 2, response.Data.Meta.Page)
}

func TestAccommodationHandler_SearchForCustomer_ValidationError(t *testing.T) {
	searcher := &stubAccommodationSearcher{
		err: apperrors.NewValidationError("priceFrom must not exceed priceTo"),
	}
	handler := handlers.NewAccommodationHandler(searcher, nil)

	body := `{"pageIndex":1,"filter":{"priceFrom":500,"priceTo":100}}`
	req := httptest.NewRequest("POST", "/api/accommodations/search-for-customer", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.SearchForCustomer(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, false, response["success"])
}

func TestAccommodationHandler_SearchForCustomer_InvalidBody(t *testing.T) {
	handler := handlers.NewAccommodationHandler(&stubAccommodationSearcher{}, nil)

	req := httptest.NewRequest("POST", "/api/accommodations/search-for-customer", strings.NewReader("{not json"))
	w := httptest.NewRecorder()

	handler.SearchForCustomer(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAccommodationHandler_SearchForCustomer_EmptyItemsStayArray(t *testing.T) {
	searcher := &stubAccommodationSearcher{
		meta: entities.ResultMeta{TotalCount: 0, Page: 1, PageSize: 12, TotalPages: 1},
	}
	handler := handlers.NewAccommodationHandler(searcher, nil)

	req := httptest.NewRequest("POST", "/api/accommodations/search-for-customer", strings.NewReader(`{"pageIndex":1}`))
	w := httptest.NewRecorder()

	handler.SearchForCustomer(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"accommodations":[]`)
}
