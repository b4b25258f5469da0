package services

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/wanderlane/travelbook/backend/internal/domain/entities"
	apperrors "github.com/wanderlane/travelbook/backend/pkg/errors"
)

// searchCacheTTLSeconds bounds how stale a cached customer search page may be.
const searchCacheTTLSeconds = 60

// newResultMeta computes the pagination envelope for one result page.
// totalPages is never below 1 so an empty result still renders page 1 of 1.
func newResultMeta(totalCount, page, pageSize int) entities.ResultMeta {
	totalPages := (totalCount + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	return entities.ResultMeta{
		TotalCount: totalCount,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}

// searchCacheKey derives a stable cache key from the full query body
func searchCacheKey(listingType string, query interface{}) string {
	payload, err := json.Marshal(query)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(payload)
	return "search:" + listingType + ":" + hex.EncodeToString(sum[:8])
}

// normalizePaging applies defaults and caps to the requested page window
func normalizePaging(pageIndex, pageSize, defaultPageSize, maxPageSize int) (int, int, error) {
	if pageIndex == 0 {
		pageIndex = 1
	}
	if pageIndex < 1 {
		return 0, 0, apperrors.NewValidationError("pageIndex must be at least 1")
	}
	if pageSize == 0 {
		pageSize = defaultPageSize
	}
	if pageSize < 1 {
		return 0, 0, apperrors.NewValidationError("pageSize must be positive")
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return pageIndex, pageSize, nil
}

// validatePriceRange rejects inverted price windows before any query runs
func validatePriceRange(priceFrom, priceTo *float64) error {
	if priceFrom != nil && priceTo != nil && *priceFrom > *priceTo {
		return apperrors.NewValidationError("priceFrom must not exceed priceTo")
	}
	return nil
}

// validateStayDates checks the check-in/check-out window. The dates are
// validated and carried through the query but do not restrict results:
// there is no availability model to match them against yet.
func validateStayDates(checkIn, checkOut *string) error {
	var in, out time.Time
	if checkIn != nil {
		parsed, err := time.Parse("2006-01-02", *checkIn)
		if err != nil {
			return apperrors.NewValidationError("checkInDate must be a YYYY-MM-DD date")
		}
		in = parsed
	}
	if checkOut != nil {
		parsed, err := time.Parse("2006-01-02", *checkOut)
		if err != nil {
			return apperrors.NewValidationError("checkOutDate must be a YYYY-MM-DD date")
		}
		out = parsed
	}
	if checkIn != nil && checkOut != nil && !out.After(in) {
		return apperrors.NewValidationError("checkOutDate must be after checkInDate")
	}
	return nil
}
