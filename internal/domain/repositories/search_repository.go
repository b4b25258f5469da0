package repositories

import (
	"context"

	"github.com/wanderlane/travelbook/backend/internal/domain/entities"
)

// CatalogSearchRepository defines the full-text catalog index used for the
// customer search box (autocomplete / free-text lookup). The structured
// listing filters stay in Postgres; this index only answers name queries.
type CatalogSearchRepository interface {
	InitSchema(ctx context.Context) error

	IndexAccommodation(ctx context.Context, accommodation *entities.Accommodation, minRoomTypePrice float64) error
	DeleteAccommodation(ctx context.Context, id string) error
	SuggestAccommodations(ctx context.Context, query string, limit int) ([]entities.AccommodationSummary, error)

	IndexTour(ctx context.Context, tour *entities.Tour) error
	DeleteTour(ctx context.Context, id string) error
	SuggestTours(ctx context.Context, query string, limit int) ([]entities.TourSummary, error)
}
