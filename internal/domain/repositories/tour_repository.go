package repositories

import (
	"context"

	"github.com/wanderlane/travelbook/backend/internal/domain/entities"
)

// TourFilter defines back-office listing filters
type TourFilter struct {
	DepartureCityID   *int
	DestinationCityID *int
	TourTypeID        *int
	TourCategoryID    *int
	IsActive          *bool
	Limit             int
	Offset            int
}

// TourSearchFilter carries the customer search criteria for tours
type TourSearchFilter struct {
	PriceFrom         *float64 `json:"priceFrom"`
	PriceTo           *float64 `json:"priceTo"`
	DepartureCityID   *int     `json:"departureCityId"`
	DestinationCityID *int     `json:"destinationCityId"`
	TourTypeID        *int     `json:"tourTypeId"`
	TourCategoryID    *int     `json:"tourCategoryId"`
	DepartureDate     *string  `json:"departureDate"`
}

// TourSearchQuery is the body of POST /api/tours/search-for-customer
type TourSearchQuery struct {
	PageIndex int              `json:"pageIndex"`
	PageSize  int              `json:"pageSize"`
	Filter    TourSearchFilter `json:"filter"`
}

// TourRepository defines tour persistence operations
type TourRepository interface {
	Create(ctx context.Context, tour *entities.Tour) error
	GetByID(ctx context.Context, id string) (*entities.Tour, error)
	Update(ctx context.Context, tour *entities.Tour) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter TourFilter) ([]*entities.Tour, error)

	SearchForCustomer(ctx context.Context, query TourSearchQuery) ([]entities.TourSummary, int, error)
}

// DepartureRepository defines departure persistence operations
type DepartureRepository interface {
	Create(ctx context.Context, departure *entities.Departure) error
	GetByID(ctx context.Context, id string) (*entities.Departure, error)
	Update(ctx context.Context, departure *entities.Departure) error
	Delete(ctx context.Context, id string) error
	ListByTour(ctx context.Context, tourID string) ([]*entities.Departure, error)
}
