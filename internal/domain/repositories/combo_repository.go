package repositories

import (
	"context"

	"github.com/wanderlane/travelbook/backend/internal/domain/entities"
)

// ComboFilter defines back-office listing filters
type ComboFilter struct {
	DepartureCityID   *int
	DestinationCityID *int
	Vehicle           string
	IsActive          *bool
	Limit             int
	Offset            int
}

// ComboSearchFilter carries the customer search criteria for combos
type ComboSearchFilter struct {
	PriceFrom         *float64 `json:"priceFrom"`
	PriceTo           *float64 `json:"priceTo"`
	DepartureCityID   *int     `json:"departureCityId"`
	DestinationCityID *int     `json:"destinationCityId"`
	Vehicle           *string  `json:"vehicle"`
	DepartureDate     *string  `json:"departureDate"`
}

// ComboSearchQuery is the body of POST /api/combos/search-for-customer
type ComboSearchQuery struct {
	PageIndex int               `json:"pageIndex"`
	PageSize  int               `json:"pageSize"`
	Filter    ComboSearchFilter `json:"filter"`
}

// ComboRepository defines combo persistence operations
type ComboRepository interface {
	Create(ctx context.Context, combo *entities.Combo) error
	GetByID(ctx context.Context, id string) (*entities.Combo, error)
	Update(ctx context.Context, combo *entities.Combo) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ComboFilter) ([]*entities.Combo, error)

	SearchForCustomer(ctx context.Context, query ComboSearchQuery) ([]entities.ComboSummary, int, error)
}
