package repositories

import (
	"context"

	"github.com/wanderlane/travelbook/backend/internal/domain/entities"
)

// AccommodationFilter defines back-office listing filters
type AccommodationFilter struct {
	CityID            *int
	AccommodationType string
	IsActive          *bool
	Limit             int
	Offset            int
}

// AccommodationSearchFilter carries the customer search criteria. Pointer
// fields distinguish "not filtered" from zero values, mirroring the null
// semantics of the front-end filter record.
type AccommodationSearchFilter struct {
	PriceFrom         *float64 `json:"priceFrom"`
	PriceTo           *float64 `json:"priceTo"`
	CityID            *int     `json:"cityId"`
	StarRating        *int     `json:"starRating"`
	AccommodationType *string  `json:"accommodationType"`
	CheckInDate       *string  `json:"checkInDate"`
	CheckOutDate      *string  `json:"checkOutDate"`
	NumOfAdult        *int     `json:"numOfAdult"`
	NumOfChild        *int     `json:"numOfChild"`
	NumOfRoom         *int     `json:"numOfRoom"`
}

// AccommodationSearchQuery is the body of POST /api/accommodations/search-for-customer
type AccommodationSearchQuery struct {
	PageIndex int                       `json:"pageIndex"`
	PageSize  int                       `json:"pageSize"`
	Filter    AccommodationSearchFilter `json:"filter"`
}

// AccommodationRepository defines accommodation persistence operations
type AccommodationRepository interface {
	Create(ctx context.Context, accommodation *entities.Accommodation) error
	GetByID(ctx context.Context, id string) (*entities.Accommodation, error)
	Update(ctx context.Context, accommodation *entities.Accommodation) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter AccommodationFilter) ([]*entities.Accommodation, error)

	// SearchForCustomer filters the whole active catalog first, then
	// paginates, returning the page plus the total matching count.
	SearchForCustomer(ctx context.Context, query AccommodationSearchQuery) ([]entities.AccommodationSummary, int, error)
}

// RoomTypeRepository defines room type persistence operations
type RoomTypeRepository interface {
	Create(ctx context.Context, roomType *entities.RoomType) error
	GetByID(ctx context.Context, id string) (*entities.RoomType, error)
	Update(ctx context.Context, roomType *entities.RoomType) error
	Delete(ctx context.Context, id string) error
	ListByAccommodation(ctx context.Context, accommodationID string) ([]*entities.RoomType, error)
}
