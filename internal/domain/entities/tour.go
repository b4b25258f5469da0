package entities

import "time"

// Tour represents a guided tour product
type Tour struct {
	ID                string    `json:"id" db:"id"`
	Name              string    `json:"name" db:"name"`
	DepartureCityID   int       `json:"departure_city_id" db:"departure_city_id"`
	DestinationCityID int       `json:"destination_city_id" db:"destination_city_id"`
	TourTypeID        int       `json:"tour_type_id" db:"tour_type_id"`
	TourCategoryID    int       `json:"tour_category_id" db:"tour_category_id"`
	BasePriceAdult    float64   `json:"base_price_adult" db:"base_price_adult"`
	BasePriceChild    float64   `json:"base_price_child" db:"base_price_child"`
	DurationDays      int       `json:"duration_days" db:"duration_days"`
	Description       string    `json:"description" db:"description"`
	Rating            float64   `json:"rating" db:"rating"`
	ReviewCount       int       `json:"review_count" db:"review_count"`
	IsActive          bool      `json:"is_active" db:"is_active"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time `json:"updated_at" db:"updated_at"`
}

// DepartureStatus enumerates departure lifecycle states
type DepartureStatus string

const (
	DepartureStatusScheduled DepartureStatus = "scheduled"
	DepartureStatusClosed    DepartureStatus = "closed"
	DepartureStatusCancelled DepartureStatus = "cancelled"
)

// Departure represents one scheduled run of a tour
type Departure struct {
	ID            string          `json:"id" db:"id"`
	TourID        string          `json:"tour_id" db:"tour_id"`
	DepartureDate time.Time       `json:"departure_date" db:"departure_date"`
	SeatsTotal    int             `json:"seats_total" db:"seats_total"`
	SeatsLeft     int             `json:"seats_left" db:"seats_left"`
	Status        DepartureStatus `json:"status" db:"status"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at" db:"updated_at"`
}
