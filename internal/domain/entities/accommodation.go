package entities

import "time"

// Accommodation represents a bookable property in the catalog
type Accommodation struct {
	ID                string    `json:"id" db:"id"`
	Name              string    `json:"name" db:"name"`
	CityID            int       `json:"city_id" db:"city_id"`
	StarRating        int       `json:"star_rating" db:"star_rating"`
	AccommodationType string    `json:"accommodation_type" db:"accommodation_type"`
	Description       string    `json:"description" db:"description"`
	Address           string    `json:"address" db:"address"`
	Rating            float64   `json:"rating" db:"rating"`
	ReviewCount       int       `json:"review_count" db:"review_count"`
	IsActive          bool      `json:"is_active" db:"is_active"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time `json:"updated_at" db:"updated_at"`
}

// RoomType represents one sellable room category of an accommodation
type RoomType struct {
	ID              string    `json:"id" db:"id"`
	AccommodationID string    `json:"accommodation_id" db:"accommodation_id"`
	Name            string    `json:"name" db:"name"`
	PricePerNight   float64   `json:"price_per_night" db:"price_per_night"`
	CapacityAdult   int       `json:"capacity_adult" db:"capacity_adult"`
	CapacityChild   int       `json:"capacity_child" db:"capacity_child"`
	TotalRooms      int       `json:"total_rooms" db:"total_rooms"`
	IsActive        bool      `json:"is_active" db:"is_active"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}
