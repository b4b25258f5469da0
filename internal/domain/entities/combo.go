package entities

import "time"

// Combo represents a packaged trip combining transport and accommodation
type Combo struct {
	ID                string    `json:"id" db:"id"`
	Name              string    `json:"name" db:"name"`
	DepartureCityID   int       `json:"departure_city_id" db:"departure_city_id"`
	DestinationCityID int       `json:"destination_city_id" db:"destination_city_id"`
	Vehicle           string    `json:"vehicle" db:"vehicle"`
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
