package entities

// Customer-facing catalog projections. These are the wire shapes returned by
// the search-for-customer endpoints and consumed by the listing controller,
// so the JSON keys follow the front-end contract (camelCase) rather than the
// db column names.

// ResultMeta describes the pagination envelope of one search result page
type ResultMeta struct {
	TotalCount int `json:"totalCount"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
}

// AccommodationSummary is one accommodation card on the customer listing page
type AccommodationSummary struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	CityID            int     `json:"cityId"`
	StarRating        int     `json:"starRating"`
	AccommodationType string  `json:"accommodationType"`
	Rating            float64 `json:"rating"`
	AverageRating     float64 `json:"averageRating"`
	ReviewCount       int     `json:"reviewCount"`
	MinRoomTypePrice  float64 `json:"minRoomTypePrice"`
}

// TourSummary is one tour card on the customer listing page
type TourSummary struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	DepartureCityID   int     `json:"departureCityId"`
	DestinationCityID int     `json:"destinationCityId"`
	TourTypeID        int     `json:"tourTypeId"`
	TourCategoryID    int     `json:"tourCategoryId"`
	DurationDays      int     `json:"durationDays"`
	Rating            float64 `json:"rating"`
	AverageRating     float64 `json:"averageRating"`
	ReviewCount       int     `json:"reviewCount"`
	BasePriceAdult    float64 `json:"basePriceAdult"`
	NextDeparture     string  `json:"nextDeparture,omitempty"`
}

// ComboSummary is one combo card on the customer listing page
type ComboSummary struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	DepartureCityID   int     `json:"departureCityId"`
	DestinationCityID int     `json:"destinationCityId"`
	Vehicle           string  `json:"vehicle"`
	DurationDays      int     `json:"durationDays"`
	Rating            float64 `json:"rating"`
	AverageRating     float64 `json:"averageRating"`
	ReviewCount       int     `json:"reviewCount"`
	BasePriceAdult    float64 `json:"basePriceAdult"`
}

// SortPrice exposes the comparable price of an accommodation card
func (s AccommodationSummary) SortPrice() float64 { return s.MinRoomTypePrice }

// SortRating exposes the comparable rating, falling back to the average
func (s AccommodationSummary) SortRating() float64 {
	if s.Rating != 0 {
		return s.Rating
	}
	return s.AverageRating
}

// SortName exposes the comparable display name
func (s AccommodationSummary) SortName() string { return s.Name }

// SortPrice exposes the comparable price of a tour card
func (s TourSummary) SortPrice() float64 { return s.BasePriceAdult }

// SortRating exposes the comparable rating, falling back to the average
func (s TourSummary) SortRating() float64 {
	if s.Rating != 0 {
		return s.Rating
	}
	return s.AverageRating
}

// SortName exposes the comparable display name
func (s TourSummary) SortName() string { return s.Name }

// SortPrice exposes the comparable price of a combo card
func (s ComboSummary) SortPrice() float64 { return s.BasePriceAdult }

// SortRating exposes the comparable rating, falling back to the average
func (s ComboSummary) SortRating() float64 {
	if s.Rating != 0 {
		return s.Rating
	}
	return s.AverageRating
}

// SortName exposes the comparable display name
func (s ComboSummary) SortName() string { return s.Name }
