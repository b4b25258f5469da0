// Package listing implements the query synchronization core shared by the
// customer catalog pages: a filter model per listing type, a bidirectional
// URL codec, client-side sorting, and a controller that reconciles URL
// state, search dispatch, and pagination.
package listing

// Type identifies which catalog a listing page shows.
type Type string

const (
	TypeAccommodation Type = "accommodation"
	TypeTour          Type = "tour"
	TypeCombo         Type = "combo"
)

// Filter is a filter-field-name to value mapping. Every field a listing
// type understands is always present; unset fields hold nil so the URL
// codec can distinguish "no filter" from a zero value.
type Filter map[string]interface{}

// NewEmptyFilter returns the default filter record for a listing type.
// Unrecognized types get only the common price range fields.
func NewEmptyFilter(t Type) Filter {
	f := Filter{
		"priceFrom": nil,
		"priceTo":   nil,
	}
	switch t {
	case TypeAccommodation:
		f["cityId"] = nil
		f["starRating"] = nil
		f["accommodationType"] = nil
		f["checkInDate"] = nil
		f["checkOutDate"] = nil
		f["numOfAdult"] = float64(1)
		f["numOfChild"] = float64(0)
		f["numOfRoom"] = float64(1)
	case TypeTour:
		f["departureCityId"] = nil
		f["destinationCityId"] = nil
		f["tourTypeId"] = nil
		f["tourCategoryId"] = nil
		f["departureDate"] = nil
	case TypeCombo:
		f["departureCityId"] = nil
		f["destinationCityId"] = nil
		f["vehicle"] = nil
		f["departureDate"] = nil
	}
	return f
}

// Clone returns a shallow copy. Filter values are scalars, so a shallow
// copy is a full copy.
func (f Filter) Clone() Filter {
	out := make(Filter, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// Merge returns a copy of f with every entry of overlay applied on top.
func (f Filter) Merge(overlay Filter) Filter {
	out := f.Clone()
	for k, v := range overlay {
		out[k] = v
	}
	return out
}

// MergeWithDefaults lays a partial filter over the full default record for
// a type, so fields absent from the partial resolve to their defaults.
func MergeWithDefaults(t Type, partial Filter) Filter {
	return NewEmptyFilter(t).Merge(partial)
}
