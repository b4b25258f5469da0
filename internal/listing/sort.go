package listing

import (
	"sort"
	"strings"
)

// SortOption is a client-side view transform. It is written to the URL for
// shareable links but never sent to the search backend.
type SortOption string

const (
	SortNone      SortOption = ""
	SortPriceAsc  SortOption = "priceAsc"
	SortPriceDesc SortOption = "priceDesc"
	SortRating    SortOption = "rating"
	SortName      SortOption = "name"
)

// ParseSortOption maps a raw URL value onto a known sort option.
// Unrecognized values behave as no sort.
func ParseSortOption(raw string) SortOption {
	switch SortOption(raw) {
	case SortPriceAsc, SortPriceDesc, SortRating, SortName:
		return SortOption(raw)
	default:
		return SortNone
	}
}

// Sortable exposes the normalized sort keys of a listing item. Each catalog
// item type maps its own price and rating fields onto this capability, with
// missing values reported as 0 (or "" for the name).
type Sortable interface {
	SortPrice() float64
	SortRating() float64
	SortName() string
}

// SortItems reorders items in place for a sort option. The sort is stable:
// items with equal keys keep their fetched relative order. An unrecognized
// or empty option leaves the slice untouched.
func SortItems[T Sortable](items []T, opt SortOption) {
	switch opt {
	case SortPriceAsc:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].SortPrice() < items[j].SortPrice()
		})
	case SortPriceDesc:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].SortPrice() > items[j].SortPrice()
		})
	case SortRating:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].SortRating() > items[j].SortRating()
		})
	case SortName:
		sort.SliceStable(items, func(i, j int) bool {
			return strings.ToLower(items[i].SortName()) < strings.ToLower(items[j].SortName())
		})
	}
}
