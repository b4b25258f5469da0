package listing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wanderlane/travelbook/backend/internal/listing"
)

type cardItem struct {
	Name   string
	Price  float64
	Rating float64
}

func (c cardItem) SortPrice() float64  { return c.Price }
func (c cardItem) SortRating() float64 { return c.Rating }
func (c cardItem) SortName() string    { return c.Name }

func TestSortItems_PriceAscIsStable(t *testing.T) {
	items := []cardItem{
		{Name: "B", Price: 10},
		{Name: "A", Price: 10},
		{Name: "A", Price: 5},
	}

	listing.SortItems(items, listing.SortPriceAsc)

	// Equal prices keep their original relative order.
	assert.Equal(t, []cardItem{
		{Name: "A", Price: 5},
		{Name: "B", Price: 10},
		{Name: "A", Price: 10},
	}, items)
}

func TestSortItems_PriceDesc(t *testing.T) {
	items := []cardItem{
		{Name: "cheap", Price: 50},
		{Name: "mid", Price: 120},
		{Name: "top", Price: 400},
	}

	listing.SortItems(items, listing.SortPriceDesc)

	assert.Equal(t, "top", items[0].Name)
	assert.Equal(t, "cheap", items[2].Name)
}

func TestSortItems_RatingDescendingMissingAsZero(t *testing.T) {
	items := []cardItem{
		{Name: "unrated"},
		{Name: "good", Rating: 4.5},
		{Name: "ok", Rating: 3.1},
	}

	listing.SortItems(items, listing.SortRating)

	assert.Equal(t, []string{"good", "ok", "unrated"}, []string{items[0].Name, items[1].Name, items[2].Name})
}

func TestSortItems_NameIsCaseInsensitive(t *testing.T) {
	items := []cardItem{
		{Name: "brussels hostel"},
		{Name: "Amsterdam Inn"},
		{Name: "antwerp Lodge"},
	}

	listing.SortItems(items, listing.SortName)

	assert.Equal(t, "Amsterdam Inn", items[0].Name)
	assert.Equal(t, "antwerp Lodge", items[1].Name)
	assert.Equal(t, "brussels hostel", items[2].Name)
}

func TestSortItems_NoOptionLeavesOrderAlone(t *testing.T) {
	items := []cardItem{{Name: "z"}, {Name: "a"}}

	listing.SortItems(items, listing.SortNone)

	assert.Equal(t, "z", items[0].Name)
}

func TestParseSortOption_UnrecognizedBecomesNone(t *testing.T) {
	assert.Equal(t, listing.SortNone, listing.ParseSortOption("distance"))
	assert.Equal(t, listing.SortPriceDesc, listing.ParseSortOption("priceDesc"))
}
