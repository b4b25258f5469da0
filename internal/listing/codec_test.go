package listing_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wanderlane/travelbook/backend/internal/listing"
)

func TestBuildURLParams_OmitsUnsetFields(t *testing.T) {
	filter := listing.Filter{
		"priceFrom":         float64(100),
		"priceTo":           nil,
		"accommodationType": "",
		"cityId":            float64(3),
	}

	values := listing.BuildURLParams(filter)

	assert.Equal(t, "100", values.Get("priceFrom"))
	assert.Equal(t, "3", values.Get("cityId"))
	assert.False(t, values.Has("priceTo"))
	assert.False(t, values.Has("accommodationType"))
}

func TestParseURLParams_SkipsReservedKeys(t *testing.T) {
	values, err := url.ParseQuery("cityId=3&page=2&pageSize=24&sort=priceDesc")
	assert.NoError(t, err)

	filter := listing.ParseURLParams(values)

	assert.Contains(t, filter, "cityId")
	assert.NotContains(t, filter, "page")
	assert.NotContains(t, filter, "pageSize")
	assert.NotContains(t, filter, "sort")
}

func TestParseURLParams_CoercesAllowListedKeysToNumbers(t *testing.T) {
	values, err := url.ParseQuery("cityId=3&starRating=4&checkInDate=2026-09-01&numOfAdult=2")
	assert.NoError(t, err)

	filter := listing.ParseURLParams(values)

	assert.Equal(t, float64(3), filter["cityId"])
	assert.Equal(t, float64(4), filter["starRating"])
	assert.Equal(t, float64(2), filter["numOfAdult"])
	assert.Equal(t, "2026-09-01", filter["checkInDate"])
}

func TestParseURLParams_UnknownKeysPassThroughAsStrings(t *testing.T) {
	values, err := url.ParseQuery("cityId=3&utm_source=newsletter")
	assert.NoError(t, err)

	filter := listing.ParseURLParams(values)

	assert.Equal(t, "newsletter", filter["utm_source"])
}

func TestRoundTrip_PopulatedFieldsSurvive(t *testing.T) {
	for _, typ := range []listing.Type{listing.TypeAccommodation, listing.TypeTour, listing.TypeCombo} {
		filter := listing.NewEmptyFilter(typ)
		filter["priceFrom"] = float64(250)
		filter["priceTo"] = float64(900)
		switch typ {
		case listing.TypeAccommodation:
			filter["cityId"] = float64(7)
			filter["checkInDate"] = "2026-09-10"
		case listing.TypeTour:
			filter["departureCityId"] = float64(1)
			filter["departureDate"] = "2026-10-01"
		case listing.TypeCombo:
			filter["vehicle"] = "plane"
		}

		parsed := listing.ParseURLParams(listing.BuildURLParams(filter))
		restored := listing.MergeWithDefaults(typ, parsed)

		assert.Equal(t, filter, restored, "round trip for %s", typ)
	}
}

func TestRoundTrip_NullFieldsResolveBackToNull(t *testing.T) {
	filter := listing.NewEmptyFilter(listing.TypeTour)

	parsed := listing.ParseURLParams(listing.BuildURLParams(filter))
	restored := listing.MergeWithDefaults(listing.TypeTour, parsed)

	assert.Nil(t, restored["priceFrom"])
	assert.Nil(t, restored["departureDate"])
	assert.Equal(t, filter, restored)
}

func TestNewEmptyFilter_UnrecognizedTypeGetsBaseFields(t *testing.T) {
	filter := listing.NewEmptyFilter(listing.Type("cruise"))

	assert.Len(t, filter, 2)
	assert.Contains(t, filter, "priceFrom")
	assert.Contains(t, filter, "priceTo")
}

func TestNewEmptyFilter_AccommodationOccupancyDefaults(t *testing.T) {
	filter := listing.NewEmptyFilter(listing.TypeAccommodation)

	assert.Equal(t, float64(1), filter["numOfAdult"])
	assert.Equal(t, float64(0), filter["numOfChild"])
	assert.Equal(t, float64(1), filter["numOfRoom"])
	assert.Nil(t, filter["cityId"])
}
