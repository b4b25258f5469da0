package listing

import (
	"fmt"
	"net/url"
	"strconv"
)

// Reserved query keys are owned by the controller, never by the filter.
const (
	ParamPage     = "page"
	ParamPageSize = "pageSize"
	ParamSort     = "sort"
)

var reservedKeys = map[string]struct{}{
	ParamPage:     {},
	ParamPageSize: {},
	ParamSort:     {},
}

// numericKeys is the allow-list of filter keys coerced to numbers when
// parsed from a URL. Everything else passes through as a string.
var numericKeys = map[string]struct{}{
	"priceFrom":         {},
	"priceTo":           {},
	"cityId":            {},
	"departureCityId":   {},
	"destinationCityId": {},
	"tourTypeId":        {},
	"tourCategoryId":    {},
	"starRating":        {},
	"vehicle":           {},
	"numOfAdult":        {},
	"numOfChild":        {},
	"numOfRoom":         {},
}

// BuildURLParams serializes a filter into query parameters. Fields holding
// nil or the empty string are omitted entirely, so absence in the URL
// round-trips back to "not filtered".
func BuildURLParams(filter Filter) url.Values {
	values := url.Values{}
	for key, raw := range filter {
		s, ok := paramString(raw)
		if !ok {
			continue
		}
		values.Set(key, s)
	}
	return values
}

// paramString converts a filter value to its query-string form. The false
// return marks values that must not be emitted.
func paramString(raw interface{}) (string, bool) {
	switch v := raw.(type) {
	case nil:
		return "", false
	case string:
		if v == "" {
			return "", false
		}
		return v, true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case int:
		return strconv.Itoa(v), true
	case bool:
		return strconv.FormatBool(v), true
	default:
		return fmt.Sprintf("%v", v), true
	}
}

// ParseURLParams extracts the filter portion of a query string. Reserved
// controller keys are skipped, allow-listed keys are coerced to numbers,
// and any other key passes through as a string so extra parameters flow
// into the filter unchanged.
func ParseURLParams(values url.Values) Filter {
	filter := Filter{}
	for key := range values {
		if _, reserved := reservedKeys[key]; reserved {
			continue
		}
		v := values.Get(key)
		if _, numeric := numericKeys[key]; numeric {
			if n, err := strconv.ParseFloat(v, 64); err == nil {
				filter[key] = n
				continue
			}
		}
		filter[key] = v
	}
	return filter
}

// parsePositiveInt reads an integer query parameter, falling back when the
// parameter is absent, malformed, or below 1.
func parsePositiveInt(values url.Values, key string, fallback int) int {
	raw := values.Get(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
