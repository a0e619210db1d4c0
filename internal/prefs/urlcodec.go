package prefs

import (
	"net/url"
	"strconv"

	"github.com/tooldex/tooldex/internal/domain"
)

// Query parameter names. Short and lowercase so shared links stay tidy.
const (
	ParamSearch     = "q"
	ParamCategory   = "category"
	ParamPricing    = "pricing"
	ParamPopularity = "popularity"
	ParamSort       = "sort"
	ParamPage       = "page"
)

// Encode renders s as query values, omitting every dimension that sits at
// its default so the all-defaults state encodes to an empty string.
func Encode(s domain.FilterState) url.Values {
	s = s.Normalize()
	v := url.Values{}

	if s.SearchTerm != "" {
		v.Set(ParamSearch, s.SearchTerm)
	}
	if s.Category != domain.FilterAll {
		v.Set(ParamCategory, s.Category)
	}
	if s.Pricing != domain.FilterAll {
		v.Set(ParamPricing, s.Pricing)
	}
	if s.Popularity != domain.FilterAll {
		v.Set(ParamPopularity, s.Popularity)
	}
	if s.Sort != domain.SortNewest {
		v.Set(ParamSort, s.Sort)
	}
	if s.Page > 1 {
		v.Set(ParamPage, strconv.Itoa(s.Page))
	}
	return v
}

// Decode parses query values into a state. The second return reports
// whether any filter parameter was present at all; hand-edited junk values
// normalize to defaults rather than erroring.
func Decode(query map[string][]string) (domain.FilterState, bool) {
	s := domain.DefaultFilters()
	found := false

	get := func(name string) (string, bool) {
		vals, ok := query[name]
		if !ok || len(vals) == 0 {
			return "", false
		}
		return vals[0], true
	}

	if v, ok := get(ParamSearch); ok {
		s.SearchTerm = v
		found = true
	}
	if v, ok := get(ParamCategory); ok {
		s.Category = v
		found = true
	}
	if v, ok := get(ParamPricing); ok {
		s.Pricing = v
		found = true
	}
	if v, ok := get(ParamPopularity); ok {
		s.Popularity = v
		found = true
	}
	if v, ok := get(ParamSort); ok {
		s.Sort = v
		found = true
	}
	if v, ok := get(ParamPage); ok {
		if page, err := strconv.Atoi(v); err == nil {
			s.Page = page
		}
		found = true
	}
	return s.Normalize(), found
}
