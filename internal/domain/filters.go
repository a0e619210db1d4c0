package domain

import "strings"

// Filter dimension values. "All" is the wildcard for every dimension.
const (
	FilterAll = "All"

	PricingFree     = "Free"
	PricingPaid     = "Paid"
	PricingFreemium = "Freemium"

	PopularityTrending = "Trending" // popularity >= 95
	PopularityPopular  = "Popular"  // 90 <= popularity < 95
	PopularityRising   = "Rising"   // 85 <= popularity < 90

	SortNewest       = "newest"
	SortPopular      = "popular"
	SortAlphabetical = "alphabetical"
)

// FilterState holds the five filter dimensions plus sort and page.
// The zero value is not valid; use DefaultFilters.
type FilterState struct {
	SearchTerm string
	Category   string
	Pricing    string
	Popularity string
	Sort       string
	Page       int
}

// DefaultFilters returns the all-defaults state: no constraints, newest
// first, page 1.
func DefaultFilters() FilterState {
	return FilterState{
		Category:   FilterAll,
		Pricing:    FilterAll,
		Popularity: FilterAll,
		Sort:       SortNewest,
		Page:       1,
	}
}

// IsDefault reports whether s equals the all-defaults state.
func (s FilterState) IsDefault() bool {
	return s == DefaultFilters()
}

// With returns a copy of s with fn applied and the page reset to 1.
// Any change to a filter or sort dimension invalidates the current page,
// so every mutation goes through here.
func (s FilterState) With(fn func(*FilterState)) FilterState {
	fn(&s)
	s.Page = 1
	return s
}

// WithPage returns a copy of s on the given page, dimensions untouched.
func (s FilterState) WithPage(page int) FilterState {
	s.Page = page
	return s
}

// Normalize replaces empty or unknown dimension values with their defaults
// and clamps the page to >= 1. Unknown values come from hand-edited URLs.
func (s FilterState) Normalize() FilterState {
	if s.Category == "" {
		s.Category = FilterAll
	}
	switch s.Pricing {
	case FilterAll, PricingFree, PricingPaid, PricingFreemium:
	default:
		s.Pricing = FilterAll
	}
	switch s.Popularity {
	case FilterAll, PopularityTrending, PopularityPopular, PopularityRising:
	default:
		s.Popularity = FilterAll
	}
	switch s.Sort {
	case SortNewest, SortPopular, SortAlphabetical:
	default:
		s.Sort = SortNewest
	}
	if s.Page < 1 {
		s.Page = 1
	}
	return s
}

// Matches reports whether the tool satisfies every dimension of s.
// The dimensions are independent; a tool matches iff ALL of them match.
func (s FilterState) Matches(t *Tool) bool {
	return matchesSearch(t, s.SearchTerm) &&
		matchesCategory(t, s.Category) &&
		MatchesPricing(t.Pricing, s.Pricing) &&
		MatchesPopularity(t.Popularity, s.Popularity)
}

// matchesSearch is a case-insensitive substring test against the tool's
// name, category, description, and feature names. An empty term matches.
func matchesSearch(t *Tool, term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	if strings.Contains(strings.ToLower(t.Name), term) ||
		strings.Contains(strings.ToLower(t.Category), term) ||
		strings.Contains(strings.ToLower(t.Description), term) {
		return true
	}
	for _, f := range t.Features {
		if strings.Contains(strings.ToLower(f.Name), term) {
			return true
		}
	}
	return false
}

func matchesCategory(t *Tool, category string) bool {
	return category == FilterAll || t.Category == category
}

// MatchesPricing tests the free-text pricing label against a tier.
//
// A label containing both "free" and "paid" is Freemium and deliberately
// does NOT satisfy the Free tier. Labels are expected to be curated; the
// catalog loader warns about ambiguous ones.
func MatchesPricing(label, tier string) bool {
	if tier == FilterAll {
		return true
	}
	l := strings.ToLower(label)
	hasFree := strings.Contains(l, "free")
	hasPaid := strings.Contains(l, "paid")

	switch tier {
	case PricingFree:
		return hasFree && !hasPaid
	case PricingPaid:
		return hasPaid ||
			strings.Contains(l, "premium") ||
			strings.Contains(l, "pro") ||
			strings.Contains(l, "plus")
	case PricingFreemium:
		return hasFree && hasPaid
	}
	return false
}

// MatchesPopularity tests the integer score against a named bracket.
func MatchesPopularity(score int, bracket string) bool {
	switch bracket {
	case FilterAll:
		return true
	case PopularityTrending:
		return score >= 95
	case PopularityPopular:
		return score >= 90 && score < 95
	case PopularityRising:
		return score >= 85 && score < 90
	}
	return false
}
