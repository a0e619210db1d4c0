package domain

import (
	"sort"
	"strings"
)

// PageSize is the fixed number of tools per result page.
const PageSize = 12

// Page is one page of a filtered, sorted catalog view.
type Page struct {
	Tools      []*Tool `json:"data"`
	Total      int     `json:"total"`
	Page       int     `json:"page"`
	TotalPages int     `json:"totalPages"`
}

// Query computes the filtered, sorted, paginated view of the catalog.
// It is pure: the input slice and the tools it points to are never
// mutated, and the same inputs always produce the same page.
func Query(tools []*Tool, state FilterState) Page {
	state = state.Normalize()

	filtered := Filter(tools, state)
	SortTools(filtered, state.Sort)

	total := len(filtered)
	totalPages := (total + PageSize - 1) / PageSize

	start := (state.Page - 1) * PageSize
	if start > total {
		start = total
	}
	end := start + PageSize
	if end > total {
		end = total
	}

	return Page{
		Tools:      filtered[start:end],
		Total:      total,
		Page:       state.Page,
		TotalPages: totalPages,
	}
}

// Filter returns the tools matching every dimension of state, preserving
// input order. The result is a fresh slice.
func Filter(tools []*Tool, state FilterState) []*Tool {
	out := make([]*Tool, 0, len(tools))
	for _, t := range tools {
		if state.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}

// SortTools orders tools in place according to the sort dimension:
// newest by DateAdded descending, popular by Popularity descending,
// alphabetical by folded name ascending. Ties keep their relative order
// so pagination stays stable across calls.
func SortTools(tools []*Tool, order string) {
	switch order {
	case SortPopular:
		sort.SliceStable(tools, func(i, j int) bool {
			return tools[i].Popularity > tools[j].Popularity
		})
	case SortAlphabetical:
		sort.SliceStable(tools, func(i, j int) bool {
			return lessFold(tools[i].Name, tools[j].Name)
		})
	default: // SortNewest
		sort.SliceStable(tools, func(i, j int) bool {
			return tools[i].DateAdded.After(tools[j].DateAdded)
		})
	}
}

// lessFold compares names case-insensitively first, falling back to the
// raw comparison only for names that fold equal. Mirrors how a locale
// compare treats "ChatGPT" vs "chatgpt".
func lessFold(a, b string) bool {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	if la != lb {
		return la < lb
	}
	return a < b
}
