package search

import (
	"sort"
	"time"
)

// Category identifies one of the searchable domains.
type Category string

const (
	CategoryProperty  Category = "property"
	CategoryPerson    Category = "person"
	CategoryTransfer  Category = "transfer"
	CategoryReference Category = "reference"
)

// AllCategories returns every category in declaration order. This order is
// also the tie-break order for equal-score results in the flat list.
func AllCategories() []Category {
	return []Category{CategoryProperty, CategoryPerson, CategoryTransfer, CategoryReference}
}

// Label returns the display name for the category.
func (c Category) Label() string {
	switch c {
	case CategoryProperty:
		return "Property"
	case CategoryPerson:
		return "Person"
	case CategoryTransfer:
		return "Transfer"
	case CategoryReference:
		return "Reference Item"
	default:
		return string(c)
	}
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryProperty, CategoryPerson, CategoryTransfer, CategoryReference:
		return true
	}
	return false
}

// Field is a single (icon hint, value) metadata pair attached to a result.
// The order of fields on a result is meaningful and preserved.
type Field struct {
	Icon  string `json:"icon"`
	Value string `json:"value"`
}

// Result is a normalized search hit from exactly one category.
//
// IDs are minted at normalization time and are not stable across searches.
// Score is only meaningful for ordering results within the same search.
type Result struct {
	ID       string   `json:"id"`
	Category Category `json:"category"`
	Title    string   `json:"title"`
	Subtitle string   `json:"subtitle,omitempty"`
	Metadata []Field  `json:"metadata,omitempty"`
	Score    float64  `json:"score"`
}

// Group is one category's slice of a result set, used for the grouped view.
type Group struct {
	Category Category `json:"category"`
	Label    string   `json:"label"`
	Results  []Result `json:"results"`
}

// Results is the outcome of a single aggregated search.
type Results struct {
	// Query is the text this search ran for.
	Query string `json:"query"`

	// Generation identifies which search invocation produced this batch.
	// Consumers must drop batches whose generation is stale.
	Generation uint64 `json:"generation"`

	// Hits is the flat list, sorted by score descending. Ties keep category
	// declaration order, then server-return order.
	Hits []Result `json:"hits"`

	// Failed lists categories whose fetch failed. A failed category simply
	// contributes no hits; it never fails the search.
	Failed []Category `json:"failed,omitempty"`

	// Elapsed is how long the fan-out and merge took.
	Elapsed time.Duration `json:"elapsed"`
}

// Groups partitions the flat list into per-category groups ordered
// alphabetically by label. Within each group results keep their relevance
// order. Categories with no hits produce no group.
//
// The grouped view deliberately uses a different ordering than Hits: the
// flat list is relevance-first, the grouped view is label-first.
func (r *Results) Groups() []Group {
	byCategory := make(map[Category][]Result)
	for _, hit := range r.Hits {
		byCategory[hit.Category] = append(byCategory[hit.Category], hit)
	}

	groups := make([]Group, 0, len(byCategory))
	for cat, results := range byCategory {
		groups = append(groups, Group{
			Category: cat,
			Label:    cat.Label(),
			Results:  results,
		})
	}

	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Label < groups[j].Label
	})
	return groups
}
