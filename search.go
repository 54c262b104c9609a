package animalloo

import "context"

// Radius constants in kilometers.
//
// DefaultRadiusKm is the radius an interpreter recommends when the query
// carries no distance phrasing. FallbackRadiusKm is deliberately wider: when
// interpretation fails the category restriction is lost, and a larger radius
// compensates for the lost precision.
const (
	DefaultRadiusKm  = 3.0
	FallbackRadiusKm = 5.0
)

// SearchFilter is the structured result of query interpretation: the
// categories to match, the search radius, and an optional free-text keyword
// for qualifiers not covered by category selection. Constructed once per
// query, immutable, consumed exactly once by the search engine.
//
// Invariants: RadiusKm > 0, and every category belongs to the vocabulary.
type SearchFilter struct {
	Categories []Category `json:"categories"`
	RadiusKm   float64    `json:"radiusKm"`
	Keyword    *string    `json:"keyword"`
}

// Interpreter converts a raw text query into a SearchFilter. Interpret is
// total: every failure path resolves to a usable fallback filter rather than
// propagating, because a search that returns zero results due to a transient
// interpretation failure is worse than an approximate keyword-only result.
type Interpreter interface {
	Interpret(ctx context.Context, query string) SearchFilter
}

// FallbackFilter returns the filter used when interpretation is unavailable
// or fails: no category restriction, a widened radius, and the raw query as
// the keyword so the search degrades to pure keyword matching.
func FallbackFilter(query string) SearchFilter {
	return SearchFilter{
		Categories: nil,
		RadiusKm:   FallbackRadiusKm,
		Keyword:    optionalKeyword(query),
	}
}

// optionalKeyword returns nil for an empty string.
func optionalKeyword(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
