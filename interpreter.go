package animalloo

import (
	"context"
	"strings"
)

// Ensure RuleInterpreter implements Interpreter at compile time.
var _ Interpreter = (*RuleInterpreter)(nil)

// RuleInterpreter interprets queries with fixed keyword-to-category rules.
// It needs no external collaborator and is fully deterministic, which makes
// it the interpreter of choice for offline operation and tests.
type RuleInterpreter struct{}

// NewRuleInterpreter creates a new RuleInterpreter.
func NewRuleInterpreter() *RuleInterpreter {
	return &RuleInterpreter{}
}

// interpretation rule terms. Substring matches against the raw query.
var (
	hospitalTerms  = []string{"병원", "hospital"}
	overnightTerms = []string{"24시", "야간"}
	pharmacyTerms  = []string{"약국", "pharmacy"}
	diningTerms    = []string{"밥", "식당", "카페"}
)

// overnightKeyword propagates as the keyword for hospital queries that carry
// an overnight qualifier.
const overnightKeyword = "24시"

// Interpret maps the query onto a SearchFilter using the rule table. A query
// matching no rule degrades to keyword-only matching at the default radius.
func (i *RuleInterpreter) Interpret(_ context.Context, query string) SearchFilter {
	switch {
	case containsAny(query, hospitalTerms):
		f := SearchFilter{
			Categories: []Category{CategoryHospital},
			RadiusKm:   DefaultRadiusKm,
		}
		if containsAny(query, overnightTerms) {
			kw := overnightKeyword
			f.Keyword = &kw
		}
		return f

	case containsAny(query, pharmacyTerms):
		return SearchFilter{
			Categories: []Category{CategoryPharmacy},
			RadiusKm:   DefaultRadiusKm,
		}

	case containsAny(query, diningTerms):
		return SearchFilter{
			Categories: []Category{CategoryRestaurant, CategoryCafe},
			RadiusKm:   2.0,
		}

	default:
		return SearchFilter{
			Categories: nil,
			RadiusKm:   DefaultRadiusKm,
			Keyword:    optionalKeyword(query),
		}
	}
}

func containsAny(s string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}
