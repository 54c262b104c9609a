package search

import (
	"context"

	"github.com/animalloo/animalloo"
)

// Service is the outward boundary of the search core. It validates caller
// input before any interpreter or catalog work, and returns empty result
// slices (never errors) when nothing matches.
type Service struct {
	interpreter animalloo.Interpreter
	facilities  animalloo.FacilityService
	engine      *Engine
}

// NewService creates a new Service.
func NewService(interpreter animalloo.Interpreter, facilities animalloo.FacilityService) *Service {
	return &Service{
		interpreter: interpreter,
		facilities:  facilities,
		engine:      NewEngine(facilities),
	}
}

// Search interprets the raw query and runs a proximity search around origin.
// Returns EINVALID if the query is empty. Interpretation never fails: a
// degraded interpreter yields the keyword-only fallback filter.
func (s *Service) Search(ctx context.Context, query string, origin animalloo.GeoPoint) ([]*animalloo.DistancedFacility, error) {
	if query == "" {
		return nil, animalloo.Errorf(animalloo.EINVALID, "query required")
	}

	filter := s.interpreter.Interpret(ctx, query)
	return s.engine.Search(ctx, origin, filter)
}

// FilterByDistrict lists facilities in the exactly-named district, optionally
// restricted to a category set. No distance is computed on this path.
// Returns EINVALID for an empty district or an out-of-vocabulary category.
func (s *Service) FilterByDistrict(ctx context.Context, district string, categories []animalloo.Category) ([]*animalloo.Facility, error) {
	if district == "" {
		return nil, animalloo.Errorf(animalloo.EINVALID, "district required")
	}
	if !animalloo.ValidCategories(categories) {
		return nil, animalloo.Errorf(animalloo.EINVALID, "unknown category in filter")
	}

	rows, err := s.facilities.FindRows(ctx, animalloo.RowFilter{
		Categories: categories,
		District:   &district,
	})
	if err != nil {
		return nil, err
	}

	facilities := make([]*animalloo.Facility, 0, len(rows))
	for _, row := range rows {
		facilities = append(facilities, animalloo.FacilityFromRow(row))
	}
	return facilities, nil
}

// Districts lists every district in the catalog, ordered by name.
func (s *Service) Districts(ctx context.Context) ([]*animalloo.District, error) {
	return s.facilities.FindDistricts(ctx)
}

// Facility retrieves a single facility by identifier in the canonical shape.
// Returns EINVALID for an empty id and ENOTFOUND when no such facility exists.
func (s *Service) Facility(ctx context.Context, id string) (*animalloo.Facility, error) {
	if id == "" {
		return nil, animalloo.Errorf(animalloo.EINVALID, "facility ID required")
	}

	row, err := s.facilities.FindRowByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return animalloo.FacilityFromRow(row), nil
}
