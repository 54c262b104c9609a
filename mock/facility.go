// Package mock provides function-field mocks of the domain interfaces.
package mock

import (
	"context"

	"github.com/animalloo/animalloo"
)

var _ animalloo.FacilityService = (*FacilityService)(nil)

// FacilityService is a mock implementation of animalloo.FacilityService.
type FacilityService struct {
	FindRowsFn      func(ctx context.Context, filter animalloo.RowFilter) ([]animalloo.Row, error)
	FindRowByIDFn   func(ctx context.Context, id string) (animalloo.Row, error)
	FindDistrictsFn func(ctx context.Context) ([]*animalloo.District, error)
}

func (s *FacilityService) FindRows(ctx context.Context, filter animalloo.RowFilter) ([]animalloo.Row, error) {
	return s.FindRowsFn(ctx, filter)
}

func (s *FacilityService) FindRowByID(ctx context.Context, id string) (animalloo.Row, error) {
	return s.FindRowByIDFn(ctx, id)
}

func (s *FacilityService) FindDistricts(ctx context.Context) ([]*animalloo.District, error) {
	return s.FindDistrictsFn(ctx)
}
