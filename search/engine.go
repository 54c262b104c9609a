// Package search implements the proximity search pipeline: query
// interpretation feeds a structured filter into an engine that pulls
// candidate rows from the catalog, computes great-circle distances, and
// returns distance-ordered results.
package search

import (
	"context"
	"math"
	"sort"

	"github.com/animalloo/animalloo"
	"github.com/golang/geo/s2"
)

// earthRadiusKm is the mean Earth radius used for great-circle distances.
const earthRadiusKm = 6371.0

// distanceTolerance keeps a candidate sitting exactly on the radius boundary
// inside the result despite floating-point error.
const distanceTolerance = 1e-6

// Engine performs proximity search over the facility catalog. Category and
// keyword predicates are pushed into the catalog query before any distance
// is computed; distance filtering and ordering happen here.
type Engine struct {
	facilities animalloo.FacilityService
}

// NewEngine creates a new Engine over the given catalog read path.
func NewEngine(facilities animalloo.FacilityService) *Engine {
	return &Engine{facilities: facilities}
}

// Search returns the facilities matching filter within filter.RadiusKm of
// origin, ordered by ascending distance. Candidates without coordinates are
// discarded; missing coordinates are not a distance-zero match. Ties keep
// catalog order. The origin is taken as given and never validated.
func (e *Engine) Search(ctx context.Context, origin animalloo.GeoPoint, filter animalloo.SearchFilter) ([]*animalloo.DistancedFacility, error) {
	rows, err := e.facilities.FindRows(ctx, animalloo.RowFilter{
		Categories: filter.Categories,
		Keyword:    filter.Keyword,
	})
	if err != nil {
		return nil, err
	}

	var results []*animalloo.DistancedFacility
	for _, row := range rows {
		f := animalloo.FacilityFromRow(row)
		if f.Location == nil {
			continue
		}

		// Compare the unrounded distance against the radius; round only the
		// reported value, so rounding can never change inclusion.
		d := DistanceKm(origin, *f.Location)
		if d > filter.RadiusKm+distanceTolerance {
			continue
		}

		results = append(results, &animalloo.DistancedFacility{
			Facility:   *f,
			DistanceKm: math.Round(d*100) / 100,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].DistanceKm < results[j].DistanceKm
	})

	return results, nil
}

// DistanceKm returns the great-circle distance between two points in
// kilometers. s2's angle between LatLngs is the haversine formula
// 2·atan2(√a, √(1−a)); scaling by the Earth radius yields kilometers.
func DistanceKm(a, b animalloo.GeoPoint) float64 {
	p := s2.LatLngFromDegrees(a.Lat, a.Lon)
	q := s2.LatLngFromDegrees(b.Lat, b.Lon)
	return p.Distance(q).Radians() * earthRadiusKm
}
