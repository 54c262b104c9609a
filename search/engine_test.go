package search_test

import (
	"context"
	"strings"
	"testing"

	"github.com/animalloo/animalloo"
	"github.com/animalloo/animalloo/mock"
	"github.com/animalloo/animalloo/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var origin = animalloo.GeoPoint{Lat: 37.50, Lon: 127.00}

// storeOf returns a mock catalog serving the given rows after applying the
// category and keyword predicates the way the sqlite store would.
func storeOf(rows ...animalloo.Row) *mock.FacilityService {
	return &mock.FacilityService{
		FindRowsFn: func(_ context.Context, filter animalloo.RowFilter) ([]animalloo.Row, error) {
			var out []animalloo.Row
			for _, row := range rows {
				f := animalloo.FacilityFromRow(row)
				if len(filter.Categories) > 0 && !containsCategory(filter.Categories, f.Category) {
					continue
				}
				if filter.Keyword != nil && !strings.Contains(f.Name, *filter.Keyword) && !strings.Contains(f.Description, *filter.Keyword) {
					continue
				}
				out = append(out, row)
			}
			return out, nil
		},
	}
}

func containsCategory(cs []animalloo.Category, c animalloo.Category) bool {
	for _, v := range cs {
		if v == c {
			return true
		}
	}
	return false
}

func TestEngine_Search_HospitalWithinRadius(t *testing.T) {
	t.Parallel()

	// One hospital roughly 0.7 km north of the origin, one roughly 4 km out.
	store := storeOf(
		animalloo.Row{"id": "near", "Name": "가까운 병원", "Category": "hospital", "Latitude": 37.5063, "Longitude": 127.00},
		animalloo.Row{"id": "far", "Name": "먼 병원", "Category": "hospital", "Latitude": 37.5360, "Longitude": 127.00},
	)
	engine := search.NewEngine(store)

	results, err := engine.Search(context.Background(), origin, animalloo.SearchFilter{
		Categories: []animalloo.Category{animalloo.CategoryHospital},
		RadiusKm:   3.0,
	})

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "near", results[0].ID)
	assert.InDelta(t, 0.70, results[0].DistanceKm, 0.01)
}

func TestEngine_Search_KeywordOnlyFilter(t *testing.T) {
	t.Parallel()

	store := storeOf(
		animalloo.Row{"id": "a", "Name": "멍멍 카페", "Category": "cafe", "Description": "24시간 운영", "Latitude": 37.51, "Longitude": 127.01},
		animalloo.Row{"id": "b", "Name": "야옹 카페", "Category": "cafe", "Description": "주간 운영", "Latitude": 37.50, "Longitude": 127.00},
	)
	engine := search.NewEngine(store)

	kw := "24"
	results, err := engine.Search(context.Background(), origin, animalloo.SearchFilter{
		RadiusKm: 5.0,
		Keyword:  &kw,
	})

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "a", results[0].ID)
}

func TestEngine_Search_OrderedByDistance(t *testing.T) {
	t.Parallel()

	store := storeOf(
		animalloo.Row{"id": "mid", "Latitude": 37.51, "Longitude": 127.00},
		animalloo.Row{"id": "close", "Latitude": 37.5005, "Longitude": 127.00},
		animalloo.Row{"id": "edge", "Latitude": 37.52, "Longitude": 127.00},
	)
	engine := search.NewEngine(store)

	results, err := engine.Search(context.Background(), origin, animalloo.SearchFilter{RadiusKm: 10.0})

	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "close", results[0].ID)
	assert.Equal(t, "mid", results[1].ID)
	assert.Equal(t, "edge", results[2].ID)
	for i := 1; i < len(results); i++ {
		assert.LessOrEqual(t, results[i-1].DistanceKm, results[i].DistanceKm)
	}
}

func TestEngine_Search_TiesKeepCatalogOrder(t *testing.T) {
	t.Parallel()

	store := storeOf(
		animalloo.Row{"id": "first", "Latitude": 37.505, "Longitude": 127.00},
		animalloo.Row{"id": "second", "Latitude": 37.505, "Longitude": 127.00},
	)
	engine := search.NewEngine(store)

	results, err := engine.Search(context.Background(), origin, animalloo.SearchFilter{RadiusKm: 5.0})

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "first", results[0].ID)
	assert.Equal(t, "second", results[1].ID)
}

func TestEngine_Search_RadiusBoundaryInclusive(t *testing.T) {
	t.Parallel()

	loc := animalloo.GeoPoint{Lat: 37.509, Lon: 127.00}
	store := storeOf(animalloo.Row{"id": "edge", "Latitude": loc.Lat, "Longitude": loc.Lon})
	engine := search.NewEngine(store)

	exact := search.DistanceKm(origin, loc)

	results, err := engine.Search(context.Background(), origin, animalloo.SearchFilter{RadiusKm: exact})
	require.NoError(t, err)
	assert.Len(t, results, 1, "candidate at exactly the radius is included")

	results, err = engine.Search(context.Background(), origin, animalloo.SearchFilter{RadiusKm: exact - 0.001})
	require.NoError(t, err)
	assert.Empty(t, results, "candidate beyond the radius is excluded")
}

func TestEngine_Search_ZeroRadiusKeepsCoincidentPoint(t *testing.T) {
	t.Parallel()

	store := storeOf(
		animalloo.Row{"id": "here", "Latitude": origin.Lat, "Longitude": origin.Lon},
		animalloo.Row{"id": "there", "Latitude": 37.501, "Longitude": 127.00},
	)
	engine := search.NewEngine(store)

	results, err := engine.Search(context.Background(), origin, animalloo.SearchFilter{RadiusKm: 0})

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "here", results[0].ID)
	assert.Zero(t, results[0].DistanceKm)
}

func TestEngine_Search_DropsRowsWithoutCoordinates(t *testing.T) {
	t.Parallel()

	store := storeOf(
		animalloo.Row{"id": "no-coords", "Name": "좌표 없음"},
		animalloo.Row{"id": "bad-coords", "Latitude": "N/A", "Longitude": "127.0"},
	)
	engine := search.NewEngine(store)

	results, err := engine.Search(context.Background(), origin, animalloo.SearchFilter{RadiusKm: 100.0})

	require.NoError(t, err)
	assert.Empty(t, results, "missing coordinates are not a distance-zero match")
}

func TestEngine_Search_Idempotent(t *testing.T) {
	t.Parallel()

	store := storeOf(
		animalloo.Row{"id": "a", "Latitude": 37.505, "Longitude": 127.002},
		animalloo.Row{"id": "b", "Latitude": 37.502, "Longitude": 127.001},
	)
	engine := search.NewEngine(store)
	filter := animalloo.SearchFilter{RadiusKm: 5.0}

	first, err := engine.Search(context.Background(), origin, filter)
	require.NoError(t, err)
	second, err := engine.Search(context.Background(), origin, filter)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestEngine_Search_PushesPredicatesIntoCatalogQuery(t *testing.T) {
	t.Parallel()

	var captured animalloo.RowFilter
	store := &mock.FacilityService{
		FindRowsFn: func(_ context.Context, filter animalloo.RowFilter) ([]animalloo.Row, error) {
			captured = filter
			return nil, nil
		},
	}
	engine := search.NewEngine(store)

	kw := "전문"
	_, err := engine.Search(context.Background(), origin, animalloo.SearchFilter{
		Categories: []animalloo.Category{animalloo.CategoryGrooming},
		RadiusKm:   3.0,
		Keyword:    &kw,
	})

	require.NoError(t, err)
	assert.Equal(t, []animalloo.Category{animalloo.CategoryGrooming}, captured.Categories)
	require.NotNil(t, captured.Keyword)
	assert.Equal(t, "전문", *captured.Keyword)
	assert.Nil(t, captured.District)
}

func TestEngine_Search_PropagatesStoreError(t *testing.T) {
	t.Parallel()

	store := &mock.FacilityService{
		FindRowsFn: func(context.Context, animalloo.RowFilter) ([]animalloo.Row, error) {
			return nil, animalloo.Errorf(animalloo.EUNAVAILABLE, "catalog gone")
		},
	}
	engine := search.NewEngine(store)

	_, err := engine.Search(context.Background(), origin, animalloo.SearchFilter{RadiusKm: 3.0})

	require.Error(t, err)
	assert.Equal(t, animalloo.EUNAVAILABLE, animalloo.ErrorCode(err))
}

func TestDistanceKm_KnownDistance(t *testing.T) {
	t.Parallel()

	// Seoul City Hall to Gangnam Station is about 8.9 km.
	cityHall := animalloo.GeoPoint{Lat: 37.5663, Lon: 126.9779}
	gangnam := animalloo.GeoPoint{Lat: 37.4979, Lon: 127.0276}

	d := search.DistanceKm(cityHall, gangnam)

	assert.InDelta(t, 8.9, d, 0.3)
}

func TestDistanceKm_Symmetric(t *testing.T) {
	t.Parallel()

	a := animalloo.GeoPoint{Lat: 37.50, Lon: 127.00}
	b := animalloo.GeoPoint{Lat: 37.51, Lon: 127.02}

	assert.InDelta(t, search.DistanceKm(a, b), search.DistanceKm(b, a), 1e-9)
}
