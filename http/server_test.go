package http_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/animalloo/animalloo"
	animhttp "github.com/animalloo/animalloo/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubService is a function-field stub of the search service boundary.
type stubService struct {
	SearchFn           func(ctx context.Context, query string, origin animalloo.GeoPoint) ([]*animalloo.DistancedFacility, error)
	FilterByDistrictFn func(ctx context.Context, district string, categories []animalloo.Category) ([]*animalloo.Facility, error)
	DistrictsFn        func(ctx context.Context) ([]*animalloo.District, error)
	FacilityFn         func(ctx context.Context, id string) (*animalloo.Facility, error)
}

func (s *stubService) Search(ctx context.Context, query string, origin animalloo.GeoPoint) ([]*animalloo.DistancedFacility, error) {
	return s.SearchFn(ctx, query, origin)
}

func (s *stubService) FilterByDistrict(ctx context.Context, district string, categories []animalloo.Category) ([]*animalloo.Facility, error) {
	return s.FilterByDistrictFn(ctx, district, categories)
}

func (s *stubService) Districts(ctx context.Context) ([]*animalloo.District, error) {
	return s.DistrictsFn(ctx)
}

func (s *stubService) Facility(ctx context.Context, id string) (*animalloo.Facility, error) {
	return s.FacilityFn(ctx, id)
}

func newTestServer(svc animhttp.SearchService) *animhttp.Server {
	logger := slog.New(slog.DiscardHandler)
	return animhttp.NewServer(":0", svc, logger, animhttp.NewMetricsForTesting())
}

func TestServer_Search(t *testing.T) {
	t.Parallel()

	t.Run("returns distance-ordered results", func(t *testing.T) {
		t.Parallel()

		svc := &stubService{
			SearchFn: func(_ context.Context, query string, origin animalloo.GeoPoint) ([]*animalloo.DistancedFacility, error) {
				assert.Equal(t, "24시 동물병원", query)
				assert.InDelta(t, 37.5, origin.Lat, 1e-9)
				return []*animalloo.DistancedFacility{
					{Facility: animalloo.Facility{ID: "f-1", Name: "가까운 병원"}, DistanceKm: 0.7},
				}, nil
			},
		}
		srv := newTestServer(svc)

		req := httptest.NewRequest("POST", "/api/search",
			strings.NewReader(`{"query": "24시 동물병원", "lat": 37.5, "lon": 127.0}`))
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)

		require.Equal(t, 200, rec.Code)

		var results []animalloo.DistancedFacility
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &results))
		require.Len(t, results, 1)
		assert.Equal(t, "f-1", results[0].ID)
		assert.InDelta(t, 0.7, results[0].DistanceKm, 1e-9)
	})

	t.Run("rejects missing fields before any downstream work", func(t *testing.T) {
		t.Parallel()

		// nil stub functions would panic if the handler reached the service.
		srv := newTestServer(&stubService{})

		for _, body := range []string{
			`{}`,
			`{"query": "병원"}`,
			`{"query": "병원", "lat": 37.5}`,
			`{"lat": 37.5, "lon": 127.0}`,
			`not json`,
		} {
			req := httptest.NewRequest("POST", "/api/search", strings.NewReader(body))
			rec := httptest.NewRecorder()
			srv.ServeHTTP(rec, req)

			assert.Equal(t, 400, rec.Code, body)
		}
	})

	t.Run("zero coordinates are valid", func(t *testing.T) {
		t.Parallel()

		svc := &stubService{
			SearchFn: func(context.Context, string, animalloo.GeoPoint) ([]*animalloo.DistancedFacility, error) {
				return nil, nil
			},
		}
		srv := newTestServer(svc)

		req := httptest.NewRequest("POST", "/api/search",
			strings.NewReader(`{"query": "병원", "lat": 0, "lon": 0}`))
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)

		assert.Equal(t, 200, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})

	t.Run("store unavailability is distinguishable from no matches", func(t *testing.T) {
		t.Parallel()

		svc := &stubService{
			SearchFn: func(context.Context, string, animalloo.GeoPoint) ([]*animalloo.DistancedFacility, error) {
				return nil, animalloo.Errorf(animalloo.EUNAVAILABLE, "facility catalog unavailable")
			},
		}
		srv := newTestServer(svc)

		req := httptest.NewRequest("POST", "/api/search",
			strings.NewReader(`{"query": "병원", "lat": 37.5, "lon": 127.0}`))
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)

		assert.Equal(t, 503, rec.Code)
		assert.Contains(t, rec.Body.String(), "facility catalog unavailable")
	})
}

func TestServer_Facilities(t *testing.T) {
	t.Parallel()

	t.Run("passes district and categories through", func(t *testing.T) {
		t.Parallel()

		svc := &stubService{
			FilterByDistrictFn: func(_ context.Context, district string, categories []animalloo.Category) ([]*animalloo.Facility, error) {
				assert.Equal(t, "강남구", district)
				assert.Equal(t, []animalloo.Category{animalloo.CategoryHospital, animalloo.CategoryCafe}, categories)
				return []*animalloo.Facility{{ID: "f-1", District: "강남구"}}, nil
			},
		}
		srv := newTestServer(svc)

		req := httptest.NewRequest("GET", "/api/facilities?district=%EA%B0%95%EB%82%A8%EA%B5%AC&category=hospital&category=cafe", nil)
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)

		require.Equal(t, 200, rec.Code)

		var facilities []animalloo.Facility
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &facilities))
		require.Len(t, facilities, 1)
		assert.Equal(t, "강남구", facilities[0].District)
	})

	t.Run("missing district is a 400", func(t *testing.T) {
		t.Parallel()

		svc := &stubService{
			FilterByDistrictFn: func(_ context.Context, district string, _ []animalloo.Category) ([]*animalloo.Facility, error) {
				if district == "" {
					return nil, animalloo.Errorf(animalloo.EINVALID, "district required")
				}
				return nil, nil
			},
		}
		srv := newTestServer(svc)

		req := httptest.NewRequest("GET", "/api/facilities", nil)
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)

		assert.Equal(t, 400, rec.Code)
	})
}

func TestServer_Facility(t *testing.T) {
	t.Parallel()

	svc := &stubService{
		FacilityFn: func(_ context.Context, id string) (*animalloo.Facility, error) {
			if id != "f-1" {
				return nil, animalloo.Errorf(animalloo.ENOTFOUND, "facility %q not found", id)
			}
			return &animalloo.Facility{ID: "f-1", Name: "상세 병원"}, nil
		},
	}
	srv := newTestServer(svc)

	req := httptest.NewRequest("GET", "/api/facilities/f-1", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), "상세 병원")

	req = httptest.NewRequest("GET", "/api/facilities/missing", nil)
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	assert.Equal(t, 404, rec.Code)
}

func TestServer_Districts(t *testing.T) {
	t.Parallel()

	svc := &stubService{
		DistrictsFn: func(context.Context) ([]*animalloo.District, error) {
			return []*animalloo.District{
				{Name: "강남구", Location: &animalloo.GeoPoint{Lat: 37.5172, Lon: 127.0473}},
			}, nil
		},
	}
	srv := newTestServer(svc)

	req := httptest.NewRequest("GET", "/api/districts", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), "강남구")
}

func TestServer_Health(t *testing.T) {
	t.Parallel()

	srv := newTestServer(&stubService{})

	req := httptest.NewRequest("GET", "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, 200, rec.Code)
	assert.JSONEq(t, `{"status": "healthy"}`, rec.Body.String())
}
