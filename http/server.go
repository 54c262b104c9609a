// Package http exposes the search service over a JSON HTTP API, with health
// and metrics endpoints alongside.
package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/animalloo/animalloo"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SearchService is the outward service boundary the HTTP adapter serves.
type SearchService interface {
	Search(ctx context.Context, query string, origin animalloo.GeoPoint) ([]*animalloo.DistancedFacility, error)
	FilterByDistrict(ctx context.Context, district string, categories []animalloo.Category) ([]*animalloo.Facility, error)
	Districts(ctx context.Context) ([]*animalloo.District, error)
	Facility(ctx context.Context, id string) (*animalloo.Facility, error)
}

// Server exposes the search API plus health and metrics HTTP endpoints.
type Server struct {
	httpServer *http.Server
	svc        SearchService
	logger     *slog.Logger
	metrics    *Metrics
}

// NewServer creates an HTTP server over the given search service.
func NewServer(addr string, svc SearchService, logger *slog.Logger, metrics *Metrics) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		svc:     svc,
		logger:  logger,
		metrics: metrics,
	}

	mux.HandleFunc("POST /api/search", s.instrument("search", s.handleSearch))
	mux.HandleFunc("GET /api/facilities", s.instrument("facilities", s.handleFacilities))
	mux.HandleFunc("GET /api/facilities/{id}", s.instrument("facility", s.handleFacility))
	mux.HandleFunc("GET /api/districts", s.instrument("districts", s.handleDistricts))
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

// searchRequest is the POST /api/search body. Pointer coordinates distinguish
// an omitted field from zero, which is a valid coordinate.
type searchRequest struct {
	Query string   `json:"query"`
	Lat   *float64 `json:"lat"`
	Lon   *float64 `json:"lon"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, animalloo.Errorf(animalloo.EINVALID, "malformed request body"))
		return
	}
	if req.Query == "" || req.Lat == nil || req.Lon == nil {
		writeError(w, animalloo.Errorf(animalloo.EINVALID, "query, lat and lon are required"))
		return
	}

	results, err := s.svc.Search(r.Context(), req.Query, animalloo.GeoPoint{Lat: *req.Lat, Lon: *req.Lon})
	if err != nil {
		writeError(w, err)
		return
	}

	s.metrics.SearchResults.Observe(float64(len(results)))
	if results == nil {
		results = []*animalloo.DistancedFacility{}
	}
	writeJSON(w, http.StatusOK, results)
}

func (s *Server) handleFacilities(w http.ResponseWriter, r *http.Request) {
	district := r.URL.Query().Get("district")

	var categories []animalloo.Category
	for _, c := range r.URL.Query()["category"] {
		categories = append(categories, animalloo.Category(c))
	}

	facilities, err := s.svc.FilterByDistrict(r.Context(), district, categories)
	if err != nil {
		writeError(w, err)
		return
	}

	if facilities == nil {
		facilities = []*animalloo.Facility{}
	}
	writeJSON(w, http.StatusOK, facilities)
}

func (s *Server) handleFacility(w http.ResponseWriter, r *http.Request) {
	f, err := s.svc.Facility(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, f)
}

func (s *Server) handleDistricts(w http.ResponseWriter, r *http.Request) {
	districts, err := s.svc.Districts(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	if districts == nil {
		districts = []*animalloo.District{}
	}
	writeJSON(w, http.StatusOK, districts)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// instrument records request count and duration for a route.
func (s *Server) instrument(route string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		begin := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next(sw, r)

		s.metrics.Requests.WithLabelValues(route, strconv.Itoa(sw.status)).Inc()
		s.metrics.RequestDuration.WithLabelValues(route).Observe(time.Since(begin).Seconds())
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// writeError maps an application error code onto an HTTP status and writes a
// JSON error body.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch animalloo.ErrorCode(err) {
	case animalloo.EINVALID:
		status = http.StatusBadRequest
	case animalloo.ENOTFOUND:
		status = http.StatusNotFound
	case animalloo.EUNAVAILABLE:
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, map[string]string{"error": animalloo.ErrorMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response body
}
