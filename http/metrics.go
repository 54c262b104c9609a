package http

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the Prometheus collectors for the serving surface.
type Metrics struct {
	Requests        *prometheus.CounterVec // labels: route, status
	RequestDuration *prometheus.HistogramVec
	SearchResults   prometheus.Histogram
}

// NewMetrics creates and registers all serving metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(m.Requests, m.RequestDuration, m.SearchResults)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "animalloo",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"route", "status"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "animalloo",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration by route.",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5},
		}, []string{"route"}),
		SearchResults: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "animalloo",
			Name:      "search_results",
			Help:      "Number of facilities returned per proximity search.",
			Buckets:   []float64{0, 1, 2, 5, 10, 20, 50, 100},
		}),
	}
}
