// Package metrics provides Prometheus metrics for the download of the galaxy.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "spacemap"

// Metrics holds the metrics of an app instance.
//
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry             *prometheus.Registry
	apiRequests          *prometheus.CounterVec
	apiRequestDuration   *prometheus.HistogramVec
	pagesFetched         prometheus.Counter
	systemsFetched       prometheus.Counter
	rateLimitWaits       prometheus.Counter
	rateLimitWaitSeconds prometheus.Counter
	fetchDuration        prometheus.Histogram
}

// New creates a fresh Metrics registry with all metrics registered.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	apiRequests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "api_requests_total",
		Help:      "Count of requests made to the SpaceTraders API",
	}, []string{"endpoint", "status"})

	apiRequestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "api_request_duration_seconds",
		Help:      "Duration of requests made to the SpaceTraders API",
		Buckets:   prometheus.DefBuckets,
	}, []string{"endpoint"})

	pagesFetched := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "pages_fetched_total",
		Help:      "Total number of system pages fetched successfully",
	})

	systemsFetched := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "systems_fetched_total",
		Help:      "Total number of systems received",
	})

	rateLimitWaits := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limit_waits_total",
		Help:      "Total number of waits caused by rate limited responses",
	})

	rateLimitWaitSeconds := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limit_wait_seconds_total",
		Help:      "Total time spent waiting for rate limits to reset",
	})

	fetchDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "fetch_duration_seconds",
		Help:      "Duration of complete galaxy downloads",
		Buckets:   []float64{1, 5, 10, 30, 60, 120, 300, 600, 1200, 3600},
	})

	registry.MustRegister(
		apiRequests,
		apiRequestDuration,
		pagesFetched,
		systemsFetched,
		rateLimitWaits,
		rateLimitWaitSeconds,
		fetchDuration,
	)

	return &Metrics{
		registry:             registry,
		apiRequests:          apiRequests,
		apiRequestDuration:   apiRequestDuration,
		pagesFetched:         pagesFetched,
		systemsFetched:       systemsFetched,
		rateLimitWaits:       rateLimitWaits,
		rateLimitWaitSeconds: rateLimitWaitSeconds,
		fetchDuration:        fetchDuration,
	}
}

// ObserveRequest records a single API request/response cycle.
// A status of 0 means the request failed without a response.
func (m *Metrics) ObserveRequest(endpoint string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.apiRequests.With(prometheus.Labels{
		"endpoint": endpoint,
		"status":   strconv.Itoa(status),
	}).Inc()
	m.apiRequestDuration.With(prometheus.Labels{"endpoint": endpoint}).Observe(duration.Seconds())
}

// ObservePage records a successfully fetched page.
func (m *Metrics) ObservePage(systems int) {
	if m == nil {
		return
	}
	m.pagesFetched.Inc()
	m.systemsFetched.Add(float64(systems))
}

// ObserveRateLimitWait records a wait for a rate limit.
func (m *Metrics) ObserveRateLimitWait(wait time.Duration) {
	if m == nil {
		return
	}
	m.rateLimitWaits.Inc()
	m.rateLimitWaitSeconds.Add(wait.Seconds())
}

// ObserveFetch records the duration of a complete download.
func (m *Metrics) ObserveFetch(duration time.Duration) {
	if m == nil {
		return
	}
	m.fetchDuration.Observe(duration.Seconds())
}

// Handler exposes the Prometheus registry over HTTP.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("metrics unavailable"))
		})
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
