// Package metrics holds the Prometheus collectors for the service.
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "eventfinder"

// Query and location outcomes used as the "status" label.
const (
	StatusOK                  = "ok"
	StatusError               = "error"
	StatusPermissionDenied    = "permission_denied"
	StatusLocationUnavailable = "location_unavailable"
	StatusStale               = "stale"
)

type Metrics struct {
	queriesTotal   *prometheus.CounterVec
	queryDuration  prometheus.Histogram
	eventsReturned prometheus.Histogram
	locationTotal  *prometheus.CounterVec
	staleResults   prometheus.Counter
	httpRequests   *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		queriesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "event_queries_total",
			Help:      "Event queries by outcome",
		}, []string{"status"}),
		queryDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "event_query_duration_seconds",
			Help:      "Time spent running the event query pipeline",
			Buckets:   []float64{.001, .01, .1, .5, 1, 2, 5},
		}),
		eventsReturned: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "events_returned",
			Help:      "Number of events returned per successful query",
			Buckets:   prometheus.LinearBuckets(0, 2, 6),
		}),
		locationTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "location_requests_total",
			Help:      "Location acquisitions by outcome",
		}, []string{"status"}),
		staleResults: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stale_query_results_total",
			Help:      "Query results discarded because a newer query was issued",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method and status code",
		}, []string{"method", "code"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
	}
	reg.MustRegister(
		m.queriesTotal, m.queryDuration, m.eventsReturned,
		m.locationTotal, m.staleResults,
		m.httpRequests, m.httpDuration,
	)
	return m
}

// ObserveQuery records one run of the event query pipeline.
func (m *Metrics) ObserveQuery(status string, took time.Duration, returned int) {
	if m == nil {
		return
	}
	m.queriesTotal.WithLabelValues(status).Inc()
	m.queryDuration.Observe(took.Seconds())
	if status == StatusOK {
		m.eventsReturned.Observe(float64(returned))
	}
}

// ObserveLocation records one location acquisition.
func (m *Metrics) ObserveLocation(status string) {
	if m == nil {
		return
	}
	m.locationTotal.WithLabelValues(status).Inc()
}

// IncStale counts a discarded out-of-order query result.
func (m *Metrics) IncStale() {
	if m == nil {
		return
	}
	m.staleResults.Inc()
}

// ObserveHTTP records one served request.
func (m *Metrics) ObserveHTTP(method string, code int, took time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, strconv.Itoa(code)).Inc()
	m.httpDuration.WithLabelValues(method).Observe(took.Seconds())
}
