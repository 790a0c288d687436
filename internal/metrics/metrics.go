// Package metrics holds the Prometheus collectors for the showcase server.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Discovery pipeline
	PipelineRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "showcase_discovery_runs_total",
			Help: "Total number of discovery pipeline runs",
		},
		[]string{"sort", "outcome"}, // outcome: "results", "empty", "unavailable"
	)

	PipelineResults = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "showcase_discovery_matches",
			Help:    "Number of records left after filtering",
			Buckets: []float64{0, 1, 5, 9, 25, 50, 100, 250, 500, 1000},
		},
	)

	// Record source
	SourceFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "showcase_source_fetches_total",
			Help: "Total number of record source fetches",
		},
		[]string{"outcome"}, // "success", "failure", "discarded"
	)

	SourceFetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "showcase_source_fetch_duration_seconds",
			Help:    "Duration of record source fetches in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	SnapshotProjects = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "showcase_snapshot_projects",
			Help: "Number of projects in the current discovery snapshot",
		},
	)

	// Circuit breaker
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "showcase_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "showcase_circuit_breaker_requests_total",
			Help: "Total requests through the circuit breaker",
		},
		[]string{"name", "result"}, // "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "showcase_circuit_breaker_transitions_total",
			Help: "Total circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)

	// HTTP API
	APIRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "showcase_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "route", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "showcase_api_request_duration_seconds",
			Help:    "API request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

// RecordPipelineRun counts one discovery query.
func RecordPipelineRun(sort string, total int, unavailable bool) {
	outcome := "results"
	switch {
	case unavailable:
		outcome = "unavailable"
	case total == 0:
		outcome = "empty"
	}
	PipelineRuns.WithLabelValues(sort, outcome).Inc()
	PipelineResults.Observe(float64(total))
}

// RecordSourceFetch records a completed fetch. failed reports whether the
// source returned an error; applied is false for superseded fetches.
func RecordSourceFetch(duration time.Duration, projects int, failed, applied bool) {
	SourceFetchDuration.Observe(duration.Seconds())
	switch {
	case !applied:
		SourceFetches.WithLabelValues("discarded").Inc()
		return
	case failed:
		SourceFetches.WithLabelValues("failure").Inc()
	default:
		SourceFetches.WithLabelValues("success").Inc()
	}
	SnapshotProjects.Set(float64(projects))
}

// RecordAPIRequest records one HTTP request against its route pattern.
func RecordAPIRequest(method, route string, status int, duration time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	APIRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	APIRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}
