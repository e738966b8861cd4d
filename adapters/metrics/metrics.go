// Package metrics provides Prometheus metrics collection for killfeed.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector holds all Prometheus metrics for killfeed.
type Collector struct {
	// Request metrics
	RequestsTotal    *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	RequestsInFlight prometheus.Gauge

	// Validation metrics
	ValidationFailures *prometheus.CounterVec

	// Lookup metrics
	LookupsTotal *prometheus.CounterVec

	// Stream metrics
	StreamsOpen    prometheus.Gauge
	StreamMessages prometheus.Counter
}

// New creates a new metrics collector registered with reg.
func New(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)

	return &Collector{
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "killfeed",
				Name:      "requests_total",
				Help:      "Total number of requests processed",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "killfeed",
				Name:      "request_duration_seconds",
				Help:      "Request duration in seconds",
				Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		RequestsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "killfeed",
				Name:      "requests_in_flight",
				Help:      "Number of requests currently being processed",
			},
		),

		ValidationFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "killfeed",
				Name:      "validation_failures_total",
				Help:      "Total number of requests rejected by input validation",
			},
			[]string{"path"},
		),

		LookupsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "killfeed",
				Name:      "lookups_total",
				Help:      "Total number of store lookups by resource and outcome",
			},
			[]string{"resource", "outcome"},
		),

		StreamsOpen: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "killfeed",
				Name:      "streams_open",
				Help:      "Number of currently open event streams",
			},
		),
		StreamMessages: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: "killfeed",
				Name:      "stream_messages_total",
				Help:      "Total number of messages pushed to event streams",
			},
		),
	}
}
