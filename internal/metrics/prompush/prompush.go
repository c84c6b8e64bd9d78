// Package prompush implements a Prometheus Pushgateway backend for the
// metrics package.
//
// A consolidation run is a batch job, so metrics are collected in a private
// registry and pushed once at the end instead of being exposed on a scrape
// endpoint. All Prometheus-specific dependencies live here; the rest of the
// project only sees metrics.Backend.
package prompush

import (
	"fmt"

	"github.com/Giomelox/Be-Analytic-ETL/internal/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Backend is a Prometheus Pushgateway metrics backend.
type Backend struct {
	gatewayURL string // e.g. http://pushgateway:9091
	jobName    string // Pushgateway "job" group
	reg        *prometheus.Registry

	stageCounter  *prometheus.CounterVec // "ida_stage_total"
	stageDuration *prometheus.SummaryVec // "ida_stage_duration_seconds"

	resourceCounter *prometheus.CounterVec // "ida_resources_total"
	rowCounter      *prometheus.CounterVec // "ida_rows_total"
}

// NewBackend constructs a Prometheus Pushgateway backend.
// jobName is the Pushgateway "job" grouping key; gatewayURL the server base URL.
func NewBackend(jobName, gatewayURL string) (*Backend, error) {
	if gatewayURL == "" {
		return nil, fmt.Errorf("prompush: gateway URL is required")
	}
	if jobName == "" {
		jobName = "ida_etl"
	}

	reg := prometheus.NewRegistry()

	stageCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ida_stage_total",
			Help: "Run stage executions, partitioned by stage and status.",
		},
		[]string{"stage", "status"},
	)
	stageDuration := prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name:       "ida_stage_duration_seconds",
			Help:       "Duration of run stages in seconds, partitioned by stage and status.",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		},
		[]string{"stage", "status"},
	)
	resourceCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ida_resources_total",
			Help: "Catalog resources handled, partitioned by service and outcome.",
		},
		[]string{"service", "outcome"},
	)
	rowCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ida_rows_total",
			Help: "Row-level counts per kind (reshaped, deduplicated, inserted, etc.).",
		},
		[]string{"kind"},
	)

	for _, c := range []prometheus.Collector{stageCounter, stageDuration, resourceCounter, rowCounter} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("prompush: register collector: %w", err)
		}
	}

	return &Backend{
		gatewayURL:      gatewayURL,
		jobName:         jobName,
		reg:             reg,
		stageCounter:    stageCounter,
		stageDuration:   stageDuration,
		resourceCounter: resourceCounter,
		rowCounter:      rowCounter,
	}, nil
}

func (b *Backend) IncCounter(name string, delta float64, labels metrics.Labels) {
	switch name {
	case "ida_stage_total":
		if b.stageCounter == nil {
			return
		}
		b.stageCounter.WithLabelValues(labels["stage"], labels["status"]).Add(delta)

	case "ida_resources_total":
		if b.resourceCounter == nil {
			return
		}
		b.resourceCounter.WithLabelValues(labels["service"], labels["outcome"]).Add(delta)

	case "ida_rows_total":
		if b.rowCounter == nil {
			return
		}
		b.rowCounter.WithLabelValues(labels["kind"]).Add(delta)

	default:
		// unknown metric name: ignore
	}
}

func (b *Backend) ObserveHistogram(name string, value float64, labels metrics.Labels) {
	if name != "ida_stage_duration_seconds" || b.stageDuration == nil {
		return
	}
	b.stageDuration.WithLabelValues(labels["stage"], labels["status"]).Observe(value)
}

// Flush pushes the current registry to the Pushgateway.
func (b *Backend) Flush() error {
	return push.New(b.gatewayURL, b.jobName).
		Gatherer(b.reg).
		Push()
}
