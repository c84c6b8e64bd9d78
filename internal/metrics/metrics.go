// Package metrics provides a small, backend-agnostic abstraction for
// recording operational metrics from the consolidation run.
//
// A global, pluggable backend defaults to a no-op implementation, so the
// pipeline and loader can instrument themselves unconditionally. Concrete
// systems (Prometheus Pushgateway) live in subpackages and are installed at
// startup via SetBackend.
package metrics

import "time"

// job labels every metric emitted by this binary.
const job = "ida_etl"

// Labels are string key/value pairs attached to a metric.
type Labels map[string]string

// Backend is the minimal interface for metrics backends.
type Backend interface {
	// IncCounter increments a counter by delta.
	IncCounter(name string, delta float64, labels Labels)
	// ObserveHistogram records a value in a latency/duration style metric.
	ObserveHistogram(name string, value float64, labels Labels)
	// Flush pushes or flushes metrics, if the backend needs it (e.g. Pushgateway).
	Flush() error
}

// nopBackend is used by default so metrics are optional.
type nopBackend struct{}

func (nopBackend) IncCounter(name string, delta float64, labels Labels)       {}
func (nopBackend) ObserveHistogram(name string, value float64, labels Labels) {}
func (nopBackend) Flush() error                                               { return nil }

var backend Backend = nopBackend{}

// SetBackend installs a concrete backend. Passing nil keeps the existing backend.
func SetBackend(b Backend) {
	if b == nil {
		return
	}
	backend = b
}

// Flush delegates to the current backend.
func Flush() error {
	return backend.Flush()
}

// RecordStage records latency and outcome for one run stage
// (discover, download, reshape, consolidate, load).
func RecordStage(stage string, err error, d time.Duration) {
	status := "success"
	if err != nil {
		status = "failure"
	}

	lbls := Labels{
		"job":    job,
		"stage":  stage,
		"status": status,
	}

	backend.IncCounter("ida_stage_total", 1, lbls)
	backend.ObserveHistogram("ida_stage_duration_seconds", d.Seconds(), lbls)
}

// RecordResource counts a per-resource outcome for a service.
//
// Typical outcomes:
//   - "processed"
//   - "skipped_empty"
//   - "decode_failed"
//   - "download_failed"
//   - "wide_fallback"
func RecordResource(service, outcome string) {
	backend.IncCounter("ida_resources_total", 1, Labels{
		"job":     job,
		"service": service,
		"outcome": outcome,
	})
}

// RecordRows increments a row-level counter for the given kind, e.g.
// "reshaped", "deduplicated", "inserted".
func RecordRows(kind string, delta int) {
	if delta <= 0 {
		return
	}
	backend.IncCounter("ida_rows_total", float64(delta), Labels{
		"job":  job,
		"kind": kind,
	})
}
