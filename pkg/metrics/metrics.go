// Package metrics pkg/metrics/metrics.go exposes the processor's Prometheus registry.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry bundles the processor's counters around one Prometheus registry.
type Registry struct {
	reg *prometheus.Registry

	RunsStarted   prometheus.Counter
	RunsCompleted prometheus.Counter
	RunsAbandoned prometheus.Counter
	RunsFailed    prometheus.Counter

	TelemetryQueries     prometheus.Counter
	TelemetryQueryErrors prometheus.Counter

	IntensityFallbacks prometheus.Counter

	Publishes     prometheus.Counter
	PublishErrors prometheus.Counter
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()

	runsStarted := prometheus.NewCounter(prometheus.CounterOpts{Name: "pcf_runs_started_total"})
	runsCompleted := prometheus.NewCounter(prometheus.CounterOpts{Name: "pcf_runs_completed_total"})
	runsAbandoned := prometheus.NewCounter(prometheus.CounterOpts{Name: "pcf_runs_abandoned_total"})
	runsFailed := prometheus.NewCounter(prometheus.CounterOpts{Name: "pcf_runs_failed_total"})

	telemetryQueries := prometheus.NewCounter(prometheus.CounterOpts{Name: "pcf_telemetry_queries_total"})
	telemetryQueryErrors := prometheus.NewCounter(prometheus.CounterOpts{Name: "pcf_telemetry_query_errors_total"})

	intensityFallbacks := prometheus.NewCounter(prometheus.CounterOpts{Name: "pcf_intensity_fallbacks_total"})

	publishes := prometheus.NewCounter(prometheus.CounterOpts{Name: "pcf_publishes_total"})
	publishErrors := prometheus.NewCounter(prometheus.CounterOpts{Name: "pcf_publish_errors_total"})

	r.MustRegister(runsStarted, runsCompleted, runsAbandoned, runsFailed,
		telemetryQueries, telemetryQueryErrors, intensityFallbacks, publishes, publishErrors)

	return &Registry{
		reg:                  r,
		RunsStarted:          runsStarted,
		RunsCompleted:        runsCompleted,
		RunsAbandoned:        runsAbandoned,
		RunsFailed:           runsFailed,
		TelemetryQueries:     telemetryQueries,
		TelemetryQueryErrors: telemetryQueryErrors,
		IntensityFallbacks:   intensityFallbacks,
		Publishes:            publishes,
		PublishErrors:        publishErrors,
	}
}

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }

// Inc increments c if it is set. Components treat their metrics hooks as
// optional so tests can construct them without a registry.
func Inc(c prometheus.Counter) {
	if c != nil {
		c.Inc()
	}
}
