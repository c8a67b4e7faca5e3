package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	ManifestLoads    prometheus.Counter
	ValidationRuns   prometheus.Counter
	ValidationErrors prometheus.Counter
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith registers against a specific registerer; tests pass their own to
// avoid duplicate registration across cases.
func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ManifestLoads: factory.NewCounter(prometheus.CounterOpts{
			Name: "supplier_frontend_manifest_loads_total",
			Help: "Total number of framework manifests materialised from disk",
		}),
		ValidationRuns: factory.NewCounter(prometheus.CounterOpts{
			Name: "supplier_frontend_validation_runs_total",
			Help: "Total number of declaration or submission validations run",
		}),
		ValidationErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "supplier_frontend_validation_errors_total",
			Help: "Total number of field errors reported to suppliers",
		}),
	}
}

func (m *Metrics) IncrementManifestLoads() {
	if m != nil {
		m.ManifestLoads.Inc()
	}
}

func (m *Metrics) ObserveValidation(errorCount int) {
	if m != nil {
		m.ValidationRuns.Inc()
		m.ValidationErrors.Add(float64(errorCount))
	}
}
