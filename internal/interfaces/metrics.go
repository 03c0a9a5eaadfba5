package interfaces

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics is a name-addressed Prometheus collector. Updates to a name that was never
// registered are ignored.
type Metrics interface {
	GetRegistry() *prometheus.Registry
	// Handler serves the registry in the Prometheus exposition format.
	Handler() http.Handler

	RegisterCounter(name, help string) error
	RegisterCounterVec(name, help string, labels []string) error
	RegisterHistogramVec(name, help string, buckets []float64, labels []string) error
	RegisterGauge(name, help string) error

	IncCounter(name string)
	IncCounterVec(name string, labels ...string)
	ObserveHistogramVec(name string, value float64, labels ...string)
	IncGauge(name string)
	DecGauge(name string)
}
