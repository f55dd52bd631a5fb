// Package metrics expone las métricas Prometheus del servicio en /metrics.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics contadores del BFF sobre un registro propio.
type Metrics struct {
	registry        *prometheus.Registry
	backendRequests *prometheus.CounterVec
	backendDuration *prometheus.HistogramVec
	uploads         *prometheus.CounterVec
}

// New registra las métricas y los collectors de proceso y runtime.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		backendRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "onboarding_backend_requests_total",
			Help: "Llamadas al backend de onboarding por endpoint y resultado.",
		}, []string{"endpoint", "outcome"}),
		backendDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "onboarding_backend_request_duration_seconds",
			Help:    "Duración de las llamadas al backend de onboarding.",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),
		uploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "onboarding_document_uploads_total",
			Help: "Formularios de carga de documentos por resultado.",
		}, []string{"outcome"}),
	}
	reg.MustRegister(
		m.backendRequests,
		m.backendDuration,
		m.uploads,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveBackendRequest registra una llamada al backend.
func (m *Metrics) ObserveBackendRequest(endpoint, outcome string, elapsed time.Duration) {
	m.backendRequests.WithLabelValues(endpoint, outcome).Inc()
	m.backendDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

// UploadFinished registra el resultado de un formulario de carga.
func (m *Metrics) UploadFinished(outcome string) {
	m.uploads.WithLabelValues(outcome).Inc()
}

// Handler handler HTTP de exposición.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
