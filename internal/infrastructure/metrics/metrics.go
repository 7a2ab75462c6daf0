// Package metrics métricas Prometheus del servicio: HTTP y resolución de identidad.
// Cada instancia tiene su propio registro para que las pruebas no choquen con el registro global.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Resultados posibles de una resolución de identidad.
const (
	OutcomeOK            = "ok"
	OutcomeUnauthorized  = "unauthorized"
	OutcomeUnavailable   = "unavailable"
	OutcomeInvalidAnswer = "invalid_response"
)

// Metrics colectores del servicio. Los métodos aceptan receptor nil (métricas desactivadas).
type Metrics struct {
	registry *prometheus.Registry

	httpInFlight        prometheus.Gauge
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	identityResolveTotal    *prometheus.CounterVec
	identityResolveDuration prometheus.Histogram
}

// New crea y registra los colectores.
func New(namespace string) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_in_flight_requests",
			Help:      "In-flight HTTP requests.",
		}),
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"method", "route", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latencies in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		identityResolveTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "identity_resolve_total",
			Help:      "Identity resolutions by gateway and outcome.",
		}, []string{"gateway", "outcome"}),
		identityResolveDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "identity_resolve_duration_seconds",
			Help:      "Latency of identity resolutions in seconds.",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpInFlight,
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.identityResolveTotal,
		m.identityResolveDuration,
	)
	return m
}

// Handler expone el registro en formato Prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// RequestStarted incrementa las peticiones en curso.
func (m *Metrics) RequestStarted() {
	if m == nil {
		return
	}
	m.httpInFlight.Inc()
}

// RequestFinished registra una petición terminada. route es el patrón de la ruta, no el path.
func (m *Metrics) RequestFinished(method, route, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpInFlight.Dec()
	m.httpRequestsTotal.WithLabelValues(method, route, status).Inc()
	m.httpRequestDuration.WithLabelValues(method, route, status).Observe(elapsed.Seconds())
}

// IdentityResolved registra el resultado de una llamada al proveedor de identidad.
func (m *Metrics) IdentityResolved(gateway, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.identityResolveTotal.WithLabelValues(gateway, outcome).Inc()
	m.identityResolveDuration.Observe(elapsed.Seconds())
}
