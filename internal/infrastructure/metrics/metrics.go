// Package metrics expone contadores Prometheus del protocolo de reset y de las mutaciones de inventario.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/warehouse-vision/internal/application/inventory"
	"github.com/jhoicas/warehouse-vision/internal/application/setup"
)

const namespace = "warehouse"

var (
	_ setup.ResetObserver        = (*Metrics)(nil)
	_ inventory.MutationObserver = (*Metrics)(nil)
)

// Metrics registro propio (no el global) con los colectores de la aplicación.
type Metrics struct {
	registry      *prometheus.Registry
	resets        *prometheus.CounterVec
	resetDuration prometheus.Histogram
	mutations     *prometheus.CounterVec
}

// New crea el registro. Incluye los colectores de proceso y runtime de Go.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		resets: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "resets_total",
			Help:      "Intentos de reconfiguración por resultado.",
		}, []string{"outcome"}),
		resetDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "reset_duration_seconds",
			Help:      "Duración del protocolo de reset.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 14),
		}),
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "inventory_mutations_total",
			Help:      "Mutaciones de inventario confirmadas por acción.",
		}, []string{"action"}),
	}
	reg.MustRegister(
		m.resets, m.resetDuration, m.mutations,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveReset registra el resultado y la duración de un reset.
func (m *Metrics) ObserveReset(outcome string, elapsed time.Duration) {
	m.resets.WithLabelValues(outcome).Inc()
	m.resetDuration.Observe(elapsed.Seconds())
}

// ObserveMutation cuenta una mutación de inventario.
func (m *Metrics) ObserveMutation(action string) {
	m.mutations.WithLabelValues(action).Inc()
}

// Registry acceso al registro (tests).
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler exposición en formato texto de Prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
