// Package metrics exposes Prometheus counters for diagram rendering and
// session activity.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Diagram kinds used as label values.
const (
	KindChord = "chord"
	KindScale = "scale"
	KindPage  = "page"
)

// Metrics holds the collectors of one process. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	reg      *prometheus.Registry
	rendered *prometheus.CounterVec
	failed   *prometheus.CounterVec
	syncs    prometheus.Counter
}

// New registers the collectors on a fresh registry. sessions, if non-nil,
// reports the number of live sessions at scrape time.
func New(sessions func() int) *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		reg: reg,
		rendered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fretwork_diagrams_rendered_total",
			Help: "Diagrams rendered, by kind.",
		}, []string{"kind"}),
		failed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fretwork_render_errors_total",
			Help: "Diagram render failures, by kind.",
		}, []string{"kind"}),
		syncs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fretwork_library_events_total",
			Help: "Chord library changes applied to the catalogue.",
		}),
	}
	reg.MustRegister(
		m.rendered,
		m.failed,
		m.syncs,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	if sessions != nil {
		reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "fretwork_sessions_active",
			Help: "Live UI sessions.",
		}, func() float64 { return float64(sessions()) }))
	}
	return m
}

// Rendered counts a successful render.
func (m *Metrics) Rendered(kind string) {
	if m == nil {
		return
	}
	m.rendered.WithLabelValues(kind).Inc()
}

// Failed counts a failed render.
func (m *Metrics) Failed(kind string) {
	if m == nil {
		return
	}
	m.failed.WithLabelValues(kind).Inc()
}

// LibraryEvent counts a watcher-driven catalogue change.
func (m *Metrics) LibraryEvent() {
	if m == nil {
		return
	}
	m.syncs.Inc()
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.reg }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}
