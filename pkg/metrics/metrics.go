// Package metrics exposes drowsiness monitoring metrics for Prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/teslashibe/go-drowsy/pkg/drowsiness"
)

// Metrics holds the collectors for one process, on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	frames       *prometheus.CounterVec
	ear          prometheus.Gauge
	streak       prometheus.Gauge
	episodes     prometheus.Counter
	sourceErrors prometheus.Counter
	degenerate   prometheus.Counter
}

// New creates a Metrics instance with its own registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		frames: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "drowsy_frames_total",
			Help: "Frames classified, by emitted state",
		}, []string{"state"}),
		ear: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "drowsy_ear",
			Help: "Most recent average eye aspect ratio",
		}),
		streak: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "drowsy_streak_frames",
			Help: "Current run of consecutive below-threshold frames",
		}),
		episodes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "drowsy_episodes_total",
			Help: "Transitions into the DROWSY state",
		}),
		sourceErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "drowsy_source_errors_total",
			Help: "Frames lost to capture or detection errors",
		}),
		degenerate: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "drowsy_degenerate_frames_total",
			Help: "Frames whose eye geometry had zero width",
		}),
	}

	m.registry.MustRegister(m.frames, m.ear, m.streak, m.episodes, m.sourceErrors, m.degenerate)

	// Pre-create the state series so they read 0 before the first frame.
	for _, st := range []drowsiness.State{drowsiness.Alert, drowsiness.Drowsy, drowsiness.NoFace} {
		m.frames.WithLabelValues(st.String())
	}
	return m
}

// Observe records one classification.
func (m *Metrics) Observe(c drowsiness.Classification) {
	m.frames.WithLabelValues(c.State.String()).Inc()
	m.streak.Set(float64(c.Streak))
	if c.HasEAR {
		if drowsiness.IsDegenerate(c.EAR) {
			m.degenerate.Inc()
		} else {
			m.ear.Set(c.EAR)
		}
	}
	if c.Changed && c.State == drowsiness.Drowsy {
		m.episodes.Inc()
	}
}

// SourceError records a frame lost before classification.
func (m *Metrics) SourceError() {
	m.sourceErrors.Inc()
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns an HTTP handler serving the registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
