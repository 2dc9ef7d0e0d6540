// Package metrics exposes game counters to Prometheus.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "meteors"

// Recorder holds the game metrics. A nil *Recorder records nothing, so
// callers never need to check whether metrics are enabled.
type Recorder struct {
	gatherer prometheus.Gatherer

	sessions  prometheus.Gauge
	games     prometheus.Counter
	destroyed prometheus.Counter
	shots     prometheus.Counter
	frame     prometheus.Histogram
}

// New creates the metrics and registers them with reg. A nil reg uses a
// fresh registry.
func New(reg *prometheus.Registry) *Recorder {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	r := &Recorder{
		gatherer: reg,
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_sessions",
			Help:      "Number of connected game sessions.",
		}),
		games: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "games_played_total",
			Help:      "Games started.",
		}),
		destroyed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "meteorites_destroyed_total",
			Help:      "Meteorites destroyed by any cause.",
		}),
		shots: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "shots_fired_total",
			Help:      "Projectiles fired.",
		}),
		frame: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "frame_duration_seconds",
			Help:      "Time spent simulating and rendering one frame.",
			Buckets:   []float64{0.0005, 0.001, 0.002, 0.004, 0.008, 0.016, 0.033, 0.066},
		}),
	}
	reg.MustRegister(r.sessions, r.games, r.destroyed, r.shots, r.frame)
	return r
}

// Handler serves the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.gatherer, promhttp.HandlerOpts{})
}

func (r *Recorder) SessionOpened() {
	if r != nil {
		r.sessions.Inc()
	}
}

func (r *Recorder) SessionClosed() {
	if r != nil {
		r.sessions.Dec()
	}
}

func (r *Recorder) GameStarted() {
	if r != nil {
		r.games.Inc()
	}
}

func (r *Recorder) MeteoritesDestroyed(n int) {
	if r != nil && n > 0 {
		r.destroyed.Add(float64(n))
	}
}

func (r *Recorder) ShotsFired(n int) {
	if r != nil && n > 0 {
		r.shots.Add(float64(n))
	}
}

// ObserveFrame records how long one frame took.
func (r *Recorder) ObserveFrame(d time.Duration) {
	if r != nil {
		r.frame.Observe(d.Seconds())
	}
}
