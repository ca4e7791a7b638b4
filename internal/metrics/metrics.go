package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus instruments for the simulator.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry        *prometheus.Registry
	RunsStarted     prometheus.Counter
	Ticks           prometheus.Counter
	EventsDelivered prometheus.Counter
	DefensesApplied *prometheus.CounterVec
	RunsEnded       *prometheus.CounterVec
	Scores          prometheus.Histogram
	SinkErrors      prometheus.Counter
}

// New registers all instruments on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Metrics{
		registry: reg,
		RunsStarted: f.NewCounter(prometheus.CounterOpts{
			Name: "vncrypt_runs_started_total",
			Help: "Total number of mission runs started",
		}),
		Ticks: f.NewCounter(prometheus.CounterOpts{
			Name: "vncrypt_ticks_total",
			Help: "Total number of simulated seconds advanced",
		}),
		EventsDelivered: f.NewCounter(prometheus.CounterOpts{
			Name: "vncrypt_timeline_events_total",
			Help: "Total number of scripted events appended to run logs",
		}),
		DefensesApplied: f.NewCounterVec(prometheus.CounterOpts{
			Name: "vncrypt_defenses_applied_total",
			Help: "Defensive tools activated, by tool",
		}, []string{"tool"}),
		RunsEnded: f.NewCounterVec(prometheus.CounterOpts{
			Name: "vncrypt_runs_ended_total",
			Help: "Finished runs, by end reason",
		}, []string{"reason"}),
		Scores: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "vncrypt_run_score",
			Help:    "Distribution of reported run scores",
			Buckets: prometheus.LinearBuckets(50, 10, 6),
		}),
		SinkErrors: f.NewCounter(prometheus.CounterOpts{
			Name: "vncrypt_progress_sink_errors_total",
			Help: "Total number of failed progress sink updates",
		}),
	}
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) RunStarted() {
	if m != nil {
		m.RunsStarted.Inc()
	}
}

func (m *Metrics) Tick(delivered int) {
	if m != nil {
		m.Ticks.Inc()
		m.Delivered(delivered)
	}
}

// Delivered counts scripted events appended to a run log.
func (m *Metrics) Delivered(n int) {
	if m != nil {
		m.EventsDelivered.Add(float64(n))
	}
}

func (m *Metrics) DefenseApplied(tool string) {
	if m != nil {
		m.DefensesApplied.WithLabelValues(tool).Inc()
	}
}

func (m *Metrics) RunEnded(reason string) {
	if m != nil {
		m.RunsEnded.WithLabelValues(reason).Inc()
	}
}

func (m *Metrics) Scored(score int) {
	if m != nil {
		m.Scores.Observe(float64(score))
	}
}

func (m *Metrics) SinkFailed() {
	if m != nil {
		m.SinkErrors.Inc()
	}
}
