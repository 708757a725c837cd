// Package metrics exports search statistics to Prometheus through the engine
// hooks.
package metrics

import (
	"net/http"
	"time"

	"github.com/pdrpinto/bestfirst"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors for every domain, told apart by label.
type Metrics struct {
	expanded   *prometheus.CounterVec
	duplicates *prometheus.CounterVec
	solves     *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	frontier   *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		expanded: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bestfirst_states_expanded_total",
				Help: "Total number of states expanded",
			},
			[]string{"domain"},
		),
		duplicates: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bestfirst_states_discarded_total",
				Help: "Total number of popped states discarded as already visited",
			},
			[]string{"domain"},
		),
		solves: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bestfirst_solves_total",
				Help: "Total number of finished searches by outcome",
			},
			[]string{"domain", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bestfirst_solve_duration_seconds",
				Help:    "Duration of searches",
				Buckets: prometheus.ExponentialBuckets(0.0005, 4, 10),
			},
			[]string{"domain"},
		),
		frontier: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bestfirst_max_frontier",
				Help:    "Largest frontier observed per search",
				Buckets: prometheus.ExponentialBuckets(16, 4, 10),
			},
			[]string{"domain"},
		),
	}
	reg.MustRegister(m.expanded, m.duplicates, m.solves, m.duration, m.frontier)
	return m
}

// Outcome label values.
const (
	OutcomeFound     = "found"
	OutcomeExhausted = "exhausted"
)

// Hooks returns engine hooks for one search of domain. The duration is
// measured from this call to OnFinish.
func (m *Metrics) Hooks(domain string) bestfirst.Hooks {
	start := time.Now()
	expanded := m.expanded.WithLabelValues(domain)
	duplicates := m.duplicates.WithLabelValues(domain)
	return bestfirst.Hooks{
		OnExpand:    func(bestfirst.ExpandEvent) { expanded.Inc() },
		OnDuplicate: func() { duplicates.Inc() },
		OnFinish: func(found bool, stats bestfirst.Stats) {
			outcome := OutcomeExhausted
			if found {
				outcome = OutcomeFound
			}
			m.solves.WithLabelValues(domain, outcome).Inc()
			m.duration.WithLabelValues(domain).Observe(time.Since(start).Seconds())
			m.frontier.WithLabelValues(domain).Observe(float64(stats.MaxFrontier))
		},
	}
}

// Handler serves the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
