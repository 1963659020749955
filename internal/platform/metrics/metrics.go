// Package metrics exposes Prometheus instrumentation for the progression
// core: how much XP is being paid out, how often users level up, and how
// reviews and challenges are moving.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the progression counters. A single instance is created at
// startup and shared by the services.
type Metrics struct {
	registry *prometheus.Registry

	XPAwarded           *prometheus.CounterVec
	LevelUps            prometheus.Counter
	ReviewsSubmitted    *prometheus.CounterVec
	QuestsCompleted     prometheus.Counter
	ChallengesCompleted *prometheus.CounterVec
}

// New creates and registers the progression metrics on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		XPAwarded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ascend_xp_awarded_total",
			Help: "Total XP credited to user ledgers, by source.",
		}, []string{"source"}),
		LevelUps: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ascend_level_ups_total",
			Help: "Total number of level-up transitions.",
		}),
		ReviewsSubmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ascend_reviews_submitted_total",
			Help: "Total review submissions, by correctness.",
		}, []string{"correct"}),
		QuestsCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ascend_quests_completed_total",
			Help: "Total daily quest completions.",
		}),
		ChallengesCompleted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ascend_weekly_challenges_completed_total",
			Help: "Total weekly challenges completed, by type.",
		}, []string{"type"}),
	}

	reg.MustRegister(
		m.XPAwarded,
		m.LevelUps,
		m.ReviewsSubmitted,
		m.QuestsCompleted,
		m.ChallengesCompleted,
	)

	return m
}

// Handler returns the HTTP handler serving the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
