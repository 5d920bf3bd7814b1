// Package metrics defines and registers all custom Prometheus metrics for the
// civic core API. It is the single source of truth for metric names, labels,
// and help strings. Metrics are registered with the default registry on
// package initialisation through promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "civic"

// ── Ceremony metrics ──────────────────────────────────────────────────────────

// CeremonyOutcomesTotal counts finished ceremony steps.
// Labels:
//   - ceremony: "registration_begin", "registration_finish", "authentication_begin", "authentication_finish"
//   - outcome: "success" or the error code (e.g. "replay_suspected")
var CeremonyOutcomesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ceremony_outcomes_total",
		Help:      "Total number of credential ceremony steps, by ceremony and outcome.",
	},
	[]string{"ceremony", "outcome"},
)

// MasterLoginAttemptsTotal counts master override attempts.
var MasterLoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "master_login_attempts_total",
		Help:      "Total number of master login attempts, by outcome.",
	},
	[]string{"outcome"},
)

// ── Ledger metrics ────────────────────────────────────────────────────────────

// VoteTogglesTotal counts vote toggles.
// Labels:
//   - target_kind: "post" or "comment"
//   - outcome: "cast" or "retracted"
var VoteTogglesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "vote_toggles_total",
		Help:      "Total number of vote toggles, by target kind and outcome.",
	},
	[]string{"target_kind", "outcome"},
)

var VoteToggleDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "vote_toggle_duration_seconds",
		Help:      "Duration of a vote toggle including serialization wait.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"target_kind"},
)

// XPAdjustmentsTotal sums the absolute XP moved through the reputation ledger.
// Labels:
//   - source: "vote" or "moderation"
//   - direction: "gain" or "loss"
var XPAdjustmentsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "xp_adjustments_total",
		Help:      "Total XP requested from the reputation ledger, by source and direction.",
	},
	[]string{"source", "direction"},
)

// ModerationTransitionsTotal counts effective post state changes.
var ModerationTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "moderation_transitions_total",
		Help:      "Total number of moderation state transitions, by from and to state.",
	},
	[]string{"from", "to"},
)

// ── Serializer metrics ────────────────────────────────────────────────────────

// SerializerQueueDepth tracks the number of jobs waiting on each worker.
var SerializerQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "serializer_queue_depth",
		Help:      "Current number of jobs pending in each serializer worker channel.",
	},
	[]string{"worker_id"},
)

// ObserveXP records a ledger adjustment. Zero deltas are ignored.
func ObserveXP(source string, delta int) {
	switch {
	case delta > 0:
		XPAdjustmentsTotal.WithLabelValues(source, "gain").Add(float64(delta))
	case delta < 0:
		XPAdjustmentsTotal.WithLabelValues(source, "loss").Add(float64(-delta))
	}
}
