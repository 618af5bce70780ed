// Package metrics defines and registers all custom Prometheus metrics for the
// voucher vault API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default registry on package init through
// promauto and exposed at /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "voucher"

// ── Session metrics ───────────────────────────────────────────────────────────

// BootstrapTotal counts login/registration attempts.
// Labels:
//   - role: "brand" or "user"
//   - outcome: "ok" or a short failure reason (e.g. "role_conflict", "login_failed")
var BootstrapTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bootstrap_total",
		Help:      "Total number of session bootstrap attempts, by role and outcome.",
	},
	[]string{"role", "outcome"},
)

// SessionsExpiredTotal counts sessions cleared by the expiry sweeper.
var SessionsExpiredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_expired_total",
		Help:      "Total number of sessions reset after their TTL passed.",
	},
)

// ── Voucher metrics ───────────────────────────────────────────────────────────

// MintTotal counts mint attempts.
// Label:
//   - outcome: "ok", "sold_out", "already_claimed", "in_flight", "failed", …
var MintTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "mint_total",
		Help:      "Total number of voucher mint attempts, by outcome.",
	},
	[]string{"outcome"},
)

// CollectionsCreatedTotal counts collection creation attempts by brands.
// Label:
//   - outcome: "ok", "duplicate_name", "validation", "failed"
var CollectionsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "collections_created_total",
		Help:      "Total number of voucher collection creation attempts, by outcome.",
	},
	[]string{"outcome"},
)

// ── Ledger metrics ────────────────────────────────────────────────────────────

// LedgerRequestDuration measures ledger queries and transactions end to end,
// transaction confirmation included.
// Labels:
//   - kind: "query:<name>" or "tx"
//   - result: "ok" or "error"
var LedgerRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "ledger_request_duration_seconds",
		Help:      "Duration of ledger queries and transactions.",
		Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
	},
	[]string{"kind", "result"},
)

// ObserveLedger records one ledger request. Its signature matches the ledger
// client's observer hook.
func ObserveLedger(kind string, elapsed time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	LedgerRequestDuration.WithLabelValues(kind, result).Observe(elapsed.Seconds())
}
