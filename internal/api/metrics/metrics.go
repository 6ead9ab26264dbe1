// Package metrics defines and registers all custom Prometheus metrics for
// the library management API. It is the single source of truth for metric
// names, labels, and help strings.
//
// Metrics registered here use the default Prometheus registry and are
// exported via the /metrics endpoint wired in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "library"

// ── Session metrics ───────────────────────────────────────────────────────────

// LoginsTotal counts login attempts by outcome.
// Labels:
//   - result: "success" or "failure"
//   - kind: "user" or "admin" (which login endpoint was used)
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result and endpoint kind.",
	},
	[]string{"result", "kind"},
)

// RegistrationsTotal counts completed registrations.
var RegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of successful registrations.",
	},
)

// GateDecisionsTotal counts route gate evaluations.
// Labels:
//   - gate: "user" or "admin"
//   - decision: "allow", "wait", "redirect" or "deny"
var GateDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gate_decisions_total",
		Help:      "Total number of route gate decisions, by gate and decision.",
	},
	[]string{"gate", "decision"},
)

// ── Lending metrics ───────────────────────────────────────────────────────────

// LoansCreatedTotal counts successful borrows.
var LoansCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "loans_created_total",
		Help:      "Total number of books borrowed.",
	},
)

// LoansReturnedTotal counts returns, labelled by whether a fine was assessed.
// Label:
//   - fined: "true" or "false"
var LoansReturnedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "loans_returned_total",
		Help:      "Total number of books returned, by fine assessment.",
	},
	[]string{"fined"},
)

// ── Notification metrics ──────────────────────────────────────────────────────

// NotificationsDispatchedTotal counts notifications delivered by the workers.
// Label:
//   - type: notification type (e.g. "overdue", "return_confirmation")
var NotificationsDispatchedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_dispatched_total",
		Help:      "Total number of notifications delivered, by type.",
	},
	[]string{"type"},
)

// NotificationQueueDepth tracks pending notifications per worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var NotificationQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "notification_queue_depth",
		Help:      "Current number of notifications pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
