// Package metrics defines and registers all custom Prometheus metrics for the
// products API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation; HTTP request metrics come from echoprometheus in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "products_api"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// RegistrationsTotal counts identities successfully registered.
var RegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of users registered.",
	},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "rejected" (bad credentials) or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ── Product metrics ───────────────────────────────────────────────────────────

// ProductValidationsTotal counts creation-gate decisions.
// Label:
//   - verdict: "Approved" or "Rejected"
var ProductValidationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "product_validations_total",
		Help:      "Total number of product validation decisions, by verdict.",
	},
	[]string{"verdict"},
)

// ProductValidationDuration measures how long the creation gate takes to decide.
var ProductValidationDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "product_validation_duration_seconds",
		Help:      "Duration of the product validation gate.",
		Buckets:   []float64{.01, .05, .1, .25, .5, 1, 1.5, 2, 5},
	},
)

// ProductsCreatedTotal counts newly persisted products.
var ProductsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "products_created_total",
		Help:      "Total number of products created.",
	},
)

// ProductsInactivatedTotal counts ACTIVE→INACTIVE transitions.
var ProductsInactivatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "products_inactivated_total",
		Help:      "Total number of products inactivated.",
	},
)

// ── Audit metrics ─────────────────────────────────────────────────────────────

// AuditQueueDepth tracks the number of audit records waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of validation audit records pending per worker.",
	},
	[]string{"worker_id"},
)

// AuditErrorsTotal counts audit records that could not be persisted.
var AuditErrorsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_errors_total",
		Help:      "Total number of validation audit records that failed to persist.",
	},
)
