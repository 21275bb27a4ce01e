// Package metrics defines and registers all custom Prometheus metrics for the
// Local Chef API. Metrics are registered with the default registry on import
// via promauto; HTTP request metrics come from the echoprometheus middleware.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "localchef"

// ── Role workflow ─────────────────────────────────────────────────────────────

// RoleRequestsTotal counts role request lifecycle events.
// Labels:
//   - request_type: "chef" or "admin"
//   - status: the state the request entered ("pending", "approved", "rejected")
var RoleRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "role_requests_total",
		Help:      "Total number of role requests submitted or decided.",
	},
	[]string{"request_type", "status"},
)

// ── Marketplace ───────────────────────────────────────────────────────────────

// OrdersCreatedTotal counts placed orders.
var OrdersCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_created_total",
		Help:      "Total number of orders placed.",
	},
)

// MealListingsTotal counts catalogue page requests.
var MealListingsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "meal_listings_total",
		Help:      "Total number of meal catalogue pages served.",
	},
)

// PaymentIntentsTotal counts payment intent requests.
// Label:
//   - result: "created", "replayed" (idempotency hit) or "failed"
var PaymentIntentsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payment_intents_total",
		Help:      "Total number of payment intent requests, by result.",
	},
	[]string{"result"},
)

// RatingRecalculationsTotal counts background meal rating recalculations.
// Label:
//   - result: "ok", "failed" or "dropped" (queue full)
var RatingRecalculationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rating_recalculations_total",
		Help:      "Total number of meal rating recalculations, by result.",
	},
	[]string{"result"},
)
