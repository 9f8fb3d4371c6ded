// Package metrics provides Prometheus metrics for the pizza order flow.
//
// Webhook server metrics live on the default registry and are served by
// promhttp on /metrics. Controller metrics are registered with the
// controller-runtime registry so the manager serves them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	ctrlmetrics "sigs.k8s.io/controller-runtime/pkg/metrics"
)

const (
	namespace = "pizza"
)

// Webhook metrics
var (
	// AlertsReceivedTotal counts POST / alert batches by result
	// (ordered, ignored, invalid, failed).
	AlertsReceivedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "webhook",
			Name:      "alerts_received_total",
			Help:      "Total alert batches received by result",
		},
		[]string{"result"},
	)

	// DispatchesTotal counts dispatches by backend and outcome.
	DispatchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "dispatch",
			Name:      "total",
			Help:      "Total order dispatches by backend and outcome",
		},
		[]string{"backend", "outcome"},
	)

	// SlackActionsTotal counts Slack button clicks by action.
	SlackActionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "slack",
			Name:      "actions_total",
			Help:      "Total Slack interactive actions by action",
		},
		[]string{"action"},
	)
)

// Status poll metrics
var (
	// PollsTotal counts status polls by phase observed, or "error".
	PollsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "poll",
			Name:      "total",
			Help:      "Total order status polls by observed phase",
		},
		[]string{"phase"},
	)

	// ActivePollSessions is the number of orders currently being polled.
	ActivePollSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "poll",
			Name:      "active_sessions",
			Help:      "Number of active order status poll sessions",
		},
	)
)

// Controller metrics
var (
	// ReconcileTotal counts PizzaOrder reconciles by step and result.
	ReconcileTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pizzaorder_reconcile_total",
			Help: "Total PizzaOrder reconciles by step and result.",
		},
		[]string{"step", "result"},
	)

	// OrdersPlacedTotal counts orders the controller has submitted.
	OrdersPlacedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "pizzaorder_orders_placed_total",
			Help: "Total pizza orders placed by the controller.",
		},
	)
)

func init() {
	ctrlmetrics.Registry.MustRegister(
		ReconcileTotal,
		OrdersPlacedTotal,
	)
}

// RecordAlert records one POST / alert batch.
func RecordAlert(result string) {
	AlertsReceivedTotal.WithLabelValues(result).Inc()
}

// RecordDispatch records one dispatch attempt.
func RecordDispatch(backend, outcome string) {
	DispatchesTotal.WithLabelValues(backend, outcome).Inc()
}

// RecordSlackAction records one interactive callback.
func RecordSlackAction(action string) {
	SlackActionsTotal.WithLabelValues(action).Inc()
}

// RecordPoll records one status poll.
func RecordPoll(phase string) {
	PollsTotal.WithLabelValues(phase).Inc()
}

// RecordReconcile records one reconcile step.
func RecordReconcile(step, result string) {
	ReconcileTotal.WithLabelValues(step, result).Inc()
}
