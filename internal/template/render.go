// Package template renders the Slack notification headline.
//
// Supported variables:
//
//	{{alert.alertname}}, {{alert.severity}}, {{alert.namespace}},
//	{{alert.status}}, {{alert.description}}, {{alert.summary}},
//	{{alert.started_at}}, {{alert.fingerprint}}
//
//	{{order.pizza_type}}, {{order.size}}, {{order.address}},
//	{{order.customer}}, {{order.store_id}}, {{order.namespace}}
package template

import (
	"strings"
	"time"

	"github.com/kube-rca/pizza-observability/internal/model"
)

// AlertData - alert values available to the template
type AlertData struct {
	AlertName   string
	Severity    string
	Namespace   string
	Status      string
	Description string
	Summary     string
	StartedAt   time.Time
	Fingerprint string
}

// OrderData - order values available to the template
type OrderData struct {
	PizzaType string
	Size      string
	Address   string
	Customer  string
	StoreID   string
	Namespace string
}

// AlertDataFromModel - AlertData from model.Alert
func AlertDataFromModel(alert model.Alert) AlertData {
	return AlertData{
		AlertName:   alert.Labels["alertname"],
		Severity:    alert.Labels["severity"],
		Namespace:   alert.Labels["namespace"],
		Status:      alert.Status,
		Description: alert.Annotations["description"],
		Summary:     alert.Annotations["summary"],
		StartedAt:   alert.StartsAt,
		Fingerprint: alert.Fingerprint,
	}
}

// OrderDataFromConfig - OrderData from a resolved order configuration
func OrderDataFromConfig(cfg model.OrderConfig) OrderData {
	return OrderData{
		PizzaType: cfg.Pizza.Type,
		Size:      cfg.Pizza.Size,
		Address:   cfg.Address.String(),
		Customer:  strings.TrimSpace(cfg.Customer.FirstName + " " + cfg.Customer.LastName),
		StoreID:   cfg.StoreID,
		Namespace: cfg.Namespace,
	}
}

// RenderText replaces template variables in text with real values.
//
// Either argument may be nil; its variables then render as empty strings.
func RenderText(text string, alert *AlertData, order *OrderData) string {
	if !strings.Contains(text, "{{") {
		return text
	}

	pairs := make([]string, 0, 28)

	// --- alert variables ---
	if alert != nil {
		startedAt := ""
		if !alert.StartedAt.IsZero() {
			startedAt = alert.StartedAt.Format(time.RFC3339)
		}
		pairs = append(pairs,
			"{{alert.alertname}}", alert.AlertName,
			"{{alert.severity}}", alert.Severity,
			"{{alert.namespace}}", alert.Namespace,
			"{{alert.status}}", alert.Status,
			"{{alert.description}}", alert.Description,
			"{{alert.summary}}", alert.Summary,
			"{{alert.started_at}}", startedAt,
			"{{alert.fingerprint}}", alert.Fingerprint,
		)
	} else {
		pairs = append(pairs,
			"{{alert.alertname}}", "",
			"{{alert.severity}}", "",
			"{{alert.namespace}}", "",
			"{{alert.status}}", "",
			"{{alert.description}}", "",
			"{{alert.summary}}", "",
			"{{alert.started_at}}", "",
			"{{alert.fingerprint}}", "",
		)
	}

	// --- order variables ---
	if order != nil {
		pairs = append(pairs,
			"{{order.pizza_type}}", order.PizzaType,
			"{{order.size}}", order.Size,
			"{{order.address}}", order.Address,
			"{{order.customer}}", order.Customer,
			"{{order.store_id}}", order.StoreID,
			"{{order.namespace}}", order.Namespace,
		)
	} else {
		pairs = append(pairs,
			"{{order.pizza_type}}", "",
			"{{order.size}}", "",
			"{{order.address}}", "",
			"{{order.customer}}", "",
			"{{order.store_id}}", "",
			"{{order.namespace}}", "",
		)
	}

	return strings.NewReplacer(pairs...).Replace(text)
}
