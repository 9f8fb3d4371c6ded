package service

import "github.com/kube-rca/pizza-observability/internal/model"

// ShouldOrder reports whether the batch holds at least one firing alert
// named triggerName. Order of alerts does not matter; an empty batch never
// orders.
func ShouldOrder(webhook model.AlertmanagerWebhook, triggerName string) bool {
	for _, alert := range webhook.Alerts {
		if alert.Name() == triggerName && alert.Status == model.AlertStatusFiring {
			return true
		}
	}
	return false
}
