package template

import (
	"testing"
	"time"

	"github.com/kube-rca/pizza-observability/internal/model"
)

func TestRenderText(t *testing.T) {
	alert := AlertDataFromModel(model.Alert{
		Status:      "firing",
		Labels:      map[string]string{"alertname": "HighCPUUsage", "namespace": "prod"},
		Annotations: map[string]string{"description": "CPU > 90%"},
		StartsAt:    time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	})
	order := OrderDataFromConfig(model.OrderConfig{
		Customer: model.Customer{FirstName: "Pizza", LastName: "Lover"},
		Address:  model.Address{Street: "1 A St", City: "Town", Region: "NY", PostalCode: "10001"},
		Pizza:    model.PizzaSelection{Type: "onion", Size: "small"},
	})

	tests := []struct {
		name  string
		text  string
		alert *AlertData
		order *OrderData
		want  string
	}{
		{
			name: "no-variables",
			text: "🍕 High CPU Alert - Pizza Time? 🍕",
			want: "🍕 High CPU Alert - Pizza Time? 🍕",
		},
		{
			name:  "alert-and-order",
			text:  "{{alert.alertname}} in {{alert.namespace}}: {{order.size}} {{order.pizza_type}} for {{order.customer}}?",
			alert: &alert,
			order: &order,
			want:  "HighCPUUsage in prod: small onion for Pizza Lover?",
		},
		{
			name:  "address-and-time",
			text:  "{{order.address}} since {{alert.started_at}}",
			alert: &alert,
			order: &order,
			want:  "1 A St, Town, NY 10001 since 2026-01-02T03:04:05Z",
		},
		{
			name: "nil-renders-empty",
			text: "[{{alert.alertname}}][{{order.size}}]",
			want: "[][]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RenderText(tt.text, tt.alert, tt.order); got != tt.want {
				t.Fatalf("RenderText() = %q, want %q", got, tt.want)
			}
		})
	}
}
