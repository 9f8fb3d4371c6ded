package service

import (
	"testing"

	"github.com/kube-rca/pizza-observability/internal/config"
	"github.com/kube-rca/pizza-observability/internal/model"
)

func TestResolveOrderConfig_Tiers(t *testing.T) {
	tests := []struct {
		name      string
		env       map[string]string
		overrides map[string]string
		wantType  string
		wantSize  string
	}{
		{
			name:     "literal-defaults",
			wantType: "pepperoni",
			wantSize: "large",
		},
		{
			name:     "environment-over-literal",
			env:      map[string]string{"PIZZA_TYPE": "veggie", "PIZZA_SIZE": "small"},
			wantType: "veggie",
			wantSize: "small",
		},
		{
			name:      "override-over-environment",
			env:       map[string]string{"PIZZA_TYPE": "veggie", "PIZZA_SIZE": "small"},
			overrides: map[string]string{model.FieldPizzaType: "cheese"},
			wantType:  "cheese",
			wantSize:  "small",
		},
		{
			name:      "empty-override-ignored",
			overrides: map[string]string{model.FieldPizzaType: "", model.FieldSize: "medium"},
			wantType:  "pepperoni",
			wantSize:  "medium",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("PIZZA_TYPE", "")
			t.Setenv("PIZZA_SIZE", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg := ResolveOrderConfig(config.LoadOrderConfig(), tt.overrides)
			if cfg.Pizza.Type != tt.wantType || cfg.Pizza.Size != tt.wantSize {
				t.Fatalf("got %s/%s, want %s/%s", cfg.Pizza.Type, cfg.Pizza.Size, tt.wantType, tt.wantSize)
			}
		})
	}
}

func TestResolveOrderConfig_DoesNotTouchOtherFields(t *testing.T) {
	defaults := testOrderConfig()
	cfg := ResolveOrderConfig(defaults, map[string]string{
		model.FieldPizzaType:       "veggie",
		model.FieldDeliveryAddress: "1 Elsewhere Rd",
	})
	if cfg.Address != defaults.Address {
		t.Fatalf("address changed: %+v", cfg.Address)
	}
	if cfg.Pizza.Type != "veggie" {
		t.Fatalf("type = %q, want veggie", cfg.Pizza.Type)
	}
}

func TestFieldOverrides(t *testing.T) {
	fields := []model.SlackField{
		{Title: "HighCPUUsage", Value: "CPU above 90%"},
		{Title: model.FieldPizzaType, Value: "veggie"},
		{Title: model.FieldSize, Value: "small"},
		{Title: model.FieldPizzaType, Value: "ham"},
		{Title: "pizza type", Value: "ignored"},
	}

	got := FieldOverrides(fields)
	if len(got) != 2 {
		t.Fatalf("expected 2 overrides, got %v", got)
	}
	if got[model.FieldPizzaType] != "veggie" {
		t.Fatalf("first field must win, got %q", got[model.FieldPizzaType])
	}
	if got[model.FieldSize] != "small" {
		t.Fatalf("size = %q", got[model.FieldSize])
	}
}

func TestAnnotationOverrides(t *testing.T) {
	resolved := firingAlert("HighCPUUsage")
	resolved.Status = model.AlertStatusResolved
	resolved.Annotations["pizza_size"] = "small"

	withType := firingAlert("HighCPUUsage")
	withType.Annotations["pizza_type"] = "veggie"

	withSize := firingAlert("HighCPUUsage")
	withSize.Annotations["pizza_size"] = "medium"

	webhook := model.AlertmanagerWebhook{
		CommonAnnotations: map[string]string{"pizza_type": "cheese"},
		Alerts:            []model.Alert{resolved, withType, withSize},
	}

	got := AnnotationOverrides(webhook)
	if got[model.FieldPizzaType] != "cheese" {
		t.Fatalf("common annotation must win, got %q", got[model.FieldPizzaType])
	}
	if got[model.FieldSize] != "medium" {
		t.Fatalf("resolved alerts must be skipped, got %q", got[model.FieldSize])
	}
}

func TestFieldValue(t *testing.T) {
	fields := []model.SlackField{{Title: model.FieldDeliveryAddress, Value: "123 Main St, Anytown, NY 10001"}}

	if v, ok := FieldValue(fields, model.FieldDeliveryAddress); !ok || v != "123 Main St, Anytown, NY 10001" {
		t.Fatalf("FieldValue() = %q, %v", v, ok)
	}
	if _, ok := FieldValue(fields, model.FieldSize); ok {
		t.Fatalf("expected missing field")
	}
}
