// Order configuration resolution.
//
// Every field resolves independently, highest tier first:
//  1. override (confirmation fields or alert annotations)
//  2. environment (config.LoadOrderConfig)
//  3. literal default (config.LoadOrderConfig)
//
// Tiers 2 and 3 are already merged in the defaults passed to
// ResolveOrderConfig, so only the override tier happens here.

package service

import "github.com/kube-rca/pizza-observability/internal/model"

// Alert annotations that override the order, keyed to the field title they
// stand for.
var annotationFields = map[string]string{
	"pizza_type": model.FieldPizzaType,
	"pizza_size": model.FieldSize,
}

// ResolveOrderConfig applies overrides (field title -> value) on top of
// defaults. Unknown titles and empty values are ignored.
func ResolveOrderConfig(defaults model.OrderConfig, overrides map[string]string) model.OrderConfig {
	cfg := defaults
	if v := overrides[model.FieldPizzaType]; v != "" {
		cfg.Pizza.Type = v
	}
	if v := overrides[model.FieldSize]; v != "" {
		cfg.Pizza.Size = v
	}
	return cfg
}

// FieldOverrides collects overrides from Slack attachment fields.
// Titles must match exactly; the first field with a title wins.
func FieldOverrides(fields []model.SlackField) map[string]string {
	out := make(map[string]string, 2)
	for _, f := range fields {
		if f.Title != model.FieldPizzaType && f.Title != model.FieldSize {
			continue
		}
		if _, seen := out[f.Title]; seen {
			continue
		}
		out[f.Title] = f.Value
	}
	return out
}

// AnnotationOverrides collects overrides from alert annotations.
// Common annotations are used first, then the first firing alert that sets one.
func AnnotationOverrides(webhook model.AlertmanagerWebhook) map[string]string {
	out := make(map[string]string, len(annotationFields))
	for key, title := range annotationFields {
		if v := webhook.CommonAnnotations[key]; v != "" {
			out[title] = v
			continue
		}
		for _, alert := range webhook.Alerts {
			if alert.Status != model.AlertStatusFiring {
				continue
			}
			if v := alert.Annotations[key]; v != "" {
				out[title] = v
				break
			}
		}
	}
	return out
}

// FieldValue returns the value of the first field titled title.
func FieldValue(fields []model.SlackField, title string) (string, bool) {
	for _, f := range fields {
		if f.Title == title {
			return f.Value, true
		}
	}
	return "", false
}
