// Alertmanager webhook payload and the individual alert records.
// Shared by the handler, service and client layers.

package model

import (
	"bytes"
	"encoding/json"
	"time"
)

// AlertmanagerWebhook - Alertmanager webhook payload
// Several alerts can arrive grouped in one call.
type AlertmanagerWebhook struct {
	Version string `json:"version"`

	// alerts sharing a GroupKey are delivered together
	GroupKey string `json:"groupKey"`

	// number of alerts dropped because of max_alerts
	TruncatedAlerts int    `json:"truncatedAlerts"`
	Status          string `json:"status"`
	Receiver        string `json:"receiver"`

	GroupLabels       Values `json:"groupLabels"`
	CommonLabels      Values `json:"commonLabels"`
	CommonAnnotations Values `json:"commonAnnotations"`
	ExternalURL       string `json:"externalURL"`

	Alerts []Alert `json:"alerts"`
}

// Alert - a single firing or resolved condition
type Alert struct {
	// firing | resolved
	Status string `json:"status"`

	// - alertname: alert name (e.g. "HighCPUUsage")
	// - severity, namespace, pod, ...
	Labels Values `json:"labels"`

	// - description: shown next to the alert name in the Slack notification
	// - pizza_type, pizza_size: optional per-alert order overrides
	Annotations Values `json:"annotations"`

	StartsAt     time.Time `json:"startsAt"`
	EndsAt       time.Time `json:"endsAt"`
	GeneratorURL string    `json:"generatorURL"`
	Fingerprint  string    `json:"fingerprint"`
}

// Alert states reported by Alertmanager.
const (
	AlertStatusFiring   = "firing"
	AlertStatusResolved = "resolved"
)

// Name returns the alertname label.
func (a Alert) Name() string {
	return a.Labels["alertname"]
}

// UnmarshalJSON accepts alerts from senders other than Alertmanager:
// missing or unparseable times are left zero and scalar fields of any
// JSON type are kept as text.
func (a *Alert) UnmarshalJSON(data []byte) error {
	var raw struct {
		Status       json.RawMessage `json:"status"`
		Labels       Values          `json:"labels"`
		Annotations  Values          `json:"annotations"`
		StartsAt     json.RawMessage `json:"startsAt"`
		EndsAt       json.RawMessage `json:"endsAt"`
		GeneratorURL json.RawMessage `json:"generatorURL"`
		Fingerprint  json.RawMessage `json:"fingerprint"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*a = Alert{
		Status:       rawText(raw.Status),
		Labels:       raw.Labels,
		Annotations:  raw.Annotations,
		StartsAt:     rawTime(raw.StartsAt),
		EndsAt:       rawTime(raw.EndsAt),
		GeneratorURL: rawText(raw.GeneratorURL),
		Fingerprint:  rawText(raw.Fingerprint),
	}
	return nil
}

// Values - label or annotation set
//
// Decoding never fails: non-string values are kept as their JSON text
// and anything but an object decodes to an empty set.
type Values map[string]string

func (v *Values) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil || raw == nil {
		*v = nil
		return nil
	}
	out := make(Values, len(raw))
	for key, val := range raw {
		out[key] = rawText(val)
	}
	*v = out
	return nil
}

// rawText returns a JSON string's value, "" for null, and the JSON text
// of any other value.
func rawText(data json.RawMessage) string {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return ""
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return s
	}
	return string(data)
}

func rawTime(data json.RawMessage) time.Time {
	t, err := time.Parse(time.RFC3339Nano, rawText(data))
	if err != nil {
		return time.Time{}
	}
	return t
}
