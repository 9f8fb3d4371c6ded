package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/kube-rca/pizza-observability/internal/model"
)

type capturedRequest struct {
	path   string
	auth   string
	header http.Header
	body   map[string]any
}

type slackRecorder struct {
	mu       sync.Mutex
	requests []capturedRequest
}

func (r *slackRecorder) server(t *testing.T, reply string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		data, _ := io.ReadAll(req.Body)
		var body map[string]any
		if err := json.Unmarshal(data, &body); err != nil {
			t.Errorf("invalid JSON body: %v", err)
		}
		r.mu.Lock()
		r.requests = append(r.requests, capturedRequest{
			path:   req.URL.Path,
			auth:   req.Header.Get("Authorization"),
			header: req.Header.Clone(),
			body:   body,
		})
		r.mu.Unlock()
		_, _ = w.Write([]byte(reply))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestSendWebhook(t *testing.T) {
	rec := &slackRecorder{}
	srv := rec.server(t, "ok")

	cfg := model.OrderConfig{
		Address: model.Address{Street: "123 Main St", City: "Anytown", Region: "NY", PostalCode: "10001"},
		Pizza:   model.PizzaSelection{Type: "pepperoni", Size: "large"},
	}
	webhook := model.AlertmanagerWebhook{Alerts: []model.Alert{{
		Status:      model.AlertStatusFiring,
		Labels:      map[string]string{"alertname": "HighCPUUsage"},
		Annotations: map[string]string{"description": "CPU above 90%"},
	}}}

	c := NewSlackClient("", "")
	if err := c.SendWebhook(context.Background(), srv.URL+"/hook", NotificationMessage("Pizza?", webhook, cfg)); err != nil {
		t.Fatalf("SendWebhook: %v", err)
	}

	if len(rec.requests) != 1 {
		t.Fatalf("expected 1 request, got %d", len(rec.requests))
	}
	got := rec.requests[0]
	if got.path != "/hook" || got.body["text"] != "Pizza?" {
		t.Fatalf("unexpected request: %+v", got)
	}

	attachments := got.body["attachments"].([]any)
	att := attachments[0].(map[string]any)
	if att["callback_id"] != OrderCallback {
		t.Fatalf("callback_id = %v", att["callback_id"])
	}
	fields := att["fields"].([]any)
	titles := make([]string, 0, len(fields))
	for _, f := range fields {
		titles = append(titles, f.(map[string]any)["title"].(string))
	}
	if strings.Join(titles, "|") != "HighCPUUsage|Pizza Type|Size|Delivery Address" {
		t.Fatalf("unexpected field titles: %v", titles)
	}
	if v := fields[3].(map[string]any)["value"]; v != "123 Main St, Anytown, NY 10001" {
		t.Fatalf("address = %v", v)
	}
	actions := att["actions"].([]any)
	if len(actions) != 2 || actions[0].(map[string]any)["name"] != ActionOrder || actions[1].(map[string]any)["name"] != ActionCancel {
		t.Fatalf("unexpected actions: %v", actions)
	}
}

func TestSendWebhook_Errors(t *testing.T) {
	c := NewSlackClient("", "")
	if err := c.SendWebhook(context.Background(), "", SlackMessage{Text: "x"}); err == nil {
		t.Fatalf("expected error for empty webhook URL")
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid_payload", http.StatusBadRequest)
	}))
	defer srv.Close()

	err := c.SendWebhook(context.Background(), srv.URL, SlackMessage{Text: "x"})
	if err == nil || !strings.Contains(err.Error(), "invalid_payload") {
		t.Fatalf("expected status error, got %v", err)
	}
}

func TestReply_BotToken(t *testing.T) {
	rec := &slackRecorder{}
	srv := rec.server(t, `{"ok":true,"ts":"1700000001.000200"}`)

	c := NewSlackClient("xoxb-test", "CDEFAULT").WithAPIURL(srv.URL)
	ts, err := c.Reply(context.Background(), model.SlackThread{Channel: "C123", TS: "1700000000.000100"}, WaitingMessage())
	if err != nil {
		t.Fatalf("Reply: %v", err)
	}
	if ts != "1700000001.000200" {
		t.Fatalf("ts = %q", ts)
	}

	got := rec.requests[0]
	if got.path != "/chat.postMessage" || got.auth != "Bearer xoxb-test" {
		t.Fatalf("unexpected request: %+v", got)
	}
	if got.body["channel"] != "C123" || got.body["thread_ts"] != "1700000000.000100" {
		t.Fatalf("unexpected body: %v", got.body)
	}
}

func TestReply_DefaultChannel(t *testing.T) {
	rec := &slackRecorder{}
	srv := rec.server(t, `{"ok":true}`)

	c := NewSlackClient("xoxb-test", "CDEFAULT").WithAPIURL(srv.URL)
	if _, err := c.Reply(context.Background(), model.SlackThread{}, CancelledMessage()); err != nil {
		t.Fatalf("Reply: %v", err)
	}
	if rec.requests[0].body["channel"] != "CDEFAULT" {
		t.Fatalf("channel = %v", rec.requests[0].body["channel"])
	}
}

func TestReply_APIError(t *testing.T) {
	rec := &slackRecorder{}
	srv := rec.server(t, `{"ok":false,"error":"channel_not_found"}`)

	c := NewSlackClient("xoxb-test", "C1").WithAPIURL(srv.URL)
	_, err := c.Reply(context.Background(), model.SlackThread{Channel: "C1"}, WaitingMessage())
	if err == nil || !strings.Contains(err.Error(), "channel_not_found") {
		t.Fatalf("expected API error, got %v", err)
	}
}

func TestReply_ResponseURL(t *testing.T) {
	rec := &slackRecorder{}
	srv := rec.server(t, "ok")

	c := NewSlackClient("", "")
	if _, err := c.Reply(context.Background(), model.SlackThread{ResponseURL: srv.URL + "/actions/1"}, CancelledMessage()); err != nil {
		t.Fatalf("Reply: %v", err)
	}

	got := rec.requests[0]
	if got.path != "/actions/1" || got.auth != "" {
		t.Fatalf("unexpected request: %+v", got)
	}
	if got.body["response_type"] != "in_channel" || got.body["replace_original"] != false {
		t.Fatalf("unexpected body: %v", got.body)
	}
}

func TestReply_Unconfigured(t *testing.T) {
	c := NewSlackClient("", "")
	if _, err := c.Reply(context.Background(), model.SlackThread{Channel: "C1"}, WaitingMessage()); err == nil {
		t.Fatalf("expected error without token or response_url")
	}
}

func TestConfirmedMessage_DefaultAddress(t *testing.T) {
	msg := ConfirmedMessage("pepperoni", "large", "")
	fields := msg.Blocks[2].Fields
	if fields[2].Text != "*Delivery Address:* Default Address" {
		t.Fatalf("unexpected address field %q", fields[2].Text)
	}
}
