// Client for the Slack APIs used by the order flow.
//
// Two ways out:
//   - incoming webhook (SLACK_WEBHOOK_URL): the confirmation request with buttons
//   - thread replies: chat.postMessage with SLACK_BOT_TOKEN, or the
//     interaction's response_url when no bot token is configured
//
// Thread replies keep every follow-up (confirmed, created, status updates)
// under the message the user clicked.

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/kube-rca/pizza-observability/internal/model"
)

const defaultSlackAPIURL = "https://slack.com/api"

type SlackClient struct {
	apiURL     string
	botToken   string
	channelID  string
	httpClient *http.Client
}

// SlackMessage - message body for chat.postMessage, webhooks and response_url
type SlackMessage struct {
	Channel         string            `json:"channel,omitempty"`
	Text            string            `json:"text,omitempty"`
	Attachments     []SlackAttachment `json:"attachments,omitempty"`
	Blocks          []SlackBlock      `json:"blocks,omitempty"`
	ThreadTS        string            `json:"thread_ts,omitempty"`
	ResponseType    string            `json:"response_type,omitempty"`
	ReplaceOriginal *bool             `json:"replace_original,omitempty"`
}

type SlackAttachment struct {
	Color      string             `json:"color"`
	Title      string             `json:"title"`
	Text       string             `json:"text,omitempty"`
	Fields     []model.SlackField `json:"fields,omitempty"`
	Actions    []SlackAction      `json:"actions,omitempty"`
	CallbackID string             `json:"callback_id,omitempty"`
	Footer     string             `json:"footer,omitempty"`
	Ts         int64              `json:"ts,omitempty"`
}

// SlackAction - legacy attachment button
type SlackAction struct {
	Name  string `json:"name"`
	Text  string `json:"text"`
	Type  string `json:"type"`
	Style string `json:"style,omitempty"`
	Value string `json:"value"`
}

// SlackBlock - Block Kit section block
type SlackBlock struct {
	Type   string      `json:"type"`
	Text   *SlackText  `json:"text,omitempty"`
	Fields []SlackText `json:"fields,omitempty"`
}

type SlackText struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type SlackResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
	TS    string `json:"ts,omitempty"`
}

// NewSlackClient builds a client. botToken and channelID may be empty;
// replies then go through the interaction's response_url.
func NewSlackClient(botToken, channelID string) *SlackClient {
	return &SlackClient{
		apiURL:     defaultSlackAPIURL,
		botToken:   botToken,
		channelID:  channelID,
		httpClient: &http.Client{},
	}
}

// WithAPIURL points the Web API calls somewhere else (tests, proxies).
func (c *SlackClient) WithAPIURL(apiURL string) *SlackClient {
	c.apiURL = strings.TrimRight(apiURL, "/")
	return c
}

// IsConfigured reports whether chat.postMessage can be used.
func (c *SlackClient) IsConfigured() bool {
	return c.botToken != ""
}

// SendWebhook posts msg to an incoming webhook URL.
func (c *SlackClient) SendWebhook(ctx context.Context, webhookURL string, msg SlackMessage) error {
	if webhookURL == "" {
		return fmt.Errorf("slack webhook URL not configured")
	}
	return c.postJSON(ctx, webhookURL, msg)
}

// Reply posts msg into thread and returns the ts of the new message when
// Slack reports one.
func (c *SlackClient) Reply(ctx context.Context, thread model.SlackThread, msg SlackMessage) (string, error) {
	// 1. bot token: chat.postMessage into the thread
	if c.IsConfigured() {
		msg.Channel = thread.Channel
		if msg.Channel == "" {
			msg.Channel = c.channelID
		}
		if msg.Channel == "" {
			return "", fmt.Errorf("slack channel not known for reply")
		}
		msg.ThreadTS = thread.TS
		resp, err := c.send(ctx, msg)
		if err != nil {
			return "", err
		}
		return resp.TS, nil
	}

	// 2. no token: the interaction's response_url
	if thread.ResponseURL != "" {
		keep := false
		msg.ResponseType = "in_channel"
		msg.ReplaceOriginal = &keep
		return "", c.postJSON(ctx, thread.ResponseURL, msg)
	}

	return "", fmt.Errorf("slack bot token not configured and no response_url available")
}

// chat.postMessage
func (c *SlackClient) send(ctx context.Context, msg SlackMessage) (*SlackResponse, error) {
	payload, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL+"/chat.postMessage", bytes.NewBuffer(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("Authorization", "Bearer "+c.botToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send message: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var slackResp SlackResponse
	if err := json.Unmarshal(body, &slackResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if !slackResp.OK {
		return nil, fmt.Errorf("slack API error: %s", slackResp.Error)
	}

	return &slackResp, nil
}

// postJSON is used for webhooks and response_url, which answer with plain "ok".
func (c *SlackClient) postJSON(ctx context.Context, url string, msg SlackMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("slack webhook returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}
