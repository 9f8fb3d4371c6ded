package model

// OrderRequest - body of POST /
//
// Two shapes share the endpoint:
//   - an Alertmanager webhook (alerts)
//   - a confirmation from the Slack bridge (confirmationSource, orderConfirmed, alertDetails)
type OrderRequest struct {
	AlertmanagerWebhook

	ConfirmationSource string       `json:"confirmationSource,omitempty"`
	OrderConfirmed     bool         `json:"orderConfirmed,omitempty"`
	AlertDetails       []SlackField `json:"alertDetails,omitempty"`
}

// ConfirmationSourceSlack marks a request forwarded by the Slack bridge.
const ConfirmationSourceSlack = "slack"

// IsConfirmation reports whether the request is a confirmed Slack order.
func (r OrderRequest) IsConfirmation() bool {
	return r.ConfirmationSource == ConfirmationSourceSlack && r.OrderConfirmed
}
