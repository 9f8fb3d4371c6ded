// Slack messages for the pizza order flow

package client

import (
	"fmt"
	"time"

	"github.com/kube-rca/pizza-observability/internal/model"
)

// Action identifiers carried by the notification buttons.
const (
	ActionOrder    = "order"
	ActionConfirm  = "confirm"
	ActionCancel   = "cancel"
	OrderCallback  = "pizza_order"
	notifyColor    = "#ff0000"
	notifyFooter   = "K8s Pizza Observability"
	notifyTitle    = "Kubernetes Cluster CPU Alert"
	mrkdwn         = "mrkdwn"
	sectionBlock   = "section"
	defaultAddress = "Default Address"
)

// NotificationMessage builds the "ask before ordering" message: one field
// per alert, the resolved order and the Order/Cancel buttons.
//
// The Pizza Type, Size and Delivery Address titles are read back when the
// user clicks Order, so they must not change.
func NotificationMessage(text string, webhook model.AlertmanagerWebhook, cfg model.OrderConfig) SlackMessage {
	fields := make([]model.SlackField, 0, len(webhook.Alerts)+3)
	for _, alert := range webhook.Alerts {
		fields = append(fields, model.SlackField{
			Title: alert.Name(),
			Value: alert.Annotations["description"],
			Short: false,
		})
	}
	fields = append(fields,
		model.SlackField{Title: model.FieldPizzaType, Value: cfg.Pizza.Type, Short: true},
		model.SlackField{Title: model.FieldSize, Value: cfg.Pizza.Size, Short: true},
		model.SlackField{Title: model.FieldDeliveryAddress, Value: cfg.Address.String(), Short: false},
	)

	return SlackMessage{
		Text: text,
		Attachments: []SlackAttachment{
			{
				Color:  notifyColor,
				Title:  notifyTitle,
				Fields: fields,
				Actions: []SlackAction{
					{Name: ActionOrder, Text: "Order Pizza", Type: "button", Style: "primary", Value: ActionOrder},
					{Name: ActionCancel, Text: "Cancel", Type: "button", Style: "danger", Value: ActionCancel},
				},
				CallbackID: OrderCallback,
				Footer:     notifyFooter,
				Ts:         time.Now().Unix(),
			},
		},
	}
}

// ConfirmedMessage acknowledges the Order click.
func ConfirmedMessage(pizzaType, size, address string) SlackMessage {
	if address == "" {
		address = defaultAddress
	}
	return SlackMessage{
		Text: ":pizza: Pizza order confirmed! :pizza:",
		Blocks: []SlackBlock{
			section(":pizza: *Pizza order confirmed!* :pizza:"),
			section("Your pizza is being ordered now via Kubernetes. It will be delivered to the address specified in the alert."),
			fieldsSection(
				"*Type:* "+pizzaType,
				"*Size:* "+size,
				"*Delivery Address:* "+address,
			),
		},
	}
}

func ResourceCreatedMessage(ref model.ResourceRef) SlackMessage {
	return SlackMessage{
		Text: "PizzaOrder resource created successfully!",
		Blocks: []SlackBlock{
			section("*PizzaOrder resource created successfully!*"),
			fieldsSection(
				"*Resource Name:* "+ref.Name,
				"*Namespace:* "+ref.Namespace,
			),
			section("_Waiting for order processing..._"),
		},
	}
}

func ResourceErrorMessage(err error) SlackMessage {
	return SlackMessage{
		Text: fmt.Sprintf(":x: Error creating PizzaOrder resource: %v", err),
		Blocks: []SlackBlock{
			section(fmt.Sprintf(":x: *Error creating PizzaOrder resource*: %v", err)),
		},
	}
}

func CancelledMessage() SlackMessage {
	return SlackMessage{
		Text: "Pizza order cancelled.",
		Blocks: []SlackBlock{
			section(":x: *Pizza order cancelled.* Your servers will have to manage without pizza for now."),
		},
	}
}

func WaitingMessage() SlackMessage {
	return SlackMessage{
		Text: ":hourglass: Waiting for order to be processed...",
		Blocks: []SlackBlock{
			section(":hourglass: *Waiting for order to be processed...*"),
		},
	}
}

// StatusUpdateMessage reports a placed order's current stage.
// trackerFields are preformatted "*Stage:* time" lines.
func StatusUpdateMessage(emoji, label, orderID, price string, trackerFields []string) SlackMessage {
	blocks := []SlackBlock{
		section(fmt.Sprintf("%s *Order status update:* %s", emoji, label)),
		fieldsSection(
			"*Order ID:* "+orderID,
			"*Price:* $"+price,
		),
	}
	if len(trackerFields) > 0 {
		blocks = append(blocks, fieldsSection(trackerFields...))
	}
	return SlackMessage{
		Text:   fmt.Sprintf("%s Order status update: %s", emoji, label),
		Blocks: blocks,
	}
}

func DeliveredMessage(orderID, price, deliveredAt string) SlackMessage {
	return SlackMessage{
		Text: ":white_check_mark: Your pizza has been delivered!",
		Blocks: []SlackBlock{
			section(":white_check_mark: *Your pizza has been delivered!*"),
			fieldsSection(
				"*Order ID:* "+orderID,
				"*Price:* $"+price,
				"*Delivered:* "+deliveredAt,
			),
		},
	}
}

func section(text string) SlackBlock {
	return SlackBlock{Type: sectionBlock, Text: &SlackText{Type: mrkdwn, Text: text}}
}

func fieldsSection(texts ...string) SlackBlock {
	fields := make([]SlackText, 0, len(texts))
	for _, t := range texts {
		fields = append(fields, SlackText{Type: mrkdwn, Text: t})
	}
	return SlackBlock{Type: sectionBlock, Fields: fields}
}
