package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	pizzav1 "github.com/kube-rca/pizza-observability/api/v1"
	"github.com/kube-rca/pizza-observability/internal/client"
	"github.com/kube-rca/pizza-observability/internal/model"
	"github.com/kube-rca/pizza-observability/internal/template"
)

// Backend names, also used as metric and history labels.
const (
	BackendSlack      = "slack"
	BackendDirect     = "direct"
	BackendMock       = "mock"
	BackendKubernetes = "kubernetes"
)

// Labels put on every PizzaOrder created here.
const (
	LabelCreatedBy      = "app.kubernetes.io/created-by"
	LabelAlertName      = "alert-name"
	LabelAlertTimestamp = "alert-timestamp"
	createdByValue      = "k8s-pizza-observability"
)

type webhookSender interface {
	SendWebhook(ctx context.Context, webhookURL string, msg client.SlackMessage) error
}

// ConfirmationBackend posts the order for confirmation and places nothing.
type ConfirmationBackend struct {
	slack webhookSender
	text  string
}

// NewConfirmationBackend uses text as the message headline; it may contain
// {{alert.*}} and {{order.*}} variables.
func NewConfirmationBackend(slack webhookSender, text string) *ConfirmationBackend {
	return &ConfirmationBackend{slack: slack, text: text}
}

func (b *ConfirmationBackend) Name() string { return BackendSlack }

func (b *ConfirmationBackend) Dispatch(ctx context.Context, cfg model.OrderConfig, webhook model.AlertmanagerWebhook) (*DispatchResult, error) {
	var alertData *template.AlertData
	if len(webhook.Alerts) > 0 {
		a := template.AlertDataFromModel(webhook.Alerts[0])
		alertData = &a
	}
	orderData := template.OrderDataFromConfig(cfg)
	text := template.RenderText(b.text, alertData, &orderData)

	msg := client.NotificationMessage(text, webhook, cfg)
	if err := b.slack.SendWebhook(ctx, cfg.SlackWebhookURL, msg); err != nil {
		return nil, &DispatchError{Stage: StageNotification, Err: err}
	}
	return &DispatchResult{
		Backend: BackendSlack,
		Message: "Alert received, Slack notification sent for confirmation",
	}, nil
}

// DirectBackend places the order against a PizzaAPI.
type DirectBackend struct {
	name string
	api  client.PizzaAPI
}

// NewDirectBackend names the backend after the API it drives (direct or mock).
func NewDirectBackend(name string, api client.PizzaAPI) *DirectBackend {
	return &DirectBackend{name: name, api: api}
}

func (b *DirectBackend) Name() string { return b.name }

func (b *DirectBackend) Dispatch(ctx context.Context, cfg model.OrderConfig, _ model.AlertmanagerWebhook) (*DispatchResult, error) {
	details, err := b.PlaceOrder(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &DispatchResult{
		Backend: b.name,
		Message: "Pizza ordered successfully",
		Order:   details,
	}, nil
}

// PlaceOrder runs the full ordering chain:
//  1. find stores near the delivery address, pick the nearest usable one
//  2. build one pizza from type and size
//  3. validate, then price
//  4. pay the customer total plus tip, then place
func (b *DirectBackend) PlaceOrder(ctx context.Context, cfg model.OrderConfig) (*model.OrderDetails, error) {
	// 1. store
	stores, err := b.api.FindStores(ctx, cfg.Address)
	if err != nil {
		return nil, &DispatchError{Stage: StageStoreLookup, Err: err}
	}
	store := SelectNearestStore(stores, cfg.StoreID)
	if store.StoreID == "" {
		return nil, &DispatchError{Stage: StageStoreLookup, Err: errors.New("no open stores found for delivery")}
	}

	// 2. order
	pizza := pizzav1.Pizza{Size: cfg.Pizza.Size, Toppings: []string{cfg.Pizza.Type}}
	order := BuildOrder(cfg.Customer, cfg.Address, store.StoreID, []pizzav1.Pizza{pizza})

	// 3. validate, price
	if err := b.api.ValidateOrder(ctx, order); err != nil {
		return nil, &DispatchError{Stage: StageValidate, Err: err}
	}
	price, err := b.api.PriceOrder(ctx, order)
	if err != nil {
		return nil, &DispatchError{Stage: StagePrice, Err: err}
	}

	// 4. pay, place
	order.Payments = []client.Payment{CardPayment(price,
		cfg.Payment.Number, cfg.Payment.Expiration, cfg.Payment.CVV, cfg.Payment.PostalCode)}
	placed, err := b.api.PlaceOrder(ctx, order)
	if err != nil {
		return nil, &DispatchError{Stage: StagePlace, Err: err}
	}

	details := &model.OrderDetails{
		OrderID:               placed.OrderID,
		Price:                 price,
		EstimatedDeliveryTime: placed.EstimatedDeliveryTime,
		TrackingURL:           placed.TrackingURL,
	}
	if details.EstimatedDeliveryTime == "" {
		details.EstimatedDeliveryTime = defaultDeliveryTime
	}
	if details.TrackingURL == "" {
		details.TrackingURL = defaultTrackingURL
	}
	return details, nil
}

type resourceCreator interface {
	Create(ctx context.Context, order *pizzav1.PizzaOrder) error
}

// ResourceBackend creates a PizzaOrder and returns without waiting for it.
type ResourceBackend struct {
	creator resourceCreator
	now     func() time.Time
}

func NewResourceBackend(creator resourceCreator) *ResourceBackend {
	return &ResourceBackend{creator: creator, now: time.Now}
}

func (b *ResourceBackend) Name() string { return BackendKubernetes }

func (b *ResourceBackend) Dispatch(ctx context.Context, cfg model.OrderConfig, webhook model.AlertmanagerWebhook) (*DispatchResult, error) {
	order := NewPizzaOrder(cfg, webhook, b.now())
	if err := b.creator.Create(ctx, order); err != nil {
		return nil, &DispatchError{Stage: StageCreateResource, Err: err}
	}
	return &DispatchResult{
		Backend: BackendKubernetes,
		Message: "PizzaOrder resource created successfully",
		Resource: &model.ResourceRef{
			Name:      order.Name,
			Namespace: order.Namespace,
		},
	}, nil
}

// NewPizzaOrder builds the PizzaOrder object for cfg, named cpu-alert-<unix millis>.
func NewPizzaOrder(cfg model.OrderConfig, webhook model.AlertmanagerWebhook, now time.Time) *pizzav1.PizzaOrder {
	ts := strconv.FormatInt(now.UnixMilli(), 10)

	alertName := "unknown"
	if len(webhook.Alerts) > 0 && webhook.Alerts[0].Name() != "" {
		alertName = webhook.Alerts[0].Name()
	}

	return &pizzav1.PizzaOrder{
		ObjectMeta: metav1.ObjectMeta{
			Name:      fmt.Sprintf("cpu-alert-%s", ts),
			Namespace: cfg.Namespace,
			Labels: map[string]string{
				LabelCreatedBy:      createdByValue,
				LabelAlertName:      alertName,
				LabelAlertTimestamp: ts,
			},
		},
		Spec: pizzav1.PizzaOrderSpec{
			PlaceOrder: true,
			Customer: &pizzav1.Customer{
				FirstName: cfg.Customer.FirstName,
				LastName:  cfg.Customer.LastName,
				Email:     cfg.Customer.Email,
			},
			Address: &pizzav1.Address{
				Street:     cfg.Address.Street,
				City:       cfg.Address.City,
				Region:     cfg.Address.Region,
				PostalCode: cfg.Address.PostalCode,
				Phone:      cfg.Customer.Phone,
			},
			Pizzas: []*pizzav1.Pizza{{
				Size:     ResourceSize(cfg.Pizza.Size),
				Toppings: []string{cfg.Pizza.Type},
			}},
			PaymentSecret: corev1.LocalObjectReference{Name: cfg.PaymentSecretName},
		},
	}
}
