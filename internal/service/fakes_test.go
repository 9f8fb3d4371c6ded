package service

import (
	"context"
	"sync"

	pizzav1 "github.com/kube-rca/pizza-observability/api/v1"
	"github.com/kube-rca/pizza-observability/internal/client"
	"github.com/kube-rca/pizza-observability/internal/model"
)

type fakeWebhookSender struct {
	mu   sync.Mutex
	urls []string
	msgs []client.SlackMessage
	err  error
}

func (f *fakeWebhookSender) SendWebhook(ctx context.Context, webhookURL string, msg client.SlackMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.urls = append(f.urls, webhookURL)
	f.msgs = append(f.msgs, msg)
	return f.err
}

func (f *fakeWebhookSender) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.msgs)
}

type fakeReplier struct {
	mu      sync.Mutex
	threads []model.SlackThread
	msgs    []client.SlackMessage
	ts      string
	err     error
}

func (f *fakeReplier) Reply(ctx context.Context, thread model.SlackThread, msg client.SlackMessage) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.threads = append(f.threads, thread)
	f.msgs = append(f.msgs, msg)
	return f.ts, f.err
}

func (f *fakeReplier) texts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.msgs))
	for _, m := range f.msgs {
		out = append(out, m.Text)
	}
	return out
}

type fakeCreator struct {
	mu      sync.Mutex
	created []*pizzav1.PizzaOrder
	err     error
}

func (f *fakeCreator) Create(ctx context.Context, order *pizzav1.PizzaOrder) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, order)
	return nil
}

func (f *fakeCreator) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.created)
}

// countingPizzaAPI counts calls on top of the mock client.
type countingPizzaAPI struct {
	*client.MockPizzaClient
	mu     sync.Mutex
	finds  int
	stores []client.Store
}

func (c *countingPizzaAPI) FindStores(ctx context.Context, addr model.Address) ([]client.Store, error) {
	c.mu.Lock()
	c.finds++
	c.mu.Unlock()
	if c.stores != nil {
		return c.stores, nil
	}
	return c.MockPizzaClient.FindStores(ctx, addr)
}

type fakeRecorder struct {
	mu   sync.Mutex
	recs []model.DispatchRecord
}

func (f *fakeRecorder) InsertDispatch(ctx context.Context, rec model.DispatchRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recs = append(f.recs, rec)
	return nil
}

func testOrderConfig() model.OrderConfig {
	return model.OrderConfig{
		Customer: model.Customer{FirstName: "Pizza", LastName: "Lover", Email: "pizza@example.com", Phone: "1234567890"},
		Address:  model.Address{Street: "123 Main St", City: "Anytown", Region: "NY", PostalCode: "10001"},
		StoreID:  "1234",
		Pizza:    model.PizzaSelection{Type: "pepperoni", Size: "large"},
		Payment: model.Payment{
			Type: "creditcard", Number: "4111111111111111", Expiration: "01/25", CVV: "123", PostalCode: "10001",
		},
		PaymentSecretName: "dominos-payment-secret",
		Namespace:         "default",
	}
}

func firingAlert(name string) model.Alert {
	return model.Alert{
		Status:      model.AlertStatusFiring,
		Labels:      map[string]string{"alertname": name},
		Annotations: map[string]string{"description": name + " is firing"},
	}
}

// failingPizzaAPI fails the call named failAt and records every call made.
type failingPizzaAPI struct {
	*client.MockPizzaClient
	failAt string
	err    error

	mu    sync.Mutex
	calls []string
}

func (f *failingPizzaAPI) call(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
	if name == f.failAt {
		return f.err
	}
	return nil
}

func (f *failingPizzaAPI) FindStores(ctx context.Context, addr model.Address) ([]client.Store, error) {
	if err := f.call("find"); err != nil {
		return nil, err
	}
	return f.MockPizzaClient.FindStores(ctx, addr)
}

func (f *failingPizzaAPI) ValidateOrder(ctx context.Context, order *client.Order) error {
	if err := f.call("validate"); err != nil {
		return err
	}
	return f.MockPizzaClient.ValidateOrder(ctx, order)
}

func (f *failingPizzaAPI) PriceOrder(ctx context.Context, order *client.Order) (float64, error) {
	if err := f.call("price"); err != nil {
		return 0, err
	}
	return f.MockPizzaClient.PriceOrder(ctx, order)
}

func (f *failingPizzaAPI) PlaceOrder(ctx context.Context, order *client.Order) (*client.PlaceResult, error) {
	if err := f.call("place"); err != nil {
		return nil, err
	}
	return f.MockPizzaClient.PlaceOrder(ctx, order)
}
