package client

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kube-rca/pizza-observability/internal/model"
)

// mockPrice is what every mock order costs.
const mockPrice = 19.99

// MockStageStep is how long a mock order stays in each tracker stage.
// Prep starts when the order is placed; delivery follows four steps later.
const MockStageStep = time.Minute

// MockPizzaClient is an in-process PizzaAPI for demos and tests.
// It never talks to a real store.
type MockPizzaClient struct {
	storeID string
	now     func() time.Time

	mu       sync.Mutex
	placed   []Order
	placedAt map[string]time.Time
}

func NewMockPizzaClient(storeID string) *MockPizzaClient {
	return &MockPizzaClient{
		storeID:  storeID,
		now:      time.Now,
		placedAt: make(map[string]time.Time),
	}
}

// WithClock replaces time.Now for the tracker.
func (m *MockPizzaClient) WithClock(now func() time.Time) *MockPizzaClient {
	m.now = now
	return m
}

func (m *MockPizzaClient) FindStores(ctx context.Context, addr model.Address) ([]Store, error) {
	s := Store{
		StoreID:         m.storeID,
		Address:         "Mock store near " + addr.City,
		IsOpen:          true,
		MinDistance:     1,
		IsDeliveryStore: true,
		IsOnlineCapable: true,
	}
	s.ServiceIsOpen.Delivery = true
	return []Store{s}, nil
}

func (m *MockPizzaClient) ValidateOrder(ctx context.Context, order *Order) error {
	return nil
}

func (m *MockPizzaClient) PriceOrder(ctx context.Context, order *Order) (float64, error) {
	order.Amount = mockPrice
	return mockPrice, nil
}

func (m *MockPizzaClient) PlaceOrder(ctx context.Context, order *Order) (*PlaceResult, error) {
	order.OrderID = "TEST-" + strings.ToUpper(uuid.NewString()[:8])

	m.mu.Lock()
	m.placed = append(m.placed, *order)
	m.placedAt[order.OrderID] = m.now()
	m.mu.Unlock()

	return &PlaceResult{
		OrderID:               order.OrderID,
		EstimatedDeliveryTime: "30-45 minutes",
	}, nil
}

// Track walks the order through prep, bake, quality check, out for
// delivery and delivered, one MockStageStep apart. Orders this client did
// not place start the walk at their first Track call.
func (m *MockPizzaClient) Track(ctx context.Context, storeID, orderID string) (*TrackerStatus, error) {
	m.mu.Lock()
	now := m.now()
	start, ok := m.placedAt[orderID]
	if !ok {
		start = now
		m.placedAt[orderID] = start
	}
	m.mu.Unlock()

	st := &TrackerStatus{
		OrderID:     orderID,
		StoreID:     storeID,
		OrderStatus: "Makeline",
		Prep:        start.UTC().Format(time.RFC3339),
	}
	stages := []struct {
		dst    *string
		status string
	}{
		{&st.Bake, "Oven"},
		{&st.QualityCheck, "Routing Station"},
		{&st.OutForDelivery, "Out the Door"},
		{&st.Delivered, "Complete"},
	}
	for i, stage := range stages {
		at := start.Add(time.Duration(i+1) * MockStageStep)
		if now.Before(at) {
			break
		}
		*stage.dst = at.UTC().Format(time.RFC3339)
		st.OrderStatus = stage.status
	}
	return st, nil
}

// Placed returns a copy of every order placed so far.
func (m *MockPizzaClient) Placed() []Order {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Order(nil), m.placed...)
}
