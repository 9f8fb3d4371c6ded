package model

import (
	"time"

	pizzav1 "github.com/kube-rca/pizza-observability/api/v1"
)

// MessageResponse - plain acknowledgement
type MessageResponse struct {
	Message string `json:"message"`
}

// InvalidPayloadResponse - 400 for a body without a usable alerts list
type InvalidPayloadResponse struct {
	Message        string `json:"message"`
	ExpectedFormat string `json:"expectedFormat"`
}

// ErrorResponse - 500 carrying the failing stage as cause
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
	Cause   string `json:"cause,omitempty"`
}

// DispatchResponse - 200 for a handled alert or confirmation
type DispatchResponse struct {
	Message      string        `json:"message"`
	OrderDetails *OrderDetails `json:"orderDetails,omitempty"`
	ResourceName string        `json:"resourceName,omitempty"`
	Namespace    string        `json:"namespace,omitempty"`
}

// OrderStatusResponse - GET /?resource=<name>
// price and orderId read "Unknown" until the controller has filled them.
type OrderStatusResponse struct {
	Name      string                   `json:"name"`
	Status    pizzav1.PizzaOrderStatus `json:"status"`
	Placed    bool                     `json:"placed"`
	Delivered bool                     `json:"delivered"`
	Price     string                   `json:"price"`
	OrderID   string                   `json:"orderId"`
	Store     pizzav1.StoreStatus      `json:"store"`
	Tracker   pizzav1.Tracker          `json:"tracker"`
	Stage     string                   `json:"stage"`
}

type PingResponse struct {
	Message string `json:"message"`
}

// DispatchRecord - one row of the dispatch history
type DispatchRecord struct {
	ID           string    `json:"id"`
	AlertName    string    `json:"alertName"`
	Backend      string    `json:"backend"`
	Outcome      string    `json:"outcome"`
	Stage        string    `json:"stage,omitempty"`
	OrderID      string    `json:"orderId,omitempty"`
	ResourceName string    `json:"resourceName,omitempty"`
	Namespace    string    `json:"namespace,omitempty"`
	Error        string    `json:"error,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Dispatch outcomes recorded in the history.
const (
	OutcomeSucceeded = "succeeded"
	OutcomeFailed    = "failed"
)

// DispatchListResponse - GET /api/v1/dispatches
type DispatchListResponse struct {
	Status string           `json:"status"`
	Data   []DispatchRecord `json:"data"`
}
