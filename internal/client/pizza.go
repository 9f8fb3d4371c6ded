// Client for the Dominos "power" ordering API.
//
// Order flow used by both the direct backend and the order controller:
//  1. FindStores: store-locator for the delivery address
//  2. ValidateOrder: validate-order
//  3. PriceOrder: price-order, fills Order.Amount
//  4. PlaceOrder: place-order with payments attached
//  5. Track: tracker lookup for a placed order
//
// Environment:
//   - PIZZA_API_URL (default: https://order.dominos.com/power)
//   - PIZZA_TRACKER_URL

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/kube-rca/pizza-observability/internal/model"
)

// PizzaAPI is implemented by DominosClient and MockPizzaClient.
type PizzaAPI interface {
	FindStores(ctx context.Context, addr model.Address) ([]Store, error)
	ValidateOrder(ctx context.Context, order *Order) error
	PriceOrder(ctx context.Context, order *Order) (float64, error)
	PlaceOrder(ctx context.Context, order *Order) (*PlaceResult, error)
	Track(ctx context.Context, storeID, orderID string) (*TrackerStatus, error)
}

// Store - one entry of the store-locator response
type Store struct {
	StoreID         string  `json:"StoreID"`
	Address         string  `json:"AddressDescription"`
	IsOpen          bool    `json:"IsOpen"`
	MinDistance     float64 `json:"MinDistance"`
	IsDeliveryStore bool    `json:"IsDeliveryStore"`
	IsOnlineCapable bool    `json:"IsOnlineCapable"`
	ServiceIsOpen   struct {
		Delivery bool `json:"Delivery"`
		Carryout bool `json:"Carryout"`
	} `json:"ServiceIsOpen"`
}

// OrderAddress - delivery address in the API's casing
type OrderAddress struct {
	Street     string `json:"Street"`
	City       string `json:"City"`
	Region     string `json:"Region"`
	PostalCode string `json:"PostalCode"`
	Type       string `json:"Type,omitempty"`
}

// Product - one line item. Options map a topping code to {"1/1": "1"}.
type Product struct {
	Code    string                       `json:"Code"`
	Qty     int                          `json:"Qty"`
	ID      int                          `json:"ID"`
	Options map[string]map[string]string `json:"Options,omitempty"`
}

type Payment struct {
	Type         string  `json:"Type"`
	Amount       float64 `json:"Amount"`
	Number       string  `json:"Number,omitempty"`
	CardType     string  `json:"CardType,omitempty"`
	Expiration   string  `json:"Expiration,omitempty"`
	SecurityCode string  `json:"SecurityCode,omitempty"`
	PostalCode   string  `json:"PostalCode,omitempty"`
	TipAmount    float64 `json:"TipAmount,omitempty"`
}

type Order struct {
	Address       OrderAddress `json:"Address"`
	FirstName     string       `json:"FirstName"`
	LastName      string       `json:"LastName"`
	Email         string       `json:"Email"`
	Phone         string       `json:"Phone"`
	StoreID       string       `json:"StoreID"`
	ServiceMethod string       `json:"ServiceMethod"`
	LanguageCode  string       `json:"LanguageCode"`
	OrderChannel  string       `json:"OrderChannel"`
	OrderMethod   string       `json:"OrderMethod"`
	Version       string       `json:"Version"`
	Products      []Product    `json:"Products"`
	Payments      []Payment    `json:"Payments"`
	OrderID       string       `json:"OrderID,omitempty"`
	Amounts       *Amounts     `json:"Amounts,omitempty"`

	// Amount is the customer total after PriceOrder.
	Amount float64 `json:"-"`
}

type Amounts struct {
	Customer float64 `json:"Customer"`
}

// PlaceResult - what place-order reports back
type PlaceResult struct {
	OrderID               string
	EstimatedDeliveryTime string
	TrackingURL           string
}

// TrackerStatus - tracker lookup result; empty stage means not reached
type TrackerStatus struct {
	OrderID        string `json:"OrderID"`
	StoreID        string `json:"StoreID"`
	OrderStatus    string `json:"OrderStatus"`
	Prep           string `json:"PrepTime,omitempty"`
	Bake           string `json:"OvenTime,omitempty"`
	QualityCheck   string `json:"RackTime,omitempty"`
	OutForDelivery string `json:"RouteTime,omitempty"`
	Delivered      string `json:"DeliveryTime,omitempty"`
}

// NewOrder returns an empty delivery order with the fixed channel fields set.
func NewOrder() *Order {
	return &Order{
		ServiceMethod: "Delivery",
		LanguageCode:  "en",
		OrderChannel:  "OLO",
		OrderMethod:   "Web",
		Version:       "1.0",
		Products:      []Product{},
		Payments:      []Payment{},
	}
}

// powerResponse - common envelope of validate/price/place
type powerResponse struct {
	Status      int `json:"Status"`
	StatusItems []struct {
		Code    string `json:"Code"`
		Message string `json:"Message,omitempty"`
	} `json:"StatusItems"`
	Order struct {
		OrderID              string  `json:"OrderID"`
		EstimatedWaitMinutes string  `json:"EstimatedWaitMinutes"`
		Amounts              Amounts `json:"Amounts"`
		StatusItems          []struct {
			Code string `json:"Code"`
		} `json:"StatusItems"`
	} `json:"Order"`
}

func (r powerResponse) err() error {
	if r.Status >= 0 {
		return nil
	}
	codes := make([]string, 0, len(r.StatusItems)+len(r.Order.StatusItems))
	for _, it := range r.StatusItems {
		codes = append(codes, it.Code)
	}
	for _, it := range r.Order.StatusItems {
		codes = append(codes, it.Code)
	}
	return fmt.Errorf("pizza API rejected order: %s", strings.Join(codes, ", "))
}

// DominosClient talks to the power API over HTTP.
// The http.Client has no timeout; calls are bounded only by ctx.
type DominosClient struct {
	baseURL    string
	trackerURL string
	httpClient *http.Client
}

func NewDominosClient(baseURL, trackerURL string) *DominosClient {
	return &DominosClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		trackerURL: trackerURL,
		httpClient: &http.Client{},
	}
}

func (c *DominosClient) FindStores(ctx context.Context, addr model.Address) ([]Store, error) {
	q := url.Values{}
	q.Set("type", "Delivery")
	q.Set("s", addr.Street)
	q.Set("c", fmt.Sprintf("%s, %s %s", addr.City, addr.Region, addr.PostalCode))

	var resp struct {
		Stores []Store `json:"Stores"`
	}
	if err := c.do(ctx, http.MethodGet, c.baseURL+"/store-locator?"+q.Encode(), nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to find stores: %w", err)
	}
	return resp.Stores, nil
}

func (c *DominosClient) ValidateOrder(ctx context.Context, order *Order) error {
	var resp powerResponse
	if err := c.do(ctx, http.MethodPost, c.baseURL+"/validate-order", map[string]*Order{"Order": order}, &resp); err != nil {
		return fmt.Errorf("failed to validate order: %w", err)
	}
	return resp.err()
}

func (c *DominosClient) PriceOrder(ctx context.Context, order *Order) (float64, error) {
	var resp powerResponse
	if err := c.do(ctx, http.MethodPost, c.baseURL+"/price-order", map[string]*Order{"Order": order}, &resp); err != nil {
		return 0, fmt.Errorf("failed to price order: %w", err)
	}
	if err := resp.err(); err != nil {
		return 0, err
	}
	order.Amount = resp.Order.Amounts.Customer
	if resp.Order.OrderID != "" {
		order.OrderID = resp.Order.OrderID
	}
	return order.Amount, nil
}

func (c *DominosClient) PlaceOrder(ctx context.Context, order *Order) (*PlaceResult, error) {
	var resp powerResponse
	if err := c.do(ctx, http.MethodPost, c.baseURL+"/place-order", map[string]*Order{"Order": order}, &resp); err != nil {
		return nil, fmt.Errorf("failed to place order: %w", err)
	}
	if err := resp.err(); err != nil {
		return nil, err
	}

	result := &PlaceResult{OrderID: resp.Order.OrderID}
	if resp.Order.EstimatedWaitMinutes != "" {
		result.EstimatedDeliveryTime = resp.Order.EstimatedWaitMinutes + " minutes"
	}
	return result, nil
}

func (c *DominosClient) Track(ctx context.Context, storeID, orderID string) (*TrackerStatus, error) {
	q := url.Values{}
	q.Set("StoreID", storeID)
	q.Set("OrderKey", orderID)

	var status TrackerStatus
	if err := c.do(ctx, http.MethodGet, c.trackerURL+"?"+q.Encode(), nil, &status); err != nil {
		return nil, fmt.Errorf("failed to track order: %w", err)
	}
	return &status, nil
}

func (c *DominosClient) do(ctx context.Context, method, endpoint string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Referer", "https://order.dominos.com/en/pages/order/")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}
