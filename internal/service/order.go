// Building pizza-API orders from an order configuration or a PizzaOrder spec.
// Shared by the direct backend and the order controller.

package service

import (
	"strings"

	pizzav1 "github.com/kube-rca/pizza-observability/api/v1"
	"github.com/kube-rca/pizza-observability/internal/client"
	"github.com/kube-rca/pizza-observability/internal/model"
)

const (
	// maxStoreDistance is the best distance before any store is seen.
	maxStoreDistance = 100.0

	// DeliveryTip is added to every payment.
	DeliveryTip = 5.0

	defaultDeliveryTime = "30-45 minutes"
	defaultTrackingURL  = "https://www.dominos.com/en/pages/tracker"
)

var productCodes = map[string]string{
	"small":   "10SCREEN",
	"medium":  "12SCREEN",
	"large":   "14SCREEN",
	"x-large": "16SCREEN",
}

var toppingCodes = map[string][]string{
	"pepperoni":    {"P"},
	"sausage":      {"S"},
	"mushroom":     {"M"},
	"onion":        {"O"},
	"green pepper": {"G"},
	"green_pepper": {"G"},
	"bacon":        {"K"},
	"beef":         {"B"},
	"ham":          {"H"},
	"pineapple":    {"N"},
	"spinach":      {"Si"},
	"veggie":       {"M", "O", "G"},
	"cheese":       {},
}

// SelectNearestStore picks the closest store that is online-capable, a
// delivery store, open and currently delivering. A store must be strictly
// closer than the best seen so far, so the first of equally distant stores
// wins. With no qualifying store the result only carries fallbackID.
func SelectNearestStore(stores []client.Store, fallbackID string) client.Store {
	best := client.Store{StoreID: fallbackID}
	distance := maxStoreDistance
	for _, s := range stores {
		if s.IsOnlineCapable &&
			s.IsDeliveryStore &&
			s.IsOpen &&
			s.ServiceIsOpen.Delivery &&
			s.MinDistance < distance {
			distance = s.MinDistance
			best = s
		}
	}
	return best
}

// ProductCode maps a pizza size to the hand-tossed product code.
// Unknown sizes order a large.
func ProductCode(size string) string {
	if code, ok := productCodes[strings.ToLower(strings.TrimSpace(size))]; ok {
		return code
	}
	return productCodes["large"]
}

// ResourceSize maps a requested size onto the sizes a PizzaOrder accepts.
func ResourceSize(size string) string {
	switch s := strings.ToLower(strings.TrimSpace(size)); s {
	case "small", "medium", "large":
		return s
	default:
		return "large"
	}
}

// ToppingOptions returns product options for the toppings: normal cheese and
// sauce plus one full-coverage option per known topping. Unknown toppings
// are skipped.
func ToppingOptions(toppings []string) map[string]map[string]string {
	opts := map[string]map[string]string{
		"C": {"1/1": "1"},
		"X": {"1/1": "1"},
	}
	for _, t := range toppings {
		for _, code := range toppingCodes[strings.ToLower(strings.TrimSpace(t))] {
			opts[code] = map[string]string{"1/1": "1"}
		}
	}
	return opts
}

// BuildOrder creates a delivery order for storeID with one product per pizza.
func BuildOrder(customer model.Customer, addr model.Address, storeID string, pizzas []pizzav1.Pizza) *client.Order {
	order := client.NewOrder()
	order.Address = client.OrderAddress{
		Street:     addr.Street,
		City:       addr.City,
		Region:     addr.Region,
		PostalCode: addr.PostalCode,
		Type:       "House",
	}
	order.FirstName = customer.FirstName
	order.LastName = customer.LastName
	order.Email = customer.Email
	order.Phone = customer.Phone
	order.StoreID = storeID

	for i, p := range pizzas {
		order.Products = append(order.Products, client.Product{
			Code:    ProductCode(p.Size),
			Qty:     1,
			ID:      i + 1,
			Options: ToppingOptions(p.Toppings),
		})
	}
	return order
}

// CardPayment returns the payment for amount including the delivery tip.
func CardPayment(amount float64, number, expiration, securityCode, postalCode string) client.Payment {
	return client.Payment{
		Type:         "CreditCard",
		Amount:       amount,
		Number:       number,
		Expiration:   strings.ReplaceAll(expiration, "/", ""),
		SecurityCode: securityCode,
		PostalCode:   postalCode,
		TipAmount:    DeliveryTip,
	}
}
