package model

import "fmt"

// OrderConfig - everything needed to place one order.
// Built fresh per request and always fully populated.
type OrderConfig struct {
	Customer          Customer
	Address           Address
	StoreID           string
	Pizza             PizzaSelection
	Payment           Payment
	PaymentSecretName string
	Namespace         string

	// SlackWebhookURL is the notification channel. Empty means order
	// without asking.
	SlackWebhookURL string
}

type Customer struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

type Address struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	Region     string `json:"region"`
	PostalCode string `json:"postalCode"`
}

// String formats the address as shown in Slack: "Street, City, Region PostalCode".
func (a Address) String() string {
	return fmt.Sprintf("%s, %s, %s %s", a.Street, a.City, a.Region, a.PostalCode)
}

type PizzaSelection struct {
	Type string `json:"type"`
	Size string `json:"size"`
}

// Payment - card details used by the direct ordering path
type Payment struct {
	Type       string
	Number     string
	Expiration string
	CVV        string
	PostalCode string
}

// OrderDetails - result of a directly placed order
type OrderDetails struct {
	OrderID               string  `json:"orderId"`
	Price                 float64 `json:"price"`
	EstimatedDeliveryTime string  `json:"estimatedDeliveryTime"`
	TrackingURL           string  `json:"trackingUrl"`
}

// ResourceRef - identity of a created PizzaOrder resource
type ResourceRef struct {
	Name      string `json:"resourceName"`
	Namespace string `json:"namespace"`
}
