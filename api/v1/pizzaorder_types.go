package v1

import (
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// Address is the delivery address of an order.
type Address struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	Region     string `json:"region"`
	PostalCode string `json:"postalCode"`

	// phone is the contact number the store calls on delivery.
	// +optional
	Phone string `json:"phone,omitempty"`
}

// Customer identifies who the order is for.
type Customer struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// Pizza is a single pizza line item.
type Pizza struct {
	// size is one of small, medium, large.
	Size string `json:"size"`

	// toppings are free-form topping names (pepperoni, onion, ...).
	// +optional
	Toppings []string `json:"toppings,omitempty"`
}

// PizzaOrderSpec is the immutable order intent. It is written once at
// creation and never modified afterwards.
type PizzaOrderSpec struct {
	// placeOrder must be true for the controller to submit the order.
	PlaceOrder bool `json:"placeOrder"`

	Customer *Customer `json:"customer"`
	Address  *Address  `json:"address"`
	Pizzas   []*Pizza  `json:"pizzas"`

	// paymentSecret references a Secret in the same namespace holding
	// Number, Expiration, SecurityCode and PostalCode.
	// +optional
	PaymentSecret corev1.LocalObjectReference `json:"paymentSecret,omitempty"`
}

// StoreStatus describes the store that accepted the order.
type StoreStatus struct {
	// +optional
	ID string `json:"id,omitempty"`
	// +optional
	Address string `json:"address,omitempty"`
}

// Tracker records when each preparation stage was reached.
// Values are RFC3339 timestamps; an empty value means not reached yet.
type Tracker struct {
	// +optional
	Prep string `json:"prep,omitempty"`
	// +optional
	Bake string `json:"bake,omitempty"`
	// +optional
	QualityCheck string `json:"qualityCheck,omitempty"`
	// +optional
	OutForDelivery string `json:"outForDelivery,omitempty"`
	// +optional
	Delivered string `json:"delivered,omitempty"`
}

// PizzaOrderStatus is owned by the order controller.
type PizzaOrderStatus struct {
	// +optional
	OrderID string `json:"orderId,omitempty"`
	// +optional
	Price string `json:"price,omitempty"`
	// +optional
	Placed bool `json:"placed,omitempty"`
	// +optional
	Delivered bool `json:"delivered,omitempty"`
	// +optional
	Store *StoreStatus `json:"store,omitempty"`
	// +optional
	Tracker *Tracker `json:"tracker,omitempty"`
}

// +kubebuilder:object:root=true
// +kubebuilder:subresource:status
// +kubebuilder:printcolumn:name="Placed",type="boolean",JSONPath=".status.placed"
// +kubebuilder:printcolumn:name="Delivered",type="boolean",JSONPath=".status.delivered"
// +kubebuilder:printcolumn:name="Order",type="string",JSONPath=".status.orderId"
// +kubebuilder:printcolumn:name="Age",type="date",JSONPath=".metadata.creationTimestamp"

// PizzaOrder is the Schema for the pizzaorders API.
type PizzaOrder struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   PizzaOrderSpec   `json:"spec,omitempty"`
	Status PizzaOrderStatus `json:"status,omitempty"`
}

// +kubebuilder:object:root=true

// PizzaOrderList contains a list of PizzaOrder.
type PizzaOrderList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []PizzaOrder `json:"items"`
}

func init() {
	SchemeBuilder.Register(&PizzaOrder{}, &PizzaOrderList{})
}
