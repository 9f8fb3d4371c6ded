// Kubernetes client for PizzaOrder resources.
//
// The webhook service only creates and reads PizzaOrder objects.
// Status is owned by the order controller.

package client

import (
	"context"
	"fmt"

	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/apimachinery/pkg/types"
	clientgoscheme "k8s.io/client-go/kubernetes/scheme"
	ctrlclient "sigs.k8s.io/controller-runtime/pkg/client"
	ctrlconfig "sigs.k8s.io/controller-runtime/pkg/client/config"

	pizzav1 "github.com/kube-rca/pizza-observability/api/v1"
)

// NewScheme returns a scheme with the core types and PizzaOrder registered
// under gv.
func NewScheme(gv schema.GroupVersion) (*runtime.Scheme, error) {
	s := runtime.NewScheme()
	if err := clientgoscheme.AddToScheme(s); err != nil {
		return nil, fmt.Errorf("failed to register core types: %w", err)
	}
	if err := pizzav1.AddToSchemeAt(s, gv); err != nil {
		return nil, fmt.Errorf("failed to register %s: %w", gv, err)
	}
	return s, nil
}

// NewKubeClient loads in-cluster config, falling back to the local kubeconfig.
func NewKubeClient(gv schema.GroupVersion) (ctrlclient.Client, error) {
	restCfg, err := ctrlconfig.GetConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load kubernetes config: %w", err)
	}
	s, err := NewScheme(gv)
	if err != nil {
		return nil, err
	}
	c, err := ctrlclient.New(restCfg, ctrlclient.Options{Scheme: s})
	if err != nil {
		return nil, fmt.Errorf("failed to create kubernetes client: %w", err)
	}
	return c, nil
}

// OrderResourceClient creates and reads PizzaOrder objects.
type OrderResourceClient struct {
	client ctrlclient.Client
}

func NewOrderResourceClient(c ctrlclient.Client) *OrderResourceClient {
	return &OrderResourceClient{client: c}
}

func (c *OrderResourceClient) Create(ctx context.Context, order *pizzav1.PizzaOrder) error {
	if err := c.client.Create(ctx, order); err != nil {
		return fmt.Errorf("failed to create PizzaOrder %s/%s: %w", order.Namespace, order.Name, err)
	}
	return nil
}

// Get returns the PizzaOrder. A missing object is reported with the
// apimachinery NotFound error wrapped, so apierrors.IsNotFound still works.
func (c *OrderResourceClient) Get(ctx context.Context, name, namespace string) (*pizzav1.PizzaOrder, error) {
	order := &pizzav1.PizzaOrder{}
	if err := c.client.Get(ctx, types.NamespacedName{Namespace: namespace, Name: name}, order); err != nil {
		return nil, fmt.Errorf("failed to get PizzaOrder %s/%s: %w", namespace, name, err)
	}
	return order, nil
}

// GetOrderStatus returns only the status of the named PizzaOrder.
func (c *OrderResourceClient) GetOrderStatus(ctx context.Context, name, namespace string) (pizzav1.PizzaOrderStatus, error) {
	order, err := c.Get(ctx, name, namespace)
	if err != nil {
		return pizzav1.PizzaOrderStatus{}, err
	}
	return order.Status, nil
}
