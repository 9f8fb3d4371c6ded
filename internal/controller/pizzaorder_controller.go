package controller

import (
	"context"
	"errors"
	"fmt"
	"time"

	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/equality"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/types"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	logf "sigs.k8s.io/controller-runtime/pkg/log"

	pizzav1 "github.com/kube-rca/pizza-observability/api/v1"
	pizzaclient "github.com/kube-rca/pizza-observability/internal/client"
	"github.com/kube-rca/pizza-observability/internal/metrics"
	"github.com/kube-rca/pizza-observability/internal/model"
	"github.com/kube-rca/pizza-observability/internal/service"
)

const (
	// TrackInterval is how often a placed order is tracked.
	TrackInterval = 2 * time.Minute
	// RetryInterval is the requeue delay after a failed step.
	RetryInterval = 5 * time.Minute
)

// Payment Secret keys.
const (
	SecretNumber       = "Number"
	SecretExpiration   = "Expiration"
	SecretSecurityCode = "SecurityCode"
	SecretPostalCode   = "PostalCode"
)

var errNoStore = errors.New("no open delivery store near the address")

// PizzaOrderReconciler places PizzaOrders with the pizza API and tracks
// them until delivery.
type PizzaOrderReconciler struct {
	client.Client
	Scheme *runtime.Scheme
	Pizza  pizzaclient.PizzaAPI

	// Now defaults to time.Now.
	Now func() time.Time
}

// +kubebuilder:rbac:groups=pizza.bilalashraf.xyz,resources=pizzaorders,verbs=get;list;watch;create;update;patch;delete
// +kubebuilder:rbac:groups=pizza.bilalashraf.xyz,resources=pizzaorders/status,verbs=get;update;patch
// +kubebuilder:rbac:groups="",resources=secrets,verbs=get;list;watch

// Reconcile moves a PizzaOrder forward by one step:
//   - delivered: nothing left to do
//   - placed: refresh the tracker, requeue after TrackInterval
//   - placeOrder set and not placed: find a store, price, pay, place
//
// Failed steps requeue after RetryInterval without returning an error.
// Status changes are written once, when Reconcile returns. A failed write
// is logged and the resource is looked at again after TrackInterval.
func (r *PizzaOrderReconciler) Reconcile(ctx context.Context, req ctrl.Request) (result ctrl.Result, err error) {
	log := logf.FromContext(ctx)

	order := &pizzav1.PizzaOrder{}
	if err := r.Get(ctx, req.NamespacedName, order); err != nil {
		if apierrors.IsNotFound(err) {
			return ctrl.Result{}, nil
		}
		return ctrl.Result{}, err
	}

	before := order.Status.DeepCopy()
	defer func() {
		if equality.Semantic.DeepEqual(before, &order.Status) {
			return
		}
		if statusErr := r.Status().Update(ctx, order); statusErr != nil {
			log.Error(statusErr, "Failed to update PizzaOrder status")
			metrics.RecordReconcile("status", "error")
			if err == nil {
				result = ctrl.Result{RequeueAfter: TrackInterval}
			}
		}
	}()

	switch {
	case order.Status.Delivered:
		log.V(1).Info("PizzaOrder already delivered")
		return ctrl.Result{}, nil

	case order.Status.Placed:
		if err := r.track(ctx, order); err != nil {
			log.Error(err, "Failed to update tracking information", "orderID", order.Status.OrderID)
			metrics.RecordReconcile("track", "error")
			return ctrl.Result{RequeueAfter: TrackInterval}, nil
		}
		metrics.RecordReconcile("track", "success")
		if order.Status.Delivered {
			log.Info("Pizza delivered", "orderID", order.Status.OrderID)
			return ctrl.Result{}, nil
		}
		return ctrl.Result{RequeueAfter: TrackInterval}, nil

	case order.Spec.PlaceOrder:
		step, err := r.place(ctx, order)
		if err != nil {
			log.Error(err, "Failed to place pizza order", "step", step)
			metrics.RecordReconcile(step, "error")
			return ctrl.Result{RequeueAfter: RetryInterval}, nil
		}
		metrics.RecordReconcile("place", "success")
		metrics.OrdersPlacedTotal.Inc()
		log.Info("Pizza order placed successfully", "orderID", order.Status.OrderID, "price", order.Status.Price)
		return ctrl.Result{RequeueAfter: TrackInterval}, nil
	}

	return ctrl.Result{}, nil
}

// place submits the order and fills the status. The returned step names
// the part that failed.
func (r *PizzaOrderReconciler) place(ctx context.Context, order *pizzav1.PizzaOrder) (string, error) {
	spec := order.Spec
	if spec.Address == nil || spec.Customer == nil || len(spec.Pizzas) == 0 {
		return "spec", errors.New("spec needs customer, address and at least one pizza")
	}
	addr := model.Address{
		Street:     spec.Address.Street,
		City:       spec.Address.City,
		Region:     spec.Address.Region,
		PostalCode: spec.Address.PostalCode,
	}
	customer := model.Customer{
		FirstName: spec.Customer.FirstName,
		LastName:  spec.Customer.LastName,
		Email:     spec.Customer.Email,
		Phone:     spec.Address.Phone,
	}

	// 1. store
	stores, err := r.Pizza.FindStores(ctx, addr)
	if err != nil {
		return service.StageStoreLookup, err
	}
	store := service.SelectNearestStore(stores, "")
	if store.StoreID == "" {
		return service.StageStoreLookup, errNoStore
	}
	order.Status.Store = &pizzav1.StoreStatus{ID: store.StoreID, Address: store.Address}

	// 2. build, validate, price
	pizzas := make([]pizzav1.Pizza, 0, len(spec.Pizzas))
	for _, p := range spec.Pizzas {
		if p != nil {
			pizzas = append(pizzas, *p)
		}
	}
	apiOrder := service.BuildOrder(customer, addr, store.StoreID, pizzas)
	if err := r.Pizza.ValidateOrder(ctx, apiOrder); err != nil {
		return service.StageValidate, err
	}
	price, err := r.Pizza.PriceOrder(ctx, apiOrder)
	if err != nil {
		return service.StagePrice, err
	}
	order.Status.Price = fmt.Sprintf("%.2f", price)

	// 3. payment
	payment, err := r.payment(ctx, order, price)
	if err != nil {
		return "payment", err
	}
	apiOrder.Payments = []pizzaclient.Payment{payment}

	// 4. place
	placed, err := r.Pizza.PlaceOrder(ctx, apiOrder)
	if err != nil {
		return service.StagePlace, err
	}
	order.Status.OrderID = placed.OrderID
	order.Status.Placed = true
	order.Status.Tracker = &pizzav1.Tracker{Prep: r.now().Format(time.RFC3339)}
	return service.StagePlace, nil
}

func (r *PizzaOrderReconciler) payment(ctx context.Context, order *pizzav1.PizzaOrder, amount float64) (pizzaclient.Payment, error) {
	name := order.Spec.PaymentSecret.Name
	if name == "" {
		return pizzaclient.Payment{}, errors.New("payment secret name is empty")
	}
	secret := &corev1.Secret{}
	if err := r.Get(ctx, types.NamespacedName{Namespace: order.Namespace, Name: name}, secret); err != nil {
		return pizzaclient.Payment{}, fmt.Errorf("failed to get payment secret %s: %w", name, err)
	}
	return service.CardPayment(amount,
		string(secret.Data[SecretNumber]),
		string(secret.Data[SecretExpiration]),
		string(secret.Data[SecretSecurityCode]),
		string(secret.Data[SecretPostalCode]),
	), nil
}

// track copies the tracker stages that have been reached into the status.
func (r *PizzaOrderReconciler) track(ctx context.Context, order *pizzav1.PizzaOrder) error {
	storeID := ""
	if order.Status.Store != nil {
		storeID = order.Status.Store.ID
	}
	status, err := r.Pizza.Track(ctx, storeID, order.Status.OrderID)
	if err != nil {
		return err
	}

	if order.Status.Tracker == nil {
		order.Status.Tracker = &pizzav1.Tracker{}
	}
	t := order.Status.Tracker
	setIfReached(&t.Prep, status.Prep)
	setIfReached(&t.Bake, status.Bake)
	setIfReached(&t.QualityCheck, status.QualityCheck)
	setIfReached(&t.OutForDelivery, status.OutForDelivery)
	setIfReached(&t.Delivered, status.Delivered)
	if t.Delivered != "" {
		order.Status.Delivered = true
	}
	return nil
}

func setIfReached(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func (r *PizzaOrderReconciler) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

// SetupWithManager sets up the controller with the Manager.
func (r *PizzaOrderReconciler) SetupWithManager(mgr ctrl.Manager) error {
	return ctrl.NewControllerManagedBy(mgr).
		For(&pizzav1.PizzaOrder{}).
		Named("pizzaorder").
		Complete(r)
}
