// Order dispatch.
//
// Exactly one backend handles a dispatch:
//   - notification channel configured: ConfirmationBackend (ask in Slack, place nothing)
//   - otherwise ORDER_BACKEND: DirectBackend (pizza API or mock) or ResourceBackend (PizzaOrder)
//
// Backend failures come back as *DispatchError carrying the failing stage.
// Nothing is retried.

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kube-rca/pizza-observability/internal/metrics"
	"github.com/kube-rca/pizza-observability/internal/model"
)

// Dispatch stages reported in DispatchError.
const (
	StageNotification   = "notification"
	StageStoreLookup    = "store-lookup"
	StageValidate       = "validate"
	StagePrice          = "price"
	StagePlace          = "place"
	StageCreateResource = "create-resource"
)

// DispatchError - a backend call failed at Stage
type DispatchError struct {
	Stage string
	Err   error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *DispatchError) Unwrap() error {
	return e.Err
}

// Summary is the user-facing headline for the failed stage.
func (e *DispatchError) Summary() string {
	switch e.Stage {
	case StageNotification:
		return "Error sending Slack notification"
	case StageCreateResource:
		return "Error creating PizzaOrder resource"
	default:
		return "Error ordering pizza"
	}
}

// ErrBackendUnavailable is returned when the selected backend was not wired.
var ErrBackendUnavailable = errors.New("order backend not configured")

// DispatchResult - what a backend produced
type DispatchResult struct {
	Backend  string
	Message  string
	Order    *model.OrderDetails
	Resource *model.ResourceRef
}

// Backend is one way of turning an order configuration into an outcome.
type Backend interface {
	Name() string
	Dispatch(ctx context.Context, cfg model.OrderConfig, webhook model.AlertmanagerWebhook) (*DispatchResult, error)
}

type dispatchRecorder interface {
	InsertDispatch(ctx context.Context, rec model.DispatchRecord) error
}

// Dispatcher selects the backend for each dispatch and records the outcome.
type Dispatcher struct {
	notifier    Backend
	orders      Backend
	resources   Backend
	recorder    dispatchRecorder
	triggerName string
	logger      *zap.Logger
}

// NewDispatcher wires the backends. orders is the ORDER_BACKEND choice and
// may be the same value as resources. A nil backend fails its dispatches
// with ErrBackendUnavailable.
func NewDispatcher(notifier, orders, resources Backend, triggerName string, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		notifier:    notifier,
		orders:      orders,
		resources:   resources,
		triggerName: triggerName,
		logger:      logger,
	}
}

// WithRecorder writes every dispatch outcome to r.
func (d *Dispatcher) WithRecorder(r dispatchRecorder) *Dispatcher {
	d.recorder = r
	return d
}

// Dispatch handles a triggering alert batch.
func (d *Dispatcher) Dispatch(ctx context.Context, cfg model.OrderConfig, webhook model.AlertmanagerWebhook) (*DispatchResult, error) {
	if cfg.SlackWebhookURL != "" {
		return d.run(ctx, d.notifier, StageNotification, cfg, webhook)
	}
	return d.run(ctx, d.orders, StagePlace, cfg, webhook)
}

// DispatchResource always creates a PizzaOrder, whatever ORDER_BACKEND says.
// Used once a human confirmed the order.
func (d *Dispatcher) DispatchResource(ctx context.Context, cfg model.OrderConfig) (*DispatchResult, error) {
	webhook := model.AlertmanagerWebhook{
		Alerts: []model.Alert{{
			Status: model.AlertStatusFiring,
			Labels: map[string]string{"alertname": d.triggerName},
		}},
	}
	return d.run(ctx, d.resources, StageCreateResource, cfg, webhook)
}

func (d *Dispatcher) run(ctx context.Context, backend Backend, missingStage string, cfg model.OrderConfig, webhook model.AlertmanagerWebhook) (*DispatchResult, error) {
	if backend == nil {
		err := &DispatchError{Stage: missingStage, Err: ErrBackendUnavailable}
		d.record(ctx, "none", webhook, nil, err)
		return nil, err
	}

	result, err := backend.Dispatch(ctx, cfg, webhook)
	d.record(ctx, backend.Name(), webhook, result, err)
	if err != nil {
		d.logger.Error("dispatch failed",
			zap.String("backend", backend.Name()),
			zap.Error(err),
		)
		return nil, err
	}

	d.logger.Info("dispatch succeeded",
		zap.String("backend", backend.Name()),
		zap.String("message", result.Message),
	)
	return result, nil
}

// record updates metrics and, when enabled, the history table.
// History failures are logged only.
func (d *Dispatcher) record(ctx context.Context, backend string, webhook model.AlertmanagerWebhook, result *DispatchResult, err error) {
	rec := model.DispatchRecord{
		ID:        uuid.NewString(),
		AlertName: d.alertName(webhook),
		Backend:   backend,
		Outcome:   model.OutcomeSucceeded,
		CreatedAt: time.Now().UTC(),
	}
	if err != nil {
		rec.Outcome = model.OutcomeFailed
		rec.Error = err.Error()
		var de *DispatchError
		if errors.As(err, &de) {
			rec.Stage = de.Stage
		}
	}
	if result != nil {
		if result.Order != nil {
			rec.OrderID = result.Order.OrderID
		}
		if result.Resource != nil {
			rec.ResourceName = result.Resource.Name
			rec.Namespace = result.Resource.Namespace
		}
	}

	metrics.RecordDispatch(backend, rec.Outcome)

	if d.recorder == nil {
		return
	}
	if recErr := d.recorder.InsertDispatch(ctx, rec); recErr != nil {
		d.logger.Warn("failed to record dispatch",
			zap.String("dispatch_id", rec.ID),
			zap.Error(recErr),
		)
	}
}

// alertName prefers the trigger alert, then the first named alert.
func (d *Dispatcher) alertName(webhook model.AlertmanagerWebhook) string {
	for _, a := range webhook.Alerts {
		if a.Name() == d.triggerName {
			return a.Name()
		}
	}
	for _, a := range webhook.Alerts {
		if a.Name() != "" {
			return a.Name()
		}
	}
	return "unknown"
}
