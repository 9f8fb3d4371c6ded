// Alert processing: classify, resolve, dispatch.
//
// Flow:
//  1. ShouldOrder: any firing alert named TRIGGER_ALERT_NAME?
//  2. ResolveOrderConfig: startup defaults + pizza_type/pizza_size annotations
//  3. Dispatcher.Dispatch: Slack confirmation, direct order or PizzaOrder

package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/kube-rca/pizza-observability/internal/metrics"
	"github.com/kube-rca/pizza-observability/internal/model"
)

type alertDispatcher interface {
	Dispatch(ctx context.Context, cfg model.OrderConfig, webhook model.AlertmanagerWebhook) (*DispatchResult, error)
}

// Alert batch results used as metric labels.
const (
	AlertResultOrdered = "ordered"
	AlertResultIgnored = "ignored"
	AlertResultInvalid = "invalid"
	AlertResultFailed  = "failed"
)

type AlertService struct {
	dispatcher  alertDispatcher
	defaults    model.OrderConfig
	triggerName string
	logger      *zap.Logger
}

func NewAlertService(dispatcher alertDispatcher, defaults model.OrderConfig, triggerName string, logger *zap.Logger) *AlertService {
	return &AlertService{
		dispatcher:  dispatcher,
		defaults:    defaults,
		triggerName: triggerName,
		logger:      logger,
	}
}

// ProcessWebhook returns (nil, nil) when the batch does not warrant an order.
func (s *AlertService) ProcessWebhook(ctx context.Context, webhook model.AlertmanagerWebhook) (*DispatchResult, error) {
	// 1. classify
	if !ShouldOrder(webhook, s.triggerName) {
		metrics.RecordAlert(AlertResultIgnored)
		s.logger.Info("no triggering alert in batch, no pizza needed",
			zap.String("trigger", s.triggerName),
			zap.Int("alert_count", len(webhook.Alerts)),
		)
		return nil, nil
	}

	// 2. resolve
	cfg := ResolveOrderConfig(s.defaults, AnnotationOverrides(webhook))

	// 3. dispatch
	result, err := s.dispatcher.Dispatch(ctx, cfg, webhook)
	if err != nil {
		metrics.RecordAlert(AlertResultFailed)
		return nil, err
	}
	metrics.RecordAlert(AlertResultOrdered)
	return result, nil
}
