// Confirmation bridge: turns a human decision in Slack into a dispatch.
//
// Order/confirm flow:
//  1. reply "Pizza order confirmed!" with type, size and address
//  2. resolve the order from the notification fields and create a PizzaOrder
//  3. reply "PizzaOrder resource created successfully!" (or the error)
//  4. start a poll session posting status updates into the same thread
//
// Cancel only replies.

package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kube-rca/pizza-observability/internal/client"
	"github.com/kube-rca/pizza-observability/internal/metrics"
	"github.com/kube-rca/pizza-observability/internal/model"
)

type resourceDispatcher interface {
	DispatchResource(ctx context.Context, cfg model.OrderConfig) (*DispatchResult, error)
}

type sessionStarter interface {
	Start(name, namespace string, thread model.SlackThread)
}

type ConfirmationService struct {
	dispatcher resourceDispatcher
	defaults   model.OrderConfig
	slack      threadReplier
	sessions   sessionStarter
	logger     *zap.Logger
}

func NewConfirmationService(dispatcher resourceDispatcher, defaults model.OrderConfig, slack threadReplier, sessions sessionStarter, logger *zap.Logger) *ConfirmationService {
	return &ConfirmationService{
		dispatcher: dispatcher,
		defaults:   defaults,
		slack:      slack,
		sessions:   sessions,
		logger:     logger,
	}
}

// Confirm creates a PizzaOrder for an order confirmed elsewhere.
// fields are the notification's attachment fields.
func (s *ConfirmationService) Confirm(ctx context.Context, fields []model.SlackField) (*DispatchResult, error) {
	cfg := ResolveOrderConfig(s.defaults, FieldOverrides(fields))
	result, err := s.dispatcher.DispatchResource(ctx, cfg)
	if err != nil {
		return nil, err
	}
	result.Message = "PizzaOrder resource created successfully from Slack confirmation"
	return result, nil
}

// HandleAction processes one Slack button click.
func (s *ConfirmationService) HandleAction(ctx context.Context, interaction model.SlackInteraction) error {
	action := interaction.ActionName()
	thread := interaction.Thread()
	metrics.RecordSlackAction(action)

	switch action {
	case client.ActionOrder, client.ActionConfirm:
		return s.confirm(ctx, interaction.Fields(), thread, interaction.User.Name)
	case client.ActionCancel:
		s.logger.Info("pizza order cancelled", zap.String("user", interaction.User.Name))
		s.reply(ctx, thread, client.CancelledMessage())
		return nil
	default:
		return fmt.Errorf("unknown slack action %q", action)
	}
}

func (s *ConfirmationService) confirm(ctx context.Context, fields []model.SlackField, thread model.SlackThread, user string) error {
	// 1. acknowledge
	cfg := ResolveOrderConfig(s.defaults, FieldOverrides(fields))
	address, _ := FieldValue(fields, model.FieldDeliveryAddress)
	s.reply(ctx, thread, client.ConfirmedMessage(cfg.Pizza.Type, cfg.Pizza.Size, address))

	// 2. create the PizzaOrder
	result, err := s.Confirm(ctx, fields)
	if err != nil {
		s.reply(ctx, thread, client.ResourceErrorMessage(err))
		return err
	}
	s.logger.Info("pizza order confirmed",
		zap.String("user", user),
		zap.String("resource", result.Resource.Name),
		zap.String("namespace", result.Resource.Namespace),
	)

	// 3. report, 4. follow the order in the same thread
	ts := s.reply(ctx, thread, client.ResourceCreatedMessage(*result.Resource))
	if thread.TS == "" {
		thread.TS = ts
	}
	s.sessions.Start(result.Resource.Name, result.Resource.Namespace, thread)
	return nil
}

// reply posts msg and logs a failure; the flow continues either way.
func (s *ConfirmationService) reply(ctx context.Context, thread model.SlackThread, msg client.SlackMessage) string {
	ts, err := s.slack.Reply(ctx, thread, msg)
	if err != nil {
		s.logger.Warn("failed to reply in slack", zap.Error(err))
	}
	return ts
}
