// Handlers for the single order endpoint "/".
//
// POST / flow:
//  1. empty body: 400 "Request body is required"
//  2. Slack bridge confirmation: create a PizzaOrder from the alert fields
//  3. missing or empty alerts: 400 "Invalid alert data structure"
//  4. classify and dispatch through AlertService
//
// GET /?resource=<name>&namespace=<ns> returns the PizzaOrder status.

package handler

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"
	apierrors "k8s.io/apimachinery/pkg/api/errors"

	"github.com/kube-rca/pizza-observability/internal/metrics"
	"github.com/kube-rca/pizza-observability/internal/model"
	"github.com/kube-rca/pizza-observability/internal/service"
)

const expectedAlertFormat = "{ alerts: [{ status, labels, annotations }] }"

type OrderHandler struct {
	alerts           *service.AlertService
	confirmations    *service.ConfirmationService
	status           *service.StatusService
	defaultNamespace string
	logger           *zap.Logger
}

func NewOrderHandler(alerts *service.AlertService, confirmations *service.ConfirmationService, status *service.StatusService, defaultNamespace string, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		alerts:           alerts,
		confirmations:    confirmations,
		status:           status,
		defaultNamespace: defaultNamespace,
		logger:           logger,
	}
}

// Post godoc
// @Summary Receive an Alertmanager webhook or a Slack confirmation
// @Tags orders
// @Accept json
// @Produce json
// @Param payload body model.OrderRequest true "Alertmanager webhook or confirmation"
// @Success 200 {object} model.DispatchResponse
// @Failure 400 {object} model.InvalidPayloadResponse
// @Failure 500 {object} model.ErrorResponse
// @Router / [post]
func (h *OrderHandler) Post(c *gin.Context) {
	log := h.logger.With(zap.String("request_id", RequestID(c)))

	// 1. body
	body, err := c.GetRawData()
	trimmed := bytes.TrimSpace(body)
	if err != nil || len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		metrics.RecordAlert(service.AlertResultInvalid)
		log.Warn("request body is missing")
		c.JSON(http.StatusBadRequest, model.MessageResponse{Message: "Request body is required"})
		return
	}

	var req model.OrderRequest
	if err := binding.JSON.BindBody(body, &req); err != nil {
		metrics.RecordAlert(service.AlertResultInvalid)
		log.Warn("failed to parse request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, model.InvalidPayloadResponse{
			Message:        "Invalid alert data structure",
			ExpectedFormat: expectedAlertFormat,
		})
		return
	}

	// 2. Slack confirmation
	if req.IsConfirmation() {
		h.confirm(c, log, req)
		return
	}

	// 3. alerts
	if len(req.Alerts) == 0 {
		metrics.RecordAlert(service.AlertResultInvalid)
		log.Warn("invalid alert data structure")
		c.JSON(http.StatusBadRequest, model.InvalidPayloadResponse{
			Message:        "Invalid alert data structure",
			ExpectedFormat: expectedAlertFormat,
		})
		return
	}

	log.Info("received alert webhook",
		zap.String("status", req.Status),
		zap.String("receiver", req.Receiver),
		zap.Int("alert_count", len(req.Alerts)),
	)
	for _, alert := range req.Alerts {
		log.Debug("alert",
			zap.String("alertname", alert.Name()),
			zap.String("status", alert.Status),
			zap.String("description", alert.Annotations["description"]),
			zap.String("fingerprint", alert.Fingerprint),
		)
	}

	// 4. classify and dispatch
	result, err := h.alerts.ProcessWebhook(c.Request.Context(), req.AlertmanagerWebhook)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dispatchErrorResponse(err, "Unhandled error processing alert"))
		return
	}
	if result == nil {
		c.JSON(http.StatusOK, model.MessageResponse{Message: "Alert received but no action taken"})
		return
	}
	c.JSON(http.StatusOK, dispatchResponse(result))
}

func (h *OrderHandler) confirm(c *gin.Context, log *zap.Logger, req model.OrderRequest) {
	log.Info("received slack confirmation", zap.Int("field_count", len(req.AlertDetails)))

	result, err := h.confirmations.Confirm(c.Request.Context(), req.AlertDetails)
	if err != nil {
		resp := dispatchErrorResponse(err, "")
		resp.Message = "Error creating PizzaOrder resource from Slack confirmation"
		c.JSON(http.StatusInternalServerError, resp)
		return
	}
	c.JSON(http.StatusOK, dispatchResponse(result))
}

// Status godoc
// @Summary Get PizzaOrder status
// @Tags orders
// @Produce json
// @Param resource query string true "PizzaOrder name"
// @Param namespace query string false "PizzaOrder namespace"
// @Success 200 {object} model.OrderStatusResponse
// @Failure 400 {object} model.MessageResponse
// @Failure 404 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router / [get]
func (h *OrderHandler) Status(c *gin.Context) {
	name := c.Query("resource")
	if name == "" {
		c.JSON(http.StatusBadRequest, model.MessageResponse{Message: "resource query parameter is required"})
		return
	}
	namespace := c.DefaultQuery("namespace", h.defaultNamespace)

	resp, err := h.status.GetStatus(c.Request.Context(), name, namespace)
	if err != nil {
		if apierrors.IsNotFound(err) {
			c.JSON(http.StatusNotFound, model.ErrorResponse{
				Message: "PizzaOrder " + name + " not found",
				Error:   err.Error(),
			})
			return
		}
		h.logger.Error("failed to get order status",
			zap.String("resource", name),
			zap.String("namespace", namespace),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{
			Message: "Error getting status for resource " + name,
			Error:   err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, resp)
}

func dispatchResponse(result *service.DispatchResult) model.DispatchResponse {
	resp := model.DispatchResponse{
		Message:      result.Message,
		OrderDetails: result.Order,
	}
	if result.Resource != nil {
		resp.ResourceName = result.Resource.Name
		resp.Namespace = result.Resource.Namespace
	}
	return resp
}

// dispatchErrorResponse reports the failing stage as cause; fallback is the
// message for errors that are not dispatch errors.
func dispatchErrorResponse(err error, fallback string) model.ErrorResponse {
	var de *service.DispatchError
	if errors.As(err, &de) {
		return model.ErrorResponse{
			Message: de.Summary(),
			Error:   de.Err.Error(),
			Cause:   de.Stage,
		}
	}
	return model.ErrorResponse{Message: fallback, Error: err.Error()}
}
