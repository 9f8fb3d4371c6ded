// Slack interactive callbacks (button clicks on the order notification).
//
// Slack expects an answer within three seconds, so the callback is
// acknowledged right away and processed in the background.

package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kube-rca/pizza-observability/internal/model"
	"github.com/kube-rca/pizza-observability/internal/service"
)

type SlackHandler struct {
	confirmations *service.ConfirmationService
	logger        *zap.Logger
}

func NewSlackHandler(confirmations *service.ConfirmationService, logger *zap.Logger) *SlackHandler {
	return &SlackHandler{confirmations: confirmations, logger: logger}
}

// Actions godoc
// @Summary Slack interactive callback
// @Tags slack
// @Accept x-www-form-urlencoded
// @Param payload formData string true "Slack interaction payload (JSON)"
// @Success 200
// @Failure 400 {object} model.MessageResponse
// @Failure 401 {object} model.MessageResponse
// @Router /slack/actions [post]
func (h *SlackHandler) Actions(c *gin.Context) {
	raw := c.PostForm("payload")
	if raw == "" {
		c.JSON(http.StatusBadRequest, model.MessageResponse{Message: "payload is required"})
		return
	}

	var interaction model.SlackInteraction
	if err := json.Unmarshal([]byte(raw), &interaction); err != nil {
		h.logger.Warn("failed to parse slack payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, model.MessageResponse{Message: "invalid payload"})
		return
	}

	log := h.logger.With(
		zap.String("request_id", RequestID(c)),
		zap.String("action", interaction.ActionName()),
		zap.String("callback_id", interaction.CallbackID),
	)
	ctx := context.WithoutCancel(c.Request.Context())
	go func() {
		if err := h.confirmations.HandleAction(ctx, interaction); err != nil {
			log.Error("failed to handle slack action", zap.Error(err))
		}
	}()

	c.Status(http.StatusOK)
}
