package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kube-rca/pizza-observability/internal/model"
	"github.com/kube-rca/pizza-observability/internal/service"
)

type DispatchHandler struct {
	history *service.HistoryService
}

func NewDispatchHandler(history *service.HistoryService) *DispatchHandler {
	return &DispatchHandler{history: history}
}

// List godoc
// @Summary List recent dispatches
// @Tags dispatches
// @Produce json
// @Param limit query int false "Maximum rows (default 50)"
// @Success 200 {object} model.DispatchListResponse
// @Failure 404 {object} model.MessageResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/v1/dispatches [get]
func (h *DispatchHandler) List(c *gin.Context) {
	if !h.history.Enabled() {
		c.JSON(http.StatusNotFound, model.MessageResponse{Message: "dispatch history is disabled"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	records, err := h.history.List(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{
			Message: "Error listing dispatches",
			Error:   err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, model.DispatchListResponse{Status: "success", Data: records})
}
