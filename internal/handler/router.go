package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Routes groups the handlers served by the webhook service.
type Routes struct {
	Orders     *OrderHandler
	Slack      *SlackHandler
	Dispatches *DispatchHandler

	// SlackSigningSecret verifies /slack/actions; empty disables the check.
	SlackSigningSecret string
}

// NewRouter builds the gin engine with recovery and request logging.
func NewRouter(routes Routes, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(logger))

	router.GET("/ping", Ping)
	router.GET("/openapi.json", OpenAPIDoc)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.POST("/", routes.Orders.Post)
	router.GET("/", routes.Orders.Status)

	router.POST("/slack/actions", SlackSignature(routes.SlackSigningSecret, time.Now), routes.Slack.Actions)

	api := router.Group("/api/v1")
	api.GET("/dispatches", routes.Dispatches.List)

	return router
}
