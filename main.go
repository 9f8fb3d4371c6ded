package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	// Import all Kubernetes client auth plugins (e.g. Azure, GCP, OIDC, etc.)
	_ "k8s.io/client-go/plugin/pkg/client/auth"

	"github.com/kube-rca/pizza-observability/internal/client"
	"github.com/kube-rca/pizza-observability/internal/config"
	"github.com/kube-rca/pizza-observability/internal/db"
	"github.com/kube-rca/pizza-observability/internal/handler"
	"github.com/kube-rca/pizza-observability/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := newLogger(cfg.Server.Debug)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	logger.Info("pizza-observability starting", cfg.LogFields()...)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	slackClient := client.NewSlackClient(cfg.Slack.BotToken, cfg.Slack.ChannelID)
	if cfg.Order.SlackWebhookURL != "" && !slackClient.IsConfigured() {
		logger.Warn("SLACK_BOT_TOKEN not set, thread replies will use the interaction response_url")
	}

	// Kubernetes: needed by the kubernetes backend and by Slack confirmations.
	var (
		resources   service.Backend
		orderReader *client.OrderResourceClient
	)
	if cfg.Backend == config.BackendKubernetes || cfg.Order.SlackWebhookURL != "" {
		kubeClient, err := client.NewKubeClient(cfg.Kubernetes.GroupVersion())
		if err != nil {
			logger.Warn("kubernetes client unavailable, PizzaOrder operations will fail", zap.Error(err))
		} else {
			orderReader = client.NewOrderResourceClient(kubeClient)
			resources = service.NewResourceBackend(orderReader)
		}
	}

	// Order backend selected by ORDER_BACKEND.
	var orders service.Backend
	switch cfg.Backend {
	case config.BackendDirect:
		orders = service.NewDirectBackend(service.BackendDirect, client.NewDominosClient(cfg.Pizza.BaseURL, cfg.Pizza.TrackerURL))
	case config.BackendMock:
		orders = service.NewDirectBackend(service.BackendMock, client.NewMockPizzaClient(cfg.Order.StoreID))
	default:
		orders = resources
	}

	notifier := service.NewConfirmationBackend(slackClient, cfg.Slack.NotificationText)
	dispatcher := service.NewDispatcher(notifier, orders, resources, cfg.Alert.TriggerName, logger)

	var history *service.HistoryService
	if cfg.History.Enabled {
		pool, err := db.NewPostgresPool(ctx, cfg.Postgres)
		if err != nil {
			logger.Fatal("failed to connect to postgres", zap.Error(err))
		}
		defer pool.Close()

		pg := &db.Postgres{Pool: pool}
		if err := pg.EnsureDispatchSchema(ctx); err != nil {
			logger.Fatal("failed to ensure dispatch schema", zap.Error(err))
		}
		dispatcher.WithRecorder(pg)
		history = service.NewHistoryService(pg)
	}

	var (
		statusService *service.StatusService
		sessions      *service.SessionManager
	)
	if orderReader != nil {
		statusService = service.NewStatusService(orderReader)
		sessions = service.NewSessionManager(orderReader, slackClient, cfg.Poll.Interval, logger)
	} else {
		statusService = service.NewStatusService(nil)
		sessions = service.NewSessionManager(nil, slackClient, cfg.Poll.Interval, logger)
	}
	sessions.Run()

	alertService := service.NewAlertService(dispatcher, cfg.Order, cfg.Alert.TriggerName, logger)
	confirmationService := service.NewConfirmationService(dispatcher, cfg.Order, slackClient, sessions, logger)

	if !cfg.Server.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	router := handler.NewRouter(handler.Routes{
		Orders:             handler.NewOrderHandler(alertService, confirmationService, statusService, cfg.Order.Namespace, logger),
		Slack:              handler.NewSlackHandler(confirmationService, logger),
		Dispatches:         handler.NewDispatchHandler(history),
		SlackSigningSecret: cfg.Slack.SigningSecret,
	}, logger)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http server shutdown failed", zap.Error(err))
	}
	<-sessions.Stop().Done()
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
