// Process-wide configuration, built once in main and passed down.
//
// Every variable is optional. Missing values fall back to a literal default,
// so an empty environment still yields a fully populated order.
//
// Order environment variables:
//   - CUSTOMER_FIRST_NAME, CUSTOMER_LAST_NAME, CUSTOMER_EMAIL, CUSTOMER_PHONE
//   - DELIVERY_STREET, DELIVERY_CITY, DELIVERY_STATE, DELIVERY_ZIP
//   - STORE_ID, PIZZA_TYPE, PIZZA_SIZE
//   - PAYMENT_TYPE, PAYMENT_NUMBER, PAYMENT_EXPIRATION, PAYMENT_CVV, PAYMENT_ZIP
//   - PAYMENT_SECRET_NAME, K8S_NAMESPACE
//   - SLACK_WEBHOOK_URL: when set, every triggering alert asks for confirmation first

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"k8s.io/apimachinery/pkg/runtime/schema"

	"github.com/kube-rca/pizza-observability/internal/model"
)

// Order backends selectable with ORDER_BACKEND.
const (
	BackendKubernetes = "kubernetes"
	BackendDirect     = "direct"
	BackendMock       = "mock"
)

type Config struct {
	Server     ServerConfig
	Alert      AlertConfig
	Order      model.OrderConfig
	Backend    string
	Pizza      PizzaAPIConfig
	Slack      SlackConfig
	Kubernetes KubernetesConfig
	Poll       PollConfig
	History    HistoryConfig
	Postgres   PostgresConfig
}

type ServerConfig struct {
	Port  string
	Debug bool
}

type AlertConfig struct {
	// TriggerName is the alertname that causes an order.
	TriggerName string
}

type PizzaAPIConfig struct {
	BaseURL    string
	TrackerURL string
}

// SlackConfig covers the interactive side of Slack. The incoming webhook
// used for notifications lives in Order.SlackWebhookURL.
type SlackConfig struct {
	BotToken         string
	ChannelID        string
	SigningSecret    string
	NotificationText string
}

type KubernetesConfig struct {
	Group   string
	Version string
}

// GroupVersion is where PizzaOrder is served.
func (k KubernetesConfig) GroupVersion() schema.GroupVersion {
	return schema.GroupVersion{Group: k.Group, Version: k.Version}
}

type PollConfig struct {
	Interval time.Duration
}

type HistoryConfig struct {
	Enabled bool
}

type PostgresConfig struct {
	DatabaseURL string
	Host        string
	Port        string
	User        string
	Password    string
	Database    string
	SSLMode     string
}

// minPollInterval is the finest schedule the poll scheduler supports.
const minPollInterval = time.Second

// Load reads an optional .env file, then the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("failed to load .env file: %w", err)
	}

	interval, err := time.ParseDuration(getenv("POLL_INTERVAL", "60s"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid POLL_INTERVAL: %w", err)
	}
	if interval < minPollInterval {
		return Config{}, fmt.Errorf("invalid POLL_INTERVAL %s: must be at least %s", interval, minPollInterval)
	}

	backend := strings.ToLower(getenv("ORDER_BACKEND", BackendKubernetes))
	switch backend {
	case BackendKubernetes, BackendDirect, BackendMock:
	default:
		return Config{}, fmt.Errorf("invalid ORDER_BACKEND %q: want kubernetes, direct or mock", backend)
	}

	return Config{
		Server: ServerConfig{
			Port:  getenv("PORT", "8080"),
			Debug: getbool("DEBUG"),
		},
		Alert: AlertConfig{
			TriggerName: getenv("TRIGGER_ALERT_NAME", "HighCPUUsage"),
		},
		Order:   LoadOrderConfig(),
		Backend: backend,
		Pizza: PizzaAPIConfig{
			BaseURL:    strings.TrimRight(getenv("PIZZA_API_URL", "https://order.dominos.com/power"), "/"),
			TrackerURL: getenv("PIZZA_TRACKER_URL", "https://trkweb.dominos.com/orderstorage/GetTrackerData"),
		},
		Slack: SlackConfig{
			BotToken:         os.Getenv("SLACK_BOT_TOKEN"),
			ChannelID:        os.Getenv("SLACK_CHANNEL_ID"),
			SigningSecret:    os.Getenv("SLACK_SIGNING_SECRET"),
			NotificationText: getenv("SLACK_NOTIFICATION_TEXT", "🍕 High CPU Alert - Pizza Time? 🍕"),
		},
		Kubernetes: KubernetesConfig{
			Group:   getenv("PIZZA_GROUP", "pizza.bilalashraf.xyz"),
			Version: getenv("PIZZA_VERSION", "v1"),
		},
		Poll: PollConfig{
			Interval: interval,
		},
		History: HistoryConfig{
			Enabled: getbool("HISTORY_ENABLED"),
		},
		Postgres: PostgresConfig{
			DatabaseURL: os.Getenv("DATABASE_URL"),
			Host:        getenv("PGHOST", "localhost"),
			Port:        getenv("PGPORT", "5432"),
			User:        os.Getenv("PGUSER"),
			Password:    os.Getenv("PGPASSWORD"),
			Database:    os.Getenv("PGDATABASE"),
			SSLMode:     getenv("PGSSLMODE", "disable"),
		},
	}, nil
}

// LoadOrderConfig resolves the environment and literal tiers of the order.
func LoadOrderConfig() model.OrderConfig {
	return model.OrderConfig{
		Customer: model.Customer{
			FirstName: getenv("CUSTOMER_FIRST_NAME", "Pizza"),
			LastName:  getenv("CUSTOMER_LAST_NAME", "Lover"),
			Email:     getenv("CUSTOMER_EMAIL", "pizza@example.com"),
			Phone:     getenv("CUSTOMER_PHONE", "1234567890"),
		},
		Address: model.Address{
			Street:     getenv("DELIVERY_STREET", "123 Main St"),
			City:       getenv("DELIVERY_CITY", "Anytown"),
			Region:     getenv("DELIVERY_STATE", "NY"),
			PostalCode: getenv("DELIVERY_ZIP", "10001"),
		},
		StoreID: getenv("STORE_ID", "1234"),
		Pizza: model.PizzaSelection{
			Type: getenv("PIZZA_TYPE", "pepperoni"),
			Size: getenv("PIZZA_SIZE", "large"),
		},
		Payment: model.Payment{
			Type:       getenv("PAYMENT_TYPE", "creditcard"),
			Number:     getenv("PAYMENT_NUMBER", "4111111111111111"),
			Expiration: getenv("PAYMENT_EXPIRATION", "01/25"),
			CVV:        getenv("PAYMENT_CVV", "123"),
			PostalCode: getenv("PAYMENT_ZIP", "10001"),
		},
		PaymentSecretName: getenv("PAYMENT_SECRET_NAME", "dominos-payment-secret"),
		Namespace:         getenv("K8S_NAMESPACE", "default"),
		SlackWebhookURL:   os.Getenv("SLACK_WEBHOOK_URL"),
	}
}

// LogFields returns the startup view of the configuration.
// Personal and payment values are reported only as set or unset.
func (c Config) LogFields() []zap.Field {
	return []zap.Field{
		zap.String("port", c.Server.Port),
		zap.String("trigger_alert_name", c.Alert.TriggerName),
		zap.String("order_backend", c.Backend),
		zap.String("customer_first_name", c.Order.Customer.FirstName),
		zap.String("customer_last_name", c.Order.Customer.LastName),
		zap.String("customer_email", mask("CUSTOMER_EMAIL")),
		zap.String("customer_phone", mask("CUSTOMER_PHONE")),
		zap.String("delivery_street", mask("DELIVERY_STREET")),
		zap.String("delivery_city", c.Order.Address.City),
		zap.String("delivery_state", c.Order.Address.Region),
		zap.String("delivery_zip", mask("DELIVERY_ZIP")),
		zap.String("store_id", c.Order.StoreID),
		zap.String("pizza_type", c.Order.Pizza.Type),
		zap.String("pizza_size", c.Order.Pizza.Size),
		zap.String("payment_number", mask("PAYMENT_NUMBER")),
		zap.String("payment_cvv", mask("PAYMENT_CVV")),
		zap.String("payment_secret_name", c.Order.PaymentSecretName),
		zap.String("namespace", c.Order.Namespace),
		zap.String("slack_webhook_url", mask("SLACK_WEBHOOK_URL")),
		zap.String("slack_bot_token", mask("SLACK_BOT_TOKEN")),
		zap.String("slack_signing_secret", mask("SLACK_SIGNING_SECRET")),
		zap.String("pizza_group_version", c.Kubernetes.Group+"/"+c.Kubernetes.Version),
		zap.Duration("poll_interval", c.Poll.Interval),
		zap.Bool("history_enabled", c.History.Enabled),
	}
}

func mask(key string) string {
	if os.Getenv(key) == "" {
		return "<unset>"
	}
	return "***"
}

func getenv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getbool(key string) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	return err == nil && v
}
