package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Gateway drivers.
const (
	DriverMemory   = "memory"
	DriverMemos    = "memos"
	DriverPostgres = "postgres"
	DriverDynamoDB = "dynamodb"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// Note store
	Gateway  GatewayConfig
	Memos    MemosConfig
	Postgres PostgresConfig
	DynamoDB DynamoDBConfig

	// Pagination engine
	Pagination PaginationConfig

	// Detail view
	Detail DetailConfig

	// Notifications
	Telegram TelegramConfig

	// Webhooks
	Webhook WebhookConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port int
	Mode string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

// GatewayConfig selects which remote store backs the Gateway.
type GatewayConfig struct {
	Driver  string
	Metrics bool
}

type MemosConfig struct {
	URL            string
	AccessToken    string
	Visibility     string
	RateLimitPerS  float64
	RetryAttempts  int
	RetryDelay     time.Duration
	RequestTimeout time.Duration
	CacheSize      int
	CacheTTL       time.Duration
}

type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MigrateOnStart bool
}

type DynamoDBConfig struct {
	Region    string
	Endpoint  string // optional, e.g. http://localhost:8000 for dynamodb-local
	TableName string
}

// PaginationConfig drives the viewport-derived page size.
type PaginationConfig struct {
	RowHeight             float64
	DefaultViewportHeight float64
	MaxPageSize           int
}

type DetailConfig struct {
	MapZoom       int
	TileURL       string
	SpeechCommand string
}

type TelegramConfig struct {
	BotToken string
	ChatID   int64
}

type WebhookConfig struct {
	Enabled         bool
	Secret          string
	AllowedIPs      []string
	RateLimitPerMin int
}

// Load loads configuration using Viper.
// An optional .env file is loaded first so its values reach AutomaticEnv.
// Config file name: config.yaml, searched in ./config, ., /etc/geonotes/
func Load() (*Config, error) {
	_ = godotenv.Load()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/geonotes/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	// Note store
	cfg.Gateway.Driver = strings.ToLower(viper.GetString("gateway.driver"))
	cfg.Gateway.Metrics = viper.GetBool("gateway.metrics")

	cfg.Memos.URL = strings.TrimRight(viper.GetString("memos.url"), "/")
	cfg.Memos.AccessToken = viper.GetString("memos.access_token")
	cfg.Memos.Visibility = viper.GetString("memos.visibility")
	cfg.Memos.RateLimitPerS = viper.GetFloat64("memos.rate_limit_per_s")
	cfg.Memos.RetryAttempts = viper.GetInt("memos.retry_attempts")
	cfg.Memos.RetryDelay = viper.GetDuration("memos.retry_delay")
	cfg.Memos.RequestTimeout = viper.GetDuration("memos.request_timeout")
	cfg.Memos.CacheSize = viper.GetInt("memos.cache_size")
	cfg.Memos.CacheTTL = viper.GetDuration("memos.cache_ttl")
	if memosURL := viper.GetString("memos_url"); memosURL != "" {
		cfg.Memos.URL = strings.TrimRight(memosURL, "/")
	}
	if memosToken := viper.GetString("memos_access_token"); memosToken != "" {
		cfg.Memos.AccessToken = memosToken
	}

	cfg.Postgres.DSN = viper.GetString("postgres.dsn")
	cfg.Postgres.MaxConns = viper.GetInt32("postgres.max_conns")
	cfg.Postgres.MigrateOnStart = viper.GetBool("postgres.migrate_on_start")
	if dsn := viper.GetString("database_url"); dsn != "" {
		cfg.Postgres.DSN = dsn
	}

	cfg.DynamoDB.Region = viper.GetString("dynamodb.region")
	cfg.DynamoDB.Endpoint = viper.GetString("dynamodb.endpoint")
	cfg.DynamoDB.TableName = viper.GetString("dynamodb.table_name")

	// Pagination
	cfg.Pagination.RowHeight = viper.GetFloat64("pagination.row_height")
	cfg.Pagination.DefaultViewportHeight = viper.GetFloat64("pagination.default_viewport_height")
	cfg.Pagination.MaxPageSize = viper.GetInt("pagination.max_page_size")

	// Detail view
	cfg.Detail.MapZoom = viper.GetInt("detail.map_zoom")
	cfg.Detail.TileURL = viper.GetString("detail.tile_url")
	cfg.Detail.SpeechCommand = viper.GetString("detail.speech_command")

	// Notifications
	cfg.Telegram.BotToken = viper.GetString("telegram.bot_token")
	cfg.Telegram.ChatID = viper.GetInt64("telegram.chat_id")
	if tgToken := viper.GetString("telegram_bot_token"); tgToken != "" {
		cfg.Telegram.BotToken = tgToken
	}

	// Webhooks
	cfg.Webhook.Enabled = viper.GetBool("webhook.enabled")
	cfg.Webhook.Secret = viper.GetString("webhook.secret")
	if webhookSecret := viper.GetString("webhook_secret"); webhookSecret != "" {
		cfg.Webhook.Secret = webhookSecret
	}
	cfg.Webhook.AllowedIPs = viper.GetStringSlice("webhook.allowed_ips")
	cfg.Webhook.RateLimitPerMin = viper.GetInt("webhook.rate_limit_per_min")

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)

	viper.SetDefault("gateway.driver", DriverMemory)
	viper.SetDefault("gateway.metrics", true)

	viper.SetDefault("memos.visibility", "PRIVATE")
	viper.SetDefault("memos.rate_limit_per_s", 10)
	viper.SetDefault("memos.retry_attempts", 3)
	viper.SetDefault("memos.retry_delay", "500ms")
	viper.SetDefault("memos.request_timeout", "15s")
	viper.SetDefault("memos.cache_size", 256)
	viper.SetDefault("memos.cache_ttl", "5m")

	viper.SetDefault("postgres.max_conns", 8)
	viper.SetDefault("postgres.migrate_on_start", true)

	viper.SetDefault("dynamodb.region", "us-east-1")
	viper.SetDefault("dynamodb.table_name", "notes")

	// Estimated height of one list row, in pixels.
	viper.SetDefault("pagination.row_height", 50)
	viper.SetDefault("pagination.default_viewport_height", 750)
	viper.SetDefault("pagination.max_page_size", 100)

	viper.SetDefault("detail.map_zoom", 13)
	viper.SetDefault("detail.tile_url", "https://tile.openstreetmap.org/{z}/{x}/{y}.png")

	viper.SetDefault("webhook.enabled", true)
	viper.SetDefault("webhook.rate_limit_per_min", 60)
}

func validate(cfg *Config) error {
	switch cfg.Gateway.Driver {
	case DriverMemory:
	case DriverMemos:
		if cfg.Memos.URL == "" {
			return fmt.Errorf("memos.url is required for the %q gateway", DriverMemos)
		}
	case DriverPostgres:
		if cfg.Postgres.DSN == "" {
			return fmt.Errorf("postgres.dsn is required for the %q gateway", DriverPostgres)
		}
	case DriverDynamoDB:
		if cfg.DynamoDB.TableName == "" {
			return fmt.Errorf("dynamodb.table_name is required for the %q gateway", DriverDynamoDB)
		}
	default:
		return fmt.Errorf("unknown gateway driver %q", cfg.Gateway.Driver)
	}

	if cfg.Pagination.RowHeight <= 0 {
		return fmt.Errorf("pagination.row_height must be positive")
	}
	if cfg.Pagination.MaxPageSize <= 0 {
		return fmt.Errorf("pagination.max_page_size must be positive")
	}
	return nil
}
