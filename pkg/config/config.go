package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	// Rate feed
	RateFeedURL     string
	RateFeedTimeout time.Duration
	FallbackRate    decimal.Decimal

	// Aggregation worker
	OutboxInterval  time.Duration
	OutboxBatchSize int

	// Rate limiting, in ulule/limiter notation (e.g. "100-M")
	RateLimit string

	CORSAllowedOrigins []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("RATE_FEED_URL", "https://api.apis.net.pe/v1/tipo-cambio-sunat")
	viper.SetDefault("RATE_FEED_TIMEOUT", "5s")
	viper.SetDefault("FALLBACK_EXCHANGE_RATE", "3.70")
	viper.SetDefault("OUTBOX_INTERVAL", "5s")
	viper.SetDefault("OUTBOX_BATCH_SIZE", 100)
	viper.SetDefault("RATE_LIMIT", "300-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.RateFeedURL = viper.GetString("RATE_FEED_URL")

	timeoutStr := viper.GetString("RATE_FEED_TIMEOUT")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		timeout = 5 * time.Second
		log.Printf("Warning: Invalid value for RATE_FEED_TIMEOUT ('%s'). Defaulting to %s.\n", timeoutStr, timeout)
	}
	cfg.RateFeedTimeout = timeout

	fallbackStr := viper.GetString("FALLBACK_EXCHANGE_RATE")
	fallback, err := decimal.NewFromString(fallbackStr)
	if err != nil || !fallback.IsPositive() {
		fallback = decimal.RequireFromString("3.70")
		log.Printf("Warning: Invalid value for FALLBACK_EXCHANGE_RATE ('%s'). Defaulting to %s.\n", fallbackStr, fallback)
	}
	cfg.FallbackRate = fallback

	intervalStr := viper.GetString("OUTBOX_INTERVAL")
	interval, err := time.ParseDuration(intervalStr)
	if err != nil {
		interval = 5 * time.Second
		log.Printf("Warning: Invalid value for OUTBOX_INTERVAL ('%s'). Defaulting to %s.\n", intervalStr, interval)
	}
	cfg.OutboxInterval = interval

	cfg.OutboxBatchSize = viper.GetInt("OUTBOX_BATCH_SIZE")
	if cfg.OutboxBatchSize <= 0 {
		cfg.OutboxBatchSize = 100
	}

	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.CORSAllowedOrigins = viper.GetStringSlice("CORS_ALLOWED_ORIGINS")

	return cfg, nil
}
