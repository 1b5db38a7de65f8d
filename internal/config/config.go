package config

import (
	"fmt"
	"time"

	pkgconfig "github.com/TheDTCStore/dtc-store-mobile/pkg/config"
)

// Config holds all configuration for the storefront service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"STORE_HTTP_PORT" envDefault:"8080"`

	// Redis holds carts, orders, and session tokens.
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// Kafka
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`

	// TTLs
	CartTTL    time.Duration `env:"CART_TTL" envDefault:"168h"`
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"24h"`

	// CatalogLatency adds an artificial delay to catalog reads so the
	// storefront can be exercised under realistic backend response times.
	CatalogLatency time.Duration `env:"CATALOG_LATENCY" envDefault:"0"`

	// CORS
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`

	// PprofAllowedCIDRs restricts /debug/pprof to matching client IPs.
	// Empty means pprof is disabled.
	PprofAllowedCIDRs []string `env:"PPROF_ALLOWED_CIDRS" envDefault:"" envSeparator:","`

	// Tracing
	TracingEnabled  bool   `env:"TRACING_ENABLED" envDefault:"false"`
	TracingEndpoint string `env:"TRACING_ENDPOINT" envDefault:"localhost:4318"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load store config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if c.CartTTL <= 0 {
		return fmt.Errorf("cart TTL must be positive, got %s", c.CartTTL)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("session TTL must be positive, got %s", c.SessionTTL)
	}
	if c.CatalogLatency < 0 {
		return fmt.Errorf("catalog latency must not be negative, got %s", c.CatalogLatency)
	}
	return nil
}
