package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	ServiceName        = "mcp-payment-gateway"
	ServiceVersion     = "1.0.0"
	ServiceDescription = "MCP gateway exposing Stripe customer, invoice and payment operations"
)

// Config holds the process configuration. It is built once at startup and never changed.
type Config struct {
	Port            string
	Env             string
	LogLevel        string
	StripeSecretKey string
	StripeAPIURL    string
	RabbitMQURL     string
	DispatchTimeout time.Duration
	ShutdownTimeout time.Duration
}

// Load reads the configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		Env:             getEnv("APP_ENV", "development"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		StripeSecretKey: strings.TrimSpace(os.Getenv("STRIPE_SECRET_KEY")),
		StripeAPIURL:    os.Getenv("STRIPE_API_URL"),
		RabbitMQURL:     os.Getenv("RABBITMQ_URL"),
	}

	var err error
	if cfg.DispatchTimeout, err = getDuration("DISPATCH_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.ShutdownTimeout, err = getDuration("SHUTDOWN_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}

	return cfg, nil
}

// StripeConfigured checks if a Stripe secret key was provided
func (c *Config) StripeConfigured() bool {
	return c.StripeSecretKey != ""
}

// Addr returns the HTTP listen address
func (c *Config) Addr() string {
	return fmt.Sprintf(":%s", c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s: must be positive", key)
	}
	return d, nil
}
