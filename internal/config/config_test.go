package config_test

import (
	"testing"
	"time"

	"github.com/cashflow/mcp-gateway/internal/config"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "APP_ENV", "LOG_LEVEL", "STRIPE_SECRET_KEY", "STRIPE_API_URL", "RABBITMQ_URL", "DISPATCH_TIMEOUT", "SHUTDOWN_TIMEOUT"} {
		t.Setenv(key, "")
	}

	cfg, err := config.Load()
	require.NoError(t, err)

	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, ":8080", cfg.Addr())
	require.Equal(t, "development", cfg.Env)
	require.Equal(t, 30*time.Second, cfg.DispatchTimeout)
	require.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	require.False(t, cfg.StripeConfigured())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("APP_ENV", "production")
	t.Setenv("STRIPE_SECRET_KEY", "  sk_test_123 ")
	t.Setenv("DISPATCH_TIMEOUT", "5s")

	cfg, err := config.Load()
	require.NoError(t, err)

	require.Equal(t, ":9090", cfg.Addr())
	require.Equal(t, "production", cfg.Env)
	require.Equal(t, "sk_test_123", cfg.StripeSecretKey)
	require.True(t, cfg.StripeConfigured())
	require.Equal(t, 5*time.Second, cfg.DispatchTimeout)
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("DISPATCH_TIMEOUT", "soon")
	_, err := config.Load()
	require.ErrorContains(t, err, "DISPATCH_TIMEOUT")

	t.Setenv("DISPATCH_TIMEOUT", "-1s")
	_, err = config.Load()
	require.ErrorContains(t, err, "must be positive")
}

func TestNewLogger(t *testing.T) {
	logger, err := config.NewLogger("production", "debug")
	require.NoError(t, err)
	require.NotNil(t, logger)

	_, err = config.NewLogger("production", "loud")
	require.Error(t, err)
}
