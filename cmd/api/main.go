package main

import (
	"context"
	"errors"
	"log"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/cashflow/mcp-gateway/internal/adapter/primary/http"
	"github.com/cashflow/mcp-gateway/internal/adapter/secondary/messaging"
	"github.com/cashflow/mcp-gateway/internal/adapter/secondary/payment"
	"github.com/cashflow/mcp-gateway/internal/config"
	"github.com/cashflow/mcp-gateway/internal/core/service"
	"github.com/cashflow/mcp-gateway/internal/port/output"
	_ "go.uber.org/automaxprocs"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := config.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("starting gateway",
		zap.String("env", cfg.Env),
		zap.String("port", cfg.Port),
		zap.Bool("stripe_configured", cfg.StripeConfigured()),
		zap.Duration("dispatch_timeout", cfg.DispatchTimeout),
	)

	// Initialize secondary adapter: payment provider (implements output port).
	// A missing or unusable key leaves the provider nil for the life of the process.
	var provider output.PaymentProvider
	if cfg.StripeConfigured() {
		provider, err = payment.NewStripeClient(payment.StripeConfig{
			SecretKey: cfg.StripeSecretKey,
			APIURL:    cfg.StripeAPIURL,
			Timeout:   cfg.DispatchTimeout,
		}, logger)
		if err != nil {
			logger.Error("failed to initialize Stripe client, running unconfigured", zap.Error(err))
		}
	} else {
		logger.Warn("STRIPE_SECRET_KEY not set, payment methods will fail until restart with a key")
	}

	// Initialize secondary adapter: dispatch events (implements output port)
	var events output.DispatchEvents = messaging.NopPublisher{}
	if cfg.RabbitMQURL != "" {
		events, err = messaging.NewRabbitMQClient(cfg.RabbitMQURL, logger)
		if err != nil {
			logger.Fatal("failed to connect to RabbitMQ", zap.Error(err))
		}
	}
	defer events.Close()

	// Initialize core services (implement input ports)
	gatewayService := service.NewGatewayService(provider, events, cfg.DispatchTimeout, logger)
	healthService := service.NewHealthService(service.ServiceInfo{
		Name:        config.ServiceName,
		Version:     config.ServiceVersion,
		Description: config.ServiceDescription,
		Env:         cfg.Env,
		Port:        cfg.Port,
	}, provider, logger)

	// Initialize primary adapter: HTTP handler (uses input ports)
	handler := http.NewGatewayHandler(gatewayService, healthService, logger)
	e := http.NewServer(handler, logger)

	go func() {
		logger.Info("starting API server", zap.String("addr", cfg.Addr()))
		if err := e.Start(cfg.Addr()); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down API server")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
