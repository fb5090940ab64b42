package main

import (
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/cashflow/mcp-gateway/internal/adapter/secondary/messaging"
	"github.com/cashflow/mcp-gateway/internal/config"
	"github.com/cashflow/mcp-gateway/internal/core/service"
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

	if cfg.RabbitMQURL == "" {
		logger.Fatal("RABBITMQ_URL is required for the audit worker")
	}

	// Initialize core service: Audit processor
	auditProcessor := service.NewAuditProcessor(logger)

	// Initialize secondary adapter: Messaging (concrete type for worker)
	msgClient, err := messaging.NewRabbitMQClientConcrete(cfg.RabbitMQURL, logger)
	if err != nil {
		logger.Fatal("failed to connect to RabbitMQ", zap.Error(err))
	}
	defer msgClient.Close()

	isPermanent := func(err error) bool { return errors.Is(err, service.ErrInvalidEvent) }
	if err := msgClient.ConsumeDispatchEvents(auditProcessor.ProcessDispatchEvent, isPermanent); err != nil {
		logger.Fatal("failed to start consuming dispatch events", zap.Error(err))
	}

	logger.Info("audit worker started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down audit worker")
}
