package config

import (
	"fmt"

	"go.uber.org/zap"
)

// NewLogger builds the process logger. Development environments get the
// human-readable console encoder, everything else JSON.
func NewLogger(env, level string) (*zap.Logger, error) {
	atomicLevel, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	zapConfig := zap.NewProductionConfig()
	if env == "development" {
		zapConfig = zap.NewDevelopmentConfig()
	}
	zapConfig.Level = atomicLevel

	logger, err := zapConfig.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger.With(zap.String("service", ServiceName)), nil
}
