package service

import (
	"errors"
	"fmt"

	"github.com/cashflow/mcp-gateway/internal/core"
	"go.uber.org/zap"
)

// ErrInvalidEvent marks events that will never be processable
var ErrInvalidEvent = errors.New("invalid dispatch event")

// AuditProcessor handles dispatch events consumed by the audit worker
type AuditProcessor struct {
	logger *zap.Logger
}

// NewAuditProcessor creates a new audit processor
func NewAuditProcessor(logger *zap.Logger) *AuditProcessor {
	return &AuditProcessor{
		logger: logger.With(zap.String("component", "audit")),
	}
}

// ProcessDispatchEvent records a single dispatch event.
// Events that cannot describe a dispatch are rejected so they are not requeued.
func (p *AuditProcessor) ProcessDispatchEvent(event core.DispatchEvent) error {
	if !event.Method.IsKnown() && event.Outcome == core.OutcomeSuccess {
		return fmt.Errorf("%w: success reported for %q", ErrInvalidEvent, event.Method)
	}
	if event.Outcome != core.OutcomeSuccess && event.Outcome != core.OutcomeFailure {
		return fmt.Errorf("%w: outcome %q", ErrInvalidEvent, event.Outcome)
	}

	fields := []zap.Field{
		zap.String("event_id", event.ID.String()),
		zap.String("method", string(event.Method)),
		zap.String("outcome", string(event.Outcome)),
		zap.Int64("duration_ms", event.DurationMs),
		zap.Time("occurred_at", event.OccurredAt),
	}
	if event.Outcome == core.OutcomeFailure {
		p.logger.Warn("dispatch failed", append(fields, zap.String("error_kind", string(event.ErrorKind)))...)
		return nil
	}
	p.logger.Info("dispatch succeeded", fields...)
	return nil
}
