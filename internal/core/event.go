package core

import (
	"time"

	"github.com/google/uuid"
)

// DispatchOutcome is the coarse result of a dispatch
type DispatchOutcome string

const (
	OutcomeSuccess DispatchOutcome = "success"
	OutcomeFailure DispatchOutcome = "failure"
)

// DispatchEvent records one completed dispatch for audit consumers
type DispatchEvent struct {
	ID         uuid.UUID       `json:"id"`
	Method     Method          `json:"method"`
	Outcome    DispatchOutcome `json:"outcome"`
	ErrorKind  ErrorKind       `json:"error_kind,omitempty"`
	DurationMs int64           `json:"duration_ms"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// NewDispatchEvent builds the event for a finished dispatch
func NewDispatchEvent(method Method, result Result, duration time.Duration, at time.Time) DispatchEvent {
	event := DispatchEvent{
		ID:         uuid.New(),
		Method:     method,
		Outcome:    OutcomeSuccess,
		DurationMs: duration.Milliseconds(),
		OccurredAt: at.UTC(),
	}
	if !result.OK() {
		event.Outcome = OutcomeFailure
		event.ErrorKind = result.Failure.Kind
	}
	return event
}
