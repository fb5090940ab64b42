package output

import (
	"context"

	"github.com/cashflow/mcp-gateway/internal/core"
)

// DispatchEvents is an output port (secondary port) for dispatch audit events
// Secondary adapters (RabbitMQ implementations) will implement this
type DispatchEvents interface {
	// PublishDispatchEvent publishes a completed dispatch
	PublishDispatchEvent(ctx context.Context, event core.DispatchEvent) error
	// Close closes the messaging connection
	Close() error
}
