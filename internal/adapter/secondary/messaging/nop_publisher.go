package messaging

import (
	"context"

	"github.com/cashflow/mcp-gateway/internal/core"
)

// NopPublisher discards dispatch events. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishDispatchEvent(context.Context, core.DispatchEvent) error { return nil }

func (NopPublisher) Close() error { return nil }
