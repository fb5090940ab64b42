package input

import (
	"context"

	"github.com/cashflow/mcp-gateway/internal/core"
)

// GatewayService is an input port (primary port) for method dispatch
// Primary adapters (HTTP handlers) will use this
type GatewayService interface {
	// Dispatch routes a method call to the payment provider.
	// It never returns an error: every failure is carried in the Result.
	Dispatch(ctx context.Context, req core.DispatchRequest) core.Result
	// Configured reports whether a payment provider is available
	Configured() bool
}
