package input

import "github.com/cashflow/mcp-gateway/internal/core"

// HealthService is an input port (primary port) for liveness and service discovery
type HealthService interface {
	// Report returns a status snapshot of the running process
	Report() HealthReport

	// Describe returns the service descriptor advertised on the root path
	Describe() ServiceDescriptor
}

// HealthReport is the liveness snapshot
type HealthReport struct {
	Status    string          `json:"status"`
	Timestamp string          `json:"timestamp"`
	Uptime    float64         `json:"uptime"`
	Memory    MemoryUsage     `json:"memory"`
	Env       EnvironmentInfo `json:"env"`
}

// MemoryUsage reports runtime memory figures in bytes
type MemoryUsage struct {
	Sys       uint64 `json:"sys"`
	HeapAlloc uint64 `json:"heap_alloc"`
	HeapSys   uint64 `json:"heap_sys"`
	HeapInuse uint64 `json:"heap_inuse"`
	NumGC     uint32 `json:"num_gc"`
}

// EnvironmentInfo reports how the process was configured
type EnvironmentInfo struct {
	NodeEnv          string `json:"nodeEnv"`
	Port             string `json:"port"`
	StripeConfigured bool   `json:"stripeConfigured"`
}

// ServiceDescriptor describes the gateway and the methods it exposes
type ServiceDescriptor struct {
	Name        string        `json:"name"`
	Version     string        `json:"version"`
	Description string        `json:"description"`
	Tools       []core.Method `json:"tools"`
	Status      string        `json:"status"`
}

const (
	StatusReady               = "ready"
	StatusStripeNotConfigured = "stripe_not_configured"
)
