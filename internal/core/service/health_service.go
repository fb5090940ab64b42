package service

import (
	"runtime"
	"time"

	"github.com/cashflow/mcp-gateway/internal/core"
	"github.com/cashflow/mcp-gateway/internal/port/input"
	"github.com/cashflow/mcp-gateway/internal/port/output"
	"go.uber.org/zap"
)

// ServiceInfo identifies the running gateway
type ServiceInfo struct {
	Name        string
	Version     string
	Description string
	Env         string
	Port        string
}

// HealthServiceImpl implements the HealthService input port
type HealthServiceImpl struct {
	info      ServiceInfo
	provider  output.PaymentProvider
	startedAt time.Time
	logger    *zap.Logger
	now       func() time.Time
}

// NewHealthService creates a new health service. Uptime is measured from this call.
func NewHealthService(info ServiceInfo, provider output.PaymentProvider, logger *zap.Logger) input.HealthService {
	return &HealthServiceImpl{
		info:      info,
		provider:  provider,
		startedAt: time.Now(),
		logger:    logger.With(zap.String("component", "health")),
		now:       time.Now,
	}
}

// Report returns a status snapshot of the running process
func (s *HealthServiceImpl) Report() input.HealthReport {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	now := s.now()
	report := input.HealthReport{
		Status:    "healthy",
		Timestamp: now.UTC().Format(time.RFC3339Nano),
		Uptime:    now.Sub(s.startedAt).Seconds(),
		Memory: input.MemoryUsage{
			Sys:       mem.Sys,
			HeapAlloc: mem.HeapAlloc,
			HeapSys:   mem.HeapSys,
			HeapInuse: mem.HeapInuse,
			NumGC:     mem.NumGC,
		},
		Env: input.EnvironmentInfo{
			NodeEnv:          s.info.Env,
			Port:             s.info.Port,
			StripeConfigured: s.provider != nil,
		},
	}

	s.logger.Info("health check", zap.Any("report", report))
	return report
}

// Describe returns the service descriptor advertised on the root path
func (s *HealthServiceImpl) Describe() input.ServiceDescriptor {
	status := input.StatusReady
	if s.provider == nil {
		status = input.StatusStripeNotConfigured
	}
	return input.ServiceDescriptor{
		Name:        s.info.Name,
		Version:     s.info.Version,
		Description: s.info.Description,
		Tools:       core.Methods(),
		Status:      status,
	}
}
