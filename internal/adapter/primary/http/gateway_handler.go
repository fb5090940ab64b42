package http

import (
	"encoding/json"
	"net/http"

	"github.com/cashflow/mcp-gateway/internal/core"
	"github.com/cashflow/mcp-gateway/internal/port/input"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// GatewayHandler is a primary adapter (HTTP handler)
type GatewayHandler struct {
	gateway input.GatewayService
	health  input.HealthService
	logger  *zap.Logger
}

// NewGatewayHandler creates a new gateway handler
func NewGatewayHandler(gateway input.GatewayService, health input.HealthService, logger *zap.Logger) *GatewayHandler {
	return &GatewayHandler{
		gateway: gateway,
		health:  health,
		logger:  logger,
	}
}

// DispatchRequest represents the HTTP request body of a method call
type DispatchRequest struct {
	Method string          `json:"method"`
	Params json.RawMessage `json:"params"`
}

// ErrorResponse represents a failed method call
type ErrorResponse struct {
	Error            string        `json:"error"`
	Type             string        `json:"type,omitempty"`
	AvailableMethods []core.Method `json:"available_methods,omitempty"`
}

// Health handles liveness probes
func (h *GatewayHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, h.health.Report())
}

// Describe handles the service descriptor request
func (h *GatewayHandler) Describe(c echo.Context) error {
	return c.JSON(http.StatusOK, h.health.Describe())
}

// Dispatch handles method calls
func (h *GatewayHandler) Dispatch(c echo.Context) error {
	var req DispatchRequest
	if err := c.Bind(&req); err != nil {
		h.logger.Warn("invalid request body", zap.Error(err))
		// an unconfigured gateway reports that before anything about the request
		if !h.gateway.Configured() {
			return c.JSON(http.StatusInternalServerError, ErrorResponse{
				Error: core.ErrNotConfigured.Error(),
				Type:  string(core.KindConfiguration),
			})
		}
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid request body",
			Type:  string(core.KindBadRequest),
		})
	}

	result := h.gateway.Dispatch(c.Request().Context(), core.DispatchRequest{
		Method: core.Method(req.Method),
		Params: req.Params,
	})

	if result.OK() {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"success":     true,
			result.Entity: result.Payload,
		})
	}

	failure := result.Failure
	if len(failure.AvailableMethods) > 0 {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:            failure.Message,
			AvailableMethods: failure.AvailableMethods,
		})
	}

	return c.JSON(statusFor(failure.Kind), ErrorResponse{
		Error: failure.Message,
		Type:  string(failure.Kind),
	})
}

// statusFor maps a failure kind to an HTTP status
func statusFor(kind core.ErrorKind) int {
	if kind == core.KindBadRequest {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
