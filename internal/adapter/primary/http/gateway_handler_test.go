package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	gatewayhttp "github.com/cashflow/mcp-gateway/internal/adapter/primary/http"
	"github.com/cashflow/mcp-gateway/internal/core"
	"github.com/cashflow/mcp-gateway/internal/core/service"
	"github.com/cashflow/mcp-gateway/internal/port/output"
	"github.com/cashflow/mcp-gateway/internal/port/output/outputtest"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newServer(t *testing.T, provider output.PaymentProvider) *echo.Echo {
	t.Helper()
	logger := zaptest.NewLogger(t)

	gateway := service.NewGatewayService(provider, &outputtest.RecordingEvents{}, time.Second, logger)
	health := service.NewHealthService(service.ServiceInfo{
		Name:    "mcp-payment-gateway",
		Version: "1.0.0",
		Env:     "test",
		Port:    "8080",
	}, provider, logger)

	return gatewayhttp.NewServer(gatewayhttp.NewGatewayHandler(gateway, health, logger), logger)
}

func postMCP(t *testing.T, e *echo.Echo, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/mcp", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func get(t *testing.T, e *echo.Echo, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestDispatch_NotConfigured(t *testing.T) {
	e := newServer(t, nil)

	rec := postMCP(t, e, `{"method":"create_customer","params":{"email":"jane@example.com"}}`)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decode(t, rec)
	require.Equal(t, "payment system not configured", body["error"])
	require.Equal(t, "configuration_error", body["type"])
}

func TestDispatch_NotConfiguredBeforeBodyValidation(t *testing.T) {
	e := newServer(t, nil)

	for _, body := range []string{
		`{"method":5,"params":{}}`,
		`{"method":`,
		`not json`,
	} {
		rec := postMCP(t, e, body)

		require.Equal(t, http.StatusInternalServerError, rec.Code, body)
		responseBody := decode(t, rec)
		require.Equal(t, "payment system not configured", responseBody["error"])
		require.Equal(t, "configuration_error", responseBody["type"])
	}
}

func TestDispatch_UnknownMethod(t *testing.T) {
	e := newServer(t, &outputtest.FakeProvider{})

	rec := postMCP(t, e, `{"method":"does_not_exist","params":{}}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode(t, rec)
	require.Equal(t, "unknown method", body["error"])
	require.Equal(t, []interface{}{
		"create_customer",
		"create_invoice",
		"process_payment",
		"retrieve_customer",
	}, body["available_methods"])
}

func TestDispatch_Success(t *testing.T) {
	provider := &outputtest.FakeProvider{}
	e := newServer(t, provider)

	t.Run("create customer", func(t *testing.T) {
		rec := postMCP(t, e, `{"method":"create_customer","params":{"email":"jane@example.com"}}`)

		require.Equal(t, http.StatusOK, rec.Code)
		body := decode(t, rec)
		require.Equal(t, true, body["success"])
		customer, ok := body["customer"].(map[string]interface{})
		require.True(t, ok)
		require.Equal(t, "jane@example.com", customer["email"])
		require.NotEmpty(t, customer["id"])
	})

	t.Run("process payment", func(t *testing.T) {
		rec := postMCP(t, e, `{"method":"process_payment","params":{"amount":10.004,"currency":"usd"}}`)

		require.Equal(t, http.StatusOK, rec.Code)
		intent, ok := decode(t, rec)["payment_intent"].(map[string]interface{})
		require.True(t, ok)
		require.Equal(t, float64(1000), intent["amount"])
	})

	t.Run("create invoice", func(t *testing.T) {
		rec := postMCP(t, e, `{"method":"create_invoice","params":{"customer_id":"cus_1","items":[{"amount":19.99,"description":"A"}]}}`)

		require.Equal(t, http.StatusOK, rec.Code)
		invoice, ok := decode(t, rec)["invoice"].(map[string]interface{})
		require.True(t, ok)
		require.Equal(t, "send_invoice", invoice["collection_method"])
	})

	t.Run("retrieve customer", func(t *testing.T) {
		rec := postMCP(t, e, `{"method":"retrieve_customer","params":{"customer_id":"cus_9"}}`)

		require.Equal(t, http.StatusOK, rec.Code)
		customer, ok := decode(t, rec)["customer"].(map[string]interface{})
		require.True(t, ok)
		require.Equal(t, "cus_9", customer["id"])
	})
}

func TestDispatch_ProviderError(t *testing.T) {
	provider := &outputtest.FakeProvider{Err: &core.ProviderError{Message: "Your card was declined.", Type: "card_error"}}
	e := newServer(t, provider)

	rec := postMCP(t, e, `{"method":"process_payment","params":{"amount":5}}`)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decode(t, rec)
	require.Equal(t, "Your card was declined.", body["error"])
	require.Equal(t, "card_error", body["type"])
}

func TestDispatch_BadRequests(t *testing.T) {
	provider := &outputtest.FakeProvider{}
	e := newServer(t, provider)

	t.Run("malformed body", func(t *testing.T) {
		rec := postMCP(t, e, `{"method":`)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Equal(t, "bad_request", decode(t, rec)["type"])
	})

	t.Run("non-string method", func(t *testing.T) {
		rec := postMCP(t, e, `{"method":5,"params":{}}`)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Equal(t, "bad_request", decode(t, rec)["type"])
	})

	t.Run("amount out of range", func(t *testing.T) {
		rec := postMCP(t, e, `{"method":"process_payment","params":{"amount":1e17}}`)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		body := decode(t, rec)
		require.Equal(t, "bad_request", body["type"])
		require.Contains(t, body["error"], "amount out of range")
	})

	t.Run("invalid params", func(t *testing.T) {
		rec := postMCP(t, e, `{"method":"retrieve_customer","params":{}}`)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		body := decode(t, rec)
		require.Equal(t, "bad_request", body["type"])
		require.Contains(t, body["error"], "customer_id is required")
	})

	require.Zero(t, provider.CallCount())
}

func TestHealth(t *testing.T) {
	for _, tt := range []struct {
		name       string
		provider   output.PaymentProvider
		configured bool
	}{
		{"configured", &outputtest.FakeProvider{Err: &core.ProviderError{Message: "down"}}, true},
		{"not configured", nil, false},
	} {
		t.Run(tt.name, func(t *testing.T) {
			e := newServer(t, tt.provider)

			for i := 0; i < 3; i++ {
				postMCP(t, e, `{"method":"create_customer","params":{}}`)
				postMCP(t, e, `{"method":"nope"}`)
			}

			rec := get(t, e, "/health")
			require.Equal(t, http.StatusOK, rec.Code)

			body := decode(t, rec)
			require.Equal(t, "healthy", body["status"])
			require.Contains(t, body, "timestamp")
			require.Contains(t, body, "uptime")
			require.Contains(t, body, "memory")

			env, ok := body["env"].(map[string]interface{})
			require.True(t, ok)
			require.Equal(t, tt.configured, env["stripeConfigured"])
			require.Equal(t, "test", env["nodeEnv"])
			require.Equal(t, "8080", env["port"])
		})
	}
}

func TestDescribe(t *testing.T) {
	rec := get(t, newServer(t, &outputtest.FakeProvider{}), "/")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	require.Equal(t, "ready", body["status"])
	require.Equal(t, "mcp-payment-gateway", body["name"])
	require.Len(t, body["tools"], 4)

	rec = get(t, newServer(t, nil), "/")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "stripe_not_configured", decode(t, rec)["status"])
}

func TestMiddleware(t *testing.T) {
	e := newServer(t, nil)

	t.Run("request id", func(t *testing.T) {
		rec := get(t, e, "/health")
		require.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
	})

	t.Run("cors preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/mcp", nil)
		req.Header.Set(echo.HeaderOrigin, "https://client.example.com")
		req.Header.Set(echo.HeaderAccessControlRequestMethod, http.MethodPost)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		require.Equal(t, http.StatusNoContent, rec.Code)
		require.Equal(t, "*", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
		require.Contains(t, rec.Header().Get(echo.HeaderAccessControlAllowMethods), http.MethodPost)
		require.Contains(t, rec.Header().Get(echo.HeaderAccessControlAllowHeaders), echo.HeaderContentType)
	})
}
