package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cashflow/mcp-gateway/internal/core"
	"github.com/cashflow/mcp-gateway/internal/port/input"
	"github.com/cashflow/mcp-gateway/internal/port/output"
	"go.uber.org/zap"
)

const publishTimeout = 2 * time.Second

type methodHandler func(ctx context.Context, params []byte) (core.Result, error)

// GatewayServiceImpl implements the GatewayService input port
type GatewayServiceImpl struct {
	provider output.PaymentProvider
	events   output.DispatchEvents
	timeout  time.Duration
	logger   *zap.Logger
	handlers map[core.Method]methodHandler
	now      func() time.Time
}

// NewGatewayService creates a new gateway service.
// provider may be nil, in which case every dispatch fails with a configuration error.
func NewGatewayService(
	provider output.PaymentProvider,
	events output.DispatchEvents,
	timeout time.Duration,
	logger *zap.Logger,
) input.GatewayService {
	s := &GatewayServiceImpl{
		provider: provider,
		events:   events,
		timeout:  timeout,
		logger:   logger.With(zap.String("component", "dispatcher")),
		now:      time.Now,
	}
	s.handlers = map[core.Method]methodHandler{
		core.MethodCreateCustomer:   s.createCustomer,
		core.MethodCreateInvoice:    s.createInvoice,
		core.MethodProcessPayment:   s.processPayment,
		core.MethodRetrieveCustomer: s.retrieveCustomer,
	}
	return s
}

// Configured reports whether a payment provider is available
func (s *GatewayServiceImpl) Configured() bool {
	return s.provider != nil
}

// Dispatch routes a method call to the payment provider
func (s *GatewayServiceImpl) Dispatch(ctx context.Context, req core.DispatchRequest) core.Result {
	start := s.now()
	result := s.dispatch(ctx, req)
	s.publish(ctx, core.NewDispatchEvent(req.Method, result, s.now().Sub(start), start))
	return result
}

func (s *GatewayServiceImpl) dispatch(ctx context.Context, req core.DispatchRequest) core.Result {
	if s.provider == nil {
		s.logger.Warn("dispatch rejected", zap.String("method", string(req.Method)), zap.Error(core.ErrNotConfigured))
		return core.Fail(core.KindConfiguration, core.ErrNotConfigured.Error())
	}

	handle, ok := s.handlers[req.Method]
	if !ok {
		s.logger.Warn("dispatch rejected", zap.String("method", string(req.Method)), zap.Error(core.ErrUnknownMethod))
		return core.UnknownMethod()
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	result, err := handle(ctx, req.Params)
	if err != nil {
		return s.failure(req.Method, err)
	}
	return result
}

// failure converts a handler error into a failed result
func (s *GatewayServiceImpl) failure(method core.Method, err error) core.Result {
	var providerErr *core.ProviderError
	switch {
	case errors.Is(err, core.ErrInvalidParams):
		s.logger.Warn("invalid params", zap.String("method", string(method)), zap.Error(err))
		return core.Fail(core.KindBadRequest, err.Error())
	case errors.As(err, &providerErr):
		s.logger.Error("payment provider error",
			zap.String("method", string(method)),
			zap.String("op", providerErr.Op),
			zap.String("type", providerErr.Type),
			zap.String("code", providerErr.Code),
			zap.Int("status", providerErr.StatusCode),
			zap.String("message", providerErr.Message),
		)
		return core.Fail(providerErr.Kind(), providerErr.Message)
	default:
		s.logger.Error("dispatch failed", zap.String("method", string(method)), zap.Error(err))
		return core.Fail(core.KindAPI, err.Error())
	}
}

// publish emits the audit event. Publishing never affects the dispatch result.
func (s *GatewayServiceImpl) publish(ctx context.Context, event core.DispatchEvent) {
	if s.events == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := s.events.PublishDispatchEvent(ctx, event); err != nil {
		s.logger.Warn("failed to publish dispatch event",
			zap.String("event_id", event.ID.String()),
			zap.String("method", string(event.Method)),
			zap.Error(err),
		)
	}
}

func (s *GatewayServiceImpl) createCustomer(ctx context.Context, raw []byte) (core.Result, error) {
	var params core.CreateCustomerParams
	if err := core.DecodeParams(raw, &params); err != nil {
		return core.Result{}, err
	}

	description := params.Description
	if description == "" {
		description = core.DefaultCustomerDescription
	}

	customer, err := s.provider.CreateCustomer(ctx, core.NewCustomer{
		Email:       params.Email,
		Description: description,
	})
	if err != nil {
		return core.Result{}, err
	}

	s.logger.Info("customer created", zap.String("customer_id", customer.ID))
	return core.Succeed("customer", customer), nil
}

// createInvoice creates the line items one at a time, in request order, and
// then the invoice. Items already created are left in place when a later step
// fails.
func (s *GatewayServiceImpl) createInvoice(ctx context.Context, raw []byte) (core.Result, error) {
	var params core.CreateInvoiceParams
	if err := core.DecodeParams(raw, &params); err != nil {
		return core.Result{}, err
	}

	// amounts are checked up front so a bad item fails before any line item exists
	amounts := make([]int64, len(params.Items))
	for i, item := range params.Items {
		amount, err := core.ToMinorUnits(item.Amount)
		if err != nil {
			return core.Result{}, fmt.Errorf("items[%d]: %w", i, err)
		}
		amounts[i] = amount
	}

	currency := core.CurrencyOr(params.Currency, core.DefaultCurrency)
	for i, item := range params.Items {
		lineItem, err := s.provider.CreateInvoiceItem(ctx, core.NewInvoiceItem{
			CustomerID:  params.CustomerID,
			Amount:      amounts[i],
			Currency:    core.CurrencyOr(item.Currency, currency),
			Description: item.Description,
		})
		if err != nil {
			if i > 0 {
				s.logger.Warn("invoice aborted after partial line item creation",
					zap.String("customer_id", params.CustomerID),
					zap.Int("created_items", i),
				)
			}
			return core.Result{}, err
		}
		s.logger.Debug("invoice item created", zap.String("invoice_item_id", lineItem.ID), zap.Int("index", i))
	}

	invoice, err := s.provider.CreateInvoice(ctx, core.NewInvoice{
		CustomerID:       params.CustomerID,
		CollectionMethod: core.CollectionMethodSendInvoice,
		DaysUntilDue:     core.InvoiceDaysUntilDue,
	})
	if err != nil {
		return core.Result{}, err
	}

	s.logger.Info("invoice created", zap.String("invoice_id", invoice.ID), zap.Int("items", len(params.Items)))
	return core.Succeed("invoice", invoice), nil
}

func (s *GatewayServiceImpl) processPayment(ctx context.Context, raw []byte) (core.Result, error) {
	var params core.ProcessPaymentParams
	if err := core.DecodeParams(raw, &params); err != nil {
		return core.Result{}, err
	}

	amount, err := core.ToMinorUnits(params.Amount)
	if err != nil {
		return core.Result{}, err
	}

	intent, err := s.provider.CreatePaymentIntent(ctx, core.NewPaymentIntent{
		Amount:             amount,
		Currency:           core.CurrencyOr(params.Currency, core.DefaultCurrency),
		CustomerID:         params.CustomerID,
		PaymentMethodID:    params.PaymentMethodID,
		Description:        params.Description,
		ConfirmationMethod: core.ConfirmationMethodManual,
		Confirm:            true,
		ReturnURL:          core.PaymentReturnURL,
	})
	if err != nil {
		return core.Result{}, err
	}

	s.logger.Info("payment intent created", zap.String("payment_intent_id", intent.ID), zap.String("status", intent.Status))
	return core.Succeed("payment_intent", intent), nil
}

func (s *GatewayServiceImpl) retrieveCustomer(ctx context.Context, raw []byte) (core.Result, error) {
	var params core.RetrieveCustomerParams
	if err := core.DecodeParams(raw, &params); err != nil {
		return core.Result{}, err
	}

	params.CustomerID = strings.TrimSpace(params.CustomerID)
	if params.CustomerID == "" {
		return core.Result{}, fmt.Errorf("%w: customer_id is required", core.ErrInvalidParams)
	}

	customer, err := s.provider.GetCustomer(ctx, params.CustomerID)
	if err != nil {
		return core.Result{}, err
	}

	return core.Succeed("customer", customer), nil
}
