package payment

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cashflow/mcp-gateway/internal/core"
	"github.com/cashflow/mcp-gateway/internal/port/output"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/customer"
	"github.com/stripe/stripe-go/v76/invoice"
	"github.com/stripe/stripe-go/v76/invoiceitem"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"go.uber.org/zap"
)

// pendingItemsInclude attaches the customer's pending line items to a new invoice
const pendingItemsInclude = "include"

// StripeConfig configures the Stripe client
type StripeConfig struct {
	SecretKey string
	// APIURL overrides the Stripe API base URL (stripe-mock, tests)
	APIURL  string
	Timeout time.Duration
}

// StripeClient is a secondary adapter that implements PaymentProvider output port
type StripeClient struct {
	customers      *customer.Client
	invoiceItems   *invoiceitem.Client
	invoices       *invoice.Client
	paymentIntents *paymentintent.Client
}

// NewStripeClient creates a new Stripe client (returns interface for ports).
// The backend never retries on its own: a failed call is reported once.
func NewStripeClient(cfg StripeConfig, logger *zap.Logger) (output.PaymentProvider, error) {
	if cfg.SecretKey == "" {
		return nil, fmt.Errorf("stripe secret key is required")
	}

	backendConfig := &stripe.BackendConfig{
		HTTPClient:        &http.Client{Timeout: cfg.Timeout},
		MaxNetworkRetries: stripe.Int64(0),
		LeveledLogger:     logger.With(zap.String("component", "stripe")).Sugar(),
	}
	if cfg.APIURL != "" {
		backendConfig.URL = stripe.String(cfg.APIURL)
	}
	backend := stripe.GetBackendWithConfig(stripe.APIBackend, backendConfig)

	return &StripeClient{
		customers:      &customer.Client{B: backend, Key: cfg.SecretKey},
		invoiceItems:   &invoiceitem.Client{B: backend, Key: cfg.SecretKey},
		invoices:       &invoice.Client{B: backend, Key: cfg.SecretKey},
		paymentIntents: &paymentintent.Client{B: backend, Key: cfg.SecretKey},
	}, nil
}

// CreateCustomer creates a new customer
func (c *StripeClient) CreateCustomer(ctx context.Context, req core.NewCustomer) (*core.Customer, error) {
	params := &stripe.CustomerParams{
		Params:      stripe.Params{Context: ctx},
		Email:       optional(req.Email),
		Description: optional(req.Description),
	}

	cus, err := c.customers.New(params)
	if err != nil {
		return nil, translateError("create customer", err)
	}
	return toCoreCustomer(cus), nil
}

// GetCustomer retrieves a customer by its ID
func (c *StripeClient) GetCustomer(ctx context.Context, id string) (*core.Customer, error) {
	params := &stripe.CustomerParams{Params: stripe.Params{Context: ctx}}

	cus, err := c.customers.Get(id, params)
	if err != nil {
		return nil, translateError("get customer", err)
	}
	return toCoreCustomer(cus), nil
}

// CreateInvoiceItem creates a pending line item for a customer
func (c *StripeClient) CreateInvoiceItem(ctx context.Context, req core.NewInvoiceItem) (*core.InvoiceItem, error) {
	params := &stripe.InvoiceItemParams{
		Params:      stripe.Params{Context: ctx},
		Customer:    optional(req.CustomerID),
		Amount:      stripe.Int64(req.Amount),
		Currency:    optional(req.Currency),
		Description: optional(req.Description),
	}

	item, err := c.invoiceItems.New(params)
	if err != nil {
		return nil, translateError("create invoice item", err)
	}
	return &core.InvoiceItem{
		ID:          item.ID,
		CustomerID:  customerID(item.Customer),
		Amount:      item.Amount,
		Currency:    string(item.Currency),
		Description: item.Description,
	}, nil
}

// CreateInvoice creates an invoice from the customer's pending line items
func (c *StripeClient) CreateInvoice(ctx context.Context, req core.NewInvoice) (*core.Invoice, error) {
	params := &stripe.InvoiceParams{
		Params:                      stripe.Params{Context: ctx},
		Customer:                    optional(req.CustomerID),
		CollectionMethod:            optional(req.CollectionMethod),
		PendingInvoiceItemsBehavior: stripe.String(pendingItemsInclude),
	}
	if req.DaysUntilDue > 0 {
		params.DaysUntilDue = stripe.Int64(req.DaysUntilDue)
	}

	inv, err := c.invoices.New(params)
	if err != nil {
		return nil, translateError("create invoice", err)
	}
	return &core.Invoice{
		ID:               inv.ID,
		CustomerID:       customerID(inv.Customer),
		Number:           inv.Number,
		Status:           string(inv.Status),
		CollectionMethod: string(inv.CollectionMethod),
		AmountDue:        inv.AmountDue,
		Total:            inv.Total,
		Currency:         string(inv.Currency),
		DueDate:          inv.DueDate,
		HostedInvoiceURL: inv.HostedInvoiceURL,
	}, nil
}

// CreatePaymentIntent creates (and optionally confirms) a payment intent
func (c *StripeClient) CreatePaymentIntent(ctx context.Context, req core.NewPaymentIntent) (*core.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{
		Params:             stripe.Params{Context: ctx},
		Amount:             stripe.Int64(req.Amount),
		Currency:           optional(req.Currency),
		Customer:           optional(req.CustomerID),
		PaymentMethod:      optional(req.PaymentMethodID),
		Description:        optional(req.Description),
		ConfirmationMethod: optional(req.ConfirmationMethod),
		ReturnURL:          optional(req.ReturnURL),
	}
	if req.Confirm {
		params.Confirm = stripe.Bool(true)
	}

	pi, err := c.paymentIntents.New(params)
	if err != nil {
		return nil, translateError("create payment intent", err)
	}
	return &core.PaymentIntent{
		ID:                 pi.ID,
		Amount:             pi.Amount,
		Currency:           string(pi.Currency),
		Status:             string(pi.Status),
		CustomerID:         customerID(pi.Customer),
		ConfirmationMethod: string(pi.ConfirmationMethod),
		ClientSecret:       pi.ClientSecret,
		Description:        pi.Description,
	}, nil
}

// toCoreCustomer converts stripe.Customer to core.Customer
func toCoreCustomer(cus *stripe.Customer) *core.Customer {
	return &core.Customer{
		ID:          cus.ID,
		Email:       cus.Email,
		Name:        cus.Name,
		Description: cus.Description,
		Created:     cus.Created,
		Livemode:    cus.Livemode,
	}
}

// translateError converts Stripe API errors into core.ProviderError
func translateError(op string, err error) error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		message := stripeErr.Msg
		if message == "" {
			message = op + " failed"
		}
		return &core.ProviderError{
			Op:         op,
			Message:    message,
			Type:       string(stripeErr.Type),
			Code:       string(stripeErr.Code),
			StatusCode: stripeErr.HTTPStatusCode,
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

func customerID(cus *stripe.Customer) string {
	if cus == nil {
		return ""
	}
	return cus.ID
}

// optional returns nil for empty strings so the field is omitted from the request
func optional(v string) *string {
	if v == "" {
		return nil
	}
	return stripe.String(v)
}
