package output

import (
	"context"

	"github.com/cashflow/mcp-gateway/internal/core"
)

// PaymentProvider is an output port (secondary port) for the external payment system
// Secondary adapters (Stripe implementation) will implement this
type PaymentProvider interface {
	// CreateCustomer creates a new customer
	CreateCustomer(ctx context.Context, req core.NewCustomer) (*core.Customer, error)

	// GetCustomer retrieves a customer by its ID
	GetCustomer(ctx context.Context, id string) (*core.Customer, error)

	// CreateInvoiceItem creates a pending line item for a customer
	CreateInvoiceItem(ctx context.Context, req core.NewInvoiceItem) (*core.InvoiceItem, error)

	// CreateInvoice creates an invoice from the customer's pending line items
	CreateInvoice(ctx context.Context, req core.NewInvoice) (*core.Invoice, error)

	// CreatePaymentIntent creates (and optionally confirms) a payment intent
	CreatePaymentIntent(ctx context.Context, req core.NewPaymentIntent) (*core.PaymentIntent, error)
}
