// Package outputtest provides in-memory implementations of the output ports for tests.
package outputtest

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/cashflow/mcp-gateway/internal/core"
)

// ErrItemFailed is returned by a failing CreateInvoiceItem call when no ItemErr is set
var ErrItemFailed = errors.New("invoice item failed")

// FakeProvider is an in-memory PaymentProvider that records every call in order
type FakeProvider struct {
	mu sync.Mutex

	Calls     []string
	Customers []core.NewCustomer
	Items     []core.NewInvoiceItem
	Invoices  []core.NewInvoice
	Intents   []core.NewPaymentIntent
	Lookups   []string

	// Err is returned by every operation when set
	Err error
	// FailItemAt makes the n-th (1-based) CreateInvoiceItem call fail with ItemErr,
	// or ErrItemFailed when ItemErr is nil
	FailItemAt int
	ItemErr    error
	// Block makes every operation wait for context cancellation
	Block bool
}

func (f *FakeProvider) record(ctx context.Context, op string) error {
	f.mu.Lock()
	f.Calls = append(f.Calls, op)
	block, err := f.Block, f.Err
	f.mu.Unlock()

	if block {
		<-ctx.Done()
		return ctx.Err()
	}
	return err
}

// CallCount returns the number of operations invoked so far
func (f *FakeProvider) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Calls)
}

func (f *FakeProvider) CreateCustomer(ctx context.Context, req core.NewCustomer) (*core.Customer, error) {
	if err := f.record(ctx, "create_customer"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Customers = append(f.Customers, req)
	return &core.Customer{
		ID:          fmt.Sprintf("cus_%d", len(f.Customers)),
		Email:       req.Email,
		Description: req.Description,
	}, nil
}

func (f *FakeProvider) GetCustomer(ctx context.Context, id string) (*core.Customer, error) {
	if err := f.record(ctx, "get_customer"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Lookups = append(f.Lookups, id)
	return &core.Customer{ID: id, Email: "found@example.com"}, nil
}

func (f *FakeProvider) CreateInvoiceItem(ctx context.Context, req core.NewInvoiceItem) (*core.InvoiceItem, error) {
	if err := f.record(ctx, "create_invoice_item"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Items = append(f.Items, req)
	if f.FailItemAt == len(f.Items) {
		if f.ItemErr == nil {
			return nil, ErrItemFailed
		}
		return nil, f.ItemErr
	}
	return &core.InvoiceItem{
		ID:          fmt.Sprintf("ii_%d", len(f.Items)),
		CustomerID:  req.CustomerID,
		Amount:      req.Amount,
		Currency:    req.Currency,
		Description: req.Description,
	}, nil
}

func (f *FakeProvider) CreateInvoice(ctx context.Context, req core.NewInvoice) (*core.Invoice, error) {
	if err := f.record(ctx, "create_invoice"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Invoices = append(f.Invoices, req)

	var total int64
	for _, item := range f.Items {
		total += item.Amount
	}
	return &core.Invoice{
		ID:               fmt.Sprintf("in_%d", len(f.Invoices)),
		CustomerID:       req.CustomerID,
		Status:           "draft",
		CollectionMethod: req.CollectionMethod,
		AmountDue:        total,
		Total:            total,
		Currency:         core.DefaultCurrency,
	}, nil
}

func (f *FakeProvider) CreatePaymentIntent(ctx context.Context, req core.NewPaymentIntent) (*core.PaymentIntent, error) {
	if err := f.record(ctx, "create_payment_intent"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Intents = append(f.Intents, req)
	return &core.PaymentIntent{
		ID:                 fmt.Sprintf("pi_%d", len(f.Intents)),
		Amount:             req.Amount,
		Currency:           req.Currency,
		Status:             "requires_confirmation",
		CustomerID:         req.CustomerID,
		ConfirmationMethod: req.ConfirmationMethod,
	}, nil
}
