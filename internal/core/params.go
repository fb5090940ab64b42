package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// CreateCustomerParams are the parameters of create_customer
type CreateCustomerParams struct {
	Email       string `json:"email"`
	Description string `json:"description"`
}

// InvoiceItemParams is one line of a create_invoice call. Amount is in major units.
type InvoiceItemParams struct {
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Currency    string  `json:"currency"`
}

// CreateInvoiceParams are the parameters of create_invoice
type CreateInvoiceParams struct {
	CustomerID string              `json:"customer_id"`
	Currency   string              `json:"currency"`
	Items      []InvoiceItemParams `json:"items"`
}

// ProcessPaymentParams are the parameters of process_payment. Amount is in major units.
type ProcessPaymentParams struct {
	Amount          float64 `json:"amount"`
	Currency        string  `json:"currency"`
	CustomerID      string  `json:"customer_id"`
	PaymentMethodID string  `json:"payment_method_id"`
	Description     string  `json:"description"`
}

// RetrieveCustomerParams are the parameters of retrieve_customer
type RetrieveCustomerParams struct {
	CustomerID string `json:"customer_id"`
}

// DecodeParams unmarshals raw method params into dst.
// Missing or null params leave dst at its zero value.
func DecodeParams(raw json.RawMessage, dst interface{}) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	if trimmed[0] != '{' {
		return fmt.Errorf("%w: params must be an object", ErrInvalidParams)
	}
	if err := json.Unmarshal(trimmed, dst); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}
	return nil
}

// CurrencyOr returns the lower-cased currency, or fallback when empty
func CurrencyOr(currency, fallback string) string {
	currency = strings.ToLower(strings.TrimSpace(currency))
	if currency == "" {
		return fallback
	}
	return currency
}
