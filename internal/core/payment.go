package core

// Customer represents a customer record held by the payment provider
type Customer struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Created     int64  `json:"created"`
	Livemode    bool   `json:"livemode"`
}

// InvoiceItem represents a pending line item attached to a customer
type InvoiceItem struct {
	ID          string `json:"id"`
	CustomerID  string `json:"customer"`
	Amount      int64  `json:"amount"`
	Currency    string `json:"currency"`
	Description string `json:"description,omitempty"`
}

// Invoice represents an invoice created by the payment provider
type Invoice struct {
	ID               string `json:"id"`
	CustomerID       string `json:"customer"`
	Number           string `json:"number,omitempty"`
	Status           string `json:"status"`
	CollectionMethod string `json:"collection_method"`
	AmountDue        int64  `json:"amount_due"`
	Total            int64  `json:"total"`
	Currency         string `json:"currency"`
	DueDate          int64  `json:"due_date,omitempty"`
	HostedInvoiceURL string `json:"hosted_invoice_url,omitempty"`
}

// PaymentIntent represents a payment attempt tracked by the payment provider
type PaymentIntent struct {
	ID                 string `json:"id"`
	Amount             int64  `json:"amount"`
	Currency           string `json:"currency"`
	Status             string `json:"status"`
	CustomerID         string `json:"customer,omitempty"`
	ConfirmationMethod string `json:"confirmation_method"`
	ClientSecret       string `json:"client_secret,omitempty"`
	Description        string `json:"description,omitempty"`
}

// NewCustomer describes a customer to be created
type NewCustomer struct {
	Email       string
	Description string
}

// NewInvoiceItem describes a line item to be created. Amount is in minor units.
type NewInvoiceItem struct {
	CustomerID  string
	Amount      int64
	Currency    string
	Description string
}

// NewInvoice describes an invoice to be created from the customer's pending items
type NewInvoice struct {
	CustomerID       string
	CollectionMethod string
	DaysUntilDue     int64
}

// NewPaymentIntent describes a payment intent to be created. Amount is in minor units.
type NewPaymentIntent struct {
	Amount             int64
	Currency           string
	CustomerID         string
	PaymentMethodID    string
	Description        string
	ConfirmationMethod string
	Confirm            bool
	ReturnURL          string
}

const (
	// CollectionMethodSendInvoice emails the invoice to the customer on creation
	CollectionMethodSendInvoice = "send_invoice"

	// InvoiceDaysUntilDue is the due window applied to every invoice
	InvoiceDaysUntilDue int64 = 30

	// ConfirmationMethodManual requires the server to confirm the intent
	ConfirmationMethodManual = "manual"

	// PaymentReturnURL is where the provider redirects after a required customer action
	PaymentReturnURL = "https://example.com/return"

	// DefaultCurrency is used when a request does not name one
	DefaultCurrency = "usd"

	// DefaultCustomerDescription marks customers created through this gateway
	DefaultCustomerDescription = "Customer created via MCP gateway"
)
