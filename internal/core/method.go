package core

import (
	"encoding/json"
)

// Method names one of the operations the gateway can dispatch
type Method string

const (
	MethodCreateCustomer   Method = "create_customer"
	MethodCreateInvoice    Method = "create_invoice"
	MethodProcessPayment   Method = "process_payment"
	MethodRetrieveCustomer Method = "retrieve_customer"
)

// Methods returns the recognized methods in their advertised order
func Methods() []Method {
	return []Method{
		MethodCreateCustomer,
		MethodCreateInvoice,
		MethodProcessPayment,
		MethodRetrieveCustomer,
	}
}

// IsKnown checks if the method is one of the recognized methods
func (m Method) IsKnown() bool {
	for _, known := range Methods() {
		if m == known {
			return true
		}
	}
	return false
}

// DispatchRequest is a single method call received by the gateway
type DispatchRequest struct {
	Method Method
	Params json.RawMessage
}
