package core

import "errors"

var (
	ErrNotConfigured = errors.New("payment system not configured")
	ErrUnknownMethod = errors.New("unknown method")
	ErrInvalidParams = errors.New("invalid params")
)

// ProviderError is a failure reported by the payment provider
type ProviderError struct {
	Op         string
	Message    string
	Type       string
	Code       string
	StatusCode int
}

func (e *ProviderError) Error() string {
	return e.Message
}

// Kind returns the provider's declared error category, or KindAPI when none was given
func (e *ProviderError) Kind() ErrorKind {
	if e.Type == "" {
		return KindAPI
	}
	return ErrorKind(e.Type)
}
