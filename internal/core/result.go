package core

// ErrorKind classifies a failed dispatch
type ErrorKind string

const (
	KindConfiguration ErrorKind = "configuration_error"
	KindBadRequest    ErrorKind = "bad_request"
	KindAPI           ErrorKind = "api_error"
)

// Failure describes why a dispatch did not succeed
type Failure struct {
	Message          string
	Kind             ErrorKind
	AvailableMethods []Method
}

// Result is the outcome of a dispatch: either a payload under an entity name,
// or a Failure. Exactly one of the two is set.
type Result struct {
	Entity  string
	Payload interface{}
	Failure *Failure
}

// Succeed builds a successful result
func Succeed(entity string, payload interface{}) Result {
	return Result{Entity: entity, Payload: payload}
}

// Fail builds a failed result
func Fail(kind ErrorKind, message string) Result {
	return Result{Failure: &Failure{Message: message, Kind: kind}}
}

// UnknownMethod builds the failure returned for unrecognized method names
func UnknownMethod() Result {
	return Result{Failure: &Failure{
		Message:          ErrUnknownMethod.Error(),
		Kind:             KindBadRequest,
		AvailableMethods: Methods(),
	}}
}

// OK checks if the result is a success
func (r Result) OK() bool {
	return r.Failure == nil
}
