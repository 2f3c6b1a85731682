// Package errors defines the error taxonomy shared by all gateway
// operations. Every failure surfaces as a single *GatewayError; callers
// discriminate by Kind rather than by concrete type.
package errors

import (
	"errors"
	"fmt"
)

// Kind classifies a gateway error.
type Kind string

const (
	// KindValidation is malformed or out-of-range caller input, raised
	// before any network call.
	KindValidation Kind = "validation"

	// KindAuthentication is gateway error code 5 on any endpoint:
	// access denied, bad credentials or password change required.
	KindAuthentication Kind = "authentication"

	// KindPayment is an endpoint-specific business-rule rejection.
	KindPayment Kind = "payment"

	// KindGeneric covers everything else: unmapped gateway codes,
	// network failures, non-2xx HTTP and undecodable JSON.
	KindGeneric Kind = "generic"
)

// GatewayError is the tagged error variant carried by every failed
// operation. Context holds the raw gateway response for diagnostics and
// never contains credentials.
type GatewayError struct {
	Kind    Kind
	Code    int
	Message string
	Context map[string]interface{}
	cause   error
}

func (e *GatewayError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("satim: %s (code %d)", e.Message, e.Code)
	}
	return "satim: " + e.Message
}

// Unwrap exposes the underlying transport error, if any.
func (e *GatewayError) Unwrap() error {
	return e.cause
}

// NewValidationError creates a validation error with the violated rule text.
func NewValidationError(message string) *GatewayError {
	return &GatewayError{Kind: KindValidation, Message: message}
}

// NewAuthenticationError creates an authentication error from a gateway response.
func NewAuthenticationError(message string, code int, context map[string]interface{}) *GatewayError {
	return &GatewayError{Kind: KindAuthentication, Code: code, Message: message, Context: context}
}

// NewPaymentError creates a payment error from a gateway response.
func NewPaymentError(message string, code int, context map[string]interface{}) *GatewayError {
	return &GatewayError{Kind: KindPayment, Code: code, Message: message, Context: context}
}

// NewGenericError creates a generic error from a gateway response.
func NewGenericError(message string, code int, context map[string]interface{}) *GatewayError {
	return &GatewayError{Kind: KindGeneric, Code: code, Message: message, Context: context}
}

// WrapGenericError wraps a transport-layer failure so it is never leaked
// to callers directly. The cause stays reachable through Unwrap.
func WrapGenericError(message string, cause error) *GatewayError {
	return &GatewayError{Kind: KindGeneric, Message: message, cause: cause}
}

// AsGatewayError unwraps err into a *GatewayError if possible.
func AsGatewayError(err error) (*GatewayError, bool) {
	var gerr *GatewayError
	if errors.As(err, &gerr) {
		return gerr, true
	}
	return nil, false
}

// IsKind reports whether err is a GatewayError of the given kind.
func IsKind(err error, kind Kind) bool {
	gerr, ok := AsGatewayError(err)
	return ok && gerr.Kind == kind
}
