package satim

import (
	pkgerrors "github.com/dzpay/satim-go/pkg/errors"
)

// Endpoint paths, relative to the configured API base URL.
const (
	endpointRegister = "register.do"
	endpointConfirm  = "public/acknowledgeTransaction.do"
	endpointRefund   = "refund.do"
)

// The same numeric error code means different things on different
// endpoints, so payment-kind membership is tabled per endpoint.
//
//	register.do: 1 order already processed / submerchant blocked,
//	             3 unknown currency, 4 missing parameters,
//	             14 invalid payment way
//	acknowledgeTransaction.do: 2 order declined, 6 unregistered orderId
//	refund.do: 6 unregistered orderId
//
// Code 5 is always an authentication failure (access denied, invalid
// credentials, password change required). Code 7 and anything unmapped
// stay generic.
var paymentErrorCodes = map[string]map[int]bool{
	endpointRegister: {1: true, 3: true, 4: true, 14: true},
	endpointConfirm:  {2: true, 6: true},
	endpointRefund:   {6: true},
}

const authenticationErrorCode = 5

// errorCodeKeys returns the candidate response keys for the error code,
// documented case first. acknowledgeTransaction.do documents the
// capitalized form; the other endpoints document lowercase.
func errorCodeKeys(endpoint string) []string {
	if endpoint == endpointConfirm {
		return []string{"ErrorCode", "errorCode"}
	}
	return []string{"errorCode", "ErrorCode"}
}

func errorMessageKeys(endpoint string) []string {
	if endpoint == endpointConfirm {
		return []string{"ErrorMessage", "errorMessage"}
	}
	return []string{"errorMessage", "ErrorMessage"}
}

// classifyResponse decides whether a decoded gateway response is an
// error. It returns nil on error code 0; the caller then builds the
// typed result. The raw response always travels with the error for
// diagnostics.
func classifyResponse(endpoint string, data map[string]interface{}) *pkgerrors.GatewayError {
	code := int(lookupInt(data, errorCodeKeys(endpoint)...))
	if code == 0 {
		return nil
	}

	message := lookupString(data, errorMessageKeys(endpoint)...)
	if message == "" {
		message = "Unknown error"
	}

	if code == authenticationErrorCode {
		return pkgerrors.NewAuthenticationError(message, code, data)
	}
	if paymentErrorCodes[endpoint][code] {
		return pkgerrors.NewPaymentError(message, code, data)
	}
	return pkgerrors.NewGenericError(message, code, data)
}
