package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGatewayError_Error(t *testing.T) {
	withCode := NewPaymentError("Order declined", 2, nil)
	assert.Equal(t, "satim: Order declined (code 2)", withCode.Error())

	withoutCode := NewValidationError("Return URL is required")
	assert.Equal(t, "satim: Return URL is required", withoutCode.Error())
}

func TestGatewayError_Kinds(t *testing.T) {
	tests := []struct {
		err  *GatewayError
		kind Kind
	}{
		{NewValidationError("bad input"), KindValidation},
		{NewAuthenticationError("denied", 5, nil), KindAuthentication},
		{NewPaymentError("declined", 2, nil), KindPayment},
		{NewGenericError("boom", 7, nil), KindGeneric},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.kind, tt.err.Kind)
		assert.True(t, IsKind(tt.err, tt.kind))
	}
}

func TestWrapGenericError_PreservesCause(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	gerr := WrapGenericError("failed to connect to payment gateway", cause)

	assert.Equal(t, KindGeneric, gerr.Kind)
	assert.ErrorIs(t, gerr, cause)
}

func TestAsGatewayError_ThroughWrapping(t *testing.T) {
	inner := NewAuthenticationError("Access denied", 5, map[string]interface{}{"errorCode": 5})
	wrapped := fmt.Errorf("register failed: %w", inner)

	gerr, ok := AsGatewayError(wrapped)

	require.True(t, ok)
	assert.Equal(t, KindAuthentication, gerr.Kind)
	assert.Equal(t, 5, gerr.Code)
	assert.Equal(t, 5, gerr.Context["errorCode"])
}

func TestAsGatewayError_PlainError(t *testing.T) {
	_, ok := AsGatewayError(errors.New("plain"))
	assert.False(t, ok)
	assert.False(t, IsKind(errors.New("plain"), KindGeneric))
}
