package satim

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/dzpay/satim-go/pkg/errors"
	"github.com/dzpay/satim-go/test/mocks"
)

func setupServiceTest(t *testing.T, handler http.HandlerFunc) *Service {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewService(testConfig(server.URL), &http.Client{}, mocks.NewMockLogger())
}

func TestService_RegisterOrder_AppliesDefaults(t *testing.T) {
	var query map[string][]string
	service := setupServiceTest(t, func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		json.NewEncoder(w).Encode(map[string]interface{}{
			"errorCode": 0,
			"orderId":   "V721uPPfNNofVQAAABL3",
			"formUrl":   "https://test.satim.dz/form",
		})
	})

	result, err := service.RegisterOrder(context.Background(), RegisterOrderOptions{
		Amount:    10000,
		ReturnURL: "https://example.com/success",
	})

	require.NoError(t, err)
	assert.True(t, result.IsSuccessful())
	assert.Equal(t, "V721uPPfNNofVQAAABL3", result.OrderID)

	// Defaults from config fill currency, terminal id and language.
	assert.Equal(t, "012", query["currency"][0])
	assert.Equal(t, "FR", query["language"][0])
	assert.Contains(t, query["jsonParams"][0], "TEST123")
	// Generated order number is a 10-digit numeric string.
	assert.Regexp(t, regexp.MustCompile(`^[1-9][0-9]{9}$`), query["orderNumber"][0])
}

func TestService_RegisterOrder_ValidationBeforeNetwork(t *testing.T) {
	called := false
	service := setupServiceTest(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	_, err := service.RegisterOrder(context.Background(), RegisterOrderOptions{
		Amount:    4999,
		ReturnURL: "https://example.com/success",
	})

	require.Error(t, err)
	assert.True(t, pkgerrors.IsKind(err, pkgerrors.KindValidation))
	assert.False(t, called, "validation errors must not reach the network")
}

func TestService_ConfirmOrder_DefaultLanguage(t *testing.T) {
	service := setupServiceTest(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "FR", r.URL.Query().Get("language"))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"ErrorCode":   0,
			"OrderStatus": 2,
		})
	})

	result, err := service.ConfirmOrder(context.Background(), "V721uPPfNNofVQAAABL3", "")

	require.NoError(t, err)
	assert.True(t, result.IsPaid())
}

func TestService_RefundOrder_ValidatesFirst(t *testing.T) {
	called := false
	service := setupServiceTest(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	_, err := service.RefundOrder(context.Background(), "abc123", 4999)

	require.Error(t, err)
	gerr, ok := pkgerrors.AsGatewayError(err)
	require.True(t, ok)
	assert.Equal(t, pkgerrors.KindValidation, gerr.Kind)
	assert.Equal(t, "Amount must be at least 5000 cents (50 DA)", gerr.Message)
	assert.False(t, called)
}

func TestGenerateOrderNumber(t *testing.T) {
	pattern := regexp.MustCompile(`^[1-9][0-9]{9}$`)
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		n := GenerateOrderNumber()
		assert.Regexp(t, pattern, n)
		seen[n] = true
	}
	// Not a uniqueness guarantee, but 100 collisions would mean the
	// generator is broken.
	assert.Greater(t, len(seen), 1)
}

func TestAmountConversionRoundTrip(t *testing.T) {
	tests := []struct {
		dinars string
		cents  int64
	}{
		{"100.50", 10050},
		{"50", 5000},
		{"1003.20", 100320},
		{"0", 0},
	}

	for _, tt := range tests {
		amount := decimal.RequireFromString(tt.dinars)
		cents := DinarsToCents(amount)
		assert.Equal(t, tt.cents, cents)
		assert.True(t, amount.Equal(CentsToDinars(cents)), "round trip %s", tt.dinars)
	}
}
