package satim

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// The gateway is inconsistent about field casing across endpoints and
// versions. Every field read goes through an ordered candidate-key
// lookup: documented case first, alternate case second, safe zero when
// neither is present. A missing optional field is never an error.

func lookupString(data map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		v, ok := data[key]
		if !ok || v == nil {
			continue
		}
		switch s := v.(type) {
		case string:
			return s
		default:
			return fmt.Sprint(s)
		}
	}
	return ""
}

// lookupInt coerces numeric fields that arrive as JSON numbers or as
// numeric strings.
func lookupInt(data map[string]interface{}, keys ...string) int64 {
	for _, key := range keys {
		v, ok := data[key]
		if !ok || v == nil {
			continue
		}
		switch n := v.(type) {
		case float64:
			return int64(n)
		case int:
			return int64(n)
		case int64:
			return n
		case string:
			parsed, err := strconv.ParseInt(n, 10, 64)
			if err != nil {
				continue
			}
			return parsed
		}
	}
	return 0
}

func lookupParams(data map[string]interface{}, key string) map[string]string {
	raw, ok := data[key].(map[string]interface{})
	if !ok {
		return nil
	}
	params := make(map[string]string, len(raw))
	for k, v := range raw {
		if v == nil {
			continue
		}
		if s, ok := v.(string); ok {
			params[k] = s
		} else {
			params[k] = fmt.Sprint(v)
		}
	}
	return params
}

// RegisterOrderResult is the typed register.do response.
type RegisterOrderResult struct {
	ErrorCode    int
	OrderID      string
	FormURL      string
	ErrorMessage string
}

// IsSuccessful reports whether the order was registered.
func (r *RegisterOrderResult) IsSuccessful() bool {
	return r.ErrorCode == 0
}

func newRegisterOrderResult(data map[string]interface{}) *RegisterOrderResult {
	return &RegisterOrderResult{
		ErrorCode:    int(lookupInt(data, "errorCode", "ErrorCode")),
		OrderID:      lookupString(data, "orderId"),
		FormURL:      lookupString(data, "formUrl"),
		ErrorMessage: lookupString(data, "errorMessage", "ErrorMessage"),
	}
}

// Order status codes reported by acknowledgeTransaction.do.
const (
	StatusRegistered    = 0
	StatusFailed        = -1
	StatusPreAuthorized = 1
	StatusDeposited     = 2
	StatusReversed      = 3
	StatusRefunded      = 4
	StatusDeclined      = 6
)

var statusNames = map[int]string{
	0:  "Order registered, but not paid",
	-1: "Transaction failed",
	1:  "Transaction approved / Pre-authorized",
	2:  "Amount deposited successfully",
	3:  "Authorization reversed",
	4:  "Transaction refunded",
	6:  "Authorization declined",
	7:  "Card added",
	8:  "Card updated",
	9:  "Card verified",
	10: "Recurring template added",
	11: "Debited",
}

// ConfirmOrderResult is the typed acknowledgeTransaction.do response.
// Amounts are cents; Params holds the echoed user-defined fields along
// with the gateway response code pair.
type ConfirmOrderResult struct {
	ErrorCode               int
	OrderStatus             int
	OrderNumber             string
	Pan                     string
	Amount                  int64
	DepositAmount           int64
	Currency                string
	ActionCode              int
	ActionCodeDescription   string
	ErrorMessage            string
	Expiration              string
	CardholderName          string
	AuthorizationResponseID string
	ApprovalCode            string
	IP                      string
	ClientID                string
	BindingID               string
	PaymentAccountReference string
	Description             string
	Params                  map[string]string
	SvfeResponse            string
}

func newConfirmOrderResult(data map[string]interface{}) *ConfirmOrderResult {
	return &ConfirmOrderResult{
		ErrorCode:               int(lookupInt(data, "ErrorCode", "errorCode")),
		OrderStatus:             int(lookupInt(data, "OrderStatus", "orderStatus")),
		OrderNumber:             lookupString(data, "OrderNumber", "orderNumber"),
		Pan:                     lookupString(data, "Pan", "pan"),
		Amount:                  lookupInt(data, "Amount", "amount"),
		DepositAmount:           lookupInt(data, "depositAmount"),
		Currency:                lookupString(data, "currency"),
		ActionCode:              int(lookupInt(data, "actionCode")),
		ActionCodeDescription:   lookupString(data, "actionCodeDescription"),
		ErrorMessage:            lookupString(data, "ErrorMessage", "errorMessage"),
		Expiration:              lookupString(data, "expiration"),
		CardholderName:          lookupString(data, "cardholderName"),
		AuthorizationResponseID: lookupString(data, "authorizationResponseId", "approvalCode"),
		ApprovalCode:            lookupString(data, "approvalCode"),
		IP:                      lookupString(data, "Ip", "ip"),
		ClientID:                lookupString(data, "clientId"),
		BindingID:               lookupString(data, "bindingId"),
		PaymentAccountReference: lookupString(data, "paymentAccountReference"),
		Description:             lookupString(data, "Description", "description"),
		Params:                  lookupParams(data, "params"),
		SvfeResponse:            lookupString(data, "SvfeResponse", "svfeResponse"),
	}
}

// IsSuccessful reports whether the gateway accepted the confirm call.
func (r *ConfirmOrderResult) IsSuccessful() bool { return r.ErrorCode == 0 }

// IsPaid reports whether the amount was deposited.
func (r *ConfirmOrderResult) IsPaid() bool { return r.OrderStatus == StatusDeposited }

// IsPreAuthorized reports whether the transaction is approved but not deposited.
func (r *ConfirmOrderResult) IsPreAuthorized() bool { return r.OrderStatus == StatusPreAuthorized }

// IsReversed reports whether the authorization was reversed.
func (r *ConfirmOrderResult) IsReversed() bool { return r.OrderStatus == StatusReversed }

// IsRefunded reports whether the transaction was refunded.
func (r *ConfirmOrderResult) IsRefunded() bool { return r.OrderStatus == StatusRefunded }

// IsDeclined reports whether the authorization was declined.
func (r *ConfirmOrderResult) IsDeclined() bool { return r.OrderStatus == StatusDeclined }

// StatusName returns the human-readable name for OrderStatus, or
// "Unknown status" for unmapped codes.
func (r *ConfirmOrderResult) StatusName() string {
	if name, ok := statusNames[r.OrderStatus]; ok {
		return name
	}
	return "Unknown status"
}

// HasCardDetails reports whether any card metadata came back.
func (r *ConfirmOrderResult) HasCardDetails() bool {
	return r.Pan != "" || r.Expiration != "" || r.CardholderName != ""
}

// HasBinding reports whether the gateway returned a card binding.
func (r *ConfirmOrderResult) HasBinding() bool {
	return r.BindingID != ""
}

// AmountInDinars converts the transaction amount from cents to dinars.
func (r *ConfirmOrderResult) AmountInDinars() decimal.Decimal {
	return CentsToDinars(r.Amount)
}

// DepositAmountInDinars converts the deposited amount from cents to dinars.
func (r *ConfirmOrderResult) DepositAmountInDinars() decimal.Decimal {
	return CentsToDinars(r.DepositAmount)
}

// UdfFields extracts the echoed user-defined fields from Params.
func (r *ConfirmOrderResult) UdfFields() map[string]string {
	udfs := make(map[string]string)
	for _, key := range []string{"udf1", "udf2", "udf3", "udf4", "udf5"} {
		if value, ok := r.Params[key]; ok {
			udfs[key] = value
		}
	}
	return udfs
}

// RefundOrderResult is the typed refund.do response.
type RefundOrderResult struct {
	ErrorCode    int
	ErrorMessage string
}

// IsSuccessful reports whether the refund was accepted.
func (r *RefundOrderResult) IsSuccessful() bool { return r.ErrorCode == 0 }

func newRefundOrderResult(data map[string]interface{}) *RefundOrderResult {
	return &RefundOrderResult{
		ErrorCode:    int(lookupInt(data, "errorCode", "ErrorCode")),
		ErrorMessage: lookupString(data, "errorMessage", "ErrorMessage"),
	}
}
