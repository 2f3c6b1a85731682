package satim

import (
	"encoding/json"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	pkgerrors "github.com/dzpay/satim-go/pkg/errors"
)

const (
	// Gateway minimum is 5000 cents (50 DA); amounts are whole dinars
	// expressed in cents, so always a multiple of 100.
	minAmount = 5000

	// The gateway documents a 20-digit ceiling; 18 nines is the largest
	// all-nines value an int64 holds.
	maxAmount = int64(999999999999999999)

	// Description length is measured in Unicode code points, not bytes.
	maxDescriptionLength = 512
)

var (
	orderNumberPattern = regexp.MustCompile(`^[A-Za-z0-9]{1,10}$`)
	currencyPattern    = regexp.MustCompile(`^[0-9]{3}$`)
	terminalIDPattern  = regexp.MustCompile(`^[A-Za-z0-9]{1,16}$`)
	udfPattern         = regexp.MustCompile(`^[A-Za-z0-9]{1,20}$`)
)

// RegisterOrderOptions carries the raw caller-supplied values for a
// register call. NewRegisterOrderRequest trims, normalizes and validates
// them; the options struct itself enforces nothing.
type RegisterOrderOptions struct {
	OrderNumber string
	Amount      int64 // cents
	Currency    string
	ReturnURL   string
	Language    string
	TerminalID  string
	FailURL     string
	Description string
	UDF1        string
	UDF2        string
	UDF3        string
	UDF4        string
	UDF5        string
}

// RegisterOrderRequest is a validated, immutable register.do payload.
type RegisterOrderRequest struct {
	orderNumber string
	amount      int64
	currency    string
	returnURL   string
	language    string
	terminalID  string
	failURL     string
	description string
	udfs        [5]string
}

// NewRegisterOrderRequest validates opts and returns an immutable request.
// Checks run in a fixed order so failure messages are deterministic; the
// first violated rule wins. No network I/O happens here.
func NewRegisterOrderRequest(opts RegisterOrderOptions) (*RegisterOrderRequest, error) {
	r := &RegisterOrderRequest{
		orderNumber: strings.TrimSpace(opts.OrderNumber),
		amount:      opts.Amount,
		currency:    strings.TrimSpace(opts.Currency),
		returnURL:   strings.TrimSpace(opts.ReturnURL),
		language:    strings.ToUpper(strings.TrimSpace(opts.Language)),
		terminalID:  strings.TrimSpace(opts.TerminalID),
		failURL:     strings.TrimSpace(opts.FailURL),
		description: strings.TrimSpace(opts.Description),
	}
	for i, udf := range []string{opts.UDF1, opts.UDF2, opts.UDF3, opts.UDF4, opts.UDF5} {
		r.udfs[i] = strings.TrimSpace(udf)
	}

	if err := r.validate(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *RegisterOrderRequest) validate() error {
	if !orderNumberPattern.MatchString(r.orderNumber) {
		return pkgerrors.NewValidationError("Order number must be alphanumeric (A-Z, a-z, 0-9) and 1-10 characters")
	}

	if r.amount < minAmount {
		return pkgerrors.NewValidationError("Amount must be at least 5000 cents (50 DA)")
	}
	if r.amount > maxAmount {
		return pkgerrors.NewValidationError("Amount exceeds maximum allowed value")
	}
	if r.amount%100 != 0 {
		return pkgerrors.NewValidationError("Amount must be a multiple of 100 cents")
	}

	if !currencyPattern.MatchString(r.currency) {
		return pkgerrors.NewValidationError(`Currency must be a 3-digit ISO 4217 code (e.g., "012" for DZD)`)
	}

	if r.returnURL == "" {
		return pkgerrors.NewValidationError("Return URL is required")
	}
	if !isValidURL(r.returnURL) {
		return pkgerrors.NewValidationError("Return URL must be a valid URL")
	}

	if r.failURL != "" && !isValidURL(r.failURL) {
		return pkgerrors.NewValidationError("Fail URL must be a valid URL")
	}

	if utf8.RuneCountInString(r.description) > maxDescriptionLength {
		return pkgerrors.NewValidationError("Description must not exceed 512 characters")
	}

	if !isValidLanguage(r.language) {
		return pkgerrors.NewValidationError("Language must be FR, EN, or AR")
	}

	if !terminalIDPattern.MatchString(r.terminalID) {
		return pkgerrors.NewValidationError("Terminal ID must be alphanumeric and 1-16 characters")
	}

	for i, udf := range r.udfs {
		if udf != "" && !udfPattern.MatchString(udf) {
			return pkgerrors.NewValidationError("Udf" + strconv.Itoa(i+1) + " must be alphanumeric and 1-20 characters")
		}
	}

	return nil
}

// OrderNumber returns the normalized merchant order number.
func (r *RegisterOrderRequest) OrderNumber() string { return r.orderNumber }

// Amount returns the amount in cents.
func (r *RegisterOrderRequest) Amount() int64 { return r.amount }

// Language returns the normalized uppercase language.
func (r *RegisterOrderRequest) Language() string { return r.language }

// toParams builds the register.do query parameters. The terminal id and
// any present UDFs travel inside the jsonParams JSON object.
func (r *RegisterOrderRequest) toParams() url.Values {
	jsonParams := map[string]string{
		"force_terminal_id": r.terminalID,
	}
	for i, udf := range r.udfs {
		if udf != "" {
			jsonParams["udf"+strconv.Itoa(i+1)] = udf
		}
	}
	encoded, _ := json.Marshal(jsonParams)

	params := url.Values{}
	params.Set("orderNumber", r.orderNumber)
	params.Set("amount", strconv.FormatInt(r.amount, 10))
	params.Set("currency", r.currency)
	params.Set("returnUrl", r.returnURL)
	params.Set("language", r.language)
	params.Set("jsonParams", string(encoded))
	if r.failURL != "" {
		params.Set("failUrl", r.failURL)
	}
	if r.description != "" {
		params.Set("description", r.description)
	}
	return params
}

// ConfirmOrderRequest is a validated, immutable acknowledgeTransaction.do
// payload.
type ConfirmOrderRequest struct {
	mdOrder  string
	language string
}

// NewConfirmOrderRequest validates the gateway-issued order identifier
// and language.
func NewConfirmOrderRequest(mdOrder, language string) (*ConfirmOrderRequest, error) {
	r := &ConfirmOrderRequest{
		mdOrder:  strings.TrimSpace(mdOrder),
		language: strings.ToUpper(strings.TrimSpace(language)),
	}

	if r.mdOrder == "" {
		return nil, pkgerrors.NewValidationError("mdOrder is required")
	}
	if r.language == "" {
		return nil, pkgerrors.NewValidationError("Language is required")
	}
	if !isValidLanguage(r.language) {
		return nil, pkgerrors.NewValidationError("Language must be FR, EN, or AR")
	}
	return r, nil
}

// MdOrder returns the gateway-issued order identifier.
func (r *ConfirmOrderRequest) MdOrder() string { return r.mdOrder }

func (r *ConfirmOrderRequest) toParams() url.Values {
	params := url.Values{}
	params.Set("mdOrder", r.mdOrder)
	params.Set("language", r.language)
	return params
}

// RefundOrderRequest is a validated, immutable refund.do payload.
type RefundOrderRequest struct {
	orderID string
	amount  int64
}

// NewRefundOrderRequest validates the order id and refund amount in cents.
func NewRefundOrderRequest(orderID string, amount int64) (*RefundOrderRequest, error) {
	r := &RefundOrderRequest{
		orderID: strings.TrimSpace(orderID),
		amount:  amount,
	}

	if r.orderID == "" {
		return nil, pkgerrors.NewValidationError("Order ID is required")
	}
	if r.amount < minAmount {
		return nil, pkgerrors.NewValidationError("Amount must be at least 5000 cents (50 DA)")
	}
	if r.amount%100 != 0 {
		return nil, pkgerrors.NewValidationError("Amount must be a multiple of 100 cents")
	}
	return r, nil
}

// OrderID returns the gateway-issued order identifier.
func (r *RefundOrderRequest) OrderID() string { return r.orderID }

// Amount returns the refund amount in cents.
func (r *RefundOrderRequest) Amount() int64 { return r.amount }

func (r *RefundOrderRequest) toParams() url.Values {
	params := url.Values{}
	params.Set("orderId", r.orderID)
	params.Set("amount", strconv.FormatInt(r.amount, 10))
	return params
}

func isValidLanguage(language string) bool {
	switch language {
	case "FR", "EN", "AR":
		return true
	}
	return false
}

func isValidURL(raw string) bool {
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
