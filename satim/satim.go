// Package satim is a client library for the SATIM bank card payment
// gateway. It registers payment orders, confirms transaction outcomes
// and issues refunds over the gateway's HTTP+JSON protocol.
package satim

import (
	"context"
	"math/rand"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/dzpay/satim-go/config"
	"github.com/dzpay/satim-go/ports"
)

// Service wraps the gateway client with the merchant's configured
// defaults: language, currency and terminal id. It carries no per-call
// state, so one Service can serve concurrent callers.
type Service struct {
	client     *Client
	language   string
	currency   string
	terminalID string
}

// NewService creates a Service with an injected transport.
func NewService(cfg *config.Config, httpClient ports.HTTPClient, logger ports.Logger) *Service {
	return newService(cfg, NewClient(cfg, httpClient, logger))
}

// NewServiceWithDefaults creates a Service backed by an HTTP client built
// from the configured timeouts and TLS settings.
func NewServiceWithDefaults(cfg *config.Config, logger ports.Logger) *Service {
	return newService(cfg, NewClientWithDefaults(cfg, logger))
}

func newService(cfg *config.Config, client *Client) *Service {
	return &Service{
		client:     client,
		language:   cfg.Language,
		currency:   cfg.Currency,
		terminalID: cfg.TerminalID,
	}
}

// Client returns the underlying gateway client.
func (s *Service) Client() *Client {
	return s.client
}

// RegisterOrder registers a payment order, filling in the configured
// currency, terminal id and language where opts leaves them empty. An
// empty OrderNumber gets a generated 10-digit one.
func (s *Service) RegisterOrder(ctx context.Context, opts RegisterOrderOptions) (*RegisterOrderResult, error) {
	if opts.OrderNumber == "" {
		opts.OrderNumber = GenerateOrderNumber()
	}
	if opts.Currency == "" {
		opts.Currency = s.currency
	}
	if opts.TerminalID == "" {
		opts.TerminalID = s.terminalID
	}
	if opts.Language == "" {
		opts.Language = s.language
	}

	req, err := NewRegisterOrderRequest(opts)
	if err != nil {
		return nil, err
	}
	return s.client.RegisterOrder(ctx, req)
}

// ConfirmOrder acknowledges a transaction by its gateway-issued mdOrder.
// An empty language falls back to the configured default.
func (s *Service) ConfirmOrder(ctx context.Context, mdOrder, language string) (*ConfirmOrderResult, error) {
	if language == "" {
		language = s.language
	}
	req, err := NewConfirmOrderRequest(mdOrder, language)
	if err != nil {
		return nil, err
	}
	return s.client.ConfirmOrder(ctx, req)
}

// RefundOrder refunds amount cents against a gateway-issued order id.
func (s *Service) RefundOrder(ctx context.Context, orderID string, amount int64) (*RefundOrderResult, error) {
	req, err := NewRefundOrderRequest(orderID, amount)
	if err != nil {
		return nil, err
	}
	return s.client.RefundOrder(ctx, req)
}

// GenerateOrderNumber returns a random 10-digit numeric order number.
func GenerateOrderNumber() string {
	n := rand.Int63n(9000000000) + 1000000000
	return strconv.FormatInt(n, 10)
}

// DinarsToCents converts a major-unit amount to gateway cents.
func DinarsToCents(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).IntPart()
}

// CentsToDinars converts gateway cents back to a major-unit amount.
func CentsToDinars(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}
