package satim

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dzpay/satim-go/config"
	pkgerrors "github.com/dzpay/satim-go/pkg/errors"
	"github.com/dzpay/satim-go/pkg/observability"
	"github.com/dzpay/satim-go/ports"
)

const redactedPlaceholder = "[REDACTED]"

// Client talks to the SATIM REST gateway. It holds only read-only
// configuration, so concurrent calls are safe; each operation is a single
// GET with no retries.
type Client struct {
	apiURL     string
	username   string
	password   string
	httpClient ports.HTTPClient
	logger     ports.Logger
}

// NewClient creates a gateway client with an injected transport.
func NewClient(cfg *config.Config, httpClient ports.HTTPClient, logger ports.Logger) *Client {
	return &Client{
		apiURL:     strings.TrimRight(cfg.APIURL, "/"),
		username:   cfg.Username,
		password:   cfg.Password,
		httpClient: httpClient,
		logger:     logger,
	}
}

// NewClientWithDefaults creates a gateway client backed by an HTTP client
// built from the configured timeouts and TLS verification flag.
func NewClientWithDefaults(cfg *config.Config, logger ports.Logger) *Client {
	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout: cfg.ConnectTimeout,
		}).DialContext,
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: !cfg.VerifySSL,
		},
	}
	httpClient := &http.Client{
		Timeout:   cfg.Timeout,
		Transport: transport,
	}
	return NewClient(cfg, httpClient, logger)
}

// RegisterOrder registers a payment order and returns the hosted payment
// page URL in the result.
func (c *Client) RegisterOrder(ctx context.Context, req *RegisterOrderRequest) (*RegisterOrderResult, error) {
	data, err := c.call(ctx, endpointRegister, req.toParams())
	if err != nil {
		return nil, err
	}
	if gerr := classifyResponse(endpointRegister, data); gerr != nil {
		return nil, gerr
	}
	return newRegisterOrderResult(data), nil
}

// ConfirmOrder acknowledges a transaction and returns its status plus
// card and transaction metadata.
func (c *Client) ConfirmOrder(ctx context.Context, req *ConfirmOrderRequest) (*ConfirmOrderResult, error) {
	data, err := c.call(ctx, endpointConfirm, req.toParams())
	if err != nil {
		return nil, err
	}
	if gerr := classifyResponse(endpointConfirm, data); gerr != nil {
		return nil, gerr
	}
	return newConfirmOrderResult(data), nil
}

// RefundOrder refunds a previously deposited transaction.
func (c *Client) RefundOrder(ctx context.Context, req *RefundOrderRequest) (*RefundOrderResult, error) {
	data, err := c.call(ctx, endpointRefund, req.toParams())
	if err != nil {
		return nil, err
	}
	if gerr := classifyResponse(endpointRefund, data); gerr != nil {
		return nil, gerr
	}
	return newRefundOrderResult(data), nil
}

// call performs one GET against the gateway and decodes the JSON body.
// Transport failures come back as generic gateway errors with
// distinguishable messages; the underlying cause stays wrapped.
func (c *Client) call(ctx context.Context, endpoint string, params url.Values) (map[string]interface{}, error) {
	requestID := uuid.NewString()

	params.Set("userName", c.username)
	params.Set("password", c.password)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"/"+endpoint, nil)
	if err != nil {
		return nil, pkgerrors.WrapGenericError("failed to build gateway request", err)
	}
	httpReq.URL.RawQuery = params.Encode()

	if c.logger != nil {
		c.logger.Info("calling satim gateway",
			ports.String("request_id", requestID),
			ports.String("endpoint", endpoint),
			ports.String("params", redactedQuery(params)),
		)
	}

	start := time.Now()
	data, gerr := c.doCall(httpReq)
	elapsed := time.Since(start)

	outcome := "success"
	if gerr != nil {
		outcome = string(gerr.Kind)
	}
	observability.ObserveGatewayRequest(endpoint, outcome, elapsed)

	if gerr != nil {
		if c.logger != nil {
			c.logger.Error("satim gateway call failed",
				ports.String("request_id", requestID),
				ports.String("endpoint", endpoint),
				ports.Duration("elapsed", elapsed),
				ports.Err(gerr),
			)
		}
		return nil, gerr
	}

	if c.logger != nil {
		c.logger.Debug("satim gateway call completed",
			ports.String("request_id", requestID),
			ports.String("endpoint", endpoint),
			ports.Duration("elapsed", elapsed),
		)
	}
	return data, nil
}

func (c *Client) doCall(httpReq *http.Request) (map[string]interface{}, *pkgerrors.GatewayError) {
	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, pkgerrors.WrapGenericError("failed to connect to payment gateway", err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, pkgerrors.WrapGenericError("failed to read payment gateway response", err)
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		return nil, pkgerrors.NewGenericError(
			fmt.Sprintf("request failed with HTTP %d", httpResp.StatusCode), 0, nil)
	}

	var data map[string]interface{}
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, pkgerrors.WrapGenericError("invalid JSON response from payment gateway", err)
	}
	return data, nil
}

// redactedQuery renders params for logging with credentials masked.
func redactedQuery(params url.Values) string {
	redacted := url.Values{}
	for key, values := range params {
		redacted[key] = values
	}
	redacted.Set("userName", redactedPlaceholder)
	redacted.Set("password", redactedPlaceholder)
	return redacted.Encode()
}
