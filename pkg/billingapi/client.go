// Package billingapi talks to the external checkout billing endpoint. Every
// request and response body is wrapped in the encrypted envelope.
package billingapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"checkoutdash/pkg/crypto"
	"checkoutdash/pkg/metrics"
	"checkoutdash/pkg/utils"
)

const (
	MethodRenewalCharge      = "productRtPaypal"
	MethodCancelSubscription = "cancelSubscriptionProduct"
)

// maxResponseBytes bounds how much of a response body is read.
const maxResponseBytes = 1 << 20

type RenewalChargeRequest struct {
	ProductID   string `json:"productId"`
	Method      string `json:"method"`
	ProductName string `json:"productName"`
}

type CancelRequest struct {
	ProductID     string `json:"productId"`
	UserID        string `json:"userId"`
	ProductName   string `json:"productName"`
	CancelReason  string `json:"cancelReason"`
	CancelledType string `json:"cancelledType"`
	Lang          string `json:"lang"`
	Method        string `json:"method"`
}

type Result struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// UnmarshalJSON accepts status as a string, number or boolean.
func (r *Result) UnmarshalJSON(b []byte) error {
	var raw struct {
		Status  json.RawMessage `json:"status"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	r.Message = raw.Message
	r.Status = ""

	status := bytes.TrimSpace(raw.Status)
	if len(status) == 0 || bytes.Equal(status, []byte("null")) {
		return nil
	}
	if status[0] == '"' {
		return json.Unmarshal(status, &r.Status)
	}
	r.Status = string(status)
	return nil
}

type envelopeBody struct {
	Data string `json:"data"`
}

type Client struct {
	url      string
	http     *http.Client
	envelope *crypto.Envelope
	metrics  *metrics.Metrics
}

// NewClient builds a client that makes a single attempt per call, bounded by
// timeout. Calls are never retried: a renewal charge is not idempotent.
func NewClient(url string, timeout time.Duration, envelope *crypto.Envelope, m *metrics.Metrics) *Client {
	return &Client{
		url:      url,
		http:     &http.Client{Timeout: timeout},
		envelope: envelope,
		metrics:  m,
	}
}

func (c *Client) ChargeRenewal(ctx context.Context, req RenewalChargeRequest) (*Result, error) {
	req.Method = MethodRenewalCharge
	return c.call(ctx, req.Method, req)
}

func (c *Client) CancelSubscription(ctx context.Context, req CancelRequest) (*Result, error) {
	req.Method = MethodCancelSubscription
	if req.Lang == "" {
		req.Lang = "en"
	}
	return c.call(ctx, req.Method, req)
}

func (c *Client) call(ctx context.Context, method string, payload interface{}) (*Result, error) {
	res, err := c.do(ctx, payload)
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	c.metrics.BillingRequest(method, outcome)
	return res, err
}

func (c *Client) do(ctx context.Context, payload interface{}) (*Result, error) {
	plain, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: encode payload: %w", utils.ErrExternalServiceFailure, err)
	}
	cipherText, err := c.envelope.Encrypt(plain)
	if err != nil {
		return nil, fmt.Errorf("%w: encrypt payload: %w", utils.ErrExternalServiceFailure, err)
	}
	body, err := json.Marshal(envelopeBody{Data: cipherText})
	if err != nil {
		return nil, fmt.Errorf("%w: encode envelope: %w", utils.ErrExternalServiceFailure, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %w", utils.ErrExternalServiceFailure, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", utils.ErrExternalServiceFailure, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %w", utils.ErrExternalServiceFailure, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: unexpected status %d", utils.ErrExternalServiceFailure, resp.StatusCode)
	}

	return c.decode(raw)
}

// decode accepts either {"data": "<ciphertext>"} or a bare ciphertext body.
func (c *Client) decode(raw []byte) (*Result, error) {
	cipherText := strings.TrimSpace(string(raw))
	if strings.HasPrefix(cipherText, "{") {
		var env envelopeBody
		if err := json.Unmarshal(raw, &env); err != nil {
			return nil, fmt.Errorf("%w: parse envelope: %w", utils.ErrExternalServiceFailure, err)
		}
		cipherText = env.Data
	}
	if cipherText == "" {
		return nil, fmt.Errorf("%w: empty response", utils.ErrExternalServiceFailure)
	}

	plain, err := c.envelope.Decrypt(cipherText)
	if err != nil {
		return nil, fmt.Errorf("%w: decrypt response: %w", utils.ErrExternalServiceFailure, err)
	}
	var result Result
	if err := json.Unmarshal(plain, &result); err != nil {
		return nil, fmt.Errorf("%w: parse response: %w", utils.ErrExternalServiceFailure, err)
	}
	return &result, nil
}
