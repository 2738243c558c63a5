package vtu

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"wallet-service/src/pkg/log"
	"wallet-service/src/pkg/utils"

	"github.com/spf13/viper"
)

// SubmitRequest is one dispatch to the telco/bill aggregator. Reference is
// the caller-generated transaction reference; the aggregator echoes its own
// provider reference back on success.
type SubmitRequest struct {
	Type        string  `json:"type"`
	Amount      float64 `json:"amount"`
	Reference   string  `json:"reference"`
	Network     string  `json:"network,omitempty"`
	PhoneNumber string  `json:"phone_number,omitempty"`
	Plan        string  `json:"plan,omitempty"`
	Disco       string  `json:"disco,omitempty"`
	MeterNumber string  `json:"meter_number,omitempty"`
	Quantity    int     `json:"quantity,omitempty"`
}

type SubmitResult struct {
	Success           bool   `json:"success"`
	ProviderReference string `json:"provider_reference"`
	Message           string `json:"message,omitempty"`
}

type Client struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
	Log        log.Log
}

// NewClient builds the aggregator client. The request timeout doubles as the
// ambiguity bound: expiry means the outcome is unknown, not failed.
func NewClient(v *viper.Viper, logger log.Log) *Client {
	timeout := v.GetDuration("gateway.timeout")
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		BaseURL: v.GetString("gateway.base_url"),
		APIKey:  v.GetString("gateway.api_key"),
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
		Log: logger,
	}
}

// Submit performs exactly one dispatch. There are no automatic retries: a
// replay of a money-moving call risks double-charging, so retries are always
// a new user attempt under a new reference.
func (c *Client) Submit(ctx context.Context, request *SubmitRequest) (*SubmitResult, error) {
	body, err := json.Marshal(request)
	if err != nil {
		return nil, &Error{Kind: KindUpstreamRejected, Message: fmt.Sprintf("invalid request payload: %v", err)}
	}

	url := fmt.Sprintf("%s/v1/services/%s", c.BaseURL, request.Type)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, &Error{Kind: KindNetwork, Message: err.Error()}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		kind := KindNetwork
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			kind = KindTimeout
		}
		c.Log.Error("vtu-client", fmt.Sprintf("dispatch failed: %v", err), "Submit", request.Reference)
		return nil, &Error{Kind: kind, Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		c.Log.Error("vtu-client", fmt.Sprintf("upstream unavailable: status %d", resp.StatusCode), "Submit", request.Reference)
		return nil, &Error{Kind: KindUpstreamUnavailable, Message: fmt.Sprintf("upstream returned status %d", resp.StatusCode)}
	}

	var result SubmitResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &Error{Kind: KindUpstreamUnavailable, Message: fmt.Sprintf("unreadable upstream response: %v", err)}
	}

	if resp.StatusCode >= http.StatusBadRequest || !result.Success {
		message := result.Message
		if message == "" {
			message = fmt.Sprintf("upstream rejected request with status %d", resp.StatusCode)
		}
		c.Log.Error("vtu-client", message, "Submit", request.Reference)
		return nil, &Error{Kind: KindUpstreamRejected, Message: message}
	}

	c.Log.Info("vtu-client", "dispatch accepted", "Submit", utils.ConvertString(result))
	return &result, nil
}

func isTimeout(err error) bool {
	type timeouter interface {
		Timeout() bool
	}
	var t timeouter
	if errors.As(err, &t) {
		return t.Timeout()
	}
	return false
}
