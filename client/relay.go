package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pipelineai/auth-gateway/internal/errors"
)

const defaultRelayTimeout = 15 * time.Second

// Relay is the browser-side client for the credential exchange endpoint.
// A hung relay is treated as a failure after a bounded wait.
type Relay struct {
	baseURL string
	client  *http.Client
	timeout time.Duration
}

// RelayOption modifies the Relay instance.
type RelayOption func(*Relay)

func WithHTTPClient(client *http.Client) RelayOption {
	return func(r *Relay) {
		r.client = client
	}
}

func WithTimeout(d time.Duration) RelayOption {
	return func(r *Relay) {
		r.timeout = d
	}
}

func NewRelay(baseURL string, options ...RelayOption) *Relay {
	r := &Relay{
		baseURL: baseURL,
		client:  http.DefaultClient,
		timeout: defaultRelayTimeout,
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// ExchangeResult mirrors the relay's success response body.
type ExchangeResult struct {
	User  map[string]any `json:"user"`
	Token string         `json:"token"`
}

// ExchangeCode posts the authorization code to the relay. Any transport
// failure, non-200 status, or empty token reports ErrExchangeFailed.
func (r *Relay) ExchangeCode(ctx context.Context, code string) (ExchangeResult, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	body, err := json.Marshal(map[string]string{"code": code})
	if err != nil {
		return ExchangeResult{}, errors.Wrapf(err, "[ExchangeCode] marshal request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/auth/github", bytes.NewReader(body))
	if err != nil {
		return ExchangeResult{}, errors.Wrapf(err, "[ExchangeCode] build request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return ExchangeResult{}, errors.Wrapf(errors.ErrExchangeFailed, "[ExchangeCode] %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ExchangeResult{}, errors.Wrapf(errors.ErrExchangeFailed, "[ExchangeCode] relay status %d", resp.StatusCode)
	}

	var result ExchangeResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return ExchangeResult{}, errors.Wrapf(errors.ErrExchangeFailed, "[ExchangeCode] decode response: %v", err)
	}
	if result.Token == "" {
		return ExchangeResult{}, fmt.Errorf("[ExchangeCode] relay returned no token: %w", errors.ErrExchangeFailed)
	}
	return result, nil
}
