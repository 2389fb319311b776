package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"
)

// apiClient is the shared JSON-over-HTTPS plumbing for both providers:
// bearer auth, a request timeout, and a circuit breaker so a flapping
// provider fails fast instead of tying up checkout requests.
type apiClient struct {
	base    string
	secret  string
	httpc   *http.Client
	breaker *gobreaker.CircuitBreaker[[]byte]
}

func newAPIClient(name, base, secret string) *apiClient {
	return &apiClient{
		base:   base,
		secret: secret,
		httpc:  &http.Client{Timeout: 15 * time.Second},
		breaker: gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
			Name:    name,
			Timeout: 30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
		}),
	}
}

// do sends one API call through the breaker and decodes the response
// body into out. Non-2xx responses are returned as errors carrying the
// provider's body so handlers can surface its message.
func (c *apiClient) do(ctx context.Context, method, path string, payload, out any) error {
	body, err := c.breaker.Execute(func() ([]byte, error) {
		var reqBody io.Reader
		if payload != nil {
			data, err := json.Marshal(payload)
			if err != nil {
				return nil, err
			}
			reqBody = bytes.NewReader(data)
		}

		req, err := http.NewRequestWithContext(ctx, method, c.base+path, reqBody)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+c.secret)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpc.Do(req)
		if err != nil {
			return nil, fmt.Errorf("failed to reach provider: %w", err)
		}
		defer resp.Body.Close()

		data, _ := io.ReadAll(resp.Body)
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, fmt.Errorf("provider API error (%d): %s", resp.StatusCode, string(data))
		}
		return data, nil
	})
	if err != nil {
		return err
	}

	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("failed to parse provider response: %w", err)
		}
	}
	return nil
}
