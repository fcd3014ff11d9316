// Package health probes the model gateway the prompt evaluations depend on.
package health

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/felixgeelhaar/fortify/timeout"
)

// DefaultTimeout bounds a probe when no timeout is configured.
const DefaultTimeout = 10 * time.Second

// DefaultBaseURL is the OpenRouter API root probed when none is configured.
const DefaultBaseURL = "https://openrouter.ai/api/v1"

// NetworkError reports a failed or timed-out probe.
type NetworkError struct {
	URL        string
	StatusCode int
	Timeout    bool
	Err        error
}

func (e *NetworkError) Error() string {
	switch {
	case e.Timeout:
		return fmt.Sprintf("request to %s timed out", e.URL)
	case e.StatusCode != 0:
		return fmt.Sprintf("request to %s returned HTTP %d", e.URL, e.StatusCode)
	default:
		return fmt.Sprintf("request to %s failed: %v", e.URL, e.Err)
	}
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ModelsResult summarises the gateway model listing.
type ModelsResult struct {
	URL          string        `json:"url"`
	ModelCount   int           `json:"model_count"`
	ClaudeModels int           `json:"claude_models"`
	Latency      time.Duration `json:"latency"`
}

type modelList struct {
	Data []struct {
		ID string `json:"id"`
	} `json:"data"`
}

// Prober lists models from an OpenAI-compatible gateway.
type Prober struct {
	client  *http.Client
	timeout time.Duration
}

// NewProber returns a prober. A nil client uses http.DefaultClient and a
// non-positive timeout uses DefaultTimeout.
func NewProber(client *http.Client, d time.Duration) *Prober {
	if client == nil {
		client = http.DefaultClient
	}
	if d <= 0 {
		d = DefaultTimeout
	}
	return &Prober{client: client, timeout: d}
}

// ProbeModels calls GET <baseURL>/models with a bearer token. Non-200
// responses, transport errors and timeouts are reported as *NetworkError.
func (p *Prober) ProbeModels(ctx context.Context, baseURL, apiKey string) (*ModelsResult, error) {
	url := strings.TrimRight(baseURL, "/") + "/models"

	t := timeout.New[*ModelsResult](timeout.Config{
		DefaultTimeout: p.timeout,
	})

	start := time.Now()
	res, err := t.Execute(ctx, p.timeout, func(ctx context.Context) (*ModelsResult, error) {
		return p.listModels(ctx, url, apiKey)
	})
	if err != nil {
		var netErr *NetworkError
		if errors.As(err, &netErr) {
			return nil, netErr
		}
		return nil, &NetworkError{
			URL:     url,
			Timeout: errors.Is(err, context.DeadlineExceeded) || time.Since(start) >= p.timeout,
			Err:     err,
		}
	}
	res.Latency = time.Since(start)
	return res, nil
}

func (p *Prober) listModels(ctx context.Context, url, apiKey string) (*ModelsResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, &NetworkError{
			URL:     url,
			Timeout: errors.Is(err, context.DeadlineExceeded),
			Err:     err,
		}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &NetworkError{URL: url, StatusCode: resp.StatusCode}
	}

	var list modelList
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, &NetworkError{URL: url, Err: fmt.Errorf("failed to decode model list: %w", err)}
	}

	out := &ModelsResult{URL: url, ModelCount: len(list.Data)}
	for _, m := range list.Data {
		id := strings.ToLower(m.ID)
		if strings.Contains(id, "claude") || strings.Contains(id, "anthropic") {
			out.ClaudeModels++
		}
	}
	return out, nil
}
