// Package store implements HTTP clients for the suite's collaborator
// services (invoices, parties, businesses). All clients are read-only and
// forward the caller's bearer token.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"gstsuite/internal/domain"
)

const defaultTimeout = 30 * time.Second

type client struct {
	baseURL string
	http    *http.Client
}

// newClient builds the shared HTTP client. A non-positive timeout falls back
// to defaultTimeout.
func newClient(baseURL string, timeout time.Duration) client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// envelope is the suite-wide response wrapper used by every collaborator
// service: {"success": bool, "data": ..., "error": {"message": ...}}.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// get performs an authenticated GET and decodes the envelope's data field
// into out.
func (c client) get(ctx context.Context, path, authToken string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+authToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("calling %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return domain.NotFoundf("resource not found: %s", path)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s returned status %d: %s", path, resp.StatusCode, truncate(string(body), 300))
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("unmarshaling response: %w", err)
	}
	if !env.Success {
		msg := "request failed"
		if env.Error != nil && env.Error.Message != "" {
			msg = env.Error.Message
		}
		return fmt.Errorf("%s: %s", path, msg)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("unmarshaling data: %w", err)
	}
	return nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
