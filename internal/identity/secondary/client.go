// Package secondary talks to the independently-authoritative identity store
// the storefront does not control. The subsystem only ever updates existing
// remote accounts; it never provisions them.
package secondary

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"storegate/pkg/domain"
)

var (
	// ErrRemoteNotFound means the secondary store has no account for the id.
	ErrRemoteNotFound = errors.New("secondary store: account not found")
	// ErrRemoteRejected means the secondary store refused the write outright
	// (bad request, rate limit, revoked credentials).
	ErrRemoteRejected = errors.New("secondary store: write rejected")
)

// Client is the outbound contract the synchronizer depends on.
type Client interface {
	UpdatePassword(ctx context.Context, secondaryID, plaintext string) error
	UpdateRole(ctx context.Context, secondaryID string, role domain.Role) error
}

// HTTPClient calls the secondary store's REST admin API. The http.Client is
// injected so the synchronizer's per-call deadline is the only timeout knob.
type HTTPClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewHTTPClient(baseURL, apiKey string, httpClient *http.Client) *HTTPClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &HTTPClient{baseURL: baseURL, apiKey: apiKey, http: httpClient}
}

func (c *HTTPClient) UpdatePassword(ctx context.Context, secondaryID, plaintext string) error {
	return c.post(ctx, secondaryID, "password", map[string]string{"password": plaintext})
}

func (c *HTTPClient) UpdateRole(ctx context.Context, secondaryID string, role domain.Role) error {
	return c.post(ctx, secondaryID, "role", map[string]string{"role": role.String()})
}

func (c *HTTPClient) post(ctx context.Context, secondaryID, resource string, payload map[string]string) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode %s payload: %w", resource, err)
	}

	url := fmt.Sprintf("%s/v1/accounts/%s/%s", c.baseURL, secondaryID, resource)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build %s request: %w", resource, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		// Network and deadline failures surface as-is so the synchronizer
		// can classify them as transient.
		return fmt.Errorf("update %s: %w", resource, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		// The remote treats a write matching current state as a plain
		// success, which keeps re-synced state idempotent for us.
		return nil
	case resp.StatusCode == http.StatusNotFound:
		return ErrRemoteNotFound
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return fmt.Errorf("%w: status %d", ErrRemoteRejected, resp.StatusCode)
	default:
		return fmt.Errorf("update %s: remote status %d", resource, resp.StatusCode)
	}
}
