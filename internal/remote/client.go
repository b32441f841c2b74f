// Package remote is the HTTP client side of the sync protocol.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/cloudnav/cloudnav/internal/domain"
)

// ErrUnauthorized reports that the gateway rejected the shared secret.
// Callers are expected to drop the stored credential when they see it.
var ErrUnauthorized = errors.New("unauthorized")

// HeaderAuthPassword carries the shared secret on write requests.
const HeaderAuthPassword = "x-auth-password"

type Client struct {
	baseURL string
	http    *http.Client
}

// New builds a sync client for the gateway at baseURL. Requests rely on
// the platform default timeout; a failed sync costs nothing because local
// state is already updated when it fires.
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    http.DefaultClient,
	}
}

// Fetch retrieves the whole dataset. No auth. An empty remote store yields
// an envelope with no links, never an error.
func (c *Client) Fetch(ctx context.Context) (domain.Envelope, error) {
	var env domain.Envelope

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/storage", nil)
	if err != nil {
		return env, fmt.Errorf("failed to build fetch request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return env, fmt.Errorf("fetch failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return env, fmt.Errorf("fetch: unexpected status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return env, fmt.Errorf("failed to decode fetched envelope: %w", err)
	}
	return env, nil
}

// Replace pushes the whole dataset, authenticated with token. A 401 maps
// to ErrUnauthorized; everything else non-2xx is a plain failure.
func (c *Client) Replace(ctx context.Context, token string, env domain.Envelope) error {
	payload, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("failed to marshal envelope: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/storage", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build replace request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(HeaderAuthPassword, token)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("replace failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return ErrUnauthorized
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("replace: unexpected status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

// QuickAddPayload is the minimal link-creation payload for external callers.
type QuickAddPayload struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
	CategoryID  string `json:"categoryId,omitempty"`
}

// QuickAddResult carries the created link and the resolved category's
// display name, so the caller can confirm without a second fetch.
type QuickAddResult struct {
	Link         domain.Link `json:"link"`
	CategoryName string      `json:"categoryName"`
}

// QuickAdd appends one link through the narrow gateway endpoint.
func (c *Client) QuickAdd(ctx context.Context, token string, payload QuickAddPayload) (QuickAddResult, error) {
	var result QuickAddResult

	data, err := json.Marshal(payload)
	if err != nil {
		return result, fmt.Errorf("failed to marshal quick-add payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/link", bytes.NewReader(data))
	if err != nil {
		return result, fmt.Errorf("failed to build quick-add request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(HeaderAuthPassword, token)

	resp, err := c.http.Do(req)
	if err != nil {
		return result, fmt.Errorf("quick-add failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return result, ErrUnauthorized
	case resp.StatusCode == http.StatusBadRequest:
		var body struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&body)
		return result, fmt.Errorf("quick-add rejected: %s", body.Error)
	case resp.StatusCode != http.StatusOK:
		return result, fmt.Errorf("quick-add: unexpected status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return result, fmt.Errorf("failed to decode quick-add response: %w", err)
	}
	return result, nil
}
