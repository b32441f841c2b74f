package kv

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/cloudnav/cloudnav/internal/logger"
)

// HTTPAdapter talks to a key-value store through an HTTP proxy API:
// GET <base>/<key> returns {"value": ...} (404 = absent),
// PUT <base>/<key> with {"value": ...} stores,
// DELETE <base>/<key> removes.
type HTTPAdapter struct {
	baseURL string
	token   string
	client  *http.Client
	logger  logger.Logger
}

// NewHTTP builds an adapter over an HTTP KV proxy. The client relies on
// the platform default request timeout.
func NewHTTP(baseURL, token string, log logger.Logger) *HTTPAdapter {
	return &HTTPAdapter{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client:  http.DefaultClient,
		logger:  log,
	}
}

type httpValue struct {
	Value string `json:"value"`
}

func (a *HTTPAdapter) keyURL(key string) string {
	return a.baseURL + "/" + url.PathEscape(key)
}

func (a *HTTPAdapter) Get(ctx context.Context, key string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.keyURL(key), nil)
	if err != nil {
		return "", fmt.Errorf("failed to build kv get request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+a.token)

	resp, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("kv get failed for key %s: %w", key, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", nil // key absent
	case resp.StatusCode != http.StatusOK:
		return "", fmt.Errorf("kv get for key %s: unexpected status %d", key, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read kv get response: %w", err)
	}

	var v httpValue
	if err := json.Unmarshal(body, &v); err != nil {
		return "", fmt.Errorf("failed to decode kv get response: %w", err)
	}
	return v.Value, nil
}

func (a *HTTPAdapter) Put(ctx context.Context, key, value string) error {
	payload, err := json.Marshal(httpValue{Value: value})
	if err != nil {
		return fmt.Errorf("failed to encode kv put payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, a.keyURL(key), bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build kv put request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+a.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		a.sideCopy(key, value)
		return fmt.Errorf("kv put failed for key %s: %w", key, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		a.sideCopy(key, value)
		return fmt.Errorf("kv put for key %s: unexpected status %d", key, resp.StatusCode)
	}
	return nil
}

func (a *HTTPAdapter) Delete(ctx context.Context, key string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, a.keyURL(key), nil)
	if err != nil {
		return fmt.Errorf("failed to build kv delete request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+a.token)

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("kv delete failed for key %s: %w", key, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusNotFound {
		return fmt.Errorf("kv delete for key %s: unexpected status %d", key, resp.StatusCode)
	}
	return nil
}

// sideCopy leaves a diagnostic copy of a failed write in the OS temp dir.
// The write error still propagates to the caller.
func (a *HTTPAdapter) sideCopy(key, value string) {
	name := filepath.Join(os.TempDir(), "cloudnav-kv-"+sanitizeKey(key)+".json")
	if err := os.WriteFile(name, []byte(value), 0o600); err != nil {
		a.logger.Warn("failed to write kv side-copy",
			logger.String("key", key),
			logger.Error(err))
		return
	}
	a.logger.Warn("kv put failed, side-copy written",
		logger.String("key", key),
		logger.String("file", name))
}

func sanitizeKey(key string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, key)
}
