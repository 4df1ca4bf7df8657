package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type httpClient struct {
	inner *http.Client
}

func newHTTPClient(timeout time.Duration) *httpClient {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &httpClient{inner: &http.Client{Timeout: timeout}}
}

func (c *httpClient) postJSON(ctx context.Context, endpoint string, body any) (int, []byte, error) {
	return c.sendJSON(ctx, http.MethodPost, endpoint, body)
}

func (c *httpClient) patchJSON(ctx context.Context, endpoint string, body any) (int, []byte, error) {
	return c.sendJSON(ctx, http.MethodPatch, endpoint, body)
}

func (c *httpClient) sendJSON(ctx context.Context, method, endpoint string, body any) (int, []byte, error) {
	raw, err := json.Marshal(body)
	if err != nil {
		return 0, nil, err
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, bytes.NewReader(raw))
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.inner.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	respRaw, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		return resp.StatusCode, nil, readErr
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp.StatusCode, respRaw, nil
	}
	return resp.StatusCode, respRaw, fmt.Errorf("push failed with status %d", resp.StatusCode)
}
