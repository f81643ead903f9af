package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultClient bounds every provider call; a stuck provider must not hold a
// dispatch goroutine forever.
var DefaultClient = &http.Client{Timeout: 10 * time.Second}

// Post sends body as JSON to url with the API key in the X-Api-Key header and
// treats any non-2xx response as an error.
func Post(ctx context.Context, client *http.Client, url, apiKey string, body interface{}) error {
	if client == nil {
		client = DefaultClient
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal webhook body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Api-Key", apiKey)

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("post to %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return fmt.Errorf("%s returned status %d: %s", url, resp.StatusCode, snippet)
	}
	return nil
}
