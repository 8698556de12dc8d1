package publisher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// WordPressPublisher upserts rendered report content into a WordPress page
// via the REST API, authenticated with an application password.
type WordPressPublisher struct {
	Endpoint  string // site base URL
	ClientRef string // API user
	Secret    string // application password
	NodeID    string // target page id
	Client    *http.Client
}

// NewWordPressPublisher creates a publisher with optional proxy support.
func NewWordPressPublisher(endpoint, clientRef, secret, nodeID, proxyURL string) *WordPressPublisher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &WordPressPublisher{
		Endpoint:  endpoint,
		ClientRef: clientRef,
		Secret:    secret,
		NodeID:    nodeID,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

// Configured reports whether every credential needed for publishing is set.
func (p *WordPressPublisher) Configured() bool {
	return p.Endpoint != "" && p.ClientRef != "" && p.Secret != "" && p.NodeID != ""
}

// MissingKeys names the unset credentials, for skip-publish log lines that
// must not leak the values themselves.
func (p *WordPressPublisher) MissingKeys() []string {
	var missing []string
	for _, kv := range []struct{ key, val string }{
		{"endpoint", p.Endpoint},
		{"client_ref", p.ClientRef},
		{"secret", p.Secret},
		{"node_id", p.NodeID},
	} {
		if kv.val == "" {
			missing = append(missing, kv.key)
		}
	}
	return missing
}

// Publish posts the report body to the target page. Non-2xx responses are
// returned as errors with a truncated body for diagnosis.
func (p *WordPressPublisher) Publish(ctx context.Context, content string) error {
	target := fmt.Sprintf("%s/wp-json/wp/v2/pages/%s",
		strings.TrimRight(p.Endpoint, "/"), url.PathEscape(p.NodeID))

	payload, err := json.Marshal(map[string]string{"content": content})
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.SetBasicAuth(p.ClientRef, p.Secret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.Client.Do(req)
	if err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 200))
		return fmt.Errorf("publish: status %d, body: %s", resp.StatusCode, string(body))
	}
	return nil
}

// PublishWithRetry publishes with exponential backoff retry.
func (p *WordPressPublisher) PublishWithRetry(ctx context.Context, content string, maxRetries int) error {
	var lastErr error
	for i := 0; i <= maxRetries; i++ {
		if err := p.Publish(ctx, content); err != nil {
			lastErr = err
			backoff := time.Duration(1<<uint(i)) * time.Second
			log.Warn().Err(err).Int("attempt", i+1).Dur("backoff", backoff).
				Msg("publish failed, retrying")
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
				continue
			}
		}
		return nil
	}
	return fmt.Errorf("all %d retries exhausted: %w", maxRetries+1, lastErr)
}
