package publishers

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/NirGallner/asana-go/pkg/httpclient"
)

const maxErrorSnippet = 512

type httpPublisher struct {
	id      string
	method  string
	url     string
	headers map[string]string
	client  httpclient.Client
	log     Logger
}

func newHTTPPublisher(_ context.Context, cfg PublisherConfig, log Logger) (Publisher, error) {
	if cfg.HTTP == nil {
		return nil, fmt.Errorf("publisher %q missing http configuration", cfg.ID)
	}

	headers := map[string]string{"Content-Type": "application/json"}
	for k, v := range cfg.HTTP.Headers {
		headers[k] = v
	}

	return &httpPublisher{
		id:      cfg.ID,
		method:  cfg.HTTP.Method,
		url:     cfg.HTTP.URL,
		headers: headers,
		client:  httpclient.NewRestyClient(time.Duration(cfg.HTTP.TimeoutSeconds) * time.Second),
		log:     ensureLogger(log),
	}, nil
}

func (h *httpPublisher) ID() string   { return h.id }
func (h *httpPublisher) Type() string { return TypeHTTP }

// Publish sends the event as the JSON request body. Any non-2xx status fails.
func (h *httpPublisher) Publish(ctx context.Context, evt Event) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	resp, err := h.client.Do(ctx, h.method, h.url, h.headers, payload)
	if err != nil {
		return fmt.Errorf("http publish: %w", err)
	}
	if status := resp.StatusCode(); status < 200 || status > 299 {
		h.log.WarnObj("http publisher rejected event", "publisher_http_error", map[string]any{
			"publisher_id": h.id,
			"status":       status,
			"task_gid":     evt.Task.GID,
		})
		return fmt.Errorf("http response status %d: %s", status, snippet(resp.Body()))
	}

	h.log.DebugObj("http publisher delivered event", "publisher_http_delivery", map[string]any{
		"publisher_id": h.id,
		"task_gid":     evt.Task.GID,
	})
	return nil
}

func snippet(body []byte) string {
	if len(body) > maxErrorSnippet {
		body = body[:maxErrorSnippet]
	}
	return strings.TrimSpace(string(body))
}
