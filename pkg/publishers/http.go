package publishers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/samvad-hq/responder-client/pkg/httpclient"
)

// webhookSink posts change events to an HTTP endpoint. Event attributes
// are mirrored as X-Responder-* headers.
type webhookSink struct {
	id      string
	method  string
	url     string
	headers map[string]string
	client  *resty.Client
	log     Logger
}

func newWebhookSink(_ context.Context, cfg SinkConfig, log Logger) (Publisher, error) {
	if cfg.HTTP == nil {
		return nil, fmt.Errorf("publisher %q missing http configuration", cfg.ID)
	}
	return &webhookSink{
		id:      cfg.ID,
		method:  cfg.HTTP.Method,
		url:     cfg.HTTP.URL,
		headers: cfg.HTTP.Headers,
		client:  httpclient.NewRestyHTTPClient(time.Duration(cfg.HTTP.TimeoutSeconds) * time.Second),
		log:     orDiscard(log),
	}, nil
}

func (w *webhookSink) ID() string   { return w.id }
func (w *webhookSink) Type() string { return TypeHTTP }

func (w *webhookSink) Publish(ctx context.Context, evt Event) error {
	body, err := evt.encode()
	if err != nil {
		return err
	}

	req := w.client.R().SetContext(ctx).SetBody(body)
	req.SetHeaders(w.headers)
	for k, v := range evt.attributes() {
		req.SetHeader(attributeHeader(k), v)
	}
	req.SetHeader("Content-Type", "application/json")

	resp, err := req.Execute(w.method, w.url)
	if err != nil {
		return fmt.Errorf("webhook request: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("webhook status %d: %s", resp.StatusCode(), snippet(resp.Body()))
	}
	w.log.DebugObj("webhook delivered change", "publisher_http_delivery", map[string]any{
		"publisher_id": w.id,
		"status":       resp.StatusCode(),
	})
	return nil
}

// attributeHeader maps list_id to X-Responder-List-Id.
func attributeHeader(attr string) string {
	return http.CanonicalHeaderKey("X-Responder-" + strings.ReplaceAll(attr, "_", "-"))
}

func snippet(body []byte) string {
	if len(body) > 512 {
		body = body[:512]
	}
	return strings.TrimSpace(string(body))
}
