package notify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// WebhookNotifier pushes notifications to an ntfy-compatible endpoint:
// POST {url}/{topic} with the message as body and title/tags as headers.
type WebhookNotifier struct {
	URL    string
	Topic  string
	Client *http.Client
}

// NewWebhookNotifier creates a WebhookNotifier with a default HTTP client.
func NewWebhookNotifier(url, topic string) *WebhookNotifier {
	return &WebhookNotifier{
		URL:    strings.TrimSuffix(url, "/"),
		Topic:  topic,
		Client: &http.Client{Timeout: 10 * time.Second},
	}
}

// Notify implements Notifier.
func (w *WebhookNotifier) Notify(ctx context.Context, n Notification) error {
	target := w.URL
	if w.Topic != "" {
		target += "/" + w.Topic
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, strings.NewReader(n.Message))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	req.Header.Set("Title", n.Title)
	tags := append([]string{n.Channel}, n.Tags...)
	req.Header.Set("Tags", strings.Join(tags, ","))

	client := w.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return fmt.Errorf("webhook returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}
