// Package notify posts short push notifications to an ntfy topic.
//
// It degrades to a no-op when no topic is configured, so scripts can always
// call Publish without checking configuration first. Email remains the
// primary alert channel; ntfy is a lightweight companion for phones.
package notify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const userAgent = "jobkit/0.1.0"

// ConfigKey is the config document key holding the ntfy topic URL.
const ConfigKey = "ntfy_topic"

// Notifier publishes a titled message to a push channel.
type Notifier interface {
	Publish(ctx context.Context, title, message string) error
}

// New builds a Notifier for the given topic URL. An empty topic yields a
// no-op implementation.
func New(topic string, timeout time.Duration) Notifier {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return noopNotifier{}
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &ntfyNotifier{
		endpoint: topic,
		client:   &http.Client{Timeout: timeout},
	}
}

type noopNotifier struct{}

func (noopNotifier) Publish(context.Context, string, string) error { return nil }

type ntfyNotifier struct {
	endpoint string
	client   *http.Client
}

func (n *ntfyNotifier) Publish(ctx context.Context, title, message string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if title != "" {
		req.Header.Set("Title", title)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("post notification: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("ntfy returned status %d", resp.StatusCode)
	}
	return nil
}
