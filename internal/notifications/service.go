// Package notifications pushes scan lifecycle events to an ntfy topic.
package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"matchscan/internal/config"
)

const userAgent = "matchscan/0.1.0"

// Service defines the notification surface exposed to the scan pipeline.
type Service interface {
	NotifyScanStarted(ctx context.Context, videoTitle string) error
	NotifyScanCompleted(ctx context.Context, videoTitle string, matches, oracleCalls int, duration time.Duration) error
	NotifyError(ctx context.Context, err error, contextLabel string) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &ntfyService{
		endpoint:      topic,
		client:        &http.Client{Timeout: timeout},
		scanCompleted: cfg.Notifications.ScanCompleted,
		errors:        cfg.Notifications.Errors,
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint      string
	client        *http.Client
	scanCompleted bool
	errors        bool
}

func (n *ntfyService) NotifyScanStarted(ctx context.Context, videoTitle string) error {
	videoTitle = strings.TrimSpace(videoTitle)
	data := payload{
		title:   "Matchscan - Scan Started",
		message: fmt.Sprintf("Scanning: %s", videoTitle),
		tags:    []string{"matchscan", "scan", "started"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyScanCompleted(ctx context.Context, videoTitle string, matches, oracleCalls int, duration time.Duration) error {
	if !n.scanCompleted {
		return nil
	}
	videoTitle = strings.TrimSpace(videoTitle)
	duration = duration.Round(time.Second)
	if duration < 0 {
		duration = 0
	}
	data := payload{
		title: "Matchscan - Scan Complete",
		message: fmt.Sprintf("Found %d match starts in %s (%d oracle calls, %s)",
			matches, videoTitle, oracleCalls, duration),
		tags: []string{"matchscan", "scan", "completed"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyError(ctx context.Context, err error, contextLabel string) error {
	if !n.errors {
		return nil
	}
	var builder strings.Builder
	builder.WriteString("Error")
	if contextLabel = strings.TrimSpace(contextLabel); contextLabel != "" {
		builder.WriteString(" with ")
		builder.WriteString(contextLabel)
	}
	builder.WriteString(": ")
	if err != nil {
		builder.WriteString(strings.TrimSpace(err.Error()))
	} else {
		builder.WriteString("unknown")
	}

	data := payload{
		title:    "Matchscan - Error",
		message:  builder.String(),
		tags:     []string{"matchscan", "error", "alert"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	data := payload{
		title:    "Matchscan - Test",
		message:  "Notification system test",
		tags:     []string{"matchscan", "test"},
		priority: "low",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) NotifyScanStarted(context.Context, string) error { return nil }
func (noopService) NotifyScanCompleted(context.Context, string, int, int, time.Duration) error {
	return nil
}
func (noopService) NotifyError(context.Context, error, string) error { return nil }
func (noopService) TestNotification(context.Context) error           { return nil }
