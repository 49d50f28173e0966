package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	// DefaultTimeout is the HTTP timeout for webhook delivery.
	DefaultTimeout = 10 * time.Second
	// DefaultRetryCount is how many delivery attempts are made.
	DefaultRetryCount = 3
	// DefaultRetryDelay is the pause between delivery attempts.
	DefaultRetryDelay = 500 * time.Millisecond
	// DefaultUsername is the webhook display name.
	DefaultUsername = "signage-hub"

	// maxContentLen is Discord's message content limit.
	maxContentLen = 2000
)

func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     30 * time.Second,
		},
	}
}

// DefaultConfig returns the default Discord config.
func DefaultConfig() Config {
	return Config{
		Timeout:         DefaultTimeout,
		RetryCount:      DefaultRetryCount,
		RetryDelay:      DefaultRetryDelay,
		DefaultUsername: DefaultUsername,
	}
}

func (d *discordImpl) webhookURL() string {
	return fmt.Sprintf("https://discord.com/api/webhooks/%s/%s", d.webhook.id, d.webhook.token)
}

func messageColor(t MessageType) int {
	switch t {
	case MessageTypeSuccess:
		return 0x2ECC71
	case MessageTypeWarning:
		return 0xFFA500
	case MessageTypeError:
		return 0xE74C3C
	default:
		return 0x3498DB
	}
}

func (d *discordImpl) send(ctx context.Context, payload webhookPayload) error {
	if payload.Username == "" {
		payload.Username = d.config.DefaultUsername
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("discord: marshal payload: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt < d.config.RetryCount; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(d.config.RetryDelay):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.webhookURL(), bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("discord: build request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := d.client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return nil
		}
		lastErr = fmt.Errorf("discord: webhook returned status %d", resp.StatusCode)

		// Client errors other than rate limiting are not retryable.
		if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
			return lastErr
		}
	}

	return lastErr
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}

func (d *discordImpl) SendMessage(ctx context.Context, content string) error {
	return d.send(ctx, webhookPayload{Content: truncate(content, maxContentLen)})
}

func (d *discordImpl) SendEmbed(ctx context.Context, options MessageOptions) error {
	e := embed{
		Title:       options.Title,
		Description: options.Description,
		Color:       messageColor(options.Type),
		Fields:      options.Fields,
		Footer:      options.Footer,
	}
	if !options.Timestamp.IsZero() {
		e.Timestamp = options.Timestamp.UTC().Format(time.RFC3339)
	}
	return d.send(ctx, webhookPayload{Embeds: []embed{e}})
}

func (d *discordImpl) SendError(ctx context.Context, title, description string, err error) error {
	fields := []EmbedField{}
	if err != nil {
		fields = append(fields, EmbedField{Name: "Error", Value: truncate(err.Error(), 1024)})
	}
	return d.SendEmbed(ctx, MessageOptions{
		Type:        MessageTypeError,
		Title:       title,
		Description: description,
		Fields:      fields,
		Timestamp:   time.Now(),
	})
}

func (d *discordImpl) ReportBug(ctx context.Context, message string) error {
	return d.SendMessage(ctx, message)
}

func (d *discordImpl) Close() error {
	d.client.CloseIdleConnections()
	return nil
}
