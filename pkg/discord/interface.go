package discord

import (
	"context"
	"errors"

	"signage-hub/pkg/log"
)

var errWebhookRequired = errors.New("discord: webhook id and token are required")

// IDiscord posts operational messages to a Discord webhook.
type IDiscord interface {
	SendMessage(ctx context.Context, content string) error
	SendEmbed(ctx context.Context, options MessageOptions) error
	SendError(ctx context.Context, title, description string, err error) error
	ReportBug(ctx context.Context, message string) error
	Close() error
}

// New creates a Discord webhook client from an id/token pair.
func New(l log.Logger, id, token string) (IDiscord, error) {
	if id == "" || token == "" {
		return nil, errWebhookRequired
	}
	cfg := DefaultConfig()
	return &discordImpl{
		l:       l,
		webhook: &webhookInfo{id: id, token: token},
		config:  cfg,
		client:  newHTTPClient(cfg.Timeout),
	}, nil
}
