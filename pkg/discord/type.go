package discord

import (
	"net/http"
	"time"

	"signage-hub/pkg/log"
)

// Config controls webhook delivery behavior.
type Config struct {
	Timeout         time.Duration
	RetryCount      int
	RetryDelay      time.Duration
	DefaultUsername string
}

type webhookInfo struct {
	id    string
	token string
}

type discordImpl struct {
	l       log.Logger
	webhook *webhookInfo
	config  Config
	client  *http.Client
}

// MessageType selects the embed accent color.
type MessageType string

const (
	MessageTypeInfo    MessageType = "info"
	MessageTypeSuccess MessageType = "success"
	MessageTypeWarning MessageType = "warning"
	MessageTypeError   MessageType = "error"
)

// EmbedField is a single field in a Discord embed.
type EmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

// EmbedFooter is the footer of a Discord embed.
type EmbedFooter struct {
	Text string `json:"text"`
}

// MessageOptions describes an embed message.
type MessageOptions struct {
	Type        MessageType
	Title       string
	Description string
	Fields      []EmbedField
	Footer      *EmbedFooter
	Timestamp   time.Time
}

type embed struct {
	Title       string       `json:"title,omitempty"`
	Description string       `json:"description,omitempty"`
	Color       int          `json:"color,omitempty"`
	Fields      []EmbedField `json:"fields,omitempty"`
	Footer      *EmbedFooter `json:"footer,omitempty"`
	Timestamp   string       `json:"timestamp,omitempty"`
}

type webhookPayload struct {
	Username string  `json:"username,omitempty"`
	Content  string  `json:"content,omitempty"`
	Embeds   []embed `json:"embeds,omitempty"`
}
