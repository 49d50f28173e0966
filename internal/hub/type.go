package hub

import "signage-hub/internal/model"

// ConnectionInput carries an upgraded transport into the hub.
// Conn is the underlying *websocket.Conn, kept opaque at the contract
// boundary so delivery packages do not leak the transport type.
type ConnectionInput struct {
	Conn  any
	Scope model.Scope
}

// HubStats is a point-in-time snapshot of hub activity.
type HubStats struct {
	ActiveConnections int   `json:"active_connections"`
	ActiveChannels    int   `json:"active_channels"`
	MessagesSent      int64 `json:"messages_sent"`
	MessagesDropped   int64 `json:"messages_dropped"`
	StoreFailures     int64 `json:"store_failures"`
}

// ControlInput is a control-plane event received from a backend service,
// addressed to a channel by its canonical name.
type ControlInput struct {
	Channel string
	Payload []byte
}
