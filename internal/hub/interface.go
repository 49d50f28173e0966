package hub

import "context"

// Event names pushed to clients.
const (
	EventNewChat               = "new_chat"
	EventNewNotification       = "new_notification"
	EventFriendRequestReceived = "friend_request_received"
	EventFriendRequestAccepted = "friend_request_accepted"
	EventScreenCommand         = "screen_command"
	EventTriggerUpdate         = "trigger_update"
	EventContentUpdate         = "content_update"
	EventPlaybackUpdate        = "playback_update"
)

// UseCase is the event router contract. A single UseCase value is
// constructed at process start and passed to every module that emits;
// emitting before Run or after Shutdown returns ErrNotRunning.
//
// Emits are fire-and-forget: no acknowledgment, no retry, no error
// surfaced for offline recipients.
type UseCase interface {
	// Lifecycle
	Run()
	Shutdown(ctx context.Context) error

	// Connection management
	Register(ctx context.Context, input ConnectionInput) error

	// Stats
	GetStats(ctx context.Context) (HubStats, error)

	// Targeted emits, used by internal callers (Redis control plane,
	// internal HTTP endpoints)
	EmitToUser(ctx context.Context, userID, event string, data any) error
	EmitToCompany(ctx context.Context, companyID, event string, data any) error
	EmitToScreen(ctx context.Context, screenID, event string, data any) error

	// ProcessControl routes a raw control-plane event addressed by
	// canonical channel name. Malformed input is dropped, not an error.
	ProcessControl(ctx context.Context, input ControlInput) error
}
