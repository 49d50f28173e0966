package http

import (
	"context"

	"signage-hub/internal/notification"
	"signage-hub/pkg/log"
)

// eventEmitter pushes a live event to a user's channel. Satisfied by the
// hub usecase.
type eventEmitter interface {
	EmitToUser(ctx context.Context, userID, event string, data any) error
}

type Handler struct {
	l       log.Logger
	uc      notification.UseCase
	emitter eventEmitter
}

func New(l log.Logger, uc notification.UseCase, emitter eventEmitter) *Handler {
	return &Handler{
		l:       l,
		uc:      uc,
		emitter: emitter,
	}
}
