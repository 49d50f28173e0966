package http

import "signage-hub/internal/hub"

type upgradeReq struct {
	Token string `form:"token"`
}

func (r upgradeReq) validate() error {
	if r.Token == "" {
		return hub.ErrMissingToken
	}
	return nil
}

type screenCommandReq struct {
	Command string `json:"command" binding:"required"`
}

type emitReq struct {
	Event string         `json:"event" binding:"required"`
	Data  map[string]any `json:"data"`
}
