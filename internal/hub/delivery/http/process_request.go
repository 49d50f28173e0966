package http

import (
	"signage-hub/internal/hub"
	"signage-hub/internal/model"
	"signage-hub/pkg/scope"

	"github.com/gin-gonic/gin"
)

// processUpgradeRequest authenticates the upgrade request before the
// protocol switch. Browsers cannot attach an Authorization header to a
// WebSocket handshake, so the token comes from the "token" query
// parameter, falling back to the auth cookie.
func (h *Handler) processUpgradeRequest(c *gin.Context) (model.Scope, error) {
	var req upgradeReq
	if err := c.ShouldBindQuery(&req); err != nil {
		return model.Scope{}, hub.ErrMissingToken
	}

	if req.Token == "" {
		if cookie, err := c.Cookie(h.cookieCfg.Name); err == nil {
			req.Token = cookie
		}
	}

	if err := req.validate(); err != nil {
		return model.Scope{}, err
	}

	payload, err := h.jwtMgr.Verify(req.Token)
	if err != nil {
		h.l.Warnf(c.Request.Context(), "Token verification failed: %v", err)
		return model.Scope{}, hub.ErrInvalidToken
	}

	return scope.NewScope(payload), nil
}
