package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"signage-hub/internal/hub"
	pkgErrors "signage-hub/pkg/errors"
	"signage-hub/pkg/response"
)

// HandleWebSocket upgrades the HTTP connection to a WebSocket session.
// @Summary Connect to the hub
// @Description Upgrade HTTP to WebSocket for real-time events. Requires a JWT in the 'token' query parameter or the auth cookie.
// @Tags Hub
// @Param token query string false "JWT token"
// @Success 101 {string} string "Switching Protocols"
// @Failure 401 {object} response.Resp "Unauthorized"
// @Router /ws [GET]
func (h *Handler) HandleWebSocket(c *gin.Context) {
	sc, err := h.processUpgradeRequest(c)
	if err != nil {
		response.ErrorWithMap(c, err, errorMapping)
		return
	}

	upgrader := websocket.Upgrader{
		ReadBufferSize:  h.wsCfg.ReadBufferSize,
		WriteBufferSize: h.wsCfg.WriteBufferSize,
		CheckOrigin:     h.checkOrigin,
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote the handshake failure response.
		h.l.Warnf(c.Request.Context(), "WebSocket upgrade failed: %v", err)
		return
	}

	if err := h.uc.Register(c.Request.Context(), hub.ConnectionInput{
		Conn:  conn,
		Scope: sc,
	}); err != nil {
		h.l.Errorf(c.Request.Context(), "internal.hub.delivery.http.HandleWebSocket.Register: %v", err)
		conn.Close()
	}
}

func (h *Handler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		// Non-browser clients (screens, CLI tools) send no Origin.
		return true
	}
	for _, allowed := range h.origins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}

// ScreenCommand pushes a command to every connection of a screen.
// @Summary Send a screen command (internal)
// @Description Emit a screen_command event to a screen's channel. Server-to-server only.
// @Tags Internal
// @Param id path string true "Screen ID"
// @Param body body screenCommandReq true "Command"
// @Success 200 {object} response.Resp
// @Failure 400 {object} response.Resp "Bad request"
// @Failure 401 {object} response.Resp "Unauthorized"
// @Security InternalKey
// @Router /internal/api/v1/screens/{id}/command [POST]
func (h *Handler) ScreenCommand(c *gin.Context) {
	ctx := c.Request.Context()

	screenID := c.Param("id")
	if screenID == "" {
		response.HttpError(c, pkgErrors.NewHTTPError(http.StatusBadRequest, "Screen ID is required"))
		return
	}

	var req screenCommandReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.HttpError(c, pkgErrors.NewHTTPError(http.StatusBadRequest, "Invalid request body"))
		return
	}

	err := h.uc.EmitToScreen(ctx, screenID, hub.EventScreenCommand, gin.H{"command": req.Command})
	if err != nil {
		h.l.Errorf(ctx, "internal.hub.delivery.http.ScreenCommand: %v", err)
		response.ErrorWithMap(c, err, errorMapping)
		return
	}

	response.OK(c, nil)
}

// EmitToUser pushes an arbitrary event to a user's channel.
// @Summary Emit an event to a user (internal)
// @Description Emit an event to a user's channel. Server-to-server only.
// @Tags Internal
// @Param id path string true "User ID"
// @Param body body emitReq true "Event"
// @Success 200 {object} response.Resp
// @Failure 400 {object} response.Resp "Bad request"
// @Failure 401 {object} response.Resp "Unauthorized"
// @Security InternalKey
// @Router /internal/api/v1/users/{id}/events [POST]
func (h *Handler) EmitToUser(c *gin.Context) {
	ctx := c.Request.Context()

	userID := c.Param("id")
	var req emitReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.HttpError(c, pkgErrors.NewHTTPError(http.StatusBadRequest, "Invalid request body"))
		return
	}

	if err := h.uc.EmitToUser(ctx, userID, req.Event, req.Data); err != nil {
		h.l.Errorf(ctx, "internal.hub.delivery.http.EmitToUser: %v", err)
		response.ErrorWithMap(c, err, errorMapping)
		return
	}

	response.OK(c, nil)
}

// EmitToCompany pushes an arbitrary event to a company's channel.
// @Summary Emit an event to a company (internal)
// @Description Emit an event to a company's channel. Server-to-server only.
// @Tags Internal
// @Param id path string true "Company ID"
// @Param body body emitReq true "Event"
// @Success 200 {object} response.Resp
// @Failure 400 {object} response.Resp "Bad request"
// @Failure 401 {object} response.Resp "Unauthorized"
// @Security InternalKey
// @Router /internal/api/v1/companies/{id}/events [POST]
func (h *Handler) EmitToCompany(c *gin.Context) {
	ctx := c.Request.Context()

	companyID := c.Param("id")
	var req emitReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.HttpError(c, pkgErrors.NewHTTPError(http.StatusBadRequest, "Invalid request body"))
		return
	}

	if err := h.uc.EmitToCompany(ctx, companyID, req.Event, req.Data); err != nil {
		h.l.Errorf(ctx, "internal.hub.delivery.http.EmitToCompany: %v", err)
		response.ErrorWithMap(c, err, errorMapping)
		return
	}

	response.OK(c, nil)
}
