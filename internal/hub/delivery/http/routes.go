package http

import (
	"signage-hub/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the WebSocket endpoint.
// Auth happens inside the upgrade handler rather than in middleware: the
// browser WebSocket API cannot set an Authorization header.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup, mw middleware.Middleware) {
	ws := r.Group("/ws")
	{
		ws.GET("", h.HandleWebSocket)
	}
}

// RegisterInternalRoutes registers the server-to-server emit endpoints.
func (h *Handler) RegisterInternalRoutes(r *gin.RouterGroup, mw middleware.Middleware) {
	internal := r.Group("", mw.InternalAuth())
	{
		internal.POST("/screens/:id/command", h.ScreenCommand)
		internal.POST("/users/:id/events", h.EmitToUser)
		internal.POST("/companies/:id/events", h.EmitToCompany)
	}
}
