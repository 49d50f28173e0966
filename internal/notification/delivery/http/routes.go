package http

import (
	"signage-hub/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the user-facing notification routes.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup, mw middleware.Middleware) {
	n := r.Group("/notifications", mw.Auth())
	{
		n.GET("", h.List)
		n.GET("/unread-count", h.UnreadCount)
		n.PATCH("/:id/read", h.MarkRead)
		n.PATCH("/read-all", h.MarkAllRead)
		n.PATCH("/clear-chat", h.Clear)
	}
}

// RegisterInternalRoutes registers the server-to-server notification routes.
func (h *Handler) RegisterInternalRoutes(r *gin.RouterGroup, mw middleware.Middleware) {
	n := r.Group("/notifications", mw.InternalAuth())
	{
		n.POST("", h.CreateInternal)
	}
}
