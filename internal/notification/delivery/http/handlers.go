package http

import (
	"net/http"

	"signage-hub/internal/hub"
	"signage-hub/pkg/errors"
	"signage-hub/pkg/response"
	"signage-hub/pkg/scope"

	"github.com/gin-gonic/gin"
)

// List returns the caller's notifications, newest first, with the unread count.
// @Summary List notifications
// @Description List the authenticated user's notifications with the derived unread count.
// @Tags Notification
// @Param limit query int false "Page size (default 20, max 100)"
// @Param type query []string false "Filter by notification type"
// @Success 200 {object} response.Resp{data=listResp}
// @Failure 401 {object} response.Resp "Unauthorized"
// @Security CookieAuth
// @Router /api/v1/notifications [GET]
func (h *Handler) List(c *gin.Context) {
	ctx := c.Request.Context()
	sc := scope.GetScopeFromContext(ctx)

	var req listReq
	if err := c.ShouldBindQuery(&req); err != nil {
		response.HttpError(c, errors.NewHTTPError(http.StatusBadRequest, "Invalid query parameters"))
		return
	}

	out, err := h.uc.List(ctx, sc, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "internal.notification.delivery.http.List: %v", err)
		response.ErrorWithMap(c, err, errorMapping)
		return
	}

	response.OK(c, newListResp(out))
}

// UnreadCount returns the caller's unread notification count.
// @Summary Get unread count
// @Description Return the number of unread notifications for the authenticated user.
// @Tags Notification
// @Success 200 {object} response.Resp{data=unreadCountResp}
// @Failure 401 {object} response.Resp "Unauthorized"
// @Security CookieAuth
// @Router /api/v1/notifications/unread-count [GET]
func (h *Handler) UnreadCount(c *gin.Context) {
	ctx := c.Request.Context()
	sc := scope.GetScopeFromContext(ctx)

	count, err := h.uc.UnreadCount(ctx, sc)
	if err != nil {
		h.l.Errorf(ctx, "internal.notification.delivery.http.UnreadCount: %v", err)
		response.ErrorWithMap(c, err, errorMapping)
		return
	}

	response.OK(c, unreadCountResp{UnreadCount: count})
}

// MarkRead marks a single notification as read.
// @Summary Mark notification read
// @Description Mark one of the authenticated user's notifications as read. Idempotent.
// @Tags Notification
// @Param id path string true "Notification ID"
// @Success 200 {object} response.Resp
// @Failure 401 {object} response.Resp "Unauthorized"
// @Failure 404 {object} response.Resp "Not found"
// @Security CookieAuth
// @Router /api/v1/notifications/{id}/read [PATCH]
func (h *Handler) MarkRead(c *gin.Context) {
	ctx := c.Request.Context()
	sc := scope.GetScopeFromContext(ctx)

	if err := h.uc.MarkRead(ctx, sc, c.Param("id")); err != nil {
		h.l.Errorf(ctx, "internal.notification.delivery.http.MarkRead: %v", err)
		response.ErrorWithMap(c, err, errorMapping)
		return
	}

	response.OK(c, nil)
}

// MarkAllRead marks all of the caller's notifications as read.
// @Summary Mark all notifications read
// @Tags Notification
// @Success 200 {object} response.Resp
// @Failure 401 {object} response.Resp "Unauthorized"
// @Security CookieAuth
// @Router /api/v1/notifications/read-all [PATCH]
func (h *Handler) MarkAllRead(c *gin.Context) {
	ctx := c.Request.Context()
	sc := scope.GetScopeFromContext(ctx)

	if err := h.uc.MarkAllRead(ctx, sc); err != nil {
		h.l.Errorf(ctx, "internal.notification.delivery.http.MarkAllRead: %v", err)
		response.ErrorWithMap(c, err, errorMapping)
		return
	}

	response.OK(c, nil)
}

// Clear marks a conversation thread's notifications as read in bulk, used when
// the user opens a chat window with a specific sender.
// @Summary Clear a notification thread
// @Description Mark all notifications of a type (optionally from one sender) as read.
// @Tags Notification
// @Param body body clearReq true "Clear request"
// @Success 200 {object} response.Resp
// @Failure 400 {object} response.Resp "Bad request"
// @Failure 401 {object} response.Resp "Unauthorized"
// @Security CookieAuth
// @Router /api/v1/notifications/clear-chat [PATCH]
func (h *Handler) Clear(c *gin.Context) {
	ctx := c.Request.Context()
	sc := scope.GetScopeFromContext(ctx)

	var req clearReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.HttpError(c, errors.NewHTTPError(http.StatusBadRequest, "Invalid request body"))
		return
	}

	if err := h.uc.MarkByTypeAndSender(ctx, sc, req.toInput()); err != nil {
		h.l.Errorf(ctx, "internal.notification.delivery.http.Clear: %v", err)
		response.ErrorWithMap(c, err, errorMapping)
		return
	}

	response.OK(c, nil)
}

// CreateInternal creates a notification record on behalf of a trusted backend
// service. Guarded by the internal key middleware, never exposed to clients.
// @Summary Create notification (internal)
// @Description Create a notification record for a user. Server-to-server only.
// @Tags Internal
// @Param body body createReq true "Notification"
// @Success 200 {object} response.Resp{data=notificationItem}
// @Failure 400 {object} response.Resp "Bad request"
// @Failure 401 {object} response.Resp "Unauthorized"
// @Security InternalKey
// @Router /internal/api/v1/notifications [POST]
func (h *Handler) CreateInternal(c *gin.Context) {
	ctx := c.Request.Context()

	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.HttpError(c, errors.NewHTTPError(http.StatusBadRequest, "Invalid request body"))
		return
	}

	created, err := h.uc.Create(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "internal.notification.delivery.http.CreateInternal: %v", err)
		response.ErrorWithMap(c, err, errorMapping)
		return
	}

	// The record is durable; a failed push only delays the badge until the
	// recipient's next bootstrap.
	if err := h.emitter.EmitToUser(ctx, created.RecipientID, hub.EventNewNotification, created); err != nil {
		h.l.Warnf(ctx, "internal.notification.delivery.http.CreateInternal.emit: %v", err)
	}

	response.OK(c, newNotificationItem(created))
}
