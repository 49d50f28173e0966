package http

import (
	"net/http"

	"signage-hub/internal/notification"
	"signage-hub/pkg/errors"
	"signage-hub/pkg/response"
)

var errorMapping = response.ErrorMapping{
	notification.ErrNotFound:         errors.NewHTTPError(http.StatusNotFound, "Notification not found"),
	notification.ErrInvalidType:      errors.NewHTTPError(http.StatusBadRequest, "Invalid notification type"),
	notification.ErrInvalidRecipient: errors.NewHTTPError(http.StatusBadRequest, "Recipient is required"),
}
