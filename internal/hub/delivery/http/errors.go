package http

import (
	"net/http"

	"signage-hub/internal/hub"
	"signage-hub/pkg/errors"
	"signage-hub/pkg/response"
)

var errorMapping = response.ErrorMapping{
	hub.ErrInvalidToken:          errors.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token"),
	hub.ErrMissingToken:          errors.NewHTTPError(http.StatusUnauthorized, "Missing authentication token"),
	hub.ErrMaxConnectionsReached: errors.NewHTTPError(http.StatusServiceUnavailable, "Maximum connections reached"),
	hub.ErrNotRunning:            errors.NewHTTPError(http.StatusServiceUnavailable, "Hub is not running"),
	hub.ErrInvalidChannel:        errors.NewHTTPError(http.StatusBadRequest, "Invalid channel"),
}
