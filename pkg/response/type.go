package response

import "signage-hub/pkg/errors"

// Resp is the standard JSON response envelope.
type Resp struct {
	ErrorCode int    `json:"error_code"`
	Message   string `json:"message"`
	Data      any    `json:"data,omitempty"`
	Errors    any    `json:"errors,omitempty"`
}

// ErrorMapping maps domain sentinel errors to HTTP errors.
type ErrorMapping map[error]*errors.HTTPError
