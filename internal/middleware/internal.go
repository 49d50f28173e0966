package middleware

import (
	"crypto/subtle"
	"net/http"

	"signage-hub/pkg/errors"
	"signage-hub/pkg/response"

	"github.com/gin-gonic/gin"
)

const internalKeyHeader = "X-Internal-Key"

// InternalAuth returns a middleware guarding server-to-server endpoints.
// Callers must present the shared internal key. When no key is configured
// the internal surface is disabled entirely.
func (m Middleware) InternalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.internalKey == "" {
			response.HttpError(c, errors.NewHTTPError(http.StatusNotFound, "Not found"))
			c.Abort()
			return
		}

		key := c.GetHeader(internalKeyHeader)
		if subtle.ConstantTimeCompare([]byte(key), []byte(m.internalKey)) != 1 {
			m.l.Warnf(c.Request.Context(), "Invalid internal key | Path: %s", c.Request.URL.Path)
			response.Unauthorized(c)
			c.Abort()
			return
		}

		c.Next()
	}
}
