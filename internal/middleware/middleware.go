package middleware

import (
	"strings"

	"signage-hub/pkg/response"
	"signage-hub/pkg/scope"

	"github.com/gin-gonic/gin"
)

// Auth returns a middleware that validates JWT tokens and sets the caller
// scope in the request context. The token is read from the Authorization
// header, falling back to the auth cookie for browser clients.
func (m Middleware) Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := m.extractToken(c)
		if token == "" {
			m.l.Warnf(c.Request.Context(), "Missing authentication token | Path: %s", c.Request.URL.Path)
			response.Unauthorized(c)
			c.Abort()
			return
		}

		payload, err := m.jwtManager.Verify(token)
		if err != nil {
			m.l.Warnf(c.Request.Context(), "Token verification failed: %v | Path: %s", err, c.Request.URL.Path)
			response.Unauthorized(c)
			c.Abort()
			return
		}

		ctx := c.Request.Context()
		ctx = scope.SetPayloadToContext(ctx, payload)
		ctx = scope.SetScopeToContext(ctx, scope.NewScope(payload))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func (m Middleware) extractToken(c *gin.Context) string {
	const bearerPrefix = "Bearer "
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		if strings.HasPrefix(authHeader, bearerPrefix) {
			return strings.TrimSpace(authHeader[len(bearerPrefix):])
		}
		return ""
	}
	if cookie, err := c.Cookie(m.cookieCfg.Name); err == nil {
		return cookie
	}
	return ""
}
