package httpserver

import (
	"net/http"

	"signage-hub/internal/hub"
	"signage-hub/pkg/errors"
	"signage-hub/pkg/response"

	"github.com/gin-gonic/gin"
)

const serviceName = "signage-hub"

// healthCheck reports overall service health including hub activity.
// @Summary Health Check
// @Description Check service health, including Redis, Postgres and hub stats.
// @Tags Health
// @Produce json
// @Success 200 {object} response.Resp "Service is healthy"
// @Failure 503 {object} response.Resp "A dependency is down"
// @Router /health [get]
func (srv *HTTPServer) healthCheck(c *gin.Context) {
	ctx := c.Request.Context()

	if err := srv.redis.Ping(ctx); err != nil {
		response.HttpError(c, errors.NewHTTPError(http.StatusServiceUnavailable, "Redis connection failed"))
		return
	}
	if srv.dbHealth != nil {
		if err := srv.dbHealth(); err != nil {
			response.HttpError(c, errors.NewHTTPError(http.StatusServiceUnavailable, "Postgres connection failed"))
			return
		}
	}

	stats, err := srv.hubUC.GetStats(ctx)
	if err != nil {
		stats = hub.HubStats{}
	}

	response.OK(c, gin.H{
		"status":             "healthy",
		"service":            serviceName,
		"active_connections": stats.ActiveConnections,
		"active_channels":    stats.ActiveChannels,
		"messages_sent":      stats.MessagesSent,
		"messages_dropped":   stats.MessagesDropped,
		"store_failures":     stats.StoreFailures,
	})
}

// readyCheck reports whether the service can take traffic.
// @Summary Readiness Check
// @Tags Health
// @Produce json
// @Success 200 {object} response.Resp "Service is ready"
// @Failure 503 {object} response.Resp "Service is not ready"
// @Router /ready [get]
func (srv *HTTPServer) readyCheck(c *gin.Context) {
	ctx := c.Request.Context()

	if err := srv.redis.Ping(ctx); err != nil {
		response.HttpError(c, errors.NewHTTPError(http.StatusServiceUnavailable, "Redis connection not available"))
		return
	}

	response.OK(c, gin.H{
		"status":  "ready",
		"service": serviceName,
	})
}

// liveCheck reports process liveness.
// @Summary Liveness Check
// @Tags Health
// @Produce json
// @Success 200 {object} response.Resp "Service is alive"
// @Router /live [get]
func (srv *HTTPServer) liveCheck(c *gin.Context) {
	response.OK(c, gin.H{
		"status":  "alive",
		"service": serviceName,
	})
}
