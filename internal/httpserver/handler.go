package httpserver

import (
	"signage-hub/internal/middleware"

	// Registers the generated Swagger spec.
	_ "signage-hub/docs"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const (
	api         = "/api/v1"
	internalAPI = "/internal/api/v1"
)

func (srv *HTTPServer) mapHandlers() error {
	mw := middleware.New(srv.logger, srv.jwtMgr, srv.cookieCfg, srv.internalKey)

	srv.gin.Use(middleware.Recovery(srv.logger, srv.discord))
	srv.gin.Use(middleware.CORS(middleware.DefaultCORSConfig(srv.corsOrigins)))

	// Health probes, no auth
	srv.gin.GET("/health", srv.healthCheck)
	srv.gin.GET("/ready", srv.readyCheck)
	srv.gin.GET("/live", srv.liveCheck)

	// Swagger UI
	srv.gin.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// WebSocket endpoint, auth handled inside the upgrade handler
	srv.hubHandler.RegisterRoutes(srv.gin.Group(""), mw)

	// User-facing REST API
	apiGroup := srv.gin.Group(api)
	srv.notificationHandler.RegisterRoutes(apiGroup, mw)

	// Server-to-server API
	internalGroup := srv.gin.Group(internalAPI)
	srv.hubHandler.RegisterInternalRoutes(internalGroup, mw)
	srv.notificationHandler.RegisterInternalRoutes(internalGroup, mw)

	return nil
}
