package httpserver

import (
	"errors"

	"signage-hub/config"
	"signage-hub/internal/hub"
	hubHTTP "signage-hub/internal/hub/delivery/http"
	hubRedis "signage-hub/internal/hub/delivery/redis"
	notificationHTTP "signage-hub/internal/notification/delivery/http"
	"signage-hub/pkg/discord"
	"signage-hub/pkg/log"
	pkgRedis "signage-hub/pkg/redis"
	"signage-hub/pkg/scope"

	"github.com/gin-gonic/gin"
)

// HTTPServer wires the HTTP surface and owns the service lifecycle.
// New only validates and wires dependencies; Run starts the hub, the
// Redis subscriber and the HTTP listener, and handles shutdown.
type HTTPServer struct {
	gin    *gin.Engine
	logger log.Logger

	host        string
	port        int
	mode        string
	environment string
	corsOrigins []string

	hubUC      hub.UseCase
	subscriber hubRedis.Subscriber

	hubHandler          *hubHTTP.Handler
	notificationHandler *notificationHTTP.Handler

	jwtMgr      scope.Manager
	cookieCfg   config.CookieConfig
	internalKey string

	redis   pkgRedis.IRedis
	discord discord.IDiscord

	dbHealth func() error
}

// Config is the constructor input for HTTPServer.
type Config struct {
	Host        string
	Port        int
	Mode        string
	Environment string
	CORSOrigins []string

	HubUC      hub.UseCase
	Subscriber hubRedis.Subscriber

	HubHandler          *hubHTTP.Handler
	NotificationHandler *notificationHTTP.Handler

	JWTManager  scope.Manager
	Cookie      config.CookieConfig
	InternalKey string

	Redis   pkgRedis.IRedis
	Discord discord.IDiscord

	// DBHealth reports Postgres connectivity for the readiness probe.
	DBHealth func() error
}

// New creates a new HTTPServer. No goroutines are started here.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		gin:    gin.New(),
		logger: logger,

		host:        cfg.Host,
		port:        cfg.Port,
		mode:        cfg.Mode,
		environment: cfg.Environment,
		corsOrigins: cfg.CORSOrigins,

		hubUC:      cfg.HubUC,
		subscriber: cfg.Subscriber,

		hubHandler:          cfg.HubHandler,
		notificationHandler: cfg.NotificationHandler,

		jwtMgr:      cfg.JWTManager,
		cookieCfg:   cfg.Cookie,
		internalKey: cfg.InternalKey,

		redis:   cfg.Redis,
		discord: cfg.Discord,

		dbHealth: cfg.DBHealth,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	return srv, nil
}

func (srv *HTTPServer) validate() error {
	if srv.logger == nil {
		return errors.New("logger is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.hubUC == nil {
		return errors.New("hub usecase is required")
	}
	if srv.subscriber == nil {
		return errors.New("subscriber is required")
	}
	if srv.hubHandler == nil || srv.notificationHandler == nil {
		return errors.New("handlers are required")
	}
	if srv.jwtMgr == nil {
		return errors.New("JWT manager is required")
	}
	if srv.redis == nil {
		return errors.New("redis client is required")
	}
	return nil
}
