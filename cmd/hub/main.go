package main

import (
	"context"
	"fmt"

	"signage-hub/config"
	configPostgre "signage-hub/config/postgre"
	configRedis "signage-hub/config/redis"
	"signage-hub/internal/httpserver"
	hubHTTP "signage-hub/internal/hub/delivery/http"
	hubRedis "signage-hub/internal/hub/delivery/redis"
	hubUsecase "signage-hub/internal/hub/usecase"
	notificationHTTP "signage-hub/internal/notification/delivery/http"
	notificationPostgre "signage-hub/internal/notification/repository/postgre"
	notificationUsecase "signage-hub/internal/notification/usecase"
	"signage-hub/pkg/discord"
	"signage-hub/pkg/log"
	"signage-hub/pkg/scope"
)

// @title       Signage Hub
// @description Real-time messaging and presence fan-out service for the digital-signage platform.
// @version     1.0
// @host        localhost:8081
// @schemes     ws http
// @BasePath    /
//
// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name signage_auth_token
//
// @securityDefinitions.apikey InternalKey
// @in header
// @name X-Internal-Key
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	logger := log.Init(log.Config{
		Level:    cfg.Logger.Level,
		Mode:     cfg.Logger.Mode,
		Encoding: cfg.Logger.Encoding,
	})

	ctx := context.Background()

	// PostgreSQL
	postgresDB, err := configPostgre.Connect(ctx, cfg.Postgres)
	if err != nil {
		logger.Error(ctx, "Failed to connect to PostgreSQL: ", err)
		return
	}
	defer configPostgre.Disconnect(ctx, postgresDB)
	logger.Infof(ctx, "PostgreSQL connected to %s:%d/%s", cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.DBName)

	// Redis
	redisClient, err := configRedis.Connect(ctx, cfg.Redis)
	if err != nil {
		logger.Error(ctx, "Failed to connect to Redis: ", err)
		return
	}
	defer configRedis.Disconnect()
	logger.Infof(ctx, "Redis connected to %s:%d", cfg.Redis.Host, cfg.Redis.Port)

	// Discord error reporting, optional
	var discordClient discord.IDiscord
	if cfg.Discord.WebhookID != "" && cfg.Discord.WebhookToken != "" {
		discordClient, err = discord.New(logger, cfg.Discord.WebhookID, cfg.Discord.WebhookToken)
		if err != nil {
			logger.Warnf(ctx, "Discord reporting disabled: %v", err)
		}
	}

	jwtManager := scope.New(cfg.JWT.SecretKey)

	// Notification store
	notificationRepo := notificationPostgre.New(logger, postgresDB)
	notificationUC := notificationUsecase.New(logger, notificationRepo)

	// Event router
	hubUC := hubUsecase.New(logger, cfg.WebSocket, notificationUC)
	subscriber := hubRedis.New(redisClient, hubUC, logger)

	// Delivery
	hubHandler := hubHTTP.New(logger, hubUC, jwtManager, cfg.WebSocket, cfg.Cookie, cfg.Server.CORSAllowedOrigins)
	notificationHandler := notificationHTTP.New(logger, notificationUC, hubUC)

	httpServer, err := httpserver.New(logger, httpserver.Config{
		Host:        cfg.Server.Host,
		Port:        cfg.Server.Port,
		Mode:        cfg.Server.Mode,
		Environment: cfg.Environment.Name,
		CORSOrigins: cfg.Server.CORSAllowedOrigins,

		HubUC:      hubUC,
		Subscriber: subscriber,

		HubHandler:          hubHandler,
		NotificationHandler: notificationHandler,

		JWTManager:  jwtManager,
		Cookie:      cfg.Cookie,
		InternalKey: cfg.Internal.InternalKey,

		Redis:   redisClient,
		Discord: discordClient,

		DBHealth: func() error {
			return configPostgre.HealthCheck(context.Background())
		},
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	if err := httpServer.Run(); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}
}
