package http

import (
	"signage-hub/config"
	"signage-hub/internal/hub"
	"signage-hub/pkg/log"
	"signage-hub/pkg/scope"
)

type Handler struct {
	l         log.Logger
	uc        hub.UseCase
	jwtMgr    scope.Manager
	wsCfg     config.WebSocketConfig
	cookieCfg config.CookieConfig
	origins   []string
}

func New(l log.Logger, uc hub.UseCase, jwtMgr scope.Manager, wsCfg config.WebSocketConfig, cookieCfg config.CookieConfig, origins []string) *Handler {
	return &Handler{
		l:         l,
		uc:        uc,
		jwtMgr:    jwtMgr,
		wsCfg:     wsCfg,
		cookieCfg: cookieCfg,
		origins:   origins,
	}
}
