package middleware

import (
	"signage-hub/config"
	"signage-hub/pkg/log"
	"signage-hub/pkg/scope"
)

type Middleware struct {
	l           log.Logger
	jwtManager  scope.Manager
	cookieCfg   config.CookieConfig
	internalKey string
}

func New(l log.Logger, jwtManager scope.Manager, cookieCfg config.CookieConfig, internalKey string) Middleware {
	return Middleware{
		l:           l,
		jwtManager:  jwtManager,
		cookieCfg:   cookieCfg,
		internalKey: internalKey,
	}
}
