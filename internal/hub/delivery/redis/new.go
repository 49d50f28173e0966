package redis

import (
	"context"
	"sync"

	"github.com/redis/go-redis/v9"

	"signage-hub/internal/hub"
	"signage-hub/pkg/log"
	pkgRedis "signage-hub/pkg/redis"
)

// Subscriber ingests control-plane events published by the backend
// services and routes them into the hub.
type Subscriber interface {
	Start() error
	Shutdown(ctx context.Context) error
}

type subscriber struct {
	redis  pkgRedis.IRedis
	uc     hub.UseCase
	logger log.Logger

	pubsub *redis.PubSub
	wg     sync.WaitGroup
	quit   chan struct{}
}

func New(redis pkgRedis.IRedis, uc hub.UseCase, logger log.Logger) Subscriber {
	return &subscriber{
		redis:  redis,
		uc:     uc,
		logger: logger,
		quit:   make(chan struct{}),
	}
}
