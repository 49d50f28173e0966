package redis

import (
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Config is the connection configuration for Redis.
type Config struct {
	Host     string
	Port     int
	Password string
	DB       int

	// Connection pool settings
	MaxRetries      int
	MinIdleConns    int
	PoolSize        int
	PoolTimeout     time.Duration
	ConnMaxIdleTime time.Duration
	ConnMaxLifetime time.Duration
}

type redisImpl struct {
	client *goredis.Client
}
