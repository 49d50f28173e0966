package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v9"
)

// Config holds all service configuration.
type Config struct {
	Environment EnvironmentConfig

	Server ServerConfig
	Logger LoggerConfig

	Postgres PostgresConfig
	Redis    RedisConfig

	WebSocket WebSocketConfig

	JWT      JWTConfig
	Cookie   CookieConfig
	Internal InternalConfig

	Discord DiscordConfig
}

// EnvironmentConfig is the configuration for environment-aware features.
type EnvironmentConfig struct {
	Name string `env:"ENV" envDefault:"production"`
}

// ServerConfig is the configuration for the HTTP/WebSocket server.
type ServerConfig struct {
	Host string `env:"HUB_HOST" envDefault:"0.0.0.0"`
	Port int    `env:"HUB_PORT" envDefault:"8081"`
	Mode string `env:"HUB_MODE" envDefault:"release"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
}

// LoggerConfig is the configuration for the logger.
type LoggerConfig struct {
	Level        string `env:"LOGGER_LEVEL" envDefault:"info"`
	Mode         string `env:"LOGGER_MODE" envDefault:"production"`
	Encoding     string `env:"LOGGER_ENCODING" envDefault:"json"`
	ColorEnabled bool   `env:"LOGGER_COLOR_ENABLED" envDefault:"false"`
}

// PostgresConfig is the configuration for PostgreSQL.
type PostgresConfig struct {
	Host     string `env:"POSTGRES_HOST" envDefault:"localhost"`
	Port     int    `env:"POSTGRES_PORT" envDefault:"5432"`
	User     string `env:"POSTGRES_USER" envDefault:"postgres"`
	Password string `env:"POSTGRES_PASSWORD"`
	DBName   string `env:"POSTGRES_DB" envDefault:"signage"`
	SSLMode  string `env:"POSTGRES_SSLMODE" envDefault:"disable"`
}

// RedisConfig is the configuration for Redis.
// Note: only standalone mode is supported.
type RedisConfig struct {
	Host     string `env:"REDIS_HOST" envDefault:"localhost"`
	Port     int    `env:"REDIS_PORT" envDefault:"6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`

	MaxRetries      int           `env:"REDIS_MAX_RETRIES" envDefault:"3"`
	MinIdleConns    int           `env:"REDIS_MIN_IDLE_CONNS" envDefault:"10"`
	PoolSize        int           `env:"REDIS_POOL_SIZE" envDefault:"100"`
	PoolTimeout     time.Duration `env:"REDIS_POOL_TIMEOUT" envDefault:"4s"`
	ConnMaxIdleTime time.Duration `env:"REDIS_CONN_MAX_IDLE_TIME" envDefault:"5m"`
	ConnMaxLifetime time.Duration `env:"REDIS_CONN_MAX_LIFETIME" envDefault:"30m"`
}

// WebSocketConfig is the configuration for WebSocket connections.
type WebSocketConfig struct {
	PingInterval    time.Duration `env:"WS_PING_INTERVAL" envDefault:"30s"`
	PongWait        time.Duration `env:"WS_PONG_WAIT" envDefault:"60s"`
	WriteWait       time.Duration `env:"WS_WRITE_WAIT" envDefault:"10s"`
	MaxMessageSize  int64         `env:"WS_MAX_MESSAGE_SIZE" envDefault:"4096"`
	ReadBufferSize  int           `env:"WS_READ_BUFFER_SIZE" envDefault:"1024"`
	WriteBufferSize int           `env:"WS_WRITE_BUFFER_SIZE" envDefault:"1024"`
	MaxConnections  int           `env:"WS_MAX_CONNECTIONS" envDefault:"10000"`
	PersistTimeout  time.Duration `env:"WS_PERSIST_TIMEOUT" envDefault:"5s"`
}

// JWTConfig is the configuration for the JWT.
type JWTConfig struct {
	SecretKey string `env:"JWT_SECRET_KEY"`
}

// CookieConfig is the configuration for HttpOnly cookie authentication.
type CookieConfig struct {
	Domain   string `env:"COOKIE_DOMAIN"`
	Secure   bool   `env:"COOKIE_SECURE" envDefault:"true"`
	SameSite string `env:"COOKIE_SAMESITE" envDefault:"Lax"`
	MaxAge   int    `env:"COOKIE_MAX_AGE" envDefault:"7200"`
	Name     string `env:"COOKIE_NAME" envDefault:"signage_auth_token"`
}

// InternalConfig is the configuration for server-to-server calls.
type InternalConfig struct {
	InternalKey string `env:"INTERNAL_KEY"`
}

// DiscordConfig is the configuration for Discord webhook error reporting.
type DiscordConfig struct {
	WebhookID    string `env:"DISCORD_WEBHOOK_ID"`
	WebhookToken string `env:"DISCORD_WEBHOOK_TOKEN"`
}

// Load loads the configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("error loading configuration: %w", err)
	}
	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.JWT.SecretKey == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if len(cfg.JWT.SecretKey) < 32 {
		return fmt.Errorf("JWT_SECRET_KEY must be at least 32 characters")
	}
	if cfg.Cookie.Name == "" {
		return fmt.Errorf("COOKIE_NAME is required")
	}
	return nil
}
