package log

import "go.uber.org/zap"

// Config holds configuration for the Zap logger.
type Config struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

// zapLogger implements Logger.
type zapLogger struct {
	sugarLogger *zap.SugaredLogger
	cfg         *Config
}
