// Package config содержит конфигурацию сервиса filmorate.
package config

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	pkgconfig "filmorate/pkg/config"
	"filmorate/pkg/logger"
)

// Константы ошибок и сообщений для конфигурации.
const (
	ServiceName         = "filmorate"
	DefaultEnvPath      = ".env"
	LogConfigLoaded     = "filmorate configuration"
	ErrFailedLoadConfig = "failed to load configuration"
)

// Config представляет полную конфигурацию сервиса.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Logging   LoggingConfig   `yaml:"logging"`
	Shutdown  ShutdownConfig  `yaml:"shutdown"`
	Redis     RedisConfig     `yaml:"redis"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Popular   PopularConfig   `yaml:"popular"`
}

// Load загружает конфигурацию из файла envPath (если он есть) и переменных окружения.
func Load(ctx context.Context, envPath string) (*Config, error) {
	cfg, err := pkgconfig.Load[Config](ctx, ServiceName, envPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrFailedLoadConfig, err)
	}

	logger.Log(ctx).Info(ctx, LogConfigLoaded,
		zap.String("http_address", cfg.HTTP.GetAddress()),
		zap.String("log_level", cfg.Logging.Level),
		zap.String("log_mode", cfg.Logging.Mode),
		zap.Int("shutdown_timeout_seconds", cfg.Shutdown.Timeout),
		zap.Bool("redis_enabled", cfg.Redis.Enabled),
		zap.String("redis_address", cfg.Redis.GetAddress()),
		zap.Duration("popular_cache_ttl", cfg.Redis.DefaultTTL),
		zap.Float64("rate_limit_rps", cfg.RateLimit.RequestsPerSecond),
		zap.Int("popular_default_count", cfg.Popular.DefaultCount))

	return cfg, nil
}
