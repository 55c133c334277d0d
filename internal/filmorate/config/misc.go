package config

import "time"

// ShutdownConfig представляет конфигурацию для корректного завершения работы.
type ShutdownConfig struct {
	Timeout int `yaml:"timeout" env:"FILMORATE_GRACEFUL_SHUTDOWN_TIMEOUT" env-default:"5"`
}

// GetTimeout возвращает таймаут для корректного завершения работы в виде Duration.
func (c *ShutdownConfig) GetTimeout() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

// RateLimitConfig - ограничение частоты запросов с одного IP. RequestsPerSecond=0 отключает лимит.
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"rps" env:"FILMORATE_RATE_LIMIT_RPS" env-default:"0"`
	Burst             int     `yaml:"burst" env:"FILMORATE_RATE_LIMIT_BURST" env-default:"20"`
}

// Enabled сообщает, включено ли ограничение.
func (c *RateLimitConfig) Enabled() bool {
	return c.RequestsPerSecond > 0
}

// PopularConfig - параметры выдачи популярных фильмов.
type PopularConfig struct {
	DefaultCount int `yaml:"default_count" env:"FILMORATE_POPULAR_DEFAULT_COUNT" env-default:"10"`
}
