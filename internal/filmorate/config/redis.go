package config

import (
	"fmt"
	"time"

	redisdb "filmorate/pkg/db/redis"
)

// RedisConfig представляет конфигурацию Redis для кэша популярных фильмов.
// При Enabled=false используется кэш-заглушка.
type RedisConfig struct {
	Enabled         bool          `yaml:"enabled" env:"FILMORATE_REDIS_ENABLED" env-default:"false"`
	Host            string        `yaml:"host" env:"FILMORATE_REDIS_HOST" env-default:"localhost"`
	Port            int           `yaml:"port" env:"FILMORATE_REDIS_PORT" env-default:"6379"`
	Password        string        `yaml:"password" env:"FILMORATE_REDIS_PASSWORD" env-default:""`
	DB              int           `yaml:"db" env:"FILMORATE_REDIS_DB" env-default:"0"`
	ConnectTimeout  time.Duration `yaml:"connect_timeout" env:"FILMORATE_REDIS_CONNECT_TIMEOUT" env-default:"5s"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"FILMORATE_REDIS_READ_TIMEOUT" env-default:"1s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"FILMORATE_REDIS_WRITE_TIMEOUT" env-default:"1s"`
	PoolSize        int           `yaml:"pool_size" env:"FILMORATE_REDIS_POOL_SIZE" env-default:"10"`
	MinIdle         int           `yaml:"min_idle" env:"FILMORATE_REDIS_MIN_IDLE" env-default:"2"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env:"FILMORATE_REDIS_IDLE_TIMEOUT" env-default:"5m"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime" env:"FILMORATE_REDIS_MAX_CONN_LIFETIME" env-default:"1h"`
	DefaultTTL      time.Duration `yaml:"default_ttl" env:"FILMORATE_REDIS_DEFAULT_TTL" env-default:"1m"`
	ConnectAttempts int           `yaml:"connect_attempts" env:"FILMORATE_REDIS_CONNECT_ATTEMPTS" env-default:"3"`

	BreakerErrorThreshold   int           `yaml:"breaker_error_threshold" env:"FILMORATE_REDIS_BREAKER_ERRORS" env-default:"5"`
	BreakerTimeout          time.Duration `yaml:"breaker_timeout" env:"FILMORATE_REDIS_BREAKER_TIMEOUT" env-default:"10s"`
	BreakerSuccessThreshold int           `yaml:"breaker_success_threshold" env:"FILMORATE_REDIS_BREAKER_SUCCESSES" env-default:"2"`
}

// GetAddress возвращает адрес Redis.
func (c *RedisConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ClientConfig возвращает параметры подключения для клиента Redis.
func (c *RedisConfig) ClientConfig() *redisdb.Config {
	return &redisdb.Config{
		Host:            c.Host,
		Port:            c.Port,
		Password:        c.Password,
		DB:              c.DB,
		PoolSize:        c.PoolSize,
		MinIdleConns:    c.MinIdle,
		DialTimeout:     c.ConnectTimeout,
		ReadTimeout:     c.ReadTimeout,
		WriteTimeout:    c.WriteTimeout,
		ConnMaxIdleTime: c.IdleTimeout,
		ConnMaxLifetime: c.MaxConnLifetime,
	}
}
