package cache

import (
	"context"
	"time"

	"filmorate/internal/filmorate/ports/cache"
	"filmorate/internal/filmorate/resilience"
)

// BreakerCache пропускает обращения к внутреннему кэшу через Circuit Breaker.
// Пока цепь разомкнута, все методы сразу возвращают resilience.ErrCircuitOpen.
type BreakerCache struct {
	inner   cache.Cache
	breaker *resilience.CircuitBreaker
}

var _ cache.Cache = (*BreakerCache)(nil)

// NewBreakerCache оборачивает inner.
func NewBreakerCache(inner cache.Cache, breaker *resilience.CircuitBreaker) *BreakerCache {
	return &BreakerCache{inner: inner, breaker: breaker}
}

func (c *BreakerCache) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := c.breaker.Execute(ctx, func() error {
		var err error
		value, err = c.inner.Get(ctx, key)
		return err
	})
	return value, err
}

func (c *BreakerCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return c.breaker.Execute(ctx, func() error {
		return c.inner.Set(ctx, key, value, ttl)
	})
}

// Close закрывает внутренний кэш в обход Circuit Breaker.
func (c *BreakerCache) Close() error {
	return c.inner.Close()
}
