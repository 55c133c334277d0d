package cache

import (
	"context"
	"time"

	"filmorate/internal/filmorate/ports/cache"
)

// NoopCache используется, когда Redis отключен: ничего не хранит, каждый Get - промах.
type NoopCache struct{}

var _ cache.Cache = NoopCache{}

func (NoopCache) Get(context.Context, string) (string, error)              { return "", nil }
func (NoopCache) Set(context.Context, string, string, time.Duration) error { return nil }
func (NoopCache) Close() error                                             { return nil }
