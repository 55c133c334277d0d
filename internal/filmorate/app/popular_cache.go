package app

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"filmorate/internal/filmorate/domain/entities"
	"filmorate/internal/filmorate/metrics"
	"filmorate/internal/filmorate/ports/cache"
	"filmorate/pkg/logger"
)

const popularKeyPrefix = "filmorate:popular"

// Сообщения логгера.
const (
	LogPopularCacheReadFailed  = "popular cache read failed, computing directly"
	LogPopularCacheWriteFailed = "popular cache write failed"
	LogPopularCacheDecodeError = "popular cache entry is corrupted"
)

// PopularCache кэширует ответы PopularFilms.
// Ключ записи: filmorate:popular:{instance}:{generation}:{count}.
// instance выдается при создании, поэтому записи прошлого процесса, чьи данные
// жили только в его памяти, никогда не читаются. generation хранится в памяти
// процесса: Invalidate не обращается к кэшу и не может завершиться ошибкой.
type PopularCache struct {
	cache      cache.Cache
	ttl        time.Duration
	instance   string
	generation atomic.Int64
	group      singleflight.Group
}

// NewPopularCache создает кэш популярных фильмов поверх cache.Cache.
func NewPopularCache(c cache.Cache, ttl time.Duration) *PopularCache {
	return &PopularCache{cache: c, ttl: ttl, instance: uuid.NewString()}
}

// Fetch возвращает закэшированный рейтинг или вычисляет его через compute.
// Ошибки кэша не прерывают запрос: рейтинг вычисляется напрямую.
func (p *PopularCache) Fetch(
	ctx context.Context,
	count int,
	compute func(context.Context, int) ([]*entities.Film, error),
) ([]*entities.Film, error) {
	log := logger.Log(ctx).With(zap.String("method", "PopularCache.Fetch"), zap.Int("count", count))

	key := p.key(count)

	cached, err := p.cache.Get(ctx, key)
	switch {
	case err != nil:
		metrics.ObservePopularCache(metrics.CacheError)
		log.Warn(ctx, LogPopularCacheReadFailed, zap.Error(err))
		return compute(ctx, count)
	case cached != "":
		var films []*entities.Film
		if err := json.Unmarshal([]byte(cached), &films); err == nil {
			metrics.ObservePopularCache(metrics.CacheHit)
			return films, nil
		}
		log.Warn(ctx, LogPopularCacheDecodeError, zap.String("key", key))
	}

	metrics.ObservePopularCache(metrics.CacheMiss)

	v, err, _ := p.group.Do(key, func() (any, error) {
		films, err := compute(ctx, count)
		if err != nil {
			return nil, err
		}
		payload, err := json.Marshal(films)
		if err != nil {
			return nil, fmt.Errorf("encode popular films: %w", err)
		}
		if err := p.cache.Set(ctx, key, string(payload), p.ttl); err != nil {
			log.Warn(ctx, LogPopularCacheWriteFailed, zap.Error(err))
		}
		return films, nil
	})
	if err != nil {
		return nil, err
	}
	return cloneFilms(v.([]*entities.Film)), nil
}

// Invalidate делает все ранее закэшированные рейтинги недоступными.
// Старые записи остаются в кэше до истечения TTL, но больше не читаются.
func (p *PopularCache) Invalidate(context.Context) {
	p.generation.Add(1)
}

func (p *PopularCache) key(count int) string {
	return fmt.Sprintf("%s:%s:%d:%d", popularKeyPrefix, p.instance, p.generation.Load(), count)
}

// Результат singleflight разделяется между вызывающими, поэтому каждый получает свою копию.
func cloneFilms(films []*entities.Film) []*entities.Film {
	out := make([]*entities.Film, 0, len(films))
	for _, f := range films {
		out = append(out, f.Clone())
	}
	return out
}
