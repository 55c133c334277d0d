// Package metrics содержит Prometheus-метрики сервиса.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Значения меток.
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"

	OpAdd    = "add"
	OpRemove = "remove"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "filmorate_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "filmorate_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	popularCacheTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "filmorate_popular_cache_total",
		Help: "Popular films cache lookups by result",
	}, []string{"result"})

	films = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "filmorate_films",
		Help: "Number of stored films",
	})

	users = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "filmorate_users",
		Help: "Number of stored users",
	})

	likeOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "filmorate_like_operations_total",
		Help: "Successful like and unlike operations",
	}, []string{"op"})

	friendOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "filmorate_friend_operations_total",
		Help: "Successful friendship changes",
	}, []string{"op"})
)

// ObserveHTTPRequest записывает метрики HTTP-запроса.
func ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	httpRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// ObservePopularCache учитывает результат обращения к кэшу популярных фильмов.
func ObservePopularCache(result string) {
	popularCacheTotal.WithLabelValues(result).Inc()
}

func FilmCreated() { films.Inc() }
func FilmDeleted() { films.Dec() }
func UserCreated() { users.Inc() }
func UserDeleted() { users.Dec() }

// ObserveLike учитывает постановку (OpAdd) или снятие (OpRemove) лайка.
func ObserveLike(op string) {
	likeOperations.WithLabelValues(op).Inc()
}

// ObserveFriendship учитывает создание (OpAdd) или удаление (OpRemove) дружбы.
func ObserveFriendship(op string) {
	friendOperations.WithLabelValues(op).Inc()
}
