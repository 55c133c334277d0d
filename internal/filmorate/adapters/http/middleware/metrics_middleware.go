package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"

	"filmorate/internal/filmorate/metrics"
)

// NewMetricsMiddleware учитывает запросы в метриках Prometheus.
// Путь берется из шаблона маршрута, чтобы id не раздували число меток.
func NewMetricsMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		start := time.Now()

		err := ctx.Next()

		path := ctx.Route().Path
		if path == "" || (path == "/" && ctx.Path() != "/") {
			path = "unmatched"
		}
		metrics.ObserveHTTPRequest(ctx.Method(), path, strconv.Itoa(ctx.Response().StatusCode()), time.Since(start))

		return err
	}
}
