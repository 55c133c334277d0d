package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"filmorate/internal/filmorate/adapters/cache"
	httpServer "filmorate/internal/filmorate/adapters/http"
	"filmorate/internal/filmorate/adapters/memory"
	"filmorate/internal/filmorate/app"
	"filmorate/internal/filmorate/config"
	cachePorts "filmorate/internal/filmorate/ports/cache"
	"filmorate/internal/filmorate/resilience"
	"filmorate/pkg/logger"
	"filmorate/pkg/shutdown"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "FILMORATE_LOGGER_MODE"
	EnvLoggerLevel = "FILMORATE_LOGGER_LEVEL"
	EnvConfigPath  = "FILMORATE_CONFIG_PATH"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrCreateRedisClient    = "failed to create Redis client, popular films cache disabled"
	ErrStartHTTPServer      = "failed to start HTTP server"
	ErrShutdown             = "graceful shutdown finished with errors"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "filmorate service started"
	LogServiceShutdownDone = "filmorate service shutdown complete"
	LogStoppingHTTP        = "stopping HTTP server"
	LogClosingCache        = "closing cache"
	LogInitStores          = "initializing in-memory stores"
	LogInitCache           = "initializing cache"
	LogCacheDisabled       = "redis cache disabled, using no-op cache"
	LogInitServices        = "initializing services"
	LogInitHTTPServer      = "initializing HTTP server"
	LogStartingHTTP        = "starting HTTP server"
)

func main() {
	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == "production" {
		env = logger.Production
	}

	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}

	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	var exitCode int

	func() {
		defer func() {
			if err := log.Sync(); err != nil {
				errMsg := err.Error()
				if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
					return
				}
				if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
					panic(writeErr)
				}
			}
		}()

		configPath := os.Getenv(EnvConfigPath)
		if configPath == "" {
			configPath = config.DefaultEnvPath
		}

		cfg, err := config.Load(ctx, configPath)
		if err != nil {
			log.Error(ctx, ErrLoadConfig, zap.Error(err))
			exitCode = 1
			return
		}

		finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
		if err != nil {
			log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
			exitCode = 1
			return
		}
		logger.SetGlobalLogger(finalLogger)
		log = finalLogger

		log.Info(ctx, LogServiceStarted,
			zap.String("environment", string(cfg.Logging.GetEnvironment())),
			zap.String("log_level", cfg.Logging.Level),
			zap.String("startup_time", time.Now().Format(time.RFC3339)))

		log.Info(ctx, LogInitStores)
		ids := memory.NewIDAllocator()
		userStore := memory.NewUserStore(ids)
		filmStore := memory.NewFilmStore(ids)

		log.Info(ctx, LogInitCache)
		popularCache := newCache(ctx, log, &cfg.Redis)

		log.Info(ctx, LogInitServices)
		relations := app.NewRelationshipService(userStore, filmStore)
		popular := app.NewPopularCache(popularCache, cfg.Redis.DefaultTTL)
		filmService := app.NewFilmUseCase(filmStore, relations, popular)
		userService := app.NewUserUseCase(userStore, relations, popular)

		log.Info(ctx, LogInitHTTPServer)
		fiberApp := fiber.New(fiber.Config{
			AppName:      config.ServiceName,
			ReadTimeout:  cfg.HTTP.ReadTimeout,
			WriteTimeout: cfg.HTTP.WriteTimeout,
		})

		httpServer.SetupRouter(fiberApp, filmService, userService, httpServer.Options{
			RateLimit:           cfg.RateLimit,
			PopularDefaultCount: cfg.Popular.DefaultCount,
		})

		log.Info(ctx, LogStartingHTTP, zap.String("address", cfg.HTTP.GetAddress()))
		go func() {
			if err := fiberApp.Listen(cfg.HTTP.GetAddress(), fiber.ListenConfig{DisableStartupMessage: true}); err != nil {
				log.Error(ctx, ErrStartHTTPServer, zap.Error(err))
			}
		}()

		err = shutdown.Wait(ctx, cfg.Shutdown.GetTimeout(),
			// Остановка HTTP сервера.
			func(ctx context.Context) error {
				log.Info(ctx, LogStoppingHTTP)
				return fiberApp.ShutdownWithContext(ctx)
			},
			// Закрытие Redis соединения.
			func(ctx context.Context) error {
				log.Info(ctx, LogClosingCache)
				return popularCache.Close()
			},
		)
		if err != nil {
			log.Error(ctx, ErrShutdown, zap.Error(err))
			exitCode = 1
		}

		log.Info(ctx, LogServiceShutdownDone)
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}

// newCache подключает Redis за Circuit Breaker, повторяя попытки подключения.
// Если Redis выключен или недоступен при старте, сервис работает без кэша.
func newCache(ctx context.Context, log *logger.Logger, cfg *config.RedisConfig) cachePorts.Cache {
	if !cfg.Enabled {
		log.Info(ctx, LogCacheDisabled)
		return cache.NoopCache{}
	}

	var redisCache *cache.RedisCache
	connect := resilience.NewRetry("redis-connect", resilience.RetryConfig{
		MaxAttempts:    cfg.ConnectAttempts,
		InitialBackoff: 200 * time.Millisecond,
		MaxBackoff:     2 * time.Second,
		BackoffFactor:  2,
	})
	err := connect.Execute(ctx, func(ctx context.Context) error {
		var err error
		redisCache, err = cache.NewRedisCache(ctx, cfg)
		return err
	})
	if err != nil {
		log.Warn(ctx, ErrCreateRedisClient, zap.Error(err))
		return cache.NoopCache{}
	}

	breaker := resilience.NewCircuitBreaker("redis", resilience.CircuitBreakerConfig{
		ErrorThreshold:   cfg.BreakerErrorThreshold,
		Timeout:          cfg.BreakerTimeout,
		SuccessThreshold: cfg.BreakerSuccessThreshold,
	})
	return cache.NewBreakerCache(redisCache, breaker)
}
