// Package config предоставляет функциональность для загрузки конфигурации из файла окружения
// или переменных окружения.
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"go.uber.org/zap"

	"filmorate/pkg/logger"
)

const (
	msgLoadingConfiguration    = "loading configuration"
	msgConfigurationLoaded     = "configuration loaded successfully"
	msgFailedLoadConfiguration = "failed to load configuration"
	msgEnvFileMissing          = "env file not found, reading environment variables"

	errFailedLoadConfiguration = "failed to load configuration"

	attrService = "service"
	attrPath    = "path"
)

// Load заполняет структуру T. Если envPath указывает на существующий файл, значения
// читаются из него (переменные окружения имеют приоритет), иначе только из окружения.
func Load[T any](ctx context.Context, serviceName, envPath string) (*T, error) {
	log := logger.Log(ctx)

	log.Info(ctx, msgLoadingConfiguration,
		zap.String(attrService, serviceName),
		zap.String(attrPath, envPath))

	var cfg T

	err := readConfig(ctx, envPath, &cfg)
	if err != nil {
		log.Error(ctx, msgFailedLoadConfiguration,
			zap.String(attrService, serviceName),
			zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errFailedLoadConfiguration, err)
	}

	log.Info(ctx, msgConfigurationLoaded,
		zap.String(attrService, serviceName))

	return &cfg, nil
}

func readConfig(ctx context.Context, envPath string, cfg any) error {
	if envPath == "" {
		return cleanenv.ReadEnv(cfg)
	}
	if _, err := os.Stat(envPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Log(ctx).Debug(ctx, msgEnvFileMissing,
				zap.String(attrPath, envPath))
			return cleanenv.ReadEnv(cfg)
		}
		return err
	}
	return cleanenv.ReadConfig(envPath, cfg)
}
