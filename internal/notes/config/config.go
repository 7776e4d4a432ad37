// Package config содержит конфигурацию приложения заметок.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	pkgconfig "gonotepad/pkg/config"
	"gonotepad/pkg/logger"
)

const (
	// ServiceName имя сервиса в логах.
	ServiceName = "notes"
	// EnvConfigPath путь к файлу конфигурации, если он не передан флагом.
	EnvConfigPath = "NOTES_CONFIG_PATH"

	ErrFailedLoadConfig = "failed to load configuration"
)

// ErrUnknownDriver неизвестный драйвер хранилища.
var ErrUnknownDriver = errors.New("unknown storage driver")

// Config представляет полную конфигурацию приложения.
type Config struct {
	Storage    StorageConfig    `yaml:"storage"`
	SQLite     SQLiteConfig     `yaml:"sqlite"`
	Postgres   PostgresConfig   `yaml:"postgres"`
	Redis      RedisConfig      `yaml:"redis"`
	Resilience ResilienceConfig `yaml:"resilience"`
	HTTP       HTTPConfig       `yaml:"http"`
	GRPC       GRPCConfig       `yaml:"grpc"`
	Auth       AuthConfig       `yaml:"auth"`
	Notify     NotifyConfig     `yaml:"notify"`
	Logging    LoggingConfig    `yaml:"logging"`
	Shutdown   ShutdownConfig   `yaml:"shutdown"`
}

// Load загружает конфигурацию из файла path (или NOTES_CONFIG_PATH) и переменных окружения.
func Load(ctx context.Context, path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}

	cfg, err := pkgconfig.Load[Config](ctx, ServiceName, path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrFailedLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		logger.Log(ctx).Error(ctx, ErrFailedLoadConfig, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrFailedLoadConfig, err)
	}

	logger.Log(ctx).Debug(ctx, "configuration",
		zap.String("storage_driver", cfg.Storage.Driver),
		zap.String("http_address", cfg.HTTP.GetAddress()),
		zap.String("grpc_address", cfg.GRPC.GetAddress()),
		zap.Bool("auth_enabled", cfg.Auth.Enabled()),
		zap.String("log_level", cfg.Logging.Level),
		zap.String("log_mode", cfg.Logging.Mode))

	return cfg, nil
}

// Validate проверяет значения, которые cleanenv не проверяет сам.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case DriverSQLite, DriverPostgres, DriverRedis:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDriver, c.Storage.Driver)
	}
	return c.Logging.Validate()
}
