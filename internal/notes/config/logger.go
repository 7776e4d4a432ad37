package config

import (
	"errors"
	"fmt"
	"strings"

	"gonotepad/pkg/logger"
)

// ErrUnknownLogMode неизвестный режим логирования.
var ErrUnknownLogMode = errors.New("unknown logging mode")

// LoggingConfig задает уровень и режим логов CLI и сервера заметок.
// Mode принимает development/dev или production/prod без учета регистра.
type LoggingConfig struct {
	Level string `yaml:"level" env:"NOTES_LOGGER_LEVEL" env-default:"info"`
	Mode  string `yaml:"mode" env:"NOTES_LOGGER_MODE" env-default:"development"`
}

// GetEnvironment переводит Mode в окружение логгера. Пустой режим означает development.
func (l *LoggingConfig) GetEnvironment() logger.Environment {
	switch strings.ToLower(strings.TrimSpace(l.Mode)) {
	case "production", "prod":
		return logger.Production
	default:
		return logger.Development
	}
}

// Validate отклоняет режим, который GetEnvironment молча превратил бы в development.
func (l *LoggingConfig) Validate() error {
	switch strings.ToLower(strings.TrimSpace(l.Mode)) {
	case "", "development", "dev", "production", "prod":
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownLogMode, l.Mode)
	}
}
