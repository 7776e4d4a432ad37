// Package notes собирает приложение заметок: хранилище, бизнес-логику и серверы.
package notes

import (
	"context"
	"fmt"

	"gonotepad/internal/notes/adapters/resilience"
	"gonotepad/internal/notes/config"
	"gonotepad/internal/notes/ports/repositories"
)

// ErrOpenStorage ошибка открытия хранилища.
const ErrOpenStorage = "failed to open storage"

// Storage открытое хранилище заметок и функция его закрытия.
type Storage struct {
	Repository repositories.NoteRepository
	Driver     string
	closeFn    func(context.Context) error
}

// Close освобождает соединения хранилища.
func (s *Storage) Close(ctx context.Context) error {
	if s.closeFn == nil {
		return nil
	}
	return s.closeFn(ctx)
}

// OpenStorage открывает хранилище, выбранное в cfg.Storage.Driver.
func OpenStorage(ctx context.Context, cfg *config.Config) (*Storage, error) {
	var (
		storage *Storage
		err     error
	)

	switch cfg.Storage.Driver {
	case config.DriverSQLite:
		storage, err = openSQLite(ctx, &cfg.SQLite)
	case config.DriverPostgres:
		storage, err = openPostgres(ctx, &cfg.Postgres)
	case config.DriverRedis:
		storage, err = openRedis(ctx, &cfg.Redis)
	default:
		err = fmt.Errorf("%w: %q", config.ErrUnknownDriver, cfg.Storage.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrOpenStorage, err)
	}

	storage.Driver = cfg.Storage.Driver
	if storage.Driver != config.DriverSQLite && cfg.Resilience.Enabled() {
		storage.Repository = guard(storage.Driver, storage.Repository, &cfg.Resilience)
	}
	return storage, nil
}

// guard оборачивает удаленное хранилище в Circuit Breaker. Повторных попыток нет.
func guard(driver string, repo repositories.NoteRepository, cfg *config.ResilienceConfig) repositories.NoteRepository {
	return resilience.NewNoteRepository("notes-"+driver, repo,
		resilience.CircuitBreakerConfig{
			ErrorThreshold:   cfg.BreakerThreshold,
			Timeout:          cfg.BreakerTimeout,
			SuccessThreshold: cfg.BreakerSuccesses,
		})
}
