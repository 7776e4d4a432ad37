package notes

import (
	"context"

	"go.uber.org/zap"

	"gonotepad/internal/notes/app"
	"gonotepad/internal/notes/config"
	"gonotepad/internal/notes/ports/services"
	"gonotepad/pkg/logger"
)

const (
	LogInitStorage = "initializing storage"
	LogStorageOpen = "storage opened"
	LogClosing     = "closing storage"
)

// Service связывает хранилище, NoteStore и Controller.
type Service struct {
	Storage    *Storage
	Store      *app.NoteStore
	Controller *app.Controller
}

// NewService открывает хранилище и создает контроллер. Коллекция не загружается: вызовите Controller.Load.
func NewService(ctx context.Context, cfg *config.Config, notifier services.Notifier, opts ...app.ControllerOption) (*Service, error) {
	log := logger.Log(ctx)
	log.Info(ctx, LogInitStorage, zap.String("driver", cfg.Storage.Driver))

	storage, err := OpenStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}
	log.Info(ctx, LogStorageOpen, zap.String("driver", storage.Driver))

	return newService(storage, notifier, opts...), nil
}

func newService(storage *Storage, notifier services.Notifier, opts ...app.ControllerOption) *Service {
	store := app.NewNoteStore(storage.Repository)
	return &Service{
		Storage:    storage,
		Store:      store,
		Controller: app.NewController(store, notifier, opts...),
	}
}

// Close закрывает хранилище.
func (s *Service) Close(ctx context.Context) error {
	logger.Log(ctx).Info(ctx, LogClosing)
	return s.Storage.Close(ctx)
}
