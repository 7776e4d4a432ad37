package services

import (
	"context"

	"gonotepad/internal/notes/domain/entities"
)

// Notifier показывает пользователю кратковременное сообщение.
type Notifier interface {
	Notify(ctx context.Context, message string, severity entities.Severity)
}

// Renderer перерисовывает представление после завершения действия.
type Renderer interface {
	Render(ctx context.Context, view entities.View)
}
