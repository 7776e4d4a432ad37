// Package notes содержит HTTP-обработчики для управления заметками.
package notes

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"gonotepad/internal/notes/app"
	"gonotepad/internal/notes/domain/entities"
	"gonotepad/pkg/logger"
)

// Константы ошибок HTTP API.
const (
	ErrMsgInvalidNoteID      = "invalid note id"
	ErrMsgInvalidRequestBody = "invalid request body"
	ErrMsgInternal           = "internal server error"
	ErrMsgStorage            = "storage unavailable"
)

// Controller действия пользователя, доступные через HTTP.
type Controller interface {
	View() entities.View
	Create(ctx context.Context, title, description string) (entities.Note, error)
	Update(ctx context.Context, id int64, title, description string) (entities.Note, error)
	Delete(ctx context.Context, id int64) error
	Show(ctx context.Context, id int64) (entities.Note, error)
	Import(ctx context.Context, r io.Reader) ([]entities.Note, error)
	Export(ctx context.Context, w io.Writer) error
	Editor() entities.Editor
	OpenCreate(ctx context.Context) entities.Editor
	OpenEdit(ctx context.Context, id int64) (entities.Editor, error)
	Save(ctx context.Context, title, description string) (entities.Note, error)
	Cancel(ctx context.Context)
}

// NotificationFeed источник активных уведомлений.
type NotificationFeed interface {
	Active() []entities.Notification
}

// Handler обработчик HTTP-запросов для работы с заметками.
type Handler struct {
	controller Controller
	feed       NotificationFeed
}

// NewHandler создает новый экземпляр обработчика заметок.
func NewHandler(controller Controller, feed NotificationFeed) *Handler {
	return &Handler{
		controller: controller,
		feed:       feed,
	}
}

func parseID(ctx fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(ctx.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, ErrMsgInvalidNoteID)
	}
	return id, nil
}

// statusFor сопоставляет ошибку бизнес-логики HTTP-статусу.
func statusFor(err error) (int, string) {
	var fiberErr *fiber.Error
	switch {
	case errors.As(err, &fiberErr):
		return fiberErr.Code, fiberErr.Message
	case errors.Is(err, app.ErrValidation):
		return fiber.StatusBadRequest, app.ErrValidation.Error()
	case errors.Is(err, app.ErrNotFound):
		return fiber.StatusNotFound, app.ErrNotFound.Error()
	case errors.Is(err, app.ErrEditorClosed):
		return fiber.StatusConflict, app.ErrEditorClosed.Error()
	case errors.Is(err, app.ErrPersistence):
		return fiber.StatusServiceUnavailable, ErrMsgStorage
	default:
		return fiber.StatusInternalServerError, ErrMsgInternal
	}
}

// handleError отвечает JSON {"error": ...} со статусом, соответствующим err.
func handleError(ctx fiber.Ctx, err error) error {
	status, msg := statusFor(err)
	if status >= fiber.StatusInternalServerError {
		requestCtx := ctx.Context()
		logger.Log(requestCtx).Error(requestCtx, "request failed", zap.Int("status", status), zap.Error(err))
	}

	if err := ctx.Status(status).JSON(fiber.Map{"error": msg}); err != nil {
		return fmt.Errorf("error sending %d response: %w", status, err)
	}
	return nil
}

func sendJSON(ctx fiber.Ctx, status int, body any) error {
	if err := ctx.Status(status).JSON(body); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}
