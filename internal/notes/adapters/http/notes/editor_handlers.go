package notes

import (
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"gonotepad/internal/notes/adapters/http/dto"
	"gonotepad/pkg/logger"
)

// GetEditor возвращает состояние формы.
func (h *Handler) GetEditor(ctx fiber.Ctx) error {
	return sendJSON(ctx, fiber.StatusOK, dto.FromEditor(h.controller.Editor()))
}

// OpenCreateEditor открывает пустую форму.
func (h *Handler) OpenCreateEditor(ctx fiber.Ctx) error {
	return sendJSON(ctx, fiber.StatusOK, dto.FromEditor(h.controller.OpenCreate(ctx.Context())))
}

// OpenEditEditor открывает форму редактирования заметки :id.
func (h *Handler) OpenEditEditor(ctx fiber.Ctx) error {
	id, err := parseID(ctx)
	if err != nil {
		return handleError(ctx, err)
	}

	editor, err := h.controller.OpenEdit(ctx.Context(), id)
	if err != nil {
		return handleError(ctx, err)
	}

	return sendJSON(ctx, fiber.StatusOK, dto.FromEditor(editor))
}

// SaveEditor сохраняет форму.
func (h *Handler) SaveEditor(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()

	var req dto.NoteRequest
	if err := ctx.Bind().Body(&req); err != nil {
		logger.Log(requestCtx).Debug(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return handleError(ctx, fiber.NewError(fiber.StatusBadRequest, ErrMsgInvalidRequestBody))
	}

	note, err := h.controller.Save(requestCtx, req.Title, req.Description)
	if err != nil {
		return handleError(ctx, err)
	}

	return sendJSON(ctx, fiber.StatusOK, dto.FromNote(note))
}

// CancelEditor закрывает форму без сохранения.
func (h *Handler) CancelEditor(ctx fiber.Ctx) error {
	h.controller.Cancel(ctx.Context())
	return sendJSON(ctx, fiber.StatusOK, dto.FromEditor(h.controller.Editor()))
}

// ListNotifications возвращает активные уведомления.
func (h *Handler) ListNotifications(ctx fiber.Ctx) error {
	resp := dto.NotificationsResponse{Notifications: h.feed.Active()}
	return sendJSON(ctx, fiber.StatusOK, resp)
}
