package notes

import (
	"bytes"
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"gonotepad/internal/notes/adapters/http/dto"
	"gonotepad/pkg/logger"
	"gonotepad/pkg/notetext"
)

const (
	LogHandlerCreateNote = "handling create note request"
	LogHandlerShowNote   = "handling show note request"
	LogHandlerListNotes  = "handling list notes request"
	LogHandlerUpdateNote = "handling update note request"
	LogHandlerDeleteNote = "handling delete note request"
	LogHandlerExport     = "handling export request"
	LogHandlerImport     = "handling import request"
)

// ListNotes возвращает все заметки в порядке хранения.
func (h *Handler) ListNotes(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerListNotes)

	return sendJSON(ctx, fiber.StatusOK, dto.FromNotes(h.controller.View().Notes))
}

// CreateNote обрабатывает запрос на создание новой заметки.
func (h *Handler) CreateNote(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.CreateNote"))
	log.Debug(requestCtx, LogHandlerCreateNote)

	var req dto.NoteRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Debug(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return handleError(ctx, fiber.NewError(fiber.StatusBadRequest, ErrMsgInvalidRequestBody))
	}

	note, err := h.controller.Create(requestCtx, req.Title, req.Description)
	if err != nil {
		return handleError(ctx, err)
	}

	return sendJSON(ctx, fiber.StatusCreated, dto.FromNote(note))
}

// ShowNote возвращает заметку и выбирает ее для просмотра.
func (h *Handler) ShowNote(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerShowNote)

	id, err := parseID(ctx)
	if err != nil {
		return handleError(ctx, err)
	}

	note, err := h.controller.Show(requestCtx, id)
	if err != nil {
		return handleError(ctx, err)
	}

	return sendJSON(ctx, fiber.StatusOK, dto.FromNote(note))
}

// UpdateNote обрабатывает запрос на обновление заметки.
func (h *Handler) UpdateNote(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.UpdateNote"))
	log.Debug(requestCtx, LogHandlerUpdateNote)

	id, err := parseID(ctx)
	if err != nil {
		return handleError(ctx, err)
	}

	var req dto.NoteRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Debug(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return handleError(ctx, fiber.NewError(fiber.StatusBadRequest, ErrMsgInvalidRequestBody))
	}

	note, err := h.controller.Update(requestCtx, id, req.Title, req.Description)
	if err != nil {
		return handleError(ctx, err)
	}

	return sendJSON(ctx, fiber.StatusOK, dto.FromNote(note))
}

// DeleteNote обрабатывает запрос на удаление заметки.
func (h *Handler) DeleteNote(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerDeleteNote)

	id, err := parseID(ctx)
	if err != nil {
		return handleError(ctx, err)
	}

	if err := h.controller.Delete(requestCtx, id); err != nil {
		return handleError(ctx, err)
	}

	if err := ctx.SendStatus(fiber.StatusNoContent); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// ExportNotes отдает все заметки файлом notes_export.txt.
func (h *Handler) ExportNotes(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerExport)

	var buf bytes.Buffer
	if err := h.controller.Export(requestCtx, &buf); err != nil {
		return handleError(ctx, err)
	}

	ctx.Attachment(notetext.FileName)
	ctx.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	if err := ctx.Status(fiber.StatusOK).Send(buf.Bytes()); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// ImportNotes заменяет все заметки содержимым тела запроса в формате экспорта.
func (h *Handler) ImportNotes(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerImport, zap.Int("bytes", len(ctx.Body())))

	notes, err := h.controller.Import(requestCtx, bytes.NewReader(ctx.Body()))
	if err != nil {
		return handleError(ctx, err)
	}

	return sendJSON(ctx, fiber.StatusOK, dto.FromNotes(notes))
}
