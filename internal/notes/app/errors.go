// Package app implements application business logic for the notes service.
package app

import "errors"

// Ошибки уровня бизнес-логики. Проверяются через errors.Is.
var (
	// ErrPersistence операция с хранилищем завершилась ошибкой.
	ErrPersistence = errors.New("persistence error")
	// ErrNotFound заметки с указанным ID нет.
	ErrNotFound = errors.New("note not found")
	// ErrValidation пустое обязательное поле или импорт без корректных записей.
	ErrValidation = errors.New("validation error")
	// ErrEditorClosed сохранение без открытого редактора.
	ErrEditorClosed = errors.New("editor is not open")
	// ErrMultilineTitle заголовок содержит перевод строки; всегда вместе с ErrValidation.
	ErrMultilineTitle = errors.New("title must be a single line")
)
