// Package entities defines the domain entities for the notes service.
package entities

import (
	"strings"
	"time"
)

// Note представляет собой заметку. ID назначается хранилищем при первой записи.
type Note struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Timestamp   int64  `json:"timestamp"`
}

// Draft несохраненное содержимое заметки: форма редактора или запись импорта.
type Draft struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// NewNote creates a new note stamped with now.
func NewNote(title, description string, now time.Time) *Note {
	return &Note{
		Title:       title,
		Description: description,
		Timestamp:   now.UnixMilli(),
	}
}

// Time возвращает Timestamp как time.Time.
func (n Note) Time() time.Time {
	return time.UnixMilli(n.Timestamp)
}

// Draft возвращает редактируемые поля заметки.
func (n Note) Draft() Draft {
	return Draft{Title: n.Title, Description: n.Description}
}

// Complete сообщает, заполнены ли оба обязательных поля.
func (d Draft) Complete() bool {
	return strings.TrimSpace(d.Title) != "" && strings.TrimSpace(d.Description) != ""
}
