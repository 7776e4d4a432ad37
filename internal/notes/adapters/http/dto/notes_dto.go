// Package dto описывает тела запросов и ответов HTTP API.
package dto

import (
	"time"

	"gonotepad/internal/notes/domain/entities"
)

// NoteRequest данные для создания, изменения заметки или сохранения формы.
type NoteRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Note представляет заметку.
type Note struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Timestamp   int64     `json:"timestamp"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ListNotesResponse содержит список заметок.
type ListNotesResponse struct {
	Notes      []Note `json:"notes"`
	TotalCount int    `json:"total_count"`
}

// EditorResponse состояние формы редактирования.
type EditorResponse struct {
	Mode        string `json:"mode"`
	NoteID      int64  `json:"note_id,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// NotificationsResponse активные уведомления.
type NotificationsResponse struct {
	Notifications []entities.Notification `json:"notifications"`
}

// FromNote преобразует доменную заметку.
func FromNote(n entities.Note) Note {
	return Note{
		ID:          n.ID,
		Title:       n.Title,
		Description: n.Description,
		Timestamp:   n.Timestamp,
		UpdatedAt:   n.Time().UTC(),
	}
}

// FromNotes преобразует коллекцию.
func FromNotes(notes []entities.Note) ListNotesResponse {
	out := make([]Note, 0, len(notes))
	for _, n := range notes {
		out = append(out, FromNote(n))
	}
	return ListNotesResponse{Notes: out, TotalCount: len(out)}
}

// FromEditor преобразует состояние формы.
func FromEditor(e entities.Editor) EditorResponse {
	return EditorResponse{
		Mode:        string(e.Mode),
		NoteID:      e.NoteID,
		Title:       e.Draft.Title,
		Description: e.Draft.Description,
	}
}
