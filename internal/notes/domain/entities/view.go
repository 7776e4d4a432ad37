package entities

// EditorMode состояние формы редактирования.
type EditorMode string

const (
	EditorClosed   EditorMode = "closed"
	EditorCreating EditorMode = "creating"
	EditorEditing  EditorMode = "editing"
)

// Editor открытая сессия редактирования. NoteID заполнен только в режиме EditorEditing.
type Editor struct {
	Mode   EditorMode `json:"mode"`
	NoteID int64      `json:"note_id,omitempty"`
	Draft  Draft      `json:"draft"`
}

// View снимок состояния для отрисовки.
type View struct {
	Notes    []Note `json:"notes"`
	Editor   Editor `json:"editor"`
	Selected *Note  `json:"selected,omitempty"`
}
