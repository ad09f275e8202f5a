package models

import "time"

// Note is a free-text annotation attached to a project. Notes are created
// and deleted only; there is no update operation.
type Note struct {
	// NoteID is the unique identifier of the note (UUID).
	NoteID string `json:"id"`

	// ProjectID links the note to its project.
	ProjectID string `json:"projectId"`

	// Body is the note text. Must be non-empty after trimming.
	Body string `json:"body"`

	CreatedAt time.Time `json:"createdAt"`
}

// TableName returns the name of the database table
// associated with the Note model.
func (n Note) TableName() string {
	return "notes"
}
