package models

import "time"

// Photo is an asset of the legacy photo subsystem: a flat, image-only
// upload with no thumbnail derivation, persisted in the SQLite photo store
// with direct SQL. It is kept as a parallel contract next to [Media].
type Photo struct {
	// PhotoID is the autoincrement identifier assigned by SQLite.
	PhotoID int64 `json:"id"`

	// ProjectID references the owning project by its UUID.
	ProjectID string `json:"projectId"`

	// Filename is the generated on-disk name (UUID plus the original
	// extension), stored flat under the upload root.
	Filename string `json:"filename"`

	// OriginalName is the client-supplied file name.
	OriginalName string `json:"originalName"`

	// MimeType is the declared MIME type; only image/* is accepted.
	MimeType string `json:"mimetype"`

	// Size is the file size in bytes.
	Size int64 `json:"size"`

	UploadedAt time.Time `json:"uploadedAt"`
}

// TableName returns the name of the database table
// associated with the Photo model.
func (p Photo) TableName() string {
	return "photos"
}
