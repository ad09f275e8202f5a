package models

import (
	"strings"
	"time"
)

// File type classification of an uploaded media asset.
const (
	FileTypePhoto = "photo"
	FileTypeVideo = "video"
)

// FileTypeForMIME classifies a declared MIME type: anything under image/
// is a photo, everything else that passed the allow-list is a video.
func FileTypeForMIME(mimeType string) string {
	if strings.HasPrefix(mimeType, "image/") {
		return FileTypePhoto
	}
	return FileTypeVideo
}

// Media represents an uploaded photo or video asset together with its
// metadata record. It belongs to exactly one project and (denormalized)
// to the project's owning user.
type Media struct {
	// MediaID is the unique identifier of the asset (UUID).
	MediaID string `json:"id"`

	// ProjectID links the asset to its project.
	ProjectID string `json:"projectId"`

	// UserID is the owning user, denormalized from the project for
	// cheap ownership-scoped queries.
	UserID string `json:"userId"`

	// FileType is the classification of the asset: "photo" or "video".
	FileType string `json:"fileType"`

	// FilePath is the path of the stored original on disk.
	FilePath string `json:"filePath"`

	// ThumbnailPath is the path of the derived JPEG preview. Set only
	// when the asset is a photo and derivation succeeded; its absence is
	// never an error condition for retrieval.
	ThumbnailPath *string `json:"thumbnailPath"`

	// FileSize is the size of the original in bytes.
	FileSize int64 `json:"fileSize"`

	// MimeType is the declared MIME type of the original.
	MimeType string `json:"mimeType"`

	// Latitude and Longitude optionally geolocate the capture.
	// Invariant: either both are set or both are nil.
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`

	// CapturedAt is the client-supplied capture timestamp, defaulting to
	// the upload time when the client did not supply one.
	CapturedAt time.Time `json:"capturedAt"`

	// UploadedAt is the server-assigned upload timestamp.
	UploadedAt time.Time `json:"uploadedAt"`

	// Project is the minimal projection of the parent project.
	// Populated on upload and retrieval responses.
	Project *ProjectRef `json:"project,omitempty"`
}

// TableName returns the name of the database table
// associated with the Media model.
func (m Media) TableName() string {
	return "media"
}

// MediaFilter narrows a media listing. UserID is mandatory; the other
// fields are optional.
type MediaFilter struct {
	UserID    string
	ProjectID string
	FileType  string
}
