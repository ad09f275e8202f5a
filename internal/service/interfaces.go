package service

import (
	"context"
	"io"
	"time"

	"github.com/ayakimov/fielddoc/models"
)

type AuthService interface {
	RegisterUser(ctx context.Context, email, password string, name *string) (models.User, error)
	Login(ctx context.Context, email, password string) (models.User, error)
	CreateTokens(ctx context.Context, user models.User) (models.TokenPair, error)
	RefreshAccessToken(ctx context.Context, refreshToken string) (models.Token, error)
	ParseAccessToken(ctx context.Context, tokenString string) (models.Token, error)
}

type ProjectService interface {
	CreateProject(ctx context.Context, project models.Project) (models.Project, error)
	GetProjects(ctx context.Context, userID string) ([]models.Project, error)
	GetProject(ctx context.Context, projectID, userID string) (models.Project, error)
	UpdateProject(ctx context.Context, projectID, userID string, update models.ProjectUpdate) (models.Project, error)
	DeleteProject(ctx context.Context, projectID, userID string) error
}

// UploadRequest carries everything the media service needs to ingest one
// uploaded file: the authenticated uploader, the target project, metadata
// declared by the client, and the file content itself.
type UploadRequest struct {
	UserID    string
	ProjectID string

	// OriginalName is the client-side filename; it is embedded into the
	// stored name after sanitization.
	OriginalName string

	MimeType string
	Size     int64

	// Latitude and Longitude must be provided together or not at all.
	Latitude  *float64
	Longitude *float64

	// CapturedAt defaults to the upload time when nil.
	CapturedAt *time.Time

	Content io.Reader
}

type MediaService interface {
	Upload(ctx context.Context, req UploadRequest) (models.Media, error)
	ListMedia(ctx context.Context, filter models.MediaFilter) ([]models.Media, error)
	GetMedia(ctx context.Context, mediaID, userID string) (models.Media, error)
	OpenFile(ctx context.Context, mediaID, userID string) (io.ReadSeekCloser, models.Media, error)
	OpenThumbnail(ctx context.Context, mediaID, userID string) (io.ReadSeekCloser, models.Media, error)
	DeleteMedia(ctx context.Context, mediaID, userID string) error
}

// ThumbnailDeriver produces a reduced-size preview of an already stored
// image and persists it next to the original.
type ThumbnailDeriver interface {
	Derive(ctx context.Context, userID, projectID, storedPath string) (string, error)
}

type NoteService interface {
	CreateNote(ctx context.Context, userID string, note models.Note) (models.Note, error)
	GetNotes(ctx context.Context, userID, projectID string) ([]models.Note, error)
	DeleteNote(ctx context.Context, userID, noteID, projectID string) error
}

// PhotoUploadRequest carries one file destined for the legacy photo
// subsystem.
type PhotoUploadRequest struct {
	ProjectID    string
	OriginalName string
	MimeType     string
	Size         int64
	Content      io.Reader
}

type PhotoService interface {
	UploadPhoto(ctx context.Context, userID string, req PhotoUploadRequest) (models.Photo, error)
	GetPhotos(ctx context.Context, userID, projectID string) ([]models.Photo, error)
	OpenPhoto(ctx context.Context, userID, projectID string, photoID int64) (io.ReadSeekCloser, models.Photo, error)
	DeletePhoto(ctx context.Context, userID, projectID string, photoID int64) error
}
