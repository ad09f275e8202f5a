package store

import (
	"context"
	"io"

	"github.com/ayakimov/fielddoc/models"
)

// UserRepository persists and retrieves user accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	FindUserByID(ctx context.Context, userID string) (models.User, error)
}

// ProjectRepository persists and retrieves projects. Every read and write is
// scoped by the owning user's ID: a project that belongs to another user is
// reported as [ErrProjectNotFound], never as a distinct authorization error.
type ProjectRepository interface {
	CreateProject(ctx context.Context, project models.Project) (models.Project, error)
	GetProjects(ctx context.Context, userID string) ([]models.Project, error)
	GetProject(ctx context.Context, projectID, userID string) (models.Project, error)
	UpdateProject(ctx context.Context, projectID, userID string, update models.ProjectUpdate) (models.Project, error)
	DeleteProject(ctx context.Context, projectID, userID string) error
}

// MediaRepository persists and retrieves media records. Reads and deletes are
// scoped by the uploading user's ID.
type MediaRepository interface {
	CreateMedia(ctx context.Context, media models.Media) (models.Media, error)
	GetMedia(ctx context.Context, mediaID, userID string) (models.Media, error)
	ListMedia(ctx context.Context, filter models.MediaFilter) ([]models.Media, error)
	DeleteMedia(ctx context.Context, mediaID, userID string) error
}

// NoteRepository persists and retrieves project notes. Ownership of the
// enclosing project is checked by the service layer before any call here,
// so methods are scoped by project ID only.
type NoteRepository interface {
	CreateNote(ctx context.Context, note models.Note) (models.Note, error)
	GetNotes(ctx context.Context, projectID string) ([]models.Note, error)
	DeleteNote(ctx context.Context, noteID, projectID string) error
}

// PhotoRepository persists and retrieves records of the legacy photo
// subsystem, backed by SQLite. Photo IDs are auto-incremented integers,
// unlike the UUIDs used everywhere else.
type PhotoRepository interface {
	CreatePhoto(ctx context.Context, photo models.Photo) (models.Photo, error)
	GetPhotos(ctx context.Context, projectID string) ([]models.Photo, error)
	GetPhoto(ctx context.Context, photoID int64, projectID string) (models.Photo, error)
	DeletePhoto(ctx context.Context, photoID int64, projectID string) error
}

// FileStorage persists uploaded binaries on the local filesystem.
//
// Save places a file under the per-user, per-project directory resolved from
// the configured upload root. SaveRoot places a file directly under the
// upload root (used by the legacy photo subsystem, which keeps a flat
// layout). Both return the absolute path of the stored file and the number
// of bytes written.
type FileStorage interface {
	Root() string
	Resolve(userID, projectID string) (string, error)
	Save(userID, projectID, filename string, src io.Reader) (string, int64, error)
	SaveRoot(filename string, src io.Reader) (string, int64, error)
	Open(path string) (io.ReadSeekCloser, error)
	Exists(path string) bool
	Delete(path string) error
}
