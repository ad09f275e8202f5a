package store

import (
	"context"
	"fmt"

	"github.com/ayakimov/fielddoc/internal/config"
	"github.com/ayakimov/fielddoc/internal/logger"
)

// Storages bundles every persistence backend the application uses: the
// PostgreSQL repositories for the primary data model, the SQLite repository
// for the legacy photo subsystem, and the filesystem storage for binaries.
type Storages struct {
	UserRepository    UserRepository
	ProjectRepository ProjectRepository
	MediaRepository   MediaRepository
	NoteRepository    NoteRepository
	PhotoRepository   PhotoRepository
	Files             FileStorage
}

// NewStorages connects to all configured backends and constructs the full
// repository set. The primary database is migrated to the latest schema
// before any repository is handed out.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	db, err := NewConnectPostgres(ctx, cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("error connecting to primary database: %w", err)
	}

	if err = db.Migrate(); err != nil {
		return nil, fmt.Errorf("error migrating primary database: %w", err)
	}

	photoDB, err := NewConnectSQLite(ctx, cfg.PhotoDB, log)
	if err != nil {
		return nil, fmt.Errorf("error connecting to photo database: %w", err)
	}

	files, err := NewFileStorage(cfg.Files, log)
	if err != nil {
		return nil, fmt.Errorf("error initializing file storage: %w", err)
	}

	return &Storages{
		UserRepository:    NewUserRepository(db, log),
		ProjectRepository: NewProjectRepository(db, log),
		MediaRepository:   NewMediaRepository(db, log),
		NoteRepository:    NewNoteRepository(db, log),
		PhotoRepository:   NewPhotoRepository(photoDB, log),
		Files:             files,
	}, nil
}
