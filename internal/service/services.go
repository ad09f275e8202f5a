package service

import (
	"github.com/ayakimov/fielddoc/internal/config"
	"github.com/ayakimov/fielddoc/internal/logger"
	"github.com/ayakimov/fielddoc/internal/store"
)

type Services struct {
	AuthService    AuthService
	ProjectService ProjectService
	MediaService   MediaService
	NoteService    NoteService
	PhotoService   PhotoService
}

func NewServices(storages *store.Storages, cfg *config.StructuredConfig, logger *logger.Logger) *Services {
	thumbnails := NewThumbnailDeriver(storages.Files, logger)

	return &Services{
		AuthService:    NewAuthService(storages.UserRepository, cfg.Auth, logger),
		ProjectService: NewProjectService(storages.ProjectRepository, storages.MediaRepository, storages.Files, logger),
		MediaService:   NewMediaService(storages.MediaRepository, storages.ProjectRepository, storages.Files, thumbnails, cfg.Storage.Files, logger),
		NoteService:    NewNoteService(storages.NoteRepository, storages.ProjectRepository, logger),
		PhotoService:   NewPhotoService(storages.PhotoRepository, storages.ProjectRepository, storages.Files, logger),
	}
}
