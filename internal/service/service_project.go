package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/ayakimov/fielddoc/internal/logger"
	"github.com/ayakimov/fielddoc/internal/store"
	"github.com/ayakimov/fielddoc/models"
)

// projectService is the concrete implementation of ProjectService. Besides
// plain CRUD it owns the cleanup of files left on disk after a project is
// removed: database records vanish through ON DELETE CASCADE, media binaries
// do not.
type projectService struct {
	projectRepository store.ProjectRepository
	mediaRepository   store.MediaRepository
	files             store.FileStorage
	logger            *logger.Logger
}

// NewProjectService constructs a ProjectService wired to the given
// repositories and file storage.
func NewProjectService(projectRepository store.ProjectRepository, mediaRepository store.MediaRepository, files store.FileStorage, logger *logger.Logger) ProjectService {
	return &projectService{
		projectRepository: projectRepository,
		mediaRepository:   mediaRepository,
		files:             files,
		logger:            logger,
	}
}

// CreateProject validates and persists a new project. The name is stored
// trimmed.
//
// Returns the persisted project or:
//   - ErrInvalidDataProvided if the name is empty or whitespace only, or
//     UserID is missing.
//   - ErrInvalidCoordinates if only one of latitude/longitude is set.
func (s *projectService) CreateProject(ctx context.Context, project models.Project) (models.Project, error) {
	log := logger.FromContext(ctx)

	project.Name = strings.TrimSpace(project.Name)
	if project.Name == "" || project.UserID == "" {
		log.Error().Str("user_id", project.UserID).Msg("invalid project data provided")
		return models.Project{}, ErrInvalidDataProvided
	}

	if (project.Latitude == nil) != (project.Longitude == nil) {
		return models.Project{}, ErrInvalidCoordinates
	}

	created, err := s.projectRepository.CreateProject(ctx, project)
	if err != nil {
		log.Err(err).Str("user_id", project.UserID).Msg("project creation ended with error")
		return models.Project{}, fmt.Errorf("project creation ended with error: %w", err)
	}

	return created, nil
}

// GetProjects returns all projects owned by the user, newest first, each
// with its media count.
func (s *projectService) GetProjects(ctx context.Context, userID string) ([]models.Project, error) {
	log := logger.FromContext(ctx)

	projects, err := s.projectRepository.GetProjects(ctx, userID)
	if err != nil {
		log.Err(err).Str("user_id", userID).Msg("project listing ended with error")
		return nil, fmt.Errorf("project listing ended with error: %w", err)
	}

	return projects, nil
}

// GetProject returns one project owned by the user together with its media,
// newest upload first.
//
// A project that does not exist or belongs to another user surfaces as
// store.ErrProjectNotFound.
func (s *projectService) GetProject(ctx context.Context, projectID, userID string) (models.Project, error) {
	log := logger.FromContext(ctx)

	project, err := s.projectRepository.GetProject(ctx, projectID, userID)
	if err != nil {
		log.Err(err).Str("project_id", projectID).Msg("project lookup ended with error")
		return models.Project{}, fmt.Errorf("project lookup ended with error: %w", err)
	}

	media, err := s.mediaRepository.ListMedia(ctx, models.MediaFilter{UserID: userID, ProjectID: projectID})
	if err != nil {
		log.Err(err).Str("project_id", projectID).Msg("project media listing ended with error")
		return models.Project{}, fmt.Errorf("project media listing ended with error: %w", err)
	}
	project.Media = media

	return project, nil
}

// UpdateProject applies a partial update to a project owned by the user. A
// renamed project keeps the trimmed name; a whitespace-only name is rejected.
func (s *projectService) UpdateProject(ctx context.Context, projectID, userID string, update models.ProjectUpdate) (models.Project, error) {
	log := logger.FromContext(ctx)

	if update.Name != nil {
		trimmed := strings.TrimSpace(*update.Name)
		if trimmed == "" {
			return models.Project{}, ErrInvalidDataProvided
		}
		update.Name = &trimmed
	}

	updated, err := s.projectRepository.UpdateProject(ctx, projectID, userID, update)
	if err != nil {
		log.Err(err).Str("project_id", projectID).Msg("project update ended with error")
		return models.Project{}, fmt.Errorf("project update ended with error: %w", err)
	}

	return updated, nil
}

// DeleteProject removes a project owned by the user. Media and note records
// go with it through ON DELETE CASCADE; the media files and thumbnails left
// on disk are removed best-effort afterwards, so a failed file removal never
// undoes the database deletion.
func (s *projectService) DeleteProject(ctx context.Context, projectID, userID string) error {
	log := logger.FromContext(ctx)

	// snapshot file paths before the cascade wipes the records
	media, err := s.mediaRepository.ListMedia(ctx, models.MediaFilter{UserID: userID, ProjectID: projectID})
	if err != nil {
		log.Err(err).Str("project_id", projectID).Msg("project media listing ended with error")
		return fmt.Errorf("project media listing ended with error: %w", err)
	}

	if err = s.projectRepository.DeleteProject(ctx, projectID, userID); err != nil {
		log.Err(err).Str("project_id", projectID).Msg("project deletion ended with error")
		return fmt.Errorf("project deletion ended with error: %w", err)
	}

	for _, item := range media {
		if removeErr := s.files.Delete(item.FilePath); removeErr != nil {
			log.Err(removeErr).Str("path", item.FilePath).Msg("failed to remove media file")
		}
		if item.ThumbnailPath != nil {
			if removeErr := s.files.Delete(*item.ThumbnailPath); removeErr != nil {
				log.Err(removeErr).Str("path", *item.ThumbnailPath).Msg("failed to remove thumbnail file")
			}
		}
	}

	return nil
}
