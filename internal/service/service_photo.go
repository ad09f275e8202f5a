package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/ayakimov/fielddoc/internal/logger"
	"github.com/ayakimov/fielddoc/internal/store"
	"github.com/ayakimov/fielddoc/models"
	"github.com/google/uuid"
)

// maxPhotoSize is the upload limit of the legacy photo subsystem, which
// predates the configurable limit used by the media pipeline.
const maxPhotoSize = 20 << 20 // 20 MiB

// photoService is the concrete implementation of PhotoService, the legacy
// photo subsystem kept alive for older clients. It differs from the media
// pipeline on purpose: SQLite records with integer IDs, random flat
// filenames under the upload root, images only, and no thumbnails.
//
// Project ownership is still resolved against the primary project store, so
// the two subsystems agree on who may see what.
type photoService struct {
	photoRepository   store.PhotoRepository
	projectRepository store.ProjectRepository
	files             store.FileStorage
	logger            *logger.Logger
}

// NewPhotoService constructs a PhotoService wired to the given repositories
// and file storage.
func NewPhotoService(photoRepository store.PhotoRepository, projectRepository store.ProjectRepository, files store.FileStorage, logger *logger.Logger) PhotoService {
	return &photoService{
		photoRepository:   photoRepository,
		projectRepository: projectRepository,
		files:             files,
		logger:            logger,
	}
}

// UploadPhoto ingests one image into the legacy photo subsystem.
//
// The file is stored directly under the upload root as "<uuid><ext>"; the
// original name survives only in the database record. If the record insert
// fails the staged file is removed best-effort.
//
// Returns the persisted photo or:
//   - ErrInvalidDataProvided if the request is incomplete.
//   - ErrInvalidFileType for non-image MIME types.
//   - ErrFileTooLarge above the fixed 20 MiB limit.
//   - A wrapped store.ErrProjectNotFound if the project is missing or
//     belongs to another user.
func (s *photoService) UploadPhoto(ctx context.Context, userID string, req PhotoUploadRequest) (models.Photo, error) {
	log := logger.FromContext(ctx)

	if userID == "" || req.ProjectID == "" || req.OriginalName == "" || req.MimeType == "" || req.Content == nil {
		log.Error().Str("project_id", req.ProjectID).Msg("invalid photo upload request provided")
		return models.Photo{}, ErrInvalidDataProvided
	}

	if _, err := s.projectRepository.GetProject(ctx, req.ProjectID, userID); err != nil {
		log.Err(err).Str("project_id", req.ProjectID).Msg("photo target project lookup failed")
		return models.Photo{}, fmt.Errorf("photo target project lookup failed: %w", err)
	}

	if !strings.HasPrefix(req.MimeType, "image/") {
		log.Error().Str("mime_type", req.MimeType).Msg("file type is not allowed")
		return models.Photo{}, ErrInvalidFileType
	}

	if req.Size > maxPhotoSize {
		log.Error().Int64("size", req.Size).Msg("file is too large")
		return models.Photo{}, ErrFileTooLarge
	}

	filename := uuid.NewString() + filepath.Ext(req.OriginalName)

	path, written, err := s.files.SaveRoot(filename, req.Content)
	if err != nil {
		log.Err(err).Str("project_id", req.ProjectID).Msg("photo persistence failed")
		return models.Photo{}, fmt.Errorf("photo persistence failed: %w", err)
	}

	photo, err := s.photoRepository.CreatePhoto(ctx, models.Photo{
		ProjectID:    req.ProjectID,
		Filename:     filename,
		OriginalName: req.OriginalName,
		MimeType:     req.MimeType,
		Size:         written,
		UploadedAt:   time.Now(),
	})
	if err != nil {
		if removeErr := s.files.Delete(path); removeErr != nil {
			log.Err(removeErr).Str("path", path).Msg("failed to remove staged photo file")
		}
		log.Err(err).Str("project_id", req.ProjectID).Msg("photo record creation ended with error")
		return models.Photo{}, fmt.Errorf("photo record creation ended with error: %w", err)
	}

	return photo, nil
}

// GetPhotos returns all legacy photos of a project owned by the user,
// newest first.
func (s *photoService) GetPhotos(ctx context.Context, userID, projectID string) ([]models.Photo, error) {
	log := logger.FromContext(ctx)

	if _, err := s.projectRepository.GetProject(ctx, projectID, userID); err != nil {
		log.Err(err).Str("project_id", projectID).Msg("photo listing project lookup failed")
		return nil, fmt.Errorf("photo listing project lookup failed: %w", err)
	}

	photos, err := s.photoRepository.GetPhotos(ctx, projectID)
	if err != nil {
		log.Err(err).Str("project_id", projectID).Msg("photo listing ended with error")
		return nil, fmt.Errorf("photo listing ended with error: %w", err)
	}

	return photos, nil
}

// OpenPhoto opens the binary of one legacy photo for streaming.
func (s *photoService) OpenPhoto(ctx context.Context, userID, projectID string, photoID int64) (io.ReadSeekCloser, models.Photo, error) {
	log := logger.FromContext(ctx)

	if _, err := s.projectRepository.GetProject(ctx, projectID, userID); err != nil {
		log.Err(err).Str("project_id", projectID).Msg("photo open project lookup failed")
		return nil, models.Photo{}, fmt.Errorf("photo open project lookup failed: %w", err)
	}

	photo, err := s.photoRepository.GetPhoto(ctx, photoID, projectID)
	if err != nil {
		log.Err(err).Int64("photo_id", photoID).Msg("photo lookup ended with error")
		return nil, models.Photo{}, fmt.Errorf("photo lookup ended with error: %w", err)
	}

	f, err := s.files.Open(s.photoPath(photo))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, models.Photo{}, store.ErrPhotoNotFound
		}
		return nil, models.Photo{}, fmt.Errorf("photo file open ended with error: %w", err)
	}

	return f, photo, nil
}

// DeletePhoto removes one legacy photo owned by the user: the file first,
// best-effort, then the record.
func (s *photoService) DeletePhoto(ctx context.Context, userID, projectID string, photoID int64) error {
	log := logger.FromContext(ctx)

	if _, err := s.projectRepository.GetProject(ctx, projectID, userID); err != nil {
		log.Err(err).Str("project_id", projectID).Msg("photo deletion project lookup failed")
		return fmt.Errorf("photo deletion project lookup failed: %w", err)
	}

	photo, err := s.photoRepository.GetPhoto(ctx, photoID, projectID)
	if err != nil {
		log.Err(err).Int64("photo_id", photoID).Msg("photo lookup ended with error")
		return fmt.Errorf("photo lookup ended with error: %w", err)
	}

	if removeErr := s.files.Delete(s.photoPath(photo)); removeErr != nil {
		log.Err(removeErr).Str("filename", photo.Filename).Msg("failed to remove photo file")
	}

	if err = s.photoRepository.DeletePhoto(ctx, photoID, projectID); err != nil {
		log.Err(err).Int64("photo_id", photoID).Msg("photo deletion ended with error")
		return fmt.Errorf("photo deletion ended with error: %w", err)
	}

	return nil
}

// photoPath resolves the flat on-disk location of a legacy photo from its
// stored filename.
func (s *photoService) photoPath(photo models.Photo) string {
	return filepath.Join(s.files.Root(), filepath.Base(photo.Filename))
}
