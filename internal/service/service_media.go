// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Anton Yakimov

package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"path/filepath"
	"time"

	"github.com/ayakimov/fielddoc/internal/config"
	"github.com/ayakimov/fielddoc/internal/logger"
	"github.com/ayakimov/fielddoc/internal/store"
	"github.com/ayakimov/fielddoc/models"
)

// mediaService is the concrete implementation of MediaService. It
// orchestrates the upload pipeline: ownership check, validation, file
// persistence, thumbnail derivation, and the final database record, with
// staged files rolled back when the record cannot be written.
type mediaService struct {
	mediaRepository   store.MediaRepository
	projectRepository store.ProjectRepository
	files             store.FileStorage
	thumbnails        ThumbnailDeriver
	cfg               config.Files
	logger            *logger.Logger
}

// NewMediaService constructs a MediaService wired to the given repositories,
// file storage, and thumbnail deriver. Upload limits and MIME allow-lists
// come from cfg.
func NewMediaService(mediaRepository store.MediaRepository, projectRepository store.ProjectRepository, files store.FileStorage, thumbnails ThumbnailDeriver, cfg config.Files, logger *logger.Logger) MediaService {
	return &mediaService{
		mediaRepository:   mediaRepository,
		projectRepository: projectRepository,
		files:             files,
		thumbnails:        thumbnails,
		cfg:               cfg,
		logger:            logger,
	}
}

// Upload ingests one uploaded file into the target project.
//
// Checks run in a fixed order, cheapest first, before anything touches the
// disk:
//  1. request completeness → ErrInvalidDataProvided
//  2. project ownership → store.ErrProjectNotFound (foreign projects look missing)
//  3. MIME allow-list → ErrInvalidFileType
//  4. declared size against the configured limit → ErrFileTooLarge
//  5. coordinate pairing and finiteness → ErrInvalidCoordinates
//
// The file is stored as "<epoch-millis>-<original-name>". For photos a
// thumbnail is derived afterwards; derivation failure is tolerated and the
// record is written without a thumbnail. If the database insert fails, the
// staged file and thumbnail are removed best-effort so no orphans remain.
func (s *mediaService) Upload(ctx context.Context, req UploadRequest) (models.Media, error) {
	log := logger.FromContext(ctx)

	if req.UserID == "" || req.ProjectID == "" || req.OriginalName == "" || req.MimeType == "" || req.Content == nil {
		log.Error().Str("project_id", req.ProjectID).Msg("invalid upload request provided")
		return models.Media{}, ErrInvalidDataProvided
	}

	project, err := s.projectRepository.GetProject(ctx, req.ProjectID, req.UserID)
	if err != nil {
		log.Err(err).Str("project_id", req.ProjectID).Msg("upload target project lookup failed")
		return models.Media{}, fmt.Errorf("upload target project lookup failed: %w", err)
	}

	if !s.cfg.AllowedMIME(req.MimeType) {
		log.Error().Str("mime_type", req.MimeType).Msg("file type is not allowed")
		return models.Media{}, ErrInvalidFileType
	}

	if s.cfg.MaxFileSize > 0 && req.Size > s.cfg.MaxFileSize {
		log.Error().Int64("size", req.Size).Int64("limit", s.cfg.MaxFileSize).Msg("file is too large")
		return models.Media{}, ErrFileTooLarge
	}

	if (req.Latitude == nil) != (req.Longitude == nil) {
		return models.Media{}, ErrInvalidCoordinates
	}
	// NaN/Inf would survive the pairing check but break JSON encoding of
	// the stored record
	if req.Latitude != nil && (!isFinite(*req.Latitude) || !isFinite(*req.Longitude)) {
		return models.Media{}, ErrInvalidCoordinates
	}

	storedName := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), filepath.Base(req.OriginalName))

	path, written, err := s.files.Save(req.UserID, req.ProjectID, storedName, req.Content)
	if err != nil {
		log.Err(err).Str("project_id", req.ProjectID).Msg("file persistence failed")
		return models.Media{}, fmt.Errorf("file persistence failed: %w", err)
	}

	fileType := models.FileTypeForMIME(req.MimeType)

	var thumbnailPath *string
	if fileType == models.FileTypePhoto {
		thumbPath, thumbErr := s.thumbnails.Derive(ctx, req.UserID, req.ProjectID, path)
		if thumbErr != nil {
			// a media record without a preview beats a failed upload
			log.Err(thumbErr).Str("path", path).Msg("thumbnail derivation failed, continuing without preview")
		} else {
			thumbnailPath = &thumbPath
		}
	}

	capturedAt := time.Now()
	if req.CapturedAt != nil {
		capturedAt = *req.CapturedAt
	}

	media, err := s.mediaRepository.CreateMedia(ctx, models.Media{
		ProjectID:     req.ProjectID,
		UserID:        req.UserID,
		FileType:      fileType,
		FilePath:      path,
		ThumbnailPath: thumbnailPath,
		FileSize:      written,
		MimeType:      req.MimeType,
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
		CapturedAt:    capturedAt,
	})
	if err != nil {
		s.removeStagedFiles(log, path, thumbnailPath)
		log.Err(err).Str("project_id", req.ProjectID).Msg("media record creation ended with error")
		return models.Media{}, fmt.Errorf("media record creation ended with error: %w", err)
	}

	media.Project = &models.ProjectRef{ProjectID: project.ProjectID, Name: project.Name}

	return media, nil
}

// isFinite reports whether v is an ordinary float: not NaN and not infinite.
func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// ListMedia returns all media records of the user matching the filter,
// newest upload first.
func (s *mediaService) ListMedia(ctx context.Context, filter models.MediaFilter) ([]models.Media, error) {
	log := logger.FromContext(ctx)

	results, err := s.mediaRepository.ListMedia(ctx, filter)
	if err != nil {
		log.Err(err).Str("user_id", filter.UserID).Msg("media listing ended with error")
		return nil, fmt.Errorf("media listing ended with error: %w", err)
	}

	return results, nil
}

// GetMedia returns one media record owned by the user.
func (s *mediaService) GetMedia(ctx context.Context, mediaID, userID string) (models.Media, error) {
	log := logger.FromContext(ctx)

	media, err := s.mediaRepository.GetMedia(ctx, mediaID, userID)
	if err != nil {
		log.Err(err).Str("media_id", mediaID).Msg("media lookup ended with error")
		return models.Media{}, fmt.Errorf("media lookup ended with error: %w", err)
	}

	return media, nil
}

// OpenFile opens the original binary of a media record for streaming. A
// record whose file has gone missing on disk reports store.ErrMediaNotFound
// instead of an internal error.
func (s *mediaService) OpenFile(ctx context.Context, mediaID, userID string) (io.ReadSeekCloser, models.Media, error) {
	media, err := s.GetMedia(ctx, mediaID, userID)
	if err != nil {
		return nil, models.Media{}, err
	}

	f, err := s.files.Open(media.FilePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, models.Media{}, store.ErrMediaNotFound
		}
		return nil, models.Media{}, fmt.Errorf("media file open ended with error: %w", err)
	}

	return f, media, nil
}

// OpenThumbnail opens the thumbnail of a media record for streaming. When
// the record carries no thumbnail, or the thumbnail file has gone missing,
// the original file is served instead.
func (s *mediaService) OpenThumbnail(ctx context.Context, mediaID, userID string) (io.ReadSeekCloser, models.Media, error) {
	media, err := s.GetMedia(ctx, mediaID, userID)
	if err != nil {
		return nil, models.Media{}, err
	}

	if media.ThumbnailPath != nil && s.files.Exists(*media.ThumbnailPath) {
		f, openErr := s.files.Open(*media.ThumbnailPath)
		if openErr == nil {
			return f, media, nil
		}
		logger.FromContext(ctx).Err(openErr).Str("path", *media.ThumbnailPath).Msg("thumbnail open failed, falling back to original")
	}

	// reflect what is actually served so callers can pick the right
	// content type
	media.ThumbnailPath = nil

	f, err := s.files.Open(media.FilePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, models.Media{}, store.ErrMediaNotFound
		}
		return nil, models.Media{}, fmt.Errorf("media file open ended with error: %w", err)
	}

	return f, media, nil
}

// DeleteMedia removes a media record owned by the user together with its
// files. Files go first, best-effort and independently of each other, so a
// half-missing pair on disk cannot block record removal. Deleting the same
// media twice reports store.ErrMediaNotFound on the second attempt.
func (s *mediaService) DeleteMedia(ctx context.Context, mediaID, userID string) error {
	log := logger.FromContext(ctx)

	media, err := s.GetMedia(ctx, mediaID, userID)
	if err != nil {
		return err
	}

	s.removeStagedFiles(log, media.FilePath, media.ThumbnailPath)

	if err = s.mediaRepository.DeleteMedia(ctx, mediaID, userID); err != nil {
		log.Err(err).Str("media_id", mediaID).Msg("media deletion ended with error")
		return fmt.Errorf("media deletion ended with error: %w", err)
	}

	return nil
}

// removeStagedFiles deletes the original and thumbnail files best-effort;
// failures are logged and swallowed.
func (s *mediaService) removeStagedFiles(log *logger.Logger, path string, thumbnailPath *string) {
	if err := s.files.Delete(path); err != nil {
		log.Err(err).Str("path", path).Msg("failed to remove media file")
	}
	if thumbnailPath != nil {
		if err := s.files.Delete(*thumbnailPath); err != nil {
			log.Err(err).Str("path", *thumbnailPath).Msg("failed to remove thumbnail file")
		}
	}
}
