package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ayakimov/fielddoc/internal/logger"
	"github.com/ayakimov/fielddoc/models"
)

// photoRepository is the SQLite-backed implementation of [PhotoRepository]
// for the legacy photo subsystem. SQLite has no RETURNING support in the
// driver configuration used here, so inserts read back the generated row ID
// via LastInsertId.
type photoRepository struct {
	*DB
	logger *logger.Logger
}

// NewPhotoRepository constructs a [PhotoRepository] backed by the provided
// SQLite connection and logger.
func NewPhotoRepository(db *DB, logger *logger.Logger) PhotoRepository {
	logger.Debug().Msg("creating photo repository")
	return &photoRepository{
		DB:     db,
		logger: logger,
	}
}

// CreatePhoto persists a new legacy photo record and returns it with the
// auto-incremented PhotoID filled in.
func (r *photoRepository) CreatePhoto(ctx context.Context, photo models.Photo) (models.Photo, error) {
	log := logger.FromContext(ctx)

	result, err := r.ExecContext(ctx, createPhoto,
		photo.ProjectID, photo.Filename, photo.OriginalName, photo.MimeType, photo.Size, photo.UploadedAt)
	if err != nil {
		log.Err(err).
			Str("func", "photoRepository.CreatePhoto").
			Str("project_id", photo.ProjectID).
			Msg("failed to insert photo record")
		return models.Photo{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	photo.PhotoID, err = result.LastInsertId()
	if err != nil {
		log.Err(err).
			Str("func", "photoRepository.CreatePhoto").
			Msg("failed to read generated photo id")
		return models.Photo{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return photo, nil
}

// GetPhotos retrieves all legacy photos of the given project, newest first.
func (r *photoRepository) GetPhotos(ctx context.Context, projectID string) ([]models.Photo, error) {
	log := logger.FromContext(ctx)

	rows, err := r.QueryContext(ctx, getPhotos, projectID)
	if err != nil {
		log.Err(err).
			Str("func", "photoRepository.GetPhotos").
			Str("project_id", projectID).
			Msg("failed to execute query for listing photos")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	photos := make([]models.Photo, 0, 20)

	for rows.Next() {
		var photo models.Photo

		scanErr := rows.Scan(
			&photo.PhotoID,
			&photo.ProjectID,
			&photo.Filename,
			&photo.OriginalName,
			&photo.MimeType,
			&photo.Size,
			&photo.UploadedAt,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "photoRepository.GetPhotos").
				Str("project_id", projectID).
				Msg("failed to scan photo row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}

		photos = append(photos, photo)
	}

	if err = rows.Err(); err != nil {
		log.Err(err).
			Str("func", "photoRepository.GetPhotos").
			Str("project_id", projectID).
			Msg("row iteration error")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return photos, nil
}

// GetPhoto retrieves a single legacy photo scoped to the given project.
//
// Error handling:
//   - sql.ErrNoRows → [ErrPhotoNotFound].
func (r *photoRepository) GetPhoto(ctx context.Context, photoID int64, projectID string) (models.Photo, error) {
	log := logger.FromContext(ctx)

	var photo models.Photo
	row := r.QueryRowContext(ctx, getPhoto, photoID, projectID)

	if err := row.Scan(
		&photo.PhotoID,
		&photo.ProjectID,
		&photo.Filename,
		&photo.OriginalName,
		&photo.MimeType,
		&photo.Size,
		&photo.UploadedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Photo{}, ErrPhotoNotFound
		}

		log.Err(err).
			Str("func", "photoRepository.GetPhoto").
			Int64("photo_id", photoID).
			Msg("failed to scan photo row")
		return models.Photo{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return photo, nil
}

// DeletePhoto removes a legacy photo record within the given project.
//
// Error handling:
//   - zero affected rows → [ErrPhotoNotFound].
func (r *photoRepository) DeletePhoto(ctx context.Context, photoID int64, projectID string) error {
	log := logger.FromContext(ctx)

	result, err := r.ExecContext(ctx, deletePhoto, photoID, projectID)
	if err != nil {
		log.Err(err).
			Str("func", "photoRepository.DeletePhoto").
			Int64("photo_id", photoID).
			Msg("failed to delete photo record")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrPhotoNotFound
	}

	return nil
}
