package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/ayakimov/fielddoc/internal/logger"
	"github.com/ayakimov/fielddoc/models"
)

// mediaRepository is the PostgreSQL-backed implementation of
// [MediaRepository]. Listing uses a dynamically built query so that the
// optional project and file-type filters only appear in the WHERE clause
// when actually set.
type mediaRepository struct {
	*DB
	logger *logger.Logger
}

// NewMediaRepository constructs a [MediaRepository] backed by the provided
// database connection and logger.
func NewMediaRepository(db *DB, logger *logger.Logger) MediaRepository {
	logger.Debug().Msg("creating media repository")
	return &mediaRepository{
		DB:     db,
		logger: logger,
	}
}

// CreateMedia persists a new media record and returns the fully populated
// [models.Media] with server-assigned fields (MediaID, UploadedAt).
func (r *mediaRepository) CreateMedia(ctx context.Context, media models.Media) (models.Media, error) {
	log := logger.FromContext(ctx)

	row := r.QueryRowContext(ctx, createMedia,
		media.ProjectID, media.UserID, media.FileType, media.FilePath, media.ThumbnailPath,
		media.FileSize, media.MimeType, media.Latitude, media.Longitude, media.CapturedAt)

	if err := row.Scan(
		&media.MediaID,
		&media.ProjectID,
		&media.UserID,
		&media.FileType,
		&media.FilePath,
		&media.ThumbnailPath,
		&media.FileSize,
		&media.MimeType,
		&media.Latitude,
		&media.Longitude,
		&media.CapturedAt,
		&media.UploadedAt,
	); err != nil {
		log.Err(err).
			Str("func", "mediaRepository.CreateMedia").
			Str("project_id", media.ProjectID).
			Msg("failed to insert media record")
		return models.Media{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return media, nil
}

// GetMedia retrieves a single media record by ID, scoped to the uploading
// user, together with a reference to its enclosing project.
//
// Error handling:
//   - sql.ErrNoRows → [ErrMediaNotFound].
func (r *mediaRepository) GetMedia(ctx context.Context, mediaID, userID string) (models.Media, error) {
	log := logger.FromContext(ctx)

	var (
		media   models.Media
		project models.ProjectRef
	)
	row := r.QueryRowContext(ctx, getMedia, mediaID, userID)

	if err := row.Scan(
		&media.MediaID,
		&media.ProjectID,
		&media.UserID,
		&media.FileType,
		&media.FilePath,
		&media.ThumbnailPath,
		&media.FileSize,
		&media.MimeType,
		&media.Latitude,
		&media.Longitude,
		&media.CapturedAt,
		&media.UploadedAt,
		&project.ProjectID,
		&project.Name,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Media{}, ErrMediaNotFound
		}

		log.Err(err).
			Str("func", "mediaRepository.GetMedia").
			Str("media_id", mediaID).
			Msg("failed to scan media row")
		return models.Media{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	media.Project = &project

	return media, nil
}

// ListMedia retrieves all media records matching the filter, newest upload
// first. Filtering is always applied by UserID; ProjectID and FileType
// narrow the result only when non-empty.
func (r *mediaRepository) ListMedia(ctx context.Context, filter models.MediaFilter) ([]models.Media, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListMediaQuery(filter)
	if err != nil {
		log.Err(err).
			Str("func", "mediaRepository.ListMedia").
			Str("user_id", filter.UserID).
			Msg("failed to create query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "mediaRepository.ListMedia").
			Str("user_id", filter.UserID).
			Msg("failed to execute query for listing media")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	results := make([]models.Media, 0, 50)

	for rows.Next() {
		var (
			item    models.Media
			project models.ProjectRef
		)

		scanErr := rows.Scan(
			&item.MediaID,
			&item.ProjectID,
			&item.UserID,
			&item.FileType,
			&item.FilePath,
			&item.ThumbnailPath,
			&item.FileSize,
			&item.MimeType,
			&item.Latitude,
			&item.Longitude,
			&item.CapturedAt,
			&item.UploadedAt,
			&project.ProjectID,
			&project.Name,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "mediaRepository.ListMedia").
				Str("user_id", filter.UserID).
				Msg("failed to scan media row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}

		item.Project = &project
		results = append(results, item)
	}

	if err = rows.Err(); err != nil {
		log.Err(err).
			Str("func", "mediaRepository.ListMedia").
			Str("user_id", filter.UserID).
			Msg("row iteration error")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return results, nil
}

// DeleteMedia removes a media record scoped to the uploading user.
//
// Error handling:
//   - zero affected rows → [ErrMediaNotFound].
func (r *mediaRepository) DeleteMedia(ctx context.Context, mediaID, userID string) error {
	log := logger.FromContext(ctx)

	result, err := r.ExecContext(ctx, deleteMedia, mediaID, userID)
	if err != nil {
		log.Err(err).
			Str("func", "mediaRepository.DeleteMedia").
			Str("media_id", mediaID).
			Msg("failed to delete media record")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrMediaNotFound
	}

	return nil
}

// buildListMediaQuery assembles the media listing query for the given
// filter using squirrel's PostgreSQL placeholder format.
func buildListMediaQuery(filter models.MediaFilter) (string, []any, error) {
	builder := sq.Select(
		"m.media_id", "m.project_id", "m.user_id", "m.file_type", "m.file_path",
		"m.thumbnail_path", "m.file_size", "m.mime_type", "m.latitude", "m.longitude",
		"m.captured_at", "m.uploaded_at", "p.project_id", "p.name",
	).
		From("media m").
		Join("projects p ON p.project_id = m.project_id").
		Where(sq.Eq{"m.user_id": filter.UserID}).
		OrderBy("m.uploaded_at DESC").
		PlaceholderFormat(sq.Dollar)

	if filter.ProjectID != "" {
		builder = builder.Where(sq.Eq{"m.project_id": filter.ProjectID})
	}
	if filter.FileType != "" {
		builder = builder.Where(sq.Eq{"m.file_type": filter.FileType})
	}

	return builder.ToSql()
}
