// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Anton Yakimov

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ayakimov/fielddoc/internal/logger"
	"github.com/ayakimov/fielddoc/models"
)

// projectRepository is the PostgreSQL-backed implementation of
// [ProjectRepository]. It executes all project CRUD operations against the
// "projects" table using the embedded [*DB] connection.
//
// Every public method obtains a context-scoped logger via
// [logger.FromContext] so that all database interactions are traced
// with structured fields (user_id, project_id, etc.).
type projectRepository struct {
	*DB
	logger *logger.Logger
}

// NewProjectRepository constructs a [ProjectRepository] backed by the
// provided database connection and logger.
func NewProjectRepository(db *DB, logger *logger.Logger) ProjectRepository {
	logger.Debug().Msg("creating project repository")
	return &projectRepository{
		DB:     db,
		logger: logger,
	}
}

// CreateProject persists a new project record and returns the fully
// populated [models.Project] with server-assigned fields (ProjectID,
// CreatedAt, UpdatedAt).
func (r *projectRepository) CreateProject(ctx context.Context, project models.Project) (models.Project, error) {
	log := logger.FromContext(ctx)

	row := r.QueryRowContext(ctx, createProject,
		project.UserID, project.Name, project.Description, project.Address, project.Latitude, project.Longitude)

	if err := row.Scan(
		&project.ProjectID,
		&project.UserID,
		&project.Name,
		&project.Description,
		&project.Address,
		&project.Latitude,
		&project.Longitude,
		&project.CreatedAt,
		&project.UpdatedAt,
	); err != nil {
		log.Err(err).
			Str("func", "projectRepository.CreateProject").
			Str("user_id", project.UserID).
			Msg("failed to insert project")
		return models.Project{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return project, nil
}

// GetProjects retrieves all projects owned by the given user, newest first.
// Each returned project carries its media count aggregated from the "media"
// table.
func (r *projectRepository) GetProjects(ctx context.Context, userID string) ([]models.Project, error) {
	log := logger.FromContext(ctx)

	rows, err := r.QueryContext(ctx, getProjects, userID)
	if err != nil {
		log.Err(err).
			Str("func", "projectRepository.GetProjects").
			Str("user_id", userID).
			Msg("failed to execute query for listing projects")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	projects := make([]models.Project, 0, 20)

	for rows.Next() {
		var project models.Project

		scanErr := rows.Scan(
			&project.ProjectID,
			&project.UserID,
			&project.Name,
			&project.Description,
			&project.Address,
			&project.Latitude,
			&project.Longitude,
			&project.CreatedAt,
			&project.UpdatedAt,
			&project.MediaCount,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "projectRepository.GetProjects").
				Str("user_id", userID).
				Msg("failed to scan project row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}

		projects = append(projects, project)
	}

	if err = rows.Err(); err != nil {
		log.Err(err).
			Str("func", "projectRepository.GetProjects").
			Str("user_id", userID).
			Msg("row iteration error")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return projects, nil
}

// GetProject retrieves a single project by ID, scoped to the owning user.
//
// Error handling:
//   - sql.ErrNoRows → [ErrProjectNotFound] (missing and foreign projects
//     are indistinguishable to the caller).
func (r *projectRepository) GetProject(ctx context.Context, projectID, userID string) (models.Project, error) {
	log := logger.FromContext(ctx)

	var project models.Project
	row := r.QueryRowContext(ctx, getProject, projectID, userID)

	if err := row.Scan(
		&project.ProjectID,
		&project.UserID,
		&project.Name,
		&project.Description,
		&project.Address,
		&project.Latitude,
		&project.Longitude,
		&project.CreatedAt,
		&project.UpdatedAt,
		&project.MediaCount,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Project{}, ErrProjectNotFound
		}

		log.Err(err).
			Str("func", "projectRepository.GetProject").
			Str("project_id", projectID).
			Msg("failed to scan project row")
		return models.Project{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return project, nil
}

// UpdateProject applies a partial update to a project and returns the
// refreshed record. Only non-nil fields of update are written; updated_at is
// always advanced.
//
// Error handling:
//   - sql.ErrNoRows → [ErrProjectNotFound].
func (r *projectRepository) UpdateProject(ctx context.Context, projectID, userID string, update models.ProjectUpdate) (models.Project, error) {
	log := logger.FromContext(ctx)

	query, args := r.buildUpdateProjectQuery(projectID, userID, update)

	var project models.Project
	row := r.QueryRowContext(ctx, query, args...)

	if err := row.Scan(
		&project.ProjectID,
		&project.UserID,
		&project.Name,
		&project.Description,
		&project.Address,
		&project.Latitude,
		&project.Longitude,
		&project.CreatedAt,
		&project.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Project{}, ErrProjectNotFound
		}

		log.Err(err).
			Str("func", "projectRepository.UpdateProject").
			Str("project_id", projectID).
			Msg("failed to update project")
		return models.Project{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return project, nil
}

// DeleteProject removes a project owned by the given user. Associated media
// and note records are removed by ON DELETE CASCADE; files on disk are the
// service layer's responsibility.
//
// Error handling:
//   - zero affected rows → [ErrProjectNotFound].
func (r *projectRepository) DeleteProject(ctx context.Context, projectID, userID string) error {
	log := logger.FromContext(ctx)

	result, err := r.ExecContext(ctx, deleteProject, projectID, userID)
	if err != nil {
		log.Err(err).
			Str("func", "projectRepository.DeleteProject").
			Str("project_id", projectID).
			Msg("failed to delete project")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrProjectNotFound
	}

	return nil
}
