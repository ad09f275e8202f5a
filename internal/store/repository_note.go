package store

import (
	"context"
	"fmt"

	"github.com/ayakimov/fielddoc/internal/logger"
	"github.com/ayakimov/fielddoc/models"
)

// noteRepository is the PostgreSQL-backed implementation of [NoteRepository].
type noteRepository struct {
	*DB
	logger *logger.Logger
}

// NewNoteRepository constructs a [NoteRepository] backed by the provided
// database connection and logger.
func NewNoteRepository(db *DB, logger *logger.Logger) NoteRepository {
	logger.Debug().Msg("creating note repository")
	return &noteRepository{
		DB:     db,
		logger: logger,
	}
}

// CreateNote persists a new note record and returns the fully populated
// [models.Note] with server-assigned fields (NoteID, CreatedAt).
func (r *noteRepository) CreateNote(ctx context.Context, note models.Note) (models.Note, error) {
	log := logger.FromContext(ctx)

	row := r.QueryRowContext(ctx, createNote, note.ProjectID, note.Body)

	if err := row.Scan(&note.NoteID, &note.ProjectID, &note.Body, &note.CreatedAt); err != nil {
		log.Err(err).
			Str("func", "noteRepository.CreateNote").
			Str("project_id", note.ProjectID).
			Msg("failed to insert note")
		return models.Note{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return note, nil
}

// GetNotes retrieves all notes of the given project, newest first.
func (r *noteRepository) GetNotes(ctx context.Context, projectID string) ([]models.Note, error) {
	log := logger.FromContext(ctx)

	rows, err := r.QueryContext(ctx, getNotes, projectID)
	if err != nil {
		log.Err(err).
			Str("func", "noteRepository.GetNotes").
			Str("project_id", projectID).
			Msg("failed to execute query for listing notes")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	notes := make([]models.Note, 0, 20)

	for rows.Next() {
		var note models.Note

		if scanErr := rows.Scan(&note.NoteID, &note.ProjectID, &note.Body, &note.CreatedAt); scanErr != nil {
			log.Err(scanErr).
				Str("func", "noteRepository.GetNotes").
				Str("project_id", projectID).
				Msg("failed to scan note row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}

		notes = append(notes, note)
	}

	if err = rows.Err(); err != nil {
		log.Err(err).
			Str("func", "noteRepository.GetNotes").
			Str("project_id", projectID).
			Msg("row iteration error")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return notes, nil
}

// DeleteNote removes a note within the given project.
//
// Error handling:
//   - zero affected rows → [ErrNoteNotFound].
func (r *noteRepository) DeleteNote(ctx context.Context, noteID, projectID string) error {
	log := logger.FromContext(ctx)

	result, err := r.ExecContext(ctx, deleteNote, noteID, projectID)
	if err != nil {
		log.Err(err).
			Str("func", "noteRepository.DeleteNote").
			Str("note_id", noteID).
			Msg("failed to delete note")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNoteNotFound
	}

	return nil
}
