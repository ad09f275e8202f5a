package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/ayakimov/fielddoc/internal/logger"
	"github.com/ayakimov/fielddoc/internal/store"
	"github.com/ayakimov/fielddoc/models"
)

// noteService is the concrete implementation of NoteService. Notes belong
// to projects, so every operation first resolves the project scoped to the
// requesting user; a foreign project surfaces as store.ErrProjectNotFound
// before any note data is touched.
type noteService struct {
	noteRepository    store.NoteRepository
	projectRepository store.ProjectRepository
	logger            *logger.Logger
}

// NewNoteService constructs a NoteService wired to the given repositories.
func NewNoteService(noteRepository store.NoteRepository, projectRepository store.ProjectRepository, logger *logger.Logger) NoteService {
	return &noteService{
		noteRepository:    noteRepository,
		projectRepository: projectRepository,
		logger:            logger,
	}
}

// CreateNote validates and persists a new note in a project owned by the
// user. The body is stored trimmed.
//
// Returns the persisted note or:
//   - ErrEmptyNoteBody if the body is empty or whitespace only.
//   - A wrapped store.ErrProjectNotFound if the project is missing or
//     belongs to another user.
func (s *noteService) CreateNote(ctx context.Context, userID string, note models.Note) (models.Note, error) {
	log := logger.FromContext(ctx)

	note.Body = strings.TrimSpace(note.Body)
	if note.Body == "" {
		return models.Note{}, ErrEmptyNoteBody
	}

	if _, err := s.projectRepository.GetProject(ctx, note.ProjectID, userID); err != nil {
		log.Err(err).Str("project_id", note.ProjectID).Msg("note target project lookup failed")
		return models.Note{}, fmt.Errorf("note target project lookup failed: %w", err)
	}

	created, err := s.noteRepository.CreateNote(ctx, note)
	if err != nil {
		log.Err(err).Str("project_id", note.ProjectID).Msg("note creation ended with error")
		return models.Note{}, fmt.Errorf("note creation ended with error: %w", err)
	}

	return created, nil
}

// GetNotes returns all notes of a project owned by the user, newest first.
func (s *noteService) GetNotes(ctx context.Context, userID, projectID string) ([]models.Note, error) {
	log := logger.FromContext(ctx)

	if _, err := s.projectRepository.GetProject(ctx, projectID, userID); err != nil {
		log.Err(err).Str("project_id", projectID).Msg("note listing project lookup failed")
		return nil, fmt.Errorf("note listing project lookup failed: %w", err)
	}

	notes, err := s.noteRepository.GetNotes(ctx, projectID)
	if err != nil {
		log.Err(err).Str("project_id", projectID).Msg("note listing ended with error")
		return nil, fmt.Errorf("note listing ended with error: %w", err)
	}

	return notes, nil
}

// DeleteNote removes a note from a project owned by the user.
func (s *noteService) DeleteNote(ctx context.Context, userID, noteID, projectID string) error {
	log := logger.FromContext(ctx)

	if _, err := s.projectRepository.GetProject(ctx, projectID, userID); err != nil {
		log.Err(err).Str("project_id", projectID).Msg("note deletion project lookup failed")
		return fmt.Errorf("note deletion project lookup failed: %w", err)
	}

	if err := s.noteRepository.DeleteNote(ctx, noteID, projectID); err != nil {
		log.Err(err).Str("note_id", noteID).Msg("note deletion ended with error")
		return fmt.Errorf("note deletion ended with error: %w", err)
	}

	return nil
}
