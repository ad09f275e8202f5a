package http

import (
	"encoding/json"
	"net/http"

	"github.com/ayakimov/fielddoc/internal/logger"
	"github.com/ayakimov/fielddoc/internal/store"
	"github.com/ayakimov/fielddoc/internal/utils"
	"github.com/ayakimov/fielddoc/models"
)

func (h *Handler) listNotes(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userIDFromRequest(w, r)
	if !ok {
		return
	}

	projectID, ok := uuidURLParam(r, "projectID")
	if !ok {
		h.respondError(w, r, store.ErrProjectNotFound)
		return
	}

	notes, err := h.services.NoteService.GetNotes(r.Context(), userID, projectID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, notes, http.StatusOK)
}

func (h *Handler) createNote(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := h.userIDFromRequest(w, r)
	if !ok {
		return
	}

	projectID, ok := uuidURLParam(r, "projectID")
	if !ok {
		h.respondError(w, r, store.ErrProjectNotFound)
		return
	}

	var note models.Note
	if err := json.NewDecoder(r.Body).Decode(&note); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteJSONError(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}
	note.ProjectID = projectID

	createdNote, err := h.services.NoteService.CreateNote(r.Context(), userID, note)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, createdNote, http.StatusCreated)
}

func (h *Handler) deleteNote(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userIDFromRequest(w, r)
	if !ok {
		return
	}

	projectID, ok := uuidURLParam(r, "projectID")
	if !ok {
		h.respondError(w, r, store.ErrProjectNotFound)
		return
	}

	noteID, ok := uuidURLParam(r, "noteID")
	if !ok {
		h.respondError(w, r, store.ErrNoteNotFound)
		return
	}

	if err := h.services.NoteService.DeleteNote(r.Context(), userID, noteID, projectID); err != nil {
		h.respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
