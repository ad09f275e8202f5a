// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Anton Yakimov

package http

import (
	"encoding/json"
	"net/http"

	"github.com/ayakimov/fielddoc/internal/logger"
	"github.com/ayakimov/fielddoc/internal/store"
	"github.com/ayakimov/fielddoc/internal/utils"
	"github.com/ayakimov/fielddoc/models"
)

func (h *Handler) listProjects(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userIDFromRequest(w, r)
	if !ok {
		return
	}

	projects, err := h.services.ProjectService.GetProjects(r.Context(), userID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, projects, http.StatusOK)
}

func (h *Handler) createProject(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := h.userIDFromRequest(w, r)
	if !ok {
		return
	}

	var project models.Project
	if err := json.NewDecoder(r.Body).Decode(&project); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteJSONError(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}
	project.UserID = userID

	createdProject, err := h.services.ProjectService.CreateProject(r.Context(), project)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, createdProject, http.StatusCreated)
}

func (h *Handler) getProject(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userIDFromRequest(w, r)
	if !ok {
		return
	}

	projectID, ok := uuidURLParam(r, "projectID")
	if !ok {
		h.respondError(w, r, store.ErrProjectNotFound)
		return
	}

	project, err := h.services.ProjectService.GetProject(r.Context(), projectID, userID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, project, http.StatusOK)
}

func (h *Handler) updateProject(w http.ResponseWriter, r *http.Request) {
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

	var update models.ProjectUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteJSONError(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	updatedProject, err := h.services.ProjectService.UpdateProject(r.Context(), projectID, userID, update)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, updatedProject, http.StatusOK)
}

func (h *Handler) deleteProject(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userIDFromRequest(w, r)
	if !ok {
		return
	}

	projectID, ok := uuidURLParam(r, "projectID")
	if !ok {
		h.respondError(w, r, store.ErrProjectNotFound)
		return
	}

	if err := h.services.ProjectService.DeleteProject(r.Context(), projectID, userID); err != nil {
		h.respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.MessageResponse{Message: "Project deleted successfully"}, http.StatusOK)
}
