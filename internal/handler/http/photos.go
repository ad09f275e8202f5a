package http

import (
	"errors"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ayakimov/fielddoc/internal/logger"
	"github.com/ayakimov/fielddoc/internal/service"
	"github.com/ayakimov/fielddoc/internal/store"
	"github.com/ayakimov/fielddoc/internal/utils"
	"github.com/ayakimov/fielddoc/models"
)

// maxPhotoUploadSize is the fixed per-file cap of the legacy photo
// subsystem; maxPhotosPerUpload caps how many files one request may carry.
const (
	maxPhotoUploadSize = 20 << 20 // 20 MiB
	maxPhotosPerUpload = 20
)

func (h *Handler) listPhotos(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userIDFromRequest(w, r)
	if !ok {
		return
	}

	projectID, ok := uuidURLParam(r, "projectID")
	if !ok {
		h.respondError(w, r, store.ErrProjectNotFound)
		return
	}

	photos, err := h.services.PhotoService.GetPhotos(r.Context(), userID, projectID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, photos, http.StatusOK)
}

func (h *Handler) uploadPhoto(w http.ResponseWriter, r *http.Request) {
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

	r.Body = http.MaxBytesReader(w, r.Body, maxPhotosPerUpload*maxPhotoUploadSize+multipartFormSlack)
	if err := r.ParseMultipartForm(maxPhotoUploadSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, r, service.ErrFileTooLarge)
			return
		}
		log.Err(err).Msg("invalid multipart form")
		utils.WriteJSONError(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}

	headers := r.MultipartForm.File["photos"]
	if len(headers) == 0 {
		log.Warn().Msg("photos part is missing")
		utils.WriteJSONError(w, "Photos are required", http.StatusBadRequest)
		return
	}
	if len(headers) > maxPhotosPerUpload {
		utils.WriteJSONError(w, "Too many photos", http.StatusBadRequest)
		return
	}

	inserted := make([]models.Photo, 0, len(headers))
	for _, header := range headers {
		if header.Size > maxPhotoUploadSize {
			h.respondError(w, r, service.ErrFileTooLarge)
			return
		}

		photo, err := h.uploadOnePhoto(r, userID, projectID, header)
		if err != nil {
			h.respondError(w, r, err)
			return
		}
		inserted = append(inserted, photo)
	}

	utils.WriteJSON(w, inserted, http.StatusCreated)
}

func (h *Handler) uploadOnePhoto(r *http.Request, userID, projectID string, header *multipart.FileHeader) (models.Photo, error) {
	file, err := header.Open()
	if err != nil {
		return models.Photo{}, err
	}
	defer file.Close()

	return h.services.PhotoService.UploadPhoto(r.Context(), userID, service.PhotoUploadRequest{
		ProjectID:    projectID,
		OriginalName: header.Filename,
		MimeType:     header.Header.Get("Content-Type"),
		Size:         header.Size,
		Content:      file,
	})
}

func (h *Handler) servePhotoFile(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userIDFromRequest(w, r)
	if !ok {
		return
	}

	projectID, ok := uuidURLParam(r, "projectID")
	if !ok {
		h.respondError(w, r, store.ErrProjectNotFound)
		return
	}

	photoID, err := strconv.ParseInt(chi.URLParam(r, "photoID"), 10, 64)
	if err != nil {
		h.respondError(w, r, store.ErrPhotoNotFound)
		return
	}

	file, photo, err := h.services.PhotoService.OpenPhoto(r.Context(), userID, projectID, photoID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	defer file.Close()

	w.Header().Set("Content-Type", photo.MimeType)
	http.ServeContent(w, r, filepath.Base(photo.Filename), photo.UploadedAt, file)
}

func (h *Handler) deletePhoto(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userIDFromRequest(w, r)
	if !ok {
		return
	}

	projectID, ok := uuidURLParam(r, "projectID")
	if !ok {
		h.respondError(w, r, store.ErrProjectNotFound)
		return
	}

	photoID, err := strconv.ParseInt(chi.URLParam(r, "photoID"), 10, 64)
	if err != nil {
		h.respondError(w, r, store.ErrPhotoNotFound)
		return
	}

	if err := h.services.PhotoService.DeletePhoto(r.Context(), userID, projectID, photoID); err != nil {
		h.respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
