package http

import (
	"net/http"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/ayakimov/fielddoc/internal/store"
	"github.com/ayakimov/fielddoc/internal/utils"
	"github.com/ayakimov/fielddoc/models"
)

func (h *Handler) listMedia(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userIDFromRequest(w, r)
	if !ok {
		return
	}

	filter := models.MediaFilter{UserID: userID}

	if projectID := r.URL.Query().Get("projectId"); projectID != "" {
		if uuid.Validate(projectID) != nil {
			utils.WriteJSONError(w, "Invalid projectId filter", http.StatusBadRequest)
			return
		}
		filter.ProjectID = projectID
	}

	if fileType := r.URL.Query().Get("fileType"); fileType != "" {
		if fileType != models.FileTypePhoto && fileType != models.FileTypeVideo {
			utils.WriteJSONError(w, "Invalid fileType filter", http.StatusBadRequest)
			return
		}
		filter.FileType = fileType
	}

	media, err := h.services.MediaService.ListMedia(r.Context(), filter)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, media, http.StatusOK)
}

func (h *Handler) getMedia(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userIDFromRequest(w, r)
	if !ok {
		return
	}

	mediaID, ok := uuidURLParam(r, "mediaID")
	if !ok {
		h.respondError(w, r, store.ErrMediaNotFound)
		return
	}

	media, err := h.services.MediaService.GetMedia(r.Context(), mediaID, userID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, media, http.StatusOK)
}

func (h *Handler) serveMediaFile(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userIDFromRequest(w, r)
	if !ok {
		return
	}

	mediaID, ok := uuidURLParam(r, "mediaID")
	if !ok {
		h.respondError(w, r, store.ErrMediaNotFound)
		return
	}

	file, media, err := h.services.MediaService.OpenFile(r.Context(), mediaID, userID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	defer file.Close()

	w.Header().Set("Content-Type", media.MimeType)
	http.ServeContent(w, r, filepath.Base(media.FilePath), media.UploadedAt, file)
}

func (h *Handler) serveMediaThumbnail(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userIDFromRequest(w, r)
	if !ok {
		return
	}

	mediaID, ok := uuidURLParam(r, "mediaID")
	if !ok {
		h.respondError(w, r, store.ErrMediaNotFound)
		return
	}

	thumbnail, media, err := h.services.MediaService.OpenThumbnail(r.Context(), mediaID, userID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	defer thumbnail.Close()

	// Thumbnails are re-encoded JPEGs; when no thumbnail was derived the
	// original is served instead with its own MIME type.
	name := filepath.Base(media.FilePath)
	contentType := media.MimeType
	if media.ThumbnailPath != nil {
		name = filepath.Base(*media.ThumbnailPath)
		contentType = "image/jpeg"
	}

	w.Header().Set("Content-Type", contentType)
	http.ServeContent(w, r, name, media.UploadedAt, thumbnail)
}

func (h *Handler) deleteMedia(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userIDFromRequest(w, r)
	if !ok {
		return
	}

	mediaID, ok := uuidURLParam(r, "mediaID")
	if !ok {
		h.respondError(w, r, store.ErrMediaNotFound)
		return
	}

	if err := h.services.MediaService.DeleteMedia(r.Context(), mediaID, userID); err != nil {
		h.respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.MessageResponse{Message: "Media deleted successfully"}, http.StatusOK)
}
