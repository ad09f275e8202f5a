package http

import (
	"errors"
	"net/http"

	"github.com/ayakimov/fielddoc/internal/logger"
	"github.com/ayakimov/fielddoc/internal/service"
	"github.com/ayakimov/fielddoc/internal/store"
	"github.com/ayakimov/fielddoc/internal/utils"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrInvalidFileType:         http.StatusBadRequest,
	service.ErrFileTooLarge:            http.StatusBadRequest,
	service.ErrInvalidCoordinates:      http.StatusBadRequest,
	service.ErrEmptyNoteBody:           http.StatusBadRequest,
	service.ErrInvalidCredentials:      http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrInvalidRefreshToken:     http.StatusUnauthorized,

	store.ErrEmailAlreadyExists: http.StatusBadRequest,
	store.ErrUserNotFound:       http.StatusNotFound,
	store.ErrProjectNotFound:    http.StatusNotFound,
	store.ErrMediaNotFound:      http.StatusNotFound,
	store.ErrNoteNotFound:       http.StatusNotFound,
	store.ErrPhotoNotFound:      http.StatusNotFound,

	store.ErrBuildingSQLQuery:   http.StatusInternalServerError,
	store.ErrExecutingQuery:     http.StatusInternalServerError,
	store.ErrExecutingStatement: http.StatusInternalServerError,
	store.ErrScanningRow:        http.StatusInternalServerError,
	store.ErrScanningRows:       http.StatusInternalServerError,
}

// errorMessageMap holds the client-facing message for every error that is
// deliberately exposed. Errors absent from this map are reported with the
// generic status text so that internal details never leak into responses.
var errorMessageMap = map[error]string{
	service.ErrInvalidDataProvided:     "Invalid data provided",
	service.ErrInvalidFileType:         "File type not allowed",
	service.ErrFileTooLarge:            "File too large",
	service.ErrInvalidCoordinates:      "Latitude and longitude must be provided together",
	service.ErrEmptyNoteBody:           "Note body is required",
	service.ErrInvalidCredentials:      "Invalid credentials",
	service.ErrTokenIsExpiredOrInvalid: "Invalid or expired token",
	service.ErrInvalidRefreshToken:     "Invalid refresh token",

	store.ErrEmailAlreadyExists: "User already exists",
	store.ErrUserNotFound:       "User not found",
	store.ErrProjectNotFound:    "Project not found",
	store.ErrMediaNotFound:      "Media not found",
	store.ErrNoteNotFound:       "Note not found",
	store.ErrPhotoNotFound:      "Photo not found",
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

func messageFromError(err error, status int) string {
	for target, message := range errorMessageMap {
		if errors.Is(err, target) {
			return message
		}
	}
	return http.StatusText(status)
}

// respondError translates a service or storage error into the uniform JSON
// error body, logging internal failures with their full cause chain.
func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)

	status := statusFromError(err)
	if status == http.StatusInternalServerError {
		log.Err(err).Msg("request failed")
	} else {
		log.Err(err).Int("status", status).Msg("request rejected")
	}

	utils.WriteJSONError(w, messageFromError(err, status), status)
}
