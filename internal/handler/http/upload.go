// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Anton Yakimov

package http

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/ayakimov/fielddoc/internal/logger"
	"github.com/ayakimov/fielddoc/internal/service"
	"github.com/ayakimov/fielddoc/internal/store"
	"github.com/ayakimov/fielddoc/internal/utils"
)

// multipartFormSlack covers multipart boundaries and the non-file form
// fields on top of the configured file size limit.
const multipartFormSlack = 1 << 20

// upload handles POST /api/upload. The body is a multipart form with a
// single "file" part and the metadata fields projectId, latitude, longitude,
// and capturedAt. The size limit and MIME allow-lists are enforced here at
// the transport boundary before the service persists anything; the service
// repeats both checks against the declared part header.
func (h *Handler) upload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := h.userIDFromRequest(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.files.MaxFileSize+multipartFormSlack)
	if err := r.ParseMultipartForm(h.files.MaxFileSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, r, service.ErrFileTooLarge)
			return
		}
		log.Err(err).Msg("invalid multipart form")
		utils.WriteJSONError(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		log.Err(err).Msg("file part is missing")
		utils.WriteJSONError(w, "File is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	projectID := r.FormValue("projectId")
	if uuid.Validate(projectID) != nil {
		h.respondError(w, r, store.ErrProjectNotFound)
		return
	}

	mimeType := header.Header.Get("Content-Type")
	if !h.files.AllowedMIME(mimeType) {
		h.respondError(w, r, service.ErrInvalidFileType)
		return
	}

	req := service.UploadRequest{
		UserID:       userID,
		ProjectID:    projectID,
		OriginalName: header.Filename,
		MimeType:     mimeType,
		Size:         header.Size,
		Content:      file,
	}

	if req.Latitude, req.Longitude, err = parseCoordinates(r); err != nil {
		log.Err(err).Msg("invalid coordinates in upload form")
		h.respondError(w, r, service.ErrInvalidCoordinates)
		return
	}

	if rawCapturedAt := r.FormValue("capturedAt"); rawCapturedAt != "" {
		capturedAt, parseErr := time.Parse(time.RFC3339, rawCapturedAt)
		if parseErr != nil {
			log.Err(parseErr).Str("capturedAt", rawCapturedAt).Msg("invalid capturedAt in upload form")
			utils.WriteJSONError(w, "Invalid capturedAt timestamp", http.StatusBadRequest)
			return
		}
		req.CapturedAt = &capturedAt
	}

	media, err := h.services.MediaService.Upload(ctx, req)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, media, http.StatusCreated)
}

// parseCoordinates reads the optional latitude/longitude form fields.
// An absent field yields a nil pointer; a malformed or non-finite value is
// an error. strconv.ParseFloat accepts "NaN" and "Inf" literals, which the
// service rejects anyway but must never reach the staging step.
func parseCoordinates(r *http.Request) (*float64, *float64, error) {
	var latitude, longitude *float64

	if raw := r.FormValue("latitude"); raw != "" {
		v, err := parseFiniteFloat(raw)
		if err != nil {
			return nil, nil, err
		}
		latitude = &v
	}

	if raw := r.FormValue("longitude"); raw != "" {
		v, err := parseFiniteFloat(raw)
		if err != nil {
			return nil, nil, err
		}
		longitude = &v
	}

	return latitude, longitude, nil
}

func parseFiniteFloat(raw string) (float64, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("non-finite coordinate %q", raw)
	}
	return v, nil
}
