package http

import (
	"github.com/ayakimov/fielddoc/internal/config"
	"github.com/ayakimov/fielddoc/internal/logger"
	"github.com/ayakimov/fielddoc/internal/service"
)

type Handler struct {
	services *service.Services

	// files carries the upload limits and MIME allow-lists that are also
	// enforced at the transport boundary, before a body is persisted.
	files config.Files

	logger *logger.Logger
}

func NewHandler(services *service.Services, files config.Files, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		files:    files,
		logger:   logger,
	}
}
