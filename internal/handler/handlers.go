package handler

import (
	"github.com/ayakimov/fielddoc/internal/config"
	"github.com/ayakimov/fielddoc/internal/handler/http"
	"github.com/ayakimov/fielddoc/internal/logger"
	"github.com/ayakimov/fielddoc/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, cfg *config.StructuredConfig, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.Server.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(services, cfg.Storage.Files, logger)
	}

	if handlers.HTTP == nil {
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}
