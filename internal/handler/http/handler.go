package http

import (
	"github.com/fieldcare/clinsync/internal/logger"
	"github.com/fieldcare/clinsync/internal/service"
)

// Handler exposes the document store's REST surface: device auth, push,
// authoritative writes, fetch and state listings.
type Handler struct {
	services *service.Services

	logger *logger.Logger
}

func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		logger:   logger,
	}
}
