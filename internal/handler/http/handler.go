package http

import (
	"github.com/quickflicks/quickflicks/internal/logger"
	"github.com/quickflicks/quickflicks/internal/service"
)

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
