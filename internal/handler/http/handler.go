package http

import (
	"time"

	"github.com/MKhiriev/go-crud-keeper/internal/config"
	"github.com/MKhiriev/go-crud-keeper/internal/logger"
	"github.com/MKhiriev/go-crud-keeper/internal/service"
	"github.com/MKhiriev/go-crud-keeper/internal/validators"
)

type Handler struct {
	services *service.Services
	decoder  validators.Decoder

	requestTimeout time.Duration

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg config.Server, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:       services,
		decoder:        validators.NewRequestValidator(),
		requestTimeout: cfg.RequestTimeout,
		logger:         logger,
	}
}
