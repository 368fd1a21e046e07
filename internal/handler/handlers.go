package handler

import (
	"github.com/MKhiriev/go-crud-keeper/internal/config"
	"github.com/MKhiriev/go-crud-keeper/internal/handler/grpc"
	"github.com/MKhiriev/go-crud-keeper/internal/handler/http"
	"github.com/MKhiriev/go-crud-keeper/internal/logger"
	"github.com/MKhiriev/go-crud-keeper/internal/service"
	"github.com/MKhiriev/go-crud-keeper/internal/store"
)

type Handlers struct {
	HTTP *http.Handler
	GRPC *grpc.Handler
}

// NewHandlers builds a handler for every transport that has an address in
// cfg. The gRPC handler only reports health and therefore needs checker
// rather than the services.
func NewHandlers(services *service.Services, checker store.HealthChecker, cfg config.Server, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(services, cfg, logger)
	}
	if cfg.GRPCAddress != "" {
		handlers.GRPC = grpc.NewHandler(checker, logger)
	}

	if handlers.HTTP == nil && handlers.GRPC == nil {
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}
