// Package grpc exposes the standard gRPC health service. Its serving status
// follows the reachability of the database.
package grpc

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/MKhiriev/go-crud-keeper/internal/logger"
	"github.com/MKhiriev/go-crud-keeper/internal/store"
)

// ServiceName is the health service name reported next to the overall ("")
// status.
const ServiceName = "crudkeeper.API"

// Handler is the root gRPC transport handler.
//
// It owns a [health.Server] and keeps its status in sync with the result of
// pinging the database.
type Handler struct {
	health  *health.Server
	checker store.HealthChecker

	logger *logger.Logger
}

// NewHandler constructs a [Handler] probing checker. Until the first probe
// the status is NOT_SERVING.
func NewHandler(checker store.HealthChecker, logger *logger.Logger) *Handler {
	logger.Debug().Msg("gRPC handler created")

	h := &Handler{
		health:  health.NewServer(),
		checker: checker,
		logger:  logger,
	}
	h.setStatus(healthpb.HealthCheckResponse_NOT_SERVING)

	return h
}

// Register attaches the health service to s.
func (h *Handler) Register(s grpc.ServiceRegistrar) {
	healthpb.RegisterHealthServer(s, h.health)
}

// Probe pings the database once and publishes the resulting status.
func (h *Handler) Probe(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	status := healthpb.HealthCheckResponse_SERVING
	if err := h.checker.PingContext(ctx); err != nil {
		h.logger.Err(err).Str("func", "*Handler.Probe").Msg("database is unreachable")
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}

	h.setStatus(status)
	return status
}

// Watch probes every interval until ctx is done. Each probe gets at most one
// interval to finish.
func (h *Handler) Watch(ctx context.Context, interval time.Duration) {
	probe := func() {
		probeCtx, cancel := context.WithTimeout(ctx, interval)
		defer cancel()
		h.Probe(probeCtx)
	}

	probe()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			probe()
		}
	}
}

// Shutdown switches every service to NOT_SERVING and ignores later updates.
func (h *Handler) Shutdown() {
	h.health.Shutdown()
}

func (h *Handler) setStatus(status healthpb.HealthCheckResponse_ServingStatus) {
	h.health.SetServingStatus("", status)
	h.health.SetServingStatus(ServiceName, status)
}
