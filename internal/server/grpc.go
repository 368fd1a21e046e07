package server

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"google.golang.org/grpc"

	"github.com/MKhiriev/go-crud-keeper/internal/config"
	myGRPC "github.com/MKhiriev/go-crud-keeper/internal/handler/grpc"
	"github.com/MKhiriev/go-crud-keeper/internal/logger"
)

// healthProbeInterval is how often the database is pinged for the health
// service.
const healthProbeInterval = 15 * time.Second

type grpcServer struct {
	handler *myGRPC.Handler
	address string

	server   *grpc.Server
	listener net.Listener

	mu        sync.Mutex
	stopWatch context.CancelFunc

	logger *logger.Logger
}

func newGRPCServer(handler *myGRPC.Handler, cfg config.Server, logger *logger.Logger) *grpcServer {
	server := grpc.NewServer()
	handler.Register(server)

	return &grpcServer{
		handler: handler,
		address: cfg.GRPCAddress,
		server:  server,
		logger:  logger,
	}
}

func (g *grpcServer) name() string { return "grpc" }

func (g *grpcServer) listen() error {
	lis, err := net.Listen("tcp", g.address)
	if err != nil {
		return fmt.Errorf("gRPC server listen on %q: %w", g.address, err)
	}
	g.listener = lis
	return nil
}

func (g *grpcServer) release() {
	if g.listener != nil {
		_ = g.listener.Close()
	}
}

// serve runs the health watcher next to the gRPC server until stop.
func (g *grpcServer) serve(ctx context.Context) {
	watchCtx, cancel := context.WithCancel(ctx)
	g.mu.Lock()
	g.stopWatch = cancel
	g.mu.Unlock()
	go g.handler.Watch(watchCtx, healthProbeInterval)

	g.logger.Info().Str("address", g.listener.Addr().String()).Msg("gRPC server is listening")
	if err := g.server.Serve(g.listener); err != nil {
		g.logger.Err(err).Str("func", "*grpcServer.serve").Msg("gRPC server Serve")
	}
}

func (g *grpcServer) stop() {
	g.mu.Lock()
	if g.stopWatch != nil {
		g.stopWatch()
	}
	g.mu.Unlock()

	g.handler.Shutdown()
	g.server.GracefulStop()
}
