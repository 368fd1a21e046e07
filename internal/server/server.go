package server

import (
	"context"
	"os/signal"
	"sync"
	"syscall"

	"github.com/MKhiriev/go-crud-keeper/internal/config"
	"github.com/MKhiriev/go-crud-keeper/internal/handler"
	"github.com/MKhiriev/go-crud-keeper/internal/logger"
)

// transport is one listening endpoint of the process.
type transport interface {
	name() string
	listen() error
	// release closes a bound listener that was never served.
	release()
	serve(ctx context.Context)
	stop()
}

type server struct {
	http *httpServer
	grpc *grpcServer

	running sync.WaitGroup
	logger  *logger.Logger
}

// NewServer prepares a transport for every configured address that has a
// handler. Nothing is bound until RunServer.
func NewServer(handlers *handler.Handlers, cfg config.Server, logger *logger.Logger) (Server, error) {
	s := &server{logger: logger}

	if cfg.HTTPAddress != "" && handlers.HTTP != nil {
		s.http = newHTTPServer(handlers.HTTP.Init(), cfg, logger)
	}
	if cfg.GRPCAddress != "" && handlers.GRPC != nil {
		s.grpc = newGRPCServer(handlers.GRPC, cfg, logger)
	}

	if len(s.transports()) == 0 {
		return nil, errNoServersAreCreated
	}

	logger.Info().Int("transports", len(s.transports())).Msg("server created")
	return s, nil
}

// RunServer serves until SIGTERM, SIGINT or SIGQUIT arrives, then shuts
// every transport down.
func (s *server) RunServer() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	if err := s.run(ctx); err != nil {
		s.logger.Err(err).Str("func", "*server.RunServer").Msg("error running server")
	}
}

// Shutdown stops every transport and waits for their serve loops to return.
func (s *server) Shutdown() {
	for _, t := range s.transports() {
		s.logger.Info().Str("transport", t.name()).Msg("stopping")
		t.stop()
	}
	s.running.Wait()
}

func (s *server) transports() []transport {
	var ts []transport
	if s.http != nil {
		ts = append(ts, s.http)
	}
	if s.grpc != nil {
		ts = append(ts, s.grpc)
	}
	return ts
}

func (s *server) run(ctx context.Context) error {
	if err := s.start(ctx); err != nil {
		return err
	}

	<-ctx.Done()

	s.Shutdown()
	s.logger.Info().Msg("server stopped")
	return nil
}

// start binds every listener before serving any of them, so a busy port
// leaves nothing running.
func (s *server) start(ctx context.Context) error {
	ts := s.transports()
	if len(ts) == 0 {
		return errNoServersAreCreated
	}

	for i, t := range ts {
		if err := t.listen(); err != nil {
			for _, bound := range ts[:i] {
				bound.release()
			}
			return err
		}
	}

	for _, t := range ts {
		s.logger.Info().Str("transport", t.name()).Msg("launching")
		s.running.Add(1)
		go func(t transport) {
			defer s.running.Done()
			t.serve(ctx)
		}(t)
	}

	return nil
}
