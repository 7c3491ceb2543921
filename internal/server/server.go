// Package server wires and runs the application's HTTP transport,
// including startup, signal handling and graceful shutdown.
package server

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/quickflicks/quickflicks/internal/config"
	myHTTP "github.com/quickflicks/quickflicks/internal/handler/http"
	"github.com/quickflicks/quickflicks/internal/logger"
)

// Server defines the lifecycle contract of the transport server.
//
// Implementations are expected to block in [RunServer] until shutdown is
// requested and to release resources in [Shutdown].
type Server interface {
	// RunServer starts serving requests and blocks until the server stops.
	RunServer()

	// Shutdown gracefully stops the server and frees associated resources.
	Shutdown()
}

type server struct {
	httpServer *httpServer
	logger     *logger.Logger
}

// NewServer builds the HTTP server around the handler's router.
func NewServer(handler *myHTTP.Handler, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")

	if cfg.HTTPAddress == "" {
		return nil, errNoServerAddress
	}

	return &server{
		httpServer: newHTTPServer(handler.Init(), cfg, logger),
		logger:     logger,
	}, nil
}

func (s *server) RunServer() {
	idleConnectionsClosed := make(chan struct{})
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	// listen for stop signals
	go func() {
		<-ctx.Done()

		s.Shutdown()

		close(idleConnectionsClosed)
	}()

	s.logger.Info().Msg("Launching HTTP server")
	go s.httpServer.RunServer()

	<-idleConnectionsClosed
	s.logger.Info().Msg("server Shutdown gracefully")
}

func (s *server) Shutdown() {
	if s.httpServer != nil {
		s.httpServer.Shutdown()
	}
}
