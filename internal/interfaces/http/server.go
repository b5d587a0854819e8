// Package http hosts the REST front end of the molecule service.
package http

import (
	"context"
	stderrors "errors"
	"net"
	"net/http"
	"time"

	"github.com/turtacn/rdkit-go/internal/config"
	"github.com/turtacn/rdkit-go/internal/infrastructure/monitoring/logging"
)

const defaultShutdownTimeout = 30 * time.Second

type Server struct {
	srv             *http.Server
	shutdownTimeout time.Duration
	logger          logging.Logger
}

func NewServer(cfg config.ServerConfig, handler http.Handler, logger logging.Logger) *Server {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	shutdown := cfg.ShutdownTimeout
	if shutdown <= 0 {
		shutdown = defaultShutdownTimeout
	}
	return &Server{
		srv: &http.Server{
			Addr:              cfg.Address(),
			Handler:           handler,
			ReadTimeout:       cfg.ReadTimeout,
			ReadHeaderTimeout: 10 * time.Second,
			WriteTimeout:      cfg.WriteTimeout,
			IdleTimeout:       60 * time.Second,
		},
		shutdownTimeout: shutdown,
		logger:          logger.Named("server"),
	}
}

// Start blocks serving requests until Stop is called.  A clean stop
// returns nil.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ln)
}

// Serve is Start on an existing listener.
func (s *Server) Serve(ln net.Listener) error {
	s.logger.Info("HTTP server listening", logging.String("addr", ln.Addr().String()))
	if err := s.srv.Serve(ln); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop drains in-flight requests for at most the shutdown timeout.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(ctx, s.shutdownTimeout)
	defer cancel()

	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		s.logger.WithError(err).Error("HTTP server shutdown failed")
		return err
	}
	s.logger.Info("HTTP server stopped")
	return nil
}

func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

//Personal.AI order the ending
