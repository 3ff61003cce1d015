package server

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"invoice-service/cmd/api/di"
	"invoice-service/internal/config"
)

// Server struct holds the HTTP server and its dependencies
type Server struct {
	Config *config.Config
	Logger *zap.Logger
	HTTP   *http.Server
}

// New creates a new server instance wired from the container.
func New(cfg *config.Config, l *zap.Logger, c *di.Container) *Server {
	return &Server{
		Config: cfg,
		Logger: l,
		HTTP:   SetupGinServer(c, ":"+cfg.App.HTTPPort, l),
	}
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	s.Logger.Info("HTTP server running", zap.String("address", s.HTTP.Addr))

	if err := s.HTTP.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
