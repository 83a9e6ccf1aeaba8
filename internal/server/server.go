// Package server owns the HTTP server lifecycle: construction, startup, and
// graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/edugenhq/edugen-server/internal/observability"
)

// Config holds HTTP server configuration.
type Config struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DefaultConfig returns default HTTP server configuration. The write timeout
// leaves headroom for a full retry cycle against the upstream model.
func DefaultConfig() Config {
	return Config{
		Host:         "0.0.0.0",
		Port:         10000,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 2 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}
}

// Server wraps the HTTP server and the usage-log database.
type Server struct {
	config Config
	db     *sql.DB
	http   *http.Server
}

// New creates a Server serving handler on the configured address. db is the
// usage-log database, closed on shutdown; nil is allowed for tests.
func New(handler http.Handler, db *sql.DB, config Config) *Server {
	return &Server{
		config: config,
		db:     db,
		http: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", config.Host, config.Port),
			Handler:      handler,
			ReadTimeout:  config.ReadTimeout,
			WriteTimeout: config.WriteTimeout,
			IdleTimeout:  config.IdleTimeout,
		},
	}
}

// Start starts the HTTP server and blocks until it stops. Returns nil on a
// clean shutdown.
func (s *Server) Start() error {
	observability.Logger().Info("http server starting", "addr", s.http.Addr)
	if err := s.http.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully drains in-flight requests and closes the database.
func (s *Server) Shutdown(ctx context.Context) error {
	observability.Logger().Info("http server shutting down")

	if err := s.http.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			return fmt.Errorf("database close error: %w", err)
		}
	}
	return nil
}
