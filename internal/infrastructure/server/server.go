// Package server runs the gallery API over HTTP.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/leondli/gallery/internal/infrastructure/config"
	"github.com/leondli/gallery/internal/infrastructure/logger"
	"github.com/leondli/gallery/internal/infrastructure/middleware"
)

const defaultShutdownTimeout = 30 * time.Second

// Server owns the gin engine and the listener it is served on
type Server struct {
	router *gin.Engine
	cfg    *config.ServerConfig
	log    zerolog.Logger
}

// New creates a server with recovery, request logging and CORS installed
func New(cfg *config.ServerConfig) *Server {
	gin.SetMode(cfg.Mode)

	router := gin.New()
	router.Use(
		middleware.Recovery(),
		middleware.RequestLogger(),
		middleware.CORS(cfg.CORSOrigins),
	)

	return &Server{
		router: router,
		cfg:    cfg,
		log:    logger.NewLogger("server"),
	}
}

// Router returns the engine routes are registered on
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Run listens on the configured address and serves until ctx is done
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.GetAddress())
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done, then drains in-flight requests.
// Hijacked connections such as event streams are not waited for.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	s.log.Info().
		Str("address", ln.Addr().String()).
		Str("mode", s.cfg.Mode).
		Msg("Starting HTTP server")

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- httpServer.Serve(ln)
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	timeout := s.cfg.GetShutdownTimeout()
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	s.log.Info().Dur("timeout", timeout).Msg("Shutting down HTTP server")
	return httpServer.Shutdown(shutdownCtx)
}
