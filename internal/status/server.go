// Package status serves the health and metrics endpoints of a running bot.
package status

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonesrussell/north-cloud/postbot/internal/logger"
)

const (
	readTimeout     = 5 * time.Second
	writeTimeout    = 10 * time.Second
	idleTimeout     = 60 * time.Second
	shutdownTimeout = 10 * time.Second
)

// Config configures the status server.
type Config struct {
	Port           int
	ServiceName    string
	ServiceVersion string
	Debug          bool
	// Checks are reported by /health.
	Checks map[string]HealthChecker
	// Metrics is served on /metrics when set.
	Metrics http.Handler
}

// Server is the status HTTP server.
type Server struct {
	router *gin.Engine
	server *http.Server
	log    logger.Logger
}

// NewServer builds the server and its routes.
func NewServer(cfg Config, log logger.Logger) *Server {
	if log == nil {
		log = logger.NewNop()
	}
	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(recoveryMiddleware(log), loggerMiddleware(log))

	router.GET("/health", healthHandler(cfg.ServiceName, cfg.ServiceVersion, time.Now(), cfg.Checks))
	router.HEAD("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	if cfg.Metrics != nil {
		router.GET("/metrics", gin.WrapH(cfg.Metrics))
	}

	return &Server{
		router: router,
		server: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Port),
			Handler:      router,
			ReadTimeout:  readTimeout,
			WriteTimeout: writeTimeout,
			IdleTimeout:  idleTimeout,
		},
		log: log,
	}
}

// Handler returns the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// StartAsync starts listening in a goroutine. The returned channel
// receives a listen error, if any, and is closed when the server stops.
func (s *Server) StartAsync() <-chan error {
	errCh := make(chan error, 1)

	go func() {
		defer close(errCh)
		s.log.Info("Starting status server", logger.String("address", s.server.Addr))
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("status server: %w", err)
		}
	}()

	return errCh
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("status server shutdown: %w", err)
	}
	s.log.Info("Status server stopped")
	return nil
}
