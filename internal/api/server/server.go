package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/feral-file/world-conquest/internal/api/feed"
	"github.com/feral-file/world-conquest/internal/api/middleware"
	"github.com/feral-file/world-conquest/internal/api/rest"
	"github.com/feral-file/world-conquest/internal/api/shared/executor"
	"github.com/feral-file/world-conquest/internal/logger"
)

// Config holds the server configuration
type Config struct {
	Debug          bool
	Host           string
	Port           int
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	AllowedOrigins []string
	// WriteRateLimit throttles writes per client. Zero requests per second disables it.
	WriteRateLimit middleware.RateLimitConfig
}

// Server wraps the HTTP server
type Server struct {
	config     Config
	executor   executor.Executor
	hub        feed.Hub
	httpServer *http.Server
}

// New creates a new API server
func New(cfg Config, exec executor.Executor, hub feed.Hub) *Server {
	return &Server{
		config:   cfg,
		executor: exec,
		hub:      hub,
	}
}

// Router builds the gin engine with middleware and routes
func (s *Server) Router() *gin.Engine {
	// Set Gin mode based on debug flag
	if s.config.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Setup middleware
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.SetupCORS(s.config.AllowedOrigins))
	if s.config.WriteRateLimit.RequestsPerSecond > 0 {
		router.Use(middleware.RateLimit(s.config.WriteRateLimit))
	}

	rest.SetupRoutes(router, rest.NewHandler(s.executor), s.hub)

	return router
}

// Start initializes and starts the HTTP server
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.httpServer = &http.Server{
		Addr:        addr,
		Handler:     s.Router(),
		ReadTimeout: s.config.ReadTimeout,
		// Websocket connections manage their own write deadlines
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	logger.Info("Starting API server",
		zap.String("address", addr),
	)

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server, disconnecting feed clients first
func (s *Server) Shutdown(ctx context.Context) error {
	logger.Info("Shutting down API server")

	if s.hub != nil {
		s.hub.Close()
	}

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown server: %w", err)
		}
	}

	return nil
}
