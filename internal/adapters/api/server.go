// Package api provides HTTP adapters for the hexagonal architecture
// These adapters handle incoming HTTP requests and translate them to use cases
package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"weatherhistory.app/internal/core/collection"
	"weatherhistory.app/internal/ports"
	"weatherhistory.app/pkg/errors"
)

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Port int
}

// HTTPServerAdapter implements HTTP server using Gin framework
type HTTPServerAdapter struct {
	router         *gin.Engine
	config         ServerConfig
	collections    CollectionService
	healthChecker  ports.SystemHealthChecker
	metricsHandler http.Handler
}

// CollectionService is the run lifecycle the HTTP adapter depends on
type CollectionService interface {
	Submit(ctx context.Context, req collection.CollectRequest) (*collection.RunView, error)
	Get(ctx context.Context, id string) (*collection.RunView, error)
	List(ctx context.Context, limit int) ([]*collection.RunView, error)
}

// ServerOptions represents options for creating the HTTP server
type ServerOptions struct {
	Config              ServerConfig
	CollectionService   CollectionService
	SystemHealthChecker ports.SystemHealthChecker
	// MetricsHandler serves /metrics; promhttp.Handler() when nil
	MetricsHandler http.Handler
}

// NewHTTPServerAdapter creates a new HTTP server adapter
func NewHTTPServerAdapter(opts ServerOptions) (*HTTPServerAdapter, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid server options: %w", err)
	}

	metricsHandler := opts.MetricsHandler
	if metricsHandler == nil {
		metricsHandler = promhttp.Handler()
	}

	server := &HTTPServerAdapter{
		router:         gin.Default(),
		config:         opts.Config,
		collections:    opts.CollectionService,
		healthChecker:  opts.SystemHealthChecker,
		metricsHandler: metricsHandler,
	}

	server.setupRoutes()
	return server, nil
}

// Validate checks if all required dependencies are provided
func (opts *ServerOptions) Validate() error {
	if opts.CollectionService == nil {
		return errors.NewValidationError("collection service is required")
	}
	if opts.SystemHealthChecker == nil {
		return errors.NewValidationError("system health checker is required")
	}
	return nil
}

// setupRoutes configures all HTTP routes
func (s *HTTPServerAdapter) setupRoutes() {
	api := s.router.Group("/api")
	{
		api.POST("/collections", s.submitCollection)
		api.GET("/collections", s.listCollections)
		api.GET("/collections/:id", s.getCollection)
		api.GET("/presets", s.listPresets)
		api.GET("/health", s.getHealth)
	}

	s.router.GET("/metrics", gin.WrapH(s.metricsHandler))
}

// Start begins the HTTP server
func (s *HTTPServerAdapter) Start(ctx context.Context) error {
	slog.Info("Starting HTTP server", "port", s.config.Port)
	return s.router.Run(fmt.Sprintf(":%d", s.config.Port))
}

// GetRouter returns the router for testing purposes
func (s *HTTPServerAdapter) GetRouter() *gin.Engine {
	return s.router
}
