package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"weatherhistory.app/internal/adapters/api"
	"weatherhistory.app/internal/adapters/infrastructure"
	"weatherhistory.app/internal/config"
	"weatherhistory.app/internal/core/collection"
	"weatherhistory.app/internal/ports"
)

const healthCheckTimeout = 5 * time.Second

type Application struct {
	config *config.Config

	// Use Cases
	collectionUseCase *collection.UseCase
	runService        *collection.RunService

	// Adapters
	httpServer *http.Server
	router     *gin.Engine

	// Infrastructure
	container *DependencyContainer
	ports     *ports.ApplicationPorts
}

func NewApplication() (*Application, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	container, err := NewDependencyContainer(cfg, DependencyOptions{Database: true})
	if err != nil {
		return nil, fmt.Errorf("create dependency container: %w", err)
	}

	app, err := NewApplicationWithDependencies(cfg, container)
	if err != nil {
		_ = container.Cleanup()
		return nil, err
	}
	return app, nil
}

// NewApplicationWithDependencies creates an application with provided dependencies (for testing)
func NewApplicationWithDependencies(cfg *config.Config, container *DependencyContainer) (*Application, error) {
	app := &Application{
		config:    cfg,
		container: container,
		ports:     container.ApplicationPorts(),
	}

	if err := app.initializeUseCases(); err != nil {
		return nil, fmt.Errorf("initialize use cases: %w", err)
	}

	if err := app.initializeAdapters(); err != nil {
		return nil, fmt.Errorf("initialize adapters: %w", err)
	}

	return app, nil
}

func (a *Application) initializeUseCases() error {
	slog.Info("Initializing use cases...")

	useCase, err := a.container.NewCollectionUseCase()
	if err != nil {
		return fmt.Errorf("create collection use case: %w", err)
	}
	a.collectionUseCase = useCase

	runs := a.ports.CollectionRuns
	logger := a.ports.Logger
	runService, err := collection.NewRunService(collection.RunServiceDependencies{
		Collector: useCase,
		Runs:      runs,
		Sinks: func(id string) ports.ProgressSink {
			return infrastructure.MultiProgressSink{
				infrastructure.NewRunProgressSink(id, runs, logger),
				infrastructure.NewLoggingProgressSink(logger, ports.F("run_id", id)),
			}
		},
		Logger:    logger,
		QueueSize: a.config.Collector.QueueSize,
	})
	if err != nil {
		return fmt.Errorf("create run service: %w", err)
	}
	a.runService = runService

	slog.Info("Use cases initialized successfully")
	return nil
}

func (a *Application) initializeAdapters() error {
	slog.Info("Initializing adapters...")

	systemHealthChecker := infrastructure.NewSystemHealthChecker(healthCheckTimeout,
		infrastructure.NewDatabaseHealthChecker(a.container.Database()),
		infrastructure.NewCacheHealthChecker(a.ports.CacheProvider, a.config.Cache.Type.String()),
		infrastructure.NewProvidersHealthChecker(a.ports.Providers, a.ports.Credentials),
	)

	httpAdapter, err := api.NewHTTPServerAdapter(api.ServerOptions{
		Config: api.ServerConfig{
			Port: a.config.Server.Port,
		},
		CollectionService:   a.runService,
		SystemHealthChecker: systemHealthChecker,
		MetricsHandler:      promhttp.HandlerFor(a.container.Registry(), promhttp.HandlerOpts{}),
	})
	if err != nil {
		return fmt.Errorf("create HTTP adapter: %w", err)
	}

	a.router = httpAdapter.GetRouter()

	a.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", a.config.Server.Port),
		Handler:      httpAdapter.GetRouter(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	slog.Info("Adapters initialized successfully")
	return nil
}

func (a *Application) Start(ctx context.Context) error {
	slog.Info("Starting application...")

	a.runService.Start(ctx)

	slog.Info("Starting HTTP server", "port", a.config.Server.Port)
	if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	return nil
}

func (a *Application) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down application...")

	if err := a.httpServer.Shutdown(ctx); err != nil {
		slog.Error("Error shutting down HTTP server", "error", err)
		return fmt.Errorf("shutdown HTTP server: %w", err)
	}

	a.runService.Stop()

	if err := a.container.Cleanup(); err != nil {
		slog.Warn("Error releasing resources", "error", err)
	}

	slog.Info("Application shutdown complete")
	return nil
}

// Config returns the application configuration
func (a *Application) Config() *config.Config {
	return a.config
}

// GetRouter returns the Gin router for testing
func (a *Application) GetRouter() *gin.Engine {
	return a.router
}

// GetCollectionUseCase returns the collection use case for testing
func (a *Application) GetCollectionUseCase() *collection.UseCase {
	return a.collectionUseCase
}

// GetRunService returns the run service for testing
func (a *Application) GetRunService() *collection.RunService {
	return a.runService
}
