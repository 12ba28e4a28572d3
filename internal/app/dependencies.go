package app

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"weatherhistory.app/internal/adapters/database"
	"weatherhistory.app/internal/adapters/external"
	"weatherhistory.app/internal/adapters/infrastructure"
	"weatherhistory.app/internal/config"
	"weatherhistory.app/internal/core/collection"
	"weatherhistory.app/internal/core/consolidation"
	"weatherhistory.app/internal/core/report"
	"weatherhistory.app/internal/ports"
)

type DependencyContainer struct {
	config   *config.Config
	options  DependencyOptions
	db       *gorm.DB
	registry *prometheus.Registry
	closers  []io.Closer
	ports    *ports.ApplicationPorts
}

// DependencyOptions selects the optional parts of the container
type DependencyOptions struct {
	// Database opens the run repository; the CLI runs without it
	Database bool
	// Registry receives the metrics; a fresh registry when nil
	Registry *prometheus.Registry
}

func NewDependencyContainer(cfg *config.Config, opts DependencyOptions) (*DependencyContainer, error) {
	registry := opts.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	container := &DependencyContainer{
		config:   cfg,
		options:  opts,
		registry: registry,
	}

	if opts.Database {
		if err := container.initializeDatabase(); err != nil {
			return nil, fmt.Errorf("initialize database: %w", err)
		}
	}

	if err := container.initializePorts(); err != nil {
		_ = container.Cleanup()
		return nil, fmt.Errorf("initialize ports: %w", err)
	}

	return container, nil
}

func (c *DependencyContainer) initializeDatabase() error {
	slog.Info("Initializing database connection...", "driver", c.config.Database.Driver)

	var dialector gorm.Dialector
	switch c.config.Database.Driver {
	case "postgres":
		dialector = postgres.Open(c.config.Database.GetDSN())
	default:
		if dir := filepath.Dir(c.config.Database.SQLitePath); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("create sqlite directory: %w", err)
			}
		}
		dialector = sqlite.Open(c.config.Database.SQLitePath)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}

	if err := c.runMigrations(db); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	c.db = db
	slog.Info("Database connection established successfully")
	return nil
}

func (c *DependencyContainer) runMigrations(db *gorm.DB) error {
	slog.Info("Running database migrations...")

	if err := db.AutoMigrate(&database.CollectionRunModel{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	slog.Info("Database migrations completed successfully")
	return nil
}

func (c *DependencyContainer) initializePorts() error {
	slog.Info("Initializing ports...")

	var logger ports.Logger = infrastructure.NewSlogLoggerAdapter(nil)
	if c.config.Logging.ToFile {
		fileLogger, err := infrastructure.NewFileLoggerAdapter(c.config.Logging.FilePath, c.config.Logging.Level)
		if err != nil {
			slog.Warn("Failed to create file logger, falling back to slog", "error", err)
		} else {
			c.closers = append(c.closers, fileLogger)
			logger = infrastructure.TeeLogger{logger, fileLogger}
			slog.Info("File logging enabled", "path", c.config.Logging.FilePath)
		}
	}

	metrics := infrastructure.NewPrometheusMetricsCollector(c.registry)

	cacheFactory := external.NewCacheProviderFactory()
	cacheProvider, err := cacheFactory.CreateCacheProvider(&c.config.Cache)
	if err != nil {
		slog.Error("Failed to create cache provider", "error", err)
		return fmt.Errorf("create cache provider: %w", err)
	}
	if closer, ok := cacheProvider.(io.Closer); ok {
		c.closers = append(c.closers, closer)
	}

	yearCache := external.NewYearCacheAdapter(cacheProvider, external.YearCacheOptions{
		Backend: c.config.Cache.Type.String(),
		Metrics: metrics,
	})

	slog.Info("Cache provider initialized",
		"type", c.config.Cache.Type.String(),
		"dir", c.config.Cache.Dir)

	location, err := c.config.Collector.Location()
	if err != nil {
		return err
	}

	registry := external.NewProviderRegistry(external.ProviderRegistryConfig{
		Providers:     c.config.Providers,
		Collector:     c.config.Collector,
		Location:      location,
		Metrics:       metrics,
		Logger:        logger,
		EnableLogging: c.config.Providers.EnableLogging,
	})
	slog.Info("Historical providers registered", "providers", registry.ProviderInfo()["provider_order"])

	geocoder := external.NewNominatimGeocoderAdapter(external.NominatimGeocoderParams{
		BaseURL:   c.config.Providers.NominatimBaseURL,
		UserAgent: c.config.Providers.NominatimUserAgent,
		Timeout:   c.config.Collector.HTTPTimeout(),
		Logger:    logger,
	})

	credentials := infrastructure.NewFileCredentialsProvider(
		c.config.Providers.Credentials(),
		c.config.Providers.CredentialsFile,
	)

	c.ports = &ports.ApplicationPorts{
		Providers:     registry.Providers(),
		YearCache:     yearCache,
		Geocoder:      geocoder,
		Credentials:   credentials,
		CacheProvider: cacheProvider,
		Metrics:       metrics,
		Logger:        logger,
	}
	if cacheMetrics, ok := cacheProvider.(ports.CacheMetrics); ok {
		c.ports.CacheMetrics = cacheMetrics
	}
	if c.db != nil {
		c.ports.CollectionRuns = database.NewCollectionRunRepositoryAdapter(c.db)
		c.ports.Database = c.db
	}

	slog.Info("Ports initialized successfully")
	return nil
}

// NewCollectionUseCase builds the collection orchestrator over the container's ports
func (c *DependencyContainer) NewCollectionUseCase() (*collection.UseCase, error) {
	deps := collection.UseCaseDependencies{
		Providers:   c.ports.Providers,
		YearCache:   c.ports.YearCache,
		Geocoder:    c.ports.Geocoder,
		Credentials: c.ports.Credentials,
		Engine:      consolidation.NewEngine(c.config.Collector.OutputDir, c.ports.Logger),
		Defaults: ports.Coordinates{
			Latitude:  c.config.Collector.DefaultLatitude,
			Longitude: c.config.Collector.DefaultLongitude,
		},
		Logger:  c.ports.Logger,
		Metrics: c.ports.Metrics,
	}
	if c.config.Collector.EnableReport {
		deps.Reports = report.NewGenerator(c.ports.Logger)
	}

	return collection.NewUseCase(deps)
}

func (c *DependencyContainer) ApplicationPorts() *ports.ApplicationPorts {
	return c.ports
}

func (c *DependencyContainer) Database() *gorm.DB {
	return c.db
}

// Registry returns the Prometheus registry the metrics are registered on
func (c *DependencyContainer) Registry() *prometheus.Registry {
	return c.registry
}

// Cleanup closes the cache, log file and database connections
func (c *DependencyContainer) Cleanup() error {
	var firstErr error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i].Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	c.closers = nil

	if c.db != nil {
		if db, err := c.db.DB(); err == nil {
			if err := db.Close(); err != nil && firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}
