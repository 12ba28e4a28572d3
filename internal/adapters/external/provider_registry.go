package external

import (
	"time"

	"weatherhistory.app/internal/config"
	"weatherhistory.app/internal/ports"
)

// ProviderRegistry assembles the historical providers in their fixed query order
type ProviderRegistry struct {
	providers []ports.HistoricalProvider
	logger    ports.Logger
}

// ProviderRegistryConfig holds everything needed to build the provider chain
type ProviderRegistryConfig struct {
	Providers     config.ProvidersConfig
	Collector     config.CollectorConfig
	Location      *time.Location
	Client        HTTPClient
	OWMPacer      Pacer
	Metrics       ports.MetricsCollector
	Logger        ports.Logger
	EnableLogging bool
}

// NewProviderRegistry creates the adapters and wraps each with its decorators:
// quota guard innermost, then metrics, then logging.
func NewProviderRegistry(cfg ProviderRegistryConfig) *ProviderRegistry {
	registry := &ProviderRegistry{logger: cfg.Logger}

	timeout := cfg.Collector.HTTPTimeout()
	cooldown := cfg.Collector.QuotaCooldown()

	adapters := []ports.HistoricalProvider{
		NewPortalINMETProviderAdapter(PortalINMETProviderParams{
			StationsURL: cfg.Providers.INMETStationsURL,
			DataURL:     cfg.Providers.INMETDataURL,
			RadiusKM:    cfg.Collector.StationRadiusKM,
			Timeout:     timeout,
			Client:      cfg.Client,
			Logger:      cfg.Logger,
		}),
		NewOpenWeatherMapProviderAdapter(OpenWeatherMapProviderParams{
			BaseURL:    cfg.Providers.OpenWeatherMapBaseURL,
			ChunkDays:  cfg.Collector.OWMChunkDays,
			ChunkDelay: cfg.Collector.OWMChunkDelay(),
			Location:   cfg.Location,
			Pacer:      cfg.OWMPacer,
			Timeout:    timeout,
			Client:     cfg.Client,
			Logger:     cfg.Logger,
		}),
		NewStormGlassProviderAdapter(StormGlassProviderParams{
			BaseURL: cfg.Providers.StormGlassBaseURL,
			Timeout: timeout,
			Client:  cfg.Client,
			Logger:  cfg.Logger,
		}),
		NewVisualCrossingProviderAdapter(VisualCrossingProviderParams{
			BaseURL: cfg.Providers.VisualCrossingBaseURL,
			Timeout: timeout,
			Client:  cfg.Client,
			Logger:  cfg.Logger,
		}),
		NewWolframAlphaProviderAdapter(WolframAlphaProviderParams{
			BaseURL: cfg.Providers.WolframBaseURL,
			Timeout: timeout,
			Client:  cfg.Client,
			Logger:  cfg.Logger,
		}),
	}

	if cfg.Providers.OpenMeteoEnabled {
		adapters = append(adapters, NewOpenMeteoProviderAdapter(OpenMeteoProviderParams{
			BaseURL: cfg.Providers.OpenMeteoBaseURL,
			Timeout: timeout,
			Client:  cfg.Client,
			Logger:  cfg.Logger,
		}))
	}

	for _, adapter := range adapters {
		var provider ports.HistoricalProvider = NewQuotaGuard(adapter, cooldown, cfg.Logger)
		if cfg.Metrics != nil {
			provider = NewProviderMetricsDecorator(provider, cfg.Metrics)
		}
		if cfg.EnableLogging {
			provider = NewProviderLoggingDecorator(provider, cfg.Logger)
		}
		registry.providers = append(registry.providers, provider)

		cfg.Logger.Debug("Registered historical provider", ports.F("provider", adapter.Name()))
	}

	return registry
}

// Providers returns the providers in query order
func (r *ProviderRegistry) Providers() []ports.HistoricalProvider {
	out := make([]ports.HistoricalProvider, len(r.providers))
	copy(out, r.providers)
	return out
}

// ProviderInfo returns information about configured providers
func (r *ProviderRegistry) ProviderInfo() map[string]interface{} {
	names := make([]string, len(r.providers))
	for i, provider := range r.providers {
		names[i] = provider.Name()
	}

	return map[string]interface{}{
		"total_providers": len(r.providers),
		"provider_order":  names,
	}
}
