package infrastructure

import (
	"context"
	"time"

	"weatherhistory.app/internal/ports"
)

const (
	statusHealthy   = "healthy"
	statusUnhealthy = "unhealthy"
	cacheProbeKey   = "health_probe"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// CacheHealthChecker verifies the cache backend answers
type CacheHealthChecker struct {
	cache   ports.CacheProvider
	backend string
}

// NewCacheHealthChecker creates a new cache health checker
func NewCacheHealthChecker(cache ports.CacheProvider, backend string) *CacheHealthChecker {
	return &CacheHealthChecker{cache: cache, backend: backend}
}

// Check pings backends that support it and probes the rest with Exists
func (c *CacheHealthChecker) Check(ctx context.Context) ports.HealthStatus {
	status := ports.HealthStatus{
		Component: "cache",
		Details:   map[string]interface{}{"backend": c.backend},
	}

	if c.cache == nil {
		status.Status = statusUnhealthy
		status.Error = "cache provider is nil"
		return status
	}

	var err error
	if p, ok := c.cache.(pinger); ok {
		err = p.Ping(ctx)
	} else {
		_, err = c.cache.Exists(ctx, cacheProbeKey)
	}
	if err != nil {
		status.Status = statusUnhealthy
		status.Error = err.Error()
		return status
	}

	if m, ok := c.cache.(ports.CacheMetrics); ok {
		stats := m.GetStats()
		status.Details["hits"] = stats.Hits
		status.Details["misses"] = stats.Misses
		status.Details["hit_ratio"] = stats.HitRatio
	}

	status.Status = statusHealthy
	return status
}

// ProvidersHealthChecker reports which providers are registered and credentialed
type ProvidersHealthChecker struct {
	providers   []ports.HistoricalProvider
	credentials ports.CredentialsProvider
}

// NewProvidersHealthChecker creates a new providers health checker
func NewProvidersHealthChecker(providers []ports.HistoricalProvider, credentials ports.CredentialsProvider) *ProvidersHealthChecker {
	return &ProvidersHealthChecker{providers: providers, credentials: credentials}
}

// Check never calls the upstream APIs; a missing key is reported, not failed
func (p *ProvidersHealthChecker) Check(ctx context.Context) ports.HealthStatus {
	status := ports.HealthStatus{
		Component: "providers",
		Status:    statusHealthy,
		Details:   make(map[string]interface{}),
	}

	if len(p.providers) == 0 {
		status.Status = statusUnhealthy
		status.Error = "no providers registered"
		return status
	}

	var creds map[string]string
	if p.credentials != nil {
		var err error
		creds, err = p.credentials.Credentials(ctx)
		if err != nil {
			status.Error = err.Error()
		}
	}

	for _, provider := range p.providers {
		key := provider.CredentialKey()
		switch {
		case key == "":
			status.Details[provider.Name()] = "keyless"
		case creds[key] != "":
			status.Details[provider.Name()] = "configured"
		default:
			status.Details[provider.Name()] = "missing credential"
		}
	}
	return status
}

// SystemHealthChecker aggregates the registered checkers by component
type SystemHealthChecker struct {
	checkers []ports.HealthChecker
	timeout  time.Duration
}

// NewSystemHealthChecker creates a new system health checker; nil checkers are skipped
func NewSystemHealthChecker(timeout time.Duration, checkers ...ports.HealthChecker) *SystemHealthChecker {
	filtered := make([]ports.HealthChecker, 0, len(checkers))
	for _, c := range checkers {
		if c != nil {
			filtered = append(filtered, c)
		}
	}
	return &SystemHealthChecker{checkers: filtered, timeout: timeout}
}

// CheckAll performs health checks on all components
func (s *SystemHealthChecker) CheckAll(ctx context.Context) map[string]ports.HealthStatus {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	results := make(map[string]ports.HealthStatus, len(s.checkers))
	for _, checker := range s.checkers {
		status := checker.Check(ctx)
		results[status.Component] = status
	}
	return results
}

// Healthy reports whether every component is healthy
func Healthy(results map[string]ports.HealthStatus) bool {
	for _, status := range results {
		if status.Status != statusHealthy {
			return false
		}
	}
	return true
}
