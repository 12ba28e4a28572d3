package external

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	stderrors "errors"
	"sync"
	"time"

	"github.com/sony/gobreaker"
	"weatherhistory.app/internal/ports"
	"weatherhistory.app/pkg/errors"
)

// ProviderLoggingDecorator decorates historical providers with structured logging
type ProviderLoggingDecorator struct {
	provider ports.HistoricalProvider
	logger   ports.Logger
}

// NewProviderLoggingDecorator creates a new logging decorator for historical providers
func NewProviderLoggingDecorator(provider ports.HistoricalProvider, logger ports.Logger) *ProviderLoggingDecorator {
	return &ProviderLoggingDecorator{
		provider: provider,
		logger:   logger,
	}
}

func (d *ProviderLoggingDecorator) Name() string {
	return d.provider.Name()
}

func (d *ProviderLoggingDecorator) CredentialKey() string {
	return d.provider.CredentialKey()
}

// Fetch wraps the provider call with structured logging
func (d *ProviderLoggingDecorator) Fetch(ctx context.Context, query ports.FetchQuery) ports.FetchResult {
	d.logger.Info("Provider request started",
		ports.F("provider", d.provider.Name()),
		ports.F("start", query.Start.Format("2006-01-02")),
		ports.F("end", query.End.Format("2006-01-02")),
		ports.F("event", "request"))

	startTime := time.Now()
	result := d.provider.Fetch(ctx, query)
	duration := time.Since(startTime)

	if result.Status == ports.FetchStatusFailed {
		message := ""
		if result.Err != nil {
			message = result.Err.Error()
		}
		d.logger.Warn("Provider request failed",
			ports.F("provider", d.provider.Name()),
			ports.F("event", "error"),
			ports.F("failure", result.Failure.String()),
			ports.F("duration_ms", duration.Milliseconds()),
			ports.F("error", message))
		return result
	}

	d.logger.Info("Provider request completed",
		ports.F("provider", d.provider.Name()),
		ports.F("event", "response"),
		ports.F("status", result.Status.String()),
		ports.F("records", len(result.Records)),
		ports.F("duration_ms", duration.Milliseconds()))

	return result
}

// ProviderMetricsDecorator records fetch outcomes and latency per provider
type ProviderMetricsDecorator struct {
	provider ports.HistoricalProvider
	metrics  ports.MetricsCollector
}

func NewProviderMetricsDecorator(provider ports.HistoricalProvider, metrics ports.MetricsCollector) *ProviderMetricsDecorator {
	return &ProviderMetricsDecorator{
		provider: provider,
		metrics:  metrics,
	}
}

func (d *ProviderMetricsDecorator) Name() string {
	return d.provider.Name()
}

func (d *ProviderMetricsDecorator) CredentialKey() string {
	return d.provider.CredentialKey()
}

func (d *ProviderMetricsDecorator) Fetch(ctx context.Context, query ports.FetchQuery) ports.FetchResult {
	start := time.Now()
	result := d.provider.Fetch(ctx, query)

	status := result.Status.String()
	if result.Status == ports.FetchStatusFailed {
		status = result.Failure.String()
	}
	d.metrics.RecordProviderFetch(ctx, d.provider.Name(), status, time.Since(start))
	return result
}

var errQuotaExceeded = stderrors.New("provider quota exceeded")

// QuotaGuard stops calling a provider for a cooldown period once it has
// reported an exhausted quota. Breakers are kept per credential; other
// failures never open them.
type QuotaGuard struct {
	provider ports.HistoricalProvider
	cooldown time.Duration
	logger   ports.Logger

	mu       sync.Mutex
	breakers map[string]*gobreaker.CircuitBreaker
}

// NewQuotaGuard wraps provider with breakers that stay open for cooldown
func NewQuotaGuard(provider ports.HistoricalProvider, cooldown time.Duration, logger ports.Logger) *QuotaGuard {
	return &QuotaGuard{
		provider: provider,
		cooldown: cooldown,
		logger:   logger,
		breakers: make(map[string]*gobreaker.CircuitBreaker),
	}
}

// credentialFingerprint identifies a credential in logs without revealing it
func credentialFingerprint(credential string) string {
	if credential == "" {
		return "keyless"
	}
	sum := sha256.Sum256([]byte(credential))
	return hex.EncodeToString(sum[:4])
}

func (g *QuotaGuard) breaker(credential string) *gobreaker.CircuitBreaker {
	fingerprint := credentialFingerprint(credential)

	g.mu.Lock()
	defer g.mu.Unlock()

	if cb, ok := g.breakers[fingerprint]; ok {
		return cb
	}
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        g.provider.Name(),
		MaxRequests: 1,
		Timeout:     g.cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 1
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			g.logger.Info("Provider quota guard changed state",
				ports.F("provider", name),
				ports.F("credential", fingerprint),
				ports.F("from", from.String()),
				ports.F("to", to.String()))
		},
	})
	g.breakers[fingerprint] = cb
	return cb
}

func (g *QuotaGuard) Name() string {
	return g.provider.Name()
}

func (g *QuotaGuard) CredentialKey() string {
	return g.provider.CredentialKey()
}

// State exposes the breaker state of a credential; unseen credentials are closed
func (g *QuotaGuard) State(credential string) gobreaker.State {
	g.mu.Lock()
	cb, ok := g.breakers[credentialFingerprint(credential)]
	g.mu.Unlock()
	if !ok {
		return gobreaker.StateClosed
	}
	return cb.State()
}

func (g *QuotaGuard) Fetch(ctx context.Context, query ports.FetchQuery) ports.FetchResult {
	out, err := g.breaker(query.Credential).Execute(func() (interface{}, error) {
		result := g.provider.Fetch(ctx, query)
		if result.Status == ports.FetchStatusFailed && result.Failure == ports.FailureQuotaExceeded {
			return result, errQuotaExceeded
		}
		return result, nil
	})

	if result, ok := out.(ports.FetchResult); ok {
		return result
	}

	g.logger.Debug("Provider skipped while quota guard is open",
		ports.F("provider", g.provider.Name()),
		ports.F("error", err.Error()))
	return ports.FailedResult(ports.FailureQuotaExceeded,
		errors.NewQuotaExceededError(g.provider.Name()+" quota exhausted, waiting for cooldown", err))
}
