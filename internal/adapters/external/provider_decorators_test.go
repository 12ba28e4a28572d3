package external

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"weatherhistory.app/internal/config"
	"weatherhistory.app/internal/mocks"
	"weatherhistory.app/internal/ports"
	"weatherhistory.app/pkg/errors"
)

func quotaResult() ports.FetchResult {
	return ports.FailedResult(ports.FailureQuotaExceeded, errors.NewQuotaExceededError("quota", nil))
}

func dataResult() ports.FetchResult {
	return ports.NewFetchResult([]ports.WeatherRecord{{Provider: "Stub", ObservedAt: "2024-07-20 10:00:00"}})
}

func TestMissingCredentialMakesNoNetworkCall(t *testing.T) {
	server := newRecordingServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})
	logger := &testLogger{}

	providers := []ports.HistoricalProvider{
		NewOpenWeatherMapProviderAdapter(OpenWeatherMapProviderParams{BaseURL: server.URL, Pacer: &countingPacer{}, Logger: logger}),
		NewStormGlassProviderAdapter(StormGlassProviderParams{BaseURL: server.URL, Logger: logger}),
		NewVisualCrossingProviderAdapter(VisualCrossingProviderParams{BaseURL: server.URL, Logger: logger}),
		NewWolframAlphaProviderAdapter(WolframAlphaProviderParams{BaseURL: server.URL, Logger: logger}),
	}

	for _, provider := range providers {
		t.Run(provider.Name(), func(t *testing.T) {
			assert.NotEmpty(t, provider.CredentialKey())

			result := provider.Fetch(context.Background(), ports.FetchQuery{
				Start:       day(2024, 7, 20),
				End:         day(2024, 7, 25),
				Coordinates: cascavel,
				Location:    "Cascavel",
			})

			assert.Equal(t, ports.FetchStatusFailed, result.Status)
			assert.Equal(t, ports.FailureMissingCredential, result.Failure)
			assert.Empty(t, result.Records)
		})
	}

	assert.Equal(t, 0, server.count())
}

func TestQuotaGuard_OpensOnQuotaExceeded(t *testing.T) {
	stub := &stubProvider{name: ports.ProviderStormGlass, key: ports.CredentialStormGlass,
		results: []ports.FetchResult{quotaResult(), dataResult()}}
	guard := NewQuotaGuard(stub, time.Hour, &testLogger{})

	first := guard.Fetch(context.Background(), ports.FetchQuery{})
	assert.Equal(t, ports.FailureQuotaExceeded, first.Failure)
	assert.Equal(t, gobreaker.StateOpen, guard.State(""))

	second := guard.Fetch(context.Background(), ports.FetchQuery{})
	assert.Equal(t, ports.FetchStatusFailed, second.Status)
	assert.Equal(t, ports.FailureQuotaExceeded, second.Failure)
	assert.True(t, errors.IsQuotaExceededError(second.Err))
	assert.Equal(t, 1, stub.calls)

	assert.Equal(t, ports.ProviderStormGlass, guard.Name())
	assert.Equal(t, ports.CredentialStormGlass, guard.CredentialKey())
}

func TestQuotaGuard_BreakerPerCredential(t *testing.T) {
	stub := &stubProvider{name: ports.ProviderStormGlass, key: ports.CredentialStormGlass,
		results: []ports.FetchResult{quotaResult(), dataResult()}}
	logger := &testLogger{}
	guard := NewQuotaGuard(stub, time.Hour, logger)

	exhausted := guard.Fetch(context.Background(), ports.FetchQuery{Credential: "caller-a"})
	assert.Equal(t, ports.FailureQuotaExceeded, exhausted.Failure)
	assert.Equal(t, gobreaker.StateOpen, guard.State("caller-a"))
	assert.Equal(t, gobreaker.StateClosed, guard.State("caller-b"))

	other := guard.Fetch(context.Background(), ports.FetchQuery{Credential: "caller-b"})
	assert.True(t, other.HasData())
	assert.Equal(t, 2, stub.calls)

	blocked := guard.Fetch(context.Background(), ports.FetchQuery{Credential: "caller-a"})
	assert.Equal(t, ports.FailureQuotaExceeded, blocked.Failure)
	assert.Equal(t, 2, stub.calls)

	require.NotEmpty(t, logger.entries)
	for _, entry := range logger.entries {
		assert.NotEqual(t, "caller-a", entry.fields["credential"])
	}
}

func TestQuotaGuard_ClosesAfterCooldown(t *testing.T) {
	stub := &stubProvider{name: "Stub", results: []ports.FetchResult{quotaResult(), dataResult()}}
	guard := NewQuotaGuard(stub, 30*time.Millisecond, &testLogger{})

	guard.Fetch(context.Background(), ports.FetchQuery{})
	time.Sleep(50 * time.Millisecond)

	result := guard.Fetch(context.Background(), ports.FetchQuery{})
	assert.True(t, result.HasData())
	assert.Equal(t, gobreaker.StateClosed, guard.State(""))
	assert.Equal(t, 2, stub.calls)
}

func TestQuotaGuard_OtherFailuresPassThrough(t *testing.T) {
	transport := ports.FailedResult(ports.FailureTransport, errors.NewExternalAPIError("boom", nil))
	stub := &stubProvider{name: "Stub", results: []ports.FetchResult{transport, transport, dataResult()}}
	guard := NewQuotaGuard(stub, time.Hour, &testLogger{})

	for i := 0; i < 2; i++ {
		result := guard.Fetch(context.Background(), ports.FetchQuery{})
		assert.Equal(t, ports.FailureTransport, result.Failure)
	}
	assert.True(t, guard.Fetch(context.Background(), ports.FetchQuery{}).HasData())
	assert.Equal(t, 3, stub.calls)
	assert.Equal(t, gobreaker.StateClosed, guard.State(""))
}

func TestProviderMetricsDecorator(t *testing.T) {
	ctx := context.Background()
	metrics := mocks.NewMetricsCollector(t)
	metrics.EXPECT().RecordProviderFetch(ctx, "Stub", "data", mock.AnythingOfType("time.Duration")).Once()
	metrics.EXPECT().RecordProviderFetch(ctx, "Stub", "quota_exceeded", mock.AnythingOfType("time.Duration")).Once()

	stub := &stubProvider{name: "Stub", key: "stub", results: []ports.FetchResult{dataResult(), quotaResult()}}
	decorator := NewProviderMetricsDecorator(stub, metrics)

	assert.True(t, decorator.Fetch(ctx, ports.FetchQuery{}).HasData())
	assert.Equal(t, ports.FailureQuotaExceeded, decorator.Fetch(ctx, ports.FetchQuery{}).Failure)
	assert.Equal(t, "stub", decorator.CredentialKey())
}

func TestProviderLoggingDecorator(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		logger := &testLogger{}
		stub := &stubProvider{name: "Stub", results: []ports.FetchResult{dataResult()}}
		decorator := NewProviderLoggingDecorator(stub, logger)

		result := decorator.Fetch(context.Background(), ports.FetchQuery{Start: day(2024, 7, 20), End: day(2024, 7, 21)})

		assert.True(t, result.HasData())
		require.Len(t, logger.entries, 2)
		assert.Equal(t, "Provider request started", logger.entries[0].message)
		assert.Equal(t, "2024-07-20", logger.entries[0].fields["start"])
		assert.Equal(t, "request", logger.entries[0].fields["event"])
		assert.Equal(t, "Provider request completed", logger.entries[1].message)
		assert.Equal(t, 1, logger.entries[1].fields["records"])
		assert.Equal(t, "data", logger.entries[1].fields["status"])
		assert.Contains(t, logger.entries[1].fields, "duration_ms")
		assert.Equal(t, "Stub", decorator.Name())
	})

	t.Run("Failure", func(t *testing.T) {
		logger := &testLogger{}
		stub := &stubProvider{name: "Stub", results: []ports.FetchResult{quotaResult()}}
		decorator := NewProviderLoggingDecorator(stub, logger)

		result := decorator.Fetch(context.Background(), ports.FetchQuery{})

		assert.Equal(t, ports.FetchStatusFailed, result.Status)
		require.Len(t, logger.entries, 2)
		assert.Equal(t, "WARN", logger.entries[1].level)
		assert.Equal(t, "quota_exceeded", logger.entries[1].fields["failure"])
		assert.Equal(t, "QUOTA_EXCEEDED_ERROR: quota", logger.entries[1].fields["error"])
	})
}

func TestProviderRegistry_Order(t *testing.T) {
	tests := []struct {
		name      string
		openMeteo bool
		want      []string
	}{
		{
			name: "FiveFixedProviders",
			want: []string{
				ports.ProviderINMET,
				ports.ProviderOpenWeatherMap,
				ports.ProviderStormGlass,
				ports.ProviderVisualCrossing,
				ports.ProviderWolframAlpha,
			},
		},
		{
			name:      "OpenMeteoAppended",
			openMeteo: true,
			want: []string{
				ports.ProviderINMET,
				ports.ProviderOpenWeatherMap,
				ports.ProviderStormGlass,
				ports.ProviderVisualCrossing,
				ports.ProviderWolframAlpha,
				ports.ProviderOpenMeteo,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry := NewProviderRegistry(ProviderRegistryConfig{
				Providers:     config.ProvidersConfig{OpenMeteoEnabled: tt.openMeteo},
				Collector:     config.CollectorConfig{QuotaCooldownMinutes: 1},
				Logger:        &testLogger{},
				EnableLogging: true,
			})

			providers := registry.Providers()
			names := make([]string, len(providers))
			for i, provider := range providers {
				names[i] = provider.Name()
				assert.IsType(t, &ProviderLoggingDecorator{}, provider)
			}
			assert.Equal(t, tt.want, names)
			assert.Equal(t, len(tt.want), registry.ProviderInfo()["total_providers"])
		})
	}
}
