package external

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode"

	"weatherhistory.app/internal/ports"
	"weatherhistory.app/pkg/errors"
)

// YearCacheAdapter bridges the generic CacheProvider to the per-year record cache
type YearCacheAdapter struct {
	cacheProvider ports.CacheProvider
	backend       string
	metrics       ports.MetricsCollector
}

// YearCacheOptions configures the adapter; Metrics is optional
type YearCacheOptions struct {
	Backend string
	Metrics ports.MetricsCollector
}

// NewYearCacheAdapter creates a year cache using the given cache provider
func NewYearCacheAdapter(cacheProvider ports.CacheProvider, opts YearCacheOptions) *YearCacheAdapter {
	backend := opts.Backend
	if backend == "" {
		backend = "unknown"
	}
	return &YearCacheAdapter{
		cacheProvider: cacheProvider,
		backend:       backend,
		metrics:       opts.Metrics,
	}
}

// YearCacheKey builds the deterministic key for a provider, location and year
func YearCacheKey(provider, location string, year int) string {
	return fmt.Sprintf("%s_%s_%d", strings.ReplaceAll(provider, " ", ""), NormalizeLocation(location), year)
}

// NormalizeLocation lowercases the location and collapses every run of
// characters that are not letters or digits into a single underscore.
func NormalizeLocation(location string) string {
	var b strings.Builder
	pendingSep := false
	for _, r := range strings.ToLower(strings.TrimSpace(location)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(r)
			continue
		}
		pendingSep = true
	}
	return b.String()
}

// Get returns the cached records and whether the key was present
func (y *YearCacheAdapter) Get(ctx context.Context, provider, location string, year int) ([]ports.WeatherRecord, bool, error) {
	data, err := y.cacheProvider.Get(ctx, YearCacheKey(provider, location, year))
	if err != nil {
		if errors.IsNotFoundError(err) {
			y.record(ctx, false)
			return nil, false, nil
		}
		return nil, false, err
	}

	var records []ports.WeatherRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, false, errors.NewStorageError("failed to deserialize cached records", err)
	}

	y.record(ctx, true)
	return records, true, nil
}

// Put stores records without expiry. Empty slices are ignored so a provider
// that returned nothing is queried again on the next run.
func (y *YearCacheAdapter) Put(ctx context.Context, provider, location string, year int, records []ports.WeatherRecord) error {
	if len(records) == 0 {
		return nil
	}

	data, err := json.Marshal(records)
	if err != nil {
		return errors.NewStorageError("failed to serialize records", err)
	}

	return y.cacheProvider.Set(ctx, YearCacheKey(provider, location, year), data, 0)
}

func (y *YearCacheAdapter) record(ctx context.Context, hit bool) {
	if y.metrics != nil {
		y.metrics.RecordYearCacheLookup(ctx, y.backend, hit)
	}
}
