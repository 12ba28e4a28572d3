package ports

import (
	"context"
	"time"
)

// CacheProvider defines the contract for caching operations.
// A ttl of zero or less stores the value without expiry.
type CacheProvider interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Clear(ctx context.Context) error
}

// CacheMetrics defines the contract for cache performance tracking
type CacheMetrics interface {
	GetStats() CacheStats
	RecordHit()
	RecordMiss()
	RecordOperation(operation string, duration time.Duration)
}

// CacheStats represents cache performance metrics
type CacheStats struct {
	Hits        int64
	Misses      int64
	TotalOps    int64
	HitRatio    float64
	LastUpdated time.Time
}

// YearCache memoizes provider output per (provider, location, year)
type YearCache interface {
	Get(ctx context.Context, provider, location string, year int) ([]WeatherRecord, bool, error)
	Put(ctx context.Context, provider, location string, year int, records []WeatherRecord) error
}
