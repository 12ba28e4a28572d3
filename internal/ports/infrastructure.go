package ports

import (
	"context"
	"time"
)

// Logger defines the contract for structured logging
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
}

// Field represents a log field
type Field struct {
	Key   string
	Value interface{}
}

// F creates a log field
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// MetricsCollector defines the contract for metrics collection
type MetricsCollector interface {
	RecordProviderFetch(ctx context.Context, provider, status string, duration time.Duration)
	RecordYearCacheLookup(ctx context.Context, backend string, hit bool)
	RecordCollectionRun(ctx context.Context, status string)
}

// Progress is a one-way status notification from a running collection
type Progress struct {
	Message string
	Current int
	Total   int
}

// ProgressSink receives progress notifications. Implementations must not block.
type ProgressSink interface {
	Report(ctx context.Context, progress Progress)
}

// ProgressFunc adapts a plain function to ProgressSink
type ProgressFunc func(ctx context.Context, progress Progress)

func (f ProgressFunc) Report(ctx context.Context, progress Progress) {
	f(ctx, progress)
}
