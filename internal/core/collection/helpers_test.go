package collection

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"weatherhistory.app/internal/ports"
	"weatherhistory.app/pkg/errors"
)

type nopLogger struct{}

func (nopLogger) Debug(string, ...ports.Field) {}
func (nopLogger) Info(string, ...ports.Field)  {}
func (nopLogger) Warn(string, ...ports.Field)  {}
func (nopLogger) Error(string, ...ports.Field) {}

// fakeProvider answers every query through fetch and remembers the queries
type fakeProvider struct {
	name  string
	key   string
	fetch func(query ports.FetchQuery) ports.FetchResult

	mu      sync.Mutex
	queries []ports.FetchQuery
}

func (p *fakeProvider) Name() string          { return p.name }
func (p *fakeProvider) CredentialKey() string { return p.key }

func (p *fakeProvider) Fetch(ctx context.Context, query ports.FetchQuery) ports.FetchResult {
	p.mu.Lock()
	p.queries = append(p.queries, query)
	p.mu.Unlock()
	if p.fetch == nil {
		return ports.NewFetchResult(nil)
	}
	return p.fetch(query)
}

func (p *fakeProvider) calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.queries)
}

// hourlyTemperature returns one record at 10:00 on the first queried day
func hourlyTemperature(provider string, value float64) func(ports.FetchQuery) ports.FetchResult {
	return func(q ports.FetchQuery) ports.FetchResult {
		return ports.NewFetchResult([]ports.WeatherRecord{{
			Provider:     provider,
			ObservedAt:   q.Start.Add(10 * time.Hour).Format("2006-01-02 15:04:05"),
			TemperatureC: ports.Float(value),
			RainMM:       ports.Float(1.5),
		}})
	}
}

// memoryYearCache is a map-backed YearCache with injectable failures
type memoryYearCache struct {
	mu      sync.Mutex
	entries map[string][]ports.WeatherRecord
	getErr  error
	putErr  error
	puts    int
}

func newMemoryYearCache() *memoryYearCache {
	return &memoryYearCache{entries: make(map[string][]ports.WeatherRecord)}
}

func yearKey(provider, location string, year int) string {
	return fmt.Sprintf("%s|%s|%d", provider, location, year)
}

func (c *memoryYearCache) Get(ctx context.Context, provider, location string, year int) ([]ports.WeatherRecord, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	records, ok := c.entries[yearKey(provider, location, year)]
	return records, ok, nil
}

func (c *memoryYearCache) Put(ctx context.Context, provider, location string, year int, records []ports.WeatherRecord) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.puts++
	if c.putErr != nil {
		return c.putErr
	}
	if len(records) == 0 {
		return nil
	}
	c.entries[yearKey(provider, location, year)] = records
	return nil
}

func (c *memoryYearCache) keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	keys := make([]string, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// memoryRunRepository is an in-process CollectionRunRepository
type memoryRunRepository struct {
	mu   sync.Mutex
	runs map[string]ports.CollectionRunData
	seq  []string
}

func newMemoryRunRepository() *memoryRunRepository {
	return &memoryRunRepository{runs: make(map[string]ports.CollectionRunData)}
}

func (r *memoryRunRepository) Save(ctx context.Context, run *ports.CollectionRunData) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs[run.ID] = *run
	r.seq = append(r.seq, run.ID)
	return nil
}

func (r *memoryRunRepository) Update(ctx context.Context, run *ports.CollectionRunData) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.runs[run.ID]; !ok {
		return errors.NewNotFoundError("run not found")
	}
	r.runs[run.ID] = *run
	return nil
}

func (r *memoryRunRepository) UpdateProgress(ctx context.Context, id string, progress ports.Progress) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	run, ok := r.runs[id]
	if !ok {
		return errors.NewNotFoundError("run not found")
	}
	run.ProgressMessage = progress.Message
	run.ProgressCurrent = progress.Current
	run.ProgressTotal = progress.Total
	r.runs[id] = run
	return nil
}

func (r *memoryRunRepository) FindByID(ctx context.Context, id string) (*ports.CollectionRunData, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	run, ok := r.runs[id]
	if !ok {
		return nil, errors.NewNotFoundError("run not found")
	}
	return &run, nil
}

func (r *memoryRunRepository) List(ctx context.Context, limit int) ([]*ports.CollectionRunData, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*ports.CollectionRunData
	for i := len(r.seq) - 1; i >= 0 && len(out) < limit; i-- {
		run := r.runs[r.seq[i]]
		out = append(out, &run)
	}
	return out, nil
}

func (r *memoryRunRepository) status(id string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.runs[id].Status
}
