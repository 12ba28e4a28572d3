package collection

import (
	"context"
	"fmt"
	"time"

	"weatherhistory.app/internal/core/consolidation"
	"weatherhistory.app/internal/core/planner"
	"weatherhistory.app/internal/core/report"
	"weatherhistory.app/internal/ports"
	"weatherhistory.app/pkg/errors"
)

// Consolidator merges raw provider output and persists the result
type Consolidator interface {
	Consolidate(raw consolidation.RawCollection) (*consolidation.Dataset, error)
	Save(dataset *consolidation.Dataset, location string, now time.Time) (string, error)
}

// ReportGenerator writes the planning report for a saved dataset
type ReportGenerator interface {
	Generate(dataset *consolidation.Dataset, csvPath string, input report.ReportInput) (string, error)
}

// Run outcomes recorded in metrics
const (
	OutcomeSucceeded = "succeeded"
	OutcomeNoData    = "no_data"
	OutcomeFailed    = "failed"
	OutcomeCancelled = "cancelled"
)

type UseCase struct {
	providers   []ports.HistoricalProvider
	cache       ports.YearCache
	geocoder    ports.Geocoder
	credentials ports.CredentialsProvider
	engine      Consolidator
	reports     ReportGenerator
	defaults    ports.Coordinates
	clock       func() time.Time
	logger      ports.Logger
	metrics     ports.MetricsCollector
}

// UseCaseDependencies wires the orchestrator. Credentials, Reports, Metrics
// and Clock are optional.
type UseCaseDependencies struct {
	Providers   []ports.HistoricalProvider
	YearCache   ports.YearCache
	Geocoder    ports.Geocoder
	Credentials ports.CredentialsProvider
	Engine      Consolidator
	Reports     ReportGenerator
	Defaults    ports.Coordinates
	Clock       func() time.Time
	Logger      ports.Logger
	Metrics     ports.MetricsCollector
}

func NewUseCase(deps UseCaseDependencies) (*UseCase, error) {
	if len(deps.Providers) == 0 {
		return nil, errors.NewValidationError("at least one provider is required")
	}
	if deps.YearCache == nil {
		return nil, errors.NewValidationError("year cache is required")
	}
	if deps.Geocoder == nil {
		return nil, errors.NewValidationError("geocoder is required")
	}
	if deps.Engine == nil {
		return nil, errors.NewValidationError("consolidation engine is required")
	}
	if deps.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}

	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}

	return &UseCase{
		providers:   deps.Providers,
		cache:       deps.YearCache,
		geocoder:    deps.Geocoder,
		credentials: deps.Credentials,
		engine:      deps.Engine,
		reports:     deps.Reports,
		defaults:    deps.Defaults,
		clock:       clock,
		logger:      deps.Logger,
		metrics:     deps.Metrics,
	}, nil
}

// Collect runs one full collection: geocode, walk the planned years backward
// querying every provider through the year cache, consolidate and save.
// An empty result is reported as Success=false without an error.
func (uc *UseCase) Collect(ctx context.Context, req CollectRequest, sink ports.ProgressSink) (*CollectResult, error) {
	started := time.Now()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if sink == nil {
		sink = ports.ProgressFunc(func(context.Context, ports.Progress) {})
	}

	uc.logger.Info("Collection started",
		ports.F("location", req.Location),
		ports.F("window", req.Window().String()),
		ports.F("years", req.Years))

	coords := uc.resolve(ctx, req.Location)
	credentials := uc.mergeCredentials(ctx, req.Credentials)
	plans := planner.Plan(req.Window(), req.Years, uc.clock())

	result := &CollectResult{}
	var raw consolidation.RawCollection
	total := len(plans) + 1
	for i, plan := range plans {
		sink.Report(ctx, ports.Progress{
			Message: fmt.Sprintf("Collecting %d (%d/%d)", plan.Year, i+1, len(plans)),
			Current: i + 1,
			Total:   total,
		})
		result.Years = append(result.Years, plan.Year)

		query := ports.FetchQuery{
			Start:       plan.Start,
			End:         plan.QueryEnd(),
			Coordinates: coords,
			Location:    req.Location,
		}
		for _, provider := range uc.providers {
			if err := ctx.Err(); err != nil {
				uc.recordRun(ctx, OutcomeCancelled)
				return nil, err
			}
			query.Credential = credentials[provider.CredentialKey()]
			raw.Add(plan.Year, provider.Name(), uc.collectYear(ctx, provider, plan, query))
		}
	}

	if err := ctx.Err(); err != nil {
		uc.recordRun(ctx, OutcomeCancelled)
		return nil, err
	}
	sink.Report(ctx, ports.Progress{Message: "Consolidating data", Current: total, Total: total})
	result.Records = raw.RecordCount()

	dataset, err := uc.engine.Consolidate(raw)
	if err != nil {
		uc.recordRun(ctx, OutcomeFailed)
		return nil, fmt.Errorf("consolidate collected data: %w", err)
	}
	if dataset.Len() == 0 {
		uc.logger.Warn("No data collected", ports.F("location", req.Location), ports.F("records", result.Records))
		uc.recordRun(ctx, OutcomeNoData)
		result.Message = NoDataMessage
		result.Duration = time.Since(started)
		return result, nil
	}

	csvPath, err := uc.engine.Save(dataset, req.Location, uc.clock())
	if err != nil {
		uc.recordRun(ctx, OutcomeFailed)
		return nil, fmt.Errorf("save consolidated data: %w", err)
	}
	result.Success = true
	result.CSVPath = csvPath
	result.Rows = dataset.Len()
	result.Message = fmt.Sprintf("Collected %d rows into %s", dataset.Len(), csvPath)

	if uc.reports != nil {
		reportPath, err := uc.reports.Generate(dataset, csvPath, report.ReportInput{
			Location:    req.Location,
			Preset:      req.Preset,
			GeneratedAt: uc.clock(),
		})
		if err != nil {
			uc.logger.Warn("Report generation failed", ports.F("csv", csvPath), ports.F("error", err))
		} else {
			result.ReportPath = reportPath
		}
	}

	result.Duration = time.Since(started)
	uc.recordRun(ctx, OutcomeSucceeded)
	uc.logger.Info("Collection finished",
		ports.F("location", req.Location),
		ports.F("csv", csvPath),
		ports.F("rows", result.Rows),
		ports.F("records", result.Records),
		ports.F("duration_ms", result.Duration.Milliseconds()))
	return result, nil
}

// collectYear answers from the year cache when possible and caches new data.
// Cache failures degrade to a miss.
func (uc *UseCase) collectYear(ctx context.Context, provider ports.HistoricalProvider, plan planner.YearPlan, query ports.FetchQuery) []ports.WeatherRecord {
	name := provider.Name()

	records, hit, err := uc.cache.Get(ctx, name, query.Location, plan.Year)
	switch {
	case err != nil:
		uc.logger.Warn("Year cache read failed",
			ports.F("provider", name),
			ports.F("year", plan.Year),
			ports.F("error", err))
	case hit:
		uc.logger.Debug("Year cache hit",
			ports.F("provider", name),
			ports.F("year", plan.Year),
			ports.F("records", len(records)))
		return records
	}

	result := provider.Fetch(ctx, query)
	if result.Status == ports.FetchStatusFailed {
		uc.logger.Warn("Provider returned no data",
			ports.F("provider", name),
			ports.F("year", plan.Year),
			ports.F("failure", result.Failure.String()))
	}
	if !result.HasData() {
		return nil
	}

	if err := uc.cache.Put(ctx, name, query.Location, plan.Year, result.Records); err != nil {
		uc.logger.Warn("Year cache write failed",
			ports.F("provider", name),
			ports.F("year", plan.Year),
			ports.F("error", err))
	}
	return result.Records
}

func (uc *UseCase) resolve(ctx context.Context, location string) ports.Coordinates {
	coords, err := uc.geocoder.Resolve(ctx, location)
	if err != nil {
		uc.logger.Warn("Geocoding failed, using default coordinates",
			ports.F("location", location),
			ports.F("latitude", uc.defaults.Latitude),
			ports.F("longitude", uc.defaults.Longitude),
			ports.F("error", err))
		return uc.defaults
	}
	uc.logger.Debug("Location resolved",
		ports.F("location", location),
		ports.F("latitude", coords.Latitude),
		ports.F("longitude", coords.Longitude))
	return coords
}

// mergeCredentials overlays the request's non-empty keys on the configured ones
func (uc *UseCase) mergeCredentials(ctx context.Context, override map[string]string) map[string]string {
	merged := make(map[string]string)
	if uc.credentials != nil {
		configured, err := uc.credentials.Credentials(ctx)
		if err != nil {
			uc.logger.Warn("Failed to load configured credentials", ports.F("error", err))
		}
		for key, value := range configured {
			merged[key] = value
		}
	}
	for key, value := range override {
		if value != "" {
			merged[key] = value
		}
	}
	return merged
}

func (uc *UseCase) recordRun(ctx context.Context, outcome string) {
	if uc.metrics != nil {
		uc.metrics.RecordCollectionRun(ctx, outcome)
	}
}
