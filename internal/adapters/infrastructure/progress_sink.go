package infrastructure

import (
	"context"

	"weatherhistory.app/internal/ports"
)

// LoggingProgressSink writes every progress step to the logger
type LoggingProgressSink struct {
	logger ports.Logger
	fields []ports.Field
}

// NewLoggingProgressSink creates a sink; fields are attached to every entry
func NewLoggingProgressSink(logger ports.Logger, fields ...ports.Field) *LoggingProgressSink {
	return &LoggingProgressSink{logger: logger, fields: fields}
}

func (s *LoggingProgressSink) Report(ctx context.Context, progress ports.Progress) {
	fields := append([]ports.Field{
		ports.F("current", progress.Current),
		ports.F("total", progress.Total),
	}, s.fields...)
	s.logger.Info(progress.Message, fields...)
}

// RunProgressSink persists progress on the collection run record
type RunProgressSink struct {
	runID  string
	repo   ports.CollectionRunRepository
	logger ports.Logger
}

// NewRunProgressSink creates a sink bound to one run
func NewRunProgressSink(runID string, repo ports.CollectionRunRepository, logger ports.Logger) *RunProgressSink {
	return &RunProgressSink{runID: runID, repo: repo, logger: logger}
}

// Report stores the step; a failed write is logged and dropped
func (s *RunProgressSink) Report(ctx context.Context, progress ports.Progress) {
	if err := s.repo.UpdateProgress(context.WithoutCancel(ctx), s.runID, progress); err != nil {
		s.logger.Warn("Failed to persist collection progress",
			ports.F("run_id", s.runID),
			ports.F("error", err))
	}
}

// MultiProgressSink forwards each step to every sink in order
type MultiProgressSink []ports.ProgressSink

func (m MultiProgressSink) Report(ctx context.Context, progress ports.Progress) {
	for _, sink := range m {
		if sink != nil {
			sink.Report(ctx, progress)
		}
	}
}
