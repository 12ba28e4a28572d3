package collection

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/google/uuid"
	"weatherhistory.app/internal/ports"
	"weatherhistory.app/pkg/errors"
)

const defaultListLimit = 20

// Collector is the synchronous collection entry point the run service drives
type Collector interface {
	Collect(ctx context.Context, req CollectRequest, sink ports.ProgressSink) (*CollectResult, error)
}

// RunView is the caller-facing snapshot of a collection run
type RunView struct {
	ID              string     `json:"id"`
	Location        string     `json:"location"`
	Window          string     `json:"window"`
	Years           int        `json:"years"`
	Preset          string     `json:"preset,omitempty"`
	Status          string     `json:"status"`
	ProgressMessage string     `json:"progress_message,omitempty"`
	ProgressCurrent int        `json:"progress_current"`
	ProgressTotal   int        `json:"progress_total"`
	CSVPath         string     `json:"csv_path,omitempty"`
	ReportPath      string     `json:"report_path,omitempty"`
	Message         string     `json:"message,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	FinishedAt      *time.Time `json:"finished_at,omitempty"`
}

func newRunView(run *ports.CollectionRunData) *RunView {
	return &RunView{
		ID:              run.ID,
		Location:        run.Location,
		Window:          fmt.Sprintf("%02d/%02d-%02d/%02d", run.DayStart, run.MonthStart, run.DayEnd, run.MonthEnd),
		Years:           run.Years,
		Preset:          run.Preset,
		Status:          run.Status,
		ProgressMessage: run.ProgressMessage,
		ProgressCurrent: run.ProgressCurrent,
		ProgressTotal:   run.ProgressTotal,
		CSVPath:         run.CSVPath,
		ReportPath:      run.ReportPath,
		Message:         run.Message,
		CreatedAt:       run.CreatedAt,
		UpdatedAt:       run.UpdatedAt,
		FinishedAt:      run.FinishedAt,
	}
}

type job struct {
	id  string
	req CollectRequest
}

// RunService queues submitted collections and executes them one at a time on
// a single background worker.
type RunService struct {
	collector Collector
	runs      ports.CollectionRunRepository
	sinks     func(id string) ports.ProgressSink
	logger    ports.Logger

	queue  chan job
	cancel context.CancelFunc
	wg     sync.WaitGroup
	mu     sync.Mutex
}

type RunServiceDependencies struct {
	Collector Collector
	Runs      ports.CollectionRunRepository
	// Sinks builds the progress sink of a run; progress is dropped when nil
	Sinks     func(id string) ports.ProgressSink
	Logger    ports.Logger
	QueueSize int
}

func NewRunService(deps RunServiceDependencies) (*RunService, error) {
	if deps.Collector == nil {
		return nil, errors.NewValidationError("collector is required")
	}
	if deps.Runs == nil {
		return nil, errors.NewValidationError("collection run repository is required")
	}
	if deps.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}
	size := deps.QueueSize
	if size < 1 {
		size = 1
	}

	return &RunService{
		collector: deps.Collector,
		runs:      deps.Runs,
		sinks:     deps.Sinks,
		logger:    deps.Logger,
		queue:     make(chan job, size),
	}, nil
}

// Submit validates and persists a pending run, then queues it for the worker
func (s *RunService) Submit(ctx context.Context, req CollectRequest) (*RunView, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	run := &ports.CollectionRunData{
		ID:         uuid.NewString(),
		Location:   req.Location,
		DayStart:   req.DayStart,
		MonthStart: req.MonthStart,
		DayEnd:     req.DayEnd,
		MonthEnd:   req.MonthEnd,
		Years:      req.Years,
		Preset:     req.Preset,
		Status:     ports.RunStatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.runs.Save(ctx, run); err != nil {
		return nil, fmt.Errorf("save collection run: %w", err)
	}

	select {
	case s.queue <- job{id: run.ID, req: req}:
	default:
		s.finish(ctx, run, ports.RunStatusFailed, "collection queue is full")
		return nil, errors.NewUnavailableError("collection queue is full, try again later")
	}

	s.logger.Info("Collection run queued", ports.F("run_id", run.ID), ports.F("location", run.Location))
	return newRunView(run), nil
}

// Get returns the current state of a run
func (s *RunService) Get(ctx context.Context, id string) (*RunView, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, errors.NewValidationError("invalid run id")
	}
	run, err := s.runs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return newRunView(run), nil
}

// List returns the most recent runs, newest first
func (s *RunService) List(ctx context.Context, limit int) ([]*RunView, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	runs, err := s.runs.List(ctx, limit)
	if err != nil {
		return nil, err
	}
	views := make([]*RunView, 0, len(runs))
	for _, run := range runs {
		views = append(views, newRunView(run))
	}
	return views, nil
}

// Start launches the worker. Cancelling ctx or calling Stop ends it.
func (s *RunService) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}

	workerCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.wg.Add(1)
	go s.work(workerCtx)
	s.logger.Info("Collection worker started", ports.F("queue_size", cap(s.queue)))
}

// Stop cancels the running collection and waits for the worker to exit
func (s *RunService) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.cancel = nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	s.wg.Wait()
	s.drain()
	s.logger.Info("Collection worker stopped")
}

// drain fails every run still waiting in the queue
func (s *RunService) drain() {
	for {
		select {
		case j := <-s.queue:
			s.abandon(j)
		default:
			return
		}
	}
}

func (s *RunService) abandon(j job) {
	store := context.Background()
	run, err := s.runs.FindByID(store, j.id)
	if err != nil {
		s.logger.Error("Queued run not found", ports.F("run_id", j.id), ports.F("error", err))
		return
	}
	s.finish(store, run, ports.RunStatusFailed, "service stopped")
}

func (s *RunService) work(ctx context.Context) {
	defer s.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-s.queue:
			if ctx.Err() != nil {
				s.abandon(j)
				return
			}
			s.execute(ctx, j)
		}
	}
}

func (s *RunService) execute(ctx context.Context, j job) {
	// state updates outlive a cancelled run so the final status is persisted
	store := context.WithoutCancel(ctx)

	run, err := s.runs.FindByID(store, j.id)
	if err != nil {
		s.logger.Error("Queued run not found", ports.F("run_id", j.id), ports.F("error", err))
		return
	}
	run.Status = ports.RunStatusRunning
	run.UpdatedAt = time.Now().UTC()
	if err := s.runs.Update(store, run); err != nil {
		s.logger.Warn("Failed to mark run as running", ports.F("run_id", run.ID), ports.F("error", err))
	}

	var sink ports.ProgressSink
	if s.sinks != nil {
		sink = s.sinks(run.ID)
	}

	result, err := s.collect(ctx, run.ID, j.req, sink)

	// re-read so progress written by the sink is kept
	if latest, findErr := s.runs.FindByID(store, run.ID); findErr == nil {
		run = latest
	}

	switch {
	case err != nil:
		s.logger.Error("Collection run failed", ports.F("run_id", run.ID), ports.F("error", err))
		s.finish(store, run, ports.RunStatusFailed, failureMessage(err))
	case !result.Success:
		s.finish(store, run, ports.RunStatusFailed, result.Message)
	default:
		run.CSVPath = result.CSVPath
		run.ReportPath = result.ReportPath
		s.finish(store, run, ports.RunStatusSucceeded, result.Message)
	}
}

// collect turns a panic inside the collector into an ordinary failure
func (s *RunService) collect(ctx context.Context, id string, req CollectRequest, sink ports.ProgressSink) (result *CollectResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Collection run panicked",
				ports.F("run_id", id),
				ports.F("panic", fmt.Sprint(r)),
				ports.F("stack", string(debug.Stack())))
			result, err = nil, fmt.Errorf("collection panicked: %v", r)
		}
	}()
	return s.collector.Collect(ctx, req, sink)
}

func (s *RunService) finish(ctx context.Context, run *ports.CollectionRunData, status, message string) {
	now := time.Now().UTC()
	run.Status = status
	run.Message = message
	run.UpdatedAt = now
	run.FinishedAt = &now
	if err := s.runs.Update(ctx, run); err != nil {
		s.logger.Error("Failed to persist run result", ports.F("run_id", run.ID), ports.F("error", err))
	}
}

// failureMessage keeps validation and cancellation details, hides the rest
func failureMessage(err error) string {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "collection was cancelled"
	case errors.IsValidationError(err):
		return err.Error()
	default:
		return "collection failed"
	}
}
