package ports

import (
	"context"
	"time"
)

// Collection run states
const (
	RunStatusPending   = "pending"
	RunStatusRunning   = "running"
	RunStatusSucceeded = "succeeded"
	RunStatusFailed    = "failed"
)

// CollectionRunData represents a collection run for persistence
type CollectionRunData struct {
	ID              string
	Location        string
	DayStart        int
	MonthStart      int
	DayEnd          int
	MonthEnd        int
	Years           int
	Preset          string
	Status          string
	ProgressMessage string
	ProgressCurrent int
	ProgressTotal   int
	CSVPath         string
	ReportPath      string
	Message         string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	FinishedAt      *time.Time
}

// CollectionRunRepository defines the contract for collection run persistence
type CollectionRunRepository interface {
	Save(ctx context.Context, run *CollectionRunData) error
	Update(ctx context.Context, run *CollectionRunData) error
	UpdateProgress(ctx context.Context, id string, progress Progress) error
	FindByID(ctx context.Context, id string) (*CollectionRunData, error)
	List(ctx context.Context, limit int) ([]*CollectionRunData, error)
}
