package database

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"weatherhistory.app/internal/ports"
	"weatherhistory.app/pkg/errors"
)

// CollectionRunModel represents the database model for collection runs
type CollectionRunModel struct {
	ID              string `gorm:"primaryKey;size:36"`
	Location        string `gorm:"not null"`
	DayStart        int    `gorm:"not null"`
	MonthStart      int    `gorm:"not null"`
	DayEnd          int    `gorm:"not null"`
	MonthEnd        int    `gorm:"not null"`
	Years           int    `gorm:"not null"`
	Preset          string
	Status          string `gorm:"index;not null"`
	ProgressMessage string
	ProgressCurrent int
	ProgressTotal   int
	CSVPath         string `gorm:"column:csv_path"`
	ReportPath      string
	Message         string
	CreatedAt       time.Time `gorm:"index"`
	UpdatedAt       time.Time
	FinishedAt      *time.Time
}

func (CollectionRunModel) TableName() string {
	return "collection_runs"
}

// CollectionRunRepositoryAdapter implements the CollectionRunRepository port using GORM
type CollectionRunRepositoryAdapter struct {
	db *gorm.DB
}

// NewCollectionRunRepositoryAdapter creates a new collection run repository adapter
func NewCollectionRunRepositoryAdapter(db *gorm.DB) ports.CollectionRunRepository {
	return &CollectionRunRepositoryAdapter{db: db}
}

// Save inserts a new run, assigning an ID when the caller did not
func (r *CollectionRunRepositoryAdapter) Save(ctx context.Context, run *ports.CollectionRunData) error {
	if run == nil {
		return errors.NewValidationError("collection run cannot be nil")
	}
	if run.ID == "" {
		run.ID = uuid.NewString()
	}

	model := r.dataToModel(run)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return errors.NewStorageError("failed to save collection run", err)
	}

	run.CreatedAt = model.CreatedAt
	run.UpdatedAt = model.UpdatedAt
	return nil
}

// Update overwrites every field of an existing run
func (r *CollectionRunRepositoryAdapter) Update(ctx context.Context, run *ports.CollectionRunData) error {
	if run == nil {
		return errors.NewValidationError("collection run cannot be nil")
	}
	if run.ID == "" {
		return errors.NewValidationError("collection run ID cannot be empty for update")
	}

	result := r.db.WithContext(ctx).Model(&CollectionRunModel{}).
		Where("id = ?", run.ID).
		Updates(map[string]interface{}{
			"location":         run.Location,
			"day_start":        run.DayStart,
			"month_start":      run.MonthStart,
			"day_end":          run.DayEnd,
			"month_end":        run.MonthEnd,
			"years":            run.Years,
			"preset":           run.Preset,
			"status":           run.Status,
			"progress_message": run.ProgressMessage,
			"progress_current": run.ProgressCurrent,
			"progress_total":   run.ProgressTotal,
			"csv_path":         run.CSVPath,
			"report_path":      run.ReportPath,
			"message":          run.Message,
			"updated_at":       time.Now().UTC(),
			"finished_at":      run.FinishedAt,
		})
	if result.Error != nil {
		return errors.NewStorageError("failed to update collection run", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("collection run not found")
	}

	return nil
}

// UpdateProgress stores the latest progress notification of a run
func (r *CollectionRunRepositoryAdapter) UpdateProgress(ctx context.Context, id string, progress ports.Progress) error {
	if id == "" {
		return errors.NewValidationError("collection run ID cannot be empty")
	}

	result := r.db.WithContext(ctx).Model(&CollectionRunModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"progress_message": progress.Message,
			"progress_current": progress.Current,
			"progress_total":   progress.Total,
			"updated_at":       time.Now().UTC(),
		})
	if result.Error != nil {
		return errors.NewStorageError("failed to update collection run progress", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("collection run not found")
	}

	return nil
}

// FindByID retrieves a run by its ID
func (r *CollectionRunRepositoryAdapter) FindByID(ctx context.Context, id string) (*ports.CollectionRunData, error) {
	if id == "" {
		return nil, errors.NewValidationError("collection run ID cannot be empty")
	}

	var model CollectionRunModel
	result := r.db.WithContext(ctx).First(&model, "id = ?", id)
	if result.Error != nil {
		if stderrors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errors.NewNotFoundError("collection run not found")
		}
		return nil, errors.NewStorageError("failed to find collection run", result.Error)
	}

	return r.modelToData(&model), nil
}

// List returns the most recent runs first
func (r *CollectionRunRepositoryAdapter) List(ctx context.Context, limit int) ([]*ports.CollectionRunData, error) {
	if limit <= 0 {
		return nil, errors.NewValidationError("limit must be positive")
	}

	var models []CollectionRunModel
	result := r.db.WithContext(ctx).Order("created_at DESC").Order("id").Limit(limit).Find(&models)
	if result.Error != nil {
		return nil, errors.NewStorageError("failed to list collection runs", result.Error)
	}

	runs := make([]*ports.CollectionRunData, len(models))
	for i := range models {
		runs[i] = r.modelToData(&models[i])
	}

	return runs, nil
}

// dataToModel converts port data to database model
func (r *CollectionRunRepositoryAdapter) dataToModel(data *ports.CollectionRunData) *CollectionRunModel {
	return &CollectionRunModel{
		ID:              data.ID,
		Location:        data.Location,
		DayStart:        data.DayStart,
		MonthStart:      data.MonthStart,
		DayEnd:          data.DayEnd,
		MonthEnd:        data.MonthEnd,
		Years:           data.Years,
		Preset:          data.Preset,
		Status:          data.Status,
		ProgressMessage: data.ProgressMessage,
		ProgressCurrent: data.ProgressCurrent,
		ProgressTotal:   data.ProgressTotal,
		CSVPath:         data.CSVPath,
		ReportPath:      data.ReportPath,
		Message:         data.Message,
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
		FinishedAt:      data.FinishedAt,
	}
}

// modelToData converts database model to port data
func (r *CollectionRunRepositoryAdapter) modelToData(model *CollectionRunModel) *ports.CollectionRunData {
	return &ports.CollectionRunData{
		ID:              model.ID,
		Location:        model.Location,
		DayStart:        model.DayStart,
		MonthStart:      model.MonthStart,
		DayEnd:          model.DayEnd,
		MonthEnd:        model.MonthEnd,
		Years:           model.Years,
		Preset:          model.Preset,
		Status:          model.Status,
		ProgressMessage: model.ProgressMessage,
		ProgressCurrent: model.ProgressCurrent,
		ProgressTotal:   model.ProgressTotal,
		CSVPath:         model.CSVPath,
		ReportPath:      model.ReportPath,
		Message:         model.Message,
		CreatedAt:       model.CreatedAt,
		UpdatedAt:       model.UpdatedAt,
		FinishedAt:      model.FinishedAt,
	}
}
