package collection

import (
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"weatherhistory.app/internal/core/planner"
	"weatherhistory.app/internal/core/report"
	"weatherhistory.app/pkg/validation"
)

// MaxYears is the largest number of past years a single run may cover
const MaxYears = 20

// NoDataMessage is returned when every provider came back empty
const NoDataMessage = "No data was collected for the requested period. Check the API credentials and the location."

// CollectRequest carries the validated parameters of one collection run
type CollectRequest struct {
	Location    string            `json:"location" validate:"required"`
	DayStart    int               `json:"day_start" validate:"min=1,max=31"`
	MonthStart  int               `json:"month_start" validate:"min=1,max=12"`
	DayEnd      int               `json:"day_end" validate:"min=1,max=31"`
	MonthEnd    int               `json:"month_end" validate:"min=1,max=12"`
	Years       int               `json:"years" validate:"min=1,max=20"`
	Preset      string            `json:"preset" validate:"preset"`
	Credentials map[string]string `json:"-"`
}

var registerPreset sync.Once

// Validate trims the location and checks every field
func (r *CollectRequest) Validate() error {
	registerPreset.Do(func() {
		_ = validation.RegisterValidation("preset", func(fl validator.FieldLevel) bool {
			return report.IsKnownPreset(fl.Field().String())
		})
	})

	r.Location = strings.TrimSpace(r.Location)
	r.Preset = strings.TrimSpace(r.Preset)
	return validation.Struct(r)
}

// Window returns the recurring day/month window of the request
func (r CollectRequest) Window() planner.WindowSpec {
	return planner.WindowSpec{
		DayStart:   r.DayStart,
		MonthStart: r.MonthStart,
		DayEnd:     r.DayEnd,
		MonthEnd:   r.MonthEnd,
	}
}

// CollectResult is the outcome reported back to the caller
type CollectResult struct {
	Success    bool
	Message    string
	CSVPath    string
	ReportPath string
	Years      []int
	Records    int
	Rows       int
	Duration   time.Duration
}
