// Package planner turns a day/month window and a number of years into the
// concrete calendar windows the collector queries, newest first.
package planner

import (
	"fmt"
	"time"

	"weatherhistory.app/pkg/validation"
)

// WindowSpec is a recurring day/month window, e.g. 15/07 to 20/08
type WindowSpec struct {
	DayStart   int `json:"day_start" validate:"min=1,max=31"`
	MonthStart int `json:"month_start" validate:"min=1,max=12"`
	DayEnd     int `json:"day_end" validate:"min=1,max=31"`
	MonthEnd   int `json:"month_end" validate:"min=1,max=12"`
}

func (w WindowSpec) Validate() error {
	return validation.Struct(w)
}

// Wraps reports whether the window crosses a new year (end before start)
func (w WindowSpec) Wraps() bool {
	return before(w.MonthEnd, w.DayEnd, w.MonthStart, w.DayStart)
}

func (w WindowSpec) String() string {
	return fmt.Sprintf("%02d/%02d-%02d/%02d", w.DayStart, w.MonthStart, w.DayEnd, w.MonthEnd)
}

// YearPlan is the concrete window for one target year. Start and End are
// calendar dates (midnight UTC) and End is inclusive.
type YearPlan struct {
	Year  int
	Start time.Time
	End   time.Time
}

// QueryEnd is the exclusive end handed to providers
func (p YearPlan) QueryEnd() time.Time {
	return p.End.AddDate(0, 0, 1)
}

// Days is the number of calendar days covered by the plan
func (p YearPlan) Days() int {
	return int(p.QueryEnd().Sub(p.Start).Hours() / 24)
}

// Plan computes up to years windows walking backward from the most recent
// occurrence of the window that has fully elapsed by today. Years whose dates do
// not exist (31/02, 29/02 outside leap years) are skipped, not substituted.
func Plan(spec WindowSpec, years int, today time.Time) []YearPlan {
	if years < 1 {
		return nil
	}

	endYear := today.Year()
	if before(today.Month(), today.Day(), time.Month(spec.MonthEnd), spec.DayEnd) {
		endYear--
	}
	startYear := endYear
	if spec.Wraps() {
		startYear--
	}

	plans := make([]YearPlan, 0, years)
	for i := 0; i < years; i++ {
		year := startYear - i

		start, ok := date(year, spec.MonthStart, spec.DayStart)
		if !ok {
			continue
		}
		endYearForPlan := year
		if spec.Wraps() {
			endYearForPlan++
		}
		end, ok := date(endYearForPlan, spec.MonthEnd, spec.DayEnd)
		if !ok {
			continue
		}

		plans = append(plans, YearPlan{Year: year, Start: start, End: end})
	}
	return plans
}

// date builds a calendar date, rejecting values time.Date would normalize
func date(year, month, day int) (time.Time, bool) {
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

func before[M ~int](m1 M, d1 int, m2 M, d2 int) bool {
	if m1 != m2 {
		return m1 < m2
	}
	return d1 < d2
}
