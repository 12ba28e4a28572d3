package consolidation

import (
	"time"

	"weatherhistory.app/internal/ports"
)

// ProviderRecords is what one provider returned for one planned year
type ProviderRecords struct {
	Provider string
	Records  []ports.WeatherRecord
}

// YearResults groups the provider outputs of one planned year
type YearResults struct {
	Year      int
	Providers []ProviderRecords
}

// RawCollection is the full per-year, per-provider output of a run
type RawCollection []YearResults

// Add appends a provider's records under the given year, creating the year if needed
func (rc *RawCollection) Add(year int, provider string, records []ports.WeatherRecord) {
	for i := range *rc {
		if (*rc)[i].Year == year {
			(*rc)[i].Providers = append((*rc)[i].Providers, ProviderRecords{Provider: provider, Records: records})
			return
		}
	}
	*rc = append(*rc, YearResults{
		Year:      year,
		Providers: []ProviderRecords{{Provider: provider, Records: records}},
	})
}

// RecordCount returns the number of records across all years and providers
func (rc RawCollection) RecordCount() int {
	total := 0
	for _, year := range rc {
		for _, provider := range year.Providers {
			total += len(provider.Records)
		}
	}
	return total
}

// Dataset is the hourly table: one row per hour bucket, one column per provider measurement
type Dataset struct {
	Columns    []string
	Timestamps []time.Time
	Rows       [][]*float64
}

// Len returns the number of rows
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Timestamps)
}

// ColumnIndex returns the position of the named column, or -1
func (d *Dataset) ColumnIndex(name string) int {
	for i, column := range d.Columns {
		if column == name {
			return i
		}
	}
	return -1
}

// Value returns the cell at row i of the named column
func (d *Dataset) Value(i int, column string) *float64 {
	j := d.ColumnIndex(column)
	if j < 0 {
		return nil
	}
	return d.Rows[i][j]
}

// HasValues reports whether the column has at least one non-empty cell
func (d *Dataset) HasValues(column string) bool {
	j := d.ColumnIndex(column)
	if j < 0 {
		return false
	}
	for _, row := range d.Rows {
		if row[j] != nil {
			return true
		}
	}
	return false
}

// measurement names a numeric record field and how to read it
type measurement struct {
	name string
	get  func(ports.WeatherRecord) *float64
}

// measurements are emitted in this order for every provider
var measurements = []measurement{
	{"temperature_c", func(r ports.WeatherRecord) *float64 { return r.TemperatureC }},
	{"humidity_pct", func(r ports.WeatherRecord) *float64 { return r.HumidityPct }},
	{"pressure_hpa", func(r ports.WeatherRecord) *float64 { return r.PressureHPa }},
	{"wind_speed_ms", func(r ports.WeatherRecord) *float64 { return r.WindSpeedMS }},
	{"rain_mm", func(r ports.WeatherRecord) *float64 { return r.RainMM }},
	{"solar_radiation", func(r ports.WeatherRecord) *float64 { return r.SolarRadiation }},
}
