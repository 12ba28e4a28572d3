package report

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"weatherhistory.app/internal/core/consolidation"
)

const (
	rainyDayMM           = 0.1
	highHumidityPct      = 90.0
	hotDayC              = 30.0
	coldDayC             = 10.0
	seasonalMinSpanDays  = 45
	seasonalUnfavourable = 40.0
	seasonalModerate     = 25.0
)

// rainColumns are tried in order; the first with any value wins
var rainColumns = []string{
	"rain_mm_VisualCrossing",
	"rain_mm_StormGlass",
	"rain_mm_PortalINMET",
	"rain_mm_OpenWeatherMap",
	"rain_mm_WolframAlpha",
	"rain_mm_OpenMeteo",
}

// daily is one calendar day of an aggregated column
type daily struct {
	Day   time.Time
	Sum   float64
	Mean  float64
	Min   float64
	Max   float64
	count int
}

// MonthProbability is the share of rainy days in one calendar month
type MonthProbability struct {
	Month       time.Month
	Days        int
	RainyDays   int
	Probability float64
}

// DayProbability is the rain probability of one day of the year across all years
type DayProbability struct {
	Month       time.Month
	Day         int
	Years       int
	RainyYears  int
	Probability float64
}

// Label renders the day as dd/mm
func (d DayProbability) Label() string {
	return fmt.Sprintf("%02d/%02d", d.Day, d.Month)
}

// Analysis holds every figure the report prints
type Analysis struct {
	RainColumn        string
	HumidityColumn    string
	TemperatureColumn string
	WindColumn        string

	FirstDay time.Time
	LastDay  time.Time

	TotalDays        int
	TotalYears       int
	RainyDays        int
	RainProbability  float64
	HighHumidityDays int
	Consistency      float64

	MeanRainyMM    float64
	TotalMM        float64
	PeakMM         float64
	PeakDay        time.Time
	LongestWetRun  int
	LongestDryRun  int
	HasTemperature bool
	MeanTempC      float64
	MinTempC       float64
	MaxTempC       float64
	HotDays        int
	ColdDays       int
	HasWind        bool
	MeanWindMS     float64

	Months []MonthProbability
	Days   []DayProbability

	rain        []daily
	humidity    []daily
	temperature []daily
	wind        []daily
}

// PeriodLabel renders the observed period as dd/mm..dd/mm
func (a *Analysis) PeriodLabel() string {
	return fmt.Sprintf("de %s a %s", a.FirstDay.Format("02/01"), a.LastDay.Format("02/01"))
}

// SpanDays is the number of calendar days between the first and last observed day, inclusive
func (a *Analysis) SpanDays() int {
	return int(a.LastDay.Sub(a.FirstDay).Hours()/24) + 1
}

// Seasonal reports whether the span is long enough for the monthly breakdown
func (a *Analysis) Seasonal() bool {
	return a.SpanDays() >= seasonalMinSpanDays
}

// Analyze derives the report figures from a consolidated dataset. It returns nil
// for an empty dataset; HasRain is false when no rain column carries values.
func Analyze(dataset *consolidation.Dataset) *Analysis {
	if dataset.Len() == 0 {
		return nil
	}

	a := &Analysis{
		RainColumn:        pickRainColumn(dataset),
		HumidityColumn:    pickColumn(dataset, func(c string) bool { return strings.Contains(strings.ToLower(c), "humidity") }),
		TemperatureColumn: pickColumn(dataset, func(c string) bool { return strings.HasPrefix(c, "temperature_c_") }),
		WindColumn:        pickColumn(dataset, func(c string) bool { return strings.HasPrefix(c, "wind_speed_ms_") }),
	}
	if a.RainColumn == "" {
		return a
	}

	a.rain = aggregateDaily(dataset, a.RainColumn)
	if len(a.rain) == 0 {
		return a
	}
	a.humidity = aggregateDaily(dataset, a.HumidityColumn)
	a.temperature = aggregateDaily(dataset, a.TemperatureColumn)
	a.wind = aggregateDaily(dataset, a.WindColumn)

	a.rainSummary()
	a.temperatureAndWind()
	a.Months = monthlyProbabilities(a.rain)
	a.Days = dailyProbabilities(a.rain)
	return a
}

// HasRain reports whether rain statistics could be computed
func (a *Analysis) HasRain() bool {
	return a != nil && len(a.rain) > 0
}

func (a *Analysis) rainSummary() {
	a.FirstDay = a.rain[0].Day
	a.LastDay = a.rain[len(a.rain)-1].Day
	a.TotalDays = len(a.rain)

	years := make(map[int]bool)
	rainyYears := make(map[int]bool)
	rainySum := 0.0
	for i, d := range a.rain {
		years[d.Day.Year()] = true
		a.TotalMM += d.Sum
		if d.Sum > rainyDayMM {
			a.RainyDays++
			rainyYears[d.Day.Year()] = true
			rainySum += d.Sum
		}
		if i == 0 || d.Sum > a.PeakMM {
			a.PeakMM = d.Sum
			a.PeakDay = d.Day
		}
	}
	a.TotalYears = len(years)
	a.RainProbability = percent(a.RainyDays, a.TotalDays)
	a.Consistency = percent(len(rainyYears), a.TotalYears)
	if a.RainyDays > 0 {
		a.MeanRainyMM = rainySum / float64(a.RainyDays)
	}

	for _, d := range a.humidity {
		if d.Max >= highHumidityPct {
			a.HighHumidityDays++
		}
	}

	a.LongestWetRun = longestRun(a.rain, func(d daily) bool { return d.Sum > rainyDayMM })
	a.LongestDryRun = longestRun(a.rain, func(d daily) bool { return d.Sum <= rainyDayMM })
}

func (a *Analysis) temperatureAndWind() {
	if len(a.temperature) > 0 {
		a.HasTemperature = true
		a.MinTempC = math.Inf(1)
		a.MaxTempC = math.Inf(-1)
		sum := 0.0
		for _, d := range a.temperature {
			sum += d.Mean
			a.MinTempC = math.Min(a.MinTempC, d.Min)
			a.MaxTempC = math.Max(a.MaxTempC, d.Max)
			if d.Max > hotDayC {
				a.HotDays++
			}
			if d.Min < coldDayC {
				a.ColdDays++
			}
		}
		a.MeanTempC = sum / float64(len(a.temperature))
	}

	if len(a.wind) > 0 {
		a.HasWind = true
		sum := 0.0
		for _, d := range a.wind {
			sum += d.Mean
		}
		a.MeanWindMS = sum / float64(len(a.wind))
	}
}

func pickRainColumn(dataset *consolidation.Dataset) string {
	for _, column := range rainColumns {
		if dataset.HasValues(column) {
			return column
		}
	}
	return ""
}

func pickColumn(dataset *consolidation.Dataset, match func(string) bool) string {
	for _, column := range dataset.Columns {
		if match(column) {
			return column
		}
	}
	return ""
}

// aggregateDaily groups a column by calendar day, keeping only days with values
func aggregateDaily(dataset *consolidation.Dataset, column string) []daily {
	if column == "" {
		return nil
	}
	j := dataset.ColumnIndex(column)
	if j < 0 {
		return nil
	}

	var out []daily
	for i, ts := range dataset.Timestamps {
		v := dataset.Rows[i][j]
		if v == nil {
			continue
		}
		dayStart := time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC)
		if len(out) == 0 || !out[len(out)-1].Day.Equal(dayStart) {
			out = append(out, daily{Day: dayStart, Min: *v, Max: *v})
		}
		d := &out[len(out)-1]
		d.Sum += *v
		d.count++
		d.Min = math.Min(d.Min, *v)
		d.Max = math.Max(d.Max, *v)
		d.Mean = d.Sum / float64(d.count)
	}
	return out
}

// longestRun counts the longest chain of consecutive calendar days matching pred
func longestRun(days []daily, pred func(daily) bool) int {
	best, current := 0, 0
	var previous time.Time
	for _, d := range days {
		switch {
		case !pred(d):
			current = 0
		case current > 0 && d.Day.Sub(previous) == 24*time.Hour:
			current++
		default:
			current = 1
		}
		if current > best {
			best = current
		}
		previous = d.Day
	}
	return best
}

func monthlyProbabilities(days []daily) []MonthProbability {
	byMonth := make(map[time.Month]*MonthProbability)
	for _, d := range days {
		m, ok := byMonth[d.Day.Month()]
		if !ok {
			m = &MonthProbability{Month: d.Day.Month()}
			byMonth[d.Day.Month()] = m
		}
		m.Days++
		if d.Sum > rainyDayMM {
			m.RainyDays++
		}
	}

	out := make([]MonthProbability, 0, len(byMonth))
	for _, m := range byMonth {
		m.Probability = percent(m.RainyDays, m.Days)
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

func dailyProbabilities(days []daily) []DayProbability {
	type key struct {
		month time.Month
		day   int
	}
	byDay := make(map[key]*DayProbability)
	for _, d := range days {
		k := key{d.Day.Month(), d.Day.Day()}
		p, ok := byDay[k]
		if !ok {
			p = &DayProbability{Month: k.month, Day: k.day}
			byDay[k] = p
		}
		p.Years++
		if d.Sum > rainyDayMM {
			p.RainyYears++
		}
	}

	out := make([]DayProbability, 0, len(byDay))
	for _, p := range byDay {
		p.Probability = math.Round(percent(p.RainyYears, p.Years)*10) / 10
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Month != out[j].Month {
			return out[i].Month < out[j].Month
		}
		return out[i].Day < out[j].Day
	})
	return out
}

// MonthStatus classifies a monthly rain probability
func MonthStatus(probability float64) string {
	switch {
	case probability >= seasonalUnfavourable:
		return "DESFAVORÁVEL"
	case probability >= seasonalModerate:
		return "MODERADO"
	default:
		return "FAVORÁVEL"
	}
}

// DayRecommendation classifies a daily rain probability for planning
func DayRecommendation(probability float64) string {
	switch {
	case probability >= 30:
		return "ALTO - Evitar atividades externas"
	case probability >= 20:
		return "MÉDIO - Planejar cobertura"
	case probability >= 10:
		return "BAIXO - Monitorar previsão"
	default:
		return "FAVORÁVEL - Condições adequadas"
	}
}

func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}
