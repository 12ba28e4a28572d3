package ports

import (
	"strings"
	"time"
)

// Provider tags, in the order the orchestrator queries them
const (
	ProviderINMET          = "PortalINMET"
	ProviderOpenWeatherMap = "OpenWeatherMap"
	ProviderStormGlass     = "StormGlass"
	ProviderVisualCrossing = "VisualCrossing"
	ProviderWolframAlpha   = "WolframAlpha"
	ProviderOpenMeteo      = "OpenMeteo"
)

// Credential keys as they appear in the credentials file and API requests
const (
	CredentialOpenWeatherMap = "openweathermap"
	CredentialStormGlass     = "stormglass"
	CredentialVisualCrossing = "visualcrossing"
	CredentialWolfram        = "wolfram"
)

// WeatherRecord is one normalized observation produced by a provider adapter.
// Measurement pointers are nil when the provider did not report the value.
type WeatherRecord struct {
	Provider   string `json:"provider"`
	ObservedAt string `json:"data_hora,omitempty"`
	QueryDate  string `json:"data_consulta,omitempty"`

	TemperatureC   *float64 `json:"temperature_c,omitempty"`
	HumidityPct    *float64 `json:"humidity_pct,omitempty"`
	PressureHPa    *float64 `json:"pressure_hpa,omitempty"`
	WindSpeedMS    *float64 `json:"wind_speed_ms,omitempty"`
	RainMM         *float64 `json:"rain_mm,omitempty"`
	SolarRadiation *float64 `json:"solar_radiation,omitempty"`

	StationCode   string   `json:"station_code,omitempty"`
	StationName   string   `json:"station_name,omitempty"`
	StationEntity string   `json:"station_entity,omitempty"`
	DistanceKM    *float64 `json:"distance_km,omitempty"`

	Title string `json:"title,omitempty"`
	Text  string `json:"text,omitempty"`
}

// Float returns a pointer to v, for building records
func Float(v float64) *float64 {
	return &v
}

var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02 1504",
	"2006-01-02",
}

// Timestamp parses the record's observation time (falling back to the query date)
// into a naive timestamp: the wall clock is kept and any UTC offset is dropped.
func (r WeatherRecord) Timestamp() (time.Time, bool) {
	raw := strings.TrimSpace(r.ObservedAt)
	if raw == "" {
		raw = strings.TrimSpace(r.QueryDate)
	}
	if raw == "" {
		return time.Time{}, false
	}
	return ParseNaiveTimestamp(raw)
}

// ParseNaiveTimestamp parses the timestamp shapes produced by the providers and
// returns the wall clock as a UTC-located value.
func ParseNaiveTimestamp(raw string) (time.Time, bool) {
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return naive(t), true
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func naive(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// Coordinates is a WGS84 latitude/longitude pair
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
