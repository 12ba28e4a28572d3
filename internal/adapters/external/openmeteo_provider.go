package external

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"weatherhistory.app/internal/ports"
	"weatherhistory.app/pkg/errors"
)

const (
	defaultOpenMeteoBaseURL = "https://archive-api.open-meteo.com/v1"
	openMeteoDaily          = "precipitation_sum,temperature_2m_mean,relative_humidity_2m_mean,wind_speed_10m_mean"
)

// OpenMeteoProviderAdapter implements HistoricalProvider for the keyless archive API (daily values)
type OpenMeteoProviderAdapter struct {
	baseURL string
	client  HTTPClient
	logger  ports.Logger
}

// OpenMeteoProviderParams holds parameters for creating Open-Meteo provider
type OpenMeteoProviderParams struct {
	BaseURL string
	Timeout time.Duration
	Client  HTTPClient
	Logger  ports.Logger
}

// OpenMeteoResponse represents the daily section of an archive response
type OpenMeteoResponse struct {
	Daily struct {
		Time          []string   `json:"time"`
		Precipitation []*float64 `json:"precipitation_sum"`
		Temperature   []*float64 `json:"temperature_2m_mean"`
		Humidity      []*float64 `json:"relative_humidity_2m_mean"`
		WindSpeed     []*float64 `json:"wind_speed_10m_mean"`
	} `json:"daily"`
}

// NewOpenMeteoProviderAdapter creates a new Open-Meteo provider adapter
func NewOpenMeteoProviderAdapter(params OpenMeteoProviderParams) *OpenMeteoProviderAdapter {
	baseURL := params.BaseURL
	if baseURL == "" {
		baseURL = defaultOpenMeteoBaseURL
	}

	return &OpenMeteoProviderAdapter{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  defaultClient(params.Client, params.Timeout),
		logger:  params.Logger,
	}
}

func (p *OpenMeteoProviderAdapter) Name() string {
	return ports.ProviderOpenMeteo
}

func (p *OpenMeteoProviderAdapter) CredentialKey() string {
	return ""
}

func (p *OpenMeteoProviderAdapter) Fetch(ctx context.Context, query ports.FetchQuery) ports.FetchResult {
	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(query.Coordinates.Latitude, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(query.Coordinates.Longitude, 'f', -1, 64))
	params.Set("start_date", query.Start.Format("2006-01-02"))
	params.Set("end_date", query.End.AddDate(0, 0, -1).Format("2006-01-02"))
	params.Set("daily", openMeteoDaily)
	params.Set("timezone", "auto")

	resp, err := getBody(ctx, p.client, p.logger, p.Name(), fmt.Sprintf("%s/archive?%s", p.baseURL, params.Encode()), nil)
	if err != nil {
		p.logger.Error("Open-Meteo connection error", ports.F("error", err.Error()))
		return ports.FailedResult(ports.FailureTransport, asAppError(err))
	}
	if !resp.OK() {
		p.logger.Error("Open-Meteo request failed", ports.F("status", resp.StatusCode))
		return ports.FailedResult(ports.FailureHTTPStatus, statusError(p.Name(), resp))
	}

	var payload OpenMeteoResponse
	if err := json.Unmarshal(resp.Body, &payload); err != nil {
		p.logger.Error("Failed to decode Open-Meteo response", ports.F("error", err.Error()))
		return ports.FailedResult(ports.FailureMalformedPayload, errors.NewExternalAPIError("failed to decode Open-Meteo response", err))
	}

	daily := payload.Daily
	records := make([]ports.WeatherRecord, 0, len(daily.Time))
	for i, day := range daily.Time {
		records = append(records, ports.WeatherRecord{
			Provider:     ports.ProviderOpenMeteo,
			ObservedAt:   day,
			RainMM:       at(daily.Precipitation, i),
			TemperatureC: at(daily.Temperature, i),
			HumidityPct:  at(daily.Humidity, i),
			WindSpeedMS:  divide(at(daily.WindSpeed, i), kmhPerMS),
		})
	}

	return ports.NewFetchResult(clipRecords(records, query.Start, query.End))
}

func at(values []*float64, i int) *float64 {
	if i < len(values) {
		return values[i]
	}
	return nil
}
