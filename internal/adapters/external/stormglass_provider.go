package external

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"weatherhistory.app/internal/ports"
	"weatherhistory.app/pkg/errors"
)

const (
	defaultStormGlassBaseURL = "https://api.stormglass.io/v2"
	stormGlassParams         = "airTemperature,humidity,pressure,windSpeed"
	stormGlassSource         = "noaa"
)

// StormGlassProviderAdapter implements HistoricalProvider for the StormGlass point API
type StormGlassProviderAdapter struct {
	baseURL string
	client  HTTPClient
	logger  ports.Logger
}

// StormGlassProviderParams holds parameters for creating StormGlass provider
type StormGlassProviderParams struct {
	BaseURL string
	Timeout time.Duration
	Client  HTTPClient
	Logger  ports.Logger
}

type stormGlassValue struct {
	NOAA *float64 `json:"noaa"`
}

// StormGlassResponse represents the response from the point API
type StormGlassResponse struct {
	Hours []struct {
		Time           string          `json:"time"`
		AirTemperature stormGlassValue `json:"airTemperature"`
		Humidity       stormGlassValue `json:"humidity"`
		Pressure       stormGlassValue `json:"pressure"`
		WindSpeed      stormGlassValue `json:"windSpeed"`
	} `json:"hours"`
}

// NewStormGlassProviderAdapter creates a new StormGlass provider adapter
func NewStormGlassProviderAdapter(params StormGlassProviderParams) *StormGlassProviderAdapter {
	baseURL := params.BaseURL
	if baseURL == "" {
		baseURL = defaultStormGlassBaseURL
	}

	return &StormGlassProviderAdapter{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  defaultClient(params.Client, params.Timeout),
		logger:  params.Logger,
	}
}

func (p *StormGlassProviderAdapter) Name() string {
	return ports.ProviderStormGlass
}

func (p *StormGlassProviderAdapter) CredentialKey() string {
	return ports.CredentialStormGlass
}

// Fetch issues a single request covering the whole window
func (p *StormGlassProviderAdapter) Fetch(ctx context.Context, query ports.FetchQuery) ports.FetchResult {
	if query.Credential == "" {
		p.logger.Info("StormGlass credential not configured, skipping")
		return missingCredential(p.Name())
	}

	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(query.Coordinates.Latitude, 'f', -1, 64))
	params.Set("lng", strconv.FormatFloat(query.Coordinates.Longitude, 'f', -1, 64))
	params.Set("params", stormGlassParams)
	params.Set("start", query.Start.UTC().Format(time.RFC3339))
	params.Set("end", query.End.UTC().Format(time.RFC3339))
	params.Set("source", stormGlassSource)

	header := http.Header{}
	header.Set("Authorization", query.Credential)

	resp, err := getBody(ctx, p.client, p.logger, p.Name(), fmt.Sprintf("%s/weather/point?%s", p.baseURL, params.Encode()), header)
	if err != nil {
		p.logger.Error("StormGlass connection error", ports.F("error", err.Error()))
		return ports.FailedResult(ports.FailureTransport, asAppError(err))
	}

	switch {
	case resp.StatusCode == http.StatusPaymentRequired || resp.StatusCode == http.StatusTooManyRequests:
		p.logger.Warn("StormGlass daily quota exceeded, skipping", ports.F("status", resp.StatusCode))
		return ports.FailedResult(ports.FailureQuotaExceeded,
			errors.NewQuotaExceededError(fmt.Sprintf("StormGlass quota exceeded (status %d)", resp.StatusCode), nil))
	case !resp.OK():
		p.logger.Error("StormGlass request failed",
			ports.F("status", resp.StatusCode), ports.F("body", truncate(string(resp.Body), 200)))
		return ports.FailedResult(ports.FailureHTTPStatus, statusError(p.Name(), resp))
	}

	var payload StormGlassResponse
	if err := json.Unmarshal(resp.Body, &payload); err != nil {
		p.logger.Error("Failed to decode StormGlass response", ports.F("error", err.Error()))
		return ports.FailedResult(ports.FailureMalformedPayload, errors.NewExternalAPIError("failed to decode StormGlass response", err))
	}

	records := make([]ports.WeatherRecord, 0, len(payload.Hours))
	for _, hour := range payload.Hours {
		records = append(records, ports.WeatherRecord{
			Provider:     ports.ProviderStormGlass,
			ObservedAt:   hour.Time,
			TemperatureC: hour.AirTemperature.NOAA,
			HumidityPct:  hour.Humidity.NOAA,
			PressureHPa:  hour.Pressure.NOAA,
			WindSpeedMS:  hour.WindSpeed.NOAA,
		})
	}

	return ports.NewFetchResult(clipRecords(records, query.Start, query.End))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
