package external

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"weatherhistory.app/internal/ports"
	"weatherhistory.app/pkg/errors"
)

const (
	defaultVisualCrossingBaseURL = "https://weather.visualcrossing.com/VisualCrossingWebServices/rest/services"
	kmhPerMS                     = 3.6
)

// VisualCrossingProviderAdapter implements HistoricalProvider for the timeline API.
// It geocodes the location text itself.
type VisualCrossingProviderAdapter struct {
	baseURL string
	client  HTTPClient
	logger  ports.Logger
}

// VisualCrossingProviderParams holds parameters for creating Visual Crossing provider
type VisualCrossingProviderParams struct {
	BaseURL string
	Timeout time.Duration
	Client  HTTPClient
	Logger  ports.Logger
}

// VisualCrossingResponse represents the response from the timeline API
type VisualCrossingResponse struct {
	Days []struct {
		Datetime string `json:"datetime"`
		Hours    []struct {
			Datetime       string   `json:"datetime"`
			Temp           *float64 `json:"temp"`
			Humidity       *float64 `json:"humidity"`
			Pressure       *float64 `json:"pressure"`
			WindSpeed      *float64 `json:"windspeed"`
			SolarRadiation *float64 `json:"solarradiation"`
			Precip         *float64 `json:"precip"`
		} `json:"hours"`
	} `json:"days"`
}

// NewVisualCrossingProviderAdapter creates a new Visual Crossing provider adapter
func NewVisualCrossingProviderAdapter(params VisualCrossingProviderParams) *VisualCrossingProviderAdapter {
	baseURL := params.BaseURL
	if baseURL == "" {
		baseURL = defaultVisualCrossingBaseURL
	}

	return &VisualCrossingProviderAdapter{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  defaultClient(params.Client, params.Timeout),
		logger:  params.Logger,
	}
}

func (p *VisualCrossingProviderAdapter) Name() string {
	return ports.ProviderVisualCrossing
}

func (p *VisualCrossingProviderAdapter) CredentialKey() string {
	return ports.CredentialVisualCrossing
}

func (p *VisualCrossingProviderAdapter) Fetch(ctx context.Context, query ports.FetchQuery) ports.FetchResult {
	if query.Credential == "" {
		p.logger.Info("Visual Crossing credential not configured, skipping")
		return missingCredential(p.Name())
	}
	if strings.TrimSpace(query.Location) == "" {
		return ports.FailedResult(ports.FailureNotFound, errors.NewValidationError("Visual Crossing needs a location name"))
	}

	params := url.Values{}
	params.Set("unitGroup", "metric")
	params.Set("include", "hours")
	params.Set("key", query.Credential)
	params.Set("contentType", "json")

	rawURL := fmt.Sprintf("%s/timeline/%s/%s/%s?%s",
		p.baseURL,
		url.PathEscape(query.Location),
		query.Start.Format("2006-01-02"),
		query.End.AddDate(0, 0, -1).Format("2006-01-02"),
		params.Encode())

	resp, err := getBody(ctx, p.client, p.logger, p.Name(), rawURL, nil)
	if err != nil {
		p.logger.Error("Visual Crossing connection error", ports.F("error", err.Error()))
		return ports.FailedResult(ports.FailureTransport, asAppError(err))
	}
	if !resp.OK() {
		p.logger.Error("Visual Crossing request failed",
			ports.F("status", resp.StatusCode), ports.F("body", truncate(string(resp.Body), 200)))
		return ports.FailedResult(ports.FailureHTTPStatus, statusError(p.Name(), resp))
	}

	var payload VisualCrossingResponse
	if err := json.Unmarshal(resp.Body, &payload); err != nil {
		p.logger.Error("Failed to decode Visual Crossing response", ports.F("error", err.Error()))
		return ports.FailedResult(ports.FailureMalformedPayload, errors.NewExternalAPIError("failed to decode Visual Crossing response", err))
	}

	var records []ports.WeatherRecord
	for _, day := range payload.Days {
		for _, hour := range day.Hours {
			records = append(records, ports.WeatherRecord{
				Provider:       ports.ProviderVisualCrossing,
				ObservedAt:     day.Datetime + " " + hour.Datetime,
				TemperatureC:   hour.Temp,
				HumidityPct:    hour.Humidity,
				PressureHPa:    hour.Pressure,
				WindSpeedMS:    divide(hour.WindSpeed, kmhPerMS),
				RainMM:         hour.Precip,
				SolarRadiation: hour.SolarRadiation,
			})
		}
	}

	return ports.NewFetchResult(clipRecords(records, query.Start, query.End))
}
