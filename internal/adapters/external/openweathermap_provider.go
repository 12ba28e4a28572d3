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

	"golang.org/x/time/rate"
	"weatherhistory.app/internal/ports"
	"weatherhistory.app/pkg/errors"
)

const (
	defaultOpenWeatherMapBaseURL = "https://history.openweathermap.org/data/2.5"
	defaultOWMChunkDays          = 7
	kelvinOffset                 = 273.15
)

// Pacer spaces out consecutive upstream requests
type Pacer interface {
	Wait(ctx context.Context) error
}

// NewRatePacer allows one request per interval; a non-positive interval never waits
func NewRatePacer(interval time.Duration) Pacer {
	if interval <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(interval), 1)
}

// OpenWeatherMapProviderAdapter implements HistoricalProvider for the hourly history API
type OpenWeatherMapProviderAdapter struct {
	baseURL   string
	chunkDays int
	location  *time.Location
	pacer     Pacer
	client    HTTPClient
	logger    ports.Logger
}

// OpenWeatherMapProviderParams holds parameters for creating OpenWeatherMap provider
type OpenWeatherMapProviderParams struct {
	BaseURL    string
	ChunkDays  int
	ChunkDelay time.Duration
	Location   *time.Location
	Pacer      Pacer
	Timeout    time.Duration
	Client     HTTPClient
	Logger     ports.Logger
}

// OpenWeatherMapResponse represents the response from the history API
type OpenWeatherMapResponse struct {
	List []struct {
		Dt   int64 `json:"dt"`
		Main struct {
			Temp     *float64 `json:"temp"`
			Humidity *float64 `json:"humidity"`
			Pressure *float64 `json:"pressure"`
		} `json:"main"`
		Wind struct {
			Speed *float64 `json:"speed"`
		} `json:"wind"`
	} `json:"list"`
}

// NewOpenWeatherMapProviderAdapter creates a new OpenWeatherMap provider adapter
func NewOpenWeatherMapProviderAdapter(params OpenWeatherMapProviderParams) *OpenWeatherMapProviderAdapter {
	baseURL := params.BaseURL
	if baseURL == "" {
		baseURL = defaultOpenWeatherMapBaseURL
	}
	chunkDays := params.ChunkDays
	if chunkDays <= 0 {
		chunkDays = defaultOWMChunkDays
	}
	location := params.Location
	if location == nil {
		location = time.UTC
	}
	pacer := params.Pacer
	if pacer == nil {
		pacer = NewRatePacer(params.ChunkDelay)
	}

	return &OpenWeatherMapProviderAdapter{
		baseURL:   strings.TrimRight(baseURL, "/"),
		chunkDays: chunkDays,
		location:  location,
		pacer:     pacer,
		client:    defaultClient(params.Client, params.Timeout),
		logger:    params.Logger,
	}
}

func (p *OpenWeatherMapProviderAdapter) Name() string {
	return ports.ProviderOpenWeatherMap
}

func (p *OpenWeatherMapProviderAdapter) CredentialKey() string {
	return ports.CredentialOpenWeatherMap
}

// Fetch walks the window in fixed-size chunks, pacing every request.
func (p *OpenWeatherMapProviderAdapter) Fetch(ctx context.Context, query ports.FetchQuery) ports.FetchResult {
	if query.Credential == "" {
		p.logger.Info("OpenWeatherMap credential not configured, skipping")
		return missingCredential(p.Name())
	}

	start := p.localMidnight(query.Start).Unix()
	end := p.localMidnight(query.End).Unix()
	chunk := int64(p.chunkDays) * 24 * 60 * 60

	var (
		records  []ports.WeatherRecord
		lastKind = ports.FailureNone
		lastErr  *errors.AppError
	)

	for chunkStart := start; chunkStart < end; chunkStart += chunk {
		chunkEnd := chunkStart + chunk
		if chunkEnd > end {
			chunkEnd = end
		}

		if err := p.pacer.Wait(ctx); err != nil {
			lastKind, lastErr = ports.FailureTransport, errors.NewExternalAPIError("OpenWeatherMap pacing interrupted", err)
			break
		}

		resp, err := getBody(ctx, p.client, p.logger, p.Name(), p.chunkURL(query, chunkStart, chunkEnd), nil)
		if err != nil {
			p.logger.Error("OpenWeatherMap connection error, stopping",
				ports.F("start", chunkStart), ports.F("end", chunkEnd), ports.F("error", err.Error()))
			lastKind, lastErr = ports.FailureTransport, asAppError(err)
			break
		}

		switch {
		case resp.StatusCode == http.StatusBadRequest:
			p.logger.Debug("OpenWeatherMap has no data for chunk", ports.F("start", chunkStart), ports.F("end", chunkEnd))
			continue
		case !resp.OK():
			p.logger.Warn("OpenWeatherMap request failed",
				ports.F("status", resp.StatusCode), ports.F("start", chunkStart), ports.F("end", chunkEnd))
			lastKind, lastErr = ports.FailureHTTPStatus, statusError(p.Name(), resp)
			continue
		}

		var payload OpenWeatherMapResponse
		if err := json.Unmarshal(resp.Body, &payload); err != nil {
			p.logger.Warn("Failed to decode OpenWeatherMap response", ports.F("error", err.Error()))
			lastKind, lastErr = ports.FailureMalformedPayload, errors.NewExternalAPIError("failed to decode OpenWeatherMap response", err)
			continue
		}

		for _, item := range payload.List {
			if item.Dt < start || item.Dt >= end {
				continue
			}
			var temp *float64
			if item.Main.Temp != nil {
				temp = ports.Float(*item.Main.Temp - kelvinOffset)
			}
			records = append(records, ports.WeatherRecord{
				Provider:     ports.ProviderOpenWeatherMap,
				ObservedAt:   time.Unix(item.Dt, 0).UTC().Format("2006-01-02 15:04:05"),
				TemperatureC: temp,
				HumidityPct:  item.Main.Humidity,
				PressureHPa:  item.Main.Pressure,
				WindSpeedMS:  item.Wind.Speed,
			})
		}
	}

	if len(records) == 0 && lastErr != nil {
		return ports.FailedResult(lastKind, lastErr)
	}
	return ports.NewFetchResult(records)
}

func (p *OpenWeatherMapProviderAdapter) chunkURL(query ports.FetchQuery, start, end int64) string {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(query.Coordinates.Latitude, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(query.Coordinates.Longitude, 'f', -1, 64))
	params.Set("type", "hour")
	params.Set("start", strconv.FormatInt(start, 10))
	params.Set("end", strconv.FormatInt(end, 10))
	params.Set("appid", query.Credential)
	return fmt.Sprintf("%s/history/city?%s", p.baseURL, params.Encode())
}

func (p *OpenWeatherMapProviderAdapter) localMidnight(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, p.location)
}
