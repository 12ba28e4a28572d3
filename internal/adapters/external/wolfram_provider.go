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

const defaultWolframBaseURL = "https://api.wolframalpha.com/v2"

// WolframAlphaProviderAdapter implements HistoricalProvider with one
// natural-language query per calendar day.
type WolframAlphaProviderAdapter struct {
	baseURL string
	client  HTTPClient
	logger  ports.Logger
}

// WolframAlphaProviderParams holds parameters for creating WolframAlpha provider
type WolframAlphaProviderParams struct {
	BaseURL string
	Timeout time.Duration
	Client  HTTPClient
	Logger  ports.Logger
}

// WolframAlphaResponse represents the JSON output of the full results API
type WolframAlphaResponse struct {
	QueryResult struct {
		Success bool `json:"success"`
		Pods    []struct {
			Title   string `json:"title"`
			Subpods []struct {
				Plaintext string `json:"plaintext"`
			} `json:"subpods"`
		} `json:"pods"`
	} `json:"queryresult"`
}

// NewWolframAlphaProviderAdapter creates a new WolframAlpha provider adapter
func NewWolframAlphaProviderAdapter(params WolframAlphaProviderParams) *WolframAlphaProviderAdapter {
	baseURL := params.BaseURL
	if baseURL == "" {
		baseURL = defaultWolframBaseURL
	}

	return &WolframAlphaProviderAdapter{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  defaultClient(params.Client, params.Timeout),
		logger:  params.Logger,
	}
}

func (p *WolframAlphaProviderAdapter) Name() string {
	return ports.ProviderWolframAlpha
}

func (p *WolframAlphaProviderAdapter) CredentialKey() string {
	return ports.CredentialWolfram
}

func (p *WolframAlphaProviderAdapter) Fetch(ctx context.Context, query ports.FetchQuery) ports.FetchResult {
	if query.Credential == "" {
		p.logger.Info("WolframAlpha credential not configured, skipping")
		return missingCredential(p.Name())
	}

	var (
		records  []ports.WeatherRecord
		failures int
		days     int
		lastErr  *errors.AppError
		lastKind ports.FailureKind
	)

	for day := query.Start; day.Before(query.End); day = day.AddDate(0, 0, 1) {
		if err := ctx.Err(); err != nil {
			lastErr = errors.NewExternalAPIError("WolframAlpha fetch cancelled", err)
			lastKind = ports.FailureTransport
			failures++
			break
		}
		days++

		pods, kind, err := p.queryDay(ctx, query, day)
		if err != nil {
			p.logger.Warn("WolframAlpha query failed, continuing with next day",
				ports.F("date", day.Format("2006-01-02")), ports.F("error", err.Error()))
			failures++
			lastErr = asAppError(err)
			lastKind = kind
			continue
		}
		records = append(records, pods...)
	}

	if len(records) == 0 && lastErr != nil && failures >= days {
		return ports.FailedResult(lastKind, lastErr)
	}
	return ports.NewFetchResult(records)
}

// queryDay returns the weather pods of one day; on error the kind says what went wrong
func (p *WolframAlphaProviderAdapter) queryDay(ctx context.Context, query ports.FetchQuery, day time.Time) ([]ports.WeatherRecord, ports.FailureKind, error) {
	params := url.Values{}
	params.Set("input", fmt.Sprintf("weather in %s on %s", query.Location, day.Format("January 02, 2006")))
	params.Set("appid", query.Credential)
	params.Set("output", "json")
	params.Set("format", "plaintext")

	resp, err := getBody(ctx, p.client, p.logger, p.Name(), fmt.Sprintf("%s/query?%s", p.baseURL, params.Encode()), nil)
	if err != nil {
		return nil, ports.FailureTransport, err
	}
	if !resp.OK() {
		return nil, ports.FailureHTTPStatus, statusError(p.Name(), resp)
	}

	var payload WolframAlphaResponse
	if err := json.Unmarshal(resp.Body, &payload); err != nil {
		return nil, ports.FailureMalformedPayload, errors.NewExternalAPIError("failed to decode WolframAlpha response", err)
	}
	if !payload.QueryResult.Success {
		p.logger.Debug("WolframAlpha did not understand the query", ports.F("date", day.Format("2006-01-02")))
		return nil, ports.FailureNone, nil
	}

	var records []ports.WeatherRecord
	for _, pod := range payload.QueryResult.Pods {
		if !weatherPod(pod.Title) {
			continue
		}
		text := ""
		for _, subpod := range pod.Subpods {
			if strings.TrimSpace(subpod.Plaintext) != "" {
				text = subpod.Plaintext
				break
			}
		}
		records = append(records, ports.WeatherRecord{
			Provider:  ports.ProviderWolframAlpha,
			QueryDate: day.Format("2006-01-02"),
			Title:     pod.Title,
			Text:      text,
		})
	}
	return records, ports.FailureNone, nil
}

func weatherPod(title string) bool {
	lower := strings.ToLower(title)
	if strings.Contains(lower, "current") {
		return false
	}
	return strings.Contains(lower, "weather") || strings.Contains(lower, "forecast") || strings.Contains(lower, "temperature")
}
