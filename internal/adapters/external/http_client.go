package external

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"weatherhistory.app/internal/ports"
	"weatherhistory.app/pkg/errors"
)

const defaultHTTPTimeout = 20 * time.Second

// HTTPClient interface for HTTP requests (for testing)
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

func defaultClient(client HTTPClient, timeout time.Duration) HTTPClient {
	if client != nil {
		return client
	}
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	return &http.Client{Timeout: timeout}
}

// httpResponse is a fully read upstream response
type httpResponse struct {
	StatusCode int
	Body       []byte
}

func (r *httpResponse) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// getBody issues a GET and reads the whole body. Only transport failures
// are returned as errors; the caller interprets the status code.
func getBody(ctx context.Context, client HTTPClient, logger ports.Logger, provider, rawURL string, header http.Header) (*httpResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, errors.NewExternalAPIError(fmt.Sprintf("failed to build %s request", provider), err)
	}
	for key, values := range header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.NewExternalAPIError(fmt.Sprintf("failed to call %s", provider), err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			logger.Warn("Failed to close response body", ports.F("provider", provider), ports.F("error", closeErr))
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewExternalAPIError(fmt.Sprintf("failed to read %s response", provider), err)
	}

	return &httpResponse{StatusCode: resp.StatusCode, Body: body}, nil
}

func statusError(provider string, resp *httpResponse) *errors.AppError {
	return errors.NewExternalAPIError(fmt.Sprintf("%s returned status %d", provider, resp.StatusCode), nil)
}

func asAppError(err error) *errors.AppError {
	if err == nil {
		return nil
	}
	if appErr, ok := errors.AsAppError(err); ok {
		return appErr
	}
	return errors.NewExternalAPIError(err.Error(), err)
}

// flexFloat decodes a JSON number, a numeric string, or null/blank as absent
type flexFloat struct {
	Value *float64
}

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		f.Value = nil
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			f.Value = nil
			return nil
		}
		v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
		if err != nil {
			f.Value = nil
			return nil
		}
		f.Value = &v
		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	f.Value = &v
	return nil
}

// clipRecords keeps records whose timestamp falls in [start, end).
// Records without a parseable timestamp are kept for consolidation to drop.
func clipRecords(records []ports.WeatherRecord, start, end time.Time) []ports.WeatherRecord {
	clipped := records[:0]
	for _, record := range records {
		ts, ok := record.Timestamp()
		if ok && (ts.Before(start) || !ts.Before(end)) {
			continue
		}
		clipped = append(clipped, record)
	}
	return clipped
}

func missingCredential(provider string) ports.FetchResult {
	return ports.FailedResult(ports.FailureMissingCredential,
		errors.NewValidationError(fmt.Sprintf("%s credential is not configured", provider)))
}

func divide(v *float64, divisor float64) *float64 {
	if v == nil {
		return nil
	}
	return ports.Float(*v / divisor)
}
