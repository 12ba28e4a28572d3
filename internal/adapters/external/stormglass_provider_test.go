package external

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"weatherhistory.app/internal/ports"
	"weatherhistory.app/pkg/errors"
)

func TestStormGlassProvider_Fetch(t *testing.T) {
	server := newRecordingServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"hours": [
			{"time": "2024-07-20T10:00:00+00:00", "airTemperature": {"noaa": 18.4}, "humidity": {"noaa": 77}, "pressure": {"noaa": 1015.1}, "windSpeed": {"noaa": 4.2}},
			{"time": "2024-07-20T11:00:00+00:00", "airTemperature": {"sg": 19.0}},
			{"time": "2024-07-21T00:00:00+00:00", "airTemperature": {"noaa": 12.0}}
		], "meta": {"cost": 1}}`))
	})

	provider := NewStormGlassProviderAdapter(StormGlassProviderParams{BaseURL: server.URL, Logger: &testLogger{}})
	result := provider.Fetch(context.Background(), ports.FetchQuery{
		Start:       day(2024, 7, 20),
		End:         day(2024, 7, 21),
		Coordinates: cascavel,
		Credential:  "sg-key",
	})

	require.Equal(t, 1, server.count())
	req := server.request(0)
	assert.Equal(t, "/weather/point", req.URL.Path)
	assert.Equal(t, "sg-key", req.Header.Get("Authorization"))
	q := req.URL.Query()
	assert.Equal(t, "-24.73", q.Get("lat"))
	assert.Equal(t, "-53.74", q.Get("lng"))
	assert.Equal(t, "airTemperature,humidity,pressure,windSpeed", q.Get("params"))
	assert.Equal(t, "2024-07-20T00:00:00Z", q.Get("start"))
	assert.Equal(t, "2024-07-21T00:00:00Z", q.Get("end"))
	assert.Equal(t, "noaa", q.Get("source"))

	require.Equal(t, ports.FetchStatusData, result.Status)
	require.Len(t, result.Records, 2)
	assert.Equal(t, 18.4, floatValue(t, result.Records[0].TemperatureC))
	assert.Equal(t, 4.2, floatValue(t, result.Records[0].WindSpeedMS))
	assert.Nil(t, result.Records[1].TemperatureC)
}

func TestStormGlassProvider_Failures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		kind    ports.FailureKind
		isQuota bool
	}{
		{name: "PaymentRequired", status: http.StatusPaymentRequired, body: `{"errors":{"key":"quota"}}`, kind: ports.FailureQuotaExceeded, isQuota: true},
		{name: "TooManyRequests", status: http.StatusTooManyRequests, kind: ports.FailureQuotaExceeded, isQuota: true},
		{name: "Forbidden", status: http.StatusForbidden, kind: ports.FailureHTTPStatus},
		{name: "Malformed", status: http.StatusOK, body: `not json`, kind: ports.FailureMalformedPayload},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newRecordingServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})
			provider := NewStormGlassProviderAdapter(StormGlassProviderParams{BaseURL: server.URL, Logger: &testLogger{}})

			result := provider.Fetch(context.Background(), ports.FetchQuery{Start: day(2024, 7, 20), End: day(2024, 7, 21), Credential: "k"})

			assert.Equal(t, ports.FetchStatusFailed, result.Status)
			assert.Equal(t, tt.kind, result.Failure)
			assert.Equal(t, tt.isQuota, errors.IsQuotaExceededError(result.Err))
		})
	}
}

func TestStormGlassProvider_EmptyHours(t *testing.T) {
	server := newRecordingServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"hours": []}`))
	})
	provider := NewStormGlassProviderAdapter(StormGlassProviderParams{BaseURL: server.URL, Logger: &testLogger{}})

	result := provider.Fetch(context.Background(), ports.FetchQuery{Start: day(2024, 7, 20), End: day(2024, 7, 21), Credential: "k"})

	assert.Equal(t, ports.FetchStatusEmpty, result.Status)
	assert.False(t, result.HasData())
}
