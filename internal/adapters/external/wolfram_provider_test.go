package external

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"weatherhistory.app/internal/ports"
)

const wolframPods = `{"queryresult": {"success": true, "pods": [
	{"title": "Input interpretation", "subpods": [{"plaintext": "weather | Toledo"}]},
	{"title": "Weather history & forecast", "subpods": [{"plaintext": ""}, {"plaintext": "low: 9 °C | high: 21 °C"}]},
	{"title": "Current weather", "subpods": [{"plaintext": "should be ignored"}]},
	{"title": "Temperature", "subpods": [{"plaintext": "15 °C average"}]}
]}}`

func TestWolframAlphaProvider_QueriesEachDay(t *testing.T) {
	server := newRecordingServer(t, func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Query().Get("input"), "July 21, 2024") {
			_, _ = w.Write([]byte(`{"queryresult": {"success": false, "pods": []}}`))
			return
		}
		_, _ = w.Write([]byte(wolframPods))
	})

	provider := NewWolframAlphaProviderAdapter(WolframAlphaProviderParams{BaseURL: server.URL, Logger: &testLogger{}})
	result := provider.Fetch(context.Background(), ports.FetchQuery{
		Start:      day(2024, 7, 20),
		End:        day(2024, 7, 22),
		Location:   "Toledo, Paraná",
		Credential: "wa-key",
	})

	require.Equal(t, 2, server.count())
	q := server.request(0).URL.Query()
	assert.Equal(t, "/query", server.request(0).URL.Path)
	assert.Equal(t, "weather in Toledo, Paraná on July 20, 2024", q.Get("input"))
	assert.Equal(t, "wa-key", q.Get("appid"))
	assert.Equal(t, "json", q.Get("output"))
	assert.Equal(t, "plaintext", q.Get("format"))

	require.Equal(t, ports.FetchStatusData, result.Status)
	require.Len(t, result.Records, 2)
	assert.Equal(t, ports.ProviderWolframAlpha, result.Records[0].Provider)
	assert.Equal(t, "2024-07-20", result.Records[0].QueryDate)
	assert.Equal(t, "Weather history & forecast", result.Records[0].Title)
	assert.Equal(t, "low: 9 °C | high: 21 °C", result.Records[0].Text)
	assert.Equal(t, "Temperature", result.Records[1].Title)
	assert.Nil(t, result.Records[0].TemperatureC)
}

func TestWolframAlphaProvider_DayFailureContinues(t *testing.T) {
	server := newRecordingServer(t, func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Query().Get("input"), "July 20, 2024") {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(wolframPods))
	})
	provider := NewWolframAlphaProviderAdapter(WolframAlphaProviderParams{BaseURL: server.URL, Logger: &testLogger{}})

	result := provider.Fetch(context.Background(), ports.FetchQuery{Start: day(2024, 7, 20), End: day(2024, 7, 22), Location: "Toledo", Credential: "k"})

	assert.Equal(t, 2, server.count())
	require.Equal(t, ports.FetchStatusData, result.Status)
	assert.Equal(t, "2024-07-21", result.Records[0].QueryDate)
}

func TestWolframAlphaProvider_AllDaysFail(t *testing.T) {
	client := &failingClient{}
	provider := NewWolframAlphaProviderAdapter(WolframAlphaProviderParams{Client: client, Logger: &testLogger{}})

	result := provider.Fetch(context.Background(), ports.FetchQuery{Start: day(2024, 7, 20), End: day(2024, 7, 23), Location: "Toledo", Credential: "k"})

	assert.Equal(t, 3, client.calls)
	assert.Equal(t, ports.FetchStatusFailed, result.Status)
	assert.Equal(t, ports.FailureTransport, result.Failure)
}

func TestWolframAlphaProvider_AllDaysRejected(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		failure ports.FailureKind
	}{
		{
			name: "Status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusForbidden)
			},
			failure: ports.FailureHTTPStatus,
		},
		{
			name: "MalformedPayload",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"queryresult":`))
			},
			failure: ports.FailureMalformedPayload,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newRecordingServer(t, tt.handler)
			provider := NewWolframAlphaProviderAdapter(WolframAlphaProviderParams{BaseURL: server.URL, Logger: &testLogger{}})

			result := provider.Fetch(context.Background(), ports.FetchQuery{Start: day(2024, 7, 20), End: day(2024, 7, 22), Location: "Toledo", Credential: "k"})

			assert.Equal(t, 2, server.count())
			assert.Equal(t, ports.FetchStatusFailed, result.Status)
			assert.Equal(t, tt.failure, result.Failure)
		})
	}
}

func TestWeatherPod(t *testing.T) {
	tests := map[string]bool{
		"Weather history & forecast": true,
		"Temperature":                true,
		"Weather forecast for Toledo": true,
		"Current weather":            false,
		"Input interpretation":       false,
	}
	for title, want := range tests {
		assert.Equal(t, want, weatherPod(title), title)
	}
}
