package external

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"weatherhistory.app/internal/ports"
)

func TestVisualCrossingProvider_Fetch(t *testing.T) {
	server := newRecordingServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"days": [
			{"datetime": "2024-07-20", "hours": [
				{"datetime": "00:00:00", "temp": 14.2, "humidity": 92.5, "pressure": 1016, "windspeed": 36, "solarradiation": 0, "precip": 1.2},
				{"datetime": "01:00:00", "temp": 13.9, "windspeed": null}
			]},
			{"datetime": "2024-07-21", "hours": [
				{"datetime": "00:00:00", "temp": 10.0}
			]}
		]}`))
	})

	provider := NewVisualCrossingProviderAdapter(VisualCrossingProviderParams{BaseURL: server.URL, Logger: &testLogger{}})
	result := provider.Fetch(context.Background(), ports.FetchQuery{
		Start:      day(2024, 7, 20),
		End:        day(2024, 7, 21),
		Location:   "Toledo, Paraná",
		Credential: "vc-key",
	})

	require.Equal(t, 1, server.count())
	req := server.request(0)
	assert.Equal(t, "/timeline/Toledo, Paraná/2024-07-20/2024-07-20", req.URL.Path)
	q := req.URL.Query()
	assert.Equal(t, "metric", q.Get("unitGroup"))
	assert.Equal(t, "hours", q.Get("include"))
	assert.Equal(t, "vc-key", q.Get("key"))
	assert.Equal(t, "json", q.Get("contentType"))

	require.Equal(t, ports.FetchStatusData, result.Status)
	require.Len(t, result.Records, 2)

	first := result.Records[0]
	assert.Equal(t, ports.ProviderVisualCrossing, first.Provider)
	assert.Equal(t, "2024-07-20 00:00:00", first.ObservedAt)
	assert.InDelta(t, 10.0, floatValue(t, first.WindSpeedMS), 1e-9)
	assert.Equal(t, 1.2, floatValue(t, first.RainMM))
	assert.Equal(t, 0.0, floatValue(t, first.SolarRadiation))
	assert.Nil(t, result.Records[1].WindSpeedMS)
}

func TestVisualCrossingProvider_Failures(t *testing.T) {
	server := newRecordingServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`Bad API Request:Invalid location parameter value.`))
	})
	provider := NewVisualCrossingProviderAdapter(VisualCrossingProviderParams{BaseURL: server.URL, Logger: &testLogger{}})

	result := provider.Fetch(context.Background(), ports.FetchQuery{Start: day(2024, 7, 20), End: day(2024, 7, 21), Location: "Nowhere", Credential: "k"})
	assert.Equal(t, ports.FailureHTTPStatus, result.Failure)

	result = provider.Fetch(context.Background(), ports.FetchQuery{Start: day(2024, 7, 20), End: day(2024, 7, 21), Credential: "k"})
	assert.Equal(t, ports.FailureNotFound, result.Failure)
	assert.Equal(t, 1, server.count())
}
