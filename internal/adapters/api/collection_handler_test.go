package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"weatherhistory.app/internal/core/collection"
	"weatherhistory.app/internal/ports"
	"weatherhistory.app/pkg/errors"
)

type fakeCollectionService struct {
	submitted []collection.CollectRequest
	submitErr error
	runs      map[string]*collection.RunView
	listLimit int
}

func (f *fakeCollectionService) Submit(ctx context.Context, req collection.CollectRequest) (*collection.RunView, error) {
	f.submitted = append(f.submitted, req)
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	return &collection.RunView{
		ID:       "0b9f3c1e-6d55-4d4b-9a43-1f1f6f0c2a11",
		Location: req.Location,
		Years:    req.Years,
		Status:   ports.RunStatusPending,
	}, nil
}

func (f *fakeCollectionService) Get(ctx context.Context, id string) (*collection.RunView, error) {
	run, ok := f.runs[id]
	if !ok {
		return nil, errors.NewNotFoundError("collection run not found")
	}
	return run, nil
}

func (f *fakeCollectionService) List(ctx context.Context, limit int) ([]*collection.RunView, error) {
	f.listLimit = limit
	var out []*collection.RunView
	for _, run := range f.runs {
		out = append(out, run)
	}
	return out, nil
}

type fakeHealth map[string]ports.HealthStatus

func (f fakeHealth) CheckAll(ctx context.Context) map[string]ports.HealthStatus { return f }

func newTestServer(t *testing.T, service CollectionService, health ports.SystemHealthChecker) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	server, err := NewHTTPServerAdapter(ServerOptions{
		Config:              ServerConfig{Port: 8080},
		CollectionService:   service,
		SystemHealthChecker: health,
		MetricsHandler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("weather_collection_runs_total 0\n"))
		}),
	})
	require.NoError(t, err)
	return server.GetRouter()
}

func doRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestNewHTTPServerAdapter_Validate(t *testing.T) {
	_, err := NewHTTPServerAdapter(ServerOptions{SystemHealthChecker: fakeHealth{}})
	assert.ErrorContains(t, err, "collection service is required")

	_, err = NewHTTPServerAdapter(ServerOptions{CollectionService: &fakeCollectionService{}})
	assert.ErrorContains(t, err, "system health checker is required")
}

func TestCollectionHandler_Submit(t *testing.T) {
	t.Run("Accepted", func(t *testing.T) {
		service := &fakeCollectionService{}
		router := newTestServer(t, service, fakeHealth{})

		w := doRequest(router, http.MethodPost, "/api/collections", `{
			"location": "Cascavel, PR",
			"day_start": 1, "month_start": 3,
			"day_end": 31, "month_end": 3,
			"years": 5,
			"preset": "Alvenaria",
			"credentials": {"stormglass": "sg-key", "wolfram": ""}
		}`)

		require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())

		var run collection.RunView
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &run))
		assert.Equal(t, ports.RunStatusPending, run.Status)
		assert.Equal(t, "Cascavel, PR", run.Location)

		require.Len(t, service.submitted, 1)
		req := service.submitted[0]
		assert.Equal(t, 3, req.MonthStart)
		assert.Equal(t, 31, req.DayEnd)
		assert.Equal(t, "Alvenaria", req.Preset)
		assert.Equal(t, map[string]string{ports.CredentialStormGlass: "sg-key"}, req.Credentials)
	})

	t.Run("BindingFailure", func(t *testing.T) {
		tests := []struct {
			name string
			body string
		}{
			{"MissingLocation", `{"day_start":1,"month_start":3,"day_end":2,"month_end":3,"years":1}`},
			{"MonthOutOfRange", `{"location":"X","day_start":1,"month_start":13,"day_end":2,"month_end":3,"years":1}`},
			{"TooManyYears", `{"location":"X","day_start":1,"month_start":3,"day_end":2,"month_end":3,"years":21}`},
			{"MalformedJSON", `{"location":`},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				service := &fakeCollectionService{}
				router := newTestServer(t, service, fakeHealth{})

				w := doRequest(router, http.MethodPost, "/api/collections", tt.body)

				assert.Equal(t, http.StatusBadRequest, w.Code)
				assert.JSONEq(t, `{"error":"Invalid request format"}`, w.Body.String())
				assert.Empty(t, service.submitted)
			})
		}
	})

	t.Run("DomainValidation", func(t *testing.T) {
		service := &fakeCollectionService{submitErr: errors.NewValidationError("unknown preset \"Piscina\"")}
		router := newTestServer(t, service, fakeHealth{})

		w := doRequest(router, http.MethodPost, "/api/collections",
			`{"location":"X","day_start":1,"month_start":3,"day_end":2,"month_end":3,"years":1,"preset":"Piscina"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Piscina")
	})

	t.Run("QueueFull", func(t *testing.T) {
		service := &fakeCollectionService{submitErr: errors.NewUnavailableError("collection queue is full")}
		router := newTestServer(t, service, fakeHealth{})

		w := doRequest(router, http.MethodPost, "/api/collections",
			`{"location":"X","day_start":1,"month_start":3,"day_end":2,"month_end":3,"years":1}`)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestCollectionHandler_Get(t *testing.T) {
	finished := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	service := &fakeCollectionService{runs: map[string]*collection.RunView{
		"run-1": {ID: "run-1", Status: ports.RunStatusSucceeded, CSVPath: "dados.csv", FinishedAt: &finished},
	}}
	router := newTestServer(t, service, fakeHealth{})

	w := doRequest(router, http.MethodGet, "/api/collections/run-1", "")
	require.Equal(t, http.StatusOK, w.Code)

	var run collection.RunView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &run))
	assert.Equal(t, "dados.csv", run.CSVPath)
	require.NotNil(t, run.FinishedAt)
	assert.True(t, finished.Equal(*run.FinishedAt))

	w = doRequest(router, http.MethodGet, "/api/collections/missing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCollectionHandler_List(t *testing.T) {
	t.Run("WithLimit", func(t *testing.T) {
		service := &fakeCollectionService{runs: map[string]*collection.RunView{"a": {ID: "a"}}}
		router := newTestServer(t, service, fakeHealth{})

		w := doRequest(router, http.MethodGet, "/api/collections?limit=5", "")

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 5, service.listLimit)

		var response RunListResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Len(t, response.Runs, 1)
	})

	t.Run("EmptyIsArray", func(t *testing.T) {
		router := newTestServer(t, &fakeCollectionService{}, fakeHealth{})

		w := doRequest(router, http.MethodGet, "/api/collections", "")

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"runs":[]}`, w.Body.String())
	})

	t.Run("InvalidLimit", func(t *testing.T) {
		for _, limit := range []string{"abc", "0", "-3"} {
			router := newTestServer(t, &fakeCollectionService{}, fakeHealth{})

			w := doRequest(router, http.MethodGet, "/api/collections?limit="+limit, "")

			assert.Equal(t, http.StatusBadRequest, w.Code, limit)
		}
	})
}

func TestPresetsHandler(t *testing.T) {
	router := newTestServer(t, &fakeCollectionService{}, fakeHealth{})

	w := doRequest(router, http.MethodGet, "/api/presets", "")
	require.Equal(t, http.StatusOK, w.Code)

	var response PresetListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Presets, 6)
	assert.Equal(t, "Fundações", response.Presets[0].Name)
	assert.Equal(t, float64(25), response.Presets[0].RainMax)
}

func TestHealthHandler(t *testing.T) {
	t.Run("Healthy", func(t *testing.T) {
		router := newTestServer(t, &fakeCollectionService{}, fakeHealth{
			"database": {Component: "database", Status: "healthy"},
			"cache":    {Component: "cache", Status: "healthy"},
		})

		w := doRequest(router, http.MethodGet, "/api/health", "")

		assert.Equal(t, http.StatusOK, w.Code)
		var response HealthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "healthy", response.Status)
		assert.Len(t, response.Components, 2)
	})

	t.Run("Unhealthy", func(t *testing.T) {
		router := newTestServer(t, &fakeCollectionService{}, fakeHealth{
			"cache": {Component: "cache", Status: "unhealthy", Error: "connection refused"},
		})

		w := doRequest(router, http.MethodGet, "/api/health", "")

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), "connection refused")
	})
}

func TestMetricsEndpoint(t *testing.T) {
	router := newTestServer(t, &fakeCollectionService{}, fakeHealth{})

	w := doRequest(router, http.MethodGet, "/metrics", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "weather_collection_runs_total")
}
