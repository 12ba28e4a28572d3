package app

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"weatherhistory.app/internal/core/collection"
	"weatherhistory.app/internal/ports"
)

// WorkflowTestSuite drives the HTTP API end to end against fake upstreams
type WorkflowTestSuite struct {
	suite.Suite
	upstream   *httptest.Server
	pointCalls atomic.Int32
	app        *Application
	router     *gin.Engine
	cancel     context.CancelFunc
}

func (s *WorkflowTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)

	mux := http.NewServeMux()
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, `[{"lat":"-24.9555","lon":"-53.4552","display_name":"Cascavel, Paraná, Brasil"}]`)
	})
	mux.HandleFunc("/estacoes", func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, `{"estacoes":{}}`)
	})
	mux.HandleFunc("/weather/point", s.stormGlassHours)
	s.upstream = httptest.NewServer(mux)

	cfg := testConfig(s.T())
	cfg.Providers.StormGlassBaseURL = s.upstream.URL
	cfg.Providers.INMETStationsURL = s.upstream.URL + "/estacoes"
	cfg.Providers.NominatimBaseURL = s.upstream.URL

	container, err := NewDependencyContainer(cfg, DependencyOptions{Database: true})
	s.Require().NoError(err)

	s.app, err = NewApplicationWithDependencies(cfg, container)
	s.Require().NoError(err)
	s.router = s.app.GetRouter()

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.app.GetRunService().Start(ctx)
}

func (s *WorkflowTestSuite) TearDownSuite() {
	s.cancel()
	s.app.GetRunService().Stop()
	_ = s.app.container.Cleanup()
	s.upstream.Close()
}

// stormGlassHours answers with one reading per hour of the requested range
func (s *WorkflowTestSuite) stormGlassHours(w http.ResponseWriter, r *http.Request) {
	s.pointCalls.Add(1)

	start, err := time.Parse(time.RFC3339, r.URL.Query().Get("start"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	end, err := time.Parse(time.RFC3339, r.URL.Query().Get("end"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	type value struct {
		NOAA float64 `json:"noaa"`
	}
	type hour struct {
		Time           string `json:"time"`
		AirTemperature value  `json:"airTemperature"`
		Humidity       value  `json:"humidity"`
	}

	var hours []hour
	for t := start; t.Before(end); t = t.Add(time.Hour) {
		hours = append(hours, hour{
			Time:           t.Format(time.RFC3339),
			AirTemperature: value{NOAA: 21.5},
			Humidity:       value{NOAA: 78},
		})
	}
	_ = json.NewEncoder(w).Encode(map[string]interface{}{"hours": hours})
}

func (s *WorkflowTestSuite) submit(body string) collection.RunView {
	w := serve(s.app, http.MethodPost, "/api/collections", body)
	s.Require().Equal(http.StatusAccepted, w.Code, w.Body.String())

	var run collection.RunView
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &run))
	return run
}

func (s *WorkflowTestSuite) waitFinished(id string) collection.RunView {
	var run collection.RunView
	s.Require().Eventually(func() bool {
		w := serve(s.app, http.MethodGet, "/api/collections/"+id, "")
		if w.Code != http.StatusOK {
			return false
		}
		if err := json.Unmarshal(w.Body.Bytes(), &run); err != nil {
			return false
		}
		return run.Status == ports.RunStatusSucceeded || run.Status == ports.RunStatusFailed
	}, 10*time.Second, 50*time.Millisecond)
	return run
}

func (s *WorkflowTestSuite) TestCollectionWorkflow() {
	body := `{
		"location": "Cascavel, PR",
		"day_start": 1, "month_start": 3,
		"day_end": 3, "month_end": 3,
		"years": 2,
		"preset": "Concretagem"
	}`

	first := s.waitFinished(s.submit(body).ID)
	s.Require().Equal(ports.RunStatusSucceeded, first.Status, first.Message)
	s.NotEmpty(first.CSVPath)
	s.NotEmpty(first.ReportPath)
	s.Equal(first.ProgressTotal, first.ProgressCurrent)

	csvData, err := os.ReadFile(first.CSVPath)
	s.Require().NoError(err)
	s.Contains(string(csvData), "temperature_c_StormGlass")

	_, err = os.Stat(first.ReportPath)
	s.NoError(err)

	callsAfterFirst := s.pointCalls.Load()
	s.Equal(int32(2), callsAfterFirst, "one StormGlass request per year")

	second := s.waitFinished(s.submit(body).ID)
	s.Require().Equal(ports.RunStatusSucceeded, second.Status)
	s.Equal(callsAfterFirst, s.pointCalls.Load(), "second run is served from the year cache")

	w := serve(s.app, http.MethodGet, "/api/collections?limit=10", "")
	s.Require().Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), first.ID)
	s.Contains(w.Body.String(), second.ID)

	w = serve(s.app, http.MethodGet, "/metrics", "")
	s.Contains(w.Body.String(), `weather_collection_runs_total{status="succeeded"} 2`)
	s.Contains(w.Body.String(), `weather_year_cache_requests_total{backend="memory",result="hit"}`)
}

func TestWorkflowTestSuite(t *testing.T) {
	suite.Run(t, new(WorkflowTestSuite))
}
