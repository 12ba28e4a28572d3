package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"weatherhistory.app/internal/core/collection"
	"weatherhistory.app/internal/core/report"
	"weatherhistory.app/internal/ports"
	"weatherhistory.app/pkg/errors"
)

// CollectionRequest represents the HTTP request for starting a collection
type CollectionRequest struct {
	Location    string             `json:"location" binding:"required"`
	DayStart    int                `json:"day_start" binding:"required,min=1,max=31"`
	MonthStart  int                `json:"month_start" binding:"required,min=1,max=12"`
	DayEnd      int                `json:"day_end" binding:"required,min=1,max=31"`
	MonthEnd    int                `json:"month_end" binding:"required,min=1,max=12"`
	Years       int                `json:"years" binding:"required,min=1,max=20"`
	Preset      string             `json:"preset"`
	Credentials CredentialsPayload `json:"credentials"`
}

// CredentialsPayload carries per-request provider keys; empty keys fall back
// to the configured ones
type CredentialsPayload struct {
	OpenWeatherMap string `json:"openweathermap"`
	StormGlass     string `json:"stormglass"`
	VisualCrossing string `json:"visualcrossing"`
	Wolfram        string `json:"wolfram"`
}

func (p CredentialsPayload) toMap() map[string]string {
	creds := make(map[string]string)
	for key, value := range map[string]string{
		ports.CredentialOpenWeatherMap: p.OpenWeatherMap,
		ports.CredentialStormGlass:     p.StormGlass,
		ports.CredentialVisualCrossing: p.VisualCrossing,
		ports.CredentialWolfram:        p.Wolfram,
	} {
		if value != "" {
			creds[key] = value
		}
	}
	return creds
}

// RunListResponse wraps the run listing
type RunListResponse struct {
	Runs []*collection.RunView `json:"runs"`
}

// PresetListResponse wraps the preset listing
type PresetListResponse struct {
	Presets []report.Preset `json:"presets"`
}

// submitCollection handles POST /api/collections requests
func (s *HTTPServerAdapter) submitCollection(c *gin.Context) {
	var httpReq CollectionRequest
	slog.Debug("Handling collection request")

	if err := c.ShouldBindJSON(&httpReq); err != nil {
		slog.Error("Request binding error", "error", err)
		s.handleError(c, errors.NewValidationError("Invalid request format"))
		return
	}

	domainReq := collection.CollectRequest{
		Location:    httpReq.Location,
		DayStart:    httpReq.DayStart,
		MonthStart:  httpReq.MonthStart,
		DayEnd:      httpReq.DayEnd,
		MonthEnd:    httpReq.MonthEnd,
		Years:       httpReq.Years,
		Preset:      httpReq.Preset,
		Credentials: httpReq.Credentials.toMap(),
	}

	run, err := s.collections.Submit(c.Request.Context(), domainReq)
	if err != nil {
		slog.Error("Collection submit error", "error", err, "location", httpReq.Location)
		s.handleError(c, err)
		return
	}

	slog.Info("Collection queued", "run_id", run.ID, "location", run.Location, "years", run.Years)
	c.JSON(http.StatusAccepted, run)
}

// getCollection handles GET /api/collections/:id requests
func (s *HTTPServerAdapter) getCollection(c *gin.Context) {
	run, err := s.collections.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		slog.Debug("Collection lookup error", "error", err, "run_id", c.Param("id"))
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, run)
}

// listCollections handles GET /api/collections requests
func (s *HTTPServerAdapter) listCollections(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			s.handleError(c, errors.NewValidationError("limit must be a positive integer"))
			return
		}
		limit = parsed
	}

	runs, err := s.collections.List(c.Request.Context(), limit)
	if err != nil {
		slog.Error("Collection list error", "error", err)
		s.handleError(c, err)
		return
	}

	if runs == nil {
		runs = []*collection.RunView{}
	}
	c.JSON(http.StatusOK, RunListResponse{Runs: runs})
}

// listPresets handles GET /api/presets requests
func (s *HTTPServerAdapter) listPresets(c *gin.Context) {
	c.JSON(http.StatusOK, PresetListResponse{Presets: report.Presets()})
}
