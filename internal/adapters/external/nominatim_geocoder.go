package external

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"weatherhistory.app/internal/ports"
	"weatherhistory.app/pkg/errors"
)

const (
	defaultNominatimBaseURL   = "https://nominatim.openstreetmap.org"
	defaultNominatimUserAgent = "weatherhistory-collector"
)

// NominatimGeocoderAdapter implements the Geocoder port against an OpenStreetMap Nominatim server
type NominatimGeocoderAdapter struct {
	baseURL   string
	userAgent string
	client    HTTPClient
	logger    ports.Logger
}

// NominatimGeocoderParams holds parameters for creating the geocoder
type NominatimGeocoderParams struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
	Client    HTTPClient
	Logger    ports.Logger
}

type nominatimPlace struct {
	Lat         flexFloat `json:"lat"`
	Lon         flexFloat `json:"lon"`
	DisplayName string    `json:"display_name"`
}

// NewNominatimGeocoderAdapter creates a new Nominatim geocoder
func NewNominatimGeocoderAdapter(params NominatimGeocoderParams) *NominatimGeocoderAdapter {
	baseURL := params.BaseURL
	if baseURL == "" {
		baseURL = defaultNominatimBaseURL
	}
	userAgent := params.UserAgent
	if userAgent == "" {
		userAgent = defaultNominatimUserAgent
	}

	return &NominatimGeocoderAdapter{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		client:    defaultClient(params.Client, params.Timeout),
		logger:    params.Logger,
	}
}

// Resolve returns the coordinates of the best match for the place name
func (g *NominatimGeocoderAdapter) Resolve(ctx context.Context, location string) (ports.Coordinates, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return ports.Coordinates{}, errors.NewValidationError("location cannot be empty")
	}

	params := url.Values{}
	params.Set("q", location)
	params.Set("format", "json")
	params.Set("limit", "1")

	header := http.Header{}
	header.Set("User-Agent", g.userAgent)

	resp, err := getBody(ctx, g.client, g.logger, "Nominatim", fmt.Sprintf("%s/search?%s", g.baseURL, params.Encode()), header)
	if err != nil {
		return ports.Coordinates{}, err
	}
	if !resp.OK() {
		return ports.Coordinates{}, statusError("Nominatim", resp)
	}

	var places []nominatimPlace
	if err := json.Unmarshal(resp.Body, &places); err != nil {
		return ports.Coordinates{}, errors.NewExternalAPIError("failed to decode Nominatim response", err)
	}
	if len(places) == 0 || places[0].Lat.Value == nil || places[0].Lon.Value == nil {
		return ports.Coordinates{}, errors.NewNotFoundError(fmt.Sprintf("location %q not found", location))
	}

	coords := ports.Coordinates{Latitude: *places[0].Lat.Value, Longitude: *places[0].Lon.Value}
	g.logger.Info("Location geocoded",
		ports.F("location", location),
		ports.F("display_name", places[0].DisplayName),
		ports.F("latitude", coords.Latitude),
		ports.F("longitude", coords.Longitude))
	return coords, nil
}
