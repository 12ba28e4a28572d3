package external

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/tidwall/geodesic"
	"weatherhistory.app/internal/ports"
	"weatherhistory.app/pkg/errors"
)

const (
	defaultINMETStationsURL = "https://apimapas.inmet.gov.br/estacoes"
	defaultINMETDataURL     = "https://apitempo.inmet.gov.br/estacao"
	defaultStationRadiusKM  = 100.0
	inmetEntity             = "INMET"
)

// PortalINMETProviderAdapter implements HistoricalProvider for the INMET station network
type PortalINMETProviderAdapter struct {
	stationsURL string
	dataURL     string
	radiusKM    float64
	client      HTTPClient
	logger      ports.Logger
}

// PortalINMETProviderParams holds parameters for creating the INMET provider
type PortalINMETProviderParams struct {
	StationsURL string
	DataURL     string
	RadiusKM    float64
	Timeout     time.Duration
	Client      HTTPClient
	Logger      ports.Logger
}

// inmetStation is one entry of the station catalogue
type inmetStation struct {
	Code      string    `json:"codigo"`
	Name      string    `json:"nome"`
	Entity    string    `json:"entidade"`
	Latitude  flexFloat `json:"latitude"`
	Longitude flexFloat `json:"longitude"`

	distanceKM float64
}

type inmetCatalogue struct {
	Stations map[string]map[string][]inmetStation `json:"estacoes"`
}

// inmetObservation is one hourly row of a station
type inmetObservation struct {
	Date        string    `json:"DT_MEDICAO"`
	Hour        string    `json:"HR_MEDICAO"`
	Temperature flexFloat `json:"TEMP_INS"`
	Humidity    flexFloat `json:"UMID_INS"`
	Pressure    flexFloat `json:"PRES_INS"`
	WindSpeed   flexFloat `json:"VETO_VEL"`
	Rain        flexFloat `json:"CHUVA"`
	Radiation   flexFloat `json:"RAD_GLO"`
}

// NewPortalINMETProviderAdapter creates a new INMET station provider adapter
func NewPortalINMETProviderAdapter(params PortalINMETProviderParams) *PortalINMETProviderAdapter {
	stationsURL := params.StationsURL
	if stationsURL == "" {
		stationsURL = defaultINMETStationsURL
	}
	dataURL := params.DataURL
	if dataURL == "" {
		dataURL = defaultINMETDataURL
	}
	radius := params.RadiusKM
	if radius <= 0 {
		radius = defaultStationRadiusKM
	}

	return &PortalINMETProviderAdapter{
		stationsURL: stationsURL,
		dataURL:     strings.TrimRight(dataURL, "/"),
		radiusKM:    radius,
		client:      defaultClient(params.Client, params.Timeout),
		logger:      params.Logger,
	}
}

func (p *PortalINMETProviderAdapter) Name() string {
	return ports.ProviderINMET
}

// CredentialKey is empty: the station network needs no key
func (p *PortalINMETProviderAdapter) CredentialKey() string {
	return ""
}

// Fetch asks the nearest station with data for the window, walking the
// stations inside the radius nearest first.
func (p *PortalINMETProviderAdapter) Fetch(ctx context.Context, query ports.FetchQuery) ports.FetchResult {
	stations, kind, err := p.nearbyStations(ctx, query.Coordinates)
	if err != nil {
		p.logger.Error("Failed to load INMET station list", ports.F("error", err.Error()))
		return ports.FailedResult(kind, asAppError(err))
	}

	if len(stations) == 0 {
		p.logger.Info("No INMET station within radius",
			ports.F("radius_km", p.radiusKM),
			ports.F("failure", ports.FailureNotFound.String()))
		return ports.NewFetchResult(nil)
	}

	p.logger.Debug("INMET stations found, trying nearest first", ports.F("count", len(stations)))

	startDay := query.Start.Format("2006-01-02")
	endDay := query.End.AddDate(0, 0, -1).Format("2006-01-02")

	for _, station := range stations {
		if err := ctx.Err(); err != nil {
			return ports.FailedResult(ports.FailureTransport, errors.NewExternalAPIError("INMET fetch cancelled", err))
		}

		url := fmt.Sprintf("%s/%s/%s/%s", p.dataURL, startDay, endDay, station.Code)
		resp, err := getBody(ctx, p.client, p.logger, p.Name(), url, nil)
		if err != nil {
			p.logger.Warn("INMET station unreachable, trying next",
				ports.F("station", station.Code), ports.F("error", err.Error()))
			continue
		}
		if !resp.OK() {
			p.logger.Debug("INMET station returned no data",
				ports.F("station", station.Code), ports.F("status", resp.StatusCode))
			continue
		}

		var observations []inmetObservation
		if err := json.Unmarshal(resp.Body, &observations); err != nil {
			p.logger.Warn("INMET station payload is malformed, trying next",
				ports.F("station", station.Code), ports.F("error", err.Error()))
			continue
		}
		if len(observations) == 0 {
			continue
		}

		p.logger.Info("INMET station has data",
			ports.F("station", station.Code),
			ports.F("name", station.Name),
			ports.F("distance_km", station.distanceKM),
			ports.F("records", len(observations)))

		records := make([]ports.WeatherRecord, 0, len(observations))
		for _, obs := range observations {
			records = append(records, station.record(obs))
		}
		return ports.NewFetchResult(clipRecords(records, query.Start, query.End))
	}

	return ports.NewFetchResult(nil)
}

func (p *PortalINMETProviderAdapter) nearbyStations(ctx context.Context, origin ports.Coordinates) ([]inmetStation, ports.FailureKind, error) {
	resp, err := getBody(ctx, p.client, p.logger, p.Name(), p.stationsURL, nil)
	if err != nil {
		return nil, ports.FailureTransport, err
	}
	if !resp.OK() {
		return nil, ports.FailureHTTPStatus, statusError("INMET station list", resp)
	}

	var catalogue inmetCatalogue
	if err := json.Unmarshal(resp.Body, &catalogue); err != nil {
		return nil, ports.FailureMalformedPayload, errors.NewExternalAPIError("INMET station list is malformed", err)
	}

	var nearby []inmetStation
	for _, regions := range catalogue.Stations {
		for _, stations := range regions {
			for _, station := range stations {
				if station.Entity != inmetEntity || station.Latitude.Value == nil || station.Longitude.Value == nil {
					continue
				}
				station.distanceKM = distanceKM(origin, *station.Latitude.Value, *station.Longitude.Value)
				if station.distanceKM <= p.radiusKM {
					nearby = append(nearby, station)
				}
			}
		}
	}

	sort.SliceStable(nearby, func(i, j int) bool {
		if nearby[i].distanceKM == nearby[j].distanceKM {
			return nearby[i].Code < nearby[j].Code
		}
		return nearby[i].distanceKM < nearby[j].distanceKM
	})
	return nearby, ports.FailureNone, nil
}

func (s inmetStation) record(obs inmetObservation) ports.WeatherRecord {
	return ports.WeatherRecord{
		Provider:       ports.ProviderINMET,
		ObservedAt:     strings.TrimSpace(obs.Date + " " + obs.Hour),
		TemperatureC:   obs.Temperature.Value,
		HumidityPct:    obs.Humidity.Value,
		PressureHPa:    obs.Pressure.Value,
		WindSpeedMS:    obs.WindSpeed.Value,
		RainMM:         obs.Rain.Value,
		SolarRadiation: obs.Radiation.Value,
		StationCode:    s.Code,
		StationName:    s.Name,
		StationEntity:  s.Entity,
		DistanceKM:     ports.Float(s.distanceKM),
	}
}

// distanceKM is the WGS84 geodesic distance in kilometres
func distanceKM(origin ports.Coordinates, lat, lon float64) float64 {
	var metres float64
	geodesic.WGS84.Inverse(origin.Latitude, origin.Longitude, lat, lon, &metres, nil, nil)
	return metres / 1000
}
