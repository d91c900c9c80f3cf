package providers

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/i474232898/airport-weather/internal/weather"
)

const openMeteoCurrentFields = "temperature_2m,relative_humidity_2m,pressure_msl,precipitation,cloud_cover,wind_speed_10m"

// OpenMeteoProvider reads current conditions from Open-Meteo. No key is needed.
type OpenMeteoProvider struct {
	name     string
	baseURL  string
	upstream *upstream
}

func NewOpenMeteoProvider(client *http.Client) *OpenMeteoProvider {
	return &OpenMeteoProvider{
		name:     "openmeteo",
		baseURL:  "https://api.open-meteo.com/v1/forecast",
		upstream: newUpstream("openmeteo", client),
	}
}

func (p *OpenMeteoProvider) Name() string {
	return p.name
}

type openMeteoResponse struct {
	Current struct {
		Time          string   `json:"time"`
		Temperature   *float64 `json:"temperature_2m"`
		Humidity      *float64 `json:"relative_humidity_2m"`
		Pressure      *float64 `json:"pressure_msl"`
		Precipitation *float64 `json:"precipitation"`
		CloudCover    *float64 `json:"cloud_cover"`
		WindSpeedKmh  *float64 `json:"wind_speed_10m"`
	} `json:"current"`
}

func (p *OpenMeteoProvider) Fetch(ctx context.Context, airport weather.Airport) (weather.ProviderReading, error) {
	query := url.Values{
		"latitude":  {coord(airport.Lat)},
		"longitude": {coord(airport.Lon)},
		"current":   {openMeteoCurrentFields},
		"timezone":  {"GMT"},
	}

	var payload openMeteoResponse
	if err := p.upstream.getJSON(ctx, p.baseURL, query, &payload); err != nil {
		return weather.ProviderReading{}, err
	}
	cur := payload.Current

	// minute precision, GMT
	ts, err := time.Parse("2006-01-02T15:04", cur.Time)
	if err != nil {
		ts = time.Now()
	}

	return weather.ProviderReading{
		ProviderName:  p.name,
		Timestamp:     ts.UTC(),
		CloudCover:    cur.CloudCover,
		Humidity:      cur.Humidity,
		Pressure:      cur.Pressure,
		Precipitation: cur.Precipitation,
		Temperature:   cur.Temperature,
		Wind:          kmhToMS(cur.WindSpeedKmh),
	}, nil
}

func kmhToMS(v *float64) *float64 {
	if v == nil {
		return nil
	}
	return weather.Float(*v / 3.6)
}
