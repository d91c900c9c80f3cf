package providers

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/i474232898/airport-weather/internal/weather"
)

var errNoAPIKey = errors.New("openweather api key is not configured")

// OpenWeatherProvider reads current conditions from OpenWeatherMap in metric units.
type OpenWeatherProvider struct {
	name     string
	apiKey   string
	baseURL  string
	upstream *upstream
}

func NewOpenWeatherProvider(client *http.Client, apiKey string) *OpenWeatherProvider {
	return &OpenWeatherProvider{
		name:     "openweathermap",
		apiKey:   apiKey,
		baseURL:  "https://api.openweathermap.org/data/2.5/weather",
		upstream: newUpstream("openweather", client),
	}
}

func (p *OpenWeatherProvider) Name() string {
	return p.name
}

type openWeatherResponse struct {
	Dt   int64 `json:"dt"`
	Main struct {
		Temp     *float64 `json:"temp"`
		Humidity *float64 `json:"humidity"`
		Pressure *float64 `json:"pressure"`
	} `json:"main"`
	Wind struct {
		Speed *float64 `json:"speed"`
	} `json:"wind"`
	Clouds struct {
		All *float64 `json:"all"`
	} `json:"clouds"`
	Rain struct {
		OneH   *float64 `json:"1h"`
		ThreeH *float64 `json:"3h"`
	} `json:"rain"`
}

func (p *OpenWeatherProvider) Fetch(ctx context.Context, airport weather.Airport) (weather.ProviderReading, error) {
	if p.apiKey == "" {
		return weather.ProviderReading{}, errNoAPIKey
	}

	query := url.Values{
		"appid": {p.apiKey},
		"units": {"metric"},
		"lat":   {coord(airport.Lat)},
		"lon":   {coord(airport.Lon)},
	}

	var payload openWeatherResponse
	if err := p.upstream.getJSON(ctx, p.baseURL, query, &payload); err != nil {
		return weather.ProviderReading{}, err
	}

	ts := time.Now().UTC()
	if payload.Dt > 0 {
		ts = time.Unix(payload.Dt, 0).UTC()
	}

	precip := payload.Rain.OneH
	if precip == nil {
		precip = payload.Rain.ThreeH
	}

	return weather.ProviderReading{
		ProviderName:  p.name,
		Timestamp:     ts,
		CloudCover:    payload.Clouds.All,
		Humidity:      payload.Main.Humidity,
		Pressure:      payload.Main.Pressure,
		Precipitation: precip,
		Temperature:   payload.Main.Temp,
		Wind:          payload.Wind.Speed,
	}, nil
}
