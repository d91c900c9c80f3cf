package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/i474232898/airport-weather/internal/weather"
)

var errNoWeatherAPIKey = errors.New("weatherapi api key is not configured")

// WeatherAPIProvider reads current conditions from WeatherAPI.com.
type WeatherAPIProvider struct {
	name     string
	apiKey   string
	baseURL  string
	upstream *upstream
}

func NewWeatherAPIProvider(client *http.Client, apiKey string) *WeatherAPIProvider {
	return &WeatherAPIProvider{
		name:     "weatherapi",
		apiKey:   apiKey,
		baseURL:  "https://api.weatherapi.com/v1/current.json",
		upstream: newUpstream("weatherapi", client),
	}
}

func (p *WeatherAPIProvider) Name() string {
	return p.name
}

type weatherAPIResponse struct {
	Current struct {
		LastUpdatedEpoch int64    `json:"last_updated_epoch"`
		TempC            *float64 `json:"temp_c"`
		Humidity         *float64 `json:"humidity"`
		WindKph          *float64 `json:"wind_kph"`
		PressureMb       *float64 `json:"pressure_mb"`
		PrecipMm         *float64 `json:"precip_mm"`
		Cloud            *float64 `json:"cloud"`
	} `json:"current"`
}

func (p *WeatherAPIProvider) Fetch(ctx context.Context, airport weather.Airport) (weather.ProviderReading, error) {
	if p.apiKey == "" {
		return weather.ProviderReading{}, errNoWeatherAPIKey
	}

	// "q" accepts "lat,lon"
	query := url.Values{
		"key": {p.apiKey},
		"q":   {fmt.Sprintf("%s,%s", coord(airport.Lat), coord(airport.Lon))},
	}

	var payload weatherAPIResponse
	if err := p.upstream.getJSON(ctx, p.baseURL, query, &payload); err != nil {
		return weather.ProviderReading{}, err
	}
	cur := payload.Current

	ts := time.Now().UTC()
	if cur.LastUpdatedEpoch > 0 {
		ts = time.Unix(cur.LastUpdatedEpoch, 0).UTC()
	}

	return weather.ProviderReading{
		ProviderName:  p.name,
		Timestamp:     ts,
		CloudCover:    cur.Cloud,
		Humidity:      cur.Humidity,
		Pressure:      cur.PressureMb,
		Precipitation: cur.PrecipMm,
		Temperature:   cur.TempC,
		Wind:          kmhToMS(cur.WindKph),
	}, nil
}
