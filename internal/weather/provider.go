package weather

import (
	"context"
	"time"
)

// ProviderReading represents a single provider's normalized reading
// that can be aggregated into a Reading.
type ProviderReading struct {
	ProviderName string
	Timestamp    time.Time

	CloudCover    *float64
	Humidity      *float64
	Pressure      *float64
	Precipitation *float64
	Temperature   *float64
	Wind          *float64
}

// Provider abstracts an upstream weather data source (e.g. Open-Meteo, OpenWeatherMap).
type Provider interface {
	Name() string
	Fetch(ctx context.Context, airport Airport) (ProviderReading, error)
}

// AirportLookup resolves an IATA code to its airport record.
type AirportLookup interface {
	Lookup(iata string) (Airport, error)
}

// AirportSet is an immutable view of the registry at one point in time.
// The slice returned by All must not be modified.
type AirportSet interface {
	AirportLookup
	All() []Airport
	Len() int
}

// Registry is the contract the airport registry must satisfy.
type Registry interface {
	AirportLookup
	Snapshot() AirportSet
	Replace(airports []Airport) error
	Add(airport Airport) error
	Remove(iata string) error
}

// Store is the contract the atmospheric reading store must satisfy.
type Store interface {
	Update(iata string, partial Reading, now time.Time) error
	Get(iata string) (Reading, error)
	Delete(iata string)
	Retain(keep func(iata string) bool)
}

// Tracker records query frequencies for health reporting.
type Tracker interface {
	RecordQuery(iata string, radius float64)
	AirportCounts() map[string]int64
	RadiusCounts() map[float64]int64
}
