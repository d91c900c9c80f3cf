package weather

import (
	"time"
)

// FreshnessWindow is how long a reading counts as current for health reporting.
const FreshnessWindow = 24 * time.Hour

// Airport is a registry entry. Records are immutable once loaded.
type Airport struct {
	IATA string  `json:"iata" validate:"required,len=3,alphanum,uppercase"`
	Lat  float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Lon  float64 `json:"longitude" validate:"gte=-180,lte=180"`
}

// Reading is the latest atmospheric information for one airport.
// Every measurement is optional; a nil field was never reported.
type Reading struct {
	CloudCover    *float64 `json:"cloudCover,omitempty" validate:"omitnil,gte=0,lte=100"`
	Humidity      *float64 `json:"humidity,omitempty" validate:"omitnil,gte=0,lte=100"`
	Pressure      *float64 `json:"pressure,omitempty" validate:"omitnil,gt=0"`
	Precipitation *float64 `json:"precipitation,omitempty" validate:"omitnil,gte=0"`
	Temperature   *float64 `json:"temperature,omitempty" validate:"omitnil,gte=-100,lte=100"`
	Wind          *float64 `json:"wind,omitempty" validate:"omitnil,gte=0"`

	// LastUpdate is stamped by the store on every write.
	LastUpdate time.Time `json:"lastUpdateTime,omitzero"`
}

// IsEmpty reports whether no measurement is present.
func (r Reading) IsEmpty() bool {
	return r.CloudCover == nil &&
		r.Humidity == nil &&
		r.Pressure == nil &&
		r.Precipitation == nil &&
		r.Temperature == nil &&
		r.Wind == nil
}

// IsFresh reports whether the reading has data and was updated within FreshnessWindow of now.
func (r Reading) IsFresh(now time.Time) bool {
	if r.IsEmpty() {
		return false
	}
	return now.Sub(r.LastUpdate) < FreshnessWindow
}

// Merge returns a copy of r with every field present in partial overwritten.
// The result never aliases pointers held by either argument.
func (r Reading) Merge(partial Reading) Reading {
	out := r.Clone()
	if partial.CloudCover != nil {
		out.CloudCover = Float(*partial.CloudCover)
	}
	if partial.Humidity != nil {
		out.Humidity = Float(*partial.Humidity)
	}
	if partial.Pressure != nil {
		out.Pressure = Float(*partial.Pressure)
	}
	if partial.Precipitation != nil {
		out.Precipitation = Float(*partial.Precipitation)
	}
	if partial.Temperature != nil {
		out.Temperature = Float(*partial.Temperature)
	}
	if partial.Wind != nil {
		out.Wind = Float(*partial.Wind)
	}
	return out
}

// Clone returns a deep copy.
func (r Reading) Clone() Reading {
	return Reading{
		CloudCover:    clonePtr(r.CloudCover),
		Humidity:      clonePtr(r.Humidity),
		Pressure:      clonePtr(r.Pressure),
		Precipitation: clonePtr(r.Precipitation),
		Temperature:   clonePtr(r.Temperature),
		Wind:          clonePtr(r.Wind),
		LastUpdate:    r.LastUpdate,
	}
}

// Float returns a pointer to v.
func Float(v float64) *float64 {
	return &v
}

func clonePtr(p *float64) *float64 {
	if p == nil {
		return nil
	}
	return Float(*p)
}

// HealthReport is the service health summary served by the ping endpoint.
type HealthReport struct {
	DataSize   int                `json:"datasize"`
	IATAFreq   map[string]float64 `json:"iata_freq,omitempty"`
	RadiusFreq []int64            `json:"radius_freq"`
}
