package telemetry

import (
	"sync"
	"sync/atomic"

	"github.com/i474232898/airport-weather/internal/weather"
)

// FrequencyTracker counts queries per airport and per requested radius.
// Counters only grow for the lifetime of the process.
type FrequencyTracker struct {
	airports weather.AirportLookup

	byAirport sync.Map // string -> *atomic.Int64
	byRadius  sync.Map // float64 -> *atomic.Int64
}

// NewFrequencyTracker creates a tracker that only counts registered airports.
func NewFrequencyTracker(airports weather.AirportLookup) *FrequencyTracker {
	return &FrequencyTracker{airports: airports}
}

// RecordQuery counts one query. The radius is always counted under its exact
// value; the airport only when it is registered.
func (t *FrequencyTracker) RecordQuery(iata string, radius float64) {
	increment(&t.byRadius, radius)

	if _, err := t.airports.Lookup(iata); err != nil {
		return
	}
	increment(&t.byAirport, iata)
}

// AirportCounts returns a copy of the per-airport counters.
func (t *FrequencyTracker) AirportCounts() map[string]int64 {
	out := make(map[string]int64)
	t.byAirport.Range(func(k, v any) bool {
		out[k.(string)] = v.(*atomic.Int64).Load()
		return true
	})
	return out
}

// RadiusCounts returns a copy of the per-radius counters.
func (t *FrequencyTracker) RadiusCounts() map[float64]int64 {
	out := make(map[float64]int64)
	t.byRadius.Range(func(k, v any) bool {
		out[k.(float64)] = v.(*atomic.Int64).Load()
		return true
	})
	return out
}

func increment(m *sync.Map, key any) {
	c, ok := m.Load(key)
	if !ok {
		c, _ = m.LoadOrStore(key, new(atomic.Int64))
	}
	c.(*atomic.Int64).Add(1)
}
