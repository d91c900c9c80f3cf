package weather

import (
	"math"
	"time"
)

const (
	radiusBuckets = 10

	// legacyMinHistogram is the smallest histogram length in legacy sizing mode.
	legacyMinHistogram = 1000
)

// legacyMaxHistogram caps legacy sizing at half the earth's circumference;
// a larger radius already covers every airport.
var legacyMaxHistogram = math.Ceil(math.Pi * EarthRadiusKm)

// Health summarizes store freshness and query frequencies.
type Health struct {
	registry Registry
	store    Store
	tracker  Tracker

	// legacyHistogram sizes radius_freq by the largest observed radius
	// instead of the ten buckets that can ever be populated.
	legacyHistogram bool
}

// NewHealth creates a Health aggregator.
func NewHealth(registry Registry, store Store, tracker Tracker, legacyHistogram bool) *Health {
	return &Health{
		registry:        registry,
		store:           store,
		tracker:         tracker,
		legacyHistogram: legacyHistogram,
	}
}

// Snapshot builds a report relative to now. Counters are read without
// locking against concurrent queries, so totals may trail in-flight requests.
func (h *Health) Snapshot(now time.Time) HealthReport {
	airports := h.registry.Snapshot()
	return HealthReport{
		DataSize:   h.dataSize(airports, now),
		IATAFreq:   h.iataFreq(airports),
		RadiusFreq: h.radiusFreq(),
	}
}

func (h *Health) dataSize(airports AirportSet, now time.Time) int {
	n := 0
	for _, a := range airports.All() {
		r, err := h.store.Get(a.IATA)
		if err != nil {
			continue
		}
		if r.IsFresh(now) {
			n++
		}
	}
	return n
}

func (h *Health) iataFreq(airports AirportSet) map[string]float64 {
	counts := h.tracker.AirportCounts()
	var total int64
	for _, c := range counts {
		total += c
	}
	if total == 0 {
		return nil
	}

	freq := make(map[string]float64, airports.Len())
	for _, a := range airports.All() {
		freq[a.IATA] = float64(counts[a.IATA]) / float64(total)
	}
	return freq
}

func (h *Health) radiusFreq() []int64 {
	counts := h.tracker.RadiusCounts()

	size := radiusBuckets
	if h.legacyHistogram {
		maxRadius := 0.0
		for r := range counts {
			if !math.IsNaN(r) {
				maxRadius = math.Max(maxRadius, r)
			}
		}
		size = int(math.Min(math.Max(math.Floor(maxRadius), legacyMinHistogram), legacyMaxHistogram)) + 1
	}

	hist := make([]int64, size)
	for r, c := range counts {
		if r < 0 || math.IsNaN(r) || math.IsInf(r, 0) {
			continue
		}
		// no int conversion: huge radii would overflow it
		hist[int(math.Mod(math.Floor(r), radiusBuckets))] += c
	}
	return hist
}
