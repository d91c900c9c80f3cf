package weather

import "time"

// AggregateReadings combines multiple provider readings into a single partial Reading.
// Each field is the mean over the providers that reported it; fields no provider
// reported stay absent.
func AggregateReadings(readings []ProviderReading) Reading {
	var (
		cloud, humidity, pressure, precip, temp, wind mean
	)

	for _, r := range readings {
		cloud.add(r.CloudCover)
		humidity.add(r.Humidity)
		pressure.add(r.Pressure)
		precip.add(r.Precipitation)
		temp.add(r.Temperature)
		wind.add(r.Wind)
	}

	return Reading{
		CloudCover:    cloud.value(),
		Humidity:      humidity.value(),
		Pressure:      pressure.value(),
		Precipitation: precip.value(),
		Temperature:   temp.value(),
		Wind:          wind.value(),
	}
}

// NewestTimestamp returns the latest provider timestamp, or the zero time.
func NewestTimestamp(readings []ProviderReading) time.Time {
	var newest time.Time
	for _, r := range readings {
		if r.Timestamp.After(newest) {
			newest = r.Timestamp
		}
	}
	return newest
}

type mean struct {
	sum float64
	n   int
}

func (m *mean) add(v *float64) {
	if v == nil {
		return
	}
	m.sum += *v
	m.n++
}

func (m *mean) value() *float64 {
	if m.n == 0 {
		return nil
	}
	return Float(m.sum / float64(m.n))
}
