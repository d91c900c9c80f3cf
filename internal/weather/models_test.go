package weather

import (
	"testing"
	"time"
)

func TestReadingIsEmpty(t *testing.T) {
	if !(Reading{}).IsEmpty() {
		t.Fatal("zero reading should be empty")
	}
	if !(Reading{LastUpdate: time.Now()}).IsEmpty() {
		t.Fatal("timestamp alone should not count as data")
	}
	if (Reading{Wind: Float(0)}).IsEmpty() {
		t.Fatal("a zero-valued measurement is still present")
	}
}

func TestReadingIsFresh(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		reading Reading
		want    bool
	}{
		{"updated_23h_ago", Reading{Temperature: Float(10), LastUpdate: now.Add(-23 * time.Hour)}, true},
		{"updated_25h_ago", Reading{Temperature: Float(10), LastUpdate: now.Add(-25 * time.Hour)}, false},
		{"exactly_24h_ago", Reading{Temperature: Float(10), LastUpdate: now.Add(-24 * time.Hour)}, false},
		{"empty_but_recent", Reading{LastUpdate: now}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.reading.IsFresh(now); got != tt.want {
				t.Errorf("IsFresh = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReadingMerge(t *testing.T) {
	base := Reading{Temperature: Float(10), Humidity: Float(40)}
	partial := Reading{Humidity: Float(55), Wind: Float(3)}

	got := base.Merge(partial)

	if got.Temperature == nil || *got.Temperature != 10 {
		t.Errorf("Temperature = %v, want 10 (unchanged)", got.Temperature)
	}
	if got.Humidity == nil || *got.Humidity != 55 {
		t.Errorf("Humidity = %v, want 55", got.Humidity)
	}
	if got.Wind == nil || *got.Wind != 3 {
		t.Errorf("Wind = %v, want 3", got.Wind)
	}
	if got.Pressure != nil {
		t.Errorf("Pressure = %v, want absent", *got.Pressure)
	}

	*partial.Humidity = 99
	*base.Temperature = -1
	if *got.Humidity != 55 || *got.Temperature != 10 {
		t.Error("merged reading shares pointers with its inputs")
	}
}
