package weather

import (
	"errors"
	"math"
	"testing"
)

func TestValidateReading(t *testing.T) {
	tests := []struct {
		name    string
		reading Reading
		wantErr error
	}{
		{"valid", Reading{Temperature: Float(21.5), Humidity: Float(60)}, nil},
		{"negative_temperature", Reading{Temperature: Float(-30)}, nil},
		{"empty", Reading{}, ErrEmptyReading},
		{"humidity_above_100", Reading{Humidity: Float(101)}, ErrInvalidReading},
		{"cloud_cover_negative", Reading{CloudCover: Float(-1)}, ErrInvalidReading},
		{"pressure_zero", Reading{Pressure: Float(0)}, ErrInvalidReading},
		{"wind_negative", Reading{Wind: Float(-2)}, ErrInvalidReading},
		{"nan", Reading{Precipitation: Float(math.NaN())}, ErrInvalidReading},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateReading(tt.reading)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("ValidateReading: unexpected error %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ValidateReading: got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateAirport(t *testing.T) {
	tests := []struct {
		name    string
		airport Airport
		ok      bool
	}{
		{"valid", Airport{IATA: "JFK", Lat: 40.639, Lon: -73.778}, true},
		{"lowercase", Airport{IATA: "jfk", Lat: 40.639, Lon: -73.778}, false},
		{"short_code", Airport{IATA: "JF", Lat: 40.639, Lon: -73.778}, false},
		{"latitude_out_of_range", Airport{IATA: "JFK", Lat: 91, Lon: 0}, false},
		{"longitude_out_of_range", Airport{IATA: "JFK", Lat: 0, Lon: -181}, false},
		{"nan_latitude", Airport{IATA: "JFK", Lat: math.NaN(), Lon: 0}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAirport(tt.airport)
			if tt.ok && err != nil {
				t.Fatalf("ValidateAirport: unexpected error %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidAirport) {
				t.Fatalf("ValidateAirport: got %v, want ErrInvalidAirport", err)
			}
		})
	}
}

func TestValidateRadius(t *testing.T) {
	for _, r := range []float64{0, 0.5, 1200} {
		if err := ValidateRadius(r); err != nil {
			t.Errorf("ValidateRadius(%v): unexpected error %v", r, err)
		}
	}
	for _, r := range []float64{-1, math.NaN(), math.Inf(1)} {
		if err := ValidateRadius(r); !errors.Is(err, ErrInvalidRadius) {
			t.Errorf("ValidateRadius(%v): got %v, want ErrInvalidRadius", r, err)
		}
	}
}
