package weather

import (
	"math"
	"math/rand/v2"
	"testing"
)

var (
	ord = Airport{IATA: "ORD", Lat: 41.978, Lon: -87.904}
	jfk = Airport{IATA: "JFK", Lat: 40.639, Lon: -73.778}
	bos = Airport{IATA: "BOS", Lat: 42.364347, Lon: -71.005181}
	syd = Airport{IATA: "SYD", Lat: -33.946111, Lon: 151.177222}
)

func TestDistanceSymmetricAndZeroOnSelf(t *testing.T) {
	airports := []Airport{ord, jfk, bos, syd}
	for _, a := range airports {
		if d := Distance(a, a); d != 0 {
			t.Errorf("Distance(%s, %s) = %v, want 0", a.IATA, a.IATA, d)
		}
		for _, b := range airports {
			ab, ba := Distance(a, b), Distance(b, a)
			if ab != ba {
				t.Errorf("Distance(%s, %s) = %v but Distance(%s, %s) = %v", a.IATA, b.IATA, ab, b.IATA, a.IATA, ba)
			}
		}
	}
}

func TestDistanceSymmetricRandomPairs(t *testing.T) {
	rng := rand.New(rand.NewPCG(6372, 8))
	coord := func(limit float64) float64 { return (rng.Float64()*2 - 1) * limit }

	for range 100_000 {
		a := Airport{IATA: "AAA", Lat: coord(90), Lon: coord(180)}
		b := Airport{IATA: "BBB", Lat: coord(90), Lon: coord(180)}
		if ab, ba := Distance(a, b), Distance(b, a); ab != ba {
			t.Fatalf("Distance(%v, %v) = %v but reversed = %v", a, b, ab, ba)
		}
	}
}

func TestDistanceKnownPairs(t *testing.T) {
	tests := []struct {
		a, b Airport
		want float64
	}{
		{ord, jfk, 1188.2},
		{jfk, bos, 300.3},
	}
	for _, tt := range tests {
		got := Distance(tt.a, tt.b)
		if math.Abs(got-tt.want) > 1 {
			t.Errorf("Distance(%s, %s) = %.1f km, want %.1f km", tt.a.IATA, tt.b.IATA, got, tt.want)
		}
	}
}

func TestDistanceAntipodal(t *testing.T) {
	a := Airport{IATA: "AAA", Lat: 0, Lon: 0}
	b := Airport{IATA: "BBB", Lat: 0, Lon: 180}
	got := Distance(a, b)
	if math.IsNaN(got) {
		t.Fatal("Distance returned NaN for antipodal points")
	}
	if want := math.Pi * EarthRadiusKm; math.Abs(got-want) > 1e-6 {
		t.Errorf("Distance = %v, want %v", got, want)
	}
}
