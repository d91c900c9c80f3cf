package weather

import "math"

// EarthRadiusKm is the radius used for great-circle distances.
const EarthRadiusKm = 6372.8

// Distance returns the haversine distance in kilometres between two airports.
func Distance(a, b Airport) float64 {
	deltaLat := toRadians(b.Lat - a.Lat)
	deltaLon := toRadians(b.Lon - a.Lon)
	h := math.Pow(math.Sin(deltaLat/2), 2) +
		math.Pow(math.Sin(deltaLon/2), 2)*(math.Cos(toRadians(a.Lat))*math.Cos(toRadians(b.Lat)))
	// grouping the cosines keeps Distance(a, b) == Distance(b, a) bit for bit;
	// rounding can push h just past 1 for antipodal points
	return 2 * EarthRadiusKm * math.Asin(math.Sqrt(math.Min(h, 1)))
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
