package weather

import (
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateAirport checks the code format and coordinate ranges of a record.
func ValidateAirport(a Airport) error {
	if math.IsNaN(a.Lat) || math.IsNaN(a.Lon) {
		return fmt.Errorf("%w: %s: coordinates must be numbers", ErrInvalidAirport, a.IATA)
	}
	if err := validate.Struct(a); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidAirport, a.IATA, err)
	}
	return nil
}

// ValidateReading checks that a partial reading carries at least one
// measurement and that every present measurement is in range.
func ValidateReading(r Reading) error {
	if r.IsEmpty() {
		return ErrEmptyReading
	}
	for _, v := range []*float64{r.CloudCover, r.Humidity, r.Pressure, r.Precipitation, r.Temperature, r.Wind} {
		if v != nil && (math.IsNaN(*v) || math.IsInf(*v, 0)) {
			return fmt.Errorf("%w: measurements must be finite", ErrInvalidReading)
		}
	}
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidReading, err)
	}
	return nil
}

// ValidateRadius rejects negative, NaN and infinite radius values.
func ValidateRadius(radius float64) error {
	if math.IsNaN(radius) || math.IsInf(radius, 0) || radius < 0 {
		return fmt.Errorf("%w: %v", ErrInvalidRadius, radius)
	}
	return nil
}
