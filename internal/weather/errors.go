package weather

import "errors"

var (
	// ErrAirportNotFound is returned when a query names an airport that is not registered.
	ErrAirportNotFound = errors.New("airport not found")

	// ErrUnknownAirport is returned when an update names an airport that is not registered.
	ErrUnknownAirport = errors.New("unknown airport")

	// ErrDuplicateKey is returned when a registry load sees the same IATA code twice.
	ErrDuplicateKey = errors.New("duplicate airport")

	// ErrInvalidRadius is returned for negative or non-numeric radius values.
	ErrInvalidRadius = errors.New("invalid radius")

	// ErrInvalidAirport is returned for airport records failing validation.
	ErrInvalidAirport = errors.New("invalid airport")

	// ErrInvalidReading is returned for readings with out-of-range measurements.
	ErrInvalidReading = errors.New("invalid reading")

	// ErrEmptyReading is returned for updates carrying no measurement at all.
	ErrEmptyReading = errors.New("reading has no measurements")
)
