// Package loader reads airport metadata in the airports.dat CSV layout:
//
//	name, city, country, IATA, ICAO, latitude, longitude, altitude, timezone, dst
package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/i474232898/airport-weather/internal/weather"
)

const (
	colIATA = 3
	colLat  = 5
	colLon  = 6

	minColumns = colLon + 1
)

// ParseAirports reads every row of r in order. Rows without an IATA code are
// skipped; any malformed row fails the whole parse.
func ParseAirports(r io.Reader) ([]weather.Airport, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	var out []weather.Airport
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		line, _ := cr.FieldPos(0)

		if len(rec) < minColumns {
			return nil, fmt.Errorf("line %d: expected at least %d columns, got %d", line, minColumns, len(rec))
		}

		iata := strings.ToUpper(strings.TrimSpace(rec[colIATA]))
		if iata == "" || iata == `\N` {
			continue
		}

		lat, err := strconv.ParseFloat(strings.TrimSpace(rec[colLat]), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: latitude %q: %w", line, rec[colLat], err)
		}
		lon, err := strconv.ParseFloat(strings.TrimSpace(rec[colLon]), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: longitude %q: %w", line, rec[colLon], err)
		}

		a := weather.Airport{IATA: iata, Lat: lat, Lon: lon}
		if err := weather.ValidateAirport(a); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, a)
	}
}

// LoadFile parses the airports file at path.
func LoadFile(path string) ([]weather.Airport, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	airports, err := ParseAirports(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return airports, nil
}
