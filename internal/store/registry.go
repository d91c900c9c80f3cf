package store

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/i474232898/airport-weather/internal/weather"
)

// airportSet is one immutable generation of the registry.
type airportSet struct {
	list  []weather.Airport
	index map[string]int
}

func newAirportSet(airports []weather.Airport) (*airportSet, error) {
	s := &airportSet{
		list:  make([]weather.Airport, 0, len(airports)),
		index: make(map[string]int, len(airports)),
	}
	for _, a := range airports {
		if _, dup := s.index[a.IATA]; dup {
			return nil, fmt.Errorf("%w: %s", weather.ErrDuplicateKey, a.IATA)
		}
		s.index[a.IATA] = len(s.list)
		s.list = append(s.list, a)
	}
	return s, nil
}

func (s *airportSet) Lookup(iata string) (weather.Airport, error) {
	i, ok := s.index[iata]
	if !ok {
		return weather.Airport{}, fmt.Errorf("%w: %s", weather.ErrAirportNotFound, iata)
	}
	return s.list[i], nil
}

func (s *airportSet) All() []weather.Airport {
	return s.list
}

func (s *airportSet) Len() int {
	return len(s.list)
}

// AirportRegistry is a concurrency-safe registry of airports keyed by IATA code.
// Readers never lock: every write builds a new generation and swaps it in.
type AirportRegistry struct {
	// mu serializes writers; readers go through current.
	mu      sync.Mutex
	current atomic.Pointer[airportSet]
}

// NewAirportRegistry creates an empty registry.
func NewAirportRegistry() *AirportRegistry {
	r := &AirportRegistry{}
	empty, _ := newAirportSet(nil)
	r.current.Store(empty)
	return r
}

// Snapshot returns the active generation.
func (r *AirportRegistry) Snapshot() weather.AirportSet {
	return r.current.Load()
}

// Lookup returns the airport registered under iata.
func (r *AirportRegistry) Lookup(iata string) (weather.Airport, error) {
	return r.current.Load().Lookup(iata)
}

// Replace swaps in a registry built from airports, preserving their order.
// A duplicate code fails the whole load and keeps the previous generation.
func (r *AirportRegistry) Replace(airports []weather.Airport) error {
	next, err := newAirportSet(airports)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.current.Store(next)
	return nil
}

// Add appends a single airport.
func (r *AirportRegistry) Add(airport weather.Airport) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur := r.current.Load()
	list := make([]weather.Airport, 0, cur.Len()+1)
	list = append(list, cur.list...)
	list = append(list, airport)

	next, err := newAirportSet(list)
	if err != nil {
		return err
	}
	r.current.Store(next)
	return nil
}

// Remove drops a single airport.
func (r *AirportRegistry) Remove(iata string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur := r.current.Load()
	i, ok := cur.index[iata]
	if !ok {
		return fmt.Errorf("%w: %s", weather.ErrAirportNotFound, iata)
	}

	list := make([]weather.Airport, 0, cur.Len()-1)
	list = append(list, cur.list[:i]...)
	list = append(list, cur.list[i+1:]...)

	next, err := newAirportSet(list)
	if err != nil {
		return err
	}
	r.current.Store(next)
	return nil
}
