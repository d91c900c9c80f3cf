package store

import (
	"fmt"
	"sync"
	"time"

	"github.com/i474232898/airport-weather/internal/weather"
)

// slot holds the latest reading for one airport.
type slot struct {
	mu      sync.RWMutex
	reading weather.Reading
}

// MemoryStore is a concurrency-safe in-memory implementation of a reading store.
// Writers to different airports only contend on the first write per airport.
type MemoryStore struct {
	airports weather.AirportLookup

	mu sync.RWMutex

	// key: IATA code, value: latest reading
	data map[string]*slot
}

// NewMemoryStore creates a new MemoryStore whose keys are checked against airports.
func NewMemoryStore(airports weather.AirportLookup) *MemoryStore {
	return &MemoryStore{
		airports: airports,
		data:     make(map[string]*slot),
	}
}

// Update merges partial into the stored reading and stamps it with now.
func (s *MemoryStore) Update(iata string, partial weather.Reading, now time.Time) error {
	if _, err := s.airports.Lookup(iata); err != nil {
		return fmt.Errorf("%w: %s", weather.ErrUnknownAirport, iata)
	}

	sl, ok := s.slotFor(iata)
	if !ok {
		return fmt.Errorf("%w: %s", weather.ErrUnknownAirport, iata)
	}

	sl.mu.Lock()
	defer sl.mu.Unlock()
	sl.reading = sl.reading.Merge(partial)
	sl.reading.LastUpdate = now
	return nil
}

// Get returns a copy of the reading for iata. A registered airport without
// any update yields an empty reading.
func (s *MemoryStore) Get(iata string) (weather.Reading, error) {
	if _, err := s.airports.Lookup(iata); err != nil {
		return weather.Reading{}, err
	}

	s.mu.RLock()
	sl, ok := s.data[iata]
	s.mu.RUnlock()
	if !ok {
		return weather.Reading{}, nil
	}

	sl.mu.RLock()
	defer sl.mu.RUnlock()
	return sl.reading.Clone(), nil
}

// Delete drops the reading for iata, if any.
func (s *MemoryStore) Delete(iata string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, iata)
}

// Retain drops every reading whose code keep rejects.
func (s *MemoryStore) Retain(keep func(iata string) bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for iata := range s.data {
		if !keep(iata) {
			delete(s.data, iata)
		}
	}
}

// slotFor returns the slot for iata, creating it if the airport is still
// registered. Creation re-checks the registry under s.mu so a concurrent
// Delete or Retain cannot be followed by a slot for a removed code.
func (s *MemoryStore) slotFor(iata string) (*slot, bool) {
	s.mu.RLock()
	sl, ok := s.data[iata]
	s.mu.RUnlock()
	if ok {
		return sl, true
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if sl, ok = s.data[iata]; ok {
		return sl, true
	}
	if _, err := s.airports.Lookup(iata); err != nil {
		return nil, false
	}
	sl = &slot{}
	s.data[iata] = sl
	return sl, true
}
