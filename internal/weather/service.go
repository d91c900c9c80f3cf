package weather

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Service answers radius queries and owns the write paths into the registry and store.
type Service struct {
	registry  Registry
	store     Store
	tracker   Tracker
	providers []Provider
	now       func() time.Time
}

// NewService creates a new Service.
func NewService(registry Registry, store Store, tracker Tracker, providers []Provider) *Service {
	return &Service{
		registry:  registry,
		store:     store,
		tracker:   tracker,
		providers: providers,
		now:       time.Now,
	}
}

// Query returns the readings within radius km of the airport named by iata.
//
// A radius of zero returns that airport's reading even when it is empty.
// A positive radius returns every non-empty reading in range, in registry order,
// the reference airport included. Every call is recorded with the tracker.
func (s *Service) Query(iata string, radius float64) ([]Reading, error) {
	if err := ValidateRadius(radius); err != nil {
		return nil, err
	}
	s.tracker.RecordQuery(iata, radius)

	airports := s.registry.Snapshot()
	ref, err := airports.Lookup(iata)
	if err != nil {
		return nil, err
	}

	if radius == 0 {
		r, err := s.store.Get(ref.IATA)
		if err != nil {
			return nil, err
		}
		return []Reading{r}, nil
	}

	out := make([]Reading, 0)
	for _, a := range airports.All() {
		if Distance(ref, a) > radius {
			continue
		}
		r, err := s.store.Get(a.IATA)
		if err != nil {
			// removed since the snapshot was taken
			continue
		}
		if r.IsEmpty() {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

// Update merges a partial reading into the stored reading for iata.
func (s *Service) Update(iata string, partial Reading) error {
	if err := ValidateReading(partial); err != nil {
		return err
	}
	return s.store.Update(iata, partial, s.now())
}

// Refresh fetches data from all providers concurrently for the given airport,
// aggregates successful readings, and applies them as an update.
func (s *Service) Refresh(ctx context.Context, iata string) error {
	airport, err := s.registry.Lookup(iata)
	if err != nil {
		return err
	}
	if len(s.providers) == 0 {
		return fmt.Errorf("no weather providers configured")
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		readings []ProviderReading
	)

	for _, p := range s.providers {
		wg.Add(1)
		go func() {
			defer wg.Done()

			r, err := p.Fetch(ctx, airport)
			if err != nil {
				// Log and continue; we want partial success when possible.
				slog.Warn("provider fetch failed", "provider", p.Name(), "iata", iata, "error", err)
				return
			}

			mu.Lock()
			readings = append(readings, r)
			mu.Unlock()
		}()
	}

	wg.Wait()

	if len(readings) == 0 {
		slog.Warn("no successful provider readings; keeping last reading", "iata", iata)
		return nil
	}

	partial := AggregateReadings(readings)
	if partial.IsEmpty() {
		return nil
	}
	slog.Debug("refreshed airport",
		"iata", iata,
		"providers", len(readings),
		"observed", NewestTimestamp(readings),
	)
	return s.Update(iata, partial)
}

// Airport returns the registry record for iata.
func (s *Service) Airport(iata string) (Airport, error) {
	return s.registry.Lookup(iata)
}

// Airports lists the registry in load order.
func (s *Service) Airports() []Airport {
	return s.registry.Snapshot().All()
}

// AddAirport registers a single airport.
func (s *Service) AddAirport(a Airport) error {
	if err := ValidateAirport(a); err != nil {
		return err
	}
	return s.registry.Add(a)
}

// RemoveAirport unregisters an airport and drops its reading.
func (s *Service) RemoveAirport(iata string) error {
	if err := s.registry.Remove(iata); err != nil {
		return err
	}
	s.store.Delete(iata)
	return nil
}

// ReplaceAirports swaps in a complete registry. On error the previous
// registry stays active. Readings of airports no longer registered are dropped.
func (s *Service) ReplaceAirports(airports []Airport) error {
	for _, a := range airports {
		if err := ValidateAirport(a); err != nil {
			return err
		}
	}
	if err := s.registry.Replace(airports); err != nil {
		return err
	}
	next := s.registry.Snapshot()
	s.store.Retain(func(iata string) bool {
		_, err := next.Lookup(iata)
		return err == nil
	})
	return nil
}
