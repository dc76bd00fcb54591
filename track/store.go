package track

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrUnknownTrack reports a lookup for an ICAO24 the store has never seen.
var ErrUnknownTrack = errors.New("unknown track")

// Store is an in-memory, thread-safe registry of tracks keyed by ICAO24.
type Store struct {
	mu     sync.RWMutex
	tracks map[string]*Track
}

// NewStore constructs an empty store.
func NewStore() *Store {
	return &Store{tracks: make(map[string]*Track)}
}

// Add records a point, creating the aircraft's track on first sight.
func (s *Store) Add(p Point) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.add(p)
}

func (s *Store) add(p Point) error {
	tr, ok := s.tracks[p.ICAO24]
	if !ok {
		tr = NewTrack(p.ICAO24)
		s.tracks[p.ICAO24] = tr
	}
	return tr.Append(p)
}

// Ingest merges parsed tracks into the store, preserving per-aircraft point
// order. It returns the number of points added.
func (s *Store) Ingest(tracks map[string]*Track) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	added := 0
	for _, tr := range tracks {
		for _, p := range tr.points {
			if err := s.add(p); err == nil {
				added++
			}
		}
	}
	return added
}

// Latest returns the most recent point for the aircraft.
func (s *Store) Latest(icao24 string) (Point, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tr, ok := s.tracks[icao24]
	if !ok {
		return Point{}, fmt.Errorf("%w: %q", ErrUnknownTrack, icao24)
	}
	p, ok := tr.Latest()
	if !ok {
		return Point{}, fmt.Errorf("%w: %q", ErrUnknownTrack, icao24)
	}
	return p, nil
}

// History returns a copy of the aircraft's points in order.
func (s *Store) History(icao24 string) ([]Point, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tr, ok := s.tracks[icao24]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTrack, icao24)
	}
	return tr.History(), nil
}

// ICAO24s returns the stored aircraft addresses in ascending order.
func (s *Store) ICAO24s() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, 0, len(s.tracks))
	for icao24 := range s.tracks {
		out = append(out, icao24)
	}
	sort.Strings(out)
	return out
}

// Size returns the number of tracked aircraft.
func (s *Store) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tracks)
}
