package weather

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/signalsfoundry/radar-geodesy/atmosphere"
	"github.com/signalsfoundry/radar-geodesy/geo"
)

// Source serves profiles from the most recent good dataset read from a
// GRIB2 file. Refresh can run on a schedule; a failed refresh keeps the
// previous dataset.
type Source struct {
	path string

	mu      sync.RWMutex
	dataset *Dataset
}

// NewSource watches a GRIB2 file. Nothing is loaded until Refresh runs.
func NewSource(path string) *Source {
	return &Source{path: path}
}

// Refresh re-reads the file and swaps the dataset in on success.
func (s *Source) Refresh() error {
	f, err := os.Open(s.path)
	if err != nil {
		return fmt.Errorf("open weather file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat weather file: %w", err)
	}
	ds, err := ReadDataset(f, info.ModTime())
	if err != nil {
		return fmt.Errorf("load %q: %w", s.path, err)
	}

	s.mu.Lock()
	s.dataset = ds
	s.mu.Unlock()
	return nil
}

// Current returns the cached dataset, if any.
func (s *Source) Current() (*Dataset, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dataset, s.dataset != nil
}

// ProfileAt samples the cached dataset under pos.
func (s *Source) ProfileAt(pos geo.Geodetic) (atmosphere.Profile, error) {
	ds, ok := s.Current()
	if !ok {
		return atmosphere.Profile{}, ErrNoDataset
	}
	return ds.ProfileAt(pos)
}

// Age reports how old the cached dataset is.
func (s *Source) Age(now time.Time) (time.Duration, bool) {
	ds, ok := s.Current()
	if !ok {
		return 0, false
	}
	return now.Sub(ds.At), true
}
