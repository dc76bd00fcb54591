package weather

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/signalsfoundry/radar-geodesy/geo"
)

func TestSourceEmpty(t *testing.T) {
	s := NewSource(filepath.Join(t.TempDir(), "absent.grb2"))

	if _, ok := s.Current(); ok {
		t.Fatal("Current reported a dataset before any refresh")
	}
	if _, err := s.ProfileAt(geo.NewGeodetic(8.5, 50.5, 0)); !errors.Is(err, ErrNoDataset) {
		t.Fatalf("ProfileAt error = %v, want ErrNoDataset", err)
	}
	if _, ok := s.Age(time.Now()); ok {
		t.Fatal("Age reported a dataset before any refresh")
	}
	if err := s.Refresh(); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Refresh error = %v, want wrapped os.ErrNotExist", err)
	}
}

func TestSourceKeepsLastGoodDataset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bogus.grb2")
	if err := os.WriteFile(path, []byte("not a grib file, just filler bytes"), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	at := time.Date(2024, time.March, 10, 6, 0, 0, 0, time.UTC)
	s := NewSource(path)
	s.dataset = &Dataset{
		At:          at,
		temperature: flatGrid(288.15),
		humidity:    flatGrid(55),
		pressure:    flatGrid(101300),
	}

	if err := s.Refresh(); err == nil {
		t.Fatal("Refresh accepted a file that is not GRIB2")
	}

	ds, ok := s.Current()
	if !ok || !ds.At.Equal(at) {
		t.Fatalf("Current = %+v, %v; want the previous dataset", ds, ok)
	}
	p, err := s.ProfileAt(geo.NewGeodetic(8.5, 50.5, 30))
	if err != nil {
		t.Fatalf("ProfileAt error: %v", err)
	}
	if p.RelativeHumidity != 55 {
		t.Errorf("RelativeHumidity = %v, want 55", p.RelativeHumidity)
	}
	if age, ok := s.Age(at.Add(45 * time.Minute)); !ok || age != 45*time.Minute {
		t.Errorf("Age = %v, %v; want 45m, true", age, ok)
	}
}
