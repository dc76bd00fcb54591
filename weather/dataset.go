package weather

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/nilsmagnus/grib/griblib"

	"github.com/signalsfoundry/radar-geodesy/atmosphere"
	"github.com/signalsfoundry/radar-geodesy/geo"
	"github.com/signalsfoundry/radar-geodesy/unit"
)

var (
	// ErrOutsideGrid reports a sample point the dataset's grids do not cover.
	ErrOutsideGrid = errors.New("position outside weather grid")
	// ErrIncompleteDataset reports a GRIB file lacking a required field.
	ErrIncompleteDataset = errors.New("incomplete grib dataset")
	// ErrNoDataset reports a source that has not loaded a dataset yet.
	ErrNoDataset = errors.New("no weather dataset loaded")
)

type fieldKind int

const (
	fieldNone fieldKind = iota
	fieldTemperature
	fieldHumidity
	fieldPressure
)

func (k fieldKind) String() string {
	switch k {
	case fieldTemperature:
		return "temperature"
	case fieldHumidity:
		return "relative humidity"
	case fieldPressure:
		return "surface pressure"
	}
	return "unknown"
}

// classify picks the products a dataset keeps, by the GRIB2 meteorological
// tables under discipline 0: temperature (category 0 parameter 0) and
// relative humidity (category 1 parameter 1) at 2 m above ground (surface
// type 103), pressure (category 3 parameter 0) at ground level (type 1).
func classify(discipline, category, number, surfaceType, surfaceValue int) fieldKind {
	if discipline != 0 {
		return fieldNone
	}
	switch {
	case category == 0 && number == 0 && surfaceType == 103 && surfaceValue == 2:
		return fieldTemperature
	case category == 1 && number == 1 && surfaceType == 103 && surfaceValue == 2:
		return fieldHumidity
	case category == 3 && number == 0 && surfaceType == 1:
		return fieldPressure
	}
	return fieldNone
}

// Dataset is one decoded weather snapshot: 2 m temperature in kelvins, 2 m
// relative humidity in percent and surface pressure in pascals, each on a
// regular lat/lon grid.
type Dataset struct {
	At time.Time

	temperature *grid
	humidity    *grid
	pressure    *grid
}

// ReadDataset decodes GRIB2 messages from r and keeps the three surface
// fields. at stamps the dataset, typically with the file's production time.
func ReadDataset(r io.Reader, at time.Time) (*Dataset, error) {
	messages, err := griblib.ReadMessages(r)
	if err != nil {
		return nil, fmt.Errorf("read grib messages: %w", err)
	}

	ds := &Dataset{At: at}
	for _, message := range messages {
		product := message.Section4.ProductDefinitionTemplate
		kind := classify(
			int(message.Section0.Discipline),
			int(product.ParameterCategory),
			int(product.ParameterNumber),
			int(product.FirstSurface.Type),
			int(product.FirstSurface.Value),
		)
		if kind == fieldNone {
			continue
		}
		def, ok := message.Section3.Definition.(*griblib.Grid0)
		if !ok {
			continue
		}
		g, err := newGrid(def, message.Section7.Data)
		if err != nil {
			return nil, fmt.Errorf("decode %s grid: %w", kind, err)
		}
		switch kind {
		case fieldTemperature:
			ds.temperature = g
		case fieldHumidity:
			ds.humidity = g
		case fieldPressure:
			ds.pressure = g
		}
	}

	if missing := ds.missing(); len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing %s", ErrIncompleteDataset, strings.Join(missing, ", "))
	}
	return ds, nil
}

func (d *Dataset) missing() []string {
	var missing []string
	if d.temperature == nil {
		missing = append(missing, "temperature")
	}
	if d.humidity == nil {
		missing = append(missing, "relative humidity")
	}
	if d.pressure == nil {
		missing = append(missing, "surface pressure")
	}
	return missing
}

// ProfileAt interpolates the surface weather under pos and returns it as an
// atmosphere profile at the position's altitude. Forecast humidity can
// overshoot saturation, so it is clamped to [0, 100] percent.
func (d *Dataset) ProfileAt(pos geo.Geodetic) (atmosphere.Profile, error) {
	lat := pos.Lat.Degrees()
	lon := pos.Lon.Degrees()

	kelvins, err := d.temperature.at(lat, lon)
	if err != nil {
		return atmosphere.Profile{}, fmt.Errorf("sample temperature: %w", err)
	}
	humidity, err := d.humidity.at(lat, lon)
	if err != nil {
		return atmosphere.Profile{}, fmt.Errorf("sample relative humidity: %w", err)
	}
	pascals, err := d.pressure.at(lat, lon)
	if err != nil {
		return atmosphere.Profile{}, fmt.Errorf("sample surface pressure: %w", err)
	}

	return atmosphere.Profile{
		Altitude:         pos.Alt,
		Pressure:         unit.Pascals(pascals),
		Temperature:      unit.Kelvins(kelvins),
		RelativeHumidity: math.Min(math.Max(humidity, 0), 100),
	}, nil
}
