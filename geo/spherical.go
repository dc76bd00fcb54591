package geo

import (
	"fmt"
	"math"

	"github.com/signalsfoundry/radar-geodesy/unit"
)

// Spherical is an azimuth/elevation/range triple. Azimuth is cyclic in
// [0, 360) degrees, elevation bounces in [-90, 90].
type Spherical struct {
	Azimuth   unit.Angle
	Elevation unit.Angle
	Range     unit.Length
}

// NewSpherical builds a Spherical from azimuth and elevation in degrees and
// range in meters, applying the conventional wrap policies.
func NewSpherical(azDeg, elDeg, rangeM float64) Spherical {
	return Spherical{
		Azimuth:   unit.Azimuth(azDeg),
		Elevation: unit.Elevation(elDeg),
		Range:     unit.Meters(rangeM),
	}
}

// ToCartesian converts to a vector using the instance's own range:
// x = r cos(el) cos(az), y = r cos(el) sin(az), z = r sin(el).
func (s Spherical) ToCartesian() Cartesian {
	az := s.Azimuth.Radians()
	el := s.Elevation.Radians()
	r := s.Range.Meters()
	return Cartesian{
		X: s.Range.WithBase(r * math.Cos(el) * math.Cos(az)),
		Y: s.Range.WithBase(r * math.Cos(el) * math.Sin(az)),
		Z: s.Range.WithBase(r * math.Sin(el)),
	}
}

func (s Spherical) String() string {
	return fmt.Sprintf("Az: %s, El: %s, R: %s", s.Azimuth, s.Elevation, s.Range)
}

// Observation is a sensor-native detection: azimuth, slant range, and the
// target's altitude. Altitude is the vertical datum here, never to be read
// as an elevation angle.
type Observation struct {
	Azimuth  unit.Angle
	Range    unit.Length
	Altitude unit.Length
}

// NewObservation builds an Observation from azimuth in degrees and range and
// altitude in meters.
func NewObservation(azDeg, rangeM, altM float64) Observation {
	return Observation{
		Azimuth:  unit.Azimuth(azDeg),
		Range:    unit.Meters(rangeM),
		Altitude: unit.Meters(altM),
	}
}

func (o Observation) String() string {
	return fmt.Sprintf("Az: %s, R: %s, Alt: %s", o.Azimuth, o.Range, o.Altitude)
}

// RadialSpherical reads a geodetic point as a spherical coordinate about the
// Earth's center: longitude as azimuth, latitude as elevation, and the given
// radial reference plus altitude as range. The caller chooses the reference,
// for example unit.Meters(SemiMajorAxisM) for the ellipsoid or the mean
// sphere's radius.
func RadialSpherical(g Geodetic, radius unit.Length) Spherical {
	return Spherical{
		Azimuth:   g.Lon,
		Elevation: g.Lat,
		Range:     radius.Add(g.Alt),
	}
}
