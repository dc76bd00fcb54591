package geo

import (
	"github.com/signalsfoundry/radar-geodesy/unit"
)

// Geocentric is a position in the Earth-Centered, Earth-Fixed frame. X points
// at the intersection of the prime meridian and the equator, Y at 90 degrees
// east on the equator, Z at the north pole. The origin is the Earth's center.
type Geocentric struct {
	X, Y, Z unit.Length
}

// GeocentricMeters builds an ECEF position from components in meters.
func GeocentricMeters(x, y, z float64) Geocentric {
	return Geocentric{X: unit.Meters(x), Y: unit.Meters(y), Z: unit.Meters(z)}
}

// Vec returns the position as a frame-free vector for algebra.
func (g Geocentric) Vec() Cartesian { return Cartesian(g) }

// Add displaces the position by an ECEF offset.
func (g Geocentric) Add(d Cartesian) Geocentric {
	return Geocentric(g.Vec().Add(d))
}

// Sub returns the ECEF displacement from o to g.
func (g Geocentric) Sub(o Geocentric) Cartesian {
	return g.Vec().Sub(o.Vec())
}

// Magnitude returns the distance from the Earth's center.
func (g Geocentric) Magnitude() unit.Length { return g.Vec().Magnitude() }

// DistanceTo returns the straight-line distance to another ECEF position.
func (g Geocentric) DistanceTo(o Geocentric) unit.Length {
	return g.Vec().DistanceTo(o.Vec())
}

// ToSpherical reads the position as azimuth/elevation/range about the
// Earth's center.
func (g Geocentric) ToSpherical() Spherical { return g.Vec().ToSpherical() }

// IsValid reports whether all components are finite.
func (g Geocentric) IsValid() bool { return g.Vec().IsValid() }

// Displacement is an offset in a local East-North-Up tangent plane.
type Displacement struct {
	East, North, Up unit.Length
}

// DisplacementMeters builds an ENU offset from components in meters.
func DisplacementMeters(east, north, up float64) Displacement {
	return Displacement{East: unit.Meters(east), North: unit.Meters(north), Up: unit.Meters(up)}
}

// Vec returns the offset as a frame-free vector with X=east, Y=north, Z=up.
func (d Displacement) Vec() Cartesian {
	return Cartesian{X: d.East, Y: d.North, Z: d.Up}
}

// Add returns d+o componentwise.
func (d Displacement) Add(o Displacement) Displacement {
	return Displacement{East: d.East.Add(o.East), North: d.North.Add(o.North), Up: d.Up.Add(o.Up)}
}

// Scale multiplies every component by f.
func (d Displacement) Scale(f float64) Displacement {
	return Displacement{East: d.East.Scale(f), North: d.North.Scale(f), Up: d.Up.Scale(f)}
}

// Magnitude returns the Euclidean norm of the offset.
func (d Displacement) Magnitude() unit.Length { return d.Vec().Magnitude() }

// ToSpherical reads the offset as azimuth/elevation/range. The azimuth
// follows the vector convention, measured counterclockwise from east in the
// tangent plane; compass bearings come from a Model's InitialBearing or from
// unit.AzimuthFromAtan2.
func (d Displacement) ToSpherical() Spherical { return d.Vec().ToSpherical() }

// IsValid reports whether all components are finite.
func (d Displacement) IsValid() bool { return d.Vec().IsValid() }

// ToENU rotates an ECEF displacement into the East-North-Up frame whose
// origin is this geodetic point.
func (g Geodetic) ToENU(ecef Cartesian) Displacement {
	sinLon, cosLon := g.Lon.Sin(), g.Lon.Cos()
	sinLat, cosLat := g.Lat.Sin(), g.Lat.Cos()

	dx := ecef.X.Meters()
	dy := ecef.Y.Meters()
	dz := ecef.Z.Meters()

	east := -sinLon*dx + cosLon*dy
	north := -sinLat*cosLon*dx - sinLat*sinLon*dy + cosLat*dz
	up := cosLat*cosLon*dx + cosLat*sinLon*dy + sinLat*dz

	return DisplacementMeters(east, north, up)
}

// FromENU rotates an East-North-Up offset at this geodetic point back into
// an ECEF displacement. It is the transpose of ToENU.
func (g Geodetic) FromENU(enu Displacement) Cartesian {
	sinLon, cosLon := g.Lon.Sin(), g.Lon.Cos()
	sinLat, cosLat := g.Lat.Sin(), g.Lat.Cos()

	east := enu.East.Meters()
	north := enu.North.Meters()
	up := enu.Up.Meters()

	x := -sinLon*east - sinLat*cosLon*north + cosLat*cosLon*up
	y := cosLon*east - sinLat*sinLon*north + cosLat*sinLon*up
	z := cosLat*north + sinLat*up

	return CartesianMeters(x, y, z)
}
