package geo

import (
	"fmt"
	"math"

	"github.com/signalsfoundry/radar-geodesy/unit"
)

// Geodetic is a point given by longitude, latitude, and altitude above the
// reference surface. Longitude is cyclic in [-180, 180) degrees, latitude
// bounces in [-90, 90]. Altitude may be negative.
type Geodetic struct {
	Lon unit.Angle
	Lat unit.Angle
	Alt unit.Length
}

// NewGeodetic builds a point from longitude and latitude in degrees and
// altitude in meters, applying the conventional wrap policies.
func NewGeodetic(lonDeg, latDeg, altM float64) Geodetic {
	return Geodetic{
		Lon: unit.Longitude(lonDeg),
		Lat: unit.Latitude(latDeg),
		Alt: unit.Meters(altM),
	}
}

// IsValid reports whether all components are finite. Model conversions yield
// NaN latitude and altitude for degenerate input, which this detects.
func (g Geodetic) IsValid() bool {
	return g.Lon.IsValid() && g.Lat.IsValid() && g.Alt.IsValid()
}

// Chord returns the straight-line (through-the-Earth) distance to another
// point, computed in the ECEF frame of the given model.
func (g Geodetic) Chord(m Model, other Geodetic) unit.Length {
	return m.ToGeocentric(g).DistanceTo(m.ToGeocentric(other))
}

// ECEFDisplacement returns the ECEF-frame displacement vector from g to
// other.
func (g Geodetic) ECEFDisplacement(m Model, other Geodetic) Cartesian {
	return m.ToGeocentric(other).Sub(m.ToGeocentric(g))
}

// ENUDisplacement returns the displacement from g to other expressed in g's
// local East-North-Up frame.
func (g Geodetic) ENUDisplacement(m Model, other Geodetic) Displacement {
	return g.ToENU(g.ECEFDisplacement(m, other))
}

// LocalSpherical returns the ENU displacement from g to other read as a
// spherical coordinate. See Displacement.ToSpherical for the azimuth
// convention.
func (g Geodetic) LocalSpherical(m Model, other Geodetic) Spherical {
	return g.ENUDisplacement(m, other).ToSpherical()
}

// Transform displaces the point by an ECEF vector and converts back.
func (g Geodetic) Transform(m Model, d Cartesian) Geodetic {
	return m.ToGeodetic(m.ToGeocentric(g).Add(d))
}

// HaversineDistance returns the great-circle distance to another point over
// a sphere of the given radius, ignoring both altitudes.
func (g Geodetic) HaversineDistance(other Geodetic, radius unit.Length) unit.Length {
	lat1 := g.Lat.Radians()
	lat2 := other.Lat.Radians()
	dLat := lat2 - lat1
	dLon := other.Lon.Radians() - g.Lon.Radians()

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return unit.Meters(radius.Meters() * c)
}

// SphericalAzimuth returns the initial great-circle bearing to another point
// over a sphere, as a compass azimuth.
func (g Geodetic) SphericalAzimuth(other Geodetic) unit.Angle {
	lat1 := g.Lat.Radians()
	lat2 := other.Lat.Radians()
	dLon := other.Lon.Radians() - g.Lon.Radians()

	y := math.Sin(dLon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLon)

	return unit.AzimuthRadians(math.Atan2(y, x))
}

// ElevationTo returns the angle above g's local horizontal to another point,
// from the model's surface distance and the altitude difference. When the
// surface distance is under 1e-9 m the result is +-90 degrees by the sign of
// the altitude difference.
func (g Geodetic) ElevationTo(m Model, other Geodetic) unit.Angle {
	horizontal := m.SurfaceDistance(g, other)
	altDiff := g.AltitudeDifference(other)
	if horizontal.Meters() < 1e-9 {
		if altDiff.Meters() >= 0 {
			return unit.Elevation(90.0)
		}
		return unit.Elevation(-90.0)
	}
	return unit.ElevationRadians(math.Atan2(altDiff.Meters(), horizontal.Meters()))
}

// AltitudeDifference returns other's altitude minus g's.
func (g Geodetic) AltitudeDifference(other Geodetic) unit.Length {
	return other.Alt.Sub(g.Alt)
}

func (g Geodetic) String() string {
	return fmt.Sprintf("%s %s %s", g.Lat.DMS(), g.Lon.DMS(), g.Alt)
}

// LatLon is a bare coordinate pair, the return shape of the direct geodesic
// problem. Altitude is deliberately absent: the direct problem does not
// determine it.
type LatLon struct {
	Lat unit.Angle
	Lon unit.Angle
}

// WithAltitude lifts the pair to a full geodetic point.
func (ll LatLon) WithAltitude(alt unit.Length) Geodetic {
	return Geodetic{Lon: ll.Lon, Lat: ll.Lat, Alt: alt}
}
