package geo

import (
	"math"

	"github.com/signalsfoundry/radar-geodesy/unit"
)

// WGS84 ellipsoid parameters and the derived mean Earth radius.
const (
	// SemiMajorAxisM is the WGS84 equatorial radius in meters.
	SemiMajorAxisM = 6378137.0
	// Flattening is the WGS84 flattening.
	Flattening = 1.0 / 298.257223563
	// MeanRadiusM is the mean Earth radius in meters, (2a+b)/3 for WGS84.
	MeanRadiusM = 6371008.8

	semiMinorAxisM = SemiMajorAxisM * (1.0 - Flattening)
	eccSq          = (SemiMajorAxisM*SemiMajorAxisM - semiMinorAxisM*semiMinorAxisM) /
		(SemiMajorAxisM * SemiMajorAxisM)
)

// Model converts between geodetic and geocentric coordinates and solves the
// two geodesic problems on one figure of the Earth. Implementations are
// immutable values, safe for concurrent use. Callers pass the model
// explicitly; there is no package-level default.
type Model interface {
	// ToGeocentric converts a geodetic point to ECEF.
	ToGeocentric(g Geodetic) Geocentric
	// ToGeodetic converts an ECEF point to geodetic coordinates. The result
	// may carry NaN components for degenerate input such as the Earth's
	// center; check Geodetic.IsValid when the input is untrusted.
	ToGeodetic(c Geocentric) Geodetic
	// SurfaceDistance returns the geodesic distance between two points along
	// the model surface, ignoring altitudes.
	SurfaceDistance(a, b Geodetic) unit.Length
	// InitialBearing returns the compass bearing at a of the geodesic toward
	// b. Coincident points yield bearing 0.
	InitialBearing(a, b Geodetic) unit.Angle
	// DestinationPoint solves the direct problem: the point reached from
	// start along the given initial bearing after the given surface distance.
	DestinationPoint(start Geodetic, bearing unit.Angle, distance unit.Length) LatLon
	// EarthRadius returns the geocentric radius of the model surface at the
	// given latitude.
	EarthRadius(lat unit.Angle) unit.Length
	// EffectiveEarthRadius returns EarthRadius scaled by the refraction
	// factor k.
	EffectiveEarthRadius(lat unit.Angle, k float64) unit.Length
}

// WGS84 is the standard ellipsoidal model with default geodesic fallbacks.
var WGS84 Model = Ellipsoid{}

// Sphere is the mean-radius spherical model.
var Sphere Model = MeanSphere{}

// Ellipsoid is the WGS84 Earth model. Geodesic distances and destinations use
// Vincenty's formulae; the zero value falls back to spherical approximations
// on the rare non-converging (nearly antipodal) inputs. Set the fallback
// fields to override that behavior, e.g. to propagate an error or retry with
// a different method.
type Ellipsoid struct {
	// InverseFallback is consulted when Vincenty's inverse formula does not
	// converge. Nil means haversine distance over a sphere of the semi-major
	// axis.
	InverseFallback func(a, b Geodetic) unit.Length
	// DirectFallback is consulted when Vincenty's direct formula does not
	// converge. Nil means the spherical closed form over the mean radius.
	DirectFallback func(start Geodetic, bearing unit.Angle, distance unit.Length) LatLon
}

func (e Ellipsoid) ToGeocentric(g Geodetic) Geocentric {
	lat := g.Lat.Radians()
	lon := g.Lon.Radians()
	alt := g.Alt.Meters()

	sinLat := math.Sin(lat)
	cosLat := math.Cos(lat)
	n := SemiMajorAxisM / math.Sqrt(1.0-eccSq*sinLat*sinLat)

	return GeocentricMeters(
		(n+alt)*cosLat*math.Cos(lon),
		(n+alt)*cosLat*math.Sin(lon),
		(n*(1.0-eccSq)+alt)*sinLat,
	)
}

// ToGeodetic converts ECEF to geodetic by Bowring-style fixed-point
// iteration on the latitude. Five iterations reach sub-millimeter agreement
// with ToGeocentric for terrestrial points. Points on the Earth's axis with
// near-zero horizontal distance divide out to NaN latitude and altitude.
func (e Ellipsoid) ToGeodetic(c Geocentric) Geodetic {
	x := c.X.Meters()
	y := c.Y.Meters()
	z := c.Z.Meters()

	lon := math.Atan2(y, x)
	p := math.Hypot(x, y)
	lat := math.Atan2(z, p*(1.0-eccSq))

	var n, alt float64
	for i := 0; i < 5; i++ {
		sinLat := math.Sin(lat)
		n = SemiMajorAxisM / math.Sqrt(1.0-eccSq*sinLat*sinLat)
		alt = p/math.Cos(lat) - n
		lat = math.Atan2(z, p*(1.0-eccSq*n/(n+alt)))
	}
	sinLat := math.Sin(lat)
	n = SemiMajorAxisM / math.Sqrt(1.0-eccSq*sinLat*sinLat)
	alt = p/math.Cos(lat) - n

	return Geodetic{
		Lon: unit.LongitudeRadians(lon),
		Lat: unit.LatitudeRadians(lat),
		Alt: unit.Meters(alt),
	}
}

func (e Ellipsoid) SurfaceDistance(a, b Geodetic) unit.Length {
	if d, ok := vincentyInverse(a, b); ok {
		return unit.Meters(d)
	}
	if e.InverseFallback != nil {
		return e.InverseFallback(a, b)
	}
	return a.HaversineDistance(b, unit.Meters(SemiMajorAxisM))
}

func (e Ellipsoid) InitialBearing(a, b Geodetic) unit.Angle {
	return unit.AzimuthRadians(vincentyBearing(a, b))
}

func (e Ellipsoid) DestinationPoint(start Geodetic, bearing unit.Angle, distance unit.Length) LatLon {
	if lat, lon, ok := vincentyDirect(start, bearing.Radians(), distance.Meters()); ok {
		return LatLon{Lat: unit.LatitudeRadians(lat), Lon: unit.LongitudeRadians(lon)}
	}
	if e.DirectFallback != nil {
		return e.DirectFallback(start, bearing, distance)
	}
	return sphericalDestination(start, bearing.Radians(), distance.Meters(), MeanRadiusM)
}

// EarthRadius returns the geocentric radius of the ellipsoid at the given
// latitude, between the polar and equatorial radii.
func (e Ellipsoid) EarthRadius(lat unit.Angle) unit.Length {
	cosLat := math.Cos(lat.Radians())
	sinLat := math.Sin(lat.Radians())

	a2c := SemiMajorAxisM * SemiMajorAxisM * cosLat
	b2s := semiMinorAxisM * semiMinorAxisM * sinLat
	ac := SemiMajorAxisM * cosLat
	bs := semiMinorAxisM * sinLat

	den := ac*ac + bs*bs
	if den < 1e-10 {
		return unit.Meters(semiMinorAxisM)
	}
	return unit.Meters(math.Sqrt((a2c*a2c + b2s*b2s) / den))
}

func (e Ellipsoid) EffectiveEarthRadius(lat unit.Angle, k float64) unit.Length {
	return e.EarthRadius(lat).Scale(k)
}

// MeanSphere models the Earth as a sphere. The zero value uses the mean
// Earth radius; set Radius for another sphere.
type MeanSphere struct {
	Radius unit.Length
}

func (s MeanSphere) radiusM() float64 {
	if r := s.Radius.Meters(); r > 0 {
		return r
	}
	return MeanRadiusM
}

func (s MeanSphere) ToGeocentric(g Geodetic) Geocentric {
	lat := g.Lat.Radians()
	lon := g.Lon.Radians()
	r := s.radiusM() + g.Alt.Meters()

	return GeocentricMeters(
		r*math.Cos(lat)*math.Cos(lon),
		r*math.Cos(lat)*math.Sin(lon),
		r*math.Sin(lat),
	)
}

// ToGeodetic converts ECEF to spherical geodetic coordinates in closed form.
// The Earth's center maps to latitude and longitude zero at depth -radius.
func (s MeanSphere) ToGeodetic(c Geocentric) Geodetic {
	x := c.X.Meters()
	y := c.Y.Meters()
	z := c.Z.Meters()

	mag := math.Sqrt(x*x + y*y + z*z)
	if mag < 1e-9 {
		return Geodetic{
			Lon: unit.Longitude(0),
			Lat: unit.Latitude(0),
			Alt: unit.Meters(-s.radiusM()),
		}
	}
	return Geodetic{
		Lon: unit.LongitudeRadians(math.Atan2(y, x)),
		Lat: unit.LatitudeRadians(math.Asin(z / mag)),
		Alt: unit.Meters(mag - s.radiusM()),
	}
}

func (s MeanSphere) SurfaceDistance(a, b Geodetic) unit.Length {
	return a.HaversineDistance(b, unit.Meters(s.radiusM()))
}

func (s MeanSphere) InitialBearing(a, b Geodetic) unit.Angle {
	return a.SphericalAzimuth(b)
}

func (s MeanSphere) DestinationPoint(start Geodetic, bearing unit.Angle, distance unit.Length) LatLon {
	return sphericalDestination(start, bearing.Radians(), distance.Meters(), s.radiusM())
}

// EarthRadius returns the sphere radius; the latitude does not matter.
func (s MeanSphere) EarthRadius(lat unit.Angle) unit.Length {
	return unit.Meters(s.radiusM())
}

func (s MeanSphere) EffectiveEarthRadius(lat unit.Angle, k float64) unit.Length {
	return unit.Meters(s.radiusM() * k)
}
