package geo

import (
	"math"
	"testing"

	"github.com/signalsfoundry/radar-geodesy/unit"
)

func TestEllipsoidToGeocentric_KnownPoints(t *testing.T) {
	// Equator, prime meridian: straight out the +X axis.
	c := WGS84.ToGeocentric(NewGeodetic(0, 0, 0))
	if got := c.X.Meters(); math.Abs(got-SemiMajorAxisM) > 1e-6 {
		t.Errorf("X = %v, want %v", got, SemiMajorAxisM)
	}
	if math.Abs(c.Y.Meters()) > 1e-6 || math.Abs(c.Z.Meters()) > 1e-6 {
		t.Errorf("Y, Z = %v, %v, want 0, 0", c.Y.Meters(), c.Z.Meters())
	}

	// North pole: +Z at the semi-minor axis.
	pole := WGS84.ToGeocentric(NewGeodetic(0, 90, 0))
	if got := pole.Z.Meters(); math.Abs(got-semiMinorAxisM) > 1e-3 {
		t.Errorf("pole Z = %v, want %v", got, semiMinorAxisM)
	}
	if math.Abs(pole.X.Meters()) > 1e-3 || math.Abs(pole.Y.Meters()) > 1e-3 {
		t.Errorf("pole X, Y = %v, %v, want 0, 0", pole.X.Meters(), pole.Y.Meters())
	}

	// Altitude adds along the surface normal: at the equator, radially.
	high := WGS84.ToGeocentric(NewGeodetic(0, 0, 1000))
	if got := high.X.Meters(); math.Abs(got-(SemiMajorAxisM+1000)) > 1e-6 {
		t.Errorf("X at 1000 m = %v, want %v", got, SemiMajorAxisM+1000)
	}
}

func TestEllipsoidGeodeticRoundTrip(t *testing.T) {
	points := []Geodetic{
		NewGeodetic(0, 0, 0),
		NewGeodetic(-73.9866, 40.7536, 250),
		NewGeodetic(151.2093, -33.8688, 20),
		NewGeodetic(9.19, 45.4642, 120),
		NewGeodetic(-157.8583, 21.3069, 4205),
		NewGeodetic(0, 0, 35786000), // geostationary altitude
		NewGeodetic(12.5, 41.9, -100),
		NewGeodetic(37.6173, 55.7558, 11000),
	}
	for _, p := range points {
		back := WGS84.ToGeodetic(WGS84.ToGeocentric(p))
		if math.Abs(back.Lat.Degrees()-p.Lat.Degrees()) > 1e-6 {
			t.Errorf("%v: lat round trip = %v", p, back.Lat.Degrees())
		}
		if math.Abs(back.Lon.Degrees()-p.Lon.Degrees()) > 1e-6 {
			t.Errorf("%v: lon round trip = %v", p, back.Lon.Degrees())
		}
		if math.Abs(back.Alt.Meters()-p.Alt.Meters()) > 1e-3 {
			t.Errorf("%v: alt round trip = %v", p, back.Alt.Meters())
		}
	}
}

func TestEllipsoidToGeodetic_EarthCenterIsDegenerate(t *testing.T) {
	g := WGS84.ToGeodetic(GeocentricMeters(0, 0, 0))
	if g.IsValid() {
		t.Fatalf("Earth center should convert to an invalid point, got %v", g)
	}
	if !math.IsNaN(g.Lat.Radians()) {
		t.Errorf("lat = %v, want NaN", g.Lat.Radians())
	}
	if !math.IsNaN(g.Alt.Meters()) {
		t.Errorf("alt = %v, want NaN", g.Alt.Meters())
	}
}

func TestSphereGeodeticRoundTrip(t *testing.T) {
	points := []Geodetic{
		NewGeodetic(0, 0, 0),
		NewGeodetic(-73.9866, 40.7536, 250),
		NewGeodetic(151.2093, -33.8688, 11000),
	}
	for _, p := range points {
		back := Sphere.ToGeodetic(Sphere.ToGeocentric(p))
		if math.Abs(back.Lat.Degrees()-p.Lat.Degrees()) > 1e-9 {
			t.Errorf("%v: lat round trip = %v", p, back.Lat.Degrees())
		}
		if math.Abs(back.Lon.Degrees()-p.Lon.Degrees()) > 1e-9 {
			t.Errorf("%v: lon round trip = %v", p, back.Lon.Degrees())
		}
		if math.Abs(back.Alt.Meters()-p.Alt.Meters()) > 1e-6 {
			t.Errorf("%v: alt round trip = %v", p, back.Alt.Meters())
		}
	}
}

func TestSphereToGeodetic_EarthCenter(t *testing.T) {
	g := Sphere.ToGeodetic(GeocentricMeters(0, 0, 0))
	if got := g.Lat.Radians(); got != 0 {
		t.Errorf("lat = %v, want 0", got)
	}
	if got := g.Alt.Meters(); math.Abs(got-(-MeanRadiusM)) > 1e-6 {
		t.Errorf("alt = %v, want %v", got, -MeanRadiusM)
	}
}

func TestSurfaceDistance_EquatorArc(t *testing.T) {
	// The equator is a geodesic of the ellipsoid, so one degree of
	// longitude is exactly one degree of equatorial arc.
	a := NewGeodetic(0, 0, 0)
	b := NewGeodetic(1, 0, 0)

	want := SemiMajorAxisM * math.Pi / 180.0
	if got := WGS84.SurfaceDistance(a, b).Meters(); math.Abs(got-want) > 1e-3 {
		t.Errorf("equator arc = %v m, want %v", got, want)
	}
}

func TestSurfaceDistance_MeridianArc(t *testing.T) {
	a := NewGeodetic(0, 0, 0)
	b := NewGeodetic(0, 1, 0)

	// One degree of latitude from the equator, a touch under 110.6 km.
	got := WGS84.SurfaceDistance(a, b).Meters()
	if math.Abs(got-110574.4) > 1.0 {
		t.Errorf("meridian arc = %v m, want about 110574.4", got)
	}
}

func TestSurfaceDistance_Coincident(t *testing.T) {
	p := NewGeodetic(12.5, 41.9, 0)
	if got := WGS84.SurfaceDistance(p, p).Meters(); got != 0 {
		t.Errorf("coincident distance = %v, want 0", got)
	}
	if got := WGS84.InitialBearing(p, p).Radians(); got != 0 {
		t.Errorf("coincident bearing = %v, want 0", got)
	}
}

// Equatorial antipodes make the inverse iteration oscillate without
// converging, which must hand the distance to the fallback.
func TestSurfaceDistance_AntipodalFallback(t *testing.T) {
	a := NewGeodetic(0, 0, 0)
	b := NewGeodetic(180, 0, 0)

	called := false
	e := Ellipsoid{
		InverseFallback: func(a, b Geodetic) unit.Length {
			called = true
			return unit.Meters(42)
		},
	}
	if got := e.SurfaceDistance(a, b).Meters(); got != 42 {
		t.Errorf("custom fallback distance = %v, want 42", got)
	}
	if !called {
		t.Error("custom InverseFallback was not consulted")
	}

	// The zero value falls back to a haversine half-circumference.
	want := SemiMajorAxisM * math.Pi
	if got := WGS84.SurfaceDistance(a, b).Meters(); math.Abs(got-want) > 1e-3 {
		t.Errorf("default fallback distance = %v, want %v", got, want)
	}
}

func TestInitialBearing_Cardinal(t *testing.T) {
	origin := NewGeodetic(0, 0, 0)

	cases := []struct {
		name   string
		target Geodetic
		want   float64
	}{
		{"east", NewGeodetic(1, 0, 0), 90},
		{"north", NewGeodetic(0, 1, 0), 0},
		{"west", NewGeodetic(-1, 0, 0), 270},
		{"south", NewGeodetic(0, -1, 0), 180},
	}
	for _, c := range cases {
		if got := WGS84.InitialBearing(origin, c.target).Degrees(); math.Abs(got-c.want) > 1e-6 {
			t.Errorf("%s: bearing = %v deg, want %v", c.name, got, c.want)
		}
	}
}

func TestDestinationPoint_EquatorEast(t *testing.T) {
	start := NewGeodetic(0, 0, 0)
	dist := unit.Meters(SemiMajorAxisM * math.Pi / 180.0)

	got := WGS84.DestinationPoint(start, unit.Azimuth(90), dist)
	if math.Abs(got.Lon.Degrees()-1.0) > 1e-9 {
		t.Errorf("lon = %v, want 1.0", got.Lon.Degrees())
	}
	if math.Abs(got.Lat.Degrees()) > 1e-9 {
		t.Errorf("lat = %v, want 0", got.Lat.Degrees())
	}
}

// The direct problem fed with the inverse problem's outputs must land on
// the original destination.
func TestGeodesicInverseDirectRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		a, b Geodetic
	}{
		{"new york to paris", NewGeodetic(-73.9866, 40.7536, 0), NewGeodetic(2.3522, 48.8566, 0)},
		{"sydney to tokyo", NewGeodetic(151.2093, -33.8688, 0), NewGeodetic(139.6917, 35.6895, 0)},
		{"short hop", NewGeodetic(9.19, 45.4642, 0), NewGeodetic(9.2, 45.47, 0)},
		{"across the antimeridian", NewGeodetic(179.5, -16.5, 0), NewGeodetic(-179.5, -16.6, 0)},
	}
	for _, c := range cases {
		dist := WGS84.SurfaceDistance(c.a, c.b)
		bearing := WGS84.InitialBearing(c.a, c.b)
		dest := WGS84.DestinationPoint(c.a, bearing, dist)

		if math.Abs(dest.Lat.Degrees()-c.b.Lat.Degrees()) > 1e-6 {
			t.Errorf("%s: lat = %v, want %v", c.name, dest.Lat.Degrees(), c.b.Lat.Degrees())
		}
		if math.Abs(dest.Lon.Degrees()-c.b.Lon.Degrees()) > 1e-6 {
			t.Errorf("%s: lon = %v, want %v", c.name, dest.Lon.Degrees(), c.b.Lon.Degrees())
		}
	}
}

func TestSphereGeodesics(t *testing.T) {
	a := NewGeodetic(0, 0, 0)
	b := NewGeodetic(1, 0, 0)

	want := MeanRadiusM * math.Pi / 180.0
	if got := Sphere.SurfaceDistance(a, b).Meters(); math.Abs(got-want) > 1e-6 {
		t.Errorf("sphere 1 deg = %v m, want %v", got, want)
	}
	if got := Sphere.InitialBearing(a, b).Degrees(); math.Abs(got-90) > 1e-9 {
		t.Errorf("sphere bearing = %v, want 90", got)
	}

	dest := Sphere.DestinationPoint(a, unit.Azimuth(90), unit.Meters(want))
	if math.Abs(dest.Lon.Degrees()-1.0) > 1e-9 {
		t.Errorf("sphere destination lon = %v, want 1.0", dest.Lon.Degrees())
	}
}

func TestMeanSphereCustomRadius(t *testing.T) {
	s := MeanSphere{Radius: unit.Meters(1000)}

	if got := s.EarthRadius(unit.Latitude(45)).Meters(); got != 1000 {
		t.Errorf("EarthRadius = %v, want 1000", got)
	}
	c := s.ToGeocentric(NewGeodetic(0, 0, 0))
	if got := c.X.Meters(); math.Abs(got-1000) > 1e-9 {
		t.Errorf("X = %v, want 1000", got)
	}
}

func TestEarthRadius(t *testing.T) {
	// Equator: the semi-major axis. Poles: the semi-minor axis.
	if got := WGS84.EarthRadius(unit.Latitude(0)).Meters(); math.Abs(got-SemiMajorAxisM) > 1e-6 {
		t.Errorf("radius at equator = %v, want %v", got, SemiMajorAxisM)
	}
	if got := WGS84.EarthRadius(unit.Latitude(90)).Meters(); math.Abs(got-semiMinorAxisM) > 1e-3 {
		t.Errorf("radius at pole = %v, want %v", got, semiMinorAxisM)
	}

	mid := WGS84.EarthRadius(unit.Latitude(45)).Meters()
	if mid >= SemiMajorAxisM || mid <= semiMinorAxisM {
		t.Errorf("radius at 45 = %v, want between %v and %v", mid, semiMinorAxisM, SemiMajorAxisM)
	}

	if got := Sphere.EarthRadius(unit.Latitude(72)).Meters(); got != MeanRadiusM {
		t.Errorf("sphere radius = %v, want %v", got, MeanRadiusM)
	}
}

func TestEffectiveEarthRadius(t *testing.T) {
	k := 4.0 / 3.0
	r := WGS84.EarthRadius(unit.Latitude(40)).Meters()

	if got := WGS84.EffectiveEarthRadius(unit.Latitude(40), k).Meters(); math.Abs(got-r*k) > 1e-6 {
		t.Errorf("effective radius = %v, want %v", got, r*k)
	}
	if got := Sphere.EffectiveEarthRadius(unit.Latitude(0), k).Meters(); math.Abs(got-MeanRadiusM*k) > 1e-6 {
		t.Errorf("sphere effective radius = %v, want %v", got, MeanRadiusM*k)
	}
}
