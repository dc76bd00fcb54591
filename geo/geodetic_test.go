package geo

import (
	"math"
	"testing"

	"github.com/signalsfoundry/radar-geodesy/unit"
)

func TestNewGeodeticAppliesWrapPolicies(t *testing.T) {
	g := NewGeodetic(190, 100, -50)

	if got := g.Lon.Degrees(); math.Abs(got-(-170)) > 1e-9 {
		t.Errorf("lon = %v, want -170", got)
	}
	if got := g.Lat.Degrees(); math.Abs(got-80) > 1e-9 {
		t.Errorf("lat = %v, want 80", got)
	}
	if got := g.Alt.Meters(); got != -50 {
		t.Errorf("alt = %v, want -50", got)
	}
}

func TestHaversineDistance(t *testing.T) {
	r := unit.Meters(MeanRadiusM)

	// One degree of longitude along the equator is one degree of arc.
	a := NewGeodetic(0, 0, 0)
	b := NewGeodetic(1, 0, 0)
	want := MeanRadiusM * math.Pi / 180.0
	if got := a.HaversineDistance(b, r).Meters(); math.Abs(got-want) > 1e-6 {
		t.Errorf("1 deg equator = %v m, want %v", got, want)
	}

	// Altitudes are ignored.
	c := NewGeodetic(1, 0, 10000)
	if got := a.HaversineDistance(c, r).Meters(); math.Abs(got-want) > 1e-6 {
		t.Errorf("1 deg equator with altitude = %v m, want %v", got, want)
	}

	// Antipodal points are half a circumference apart.
	d := NewGeodetic(180, 0, 0)
	if got := a.HaversineDistance(d, r).Meters(); math.Abs(got-MeanRadiusM*math.Pi) > 1e-3 {
		t.Errorf("antipodal = %v m, want %v", got, MeanRadiusM*math.Pi)
	}

	if got := a.HaversineDistance(a, r).Meters(); got != 0 {
		t.Errorf("coincident = %v m, want 0", got)
	}
}

func TestSphericalAzimuth(t *testing.T) {
	origin := NewGeodetic(0, 0, 0)

	cases := []struct {
		name   string
		target Geodetic
		want   float64
	}{
		{"north", NewGeodetic(0, 1, 0), 0},
		{"east", NewGeodetic(1, 0, 0), 90},
		{"south", NewGeodetic(0, -1, 0), 180},
		{"west", NewGeodetic(-1, 0, 0), 270},
	}
	for _, c := range cases {
		if got := origin.SphericalAzimuth(c.target).Degrees(); math.Abs(got-c.want) > 1e-9 {
			t.Errorf("%s: azimuth = %v deg, want %v", c.name, got, c.want)
		}
	}
}

func TestElevationTo(t *testing.T) {
	base := NewGeodetic(0, 0, 0)

	// Directly above and below.
	above := NewGeodetic(0, 0, 1000)
	if got := base.ElevationTo(Sphere, above).Degrees(); math.Abs(got-90) > 1e-9 {
		t.Errorf("elevation to point above = %v, want 90", got)
	}
	if got := above.ElevationTo(Sphere, base).Degrees(); math.Abs(got-(-90)) > 1e-9 {
		t.Errorf("elevation to point below = %v, want -90", got)
	}

	// Altitude difference equal to the surface distance gives 45 degrees.
	other := NewGeodetic(0.1, 0, 0)
	dist := Sphere.SurfaceDistance(base, other)
	raised := other
	raised.Alt = dist
	if got := base.ElevationTo(Sphere, raised).Degrees(); math.Abs(got-45) > 1e-9 {
		t.Errorf("elevation at 45-degree geometry = %v, want 45", got)
	}
}

func TestAltitudeDifference(t *testing.T) {
	a := NewGeodetic(0, 0, 100)
	b := NewGeodetic(10, 10, 350)

	if got := a.AltitudeDifference(b).Meters(); math.Abs(got-250) > 1e-12 {
		t.Errorf("AltitudeDifference = %v, want 250", got)
	}
	if got := b.AltitudeDifference(a).Meters(); math.Abs(got-(-250)) > 1e-12 {
		t.Errorf("reverse AltitudeDifference = %v, want -250", got)
	}
}

func TestChord(t *testing.T) {
	// Two sphere-surface points 90 degrees apart: chord = r*sqrt(2).
	a := NewGeodetic(0, 0, 0)
	b := NewGeodetic(90, 0, 0)

	want := MeanRadiusM * math.Sqrt2
	if got := a.Chord(Sphere, b).Meters(); math.Abs(got-want) > 1e-3 {
		t.Errorf("chord = %v, want %v", got, want)
	}
}

func TestTransform_RadialDisplacement(t *testing.T) {
	// At (0, 0) the ECEF +X axis points straight up, so a +X displacement
	// changes only the altitude.
	g := NewGeodetic(0, 0, 0)
	moved := g.Transform(Sphere, CartesianMeters(1000, 0, 0))

	if got := moved.Alt.Meters(); math.Abs(got-1000) > 1e-6 {
		t.Errorf("alt after radial transform = %v, want 1000", got)
	}
	if got := moved.Lat.Radians(); math.Abs(got) > 1e-12 {
		t.Errorf("lat after radial transform = %v, want 0", got)
	}
	if got := moved.Lon.Radians(); math.Abs(got) > 1e-12 {
		t.Errorf("lon after radial transform = %v, want 0", got)
	}
}

func TestECEFDisplacementMatchesChord(t *testing.T) {
	a := NewGeodetic(-73.9866, 40.7536, 250)
	b := NewGeodetic(2.3522, 48.8566, 120)

	d := a.ECEFDisplacement(WGS84, b)
	if got, want := d.Magnitude().Meters(), a.Chord(WGS84, b).Meters(); math.Abs(got-want) > 1e-6 {
		t.Errorf("displacement magnitude = %v, chord = %v", got, want)
	}
}

func TestLatLonWithAltitude(t *testing.T) {
	ll := LatLon{Lat: unit.Latitude(40), Lon: unit.Longitude(-73)}
	g := ll.WithAltitude(unit.Meters(500))

	if !g.Lat.Close(ll.Lat, 1e-12) || !g.Lon.Close(ll.Lon, 1e-12) {
		t.Errorf("WithAltitude changed the coordinate: %v", g)
	}
	if got := g.Alt.Meters(); got != 500 {
		t.Errorf("alt = %v, want 500", got)
	}
}

func TestGeodeticValidity(t *testing.T) {
	if !NewGeodetic(10, 20, 30).IsValid() {
		t.Error("finite point reported invalid")
	}
	bad := Geodetic{
		Lon: unit.Longitude(0),
		Lat: unit.LatitudeRadians(math.NaN()),
		Alt: unit.Meters(0),
	}
	if bad.IsValid() {
		t.Error("NaN latitude reported valid")
	}
}
