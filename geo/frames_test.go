package geo

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

// At latitude 0, longitude 0 the ECEF axes line up with the local frame:
// +X is up, +Y is east, +Z is north.
func TestToENU_AtPrimeMeridianEquator(t *testing.T) {
	origin := NewGeodetic(0, 0, 0)

	cases := []struct {
		name string
		ecef Cartesian
		want Displacement
	}{
		{"ecef x is up", CartesianMeters(100, 0, 0), DisplacementMeters(0, 0, 100)},
		{"ecef y is east", CartesianMeters(0, 100, 0), DisplacementMeters(100, 0, 0)},
		{"ecef z is north", CartesianMeters(0, 0, 100), DisplacementMeters(0, 100, 0)},
	}
	for _, c := range cases {
		got := origin.ToENU(c.ecef)
		if !got.Vec().Equal(c.want.Vec(), 1e-9) {
			t.Errorf("%s: ToENU = %v, want %v", c.name, got, c.want)
		}
	}
}

// At the north pole, east follows +Y along the chosen meridian and up is +Z.
func TestToENU_AtNorthPole(t *testing.T) {
	pole := NewGeodetic(0, 90, 0)

	up := pole.ToENU(CartesianMeters(0, 0, 100))
	if math.Abs(up.Up.Meters()-100) > 1e-9 {
		t.Errorf("ECEF +Z at pole: up = %v, want 100", up.Up.Meters())
	}

	east := pole.ToENU(CartesianMeters(0, 100, 0))
	if math.Abs(east.East.Meters()-100) > 1e-9 {
		t.Errorf("ECEF +Y at pole: east = %v, want 100", east.East.Meters())
	}
}

func TestENURoundTrip(t *testing.T) {
	points := []Geodetic{
		NewGeodetic(0, 0, 0),
		NewGeodetic(-73.9866, 40.7536, 250),
		NewGeodetic(151.21, -33.85, 20),
		NewGeodetic(9.19, 45.46, 120),
	}
	vec := CartesianMeters(1234.5, -678.9, 4321.0)

	for _, p := range points {
		back := p.FromENU(p.ToENU(vec))
		if !back.Equal(vec, 1e-6) {
			t.Errorf("at %v: FromENU(ToENU(v)) = %v, want %v", p, back, vec)
		}
	}
}

func TestENUDisplacement_EastwardTarget(t *testing.T) {
	radar := NewGeodetic(0, 0, 0)
	target := NewGeodetic(1, 0, 0)

	d := radar.ENUDisplacement(WGS84, target)

	oneDeg := math.Pi / 180.0
	wantEast := SemiMajorAxisM * math.Sin(oneDeg)
	wantUp := SemiMajorAxisM * (math.Cos(oneDeg) - 1.0)

	if got := d.East.Meters(); math.Abs(got-wantEast) > 1e-3 {
		t.Errorf("east = %v, want %v", got, wantEast)
	}
	if got := d.North.Meters(); math.Abs(got) > 1e-6 {
		t.Errorf("north = %v, want 0", got)
	}
	if got := d.Up.Meters(); math.Abs(got-wantUp) > 1e-3 {
		t.Errorf("up = %v, want %v (curvature drop)", got, wantUp)
	}
}

// The dip of a surface target below the local horizontal is half the
// central angle between the points.
func TestLocalSpherical_CurvatureDip(t *testing.T) {
	radar := NewGeodetic(0, 0, 0)
	target := NewGeodetic(1, 0, 0)

	s := radar.LocalSpherical(WGS84, target)
	if got := s.Elevation.Degrees(); math.Abs(got-(-0.5)) > 0.01 {
		t.Errorf("elevation = %v deg, want about -0.5", got)
	}
	if got := s.Range.Meters(); math.Abs(got-radar.Chord(WGS84, target).Meters()) > 1e-6 {
		t.Errorf("range = %v, want chord distance", got)
	}
}

// The ENU rotation must be orthonormal: applying it to the ECEF basis
// vectors yields a matrix R with R*Rᵀ = I.
func TestENURotationIsOrthonormal(t *testing.T) {
	origins := []Geodetic{
		NewGeodetic(0, 0, 0),
		NewGeodetic(-73.9866, 40.7536, 250),
		NewGeodetic(151.21, -33.85, 20),
		NewGeodetic(0, 89.9, 0),
	}
	basis := []Cartesian{
		CartesianMeters(1, 0, 0),
		CartesianMeters(0, 1, 0),
		CartesianMeters(0, 0, 1),
	}
	for _, origin := range origins {
		var rows []float64
		for _, b := range basis {
			d := origin.ToENU(b)
			rows = append(rows, d.East.Meters(), d.North.Meters(), d.Up.Meters())
		}
		r := mat.NewDense(3, 3, rows)

		var prod mat.Dense
		prod.Mul(r, r.T())
		eye := mat.NewDiagDense(3, []float64{1, 1, 1})
		if !mat.EqualApprox(&prod, eye, 1e-12) {
			t.Errorf("at %v: R*Rt != I:\n%v", origin, mat.Formatted(&prod))
		}
	}
}

func TestDisplacementAlgebra(t *testing.T) {
	a := DisplacementMeters(3, 4, 0)
	b := DisplacementMeters(1, 1, 1)

	sum := a.Add(b)
	if !sum.Vec().Equal(CartesianMeters(4, 5, 1), 1e-12) {
		t.Errorf("Add = %v", sum)
	}
	if got := a.Scale(2).Magnitude().Meters(); math.Abs(got-10) > 1e-12 {
		t.Errorf("Scale(2).Magnitude = %v, want 10", got)
	}
	if !a.IsValid() {
		t.Error("finite displacement reported invalid")
	}
}

func TestGeocentricAlgebra(t *testing.T) {
	a := GeocentricMeters(SemiMajorAxisM, 0, 0)
	b := GeocentricMeters(0, SemiMajorAxisM, 0)

	wantChord := SemiMajorAxisM * math.Sqrt2
	if got := a.DistanceTo(b).Meters(); math.Abs(got-wantChord) > 1e-3 {
		t.Errorf("DistanceTo = %v, want %v", got, wantChord)
	}

	moved := a.Add(CartesianMeters(0, 0, 1000))
	if got := moved.Z.Meters(); math.Abs(got-1000) > 1e-12 {
		t.Errorf("Add Z = %v, want 1000", got)
	}
	diff := moved.Sub(a)
	if !diff.Equal(CartesianMeters(0, 0, 1000), 1e-12) {
		t.Errorf("Sub = %v", diff)
	}

	if got := a.Magnitude().Meters(); math.Abs(got-SemiMajorAxisM) > 1e-6 {
		t.Errorf("Magnitude = %v, want %v", got, SemiMajorAxisM)
	}
}
