package unit

import (
	"math"
	"testing"
)

func TestAngleConversions(t *testing.T) {
	cases := []struct {
		name string
		a    Angle
		rad  float64
	}{
		{"degrees", Degrees(180), math.Pi},
		{"radians", Radians(1.5), 1.5},
		{"gradians", NewAngle(200, UnitGradian), math.Pi},
		{"arc minutes", NewAngle(60, UnitArcMinute), math.Pi / 180},
		{"arc seconds", NewAngle(3600, UnitArcSecond), math.Pi / 180},
	}
	for _, c := range cases {
		if got := c.a.Radians(); math.Abs(got-c.rad) > 1e-12 {
			t.Errorf("%s: Radians() = %v, want %v", c.name, got, c.rad)
		}
	}

	if got := Radians(math.Pi).Degrees(); math.Abs(got-180) > 1e-12 {
		t.Errorf("Radians(pi).Degrees() = %v, want 180", got)
	}
	if got := Degrees(90).In(UnitGradian); math.Abs(got-100) > 1e-12 {
		t.Errorf("Degrees(90).In(gradian) = %v, want 100", got)
	}
}

// Arithmetic results keep the receiver's unit, whatever the operand's unit.
func TestAngleArithmeticKeepsReceiverUnit(t *testing.T) {
	sum := Degrees(90).Add(Radians(math.Pi / 2))
	if sum.Unit() != UnitDegree {
		t.Fatalf("Add result unit = %v, want degree", sum.Unit())
	}
	if math.Abs(sum.Value()-180) > 1e-12 {
		t.Errorf("Degrees(90) + pi/2 rad = %v deg, want 180", sum.Value())
	}

	diff := Radians(math.Pi).Sub(Degrees(90))
	if diff.Unit() != UnitRadian {
		t.Fatalf("Sub result unit = %v, want radian", diff.Unit())
	}
	if math.Abs(diff.Value()-math.Pi/2) > 1e-12 {
		t.Errorf("pi rad - 90 deg = %v rad, want pi/2", diff.Value())
	}

	if got := Degrees(30).Scale(3).Degrees(); math.Abs(got-90) > 1e-12 {
		t.Errorf("Degrees(30).Scale(3) = %v, want 90", got)
	}
	if got := Degrees(-45).Abs().Degrees(); math.Abs(got-45) > 1e-12 {
		t.Errorf("Degrees(-45).Abs() = %v, want 45", got)
	}
}

func TestAzimuthFactoryCyclesIntoFullTurn(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{-90, 270},
		{370, 10},
		{0, 0},
		{359.5, 359.5},
	}
	for _, c := range cases {
		if got := Azimuth(c.in).Degrees(); math.Abs(got-c.want) > 1e-9 {
			t.Errorf("Azimuth(%v) = %v deg, want %v", c.in, got, c.want)
		}
	}
}

func TestLongitudeFactoryCyclesAcrossAntimeridian(t *testing.T) {
	if got := Longitude(190).Degrees(); math.Abs(got-(-170)) > 1e-9 {
		t.Errorf("Longitude(190) = %v, want -170", got)
	}
	if got := Longitude(-190).Degrees(); math.Abs(got-170) > 1e-9 {
		t.Errorf("Longitude(-190) = %v, want 170", got)
	}
}

func TestLatitudeFactoryBouncesOverPole(t *testing.T) {
	if got := Latitude(100).Degrees(); math.Abs(got-80) > 1e-9 {
		t.Errorf("Latitude(100) = %v, want 80", got)
	}
	if got := Latitude(-100).Degrees(); math.Abs(got-(-80)) > 1e-9 {
		t.Errorf("Latitude(-100) = %v, want -80", got)
	}
	if got := Elevation(95).Degrees(); math.Abs(got-85) > 1e-9 {
		t.Errorf("Elevation(95) = %v, want 85", got)
	}
}

func TestAzimuthFromAtan2_CardinalDirections(t *testing.T) {
	cases := []struct {
		name string
		x, y float64
		want float64 // radians
	}{
		{"north", 0, 1, 0},
		{"east", 1, 0, math.Pi / 2},
		{"south", 0, -1, math.Pi},
		{"west", -1, 0, 3 * math.Pi / 2},
		{"north-east", 1, 1, math.Pi / 4},
	}
	for _, c := range cases {
		if got := AzimuthFromAtan2(c.x, c.y).Radians(); math.Abs(got-c.want) > 1e-12 {
			t.Errorf("%s: AzimuthFromAtan2(%v, %v) = %v, want %v", c.name, c.x, c.y, got, c.want)
		}
	}
}

func TestAzimuthFromAtan2_DegenerateAndSnap(t *testing.T) {
	if got := AzimuthFromAtan2(0, 0).Radians(); got != 0 {
		t.Errorf("AzimuthFromAtan2(0, 0) = %v, want 0", got)
	}
	// A hair west of north lands just below a full turn and snaps to zero.
	if got := AzimuthFromAtan2(-1e-12, 1).Radians(); got != 0 {
		t.Errorf("AzimuthFromAtan2(-1e-12, 1) = %v, want snap to 0", got)
	}
}

func TestAngleValidity(t *testing.T) {
	if !Degrees(45).IsValid() {
		t.Errorf("Degrees(45) should be valid")
	}
	if Radians(math.NaN()).IsValid() {
		t.Errorf("NaN angle should be invalid")
	}
	if Radians(math.Inf(1)).IsValid() {
		t.Errorf("Inf angle should be invalid")
	}
	if !Radians(1e-11).IsCloseZero() {
		t.Errorf("1e-11 rad should be close to zero")
	}
	if Radians(1e-9).IsCloseZero() {
		t.Errorf("1e-9 rad should not be close to zero")
	}
}

func TestAngleDMS(t *testing.T) {
	d := Degrees(45.5125).DMS()
	if d.Negative || d.Degrees != 45 || d.Minutes != 30 {
		t.Fatalf("DMS(45.5125) = %+v, want 45°30'", d)
	}
	if math.Abs(d.Seconds-45) > 1e-6 {
		t.Errorf("DMS(45.5125) seconds = %v, want 45", d.Seconds)
	}

	n := Degrees(-12.5).DMS()
	if !n.Negative || n.Degrees != 12 || n.Minutes != 30 {
		t.Errorf("DMS(-12.5) = %+v, want -12°30'", n)
	}
}

func TestAngleTrig(t *testing.T) {
	if got := Degrees(90).Sin(); math.Abs(got-1) > 1e-12 {
		t.Errorf("sin(90°) = %v, want 1", got)
	}
	if got := Degrees(180).Cos(); math.Abs(got-(-1)) > 1e-12 {
		t.Errorf("cos(180°) = %v, want -1", got)
	}
	if got := Degrees(45).Tan(); math.Abs(got-1) > 1e-12 {
		t.Errorf("tan(45°) = %v, want 1", got)
	}
}
