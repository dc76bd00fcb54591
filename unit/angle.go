package unit

import (
	"fmt"
	"math"
)

// AngleUnit identifies a unit of angular measure. The base unit is the radian.
type AngleUnit int

const (
	UnitRadian AngleUnit = iota
	UnitDegree
	UnitGradian
	UnitArcMinute
	UnitArcSecond
)

func (u AngleUnit) factor() float64 {
	switch u {
	case UnitDegree:
		return math.Pi / 180.0
	case UnitGradian:
		return math.Pi / 200.0
	case UnitArcMinute:
		return math.Pi / 10800.0
	case UnitArcSecond:
		return math.Pi / 648000.0
	default:
		return 1.0
	}
}

// Symbol returns the conventional unit symbol.
func (u AngleUnit) Symbol() string {
	switch u {
	case UnitDegree:
		return "°"
	case UnitGradian:
		return "gon"
	case UnitArcMinute:
		return "'"
	case UnitArcSecond:
		return "\""
	default:
		return "rad"
	}
}

// Angle is an immutable angular quantity: a value in some unit plus the cached
// base (radian) representation.
type Angle struct {
	value float64
	unit  AngleUnit
	base  float64
}

// NewAngle builds an angle from a value in the given unit.
func NewAngle(value float64, u AngleUnit) Angle {
	return Angle{value: value, unit: u, base: value * u.factor()}
}

// Radians builds an angle from radians.
func Radians(rad float64) Angle { return NewAngle(rad, UnitRadian) }

// Degrees builds an angle from decimal degrees.
func Degrees(deg float64) Angle { return NewAngle(deg, UnitDegree) }

// Azimuth builds an azimuth from degrees, cycled into [0, 360).
func Azimuth(deg float64) Angle {
	return Degrees(deg).Wrap(0, 2*math.Pi, WrapCycle)
}

// AzimuthRadians builds an azimuth from radians, cycled into [0, 2π).
func AzimuthRadians(rad float64) Angle {
	return Radians(rad).Wrap(0, 2*math.Pi, WrapCycle)
}

// Longitude builds a longitude from degrees, cycled into [-180, 180).
func Longitude(deg float64) Angle {
	return Degrees(deg).Wrap(-math.Pi, math.Pi, WrapCycle)
}

// LongitudeRadians builds a longitude from radians, cycled into [-π, π).
func LongitudeRadians(rad float64) Angle {
	return Radians(rad).Wrap(-math.Pi, math.Pi, WrapCycle)
}

// Latitude builds a latitude from degrees, bounced into [-90, 90].
func Latitude(deg float64) Angle {
	return Degrees(deg).Wrap(-math.Pi/2, math.Pi/2, WrapBounce)
}

// LatitudeRadians builds a latitude from radians, bounced into [-π/2, π/2].
func LatitudeRadians(rad float64) Angle {
	return Radians(rad).Wrap(-math.Pi/2, math.Pi/2, WrapBounce)
}

// Elevation builds an elevation from degrees, bounced into [-90, 90].
func Elevation(deg float64) Angle {
	return Degrees(deg).Wrap(-math.Pi/2, math.Pi/2, WrapBounce)
}

// ElevationRadians builds an elevation from radians, bounced into [-π/2, π/2].
func ElevationRadians(rad float64) Angle {
	return Radians(rad).Wrap(-math.Pi/2, math.Pi/2, WrapBounce)
}

// AzimuthFromAtan2 computes the azimuth of the direction (x east, y north),
// measured clockwise from north and normalized to [0, 2π). Results within
// 1e-9 of a full turn snap to zero. Both components zero yields zero by
// convention.
//
//	AzimuthFromAtan2(0, 1)  // 0 (north)
//	AzimuthFromAtan2(1, 0)  // π/2 (east)
//	AzimuthFromAtan2(0, -1) // π (south)
//	AzimuthFromAtan2(-1, 0) // 3π/2 (west)
func AzimuthFromAtan2(x, y float64) Angle {
	if x == 0 && y == 0 {
		return Radians(0)
	}
	rad := math.Atan2(x, y)
	if rad < 0 {
		rad += 2 * math.Pi
	}
	if math.Abs(rad) < 1e-9 || math.Abs(rad-2*math.Pi) < 1e-9 {
		rad = 0
	}
	return Radians(rad)
}

// Value returns the numeric value in the angle's own unit.
func (a Angle) Value() float64 { return a.value }

// Unit returns the angle's unit.
func (a Angle) Unit() AngleUnit { return a.unit }

// Radians returns the base (radian) value.
func (a Angle) Radians() float64 { return a.base }

// Degrees returns the angle in decimal degrees.
func (a Angle) Degrees() float64 { return a.In(UnitDegree) }

// In converts the angle to the target unit.
func (a Angle) In(u AngleUnit) float64 { return a.base / u.factor() }

// fromBase rebuilds an angle in the receiver's unit from a base value.
func (a Angle) fromBase(base float64) Angle {
	return Angle{value: base / a.unit.factor(), unit: a.unit, base: base}
}

// WithBase returns an angle in the receiver's unit whose base value is base
// radians.
func (a Angle) WithBase(base float64) Angle { return a.fromBase(base) }

// Add returns a+b in a's unit.
func (a Angle) Add(b Angle) Angle { return a.fromBase(a.base + b.base) }

// Sub returns a-b in a's unit.
func (a Angle) Sub(b Angle) Angle { return a.fromBase(a.base - b.base) }

// Scale multiplies the angle by a scalar.
func (a Angle) Scale(f float64) Angle { return a.fromBase(a.base * f) }

// Neg returns the negated angle.
func (a Angle) Neg() Angle { return a.fromBase(-a.base) }

// Abs returns the absolute angle.
func (a Angle) Abs() Angle { return a.fromBase(math.Abs(a.base)) }

// Wrap folds the base value into [minBase, maxBase] (radians) with mode.
func (a Angle) Wrap(minBase, maxBase float64, mode WrapMode) Angle {
	return a.fromBase(Wrap(a.base, minBase, maxBase, mode))
}

// Sin returns the sine of the angle.
func (a Angle) Sin() float64 { return math.Sin(a.base) }

// Cos returns the cosine of the angle.
func (a Angle) Cos() float64 { return math.Cos(a.base) }

// Tan returns the tangent of the angle.
func (a Angle) Tan() float64 { return math.Tan(a.base) }

// IsValid reports whether the base value is finite.
func (a Angle) IsValid() bool {
	return !math.IsNaN(a.base) && !math.IsInf(a.base, 0)
}

// IsCloseZero reports whether |base| <= 1e-10.
func (a Angle) IsCloseZero() bool { return math.Abs(a.base) <= closeZeroEps }

// Close reports whether the two angles differ by at most eps radians.
func (a Angle) Close(b Angle, eps float64) bool {
	return math.Abs(a.base-b.base) <= eps
}

func (a Angle) String() string {
	return fmt.Sprintf("%g %s", a.value, a.unit.Symbol())
}

// DMS is a sexagesimal breakdown of an angle in degrees.
type DMS struct {
	Negative bool
	Degrees  int
	Minutes  int
	Seconds  float64
}

// DMS converts the angle to degrees, minutes and decimal seconds.
func (a Angle) DMS() DMS {
	deg := a.Degrees()
	d := DMS{Negative: deg < 0}
	deg = math.Abs(deg)
	d.Degrees = int(deg)
	rem := (deg - float64(d.Degrees)) * 60
	d.Minutes = int(rem)
	d.Seconds = (rem - float64(d.Minutes)) * 60
	return d
}

func (d DMS) String() string {
	sign := ""
	if d.Negative {
		sign = "-"
	}
	return fmt.Sprintf("%s%d°%02d'%06.3f\"", sign, d.Degrees, d.Minutes, d.Seconds)
}
