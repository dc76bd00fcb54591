package unit

import (
	"fmt"
	"math"
)

// LengthUnit identifies a unit of length. The base unit is the meter.
type LengthUnit int

const (
	UnitMeter LengthUnit = iota
	UnitKilometer
	UnitCentimeter
	UnitFoot
	UnitFlightLevel
	UnitNauticalMile
	UnitStatuteMile
	UnitDataMile
	UnitInch
	UnitYard
)

func (u LengthUnit) factor() float64 {
	switch u {
	case UnitKilometer:
		return 1000.0
	case UnitCentimeter:
		return 0.01
	case UnitFoot:
		return 0.3048
	case UnitFlightLevel:
		return 30.48 // hundreds of feet
	case UnitNauticalMile:
		return 1852.0
	case UnitStatuteMile:
		return 1609.344
	case UnitDataMile:
		return 1828.8
	case UnitInch:
		return 0.0254
	case UnitYard:
		return 0.9144
	default:
		return 1.0
	}
}

// Symbol returns the conventional unit symbol.
func (u LengthUnit) Symbol() string {
	switch u {
	case UnitKilometer:
		return "km"
	case UnitCentimeter:
		return "cm"
	case UnitFoot:
		return "ft"
	case UnitFlightLevel:
		return "FL"
	case UnitNauticalMile:
		return "NM"
	case UnitStatuteMile:
		return "mi"
	case UnitDataMile:
		return "DM"
	case UnitInch:
		return "in"
	case UnitYard:
		return "yd"
	default:
		return "m"
	}
}

// Length is an immutable length quantity.
type Length struct {
	value float64
	unit  LengthUnit
	base  float64
}

// NewLength builds a length from a value in the given unit.
func NewLength(value float64, u LengthUnit) Length {
	return Length{value: value, unit: u, base: value * u.factor()}
}

// Meters builds a length from meters.
func Meters(m float64) Length { return NewLength(m, UnitMeter) }

// Kilometers builds a length from kilometers.
func Kilometers(km float64) Length { return NewLength(km, UnitKilometer) }

// Feet builds a length from feet.
func Feet(ft float64) Length { return NewLength(ft, UnitFoot) }

// FlightLevel builds a length from a flight level (hundreds of feet).
func FlightLevel(fl float64) Length { return NewLength(fl, UnitFlightLevel) }

// NauticalMiles builds a length from nautical miles.
func NauticalMiles(nm float64) Length { return NewLength(nm, UnitNauticalMile) }

// Value returns the numeric value in the length's own unit.
func (l Length) Value() float64 { return l.value }

// Unit returns the length's unit.
func (l Length) Unit() LengthUnit { return l.unit }

// Meters returns the base (meter) value.
func (l Length) Meters() float64 { return l.base }

// Kilometers returns the length in kilometers.
func (l Length) Kilometers() float64 { return l.In(UnitKilometer) }

// Feet returns the length in feet.
func (l Length) Feet() float64 { return l.In(UnitFoot) }

// In converts the length to the target unit.
func (l Length) In(u LengthUnit) float64 { return l.base / u.factor() }

func (l Length) fromBase(base float64) Length {
	return Length{value: base / l.unit.factor(), unit: l.unit, base: base}
}

// WithBase returns a length in the receiver's unit whose base value is base
// meters. Vector code uses this to rebuild components without losing the
// caller's display unit.
func (l Length) WithBase(base float64) Length { return l.fromBase(base) }

// Add returns l+b in l's unit.
func (l Length) Add(b Length) Length { return l.fromBase(l.base + b.base) }

// Sub returns l-b in l's unit.
func (l Length) Sub(b Length) Length { return l.fromBase(l.base - b.base) }

// Scale multiplies the length by a scalar.
func (l Length) Scale(f float64) Length { return l.fromBase(l.base * f) }

// Neg returns the negated length.
func (l Length) Neg() Length { return l.fromBase(-l.base) }

// Abs returns the absolute length.
func (l Length) Abs() Length { return l.fromBase(math.Abs(l.base)) }

// IsValid reports whether the base value is finite.
func (l Length) IsValid() bool {
	return !math.IsNaN(l.base) && !math.IsInf(l.base, 0)
}

// IsCloseZero reports whether |base| <= 1e-10.
func (l Length) IsCloseZero() bool { return math.Abs(l.base) <= closeZeroEps }

// Close reports whether the two lengths differ by at most eps meters.
func (l Length) Close(b Length, eps float64) bool {
	return math.Abs(l.base-b.base) <= eps
}

func (l Length) String() string {
	return fmt.Sprintf("%g %s", l.value, l.unit.Symbol())
}
