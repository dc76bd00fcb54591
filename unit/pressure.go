package unit

import (
	"fmt"
	"math"
)

// PressureUnit identifies a unit of pressure. The base unit is the pascal.
type PressureUnit int

const (
	UnitPascal PressureUnit = iota
	UnitHectopascal
	UnitKilopascal
	UnitBar
	UnitMillibar
	UnitMillimeterMercury
	UnitInchMercury
	UnitPSI
)

func (u PressureUnit) factor() float64 {
	switch u {
	case UnitHectopascal:
		return 100.0
	case UnitKilopascal:
		return 1000.0
	case UnitBar:
		return 100000.0
	case UnitMillibar:
		return 100.0
	case UnitMillimeterMercury:
		return 133.322368
	case UnitInchMercury:
		return 3386.389
	case UnitPSI:
		return 6894.75729
	default:
		return 1.0
	}
}

// Symbol returns the conventional unit symbol.
func (u PressureUnit) Symbol() string {
	switch u {
	case UnitHectopascal:
		return "hPa"
	case UnitKilopascal:
		return "kPa"
	case UnitBar:
		return "bar"
	case UnitMillibar:
		return "mbar"
	case UnitMillimeterMercury:
		return "mmHg"
	case UnitInchMercury:
		return "inHg"
	case UnitPSI:
		return "psi"
	default:
		return "Pa"
	}
}

// Pressure is an immutable pressure quantity.
type Pressure struct {
	value float64
	unit  PressureUnit
	base  float64
}

// NewPressure builds a pressure from a value in the given unit. Unlike the
// named factories, NewPressure does not clamp negative values.
func NewPressure(value float64, u PressureUnit) Pressure {
	return Pressure{value: value, unit: u, base: value * u.factor()}
}

// clampPositive floors the value at zero. Atmospheric pressures are never
// negative, so the named factories all pass through here.
func clampPositive(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

// Pascals builds a pressure from pascals, clamped at zero.
func Pascals(pa float64) Pressure {
	return NewPressure(clampPositive(pa), UnitPascal)
}

// Hectopascals builds a pressure from hectopascals, clamped at zero.
func Hectopascals(hpa float64) Pressure {
	return NewPressure(clampPositive(hpa), UnitHectopascal)
}

// Kilopascals builds a pressure from kilopascals, clamped at zero.
func Kilopascals(kpa float64) Pressure {
	return NewPressure(clampPositive(kpa), UnitKilopascal)
}

// Millibars builds a pressure from millibars, clamped at zero.
func Millibars(mbar float64) Pressure {
	return NewPressure(clampPositive(mbar), UnitMillibar)
}

// InchesMercury builds a pressure from inches of mercury, clamped at zero.
func InchesMercury(inhg float64) Pressure {
	return NewPressure(clampPositive(inhg), UnitInchMercury)
}

// Value returns the numeric value in the pressure's own unit.
func (p Pressure) Value() float64 { return p.value }

// Unit returns the pressure's unit.
func (p Pressure) Unit() PressureUnit { return p.unit }

// Pascals returns the base (pascal) value.
func (p Pressure) Pascals() float64 { return p.base }

// Hectopascals returns the pressure in hectopascals.
func (p Pressure) Hectopascals() float64 { return p.In(UnitHectopascal) }

// In converts the pressure to the target unit.
func (p Pressure) In(u PressureUnit) float64 { return p.base / u.factor() }

func (p Pressure) fromBase(base float64) Pressure {
	return Pressure{value: base / p.unit.factor(), unit: p.unit, base: base}
}

// WithBase returns a pressure in the receiver's unit whose base value is base
// pascals.
func (p Pressure) WithBase(base float64) Pressure { return p.fromBase(base) }

// Add returns p+b in p's unit.
func (p Pressure) Add(b Pressure) Pressure { return p.fromBase(p.base + b.base) }

// Sub returns p-b in p's unit.
func (p Pressure) Sub(b Pressure) Pressure { return p.fromBase(p.base - b.base) }

// Scale multiplies the pressure by a scalar.
func (p Pressure) Scale(f float64) Pressure { return p.fromBase(p.base * f) }

// IsValid reports whether the base value is finite.
func (p Pressure) IsValid() bool {
	return !math.IsNaN(p.base) && !math.IsInf(p.base, 0)
}

// IsCloseZero reports whether |base| <= 1e-10.
func (p Pressure) IsCloseZero() bool { return math.Abs(p.base) <= closeZeroEps }

// Close reports whether the two pressures differ by at most eps pascals.
func (p Pressure) Close(b Pressure, eps float64) bool {
	return math.Abs(p.base-b.base) <= eps
}

func (p Pressure) String() string {
	return fmt.Sprintf("%g %s", p.value, p.unit.Symbol())
}
