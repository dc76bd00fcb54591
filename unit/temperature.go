package unit

import (
	"fmt"
	"math"
)

// TemperatureUnit identifies a unit of temperature. The base unit is the
// kelvin. Celsius and Fahrenheit are affine, not scaled, so Temperature does
// not share the multiplicative conversion scheme of the other quantities.
type TemperatureUnit int

const (
	UnitKelvin TemperatureUnit = iota
	UnitCelsius
	UnitFahrenheit
)

func (u TemperatureUnit) toBase(v float64) float64 {
	switch u {
	case UnitCelsius:
		return v + 273.15
	case UnitFahrenheit:
		return (v-32.0)*5.0/9.0 + 273.15
	default:
		return v
	}
}

func (u TemperatureUnit) fromBase(k float64) float64 {
	switch u {
	case UnitCelsius:
		return k - 273.15
	case UnitFahrenheit:
		return (k-273.15)*9.0/5.0 + 32.0
	default:
		return k
	}
}

// Symbol returns the conventional unit symbol.
func (u TemperatureUnit) Symbol() string {
	switch u {
	case UnitCelsius:
		return "°C"
	case UnitFahrenheit:
		return "°F"
	default:
		return "K"
	}
}

// Temperature is an immutable temperature quantity.
type Temperature struct {
	value float64
	unit  TemperatureUnit
	base  float64
}

// NewTemperature builds a temperature from a value in the given unit.
func NewTemperature(value float64, u TemperatureUnit) Temperature {
	return Temperature{value: value, unit: u, base: u.toBase(value)}
}

// Kelvins builds a temperature from kelvins.
func Kelvins(k float64) Temperature { return NewTemperature(k, UnitKelvin) }

// Celsius builds a temperature from degrees Celsius, clamped at absolute
// zero (-273.15 °C).
func Celsius(c float64) Temperature {
	if c < -273.15 {
		c = -273.15
	}
	return NewTemperature(c, UnitCelsius)
}

// Fahrenheit builds a temperature from degrees Fahrenheit.
func Fahrenheit(f float64) Temperature { return NewTemperature(f, UnitFahrenheit) }

// Value returns the numeric value in the temperature's own unit.
func (t Temperature) Value() float64 { return t.value }

// Unit returns the temperature's unit.
func (t Temperature) Unit() TemperatureUnit { return t.unit }

// Kelvins returns the base (kelvin) value.
func (t Temperature) Kelvins() float64 { return t.base }

// Celsius returns the temperature in degrees Celsius.
func (t Temperature) Celsius() float64 { return t.In(UnitCelsius) }

// In converts the temperature to the target unit.
func (t Temperature) In(u TemperatureUnit) float64 { return u.fromBase(t.base) }

func (t Temperature) fromBase(base float64) Temperature {
	return Temperature{value: t.unit.fromBase(base), unit: t.unit, base: base}
}

// AddDelta shifts the temperature by a difference expressed in kelvins.
// Temperature sums have no physical meaning, so only deltas are supported.
func (t Temperature) AddDelta(kelvins float64) Temperature {
	return t.fromBase(t.base + kelvins)
}

// DeltaTo returns the difference b-t in kelvins.
func (t Temperature) DeltaTo(b Temperature) float64 { return b.base - t.base }

// IsValid reports whether the base value is finite.
func (t Temperature) IsValid() bool {
	return !math.IsNaN(t.base) && !math.IsInf(t.base, 0)
}

// Close reports whether the two temperatures differ by at most eps kelvins.
func (t Temperature) Close(b Temperature, eps float64) bool {
	return math.Abs(t.base-b.base) <= eps
}

func (t Temperature) String() string {
	return fmt.Sprintf("%g %s", t.value, t.unit.Symbol())
}
