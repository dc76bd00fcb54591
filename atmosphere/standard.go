package atmosphere

import (
	"math"

	"github.com/signalsfoundry/radar-geodesy/unit"
)

// International Standard Atmosphere constants, two-layer form: a linear
// temperature lapse through the troposphere and an isothermal layer above
// the tropopause.
const (
	// SeaLevelTemperatureK is the ISA sea-level temperature, 15 degrees C.
	SeaLevelTemperatureK = 288.15
	// SeaLevelPressurePa is the ISA sea-level pressure.
	SeaLevelPressurePa = 101325.0
	// Gravity is the standard gravitational acceleration in m/s^2.
	Gravity = 9.80665
	// GasConstantDryAir is the specific gas constant for dry air in
	// J/(kg*K).
	GasConstantDryAir = 287.058
	// TroposphereLapseRate is the tropospheric temperature lapse in K/m.
	TroposphereLapseRate = -0.0065
	// TropopauseAltitudeM is the altitude of the tropopause in meters.
	TropopauseAltitudeM = 11000.0
	// TropopauseTemperatureK is the constant temperature above the
	// tropopause, 216.65 K.
	TropopauseTemperatureK = SeaLevelTemperatureK + TroposphereLapseRate*TropopauseAltitudeM

	// StandardRelativeHumidity is the constant relative humidity in percent
	// assumed by the standard profile. Real humidity varies strongly with
	// altitude and weather; this is a deliberate simplification.
	StandardRelativeHumidity = 60.0
)

// barometricExponent is -g/(L*R) for the tropospheric pressure formula.
const barometricExponent = -Gravity / (TroposphereLapseRate * GasConstantDryAir)

// tropopausePressurePa is the ISA pressure at the tropopause, the anchor for
// the isothermal layer above it.
var tropopausePressurePa = SeaLevelPressurePa *
	math.Pow(TropopauseTemperatureK/SeaLevelTemperatureK, barometricExponent)

// Standard is the simplified ISA profile. The zero value uses the standard
// 60 % relative humidity; set RelativeHumidity to model other conditions.
type Standard struct {
	// RelativeHumidity is the constant humidity in percent assumed at every
	// altitude. Zero means the standard 60 %.
	RelativeHumidity float64
}

// Humidity returns the profile's constant relative humidity in percent.
func (s Standard) Humidity() float64 {
	if s.RelativeHumidity > 0 {
		return s.RelativeHumidity
	}
	return StandardRelativeHumidity
}

// Temperature returns the ISA temperature at the given altitude: linear
// lapse through the troposphere, constant 216.65 K above the tropopause.
func (s Standard) Temperature(alt unit.Length) unit.Temperature {
	h := alt.Meters()
	if h <= TropopauseAltitudeM {
		return unit.Kelvins(SeaLevelTemperatureK + TroposphereLapseRate*h)
	}
	return unit.Kelvins(TropopauseTemperatureK)
}

// Pressure returns the ISA pressure at the given altitude: the barometric
// formula through the troposphere, exponential decay above the tropopause.
func (s Standard) Pressure(alt unit.Length) unit.Pressure {
	h := alt.Meters()
	if h <= TropopauseAltitudeM {
		t := SeaLevelTemperatureK + TroposphereLapseRate*h
		return unit.Pascals(SeaLevelPressurePa * math.Pow(t/SeaLevelTemperatureK, barometricExponent))
	}
	decay := math.Exp(-Gravity * (h - TropopauseAltitudeM) / (GasConstantDryAir * TropopauseTemperatureK))
	return unit.Pascals(tropopausePressurePa * decay)
}

// At returns the full standard-atmosphere profile at the given altitude.
func (s Standard) At(alt unit.Length) Profile {
	return Profile{
		Altitude:         alt,
		Pressure:         s.Pressure(alt),
		Temperature:      s.Temperature(alt),
		RelativeHumidity: s.Humidity(),
	}
}

// Refractivity returns the refractivity of the standard atmosphere at the
// given altitude.
func (s Standard) Refractivity(alt unit.Length) (float64, error) {
	return s.At(alt).Refractivity()
}

// AverageModifiedRefractivity returns the mean modified refractivity between
// two altitudes, both endpoints taken from the standard profile.
func (s Standard) AverageModifiedRefractivity(siteAlt, targetAlt unit.Length) (float64, error) {
	nSite, err := s.Refractivity(siteAlt)
	if err != nil {
		return 0, err
	}
	nTarget, err := s.Refractivity(targetAlt)
	if err != nil {
		return 0, err
	}
	return AverageModifiedRefractivity(nSite, siteAlt, nTarget, targetAlt), nil
}

// AverageModifiedRefractivityFromSite returns the mean modified refractivity
// between measured site conditions and a standard-atmosphere target.
func (s Standard) AverageModifiedRefractivityFromSite(site Profile, targetAlt unit.Length) (float64, error) {
	nSite, err := site.Refractivity()
	if err != nil {
		return 0, err
	}
	nTarget, err := s.Refractivity(targetAlt)
	if err != nil {
		return 0, err
	}
	return AverageModifiedRefractivity(nSite, site.Altitude, nTarget, targetAlt), nil
}

// KFactor returns the effective-Earth-radius factor between two altitudes of
// the standard atmosphere.
func (s Standard) KFactor(h1, h2 unit.Length) (float64, error) {
	return KFactor(s.At(h1), s.At(h2))
}

// KFactorFromSite returns the effective-Earth-radius factor between measured
// site conditions and a standard-atmosphere target altitude. The radar
// conversion engine uses this form when only the sensor side has weather.
func (s Standard) KFactorFromSite(site Profile, targetAlt unit.Length) (float64, error) {
	return KFactor(site, s.At(targetAlt))
}
