package atmosphere

import (
	"errors"
	"fmt"
	"math"

	"github.com/signalsfoundry/radar-geodesy/unit"
)

// earthRadiusM is the mean Earth radius used to fold curvature into the
// modified refractivity. It matches the radius the geodesy layer uses for
// its spherical model.
const earthRadiusM = 6371008.8

const (
	// DuctingKFactor is the sentinel k returned when the modified
	// refractivity gradient is near zero, signifying strong ducting or
	// near-straight-line propagation rather than a computable curvature.
	DuctingKFactor = 1000.0

	// standardModifiedGradient is the textbook dM/dh in N-units per meter
	// (-0.039 N/m from dN/dh plus 1e6/Re), substituted when the two profile
	// altitudes coincide.
	standardModifiedGradient = 0.118
)

// ErrHumidityRange reports a relative humidity outside [0, 100] percent.
var ErrHumidityRange = errors.New("relative humidity out of range [0, 100]")

// Profile is the weather at one altitude: the inputs the refractivity
// formulas need. RelativeHumidity is in percent.
type Profile struct {
	Altitude         unit.Length
	Pressure         unit.Pressure
	Temperature      unit.Temperature
	RelativeHumidity float64
}

// Refractivity returns the profile's refractivity in N-units.
func (p Profile) Refractivity() (float64, error) {
	return Refractivity(p.Pressure, p.Temperature, p.RelativeHumidity)
}

// SaturationVaporPressure returns the saturation vapor pressure over water
// at the given temperature, by the Tetens equation.
func SaturationVaporPressure(t unit.Temperature) unit.Pressure {
	tc := t.Celsius()
	return unit.Hectopascals(6.112 * math.Exp(17.67*tc/(tc+243.5)))
}

// VaporPressure returns the partial water vapor pressure at the given
// temperature and relative humidity in percent. Humidity outside [0, 100]
// is an error.
func VaporPressure(t unit.Temperature, relativeHumidity float64) (unit.Pressure, error) {
	if relativeHumidity < 0 || relativeHumidity > 100 {
		return unit.Pressure{}, fmt.Errorf("%w: %g", ErrHumidityRange, relativeHumidity)
	}
	es := SaturationVaporPressure(t)
	return unit.Hectopascals(es.Hectopascals() * relativeHumidity / 100.0), nil
}

// Refractivity returns the radio refractivity N in N-units for the given
// total pressure, temperature, and relative humidity in percent, per the
// ITU-R P.453 two-term form:
//
//	N = 77.6*(P/T) + 3.732e5*(e/T^2)
//
// with P and the vapor pressure e in hPa and T in kelvin.
func Refractivity(pressure unit.Pressure, t unit.Temperature, relativeHumidity float64) (float64, error) {
	e, err := VaporPressure(t, relativeHumidity)
	if err != nil {
		return 0, err
	}
	pHpa := pressure.Hectopascals()
	tK := t.Kelvins()

	dry := 77.6 * (pHpa / tK)
	wet := 3.732e5 * (e.Hectopascals() / (tK * tK))
	return dry + wet, nil
}

// RefractiveIndex returns the refractive index n for a refractivity N.
func RefractiveIndex(n float64) float64 {
	return 1.0 + n*1e-6
}

// ModifiedRefractivity returns the modified refractivity M, the refractivity
// with Earth curvature folded in so that rays over a curved Earth can be
// treated as rays over a flat one:
//
//	M = N + (h/Re)*1e6
func ModifiedRefractivity(n float64, height unit.Length) float64 {
	return n + height.Meters()/earthRadiusM*1e6
}

// AverageModifiedRefractivity returns the mean modified refractivity between
// two points with known refractivities.
func AverageModifiedRefractivity(nSite float64, siteAlt unit.Length, nTarget float64, targetAlt unit.Length) float64 {
	mSite := ModifiedRefractivity(nSite, siteAlt)
	mTarget := ModifiedRefractivity(nTarget, targetAlt)
	return (mSite + mTarget) / 2.0
}

// KFactor returns the effective-Earth-radius factor implied by the modified
// refractivity gradient between the two profiles:
//
//	k = (1e6/Re) / (dM/dh)
//
// Coincident altitudes (within 1e-6 m) substitute the standard gradient. A
// near-zero gradient returns DuctingKFactor instead of dividing by zero.
func KFactor(site, target Profile) (float64, error) {
	nSite, err := site.Refractivity()
	if err != nil {
		return 0, err
	}
	nTarget, err := target.Refractivity()
	if err != nil {
		return 0, err
	}

	h1 := site.Altitude.Meters()
	h2 := target.Altitude.Meters()

	gradient := standardModifiedGradient
	if math.Abs(h2-h1) >= 1e-6 {
		mSite := ModifiedRefractivity(nSite, site.Altitude)
		mTarget := ModifiedRefractivity(nTarget, target.Altitude)
		gradient = (mTarget - mSite) / (h2 - h1)
	}

	if math.Abs(gradient) < 1e-9 {
		return DuctingKFactor, nil
	}
	return (1e6 / earthRadiusM) / gradient, nil
}
