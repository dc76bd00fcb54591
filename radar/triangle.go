package radar

import (
	"math"

	"github.com/signalsfoundry/radar-geodesy/unit"
)

// The refraction triangle spans the effective Earth's center C, the radar R,
// and the target T. Side CR is the effective radius plus the radar altitude,
// side CT the effective radius plus the target altitude, and side RT the
// slant range. The angle of RT above the local horizontal at R is the
// elevation; the angle at C is the central angle subtended by the ground
// track.

// solveAltitude resolves the triangle when the elevation is known, returning
// the target altitude above the model surface and the central angle in
// radians.
func solveAltitude(effRadius, radarAlt, slantRange unit.Length, elevation unit.Angle) (unit.Length, float64) {
	re := effRadius.Meters()
	rc := re + radarAlt.Meters()
	rs := slantRange.Meters()

	rtSq := rc*rc + rs*rs + 2*rc*rs*math.Sin(elevation.Radians())
	rt := math.Sqrt(rtSq)

	cosCentral := (rc*rc + rtSq - rs*rs) / (2 * rc * rt)
	central := math.Acos(clamp(cosCentral, -1, 1))

	return unit.Meters(rt - re), central
}

// solveElevation resolves the triangle when the target altitude is known,
// returning the elevation and the central angle in radians. Degenerate
// geometry, such as a slant range shorter than the altitude difference,
// saturates the elevation at plus or minus 90 degrees.
//
// The central-angle cosine has historically been capped at 1e-12 rather
// than 1, which pins the angle near 90 degrees. Every caller on this path
// ignores the angle, so the cap is kept as the compatible default; fullClamp
// restores the mathematical [-1, 1] range.
func solveElevation(effRadius, radarAlt, targetAlt, slantRange unit.Length, fullClamp bool) (unit.Angle, float64) {
	re := effRadius.Meters()
	rc := re + radarAlt.Meters()
	rt := re + targetAlt.Meters()
	rs := slantRange.Meters()

	sinElevation := (rt*rt - rc*rc - rs*rs) / (2 * rc * rs)
	elevation := unit.ElevationRadians(math.Asin(clamp(sinElevation, -1, 1)))

	cosCap := 1e-12
	if fullClamp {
		cosCap = 1
	}
	cosCentral := (rc*rc + rt*rt - rs*rs) / (2 * rc * rt)
	central := math.Acos(clamp(cosCentral, -1, cosCap))

	return elevation, central
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}
