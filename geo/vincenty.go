package geo

import (
	"math"

	"github.com/signalsfoundry/radar-geodesy/unit"
)

// Vincenty's formulae for the geodesic problems on the WGS84 ellipsoid.
// Both directions iterate to 1e-12 rad and give up after 100 rounds, which
// only happens for nearly antipodal points.

const (
	vincentyTol     = 1e-12
	vincentyMaxIter = 100
)

type vincentyState struct {
	sinU1, cosU1 float64
	sinU2, cosU2 float64

	sinLambda, cosLambda float64
	sinSigma, cosSigma   float64
	sigma                float64
	cosSqAlpha           float64
	cos2SigmaM           float64

	coincident bool
	converged  bool
}

// vincentyIterate runs the inverse-problem lambda iteration and returns the
// final state, converged or not.
func vincentyIterate(a, b Geodetic) vincentyState {
	lat1 := a.Lat.Radians()
	lat2 := b.Lat.Radians()
	l := b.Lon.Radians() - a.Lon.Radians()

	u1 := math.Atan((1.0 - Flattening) * math.Tan(lat1))
	u2 := math.Atan((1.0 - Flattening) * math.Tan(lat2))

	st := vincentyState{
		sinU1: math.Sin(u1), cosU1: math.Cos(u1),
		sinU2: math.Sin(u2), cosU2: math.Cos(u2),
	}

	lambda := l
	for i := 0; i < vincentyMaxIter; i++ {
		st.sinLambda = math.Sin(lambda)
		st.cosLambda = math.Cos(lambda)

		st.sinSigma = math.Sqrt(
			(st.cosU2*st.sinLambda)*(st.cosU2*st.sinLambda) +
				(st.cosU1*st.sinU2-st.sinU1*st.cosU2*st.cosLambda)*
					(st.cosU1*st.sinU2-st.sinU1*st.cosU2*st.cosLambda))
		if st.sinSigma == 0 {
			st.coincident = true
			return st
		}
		st.cosSigma = st.sinU1*st.sinU2 + st.cosU1*st.cosU2*st.cosLambda
		st.sigma = math.Atan2(st.sinSigma, st.cosSigma)

		sinAlpha := st.cosU1 * st.cosU2 * st.sinLambda / st.sinSigma
		st.cosSqAlpha = 1.0 - sinAlpha*sinAlpha
		if st.cosSqAlpha != 0 {
			st.cos2SigmaM = st.cosSigma - 2.0*st.sinU1*st.sinU2/st.cosSqAlpha
		} else {
			// Both points on the equator.
			st.cos2SigmaM = 0
		}

		c := Flattening / 16.0 * st.cosSqAlpha * (4.0 + Flattening*(4.0-3.0*st.cosSqAlpha))
		prev := lambda
		lambda = l + (1.0-c)*Flattening*sinAlpha*
			(st.sigma+c*st.sinSigma*(st.cos2SigmaM+c*st.cosSigma*(-1.0+2.0*st.cos2SigmaM*st.cos2SigmaM)))
		if math.Abs(lambda-prev) < vincentyTol {
			st.converged = true
			return st
		}
	}
	return st
}

// vincentyInverse returns the geodesic distance in meters between two points.
// Coincident points give zero; ok is false when the iteration did not
// converge.
func vincentyInverse(a, b Geodetic) (float64, bool) {
	st := vincentyIterate(a, b)
	if st.coincident {
		return 0, true
	}
	if !st.converged {
		return 0, false
	}

	uSq := st.cosSqAlpha * (SemiMajorAxisM*SemiMajorAxisM - semiMinorAxisM*semiMinorAxisM) /
		(semiMinorAxisM * semiMinorAxisM)
	bigA := 1.0 + uSq/16384.0*(4096.0+uSq*(-768.0+uSq*(320.0-175.0*uSq)))
	bigB := uSq / 1024.0 * (256.0 + uSq*(-128.0+uSq*(74.0-47.0*uSq)))
	deltaSigma := bigB * st.sinSigma *
		(st.cos2SigmaM + bigB/4.0*
			(st.cosSigma*(-1.0+2.0*st.cos2SigmaM*st.cos2SigmaM)-
				bigB/6.0*st.cos2SigmaM*
					(-3.0+4.0*st.sinSigma*st.sinSigma)*
					(-3.0+4.0*st.cos2SigmaM*st.cos2SigmaM)))

	return semiMinorAxisM * bigA * (st.sigma - deltaSigma), true
}

// vincentyBearing returns the initial bearing in radians from a toward b.
// It evaluates the bearing from the last lambda even without convergence,
// since the bearing is far less sensitive to lambda than the distance is.
// Coincident points give zero.
func vincentyBearing(a, b Geodetic) float64 {
	st := vincentyIterate(a, b)
	if st.coincident {
		return 0
	}
	return math.Atan2(st.cosU2*st.sinLambda,
		st.cosU1*st.sinU2-st.sinU1*st.cosU2*st.cosLambda)
}

// vincentyDirect returns the latitude and longitude in radians reached from
// start along the initial bearing after the given distance. ok is false when
// the sigma iteration did not converge.
func vincentyDirect(start Geodetic, bearingRad, distM float64) (float64, float64, bool) {
	lat1 := start.Lat.Radians()
	lon1 := start.Lon.Radians()

	sinAlpha1 := math.Sin(bearingRad)
	cosAlpha1 := math.Cos(bearingRad)

	tanU1 := (1.0 - Flattening) * math.Tan(lat1)
	cosU1 := 1.0 / math.Sqrt(1.0+tanU1*tanU1)
	sinU1 := tanU1 * cosU1

	sigma1 := math.Atan2(tanU1, cosAlpha1)
	sinAlpha := cosU1 * sinAlpha1
	cosSqAlpha := 1.0 - sinAlpha*sinAlpha

	uSq := cosSqAlpha * (SemiMajorAxisM*SemiMajorAxisM - semiMinorAxisM*semiMinorAxisM) /
		(semiMinorAxisM * semiMinorAxisM)
	bigA := 1.0 + uSq/16384.0*(4096.0+uSq*(-768.0+uSq*(320.0-175.0*uSq)))
	bigB := uSq / 1024.0 * (256.0 + uSq*(-128.0+uSq*(74.0-47.0*uSq)))

	sigma := distM / (semiMinorAxisM * bigA)
	var sinSigma, cosSigma, cos2SigmaM float64
	converged := false
	for i := 0; i < vincentyMaxIter; i++ {
		cos2SigmaM = math.Cos(2.0*sigma1 + sigma)
		sinSigma = math.Sin(sigma)
		cosSigma = math.Cos(sigma)
		deltaSigma := bigB * sinSigma *
			(cos2SigmaM + bigB/4.0*
				(cosSigma*(-1.0+2.0*cos2SigmaM*cos2SigmaM)-
					bigB/6.0*cos2SigmaM*
						(-3.0+4.0*sinSigma*sinSigma)*
						(-3.0+4.0*cos2SigmaM*cos2SigmaM)))
		prev := sigma
		sigma = distM/(semiMinorAxisM*bigA) + deltaSigma
		if math.Abs(sigma-prev) < vincentyTol {
			converged = true
			break
		}
	}
	if !converged {
		return 0, 0, false
	}

	tmp := sinU1*sinSigma - cosU1*cosSigma*cosAlpha1
	lat2 := math.Atan2(sinU1*cosSigma+cosU1*sinSigma*cosAlpha1,
		(1.0-Flattening)*math.Sqrt(sinAlpha*sinAlpha+tmp*tmp))
	lambda := math.Atan2(sinSigma*sinAlpha1,
		cosU1*cosSigma-sinU1*sinSigma*cosAlpha1)
	c := Flattening / 16.0 * cosSqAlpha * (4.0 + Flattening*(4.0-3.0*cosSqAlpha))
	l := lambda - (1.0-c)*Flattening*sinAlpha*
		(sigma+c*sinSigma*(cos2SigmaM+c*cosSigma*(-1.0+2.0*cos2SigmaM*cos2SigmaM)))

	return lat2, lon1 + l, true
}

// sphericalDestination solves the direct problem in closed form on a sphere.
func sphericalDestination(start Geodetic, bearingRad, distM, radiusM float64) LatLon {
	lat1 := start.Lat.Radians()
	lon1 := start.Lon.Radians()
	ang := distM / radiusM

	sinLat2 := math.Sin(lat1)*math.Cos(ang) + math.Cos(lat1)*math.Sin(ang)*math.Cos(bearingRad)
	lat2 := math.Asin(sinLat2)
	lon2 := lon1 + math.Atan2(math.Sin(bearingRad)*math.Sin(ang)*math.Cos(lat1),
		math.Cos(ang)-math.Sin(lat1)*sinLat2)

	return LatLon{
		Lat: unit.LatitudeRadians(lat2),
		Lon: unit.LongitudeRadians(lon2),
	}
}
