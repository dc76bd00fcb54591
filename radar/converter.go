package radar

import (
	"errors"
	"fmt"
	"math"

	"github.com/signalsfoundry/radar-geodesy/atmosphere"
	"github.com/signalsfoundry/radar-geodesy/geo"
	"github.com/signalsfoundry/radar-geodesy/unit"
)

// StandardRefractionK is the conventional 4/3 effective-Earth-radius factor
// of a standard atmosphere.
const StandardRefractionK = 4.0 / 3.0

const (
	// kTolerance ends the profile solve once successive k estimates agree
	// this closely.
	kTolerance = 1e-6
	// maxKRefinements bounds the profile solve.
	maxKRefinements = 10
)

// ErrNilTargets reports a nil list passed to a batch conversion.
var ErrNilTargets = errors.New("target list is nil")

// Converter converts radar detections to geodetic positions and back over a
// chosen Earth model and refraction factor. Converters are immutable values;
// the zero value uses WGS84, standard 4/3 refraction, and the standard
// atmosphere.
type Converter struct {
	// Model supplies the geodesic and ECEF arithmetic. Nil means WGS84.
	Model geo.Model
	// Standard supplies target-side atmosphere values for the profile-aware
	// conversions. The zero value assumes 60% relative humidity.
	Standard atmosphere.Standard
	// K is the effective-Earth-radius factor. Zero means the standard 4/3.
	K float64
	// FullCentralAngleClamp widens the central-angle cosine clamp of the
	// altitude-known triangle solve to the mathematical [-1, 1] range.
	// Off, the historical 1e-12 cap applies; the angle is unused on that
	// path, so results do not change either way.
	FullCentralAngleClamp bool
}

func (c Converter) model() geo.Model {
	if c.Model != nil {
		return c.Model
	}
	return geo.WGS84
}

func (c Converter) k() float64 {
	if c.K > 0 {
		return c.K
	}
	return StandardRefractionK
}

func (c Converter) withK(k float64) Converter {
	c.K = k
	return c
}

// ToSpherical locates a known target as seen from the radar: true-bearing
// azimuth, slant range along the straight line between the two points, and
// the elevation the refraction triangle assigns to that geometry.
func (c Converter) ToSpherical(radar, target geo.Geodetic) geo.Spherical {
	m := c.model()
	eff := m.EffectiveEarthRadius(radar.Lat, c.k())
	slant := radar.Chord(m, target)
	elevation, _ := solveElevation(eff, radar.Alt, target.Alt, slant, c.FullCentralAngleClamp)
	return geo.Spherical{
		Azimuth:   m.InitialBearing(radar, target),
		Elevation: elevation,
		Range:     slant,
	}
}

// ObservationToSpherical completes a detection carrying azimuth, slant
// range, and reported altitude into a full azimuth/elevation/range triple.
func (c Converter) ObservationToSpherical(radar geo.Geodetic, obs geo.Observation) geo.Spherical {
	eff := c.model().EffectiveEarthRadius(radar.Lat, c.k())
	elevation, _ := solveElevation(eff, radar.Alt, obs.Altitude, obs.Range, c.FullCentralAngleClamp)
	return geo.Spherical{Azimuth: obs.Azimuth, Elevation: elevation, Range: obs.Range}
}

// ToGeodetic places a detection on the Earth. The refraction triangle yields
// the target altitude and the ground arc, and the geodesic direct problem
// walks that arc along the detection azimuth.
func (c Converter) ToGeodetic(radar geo.Geodetic, det geo.Spherical) geo.Geodetic {
	m := c.model()
	eff := m.EffectiveEarthRadius(radar.Lat, c.k())
	alt, central := solveAltitude(eff, radar.Alt, det.Range, det.Elevation)
	return m.DestinationPoint(radar, det.Azimuth, eff.Scale(central)).WithAltitude(alt)
}

// ObservationToGeodetic places an altitude-reporting detection on the Earth
// via its completed spherical form.
func (c Converter) ObservationToGeodetic(radar geo.Geodetic, obs geo.Observation) geo.Geodetic {
	return c.ToGeodetic(radar, c.ObservationToSpherical(radar, obs))
}

// ToObservation reduces a known target to the sensor-native triple of
// azimuth, slant range, and reported altitude.
func (c Converter) ToObservation(radar, target geo.Geodetic) geo.Observation {
	m := c.model()
	return geo.Observation{
		Azimuth:  m.InitialBearing(radar, target),
		Range:    radar.Chord(m, target),
		Altitude: target.Alt,
	}
}

// ToSphericalAll converts targets in order. A nil list is a validation
// error; an empty list is an empty result.
func (c Converter) ToSphericalAll(radar geo.Geodetic, targets []geo.Geodetic) ([]geo.Spherical, error) {
	if targets == nil {
		return nil, fmt.Errorf("%w: geodetic targets", ErrNilTargets)
	}
	out := make([]geo.Spherical, len(targets))
	for i, target := range targets {
		out[i] = c.ToSpherical(radar, target)
	}
	return out, nil
}

// ToGeodeticAll converts detections in order. A nil list is a validation
// error; an empty list is an empty result.
func (c Converter) ToGeodeticAll(radar geo.Geodetic, dets []geo.Spherical) ([]geo.Geodetic, error) {
	if dets == nil {
		return nil, fmt.Errorf("%w: spherical detections", ErrNilTargets)
	}
	out := make([]geo.Geodetic, len(dets))
	for i, det := range dets {
		out[i] = c.ToGeodetic(radar, det)
	}
	return out, nil
}

// ToSphericalProfile converts with a k-factor derived from measured weather
// at both ends of the path. The profile altitudes are taken from the
// positions, not from the profiles.
func (c Converter) ToSphericalProfile(radar geo.Geodetic, radarWx atmosphere.Profile, target geo.Geodetic, targetWx atmosphere.Profile) (geo.Spherical, error) {
	radarWx.Altitude = radar.Alt
	targetWx.Altitude = target.Alt
	k, err := atmosphere.KFactor(radarWx, targetWx)
	if err != nil {
		return geo.Spherical{}, err
	}
	return c.withK(k).ToSpherical(radar, target), nil
}

// ToGeodeticProfile places a detection when only radar-site weather is
// known. The target altitude and the k-factor depend on each other, so the
// solve alternates: place the target with the current k, re-derive k from
// the site profile against the standard atmosphere at the placed altitude,
// and repeat until k settles within kTolerance or maxKRefinements passes
// run out. It returns the last placed position and the number of passes.
func (c Converter) ToGeodeticProfile(radar geo.Geodetic, radarWx atmosphere.Profile, det geo.Spherical) (geo.Geodetic, int, error) {
	radarWx.Altitude = radar.Alt

	k := StandardRefractionK
	var pos geo.Geodetic
	passes := 0
	for passes < maxKRefinements {
		pos = c.withK(k).ToGeodetic(radar, det)
		passes++
		next, err := c.Standard.KFactorFromSite(radarWx, pos.Alt)
		if err != nil {
			return geo.Geodetic{}, 0, err
		}
		if math.Abs(next-k) < kTolerance {
			break
		}
		k = next
	}
	return pos, passes, nil
}

// HorizonDistance returns the slant distance from an antenna at the given
// altitude to the radar horizon over the effective Earth at the given
// latitude.
func (c Converter) HorizonDistance(alt unit.Length, lat unit.Angle) unit.Length {
	eff := c.model().EffectiveEarthRadius(lat, c.k()).Meters()
	h := alt.Meters()
	return alt.WithBase(math.Sqrt(2*eff*h + h*h))
}

// ToSpherical converts with the zero Converter: WGS84 and standard
// refraction.
func ToSpherical(radar, target geo.Geodetic) geo.Spherical {
	return Converter{}.ToSpherical(radar, target)
}

// ToGeodetic converts with the zero Converter: WGS84 and standard
// refraction.
func ToGeodetic(radar geo.Geodetic, det geo.Spherical) geo.Geodetic {
	return Converter{}.ToGeodetic(radar, det)
}

// ToObservation converts with the zero Converter: WGS84 and standard
// refraction.
func ToObservation(radar, target geo.Geodetic) geo.Observation {
	return Converter{}.ToObservation(radar, target)
}

// HorizonDistance returns the standard-refraction horizon over WGS84.
func HorizonDistance(alt unit.Length, lat unit.Angle) unit.Length {
	return Converter{}.HorizonDistance(alt, lat)
}
