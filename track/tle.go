package track

import (
	"time"

	satellite "github.com/joshuaferrara/go-satellite"

	"github.com/signalsfoundry/radar-geodesy/geo"
)

// TLESource turns a satellite two-line element set into track points: SGP4
// propagation to ECI, Earth rotation into ECEF, then the Earth model's
// geodetic inversion. go-satellite works in kilometers; positions come out
// in meters.
type TLESource struct {
	name  string
	sat   satellite.Satellite
	model geo.Model
}

// NewTLESource builds a source from TLE lines. The name keys the produced
// points, standing in for an ICAO24. A nil model means WGS84.
func NewTLESource(name, line1, line2 string, m geo.Model) *TLESource {
	if m == nil {
		m = geo.WGS84
	}
	return &TLESource{
		name:  name,
		sat:   satellite.TLEToSat(line1, line2, satellite.GravityWGS72),
		model: m,
	}
}

// Name returns the identifier the produced points carry.
func (s *TLESource) Name() string { return s.name }

// PositionAt propagates the satellite to t and returns its geodetic
// position.
func (s *TLESource) PositionAt(t time.Time) geo.Geodetic {
	t = t.UTC()
	year, month, day := t.Date()
	hour, min, sec := t.Clock()

	posECI, _ := satellite.Propagate(s.sat, year, int(month), day, hour, min, sec)
	jd := satellite.JDay(year, int(month), day, hour, min, sec)
	posECEF := satellite.ECIToECEF(posECI, satellite.ThetaG_JD(jd))

	const kmToM = 1000.0
	return s.model.ToGeodetic(geo.GeocentricMeters(
		posECEF.X*kmToM, posECEF.Y*kmToM, posECEF.Z*kmToM))
}

// Points samples the pass at a fixed step, deriving ground speed and
// vertical rate from consecutive samples. The first point reports zero
// rates.
func (s *TLESource) Points(start time.Time, step time.Duration, n int) []Point {
	out := make([]Point, 0, n)
	for i := 0; i < n; i++ {
		at := start.Add(time.Duration(i) * step).UTC()
		p := Point{ICAO24: s.name, Position: s.PositionAt(at), At: at}
		if i > 0 {
			prev := out[i-1]
			if dt := at.Sub(prev.At).Seconds(); dt > 0 {
				ground := s.model.SurfaceDistance(prev.Position, p.Position).Meters() / dt
				climb := (p.Position.Alt.Meters() - prev.Position.Alt.Meters()) / dt
				p.GroundSpeedKt = ground * metersPerSecondToKnots
				p.VerticalRateFpm = climb * metersPerSecondToFeetPerMinute
			}
		}
		out = append(out, p)
	}
	return out
}
