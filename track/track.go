package track

import (
	"errors"
	"fmt"
	"time"

	"github.com/signalsfoundry/radar-geodesy/geo"
)

// Conversions for the report columns, which carry meters per second.
const (
	metersPerSecondToKnots         = 1.94384
	metersPerSecondToFeetPerMinute = 196.85
)

// ErrTrackMismatch reports a point appended to a track keyed by a different
// aircraft.
var ErrTrackMismatch = errors.New("track point belongs to a different aircraft")

// Point is a single position report.
type Point struct {
	ICAO24   string
	Position geo.Geodetic
	At       time.Time
	// GroundSpeedKt is the ground speed in knots.
	GroundSpeedKt float64
	// VerticalRateFpm is the climb (positive) or descent rate in feet per
	// minute.
	VerticalRateFpm float64
	OnGround        bool
}

// Track is the history of one aircraft. Points are kept in arrival order;
// reports are assumed roughly chronological.
type Track struct {
	icao24 string
	points []Point
}

// NewTrack returns an empty track for the given ICAO 24-bit address.
func NewTrack(icao24 string) *Track {
	return &Track{icao24: icao24}
}

// ICAO24 returns the aircraft address the track is keyed by.
func (t *Track) ICAO24() string { return t.icao24 }

// Len returns the number of recorded points.
func (t *Track) Len() int { return len(t.points) }

// Append records a point. The point must carry the track's own ICAO24.
func (t *Track) Append(p Point) error {
	if p.ICAO24 != t.icao24 {
		return fmt.Errorf("%w: got %q, track is %q", ErrTrackMismatch, p.ICAO24, t.icao24)
	}
	t.points = append(t.points, p)
	return nil
}

// Latest returns the most recent point, or false for an empty track.
func (t *Track) Latest() (Point, bool) {
	if len(t.points) == 0 {
		return Point{}, false
	}
	return t.points[len(t.points)-1], true
}

// History returns a copy of the recorded points in order.
func (t *Track) History() []Point {
	out := make([]Point, len(t.points))
	copy(out, t.points)
	return out
}
