package track

import (
	"math"
	"testing"
	"time"
)

// ISS elements from September 2008; epoch day 264.51782528.
const (
	issLine1 = "1 25544U 98067A   08264.51782528 -.00002182  00000-0 -11606-4 0  2927"
	issLine2 = "2 25544  51.6416 247.4627 0006703 130.5360 325.0288 15.72125391563537"
)

var issEpoch = time.Date(2008, time.September, 20, 12, 25, 40, 0, time.UTC)

func TestTLESourcePositionAtEpoch(t *testing.T) {
	src := NewTLESource("iss", issLine1, issLine2, nil)
	if got := src.Name(); got != "iss" {
		t.Fatalf("Name = %q, want \"iss\"", got)
	}

	pos := src.PositionAt(issEpoch)
	if !pos.IsValid() {
		t.Fatalf("PositionAt returned invalid position %v", pos)
	}
	if alt := pos.Alt.Kilometers(); alt < 300 || alt > 460 {
		t.Errorf("altitude = %.1f km, want a low Earth orbit between 300 and 460", alt)
	}
	// Latitude stays within the orbital inclination.
	if lat := math.Abs(pos.Lat.Degrees()); lat > 52 {
		t.Errorf("latitude = %.4f deg, want within 52", lat)
	}
}

func TestTLESourcePoints(t *testing.T) {
	src := NewTLESource("iss", issLine1, issLine2, nil)
	pts := src.Points(issEpoch, 30*time.Second, 5)
	if len(pts) != 5 {
		t.Fatalf("Points len = %d, want 5", len(pts))
	}

	for i, p := range pts {
		if p.ICAO24 != "iss" {
			t.Errorf("point %d ICAO24 = %q, want \"iss\"", i, p.ICAO24)
		}
		if want := issEpoch.Add(time.Duration(i) * 30 * time.Second); !p.At.Equal(want) {
			t.Errorf("point %d At = %v, want %v", i, p.At, want)
		}
		if !p.Position.IsValid() {
			t.Errorf("point %d position invalid: %v", i, p.Position)
		}
	}

	if pts[0].GroundSpeedKt != 0 || pts[0].VerticalRateFpm != 0 {
		t.Errorf("first point rates = %v kt, %v fpm, want zero",
			pts[0].GroundSpeedKt, pts[0].VerticalRateFpm)
	}
	for i, p := range pts[1:] {
		if p.GroundSpeedKt < 1000 {
			t.Errorf("point %d ground speed = %.0f kt, want orbital pace above 1000",
				i+1, p.GroundSpeedKt)
		}
	}
}
