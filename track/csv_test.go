package track

import (
	"errors"
	"math"
	"strings"
	"testing"
	"testing/iotest"
	"time"
)

const sampleCSV = `time,icao24,lat,lon,baro_altitude,on_ground,velocity,vertical_rate
1655125898,4b1803,47.4581,8.5556,632.46,false,92.6,-3.25
1655125899,4b1803,47.4590,8.5561,628.00,false,93.1,-3.25
1655125898,3c6444,48.3538,11.7861,0,true,4.1,0
not-a-time,4b1803,47.0,8.0,600,false,90,0
1655125900,4b1803,47.4601
1655125902,4b1803,47.5,8.6,630,maybe,92,0
1655125901,aaf123,-33.9461,151.1772,11277.6,false,250.0,12.5
`

func TestParseCSV(t *testing.T) {
	tracks, skipped, err := ParseCSV(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("ParseCSV: %v", err)
	}
	if skipped != 3 {
		t.Errorf("skipped = %d, want 3", skipped)
	}
	if len(tracks) != 3 {
		t.Fatalf("got %d tracks, want 3", len(tracks))
	}

	tr, ok := tracks["4b1803"]
	if !ok {
		t.Fatal("no track for 4b1803")
	}
	if tr.Len() != 2 {
		t.Fatalf("4b1803 has %d points, want 2", tr.Len())
	}

	first := tr.History()[0]
	if want := time.Unix(1655125898, 0).UTC(); !first.At.Equal(want) {
		t.Errorf("At = %v, want %v", first.At, want)
	}
	if got := first.Position.Lat.Degrees(); math.Abs(got-47.4581) > 1e-12 {
		t.Errorf("lat = %v, want 47.4581", got)
	}
	if got := first.Position.Lon.Degrees(); math.Abs(got-8.5556) > 1e-12 {
		t.Errorf("lon = %v, want 8.5556", got)
	}
	if got := first.Position.Alt.Meters(); got != 632.46 {
		t.Errorf("alt = %v m, want 632.46", got)
	}
	if want := 92.6 * metersPerSecondToKnots; first.GroundSpeedKt != want {
		t.Errorf("ground speed = %v kt, want %v", first.GroundSpeedKt, want)
	}
	if want := -3.25 * metersPerSecondToFeetPerMinute; first.VerticalRateFpm != want {
		t.Errorf("vertical rate = %v fpm, want %v", first.VerticalRateFpm, want)
	}
	if first.OnGround {
		t.Error("OnGround = true, want false")
	}

	ground, _ := tracks["3c6444"].Latest()
	if !ground.OnGround {
		t.Error("3c6444 OnGround = false, want true")
	}
}

func TestParseCSVHeaderOnly(t *testing.T) {
	tracks, skipped, err := ParseCSV(strings.NewReader("time,icao24,lat,lon,baro_altitude,on_ground,velocity,vertical_rate\n"))
	if err != nil {
		t.Fatalf("ParseCSV: %v", err)
	}
	if len(tracks) != 0 || skipped != 0 {
		t.Errorf("got %d tracks, %d skipped; want none", len(tracks), skipped)
	}
}

func TestParseCSVReaderFailure(t *testing.T) {
	broken := errors.New("socket closed")
	_, _, err := ParseCSV(iotest.ErrReader(broken))
	if !errors.Is(err, broken) {
		t.Errorf("error = %v, want wrapped reader failure", err)
	}
}
