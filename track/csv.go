package track

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/signalsfoundry/radar-geodesy/geo"
)

// ParseCSV reads OpenSky-style state vectors, one report per line:
//
//	time,icao24,lat,lon,baro_altitude,on_ground,velocity,vertical_rate
//
// time is a Unix timestamp in seconds; velocity and vertical_rate are in
// meters per second and come out in knots and feet per minute. The first
// line is a header and is discarded. Malformed lines are skipped; their
// count is returned so callers can log it. The error is non-nil only when
// reading itself fails.
func ParseCSV(r io.Reader) (map[string]*Track, int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	tracks := make(map[string]*Track)
	skipped := 0
	header := true
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var badLine *csv.ParseError
		if errors.As(err, &badLine) {
			skipped++
			continue
		}
		if err != nil {
			return nil, skipped, fmt.Errorf("read track csv: %w", err)
		}
		if header {
			header = false
			continue
		}
		p, err := parseRecord(record)
		if err != nil {
			skipped++
			continue
		}
		tr, ok := tracks[p.ICAO24]
		if !ok {
			tr = NewTrack(p.ICAO24)
			tracks[p.ICAO24] = tr
		}
		if err := tr.Append(p); err != nil {
			skipped++
		}
	}
	return tracks, skipped, nil
}

func parseRecord(record []string) (Point, error) {
	if len(record) < 8 {
		return Point{}, fmt.Errorf("want 8 columns, got %d", len(record))
	}
	for i := range record {
		record[i] = strings.TrimSpace(record[i])
	}

	sec, err := strconv.ParseInt(record[0], 10, 64)
	if err != nil {
		return Point{}, fmt.Errorf("time: %w", err)
	}
	lat, err := strconv.ParseFloat(record[2], 64)
	if err != nil {
		return Point{}, fmt.Errorf("lat: %w", err)
	}
	lon, err := strconv.ParseFloat(record[3], 64)
	if err != nil {
		return Point{}, fmt.Errorf("lon: %w", err)
	}
	alt, err := strconv.ParseFloat(record[4], 64)
	if err != nil {
		return Point{}, fmt.Errorf("baro_altitude: %w", err)
	}
	onGround, err := strconv.ParseBool(record[5])
	if err != nil {
		return Point{}, fmt.Errorf("on_ground: %w", err)
	}
	velocity, err := strconv.ParseFloat(record[6], 64)
	if err != nil {
		return Point{}, fmt.Errorf("velocity: %w", err)
	}
	verticalRate, err := strconv.ParseFloat(record[7], 64)
	if err != nil {
		return Point{}, fmt.Errorf("vertical_rate: %w", err)
	}

	return Point{
		ICAO24:          record[1],
		Position:        geo.NewGeodetic(lon, lat, alt),
		At:              time.Unix(sec, 0).UTC(),
		GroundSpeedKt:   velocity * metersPerSecondToKnots,
		VerticalRateFpm: verticalRate * metersPerSecondToFeetPerMinute,
		OnGround:        onGround,
	}, nil
}
