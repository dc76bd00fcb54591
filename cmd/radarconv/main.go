// Command radarconv converts recorded target reports into the radar frame
// of a chosen site: CSV report batches or TLE ephemerides in, one line per
// detection out, optionally paced to the report timestamps.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/peterbourgon/ff"

	"github.com/signalsfoundry/radar-geodesy/geo"
	"github.com/signalsfoundry/radar-geodesy/internal/sites"
	"github.com/signalsfoundry/radar-geodesy/radar"
	"github.com/signalsfoundry/radar-geodesy/replay"
	"github.com/signalsfoundry/radar-geodesy/track"
)

func main() {
	fs := flag.NewFlagSet("radarconv", flag.ExitOnError)
	var (
		sitesPath = fs.String("sites", "", "Path to the radar site registry (with -site)")
		siteID    = fs.String("site", "", "Registered site the radar observes from")
		lon       = fs.Float64("lon", 0, "Radar longitude in degrees (instead of -site)")
		lat       = fs.Float64("lat", 0, "Radar latitude in degrees")
		alt       = fs.Float64("alt", 0, "Radar altitude in meters")
		k         = fs.Float64("k", 0, "Effective Earth radius factor; 0 means the site's, then 4/3")
		modelName = fs.String("model", "wgs84", "Earth model: wgs84 or sphere")
		mode      = fs.String("mode", "spherical", "Output frame: spherical (az/el/rng) or observation (az/rng/alt)")
		input     = fs.String("input", "", "CSV report batch to convert; - reads stdin")
		tle1      = fs.String("tle1", "", "TLE line 1 (with -tle2, instead of -input)")
		tle2      = fs.String("tle2", "", "TLE line 2")
		tleName   = fs.String("tle-name", "sat", "Identifier for TLE-derived points")
		startRaw  = fs.String("start", "", "Ephemeris start for TLE mode, RFC 3339 (default now)")
		step      = fs.Duration("step", 30*time.Second, "Ephemeris step for TLE mode")
		count     = fs.Int("count", 20, "Ephemeris points for TLE mode")
		paced     = fs.Bool("paced", false, "Replay reports following their timestamp gaps")
		speedup   = fs.Float64("speedup", 1, "Pacing speedup; 60 replays a minute per second")
	)
	if err := ff.Parse(fs, os.Args[1:], ff.WithEnvVarNoPrefix()); err != nil {
		fail("parse flags: %v", err)
	}

	seen := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { seen[f.Name] = true })

	if *mode != "spherical" && *mode != "observation" {
		fail("unknown -mode %q", *mode)
	}
	m, err := earthModel(*modelName)
	if err != nil {
		fail("%v", err)
	}

	origin, siteK, err := resolveOrigin(*siteID, *sitesPath, *lon, *lat, *alt, seen)
	if err != nil {
		fail("%v", err)
	}
	if *k == 0 {
		*k = siteK
	}
	conv := radar.Converter{Model: m, K: *k}

	points, err := loadPoints(*input, *tle1, *tle2, *tleName, *startRaw, *step, *count, m)
	if err != nil {
		fail("%v", err)
	}
	if len(points) == 0 {
		fail("no points to convert")
	}

	replayMode := replay.Immediate
	if *paced {
		replayMode = replay.Paced
	}
	player := replay.NewPlayer(replayMode, *speedup)
	player.AddListener(emitter(conv, origin, *mode))
	<-player.Play(points)
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "radarconv: "+format+"\n", args...)
	os.Exit(1)
}

// resolveOrigin picks the radar position: a registered site when -site is
// given, otherwise explicitly passed coordinates.
func resolveOrigin(siteID, sitesPath string, lon, lat, alt float64, seen map[string]bool) (geo.Geodetic, float64, error) {
	if siteID != "" {
		if sitesPath == "" {
			return geo.Geodetic{}, 0, fmt.Errorf("-site %q needs -sites pointing at the registry", siteID)
		}
		registry, err := sites.Load(sitesPath)
		if err != nil {
			return geo.Geodetic{}, 0, err
		}
		site, err := registry.Get(siteID)
		if err != nil {
			return geo.Geodetic{}, 0, err
		}
		return site.Position(), site.K, nil
	}
	if !seen["lon"] || !seen["lat"] {
		return geo.Geodetic{}, 0, fmt.Errorf("either -site or both -lon and -lat are required")
	}
	return geo.NewGeodetic(lon, lat, alt), 0, nil
}

func earthModel(name string) (geo.Model, error) {
	switch name {
	case "wgs84":
		return geo.WGS84, nil
	case "sphere":
		return geo.Sphere, nil
	default:
		return nil, fmt.Errorf("unknown earth model %q", name)
	}
}

func loadPoints(input, tle1, tle2, tleName, startRaw string, step time.Duration, count int, m geo.Model) ([]track.Point, error) {
	switch {
	case tle1 != "" || tle2 != "":
		if tle1 == "" || tle2 == "" {
			return nil, fmt.Errorf("TLE mode needs both -tle1 and -tle2")
		}
		if count < 1 {
			return nil, fmt.Errorf("-count must be at least 1")
		}
		start := time.Now().UTC()
		if startRaw != "" {
			parsed, err := time.Parse(time.RFC3339, startRaw)
			if err != nil {
				return nil, fmt.Errorf("parse -start: %w", err)
			}
			start = parsed
		}
		return track.NewTLESource(tleName, tle1, tle2, m).Points(start, step, count), nil
	case input != "":
		var r io.Reader
		if input == "-" {
			r = os.Stdin
		} else {
			f, err := os.Open(input)
			if err != nil {
				return nil, err
			}
			defer f.Close()
			r = f
		}
		tracks, skipped, err := track.ParseCSV(r)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", input, err)
		}
		if skipped > 0 {
			fmt.Fprintf(os.Stderr, "radarconv: skipped %d malformed reports\n", skipped)
		}
		var points []track.Point
		for _, tr := range tracks {
			points = append(points, tr.History()...)
		}
		return points, nil
	default:
		return nil, fmt.Errorf("either -input or -tle1/-tle2 is required")
	}
}

// emitter prints one line per converted point in the requested frame.
func emitter(conv radar.Converter, origin geo.Geodetic, mode string) func(track.Point) {
	if mode == "observation" {
		return func(p track.Point) {
			obs := conv.ToObservation(origin, p.Position)
			fmt.Printf("[%s] %-8s az=%8.3f rng=%10.1f alt=%8.1f\n",
				p.At.Format(time.RFC3339), p.ICAO24,
				obs.Azimuth.Degrees(), obs.Range.Meters(), obs.Altitude.Meters())
		}
	}
	return func(p track.Point) {
		det := conv.ToSpherical(origin, p.Position)
		fmt.Printf("[%s] %-8s az=%8.3f el=%8.3f rng=%10.1f\n",
			p.At.Format(time.RFC3339), p.ICAO24,
			det.Azimuth.Degrees(), det.Elevation.Degrees(), det.Range.Meters())
	}
}
