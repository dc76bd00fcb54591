package api

import (
	"time"

	"github.com/signalsfoundry/radar-geodesy/geo"
	"github.com/signalsfoundry/radar-geodesy/track"
)

// position carries a geodetic position: degrees east, degrees north, meters
// above the ellipsoid.
type position struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
	Altitude  float64 `json:"altitude"`
}

// detection is a radar-native azimuth/elevation/range triple, in degrees
// clockwise from north and meters of slant range.
type detection struct {
	Azimuth   float64 `json:"azimuth"`
	Elevation float64 `json:"elevation"`
	Range     float64 `json:"range"`
}

// observation is a detection carrying reported altitude instead of
// elevation, the triple altitude-reporting sensors emit.
type observation struct {
	Azimuth  float64 `json:"azimuth"`
	Range    float64 `json:"range"`
	Altitude float64 `json:"altitude"`
}

// Conversion requests name the radar either by registered site ID or by an
// explicit position, never both. K overrides the site's surveyed factor;
// zero means the site's, then the standard 4/3. Model selects the Earth
// model, wgs84 or sphere.
type convertGeodeticRequest struct {
	Site       string      `json:"site,omitempty"`
	Radar      *position   `json:"radar,omitempty"`
	Model      string      `json:"model,omitempty"`
	K          float64     `json:"k,omitempty"`
	UseWeather bool        `json:"useWeather,omitempty"`
	Detections []detection `json:"detections"`
}

type convertGeodeticResponse struct {
	K            float64    `json:"k,omitempty"`
	Targets      []position `json:"targets"`
	SolverPasses []int      `json:"solverPasses,omitempty"`
}

type convertSphericalRequest struct {
	Site       string     `json:"site,omitempty"`
	Radar      *position  `json:"radar,omitempty"`
	Model      string     `json:"model,omitempty"`
	K          float64    `json:"k,omitempty"`
	UseWeather bool       `json:"useWeather,omitempty"`
	Targets    []position `json:"targets"`
}

type convertSphericalResponse struct {
	K          float64     `json:"k,omitempty"`
	Detections []detection `json:"detections"`
}

type convertObservationRequest struct {
	Site    string     `json:"site,omitempty"`
	Radar   *position  `json:"radar,omitempty"`
	Model   string     `json:"model,omitempty"`
	Targets []position `json:"targets"`
}

type convertObservationResponse struct {
	Observations []observation `json:"observations"`
}

type horizonResponse struct {
	K             float64 `json:"k"`
	HorizonMeters float64 `json:"horizonMeters"`
}

type refractivityResponse struct {
	Refractivity    float64 `json:"refractivity"`
	RefractiveIndex float64 `json:"refractiveIndex"`
}

type weatherResponse struct {
	Position          position  `json:"position"`
	PressureHpa       float64   `json:"pressureHpa"`
	TemperatureC      float64   `json:"temperatureC"`
	RelativeHumidity  float64   `json:"relativeHumidity"`
	Refractivity      float64   `json:"refractivity"`
	DatasetTime       time.Time `json:"datasetTime"`
	DatasetAgeSeconds float64   `json:"datasetAgeSeconds"`
}

type trackPoint struct {
	ICAO24          string    `json:"icao24"`
	At              time.Time `json:"at"`
	Longitude       float64   `json:"longitude"`
	Latitude        float64   `json:"latitude"`
	Altitude        float64   `json:"altitude"`
	GroundSpeedKt   float64   `json:"groundSpeedKt"`
	VerticalRateFpm float64   `json:"verticalRateFpm"`
	OnGround        bool      `json:"onGround,omitempty"`
}

type trackSummary struct {
	ICAO24 string     `json:"icao24"`
	Points int        `json:"points"`
	Latest trackPoint `json:"latest"`
}

type trackResponse struct {
	ICAO24 string       `json:"icao24"`
	Points []trackPoint `json:"points"`
}

type ingestResponse struct {
	Aircraft int `json:"aircraft"`
	Added    int `json:"added"`
	Skipped  int `json:"skipped"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func toGeodetic(p position) geo.Geodetic {
	return geo.NewGeodetic(p.Longitude, p.Latitude, p.Altitude)
}

func fromGeodetic(g geo.Geodetic) position {
	return position{
		Longitude: g.Lon.Degrees(),
		Latitude:  g.Lat.Degrees(),
		Altitude:  g.Alt.Meters(),
	}
}

func toSpherical(d detection) geo.Spherical {
	return geo.NewSpherical(d.Azimuth, d.Elevation, d.Range)
}

func fromSpherical(s geo.Spherical) detection {
	return detection{
		Azimuth:   s.Azimuth.Degrees(),
		Elevation: s.Elevation.Degrees(),
		Range:     s.Range.Meters(),
	}
}

func fromObservation(o geo.Observation) observation {
	return observation{
		Azimuth:  o.Azimuth.Degrees(),
		Range:    o.Range.Meters(),
		Altitude: o.Altitude.Meters(),
	}
}

func fromPoint(p track.Point) trackPoint {
	return trackPoint{
		ICAO24:          p.ICAO24,
		At:              p.At,
		Longitude:       p.Position.Lon.Degrees(),
		Latitude:        p.Position.Lat.Degrees(),
		Altitude:        p.Position.Alt.Meters(),
		GroundSpeedKt:   p.GroundSpeedKt,
		VerticalRateFpm: p.VerticalRateFpm,
		OnGround:        p.OnGround,
	}
}
