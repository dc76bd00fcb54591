package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/signalsfoundry/radar-geodesy/atmosphere"
	"github.com/signalsfoundry/radar-geodesy/geo"
	"github.com/signalsfoundry/radar-geodesy/internal/logging"
	"github.com/signalsfoundry/radar-geodesy/radar"
	"github.com/signalsfoundry/radar-geodesy/track"
	"github.com/signalsfoundry/radar-geodesy/unit"
	"github.com/signalsfoundry/radar-geodesy/weather"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// converterFor resolves a conversion request's radar position and builds the
// converter it asks for. An explicit k wins, then the site's surveyed k,
// then the standard 4/3.
func (s *Server) converterFor(siteID string, pos *position, model string, k float64) (geo.Geodetic, radar.Converter, error) {
	m, err := earthModel(model)
	if err != nil {
		return geo.Geodetic{}, radar.Converter{}, err
	}

	var origin geo.Geodetic
	var siteK float64
	switch {
	case siteID != "" && pos != nil:
		return geo.Geodetic{}, radar.Converter{}, fmt.Errorf("%w: site and radar are mutually exclusive", errValidation)
	case siteID != "":
		site, err := s.sites.Get(siteID)
		if err != nil {
			return geo.Geodetic{}, radar.Converter{}, err
		}
		origin = site.Position()
		siteK = site.K
	case pos != nil:
		origin = toGeodetic(*pos)
		if !origin.IsValid() {
			return geo.Geodetic{}, radar.Converter{}, fmt.Errorf("%w: radar position is not finite", errValidation)
		}
	default:
		return geo.Geodetic{}, radar.Converter{}, fmt.Errorf("%w: one of site or radar is required", errValidation)
	}

	if k == 0 {
		k = siteK
	}
	if k < 0 {
		return geo.Geodetic{}, radar.Converter{}, fmt.Errorf("%w: k must be positive, got %g", errValidation, k)
	}
	return origin, radar.Converter{Model: m, K: k}, nil
}

func (s *Server) handleConvertGeodetic(w http.ResponseWriter, r *http.Request) {
	var req convertGeodeticRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, r, fmt.Errorf("%w: decode body: %v", errValidation, err))
		return
	}
	origin, conv, err := s.converterFor(req.Site, req.Radar, req.Model, req.K)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	if req.UseWeather {
		s.convertGeodeticProfile(w, r, origin, conv, req.Detections)
		return
	}

	var dets []geo.Spherical
	if req.Detections != nil {
		dets = make([]geo.Spherical, len(req.Detections))
		for i, d := range req.Detections {
			dets[i] = toSpherical(d)
		}
	}
	start := time.Now()
	placed, err := conv.ToGeodeticAll(origin, dets)
	s.metrics.ObserveConversion("to_geodetic", time.Since(start), err)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	targets := make([]position, len(placed))
	for i, g := range placed {
		targets[i] = fromGeodetic(g)
	}
	writeJSON(w, http.StatusOK, convertGeodeticResponse{K: effectiveK(conv), Targets: targets})
}

// convertGeodeticProfile places detections with the k-factor derived from
// the weather measured at the radar site.
func (s *Server) convertGeodeticProfile(w http.ResponseWriter, r *http.Request, origin geo.Geodetic, conv radar.Converter, dets []detection) {
	if s.weather == nil {
		s.respondError(w, r, weather.ErrNoDataset)
		return
	}
	if dets == nil {
		s.respondError(w, r, fmt.Errorf("%w: detections", radar.ErrNilTargets))
		return
	}
	siteWx, err := s.weather.ProfileAt(origin)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	targets := make([]position, len(dets))
	passes := make([]int, len(dets))
	for i, d := range dets {
		start := time.Now()
		placed, n, err := conv.ToGeodeticProfile(origin, siteWx, toSpherical(d))
		s.metrics.ObserveConversion("to_geodetic_profile", time.Since(start), err)
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		s.metrics.ObserveSolverPasses(n)
		targets[i] = fromGeodetic(placed)
		passes[i] = n
	}
	writeJSON(w, http.StatusOK, convertGeodeticResponse{Targets: targets, SolverPasses: passes})
}

func (s *Server) handleConvertSpherical(w http.ResponseWriter, r *http.Request) {
	var req convertSphericalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, r, fmt.Errorf("%w: decode body: %v", errValidation, err))
		return
	}
	origin, conv, err := s.converterFor(req.Site, req.Radar, req.Model, req.K)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	if req.UseWeather {
		s.convertSphericalProfile(w, r, origin, conv, req.Targets)
		return
	}

	var targets []geo.Geodetic
	if req.Targets != nil {
		targets = make([]geo.Geodetic, len(req.Targets))
		for i, t := range req.Targets {
			targets[i] = toGeodetic(t)
		}
	}
	start := time.Now()
	seen, err := conv.ToSphericalAll(origin, targets)
	s.metrics.ObserveConversion("to_spherical", time.Since(start), err)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	out := make([]detection, len(seen))
	for i, det := range seen {
		out[i] = fromSpherical(det)
	}
	writeJSON(w, http.StatusOK, convertSphericalResponse{K: effectiveK(conv), Detections: out})
}

// convertSphericalProfile locates targets with the k-factor derived from the
// weather measured at both ends of each path.
func (s *Server) convertSphericalProfile(w http.ResponseWriter, r *http.Request, origin geo.Geodetic, conv radar.Converter, targets []position) {
	if s.weather == nil {
		s.respondError(w, r, weather.ErrNoDataset)
		return
	}
	if targets == nil {
		s.respondError(w, r, fmt.Errorf("%w: geodetic targets", radar.ErrNilTargets))
		return
	}
	siteWx, err := s.weather.ProfileAt(origin)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	out := make([]detection, len(targets))
	for i, t := range targets {
		pos := toGeodetic(t)
		targetWx, err := s.weather.ProfileAt(pos)
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		start := time.Now()
		det, err := conv.ToSphericalProfile(origin, siteWx, pos, targetWx)
		s.metrics.ObserveConversion("to_spherical_profile", time.Since(start), err)
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		out[i] = fromSpherical(det)
	}
	writeJSON(w, http.StatusOK, convertSphericalResponse{Detections: out})
}

func (s *Server) handleConvertObservation(w http.ResponseWriter, r *http.Request) {
	var req convertObservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, r, fmt.Errorf("%w: decode body: %v", errValidation, err))
		return
	}
	origin, conv, err := s.converterFor(req.Site, req.Radar, req.Model, 0)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if req.Targets == nil {
		s.respondError(w, r, fmt.Errorf("%w: geodetic targets", radar.ErrNilTargets))
		return
	}

	start := time.Now()
	out := make([]observation, len(req.Targets))
	for i, t := range req.Targets {
		out[i] = fromObservation(conv.ToObservation(origin, toGeodetic(t)))
	}
	s.metrics.ObserveConversion("to_observation", time.Since(start), nil)
	writeJSON(w, http.StatusOK, convertObservationResponse{Observations: out})
}

func (s *Server) handleHorizon(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	alt, err := requiredFloat(q, "altitude")
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	lat, err := queryFloat(q, "latitude", 0)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	k, err := queryFloat(q, "k", 0)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	m, err := earthModel(q.Get("model"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	switch {
	case alt < 0:
		s.respondError(w, r, fmt.Errorf("%w: altitude must not be negative", errValidation))
		return
	case lat < -90 || lat > 90:
		s.respondError(w, r, fmt.Errorf("%w: latitude out of range [-90, 90]", errValidation))
		return
	case k < 0:
		s.respondError(w, r, fmt.Errorf("%w: k must be positive, got %g", errValidation, k))
		return
	}

	conv := radar.Converter{Model: m, K: k}
	horizon := conv.HorizonDistance(unit.Meters(alt), unit.Latitude(lat))
	writeJSON(w, http.StatusOK, horizonResponse{
		K:             effectiveK(conv),
		HorizonMeters: horizon.Meters(),
	})
}

// handleRefractivity computes N for a pressure in hPa, a temperature in
// degrees Celsius, and a relative humidity in percent.
func (s *Server) handleRefractivity(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	pressure, err := requiredFloat(q, "pressure")
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	temperature, err := requiredFloat(q, "temperature")
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	humidity, err := queryFloat(q, "humidity", 0)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	n, err := atmosphere.Refractivity(unit.Hectopascals(pressure), unit.Celsius(temperature), humidity)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, refractivityResponse{
		Refractivity:    n,
		RefractiveIndex: atmosphere.RefractiveIndex(n),
	})
}

func (s *Server) handleWeatherSample(w http.ResponseWriter, r *http.Request) {
	if s.weather == nil {
		s.respondError(w, r, weather.ErrNoDataset)
		return
	}
	q := r.URL.Query()
	lon, err := requiredFloat(q, "longitude")
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	lat, err := requiredFloat(q, "latitude")
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	alt, err := queryFloat(q, "altitude", 0)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	pos := geo.NewGeodetic(lon, lat, alt)
	profile, err := s.weather.ProfileAt(pos)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	n, err := profile.Refractivity()
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	resp := weatherResponse{
		Position:         fromGeodetic(pos),
		PressureHpa:      profile.Pressure.Hectopascals(),
		TemperatureC:     profile.Temperature.Celsius(),
		RelativeHumidity: profile.RelativeHumidity,
		Refractivity:     n,
	}
	if ds, ok := s.weather.Current(); ok {
		resp.DatasetTime = ds.At
	}
	if age, ok := s.weather.Age(time.Now()); ok {
		resp.DatasetAgeSeconds = age.Seconds()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSites(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.sites.List())
}

func (s *Server) handleSite(w http.ResponseWriter, r *http.Request) {
	site, err := s.sites.Get(mux.Vars(r)["id"])
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, site)
}

func (s *Server) handleTracks(w http.ResponseWriter, r *http.Request) {
	ids := s.tracks.ICAO24s()
	out := make([]trackSummary, 0, len(ids))
	for _, id := range ids {
		latest, err := s.tracks.Latest(id)
		if err != nil {
			continue
		}
		history, err := s.tracks.History(id)
		if err != nil {
			continue
		}
		out = append(out, trackSummary{
			ICAO24: id,
			Points: len(history),
			Latest: fromPoint(latest),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleTrack(w http.ResponseWriter, r *http.Request) {
	icao24 := mux.Vars(r)["icao24"]
	history, err := s.tracks.History(icao24)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	points := make([]trackPoint, len(history))
	for i, p := range history {
		points[i] = fromPoint(p)
	}
	writeJSON(w, http.StatusOK, trackResponse{ICAO24: icao24, Points: points})
}

// handleTrackIngest accepts a CSV report batch and appends it to the store.
func (s *Server) handleTrackIngest(w http.ResponseWriter, r *http.Request) {
	parsed, skipped, err := track.ParseCSV(r.Body)
	if err != nil {
		s.respondError(w, r, fmt.Errorf("%w: parse csv: %v", errValidation, err))
		return
	}
	added := s.tracks.Ingest(parsed)
	s.ingest.AddIngestedPoints(added)
	s.ingest.SetTrackedAircraft(s.tracks.Size())

	s.reqLogger(r).Info(r.Context(), "tracks ingested",
		logging.Int("aircraft", len(parsed)),
		logging.Int("added", added),
		logging.Int("skipped", skipped),
	)
	writeJSON(w, http.StatusOK, ingestResponse{
		Aircraft: len(parsed),
		Added:    added,
		Skipped:  skipped,
	})
}

func effectiveK(c radar.Converter) float64 {
	if c.K > 0 {
		return c.K
	}
	return radar.StandardRefractionK
}

// earthModel selects the Earth model by name. Empty means WGS84.
func earthModel(name string) (geo.Model, error) {
	switch strings.ToLower(name) {
	case "", "wgs84":
		return geo.WGS84, nil
	case "sphere", "spherical":
		return geo.Sphere, nil
	default:
		return nil, fmt.Errorf("%w: unknown earth model %q", errValidation, name)
	}
}

func queryFloat(q url.Values, key string, def float64) (float64, error) {
	raw := q.Get(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: parse %s: %v", errValidation, key, err)
	}
	return v, nil
}

func requiredFloat(q url.Values, key string) (float64, error) {
	if q.Get(key) == "" {
		return 0, fmt.Errorf("%w: %s is required", errValidation, key)
	}
	return queryFloat(q, key, 0)
}
