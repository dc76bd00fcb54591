// Package api exposes the conversion engine over HTTP: coordinate
// conversions, refraction quantities, the site registry, aircraft tracks,
// and sampled weather.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/signalsfoundry/radar-geodesy/atmosphere"
	"github.com/signalsfoundry/radar-geodesy/geo"
	"github.com/signalsfoundry/radar-geodesy/internal/logging"
	"github.com/signalsfoundry/radar-geodesy/internal/observability"
	"github.com/signalsfoundry/radar-geodesy/internal/sites"
	"github.com/signalsfoundry/radar-geodesy/radar"
	"github.com/signalsfoundry/radar-geodesy/track"
	"github.com/signalsfoundry/radar-geodesy/weather"
)

const requestIDHeader = "X-Request-Id"

// errValidation tags request validation failures so they map to 400.
var errValidation = errors.New("invalid request")

// WeatherSource supplies measured atmosphere profiles for profile-aware
// conversions and the weather sampling endpoint.
type WeatherSource interface {
	ProfileAt(pos geo.Geodetic) (atmosphere.Profile, error)
	Current() (*weather.Dataset, bool)
	Age(now time.Time) (time.Duration, bool)
}

// Config wires the server's dependencies. Sites is required. A nil Tracks
// gets an empty store; a nil Weather leaves the weather paths answering
// 503 until one is configured. Nil collectors disable instrumentation.
type Config struct {
	Addr    string
	Log     logging.Logger
	Sites   *sites.Registry
	Tracks  *track.Store
	Weather WeatherSource
	Metrics *observability.Collector
	Ingest  *observability.IngestCollector
}

// Server serves the v1 HTTP API.
type Server struct {
	http    *http.Server
	log     logging.Logger
	sites   *sites.Registry
	tracks  *track.Store
	weather WeatherSource
	metrics *observability.Collector
	ingest  *observability.IngestCollector
}

// New builds a Server with the standard middleware chain: tracing, panic
// recovery, CORS, request IDs, and metrics.
func New(cfg Config) (*Server, error) {
	if cfg.Sites == nil {
		return nil, errors.New("site registry is required")
	}
	log := cfg.Log
	if log == nil {
		log = logging.Noop()
	}
	store := cfg.Tracks
	if store == nil {
		store = track.NewStore()
	}

	s := &Server{
		log:     log,
		sites:   cfg.Sites,
		tracks:  store,
		weather: cfg.Weather,
		metrics: cfg.Metrics,
		ingest:  cfg.Ingest,
	}

	var handler http.Handler = s.routes()
	handler = handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost}),
		handlers.AllowedHeaders([]string{"Content-Type", requestIDHeader}),
	)(handler)
	handler = handlers.RecoveryHandler(handlers.RecoveryLogger(recoveryLogger{log}))(handler)
	handler = otelhttp.NewHandler(handler, "radar-api")

	s.http = &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return s, nil
}

func (s *Server) routes() *mux.Router {
	router := mux.NewRouter().StrictSlash(true)
	router.Use(s.requestMiddleware)
	router.Use(s.metrics.Middleware)

	router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)

	v1 := router.PathPrefix("/v1").Subrouter()
	v1.HandleFunc("/convert/geodetic", s.handleConvertGeodetic).Methods(http.MethodPost)
	v1.HandleFunc("/convert/spherical", s.handleConvertSpherical).Methods(http.MethodPost)
	v1.HandleFunc("/convert/observation", s.handleConvertObservation).Methods(http.MethodPost)
	v1.HandleFunc("/horizon", s.handleHorizon).Methods(http.MethodGet)
	v1.HandleFunc("/refractivity", s.handleRefractivity).Methods(http.MethodGet)
	v1.HandleFunc("/weather", s.handleWeatherSample).Methods(http.MethodGet)
	v1.HandleFunc("/sites", s.handleSites).Methods(http.MethodGet)
	v1.HandleFunc("/sites/{id}", s.handleSite).Methods(http.MethodGet)
	v1.HandleFunc("/tracks", s.handleTracks).Methods(http.MethodGet)
	v1.HandleFunc("/tracks", s.handleTrackIngest).Methods(http.MethodPost)
	v1.HandleFunc("/tracks/{icao24}", s.handleTrack).Methods(http.MethodGet)
	return router
}

// requestMiddleware assigns every request an ID, echoes it back in the
// response header, and stores a request-scoped logger on the context.
func (s *Server) requestMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if id := r.Header.Get(requestIDHeader); id != "" {
			ctx = logging.ContextWithRequestID(ctx, id)
		}
		ctx, reqLog := logging.WithRequestLogger(ctx, s.log)
		ctx = logging.ContextWithLogger(ctx, reqLog)
		w.Header().Set(requestIDHeader, logging.RequestIDFromContext(ctx))

		reqLog.Debug(ctx, "request received",
			logging.String("method", r.Method),
			logging.String("path", r.URL.Path),
		)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Handler returns the fully wrapped handler, for tests and embedding.
func (s *Server) Handler() http.Handler { return s.http.Handler }

// Addr returns the configured listen address.
func (s *Server) Addr() string { return s.http.Addr }

// ListenAndServe blocks serving the API until Shutdown or failure.
func (s *Server) ListenAndServe() error { return s.http.ListenAndServe() }

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error { return s.http.Shutdown(ctx) }

func (s *Server) reqLogger(r *http.Request) logging.Logger {
	if l := logging.LoggerFromContext(r.Context()); l != nil {
		return l
	}
	return s.log
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	log := s.reqLogger(r)
	if status >= http.StatusInternalServerError {
		log.Error(r.Context(), "request failed", logging.String("error", err.Error()))
	} else {
		log.Debug(r.Context(), "request rejected",
			logging.Int("status", status),
			logging.String("error", err.Error()),
		)
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

// statusFor maps sentinel errors onto HTTP status codes. Anything untagged
// is internal.
func statusFor(err error) int {
	switch {
	case errors.Is(err, sites.ErrUnknownSite), errors.Is(err, track.ErrUnknownTrack):
		return http.StatusNotFound
	case errors.Is(err, weather.ErrNoDataset):
		return http.StatusServiceUnavailable
	case errors.Is(err, errValidation),
		errors.Is(err, radar.ErrNilTargets),
		errors.Is(err, atmosphere.ErrHumidityRange),
		errors.Is(err, weather.ErrOutsideGrid):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

type recoveryLogger struct {
	log logging.Logger
}

func (l recoveryLogger) Println(v ...any) {
	l.log.Error(context.Background(), "panic recovered", logging.Any("panic", v))
}
