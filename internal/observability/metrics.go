package observability

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector bundles Prometheus metrics for the conversion API and provides
// the middleware that feeds the HTTP series.
type Collector struct {
	gatherer prometheus.Gatherer

	HTTPRequests  *prometheus.CounterVec
	HTTPDurations *prometheus.HistogramVec

	Conversions        *prometheus.CounterVec
	ConversionDuration *prometheus.HistogramVec
	SolverPasses       prometheus.Histogram
}

// NewCollector registers the API metrics against the provided registerer,
// defaulting to the global Prometheus registry when nil.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "radar_http_requests_total",
		Help: "Total number of handled HTTP requests, labeled by route, method, and status code.",
	}, []string{"route", "method", "code"})
	requests, err := registerCounterVec(reg, requests, "radar_http_requests_total")
	if err != nil {
		return nil, err
	}

	durations := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "radar_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds.",
		Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
	}, []string{"route", "method"})
	durations, err = registerHistogramVec(reg, durations, "radar_http_request_duration_seconds")
	if err != nil {
		return nil, err
	}

	conversions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "radar_conversions_total",
		Help: "Total number of coordinate conversions, labeled by operation and outcome.",
	}, []string{"operation", "outcome"})
	conversions, err = registerCounterVec(reg, conversions, "radar_conversions_total")
	if err != nil {
		return nil, err
	}

	convDurations := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "radar_conversion_duration_seconds",
		Help:    "Coordinate conversion latency in seconds.",
		Buckets: []float64{1e-6, 1e-5, 1e-4, 0.001, 0.01, 0.1, 1},
	}, []string{"operation"})
	convDurations, err = registerHistogramVec(reg, convDurations, "radar_conversion_duration_seconds")
	if err != nil {
		return nil, err
	}

	passes := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "radar_solver_passes",
		Help:    "Refraction solver iterations per profile-aware conversion.",
		Buckets: prometheus.LinearBuckets(1, 1, 10),
	})
	passes, err = registerHistogram(reg, passes, "radar_solver_passes")
	if err != nil {
		return nil, err
	}

	return &Collector{
		gatherer:           gatherer,
		HTTPRequests:       requests,
		HTTPDurations:      durations,
		Conversions:        conversions,
		ConversionDuration: convDurations,
		SolverPasses:       passes,
	}, nil
}

// Middleware records request counts and durations for every matched route.
func (c *Collector) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)

		if c == nil {
			return
		}
		route := routeTemplate(r)
		if c.HTTPRequests != nil {
			c.HTTPRequests.WithLabelValues(route, r.Method, strconv.Itoa(sw.status)).Inc()
		}
		if c.HTTPDurations != nil {
			c.HTTPDurations.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
		}
	})
}

// ObserveConversion records one conversion's duration and outcome.
func (c *Collector) ObserveConversion(operation string, d time.Duration, err error) {
	if c == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	if c.Conversions != nil {
		c.Conversions.WithLabelValues(operation, outcome).Inc()
	}
	if c.ConversionDuration != nil {
		c.ConversionDuration.WithLabelValues(operation).Observe(d.Seconds())
	}
}

// ObserveSolverPasses records how many passes a profile-aware solve took.
func (c *Collector) ObserveSolverPasses(passes int) {
	if c == nil || c.SolverPasses == nil {
		return
	}
	c.SolverPasses.Observe(float64(passes))
}

// Handler exposes a ready-to-use /metrics handler.
func (c *Collector) Handler() http.Handler {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// routeTemplate names the matched mux route, falling back to the raw path
// for unmatched requests.
func routeTemplate(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	return r.URL.Path
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogramVec(reg prometheus.Registerer, vec *prometheus.HistogramVec, name string) (*prometheus.HistogramVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogram(reg prometheus.Registerer, hist prometheus.Histogram, name string) (prometheus.Histogram, error) {
	if err := reg.Register(hist); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Histogram); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return hist, nil
}
