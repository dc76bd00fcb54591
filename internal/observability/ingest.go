package observability

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// IngestCollector exposes metrics for the background feeds: weather dataset
// refreshes and track ingestion.
type IngestCollector struct {
	gatherer prometheus.Gatherer

	WeatherRefreshDuration prometheus.Histogram
	WeatherRefreshFailures prometheus.Counter
	WeatherDatasetAge      prometheus.Gauge
	TrackPointsIngested    prometheus.Counter
	TrackedAircraft        prometheus.Gauge
}

// NewIngestCollector registers the feed metrics against the provided
// registerer, defaulting to the global Prometheus registry when nil.
func NewIngestCollector(reg prometheus.Registerer) (*IngestCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	refreshDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "weather_refresh_duration_seconds",
		Help:    "Time spent reloading the weather dataset from disk.",
		Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 15, 60},
	})
	refreshDuration, err := registerHistogram(reg, refreshDuration, "weather_refresh_duration_seconds")
	if err != nil {
		return nil, err
	}

	refreshFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "weather_refresh_failures_total",
		Help: "Total number of failed weather dataset refreshes.",
	})
	refreshFailures, err = registerCounter(reg, refreshFailures, "weather_refresh_failures_total")
	if err != nil {
		return nil, err
	}

	datasetAge := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "weather_dataset_age_seconds",
		Help: "Age of the cached weather dataset.",
	})
	datasetAge, err = registerGauge(reg, datasetAge, "weather_dataset_age_seconds")
	if err != nil {
		return nil, err
	}

	pointsIngested := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "track_points_ingested_total",
		Help: "Total number of track points accepted into the store.",
	})
	pointsIngested, err = registerCounter(reg, pointsIngested, "track_points_ingested_total")
	if err != nil {
		return nil, err
	}

	trackedAircraft := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "track_store_aircraft",
		Help: "Number of aircraft currently held in the track store.",
	})
	trackedAircraft, err = registerGauge(reg, trackedAircraft, "track_store_aircraft")
	if err != nil {
		return nil, err
	}

	return &IngestCollector{
		gatherer:               gatherer,
		WeatherRefreshDuration: refreshDuration,
		WeatherRefreshFailures: refreshFailures,
		WeatherDatasetAge:      datasetAge,
		TrackPointsIngested:    pointsIngested,
		TrackedAircraft:        trackedAircraft,
	}, nil
}

// ObserveRefresh records one weather refresh attempt.
func (c *IngestCollector) ObserveRefresh(d time.Duration, err error) {
	if c == nil {
		return
	}
	if c.WeatherRefreshDuration != nil {
		c.WeatherRefreshDuration.Observe(d.Seconds())
	}
	if err != nil && c.WeatherRefreshFailures != nil {
		c.WeatherRefreshFailures.Inc()
	}
}

// SetDatasetAge publishes the cached dataset's age.
func (c *IngestCollector) SetDatasetAge(age time.Duration) {
	if c == nil || c.WeatherDatasetAge == nil {
		return
	}
	c.WeatherDatasetAge.Set(age.Seconds())
}

// AddIngestedPoints counts points accepted into the track store.
func (c *IngestCollector) AddIngestedPoints(n int) {
	if c == nil || c.TrackPointsIngested == nil || n <= 0 {
		return
	}
	c.TrackPointsIngested.Add(float64(n))
}

// SetTrackedAircraft updates the store size gauge.
func (c *IngestCollector) SetTrackedAircraft(n int) {
	if c == nil || c.TrackedAircraft == nil {
		return
	}
	c.TrackedAircraft.Set(float64(n))
}

// Gatherer returns the Prometheus gatherer associated with the collector.
func (c *IngestCollector) Gatherer() prometheus.Gatherer {
	if c == nil || c.gatherer == nil {
		return prometheus.DefaultGatherer
	}
	return c.gatherer
}

func registerCounter(reg prometheus.Registerer, counter prometheus.Counter, name string) (prometheus.Counter, error) {
	if err := reg.Register(counter); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return counter, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}
