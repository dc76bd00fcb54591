package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/jasonlvhit/gocron"
	"github.com/peterbourgon/ff"

	"github.com/signalsfoundry/radar-geodesy/internal/api"
	"github.com/signalsfoundry/radar-geodesy/internal/logging"
	"github.com/signalsfoundry/radar-geodesy/internal/observability"
	"github.com/signalsfoundry/radar-geodesy/internal/sites"
	"github.com/signalsfoundry/radar-geodesy/track"
	"github.com/signalsfoundry/radar-geodesy/weather"
)

func main() {
	fs := flag.NewFlagSet("radar-server", flag.ExitOnError)
	var (
		httpAddr       = fs.String("http-addr", ":8080", "TCP address the HTTP API listens on")
		metricsAddr    = fs.String("metrics-addr", ":9090", "HTTP address for Prometheus /metrics")
		sitesPath      = fs.String("sites", "configs/sites.yaml", "Path to the radar site registry")
		weatherPath    = fs.String("weather", "", "Path to a GRIB2 surface file; empty disables weather")
		weatherRefresh = fs.Uint64("weather-refresh", 900, "Seconds between weather refreshes")
		tracksPath     = fs.String("tracks", "", "Optional CSV report batch loaded at startup")
	)
	if err := ff.Parse(fs, os.Args[1:], ff.WithEnvVarNoPrefix()); err != nil {
		fmt.Fprintln(os.Stderr, "parse flags:", err)
		os.Exit(2)
	}

	log := logging.NewFromEnv()
	ctx := context.Background()

	tracingShutdown, err := observability.InitTracing(ctx, observability.TracingConfigFromEnv(), log)
	if err != nil {
		log.Error(ctx, "failed to initialise tracing", logging.String("error", err.Error()))
		os.Exit(1)
	}

	collector, err := observability.NewCollector(nil)
	if err != nil {
		log.Error(ctx, "failed to initialise metrics collector", logging.String("error", err.Error()))
		os.Exit(1)
	}
	ingest, err := observability.NewIngestCollector(nil)
	if err != nil {
		log.Error(ctx, "failed to initialise ingest collector", logging.String("error", err.Error()))
		os.Exit(1)
	}

	metricsSrv := serveMetrics(*metricsAddr, collector, log)

	registry, err := sites.Load(*sitesPath)
	if err != nil {
		log.Error(ctx, "failed to load site registry",
			logging.String("path", *sitesPath),
			logging.String("error", err.Error()),
		)
		os.Exit(1)
	}
	log.Info(ctx, "loaded site registry",
		logging.String("path", *sitesPath),
		logging.Int("sites", registry.Len()),
	)

	store := track.NewStore()
	loadTracks(log, store, ingest, *tracksPath)

	cfg := api.Config{
		Addr:    *httpAddr,
		Log:     log,
		Sites:   registry,
		Tracks:  store,
		Metrics: collector,
		Ingest:  ingest,
	}

	var scheduler *gocron.Scheduler
	if *weatherPath != "" {
		source := weather.NewSource(*weatherPath)
		refresh := refreshJob(log, source, ingest)
		refresh()

		scheduler = gocron.NewScheduler()
		job := scheduler.Every(*weatherRefresh).Seconds()
		job.Do(refresh)
		go scheduler.Start()

		cfg.Weather = source
	}

	server, err := api.New(cfg)
	if err != nil {
		log.Error(ctx, "failed to build API server", logging.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info(ctx, "starting radar API server", logging.String("addr", *httpAddr))
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error(ctx, "http server exited", logging.String("error", err.Error()))
		}
	}()

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	<-stopCtx.Done()

	log.Info(ctx, "shutting down radar server")
	if scheduler != nil {
		scheduler.Clear()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = server.Shutdown(shutdownCtx)
	if metricsSrv != nil {
		_ = metricsSrv.Shutdown(shutdownCtx)
	}
	observability.ShutdownWithTimeout(context.Background(), tracingShutdown, log)
}

func serveMetrics(addr string, collector *observability.Collector, log logging.Logger) *http.Server {
	if collector == nil {
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", collector.Handler())

	srv := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Warn(context.Background(), "metrics server exited", logging.String("error", err.Error()))
		}
	}()

	log.Info(context.Background(), "serving Prometheus metrics", logging.String("addr", addr))
	return srv
}

// refreshJob reloads the weather source and publishes the outcome and the
// dataset age to the ingest metrics.
func refreshJob(log logging.Logger, source *weather.Source, ingest *observability.IngestCollector) func() {
	return func() {
		ctx := context.Background()
		start := time.Now()
		err := source.Refresh()
		ingest.ObserveRefresh(time.Since(start), err)
		if err != nil {
			log.Warn(ctx, "weather refresh failed", logging.String("error", err.Error()))
		} else {
			log.Info(ctx, "weather dataset refreshed", logging.String("took", time.Since(start).String()))
		}
		if age, ok := source.Age(time.Now()); ok {
			ingest.SetDatasetAge(age)
		}
	}
}

func loadTracks(log logging.Logger, store *track.Store, ingest *observability.IngestCollector, path string) {
	if path == "" || store == nil {
		return
	}

	f, err := os.Open(path)
	if err != nil {
		log.Warn(context.Background(), "skipping track load", logging.String("path", path), logging.String("error", err.Error()))
		return
	}
	defer f.Close()

	parsed, skipped, err := track.ParseCSV(f)
	if err != nil {
		log.Warn(context.Background(), "failed to parse track reports", logging.String("path", path), logging.String("error", err.Error()))
		return
	}
	added := store.Ingest(parsed)
	ingest.AddIngestedPoints(added)
	ingest.SetTrackedAircraft(store.Size())

	log.Info(context.Background(), "loaded track reports",
		logging.String("path", path),
		logging.Int("aircraft", len(parsed)),
		logging.Int("points", added),
		logging.Int("skipped", skipped),
	)
}
