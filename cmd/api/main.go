// @title Event Finder API
// @version 1.0
// @description Nearby event discovery: location, category filters and distance-sorted events.
// @BasePath /
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eventfinder/config"
	_ "eventfinder/docs"
	"eventfinder/internal/adapters/geolocation"
	delivery "eventfinder/internal/delivery/http"
	"eventfinder/internal/delivery/http/controllers"
	"eventfinder/internal/delivery/http/middleware"
	"eventfinder/internal/domain"
	"eventfinder/internal/metrics"
	"eventfinder/internal/repository/fixture"
	"eventfinder/internal/services"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
)

const (
	userAgent       = "eventfinder/1.0"
	shutdownTimeout = 5 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}
	logger := config.NewLogger()
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	catalog, err := loadCatalog(cfg.CatalogFile)
	if err != nil {
		return err
	}
	filters, err := domain.ParseCategories(cfg.DefaultFilters)
	if err != nil {
		return fmt.Errorf("DEFAULT_FILTERS: %w", err)
	}
	defaultFilters := domain.AllFilters()
	if len(cfg.DefaultFilters) > 0 {
		defaultFilters = domain.NewFilterSet(filters...)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	permission, positions, err := newLocationAdapters(cfg)
	if err != nil {
		return err
	}

	eventService := services.NewEventService(fixture.NewEventRepository(catalog), logger, m, cfg.QueryDelay, cfg.ContextTimeout)
	locationService := services.NewLocationService(permission, positions, logger, m, cfg.LocationTimeout, cfg.ValidateCoordinates)
	stateService := services.NewAppStateService(locationService, eventService, defaultFilters, logger, m)

	router := delivery.NewRouter(
		controllers.NewStateController(logger, stateService),
		controllers.NewEventController(logger, eventService, stateService),
		promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	)
	var handler http.Handler = router
	handler = middleware.CORS(cfg.CORSAllowedOrigins, handler)
	handler = middleware.LoggingMiddleware(logger, m, handler)
	handler = middleware.RequestID(handler)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting server", "addr", srv.Addr, "env", cfg.Environment, "location_source", cfg.LocationSource)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		st := stateService.Initialize(gctx)
		if st.Error != "" {
			logger.Warn("initial load failed", "kind", st.ErrorKind, "err", st.Error)
			return nil
		}
		logger.Info("initial load complete", "events", len(st.Events))
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func loadCatalog(path string) ([]domain.EventPrototype, error) {
	if path == "" {
		return fixture.DefaultCatalog()
	}
	return fixture.LoadCatalogFile(path)
}

func newLocationAdapters(cfg *config.Config) (domain.PermissionRequester, domain.PositionSource, error) {
	status, err := geolocation.ParsePermission(cfg.LocationPermission)
	if err != nil {
		return nil, nil, err
	}
	permission := geolocation.NewConfigPermission(status)

	switch cfg.LocationSource {
	case config.LocationSourceIP:
		client := &http.Client{Timeout: cfg.LocationTimeout}
		return permission, geolocation.NewIPSource(client, cfg.IPLookupURL, userAgent), nil
	default:
		return permission, geolocation.NewStaticSource(domain.NewCoordinate(cfg.StaticLatitude, cfg.StaticLongitude)), nil
	}
}
