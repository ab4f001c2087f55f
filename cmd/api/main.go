package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/cli/browser"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/avrumiMuller/Mapty/internal/api"
	"github.com/avrumiMuller/Mapty/internal/config"
	"github.com/avrumiMuller/Mapty/internal/domain"
	"github.com/avrumiMuller/Mapty/internal/events"
	"github.com/avrumiMuller/Mapty/internal/observability"
	"github.com/avrumiMuller/Mapty/internal/persistence"
	httptransport "github.com/avrumiMuller/Mapty/internal/transport/http"
	"github.com/avrumiMuller/Mapty/internal/view"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		log.Fatalf("failed to load .env: %v", err)
	}
	cfg := config.Load()

	logger, err := observability.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, closeStore, err := persistence.Open(ctx, persistence.Options{
		Driver:      cfg.StoreDriver,
		Path:        cfg.StorePath,
		PostgresURL: cfg.PostgresURL,
	})
	if err != nil {
		logger.Fatal("failed to open store", zap.String("driver", cfg.StoreDriver), zap.Error(err))
	}
	defer closeStore()

	opts := []domain.Option{domain.WithLogger(logger.Named("tracker"))}
	if cfg.EventsEnabled() {
		producer := events.NewKafkaProducer(cfg.KafkaBrokers, events.WithBatchTimeout(cfg.KafkaBatchTimeout))
		defer producer.Close()

		publisherOpts := []events.Option{events.WithLogger(logger.Named("events"))}
		if cfg.SchemaRegistryURL != "" {
			publisherOpts = append(publisherOpts, events.WithSchemaRegistry(events.NewSchemaRegistryClient(cfg.SchemaRegistryURL)))
		}
		opts = append(opts, domain.WithPublisher(events.NewPublisher(producer, cfg.WorkoutTopic, publisherOpts...)))
	}

	var geo domain.Geolocator
	home, ok, err := cfg.Home()
	if err != nil {
		logger.Fatal("invalid HOME_POSITION", zap.Error(err))
	}
	if ok {
		geo = domain.StaticGeolocator{Position: home}
	}

	surface := view.NewSurface()
	tracker := domain.NewTracker(store, surface, surface, geo, cfg.Settings(), opts...)
	if err := tracker.Initialize(ctx); err != nil {
		if !errors.Is(err, domain.ErrGeolocationDenied) {
			logger.Fatal("failed to initialise tracker", zap.Error(err))
		}
		logger.Warn("starting without a map", zap.Error(err))
	}

	router := mux.NewRouter()
	api.NewHandler(tracker, surface, api.WithLogger(logger.Named("api"))).RegisterRoutes(router)
	router.Handle("/metrics", promhttp.Handler())

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", api.RequestIDHeader},
		AllowCredentials: true,
	})

	server := httptransport.NewServer(httptransport.DefaultServerConfig(cfg.HTTPAddress), api.RequestLogger(logger.Named("http"))(corsHandler.Handler(router)))

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("workout tracker listening", zap.String("address", cfg.HTTPAddress))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	if cfg.OpenBrowser {
		if err := browser.OpenURL(localURL(cfg.HTTPAddress) + "/v1/view/list"); err != nil {
			logger.Warn("could not open browser", zap.Error(err))
		}
	}

	<-shutdownCh
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}

func localURL(address string) string {
	if strings.HasPrefix(address, ":") {
		return "http://localhost" + address
	}
	return "http://" + address
}
