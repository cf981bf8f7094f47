package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/neexbeast/tourinfo/internal/api"
	"github.com/neexbeast/tourinfo/internal/cache"
	"github.com/neexbeast/tourinfo/internal/config"
	"github.com/neexbeast/tourinfo/internal/flights"
	"github.com/neexbeast/tourinfo/internal/journey"
	"github.com/neexbeast/tourinfo/internal/transport"
	"github.com/neexbeast/tourinfo/internal/upstream"
)

func main() {
	var configPath string

	root := &cobra.Command{
		Use:           "tourinfo",
		Short:         "Serve journey, rail and flight information for travellers in Germany",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
			return run(cmd.Context(), cfg, log)
		},
	}
	root.Flags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file")

	if err := root.ExecuteContext(context.Background()); err != nil {
		slog.New(slog.NewJSONHandler(os.Stdout, nil)).Error("server exited with error", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	// Pick the response cache: shared Redis when configured, in-process otherwise.
	var (
		store  cache.Store
		pinger api.Pinger
	)
	if cfg.RedisURL != "" {
		redisClient, err := cache.Connect(ctx, cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("connecting to redis: %w", err)
		}
		defer func() { _ = redisClient.Close() }()
		r := cache.NewRedis(redisClient)
		store, pinger = r, r
		log.Info("using redis cache")
	} else {
		store = cache.NewMemory(cfg.CacheMaxEntries)
		log.Info("using in-memory cache", "max_entries", cfg.CacheMaxEntries)
	}

	// Wire dependencies.
	up := upstream.NewClient(cfg.UpstreamTimeout, store, log)
	planner := journey.NewPlanner(cfg.JourneyPlannerURL, up)
	rail := transport.NewClient(cfg.TransportURL, up, transport.TTLs{Stations: cfg.StationCacheTTL})
	flightClient := flights.NewClient(cfg.AmadeusURL, cfg.FlightCredentials(), up, flights.TTLs{}, log)
	if !flightClient.Configured() {
		log.Warn("flight provider credentials not set, serving sample offers and local airport data")
	}

	handlers := api.NewHandlers(planner, rail, flightClient, log)
	router := api.NewRouter(handlers, pinger, cfg.RateLimitPerMinute, log)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Error("server goroutine panicked", "recover", r)
				errCh <- fmt.Errorf("server panicked: %v", r)
			}
		}()
		log.Info("server starting", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("listening: %w", err)
		}
	}()

	select {
	case sig := <-quit:
		log.Info("shutdown signal received", "signal", sig)
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}

	log.Info("server shut down cleanly")
	return nil
}
