package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tigerkidtools/calc-engine/api"
	"github.com/tigerkidtools/calc-engine/config"
	"github.com/tigerkidtools/calc-engine/engine"
	"github.com/tigerkidtools/calc-engine/engine/store"
	"github.com/tigerkidtools/calc-engine/store/sqlite"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(viper.GetViper())
			if err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			return serve(cmd.Context(), cfg)
		},
	}

	cmd.Flags().Int("port", 8080, "HTTP server port")
	cmd.Flags().String("cache-driver", "memory", "result cache (memory, sqlite, none)")
	cmd.Flags().String("cache-path", ":memory:", "SQLite cache path; \":memory:\" for in-memory")

	_ = viper.BindPFlag("server.port", cmd.Flags().Lookup("port"))
	_ = viper.BindPFlag("cache.driver", cmd.Flags().Lookup("cache-driver"))
	_ = viper.BindPFlag("cache.path", cmd.Flags().Lookup("cache-path"))

	return cmd
}

// openCache builds the configured ResultCache. The returned closer is never nil.
func openCache(cfg config.CacheConfig) (engine.ResultCache, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Driver {
	case config.CacheSQLite:
		s, err := sqlite.New(cfg.Path, cfg.MaxEntries)
		if err != nil {
			return nil, noop, fmt.Errorf("failed to open sqlite cache: %w", err)
		}
		return s, s.Close, nil
	case config.CacheNone:
		return engine.NopCache{}, noop, nil
	default:
		return store.NewMemory(cfg.MaxEntries), noop, nil
	}
}

func serve(ctx context.Context, cfg *config.Config) error {
	cache, closeCache, err := openCache(cfg.Cache)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeCache(); err != nil {
			log.Error().Err(err).Msg("failed to close cache")
		}
	}()

	handler := api.NewHandler(cache)
	handler.Version = version

	routerCfg := api.RouterConfig{CORSOrigins: cfg.Server.CORSOrigins}
	if cfg.RateLimit.Requests > 0 {
		limiter := api.NewRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window)
		defer limiter.Stop()
		routerCfg.RateLimiter = limiter
	}

	scheduler := api.NewPurgeScheduler(cache, cfg.Cache.PurgeInterval)
	scheduler.Start()
	defer scheduler.Stop()

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      api.NewRouter(handler, routerCfg),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server in goroutine
	serverErr := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", server.Addr).
			Str("cache", string(cfg.Cache.Driver)).
			Int("rate_limit", cfg.RateLimit.Requests).
			Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	// Wait for interrupt signal or a failed listener
	select {
	case err, ok := <-serverErr:
		if ok {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info().Msg("server stopped")
	return nil
}
