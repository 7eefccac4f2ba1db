package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kmbeta/internal/config"
	"kmbeta/internal/kmb"
	"kmbeta/internal/server"
	"kmbeta/internal/storage"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	cfg := config.Load()

	// CLI flags
	flag.IntVar(&cfg.Port, "port", cfg.Port, "HTTP server port")
	flag.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "KMB open data API base URL")
	flag.StringVar(&cfg.CacheBackend, "cache", cfg.CacheBackend, "Stable data cache: memory or sqlite")
	flag.StringVar(&cfg.CacheDSN, "cache-dsn", cfg.CacheDSN, "SQLite DSN for the sqlite cache")
	flag.DurationVar(&cfg.RefreshInterval, "refresh", cfg.RefreshInterval, "Dashboard refresh interval")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		logger.Error("bad configuration", "error", err)
		os.Exit(1)
	}

	// Cancelled on SIGINT/SIGTERM for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var store kmb.Store
	switch cfg.CacheBackend {
	case "sqlite":
		db, err := storage.Open(cfg.CacheDSN, logger)
		if err != nil {
			logger.Error("failed to open cache database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		if n, err := db.Count(ctx); err == nil {
			logger.Info("sqlite cache opened", "entries", n)
		}
		store = db
	default:
		store = kmb.NewMemoryStore()
	}

	upstream := kmb.NewHTTPFetcher(logger)
	client := kmb.NewClient(
		kmb.NewEndpoints(cfg.BaseURL),
		kmb.NewPersistent(store, upstream, logger),
		kmb.NewPassThrough(upstream),
		logger,
	)

	srv := server.New(cfg, client, logger)

	// Load the route catalog before serving dashboards
	go warmUp(ctx, client, srv, logger)

	if err := srv.ListenAndServe(ctx); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// warmUp fetches the route catalog until it is non-empty, then marks the
// server ready. Empty results are not cached, so each attempt hits upstream.
func warmUp(ctx context.Context, client *kmb.Client, srv *server.Server, logger *slog.Logger) {
	const retry = 5 * time.Second
	for {
		start := time.Now()
		if ids := client.RouteIDs(ctx); len(ids) > 0 {
			logger.Info("route catalog loaded", "routes", len(ids), "duration", time.Since(start).Round(time.Millisecond))
			srv.SetReady()
			return
		}
		logger.Warn("route catalog unavailable, retrying", "in", retry)
		select {
		case <-ctx.Done():
			return
		case <-time.After(retry):
		}
	}
}
