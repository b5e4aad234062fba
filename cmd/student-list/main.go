// main is the entry point of the student list web server.
//
// STARTUP SEQUENCE:
//  1. Load configuration from a YAML file
//  2. Initialise the logger
//  3. Open the SQLite outcome history
//  4. Build the directory client and the mount registry
//  5. Register all HTTP routes and start the server in a goroutine
//  6. Prune settled pages in the background
//  7. Block until an OS signal (Ctrl+C / kill) arrives
//  8. Gracefully shut down: finish in-flight requests, unmount, exit
//
// RUNNING THE SERVER:
//
//	go run ./cmd/student-list --config=config/local.yaml
//
// or (with the environment variable):
//
//	CONFIG_PATH=config/local.yaml go run ./cmd/student-list
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aanand-mishra/student-list/internal/config"
	"github.com/aanand-mishra/student-list/internal/directory"
	"github.com/aanand-mishra/student-list/internal/http/router"
	"github.com/aanand-mishra/student-list/internal/logging"
	"github.com/aanand-mishra/student-list/internal/mounts"
	"github.com/aanand-mishra/student-list/internal/storage/sqlite"
)

func main() {
	// ── 1. Load Config ────────────────────────────────────────────────────
	cfg := config.MustLoad()

	// ── 2. Initialise Logger ──────────────────────────────────────────────
	log := logging.Setup(cfg.Env, os.Stdout)
	slog.SetDefault(log)

	log.Info("starting student-list",
		slog.String("env", cfg.Env),
		slog.String("version", "1.0.0"),
	)

	// ── 3. Initialise Storage (Database) ──────────────────────────────────
	storage, err := sqlite.New(cfg)
	if err != nil {
		log.Error("failed to initialise storage",
			slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer storage.Close()

	log.Info("storage initialised",
		slog.String("path", cfg.StoragePath))

	// ── 4. Directory client + mount registry ──────────────────────────────
	client := directory.New(cfg.Source.URL)
	registry := mounts.New(client, storage, log)

	log.Info("reading students from", slog.String("url", client.URL))

	// ── 5. Register HTTP Routes and start the server ──────────────────────
	server := &http.Server{
		Addr:    cfg.HTTPServer.Addr,
		Handler: router.New(registry, storage),

		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("server started", slog.String("address", cfg.HTTPServer.Addr))

		// ListenAndServe returns http.ErrServerClosed when Shutdown() is
		// called. That's expected, we don't want to log it as an error.
		if err := server.ListenAndServe(); err != nil &&
			!errors.Is(err, http.ErrServerClosed) {
			log.Error("server encountered an error",
				slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// ── 6. Prune settled pages ────────────────────────────────────────────
	pruneCtx, stopPrune := context.WithCancel(context.Background())
	defer stopPrune()
	go prune(pruneCtx, log, registry, cfg.HTTPServer.MountTTL)

	// ── 7. Wait for Shutdown Signal ───────────────────────────────────────
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	<-done

	log.Info("shutdown signal received, stopping server...")

	// ── 8. Graceful Shutdown ──────────────────────────────────────────────
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("failed to shutdown server gracefully",
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	// In-flight fetches are cancelled; their results are dropped.
	registry.UnmountAll()

	log.Info("server stopped gracefully")
}

// prune forgets settled pages older than ttl, checking every ttl/2.
func prune(ctx context.Context, log *slog.Logger, registry *mounts.Registry, ttl time.Duration) {
	if ttl <= 0 {
		return
	}

	ticker := time.NewTicker(ttl / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := registry.Prune(ttl); n > 0 {
				log.Debug("pruned settled mounts",
					slog.Int("removed", n),
					slog.Int("remaining", registry.Len()))
			}
		}
	}
}
