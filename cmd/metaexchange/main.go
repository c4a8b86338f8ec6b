package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/efreitasn/metaexchange/internal/config"
	"github.com/efreitasn/metaexchange/internal/engine"
	"github.com/efreitasn/metaexchange/internal/handler"
	"github.com/efreitasn/metaexchange/internal/service"
	"github.com/efreitasn/metaexchange/internal/store"
)

func main() {
	healthcheck := flag.Bool("healthcheck", false, "Run health check against running server")
	console := flag.Bool("console", false, "Run a single execution in the terminal instead of serving HTTP")
	side := flag.String("side", "", "Order type for console mode (buy or sell)")
	amount := flag.String("amount", "", "BTC amount for console mode")
	snapshot := flag.String("snapshot", "", "Snapshot file, overrides SNAPSHOT_PATH")
	flag.Parse()

	// Handle -healthcheck flag: HTTP GET to localhost:PORT/healthz, exit 0/1.
	if *healthcheck {
		port := os.Getenv("PORT")
		if port == "" {
			port = "8080"
		}
		resp, err := http.Get(fmt.Sprintf("http://localhost:%s/healthz", port))
		if err != nil || resp.StatusCode != http.StatusOK {
			os.Exit(1)
		}
		os.Exit(0)
	}

	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if *snapshot != "" {
		cfg.SnapshotPath = *snapshot
	}

	consoleMode := *console || *side != "" || *amount != ""

	// Console output owns stdout, so logs go to stderr there.
	var logOut io.Writer = os.Stdout
	if consoleMode {
		logOut = os.Stderr
	}
	logger := newLogger(logOut, cfg.LogLevel)
	slog.SetDefault(logger)

	// Stores, engine, services.
	venueStore := store.NewVenueStore()
	executor := engine.NewExecutor(cfg.MaxCandidates, nil)
	execSvc := service.NewExecutionService(venueStore, executor, logger)
	venueSvc := service.NewVenueService(venueStore, cfg.SnapshotPath, logger)

	if consoleMode {
		if _, err := venueSvc.Reload(); err != nil {
			fmt.Fprintf(os.Stderr, "failed to load snapshot: %v\n", err)
			os.Exit(1)
		}
		if err := runConsole(execSvc, *side, *amount, os.Stdin, os.Stdout); err != nil {
			os.Exit(1)
		}
		os.Exit(0)
	}

	// The server starts without a snapshot if the file is unusable; requests
	// get 503 until POST /api/snapshot/reload succeeds.
	if _, err := venueSvc.Reload(); err != nil {
		logger.Warn("starting without a venue snapshot", slog.String("path", cfg.SnapshotPath))
	}

	// Router.
	router := handler.NewRouter(execSvc, venueSvc, logger)

	// Configure HTTP server.
	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	// Start HTTP server in a goroutine.
	go func() {
		logger.Info("server starting", slog.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Wait for SIGINT/SIGTERM.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info("shutdown signal received", slog.String("signal", sig.String()))

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.String("error", err.Error()))
	}

	logger.Info("server stopped")
}

// newLogger builds the JSON slog logger for the configured level.
func newLogger(w io.Writer, level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: logLevel,
	}))
}
