package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/fmicoin/market/internal/config"
	"github.com/fmicoin/market/internal/domain"
	"github.com/fmicoin/market/internal/engine"
	"github.com/fmicoin/market/internal/handler"
	"github.com/fmicoin/market/internal/service"
	"github.com/fmicoin/market/internal/storage"
	"github.com/fmicoin/market/internal/store"
)

func main() {
	healthcheck := flag.Bool("healthcheck", false, "Run health check against running server")
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

	// Set up slog logger with configured level.
	var logLevel slog.Level
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	conv := domain.Conversion{
		Rate:          cfg.ConversionRate,
		FiatTolerance: cfg.FiatTolerance,
	}

	// Stores and persistence.
	ledger := store.NewLedgerStore()
	wallets := store.NewWalletRegistry()
	book := store.NewOrderBook()
	files := storage.NewStore(cfg.DataDir, logger)

	// Engine. Execution logs go next to the data files.
	matcher := engine.NewMatcher(ledger, wallets, book, conv, cfg.DataDir)

	// Service.
	market := service.NewMarketService(ledger, wallets, book, matcher, files, conv)

	// The data directory must exist before the first order execution
	// tries to create its log file there.
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		logger.Error("failed to create data dir", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// A load failure is critical: serving against unknown state could
	// overwrite it on the next save.
	if err := market.Load(); err != nil {
		logger.Error("failed to load market data", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Router.
	router := handler.NewRouter(market, logger)

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

	// Graceful shutdown: stop HTTP server, then persist market state.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.String("error", err.Error()))
	}

	if err := market.Save(); err != nil {
		// Reported, not fatal: files may be in a partial state but the
		// ledger prefix already on disk is never rewritten.
		logger.Error("failed to save market data", slog.String("error", err.Error()))
	}

	logger.Info("server stopped")
}
