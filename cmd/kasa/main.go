package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"kasa/internal/cache"
	"kasa/internal/config"
	"kasa/internal/filterstate"
	apphttp "kasa/internal/http"
	"kasa/internal/log"
	ports "kasa/internal/sheets"
	gsheet "kasa/internal/sheets/google"
	mem "kasa/internal/sheets/memory"
)

func main() {
	// Local development convenience; a missing .env is not an error.
	_ = godotenv.Load()

	logger := log.New(log.Config{Component: log.ComponentApp})
	log.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", log.FieldError, err)
		os.Exit(1)
	}

	var source ports.SnapshotSource
	switch cfg.DataBackend {
	case "sheets":
		cli, err := gsheet.New(context.Background(), gsheet.Config{
			SpreadsheetID:     cfg.SpreadsheetID,
			TransactionsRange: cfg.TransactionsRange,
			AccountsRange:     cfg.AccountsRange,
			CategoriesRange:   cfg.CategoriesRange,
			CredentialsJSON:   cfg.ServiceAccountJSON,
			CredentialsFile:   cfg.ServiceAccountFile,
		})
		if err != nil {
			logger.Error("failed to initialize Google Sheets backend",
				log.FieldError, err, log.FieldBackend, cfg.DataBackend)
			os.Exit(1)
		}
		source = cli
		logger.Info("initialized Google Sheets backend",
			log.FieldBackend, cfg.DataBackend, log.FieldRange, cfg.TransactionsRange)
	default:
		store := mem.NewFromFile(cfg.SeedFile)
		source = store
		logger.Info("initialized memory backend",
			log.FieldBackend, cfg.DataBackend, "store", store.String())
	}

	snaps := cache.New(source, cfg.SnapshotTTL)
	filters := filterstate.NewStore(filterstate.Selection{})

	srv := apphttp.NewServer(cfg, snaps, filters, logger)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 30 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown error", log.FieldError, err)
		}
		cancel()
	}()

	logger.Info("starting kasa server",
		"port", cfg.Port, log.FieldBackend, cfg.DataBackend, "snapshot_ttl", cfg.SnapshotTTL.String())
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server error", log.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("server stopped gracefully")
}
