package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"tripsplit/internal/cli"
	apphttp "tripsplit/internal/http"
	"tripsplit/internal/render"
	"tripsplit/internal/services"
	"tripsplit/internal/store"
)

func main() {
	logger := cli.SetupLogger()
	cli.LoadEnvFile()
	cfg := cli.LoadAndValidateConfig(logger)

	ctx := context.Background()
	records := cli.OpenRecordStore(ctx, logger, cfg)

	st, err := store.New(ctx, store.Config{
		Records:  records.Records,
		Debounce: cfg.SaveDebounce,
	})
	if err != nil {
		logger.Error("Failed to load trip state", "error", err)
		os.Exit(1)
	}

	card, err := render.NewCard()
	if err != nil {
		logger.Error("Failed to prepare summary card renderer", "error", err)
		os.Exit(1)
	}

	shares := services.NewShareService(st, card, cfg.CaptureSettle)
	transfers := services.NewTransferService(st)

	srv := apphttp.NewServer(":"+cfg.Port, st, shares, transfers)

	shutdownCtx, done := cli.GracefulShutdown(logger, 30*time.Second, func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(stopCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		if err := st.Close(); err != nil {
			logger.Error("Closing trip store failed", "error", err)
		}
		if records.Cleanup != nil {
			if err := records.Cleanup(); err != nil {
				logger.Error("Backend cleanup failed", "error", err)
			}
		}
	})

	logger.Info("Starting tripsplit server", "port", cfg.Port, "backend", cfg.DataBackend)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	cli.WaitForShutdown(shutdownCtx, done)
	logger.Info("Server stopped gracefully")
}
