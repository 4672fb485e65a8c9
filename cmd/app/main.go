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

	"intimacoes/cmd"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: configs.SlogLevel()}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, configs, logger)
	stop()
	if err != nil {
		log.Fatalf("%v", err)
	}
}

// run serves until ctx is done. Every resource opened here is released before it returns,
// including on startup failures.
func run(ctx context.Context, configs cmd.Config, logger *slog.Logger) error {
	app, err := cmd.NewCompositionRoot(ctx, configs, logger)
	if err != nil {
		return fmt.Errorf("failed to build application: %w", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Error("Failed to close snapshot store", "error", err)
		}
	}()

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return fmt.Errorf("failed to start jobs: %w", err)
	}
	defer jobManager.StopAll()

	e, err := app.CreateRouter()
	if err != nil {
		return fmt.Errorf("failed to build router: %w", err)
	}
	if err = startWebServer(ctx, e, configs.HTTPPort, logger); err != nil {
		return err
	}

	// a save that failed during the last requests gets one more chance before exit
	if err = app.Store().Flush(context.Background()); err != nil {
		logger.Error("Unsaved changes lost on shutdown", "error", err)
	}
	return nil
}

func getConfigs() cmd.Config {
	// .env is optional: plain environment variables work the same
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	config := cmd.Config{
		HTTPPort:               getEnv("HTTP_PORT", "8080"),
		StorageDriver:          getEnv("STORAGE_DRIVER", cmd.StorageSQLite),
		SQLitePath:             os.Getenv("SQLITE_PATH"),
		DBHost:                 os.Getenv("DB_HOST"),
		DBPort:                 getEnv("DB_PORT", "5432"),
		DBUser:                 os.Getenv("DB_USER"),
		DBPassword:             os.Getenv("DB_PASSWORD"),
		DBName:                 os.Getenv("DB_NAME"),
		DBSslMode:              os.Getenv("DB_SSLMODE"),
		DBDriver:               os.Getenv("DB_DRIVER"),
		DeliveryFee:            os.Getenv("DELIVERY_FEE"),
		ArchivalDelay:          os.Getenv("ARCHIVAL_DELAY"),
		AssistantBaseURL:       os.Getenv("ASSISTANT_BASE_URL"),
		AssistantAPIKey:        os.Getenv("ASSISTANT_API_KEY"),
		AssistantModel:         os.Getenv("ASSISTANT_MODEL"),
		AssistantTimeout:       os.Getenv("ASSISTANT_TIMEOUT"),
		SnapshotFlushSchedule:  os.Getenv("SNAPSHOT_FLUSH_SCHEDULE"),
		DashboardStatsSchedule: os.Getenv("DASHBOARD_STATS_SCHEDULE"),
		LogLevel:               os.Getenv("LOG_LEVEL"),
	}
	return config
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func startWebServer(ctx context.Context, e *echo.Echo, port string, logger *slog.Logger) error {
	serveErr := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", "port", port)
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}
	return nil
}
