// Command api runs the stateless compute API for transaction
// deduplication and rule-based categorization. The dashboard backend
// owns persistence; this server only evaluates what each request
// carries.
package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/vishalnatekar/myfinancepal/internal/api"
	"github.com/vishalnatekar/myfinancepal/internal/domain/dedupe"
	"github.com/vishalnatekar/myfinancepal/internal/domain/rules"
	"github.com/vishalnatekar/myfinancepal/internal/infrastructure/config"
	"github.com/vishalnatekar/myfinancepal/internal/infrastructure/logging"
)

func main() {
	cfg := config.LoadOrEnv()
	logger := logging.NewLoggerWithSystem(cfg.Observability.Logging, "api")

	detectorConfig := dedupe.DefaultConfig()
	detectorConfig.SimilarityThreshold = cfg.Engine.Dedupe.SimilarityThreshold
	detectorConfig.DateWindowDays = cfg.Engine.Dedupe.DateWindowDays
	detector := dedupe.NewDetector(detectorConfig, logger)

	engine := rules.NewEngine(rules.Config{
		MaxPatternLength: cfg.Engine.Rules.MaxPatternLength,
	}, logger)

	server := api.NewServer(api.Config{
		Port:           strconv.Itoa(cfg.Server.Port),
		AllowedOrigins: cfg.Server.AllowedOrigins,
	}, detector, engine, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("shutdown failed", "error", err)
			os.Exit(1)
		}
	}
}
