package main

import (
	"context"
	"errors"
	"os"
	"time"

	"superstore/internal/cli"
	"superstore/internal/core"
	"superstore/internal/dataset"
	apphttp "superstore/internal/http"
	"superstore/internal/log"
	"superstore/internal/metrics"
	"superstore/internal/services"
)

const shutdownTimeout = 30 * time.Second

func main() {
	cli.LoadEnvFile()
	cfg, logger := cli.LoadAndValidateConfig(os.Stdout)

	ctx, stop := cli.SignalContext(context.Background())
	defer stop()

	res := cli.InitBackend(ctx, logger, cfg)
	if res.Cleanup != nil {
		defer func() {
			if err := res.Cleanup(); err != nil {
				logger.Warn("Data source cleanup failed", log.FieldError, err)
			}
		}()
	}

	m := metrics.New()
	loader := dataset.NewLoader(res.Reader,
		dataset.WithLogger(logger),
		dataset.WithObserver(m))

	// Load up front so the first request does not pay for it. A missing
	// source is served as a notice; an unreadable one cannot be served.
	if _, _, err := loader.Load(ctx); err != nil && !errors.Is(err, core.ErrSourceNotFound) {
		logger.Error("Failed to load dataset", log.FieldError, err, log.FieldOperation, log.OpStartup)
		os.Exit(1)
	}

	svc := services.NewDashboardService(loader,
		services.WithLogger(logger),
		services.WithObserver(m))

	srv := apphttp.NewServer(apphttp.Config{
		Addr:           cfg.Addr(),
		RequestTimeout: cfg.RequestTimeout,
		CurrencySymbol: cfg.CurrencySymbol,
	}, svc, m, logger)

	logger.Info("Starting superstore server", "port", cfg.Port, log.FieldSource, cfg.DataSource)
	if err := cli.RunServer(ctx, &srv.Server, shutdownTimeout, logger); err != nil {
		logger.Error("Server error", log.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
