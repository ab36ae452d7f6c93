package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"prizeledger/internal/config"
	"prizeledger/internal/infrastructure"
	"prizeledger/internal/logger"

	_ "go.uber.org/automaxprocs"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, File: cfg.LogFile})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, cleanup, err := infrastructure.Bootstrap(ctx, cfg, log)
	if err != nil {
		log.Fatal("bootstrap failed", zap.Error(err))
	}
	defer cleanup()

	log.Info("prizeledger starting",
		zap.String("bus", cfg.BusProvider),
		zap.String("worker", cfg.WorkerProvider),
	)
	if err := app.Run(ctx); err != nil {
		log.Error("app stopped with error", zap.Error(err))
		return
	}
	log.Info("prizeledger stopped")
}
