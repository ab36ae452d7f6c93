package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"prizeledger/internal/config"
	"prizeledger/internal/logger"
	"prizeledger/internal/repository"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{Level: cfg.LogLevel, Format: "console"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	flag.Parse()
	args := flag.Args()

	if len(args) < 1 {
		fmt.Println("Error: migration command is required")
		fmt.Println("Usage: go run cmd/migrate/main.go [command] [args]")
		fmt.Println("Commands: up, down, status, redo, version")
		os.Exit(1)
	}

	command := args[0]

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	log.Info("starting migration", zap.String("command", command))

	if err := repository.RunMigrations(ctx, cfg.DSN(), command, log, args[1:]...); err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}

	log.Info("migration finished")
}
