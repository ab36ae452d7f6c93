package infrastructure

import (
	"context"
	"fmt"

	"prizeledger/internal/config"
	"prizeledger/internal/prize"
	"prizeledger/internal/repository"
	"prizeledger/internal/service"
	transportGRPC "prizeledger/internal/transport/grpc"
	transportHTTP "prizeledger/internal/transport/http"
	transportNATS "prizeledger/internal/transport/nats"
	"prizeledger/internal/worker"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// Bootstrap connects to every backing service and wires up the application.
// Returns the App, a cleanup function, or an error.
func Bootstrap(ctx context.Context, cfg *config.Config, log *zap.Logger) (*App, func(), error) {
	table, err := loadTable(cfg.OddsFile)
	if err != nil {
		return nil, nil, err
	}
	log.Info("prize table loaded",
		zap.Float64("win_probability", table.WinProbability()),
		zap.Float64("expected_return", table.ExpectedReturn()),
	)

	db, err := connectPostgres(ctx, cfg.DSN())
	if err != nil {
		return nil, nil, fmt.Errorf("postgres: %w", err)
	}

	rdb, err := connectRedis(ctx, cfg.RedisAddr())
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("redis: %w", err)
	}

	var cleanupFns []func()
	cleanupFns = append(cleanupFns, func() {
		db.Close()
		_ = rdb.Close()
	})

	// ── Infrastructure wiring ──────────────────────────────────────────────────
	var bus repository.MessageBus
	var nc *nats.Conn
	var servers []Server
	processor := worker.NewProcessor(worker.NewLogMailer(log), log)

	// 1. Bus setup
	if cfg.BusProvider == "nats" || cfg.WorkerProvider == "nats" {
		nc, err = connectNats(cfg.NatsAddr(), log)
		if err != nil {
			runCleanup(cleanupFns)()
			return nil, nil, fmt.Errorf("nats: %w", err)
		}
		cleanupFns = append(cleanupFns, nc.Close)
	}

	switch cfg.BusProvider {
	case "nats":
		bus = transportNATS.NewBus(nc)
	case "grpc":
		grpcBus, cleanup, err := transportGRPC.NewGrpcBusFromAddr(cfg.BusAddr())
		if err != nil {
			runCleanup(cleanupFns)()
			return nil, nil, fmt.Errorf("grpc bus: %w", err)
		}
		bus = grpcBus
		cleanupFns = append(cleanupFns, cleanup)
	}
	log.Info("event bus ready", zap.String("provider", cfg.BusProvider), zap.String("addr", cfg.BusAddr()))

	// 2. Core service
	store := repository.NewPostgresStore(db)
	engine := prize.NewEngine(table, prize.CryptoSource{}, prize.Options{
		MaxPrize:  cfg.MaxPrize,
		HouseEdge: cfg.HouseEdge,
	})
	gate := service.NewTwoFactorGate(repository.NewRedisTwoFactorStore(rdb), bus, cfg.TwoFactorTTL, log)
	ledger := service.NewLedger(store, engine, gate, bus, log, service.Options{
		MaxCodeBet:    cfg.MaxCodeBet,
		MaxAccountBet: cfg.MaxAccountBet,
	})

	// 3. Transports. The gRPC server doubles as the worker when WorkerProvider is "grpc".
	var sink transportGRPC.EventSink
	if cfg.WorkerProvider == "grpc" {
		sink = processor
	}
	servers = append(servers, transportGRPC.NewServer(cfg.GRPCListenAddr(), ledger, sink, log))
	if nc != nil {
		servers = append(servers, transportNATS.NewHandler(ledger, nc, log))
	}
	if cfg.WorkerProvider == "nats" {
		servers = append(servers, worker.NewNotificationWorker(processor, nc, log))
	}
	if addr, apiErr := cfg.ApiAddr(); apiErr == nil {
		servers = append(servers, transportHTTP.NewServer(addr, ledger, cfg.AdminKey, log))
	} else {
		log.Info("http api disabled", zap.String("reason", apiErr.Error()))
	}

	return NewApp(servers, log), runCleanup(cleanupFns), nil
}

func loadTable(path string) (*prize.Table, error) {
	if path == "" {
		return prize.MustDefaultTable(), nil
	}
	t, err := prize.LoadTable(path)
	if err != nil {
		return nil, fmt.Errorf("odds file: %w", err)
	}
	return t, nil
}

// runCleanup returns a single function that calls all cleanup functions in reverse order.
func runCleanup(fns []func()) func() {
	return func() {
		for i := len(fns) - 1; i >= 0; i-- {
			fns[i]()
		}
	}
}
