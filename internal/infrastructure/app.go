package infrastructure

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 15 * time.Second

// Server is anything App runs: transports and workers.
type Server interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

type App struct {
	servers []Server
	log     *zap.Logger
}

func NewApp(servers []Server, log *zap.Logger) *App {
	return &App{servers: servers, log: log}
}

// Run starts every server and stops them all once ctx is cancelled or any
// server fails.
func (a *App) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	for _, srv := range a.servers {
		s := srv
		g.Go(func() error {
			return s.Start(ctx)
		})
	}

	<-ctx.Done()
	a.log.Info("shutting down", zap.Int("servers", len(a.servers)))

	stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	for _, srv := range a.servers {
		if err := srv.Stop(stopCtx); err != nil {
			a.log.Warn("server stop failed", zap.Error(err))
		}
	}

	return g.Wait()
}
