package worker

import (
	"context"
	"fmt"

	"prizeledger/internal/repository"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

const queueGroup = "notification_workers"

// NotificationWorker feeds NATS events to a Processor.
type NotificationWorker struct {
	proc     *Processor
	natsConn *nats.Conn
	log      *zap.Logger
}

func NewNotificationWorker(proc *Processor, nc *nats.Conn, log *zap.Logger) *NotificationWorker {
	return &NotificationWorker{proc: proc, natsConn: nc, log: log.Named("worker")}
}

// Run subscribes and blocks until ctx is cancelled.
func (w *NotificationWorker) Run(ctx context.Context) error {
	// Queue subscription: each event reaches one worker of the group, so
	// several instances never send the same mail twice.
	var subs []*nats.Subscription
	for _, topic := range []string{repository.TopicTwoFactorCode, repository.TopicPayoutSettled} {
		sub, err := w.natsConn.QueueSubscribe(topic, queueGroup, func(m *nats.Msg) {
			if err := w.proc.Handle(ctx, m.Subject, m.Data); err != nil {
				w.log.Error("notification failed", zap.String("topic", m.Subject), zap.Error(err))
			}
		})
		if err != nil {
			return fmt.Errorf("worker: subscribe %s: %w", topic, err)
		}
		subs = append(subs, sub)
	}

	w.log.Info("notification worker is running")
	<-ctx.Done()
	w.log.Info("worker received shutdown signal, draining subscriptions")

	var firstErr error
	for _, sub := range subs {
		if err := sub.Drain(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Start implements the infrastructure.Server interface.
func (w *NotificationWorker) Start(ctx context.Context) error {
	return w.Run(ctx)
}

// Stop is a no-op; shutdown is via ctx.
func (w *NotificationWorker) Stop(ctx context.Context) error {
	return nil
}
