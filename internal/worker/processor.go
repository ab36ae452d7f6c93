package worker

import (
	"context"
	"fmt"

	"prizeledger/internal/repository"

	"go.uber.org/zap"
)

// Mailer delivers player notifications. SMTP delivery lives outside this
// service.
type Mailer interface {
	SendTwoFactorCode(ctx context.Context, ev repository.TwoFactorCodeEvent) error
	SendPayoutReceipt(ctx context.Context, ev repository.PayoutSettledEvent) error
}

// LogMailer writes notifications to the log with the code masked.
type LogMailer struct {
	log *zap.Logger
}

func NewLogMailer(log *zap.Logger) *LogMailer {
	return &LogMailer{log: log.Named("mailer")}
}

func (m *LogMailer) SendTwoFactorCode(_ context.Context, ev repository.TwoFactorCodeEvent) error {
	m.log.Info("two-factor code",
		zap.String("account_id", ev.AccountID),
		zap.String("email", ev.Email),
		zap.String("code", maskCode(ev.Code)),
		zap.String("amount", ev.Amount.String()),
		zap.Time("expires_at", ev.ExpiresAt),
	)
	return nil
}

func (m *LogMailer) SendPayoutReceipt(_ context.Context, ev repository.PayoutSettledEvent) error {
	m.log.Info("payout receipt",
		zap.String("code", ev.Code),
		zap.String("amount", ev.Amount.String()),
		zap.String("player", ev.PlayerName),
	)
	return nil
}

func maskCode(code string) string {
	if len(code) <= 2 {
		return "**"
	}
	masked := make([]byte, len(code))
	for i := range masked {
		masked[i] = '*'
	}
	copy(masked[len(code)-2:], code[len(code)-2:])
	return string(masked)
}

// Processor turns bus events into notifications. It is shared by the NATS
// worker and the gRPC event service.
type Processor struct {
	mailer Mailer
	log    *zap.Logger
}

func NewProcessor(mailer Mailer, log *zap.Logger) *Processor {
	return &Processor{mailer: mailer, log: log.Named("worker")}
}

// Handle processes one event. Topics without a notification are acknowledged.
func (p *Processor) Handle(ctx context.Context, topic string, data []byte) error {
	switch topic {
	case repository.TopicTwoFactorCode:
		var ev repository.TwoFactorCodeEvent
		if err := repository.DecodeEvent(data, &ev); err != nil {
			return fmt.Errorf("decode %s: %w", topic, err)
		}
		if ev.AccountID == "" || ev.Email == "" || ev.Code == "" {
			return fmt.Errorf("decode %s: incomplete event", topic)
		}
		return p.mailer.SendTwoFactorCode(ctx, ev)

	case repository.TopicPayoutSettled:
		var ev repository.PayoutSettledEvent
		if err := repository.DecodeEvent(data, &ev); err != nil {
			return fmt.Errorf("decode %s: %w", topic, err)
		}
		return p.mailer.SendPayoutReceipt(ctx, ev)

	default:
		p.log.Debug("event ignored", zap.String("topic", topic))
		return nil
	}
}
