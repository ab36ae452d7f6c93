package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"prizeledger/internal/model"
	"prizeledger/internal/prize"
	"prizeledger/internal/repository"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// WalletService is the code-session surface shared by every transport.
type WalletService interface {
	Redeem(ctx context.Context, code string) (*model.SessionView, error)
	GetSession(ctx context.Context, code string) (*model.SessionView, error)
	Play(ctx context.Context, req model.PlayRequest) (*model.PlayResult, error)
}

// LedgerService defines the business operations for the ledger.
// All transport layers (HTTP, gRPC, NATS) depend on these interfaces, not on the concrete repo.
type LedgerService interface {
	WalletService

	Games() []string
	RecentPlays(ctx context.Context, code string, limit int) ([]model.Play, error)
	ConvertWinnings(ctx context.Context, in model.ConvertInput) (*model.ConvertResult, error)

	RequestPayout(ctx context.Context, in model.PayoutRequestInput) (*model.PayoutRequest, error)
	GetPayoutRequest(ctx context.Context, code string) (*model.PayoutRequest, error)
	ProcessPayoutRequest(ctx context.Context, in model.ProcessPayoutInput, op model.Operator) (*model.PayoutRequest, error)
	DirectPayout(ctx context.Context, in model.DirectPayoutInput, op model.Operator) (*model.Payout, error)
	ListPayoutRequests(ctx context.Context, status model.PayoutStatus, limit int) ([]model.PayoutRequest, error)
	ListPayouts(ctx context.Context, op model.Operator, limit int) ([]model.Payout, error)
	Stats(ctx context.Context, op model.Operator) (*model.DashboardStats, error)
	Sales(ctx context.Context, op model.Operator, limit int) (*model.SalesReport, error)

	IssueCodes(ctx context.Context, in model.IssueCodeInput, op model.Operator) ([]model.Code, error)
	ListCodes(ctx context.Context, op model.Operator, used *bool, limit int) ([]model.Code, error)

	RegisterAccount(ctx context.Context, in model.RegisterAccountInput) (*model.Account, error)
	GetAccount(ctx context.Context, accountID string) (*model.Account, error)
	LinkWallet(ctx context.Context, accountID, wallet string) (*model.Account, error)
	AccountHistory(ctx context.Context, accountID string, limit int) ([]model.AccountTransaction, error)
	Deposit(ctx context.Context, accountID, code string) (*model.DepositResult, error)
	RequestWithdrawalCode(ctx context.Context, accountID string, amount decimal.Decimal) (*model.TwoFactorRequestResult, error)
	VerifyWithdrawalCode(ctx context.Context, accountID, code string) error
	Withdraw(ctx context.Context, accountID string, in model.WithdrawInput) (*model.WithdrawResult, error)
}

const (
	defaultListLimit = 50
	maxListLimit     = 500
	maxIssueCount    = 100
)

type Options struct {
	MaxCodeBet    int64
	MaxAccountBet decimal.Decimal
	// Now is the clock; tests pin it.
	Now func() time.Time
}

// Ledger implements LedgerService on top of a Store. It holds no locks:
// every state change goes through a conditional write in the store.
type Ledger struct {
	store   repository.Store
	engine  *prize.Engine
	gate    *TwoFactorGate
	bus     repository.MessageBus
	log     *zap.Logger
	opts    Options
	newCode func() (string, error)
}

var _ LedgerService = (*Ledger)(nil)

func NewLedger(store repository.Store, engine *prize.Engine, gate *TwoFactorGate, bus repository.MessageBus, log *zap.Logger, opts Options) *Ledger {
	if opts.MaxCodeBet <= 0 {
		opts.MaxCodeBet = 10
	}
	if !opts.MaxAccountBet.IsPositive() {
		opts.MaxAccountBet = decimal.NewFromInt(100)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if bus == nil {
		bus = repository.NopBus{}
	}
	return &Ledger{
		store:   store,
		engine:  engine,
		gate:    gate,
		bus:     bus,
		log:     log.Named("ledger"),
		opts:    opts,
		newCode: generateCode,
	}
}

func (l *Ledger) now() time.Time { return l.opts.Now().UTC() }

func newID() string { return uuid.NewString() }

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}

// storageErr wraps an unexpected repository failure. Domain errors pass through.
func storageErr(op string, err error) error {
	if _, ok := model.AsError(err); ok {
		return err
	}
	return fmt.Errorf("%s: %w", op, err)
}

// publish is fire-and-forget: the ledger state is already committed.
func (l *Ledger) publish(topic string, event any) {
	if err := repository.PublishEvent(l.bus, topic, event); err != nil {
		l.log.Warn("publish event failed", zap.String("topic", topic), zap.Error(err))
	}
}

// audit writes a fact after the money moved. It retries briefly so the audit
// trail is at-least-once, and only logs when the store stays down.
func (l *Ledger) audit(ctx context.Context, what string, write func(context.Context) error) {
	b := retry.WithMaxRetries(3, retry.NewExponential(20*time.Millisecond))
	err := retry.Do(ctx, b, func(ctx context.Context) error {
		if err := write(ctx); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		l.log.Error("audit write failed", zap.String("record", what), zap.Error(err))
	}
}

func isNotFound(err error) bool { return errors.Is(err, repository.ErrNotFound) }
