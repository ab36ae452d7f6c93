package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"prizeledger/internal/model"
	"prizeledger/internal/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const twoFactorDigits = 6

var twoFactorSpace = big.NewInt(1_000_000)

// TwoFactorGate issues and checks one-time withdrawal codes. Only the bcrypt
// hash of a code is stored; the plain code leaves through the bus.
type TwoFactorGate struct {
	store repository.TwoFactorStore
	bus   repository.MessageBus
	ttl   time.Duration
	cost  int
	now   func() time.Time
	log   *zap.Logger
	code  func() (string, error)
}

type GateOption func(*TwoFactorGate)

// WithHashCost overrides the bcrypt cost. Tests use bcrypt.MinCost.
func WithHashCost(cost int) GateOption {
	return func(g *TwoFactorGate) { g.cost = cost }
}

func WithGateClock(now func() time.Time) GateOption {
	return func(g *TwoFactorGate) { g.now = now }
}

func NewTwoFactorGate(store repository.TwoFactorStore, bus repository.MessageBus, ttl time.Duration, log *zap.Logger, opts ...GateOption) *TwoFactorGate {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if bus == nil {
		bus = repository.NopBus{}
	}
	g := &TwoFactorGate{
		store: store,
		bus:   bus,
		ttl:   ttl,
		cost:  bcrypt.DefaultCost,
		now:   time.Now,
		log:   log.Named("twofactor"),
		code:  sixDigits,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func sixDigits() (string, error) {
	n, err := rand.Int(rand.Reader, twoFactorSpace)
	if err != nil {
		return "", fmt.Errorf("generate two-factor code: %w", err)
	}
	return fmt.Sprintf("%0*d", twoFactorDigits, n.Int64()), nil
}

// Generate replaces any pending code for the account and sends the new one.
func (g *TwoFactorGate) Generate(ctx context.Context, acc *model.Account, amount decimal.Decimal) error {
	code, err := g.code()
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), g.cost)
	if err != nil {
		return fmt.Errorf("hash two-factor code: %w", err)
	}
	expires := g.now().Add(g.ttl)
	if err := g.store.SavePendingCode(ctx, acc.ID, repository.PendingCode{Hash: string(hash), ExpiresAt: expires}); err != nil {
		return err
	}

	err = repository.PublishEvent(g.bus, repository.TopicTwoFactorCode, repository.TwoFactorCodeEvent{
		AccountID: acc.ID,
		Email:     acc.Email,
		Code:      code,
		Amount:    amount,
		ExpiresAt: expires,
	})
	if err != nil {
		return fmt.Errorf("send two-factor code: %w", err)
	}
	g.log.Info("two-factor code sent", zap.String("account_id", acc.ID), zap.Time("expires_at", expires))
	return nil
}

// Verify checks code against the pending one and, on success, grants a single
// withdrawal clearance valid for the gate ttl.
func (g *TwoFactorGate) Verify(ctx context.Context, accountID, code string) error {
	if !validTwoFactorCode(code) {
		return model.NewError(model.CodeInvalidParams, "verification code must be %d digits", twoFactorDigits)
	}
	pending, err := g.store.PendingCode(ctx, accountID)
	if isNotFound(err) {
		return model.ErrInvalidCode
	}
	if err != nil {
		return err
	}
	if pending.Expired(g.now()) {
		if _, err := g.store.DeletePendingCode(ctx, accountID, pending.Hash); err != nil {
			g.log.Warn("clear expired code failed", zap.String("account_id", accountID), zap.Error(err))
		}
		return model.ErrExpired
	}
	if bcrypt.CompareHashAndPassword([]byte(pending.Hash), []byte(code)) != nil {
		return model.ErrInvalidCode
	}

	// Two concurrent verifies of the same code: only the deleter wins.
	deleted, err := g.store.DeletePendingCode(ctx, accountID, pending.Hash)
	if err != nil {
		return err
	}
	if !deleted {
		return model.ErrInvalidCode
	}
	if err := g.store.GrantClearance(ctx, accountID, g.ttl); err != nil {
		return err
	}
	g.log.Info("two-factor verified", zap.String("account_id", accountID))
	return nil
}

// Consume spends the clearance granted by Verify.
func (g *TwoFactorGate) Consume(ctx context.Context, accountID string) (bool, error) {
	return g.store.ConsumeClearance(ctx, accountID)
}

func validTwoFactorCode(code string) bool {
	if len(code) != twoFactorDigits {
		return false
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
