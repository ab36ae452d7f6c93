package repository

import (
	"context"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"prizeledger/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// newTestPostgres needs a disposable database in PRIZE_TEST_DSN.
func newTestPostgres(t *testing.T) *PostgresStore {
	t.Helper()
	dsn := os.Getenv("PRIZE_TEST_DSN")
	if dsn == "" {
		t.Skip("PRIZE_TEST_DSN not set")
	}
	ctx := context.Background()
	require.NoError(t, RunMigrations(ctx, dsn, "up", zap.NewNop()))

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return NewPostgresStore(pool)
}

func TestPostgresStore_RedeemAndSettle(t *testing.T) {
	s := newTestPostgres(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)
	code := "T-" + uuid.NewString()[:12]

	require.NoError(t, s.CreateCode(ctx, &model.Code{Code: code, Value: 5, CreatedBy: "test", CreatedAt: now}))
	assert.ErrorIs(t, s.CreateCode(ctx, &model.Code{Code: code, Value: 5, CreatedAt: now}), ErrDuplicate)

	var wins atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.MarkCodeUsed(ctx, code, code, now); err == nil {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()
	require.Equal(t, int32(1), wins.Load())

	sess, created, err := s.CreateSession(ctx, &model.Session{Code: code, CreditsIssued: 5, StartedAt: now})
	require.NoError(t, err)
	require.True(t, created)
	_, created, err = s.CreateSession(ctx, &model.Session{Code: code, CreditsIssued: 5, StartedAt: now})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, int64(5), sess.CreditsLeft())

	var settled atomic.Int32
	for i := 0; i < 12; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.SettleSessionPlay(ctx, code, 1, decimal.NewFromInt(1), "slots", now); err == nil {
				settled.Add(1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(5), settled.Load())

	sess, err = s.GetSession(ctx, code)
	require.NoError(t, err)
	assert.Zero(t, sess.CreditsLeft())
	assert.True(t, sess.TotalWinnings.Equal(decimal.NewFromInt(5)))

	claimed, err := s.ClaimSession(ctx, code, now)
	require.NoError(t, err)
	assert.True(t, claimed)
	claimed, err = s.ClaimSession(ctx, code, now)
	require.NoError(t, err)
	assert.False(t, claimed)
}

func TestPostgresStore_PayoutRequestCAS(t *testing.T) {
	s := newTestPostgres(t)
	ctx := context.Background()
	now := time.Now().UTC()
	code := "T-" + uuid.NewString()[:12]
	id := uuid.NewString()

	require.NoError(t, s.CreateCode(ctx, &model.Code{Code: code, Value: 5, CreatedAt: now}))
	_, _, err := s.CreateSession(ctx, &model.Session{Code: code, CreditsIssued: 5, StartedAt: now})
	require.NoError(t, err)
	_, err = s.SettleSessionPlay(ctx, code, 1, decimal.NewFromInt(3), "slots", now)
	require.NoError(t, err)

	req := &model.PayoutRequest{ID: id, Code: code, Amount: decimal.NewFromInt(4), PlayerName: "Ana",
		PlayerPhone: "5551234", PlayerCountry: "MX", Status: model.StatusPending, CreatedAt: now}
	assert.ErrorIs(t, s.CreatePayoutRequest(ctx, req), ErrConditionFailed, "amount differs from winnings")

	req.Amount = decimal.NewFromInt(3)
	require.NoError(t, s.CreatePayoutRequest(ctx, req))
	dup := *req
	dup.ID = uuid.NewString()
	assert.ErrorIs(t, s.CreatePayoutRequest(ctx, &dup), ErrDuplicate)

	sess, err := s.GetSession(ctx, code)
	require.NoError(t, err)
	assert.True(t, sess.PayoutHold)
	_, err = s.ConvertSessionWinnings(ctx, code, decimal.NewFromInt(3), 3, now)
	assert.ErrorIs(t, err, ErrConditionFailed)
	_, err = s.SettleSessionPlay(ctx, code, 1, decimal.Zero, "slots", now)
	assert.ErrorIs(t, err, ErrConditionFailed)

	op := model.Operator{ID: "op", Name: "Operator"}
	got, err := s.TransitionPayoutRequest(ctx, id, model.StatusPending, model.StatusRejected, op, "fraud", now)
	require.NoError(t, err)
	assert.Equal(t, model.StatusRejected, got.Status)
	assert.Equal(t, "fraud", got.Notes)
	sess, err = s.GetSession(ctx, code)
	require.NoError(t, err)
	assert.False(t, sess.PayoutHold)

	_, err = s.TransitionPayoutRequest(ctx, id, model.StatusPending, model.StatusApproved, op, "", now)
	assert.ErrorIs(t, err, ErrConditionFailed)

	p := &model.Payout{ID: uuid.NewString(), Code: code, Amount: decimal.NewFromInt(3), Type: model.PayoutCash, PaidAt: now}
	require.NoError(t, s.CreatePayout(ctx, p))
	p.ID = uuid.NewString()
	assert.ErrorIs(t, s.CreatePayout(ctx, p), ErrDuplicate)
}
