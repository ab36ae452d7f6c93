package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"prizeledger/internal/model"
	"prizeledger/internal/prize"
	"prizeledger/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	ctx    = context.Background()
	seller = model.Operator{ID: "seller-1", Name: "Ana", Role: model.RoleSeller}
	admin  = model.Operator{ID: "admin-1", Name: "Root", Role: model.RoleAdmin}
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) Advance(dur time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(dur)
}

type captureBus struct {
	mu     sync.Mutex
	events map[string][][]byte
}

func (b *captureBus) Publish(topic string, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.events == nil {
		b.events = make(map[string][][]byte)
	}
	b.events[topic] = append(b.events[topic], data)
	return nil
}

func (b *captureBus) count(topic string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.events[topic])
}

func (b *captureBus) lastTwoFactorCode(t *testing.T) string {
	t.Helper()
	b.mu.Lock()
	defer b.mu.Unlock()
	msgs := b.events[repository.TopicTwoFactorCode]
	require.NotEmpty(t, msgs)
	var ev repository.TwoFactorCodeEvent
	require.NoError(t, repository.DecodeEvent(msgs[len(msgs)-1], &ev))
	return ev.Code
}

type fixture struct {
	ledger *Ledger
	store  *repository.MemoryStore
	bus    *captureBus
	clock  *clock
}

// newFixture builds a ledger whose prize draws come from draws in order.
func newFixture(t *testing.T, draws ...float64) *fixture {
	t.Helper()
	if len(draws) == 0 {
		draws = []float64{0.99}
	}
	clk := &clock{t: time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)}
	store := repository.NewMemoryStore()
	bus := &captureBus{}
	log := zap.NewNop()
	engine := prize.NewEngine(prize.MustDefaultTable(), prize.NewSequenceSource(draws...), prize.Options{})
	gate := NewTwoFactorGate(repository.NewMemoryTwoFactorStore(clk.Now), bus, 5*time.Minute, log,
		WithHashCost(bcrypt.MinCost), WithGateClock(clk.Now))
	l := NewLedger(store, engine, gate, bus, log, Options{Now: clk.Now})
	return &fixture{ledger: l, store: store, bus: bus, clock: clk}
}

func (f *fixture) issue(t *testing.T, code string, value int64) {
	t.Helper()
	_, err := f.ledger.IssueCodes(ctx, model.IssueCodeInput{Value: value, Code: code}, seller)
	require.NoError(t, err)
}

func requireKind(t *testing.T, err error, code model.ErrorCode) {
	t.Helper()
	require.Error(t, err)
	e, ok := model.AsError(err)
	require.True(t, ok, "not a domain error: %v", err)
	assert.Equal(t, code, e.Code, e.Message)
}

func slots(code string, bet int64) model.PlayRequest {
	return model.PlayRequest{Code: code, GameID: prize.GameSlots, Bet: decimal.NewFromInt(bet)}
}

var contact = model.PlayerContact{Name: "Maria", Phone: "+5355512345", Country: "CU"}

func TestLedger_FullSessionFlow(t *testing.T) {
	// win 1, lose, win 2x2 on the last credit pair
	f := newFixture(t, 0.1, 0.9, 0.05)
	f.issue(t, "001-000000042", 4)

	view, err := f.ledger.Redeem(ctx, " 001-000000042 ")
	require.NoError(t, err)
	assert.Equal(t, int64(4), view.CreditsLeft)
	assert.False(t, view.Recovered)

	res, err := f.ledger.Play(ctx, slots("001-000000042", 1))
	require.NoError(t, err)
	assert.True(t, res.Prize.Equal(d("1")))
	assert.Equal(t, int64(3), *res.CreditsLeft)

	_, err = f.ledger.Play(ctx, slots("001-000000042", 1))
	require.NoError(t, err)

	res, err = f.ledger.Play(ctx, slots("001-000000042", 2))
	require.NoError(t, err)
	assert.True(t, res.Prize.Equal(d("4")))
	assert.Equal(t, int64(0), *res.CreditsLeft)
	assert.True(t, res.TotalWinnings.Equal(d("5")))
	assert.True(t, res.WagerMet)

	_, err = f.ledger.Play(ctx, slots("001-000000042", 1))
	requireKind(t, err, model.CodeInsufficientFunds)

	plays, err := f.ledger.RecentPlays(ctx, "001-000000042", 10)
	require.NoError(t, err)
	assert.Len(t, plays, 3)
	assert.Equal(t, 3, f.bus.count(repository.TopicPlaySettled))

	// Winnings still unclaimed, so redeeming again recovers the session.
	view, err = f.ledger.Redeem(ctx, "001-000000042")
	require.NoError(t, err)
	assert.True(t, view.Recovered)
	assert.True(t, view.TotalWinnings.Equal(d("5")))

	req, err := f.ledger.RequestPayout(ctx, model.PayoutRequestInput{Code: "001-000000042", Amount: d("5"), PlayerContact: contact})
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, req.Status)
	assert.Equal(t, seller.ID, req.SellerID)
	assert.Equal(t, prize.GameSlots, req.GameID)

	paid, err := f.ledger.ProcessPayoutRequest(ctx, model.ProcessPayoutInput{RequestID: req.ID, Action: model.ActionPay}, admin)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPaid, paid.Status)
	assert.Equal(t, admin.ID, paid.ProcessedBy)

	sess, err := f.ledger.GetSession(ctx, "001-000000042")
	require.NoError(t, err)
	assert.True(t, sess.Claimed)
	assert.Equal(t, 1, f.bus.count(repository.TopicPayoutSettled))

	_, err = f.ledger.Redeem(ctx, "001-000000042")
	requireKind(t, err, model.CodeAlreadyUsed)

	stats, err := f.ledger.Stats(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Payouts.TotalPayouts)
	assert.True(t, stats.NetProfit.Equal(d("-1")))
}

func TestLedger_RedeemUnknownAndUsed(t *testing.T) {
	f := newFixture(t)
	_, err := f.ledger.Redeem(ctx, "001-999999999")
	requireKind(t, err, model.CodeNotFound)

	_, err = f.ledger.Redeem(ctx, "  ")
	requireKind(t, err, model.CodeInvalidParams)

	// All credits lost and no winnings: nothing to recover.
	f.issue(t, "001-000000001", 1)
	_, err = f.ledger.Redeem(ctx, "001-000000001")
	require.NoError(t, err)
	_, err = f.ledger.Play(ctx, slots("001-000000001", 1))
	require.NoError(t, err)
	_, err = f.ledger.Redeem(ctx, "001-000000001")
	requireKind(t, err, model.CodeAlreadyUsed)
}

func TestLedger_RedeemRecreatesMissingSession(t *testing.T) {
	f := newFixture(t)
	f.issue(t, "001-000000007", 3)
	_, err := f.store.MarkCodeUsed(ctx, "001-000000007", "001-000000007", f.clock.Now())
	require.NoError(t, err)

	view, err := f.ledger.Redeem(ctx, "001-000000007")
	require.NoError(t, err)
	assert.True(t, view.Recovered)
	assert.Equal(t, int64(3), view.CreditsLeft)
}

func TestLedger_ConcurrentRedeemCreatesOneSession(t *testing.T) {
	f := newFixture(t)
	f.issue(t, "001-000000100", 5)

	var wg sync.WaitGroup
	results := make(chan *model.SessionView, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := f.ledger.Redeem(ctx, "001-000000100")
			if err == nil {
				results <- v
			}
		}()
	}
	wg.Wait()
	close(results)

	fresh := 0
	for v := range results {
		assert.Equal(t, int64(5), v.CreditsLeft)
		if !v.Recovered {
			fresh++
		}
	}
	assert.Equal(t, 1, fresh)
}

func TestLedger_ConcurrentPlaysNeverOverspend(t *testing.T) {
	f := newFixture(t, 0.99)
	f.issue(t, "001-000000200", 10)
	_, err := f.ledger.Redeem(ctx, "001-000000200")
	require.NoError(t, err)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		ok, fail int
	)
	for i := 0; i < 30; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.ledger.Play(ctx, slots("001-000000200", 1))
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				ok++
				return
			}
			fail++
			assert.ErrorIs(t, err, model.ErrInsufficientFunds)
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, ok)
	assert.Equal(t, 20, fail)
	sess, err := f.ledger.GetSession(ctx, "001-000000200")
	require.NoError(t, err)
	assert.Equal(t, int64(0), sess.CreditsLeft)
	assert.Equal(t, int64(10), sess.WagerCompleted)
}

func TestLedger_ConcurrentWinningPlaysCreditEveryPrize(t *testing.T) {
	// 0.1 pays 1, 0.05 pays 2, 0.99 loses
	f := newFixture(t, 0.1, 0.05, 0.99)
	f.issue(t, "001-000000201", 12)
	_, err := f.ledger.Redeem(ctx, "001-000000201")
	require.NoError(t, err)

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		ok   int
		won  int
		paid = decimal.Zero
	)
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := f.ledger.Play(ctx, slots("001-000000201", 1))
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				assert.ErrorIs(t, err, model.ErrInsufficientFunds)
				return
			}
			ok++
			paid = paid.Add(res.Prize)
			if res.Prize.IsPositive() {
				won++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 12, ok)
	assert.Positive(t, won)
	sess, err := f.ledger.GetSession(ctx, "001-000000201")
	require.NoError(t, err)
	assert.Equal(t, int64(0), sess.CreditsLeft)
	assert.True(t, sess.TotalWinnings.Equal(paid), "winnings %s, prizes %s", sess.TotalWinnings, paid)

	plays, err := f.store.ListPlays(ctx, repository.PlayFilter{SessionCode: "001-000000201"})
	require.NoError(t, err)
	require.Len(t, plays, 12)
	recorded := decimal.Zero
	for _, p := range plays {
		recorded = recorded.Add(p.Prize)
	}
	assert.True(t, recorded.Equal(paid))
}

func TestLedger_PlayValidation(t *testing.T) {
	f := newFixture(t)
	f.issue(t, "001-000000300", 20)
	_, err := f.ledger.Redeem(ctx, "001-000000300")
	require.NoError(t, err)

	_, err = f.ledger.Play(ctx, slots("001-000000300", 11))
	requireKind(t, err, model.CodeInvalidBet)

	_, err = f.ledger.Play(ctx, model.PlayRequest{Code: "001-000000300", GameID: prize.GameSlots, Bet: d("1.5")})
	requireKind(t, err, model.CodeInvalidBet)

	_, err = f.ledger.Play(ctx, model.PlayRequest{Code: "001-000000300", GameID: "roulette", Bet: d("1")})
	requireKind(t, err, model.CodeInvalidParams)

	_, err = f.ledger.Play(ctx, slots("001-404404404", 1))
	requireKind(t, err, model.CodeSessionNotFound)
}

func TestLedger_PlayReportsShortfall(t *testing.T) {
	f := newFixture(t)
	f.issue(t, "001-000000301", 3)
	_, err := f.ledger.Redeem(ctx, "001-000000301")
	require.NoError(t, err)

	_, err = f.ledger.Play(ctx, slots("001-000000301", 5))
	requireKind(t, err, model.CodeInsufficientFunds)
	e, _ := model.AsError(err)
	require.NotNil(t, e.Shortfall)
	assert.True(t, e.Shortfall.Equal(d("2")))
}

func TestLedger_IssueCodes(t *testing.T) {
	f := newFixture(t)

	codes, err := f.ledger.IssueCodes(ctx, model.IssueCodeInput{Value: 5, Count: 3}, seller)
	require.NoError(t, err)
	require.Len(t, codes, 3)
	for _, c := range codes {
		assert.Regexp(t, `^001-\d{9}$`, c.Code)
		assert.Equal(t, seller.ID, c.SoldBy)
	}

	_, err = f.ledger.IssueCodes(ctx, model.IssueCodeInput{Value: 0}, seller)
	requireKind(t, err, model.CodeInvalidParams)
	_, err = f.ledger.IssueCodes(ctx, model.IssueCodeInput{Value: 5, Count: 2, Code: "X"}, seller)
	requireKind(t, err, model.CodeInvalidParams)

	f.issue(t, "001-000000500", 5)
	_, err = f.ledger.IssueCodes(ctx, model.IssueCodeInput{Value: 5, Code: "001-000000500"}, seller)
	requireKind(t, err, model.CodeDuplicateCode)

	unused := false
	list, err := f.ledger.ListCodes(ctx, seller, &unused, 0)
	require.NoError(t, err)
	assert.Len(t, list, 4)
}

func TestLedger_IssueRetriesGeneratedCollision(t *testing.T) {
	f := newFixture(t)
	f.issue(t, "001-000000001", 5)

	seq := []string{"001-000000001", "001-000000001", "001-000000002"}
	f.ledger.newCode = func() (string, error) {
		c := seq[0]
		seq = seq[1:]
		return c, nil
	}
	codes, err := f.ledger.IssueCodes(ctx, model.IssueCodeInput{Value: 5}, seller)
	require.NoError(t, err)
	require.Len(t, codes, 1)
	assert.Equal(t, "001-000000002", codes[0].Code)
}
