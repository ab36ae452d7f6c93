package repository

import (
	"context"
	"errors"
	"time"

	"prizeledger/internal/model"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")

	// ErrConditionFailed means a conditional update matched no row: the guard
	// no longer holds, or the row does not exist.
	ErrConditionFailed = errors.New("conditional update matched no row")
)

type CodeFilter struct {
	Used      *bool
	CreatedBy string
	SoldBy    string
	Limit     int
}

type PlayFilter struct {
	SessionCode string
	AccountID   string
	Limit       int
}

type PayoutRequestFilter struct {
	Status model.PayoutStatus
	Limit  int
}

type PayoutFilter struct {
	PaidBy string
	Limit  int
}

// CodeRepository stores recharge codes. MarkCodeUsed is the only way a code
// changes state.
type CodeRepository interface {
	CreateCode(ctx context.Context, c *model.Code) error
	GetCode(ctx context.Context, code string) (*model.Code, error)
	// MarkCodeUsed flips used false -> true. ErrConditionFailed when the code
	// is missing or already used.
	MarkCodeUsed(ctx context.Context, code, usedBy string, at time.Time) (*model.Code, error)
	ListCodes(ctx context.Context, f CodeFilter) ([]model.Code, error)
	CodeStats(ctx context.Context) (model.CodeStats, error)
	// SalesStats counts every issued code as a sale, only those sold by
	// sellerID when it is set.
	SalesStats(ctx context.Context, sellerID string, now time.Time) (model.SalesStats, error)
	// TopSellers ranks sellers by revenue, highest first.
	TopSellers(ctx context.Context, limit int) ([]model.SellerSales, error)
}

type SessionRepository interface {
	// CreateSession inserts s unless a session for the code exists, and
	// returns the stored row either way.
	CreateSession(ctx context.Context, s *model.Session) (*model.Session, bool, error)
	GetSession(ctx context.Context, code string) (*model.Session, error)
	// SettleSessionPlay debits bet credits and adds prize to the winnings while
	// at least bet credits are left and the session is neither claimed nor held.
	SettleSessionPlay(ctx context.Context, code string, bet int64, prize decimal.Decimal, gameID string, at time.Time) (*model.Session, error)
	// ClaimSession reports false when the session was already claimed.
	ClaimSession(ctx context.Context, code string, at time.Time) (bool, error)
	// ConvertSessionWinnings zeroes the winnings and adds credits, provided the
	// winnings still equal expected and the session is neither claimed nor held.
	ConvertSessionWinnings(ctx context.Context, code string, expected decimal.Decimal, credits int64, at time.Time) (*model.Session, error)
	// HoldSessionWinnings reserves the winnings for a cash payout while they
	// equal expected and the session is neither claimed nor already held.
	HoldSessionWinnings(ctx context.Context, code string, expected decimal.Decimal, at time.Time) (*model.Session, error)

	RecordPlay(ctx context.Context, p *model.Play) error
	ListPlays(ctx context.Context, f PlayFilter) ([]model.Play, error)
	PlayStats(ctx context.Context) ([]model.GameStats, error)
	RecordConversion(ctx context.Context, c *model.CreditConversion) error
}

type PayoutRepository interface {
	// CreatePayoutRequest holds the session's winnings and inserts the request
	// as one write. ErrDuplicate when the code already has a request;
	// ErrConditionFailed when the session is missing, claimed, held, or its
	// winnings differ from r.Amount.
	CreatePayoutRequest(ctx context.Context, r *model.PayoutRequest) error
	GetPayoutRequest(ctx context.Context, id string) (*model.PayoutRequest, error)
	GetPayoutRequestByCode(ctx context.Context, code string) (*model.PayoutRequest, error)
	ListPayoutRequests(ctx context.Context, f PayoutRequestFilter) ([]model.PayoutRequest, error)
	// TransitionPayoutRequest moves the request from -> to and stamps the
	// processor. ErrConditionFailed when the status is no longer from.
	// Moving to rejected releases the session hold.
	TransitionPayoutRequest(ctx context.Context, id string, from, to model.PayoutStatus, op model.Operator, notes string, at time.Time) (*model.PayoutRequest, error)

	// CreatePayout fails with ErrDuplicate when the code is already paid.
	CreatePayout(ctx context.Context, p *model.Payout) error
	GetPayoutByCode(ctx context.Context, code string) (*model.Payout, error)
	ListPayouts(ctx context.Context, f PayoutFilter) ([]model.Payout, error)
	// PayoutStats covers every payout, only those paid by paidBy when it is set.
	PayoutStats(ctx context.Context, paidBy string, now time.Time) (model.PayoutStats, error)
}

type AccountRepository interface {
	// CreateAccount fails with ErrDuplicate on a taken email or wallet.
	CreateAccount(ctx context.Context, a *model.Account) error
	GetAccount(ctx context.Context, id string) (*model.Account, error)
	LinkWallet(ctx context.Context, id, wallet string) (*model.Account, error)
	// CreditDeposit adds amount to both the balance and the wager requirement.
	CreditDeposit(ctx context.Context, id string, amount decimal.Decimal, at time.Time) (*model.Account, error)
	// SettleAccountBet applies balance - bet + prize and counts bet toward
	// the wager while the balance covers the bet.
	SettleAccountBet(ctx context.Context, id string, bet, prize decimal.Decimal, at time.Time) (*model.Account, error)
	// DebitWithdrawal requires both balance >= amount and a met wager.
	DebitWithdrawal(ctx context.Context, id string, amount decimal.Decimal, at time.Time) (*model.Account, error)
	TouchAccount(ctx context.Context, id string, at time.Time) error

	RecordTransaction(ctx context.Context, t *model.AccountTransaction) error
	ListTransactions(ctx context.Context, accountID string, limit int) ([]model.AccountTransaction, error)
}

// Store is the full persistence surface the ledger depends on.
type Store interface {
	CodeRepository
	SessionRepository
	PayoutRepository
	AccountRepository
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func startOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}
