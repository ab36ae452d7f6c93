package service

import (
	"testing"
	"time"

	"prizeledger/internal/model"
	"prizeledger/internal/prize"
	"prizeledger/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func register(t *testing.T, f *fixture, email, wallet string) *model.Account {
	t.Helper()
	acc, err := f.ledger.RegisterAccount(ctx, model.RegisterAccountInput{
		Email: email, WalletAddress: wallet, FullName: "Maria Perez", Country: "CU",
	})
	require.NoError(t, err)
	return acc
}

func deposit(t *testing.T, f *fixture, acc *model.Account, code string, value int64) *model.DepositResult {
	t.Helper()
	f.issue(t, code, value)
	res, err := f.ledger.Deposit(ctx, acc.ID, code)
	require.NoError(t, err)
	return res
}

func accountBet(acc *model.Account, bet string) model.PlayRequest {
	return model.PlayRequest{AccountID: acc.ID, GameID: prize.GameSlots, Bet: d(bet)}
}

func TestLedger_RegisterAccount(t *testing.T) {
	f := newFixture(t)
	acc := register(t, f, " Maria@Example.com ", "")
	assert.Equal(t, "maria@example.com", acc.Email)
	assert.True(t, acc.EmailOnly())

	_, err := f.ledger.RegisterAccount(ctx, model.RegisterAccountInput{Email: "maria@example.com", FullName: "Other"})
	requireKind(t, err, model.CodeDuplicateAccount)

	_, err = f.ledger.RegisterAccount(ctx, model.RegisterAccountInput{FullName: "Nobody"})
	requireKind(t, err, model.CodeInvalidParams)

	linked, err := f.ledger.LinkWallet(ctx, acc.ID, "0xABC")
	require.NoError(t, err)
	assert.Equal(t, "0xabc", linked.WalletAddress)
	assert.False(t, linked.EmailOnly())

	other := register(t, f, "", "0xdef")
	_, err = f.ledger.LinkWallet(ctx, other.ID, "0xabc")
	requireKind(t, err, model.CodeDuplicateAccount)

	_, err = f.ledger.GetAccount(ctx, "missing")
	requireKind(t, err, model.CodeAccountNotFound)
}

func TestLedger_DepositAddsWagerRequirement(t *testing.T) {
	f := newFixture(t)
	acc := register(t, f, "", "0x1")

	res := deposit(t, f, acc, "001-000000070", 20)
	assert.Equal(t, int64(20), res.Amount)
	assert.True(t, res.NewBalance.Equal(d("20")))
	assert.True(t, res.WagerRequired.Equal(d("20")))
	assert.False(t, res.WagerMet)

	_, err := f.ledger.Deposit(ctx, acc.ID, "001-000000070")
	requireKind(t, err, model.CodeAlreadyUsed)
	_, err = f.ledger.Deposit(ctx, acc.ID, "001-404404404")
	requireKind(t, err, model.CodeNotFound)

	// A deposited code cannot start a session.
	_, err = f.ledger.Redeem(ctx, "001-000000070")
	requireKind(t, err, model.CodeAlreadyUsed)

	history, err := f.ledger.AccountHistory(ctx, acc.ID, 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, model.TxDeposit, history[0].Type)
}

func TestLedger_AccountPlay(t *testing.T) {
	// win 1x on 2.50, then lose
	f := newFixture(t, 0.1, 0.9)
	acc := register(t, f, "", "0x2")
	deposit(t, f, acc, "001-000000071", 5)

	res, err := f.ledger.Play(ctx, accountBet(acc, "2.50"))
	require.NoError(t, err)
	assert.True(t, res.Prize.Equal(d("2.5")))
	assert.True(t, res.Balance.Equal(d("5")))
	assert.True(t, res.WagerCompleted.Equal(d("2.5")))
	assert.Nil(t, res.CreditsLeft)

	res, err = f.ledger.Play(ctx, accountBet(acc, "2.50"))
	require.NoError(t, err)
	assert.True(t, res.Balance.Equal(d("2.5")))
	assert.True(t, res.WagerMet)

	_, err = f.ledger.Play(ctx, accountBet(acc, "3"))
	requireKind(t, err, model.CodeInsufficientBal)

	_, err = f.ledger.Play(ctx, accountBet(acc, "0.001"))
	requireKind(t, err, model.CodeInvalidBet)
	_, err = f.ledger.Play(ctx, accountBet(acc, "101"))
	requireKind(t, err, model.CodeInvalidBet)
}

func TestLedger_WithdrawRequiresWager(t *testing.T) {
	f := newFixture(t, 0.9)
	acc := register(t, f, "", "0x3")
	deposit(t, f, acc, "001-000000072", 10)

	_, err := f.ledger.Play(ctx, accountBet(acc, "4"))
	require.NoError(t, err)

	in := model.WithdrawInput{Amount: d("5"), Method: model.MethodCrypto, Destination: "0xdest"}
	_, err = f.ledger.Withdraw(ctx, acc.ID, in)
	requireKind(t, err, model.CodeWagerNotMet)
	e, _ := model.AsError(err)
	require.NotNil(t, e.Shortfall)
	assert.True(t, e.Shortfall.Equal(d("6")))

	_, err = f.ledger.Play(ctx, accountBet(acc, "6"))
	require.NoError(t, err)

	// balance is now 0 after two losses
	_, err = f.ledger.Withdraw(ctx, acc.ID, in)
	requireKind(t, err, model.CodeInsufficientBal)
}

func TestLedger_WithdrawWalletAccount(t *testing.T) {
	// a 1x win returns the bet, so the wager is met with the balance intact
	f := newFixture(t, 0.1)
	acc := register(t, f, "", "0x4")
	deposit(t, f, acc, "001-000000073", 10)
	res, err := f.ledger.Play(ctx, accountBet(acc, "10"))
	require.NoError(t, err)
	require.True(t, res.WagerMet)

	_, err = f.ledger.Withdraw(ctx, acc.ID, model.WithdrawInput{Amount: d("4"), Method: model.MethodCrypto})
	requireKind(t, err, model.CodeInvalidParams)
	_, err = f.ledger.Withdraw(ctx, acc.ID, model.WithdrawInput{Amount: d("4"), Method: "paypal"})
	requireKind(t, err, model.CodeInvalidParams)

	out, err := f.ledger.Withdraw(ctx, acc.ID, model.WithdrawInput{Amount: d("4"), Method: model.MethodCrypto, Destination: "0xdest"})
	require.NoError(t, err)
	assert.True(t, out.NewBalance.Equal(d("6")))

	// A new deposit raises the requirement again.
	dep := deposit(t, f, acc, "001-000000074", 5)
	assert.False(t, dep.WagerMet)
	_, err = f.ledger.Withdraw(ctx, acc.ID, model.WithdrawInput{Amount: d("1"), Method: model.MethodCash})
	requireKind(t, err, model.CodeWagerNotMet)
}

func TestLedger_TwoFactorWithdrawal(t *testing.T) {
	f := newFixture(t, 0.1)
	acc := register(t, f, "maria@example.com", "")
	deposit(t, f, acc, "001-000000080", 10)
	_, err := f.ledger.Play(ctx, accountBet(acc, "10"))
	require.NoError(t, err)

	in := model.WithdrawInput{Amount: d("4"), Method: model.MethodCash}
	_, err = f.ledger.Withdraw(ctx, acc.ID, in)
	requireKind(t, err, model.CodeTwoFactorRequired)

	sent, err := f.ledger.RequestWithdrawalCode(ctx, acc.ID, d("4"))
	require.NoError(t, err)
	assert.True(t, sent.Sent)
	assert.True(t, sent.Required)
	code := f.bus.lastTwoFactorCode(t)
	assert.Regexp(t, `^\d{6}$`, code)

	wrong := "000000"
	if code == wrong {
		wrong = "111111"
	}
	requireKind(t, f.ledger.VerifyWithdrawalCode(ctx, acc.ID, wrong), model.CodeInvalidCode)
	requireKind(t, f.ledger.VerifyWithdrawalCode(ctx, acc.ID, "12ab"), model.CodeInvalidParams)

	require.NoError(t, f.ledger.VerifyWithdrawalCode(ctx, acc.ID, code))
	requireKind(t, f.ledger.VerifyWithdrawalCode(ctx, acc.ID, code), model.CodeInvalidCode)

	res, err := f.ledger.Withdraw(ctx, acc.ID, in)
	require.NoError(t, err)
	assert.True(t, res.NewBalance.Equal(d("6")))

	// The clearance is single use.
	_, err = f.ledger.Withdraw(ctx, acc.ID, model.WithdrawInput{Amount: d("1"), Method: model.MethodCash})
	requireKind(t, err, model.CodeTwoFactorRequired)

	history, err := f.ledger.AccountHistory(ctx, acc.ID, 0)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, model.TxWithdrawal, history[0].Type)
	assert.Equal(t, "submitted", history[0].Status)
}

func TestLedger_TwoFactorExpiry(t *testing.T) {
	f := newFixture(t)
	acc := register(t, f, "maria@example.com", "")

	_, err := f.ledger.RequestWithdrawalCode(ctx, acc.ID, d("1"))
	require.NoError(t, err)
	code := f.bus.lastTwoFactorCode(t)

	f.clock.Advance(5*time.Minute + time.Second)
	requireKind(t, f.ledger.VerifyWithdrawalCode(ctx, acc.ID, code), model.CodeExpired)
	requireKind(t, f.ledger.VerifyWithdrawalCode(ctx, acc.ID, code), model.CodeInvalidCode)
}

func TestLedger_TwoFactorNotRequiredForWallet(t *testing.T) {
	f := newFixture(t)
	acc := register(t, f, "maria@example.com", "0x5")

	res, err := f.ledger.RequestWithdrawalCode(ctx, acc.ID, d("1"))
	require.NoError(t, err)
	assert.False(t, res.Sent)
	assert.False(t, res.Required)
	assert.Equal(t, 0, f.bus.count(repository.TopicTwoFactorCode))

	walletOnly := register(t, f, "", "0x6")
	_, err = f.ledger.RequestWithdrawalCode(ctx, walletOnly.ID, d("1"))
	requireKind(t, err, model.CodeInvalidParams)
}

func TestLedger_WithdrawalCodeRejectsBadAmount(t *testing.T) {
	f := newFixture(t)
	acc := register(t, f, "maria@example.com", "")

	for _, amount := range []string{"0", "-5", "1.005"} {
		_, err := f.ledger.RequestWithdrawalCode(ctx, acc.ID, d(amount))
		requireKind(t, err, model.CodeInvalidParams)
	}
	assert.Equal(t, 0, f.bus.count(repository.TopicTwoFactorCode), "no code is sent")
}
