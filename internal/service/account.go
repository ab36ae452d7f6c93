package service

import (
	"context"
	"errors"
	"strings"

	"prizeledger/internal/model"
	"prizeledger/internal/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	txStatusCompleted = "completed"
	txStatusSubmitted = "submitted"
)

func (l *Ledger) RegisterAccount(ctx context.Context, in model.RegisterAccountInput) (*model.Account, error) {
	email := model.NormalizeEmail(in.Email)
	wallet := model.NormalizeWallet(in.WalletAddress)
	if email == "" && wallet == "" {
		return nil, model.NewError(model.CodeInvalidParams, "email or wallet address is required")
	}
	if email != "" && !strings.Contains(email, "@") {
		return nil, model.NewError(model.CodeInvalidParams, "invalid email address")
	}
	name := strings.TrimSpace(in.FullName)
	if len(name) < minPlayerName {
		return nil, model.NewError(model.CodeInvalidParams, "full name is required (min %d characters)", minPlayerName)
	}

	acc := &model.Account{
		ID:             newID(),
		Email:          email,
		WalletAddress:  wallet,
		FullName:       name,
		Country:        strings.TrimSpace(in.Country),
		Balance:        decimal.Zero,
		WagerRequired:  decimal.Zero,
		WagerCompleted: decimal.Zero,
		Active:         true,
		CreatedAt:      l.now(),
	}
	err := l.store.CreateAccount(ctx, acc)
	if errors.Is(err, repository.ErrDuplicate) {
		return nil, model.ErrDuplicateAccount
	}
	if err != nil {
		return nil, storageErr("create account", err)
	}
	l.log.Info("account registered", zap.String("account_id", acc.ID), zap.Bool("email_only", acc.EmailOnly()))
	return acc, nil
}

func (l *Ledger) GetAccount(ctx context.Context, accountID string) (*model.Account, error) {
	return l.loadAccount(ctx, accountID)
}

func (l *Ledger) loadAccount(ctx context.Context, id string) (*model.Account, error) {
	if id == "" {
		return nil, model.ErrUnauthorized
	}
	acc, err := l.store.GetAccount(ctx, id)
	if isNotFound(err) {
		return nil, model.ErrAccountNotFound
	}
	if err != nil {
		return nil, storageErr("get account", err)
	}
	return acc, nil
}

// LinkWallet attaches a wallet identity; linked accounts skip the two-factor gate.
func (l *Ledger) LinkWallet(ctx context.Context, accountID, raw string) (*model.Account, error) {
	wallet := model.NormalizeWallet(raw)
	if wallet == "" {
		return nil, model.NewError(model.CodeInvalidParams, "wallet address is required")
	}
	acc, err := l.store.LinkWallet(ctx, accountID, wallet)
	switch {
	case isNotFound(err):
		return nil, model.ErrAccountNotFound
	case errors.Is(err, repository.ErrDuplicate):
		return nil, model.NewError(model.CodeDuplicateAccount, "wallet is linked to another account")
	case err != nil:
		return nil, storageErr("link wallet", err)
	}
	return acc, nil
}

func (l *Ledger) AccountHistory(ctx context.Context, accountID string, limit int) ([]model.AccountTransaction, error) {
	if _, err := l.loadAccount(ctx, accountID); err != nil {
		return nil, err
	}
	txs, err := l.store.ListTransactions(ctx, accountID, clampLimit(limit))
	if err != nil {
		return nil, storageErr("list transactions", err)
	}
	return txs, nil
}

// Deposit spends a recharge code into the account balance. The deposited
// amount is added to the wager requirement as well.
func (l *Ledger) Deposit(ctx context.Context, accountID, raw string) (*model.DepositResult, error) {
	code := model.NormalizeCode(raw)
	if code == "" {
		return nil, model.NewError(model.CodeInvalidParams, "code is required")
	}
	if _, err := l.loadAccount(ctx, accountID); err != nil {
		return nil, err
	}

	now := l.now()
	c, err := l.store.MarkCodeUsed(ctx, code, model.AccountRedeemer(accountID), now)
	if errors.Is(err, repository.ErrConditionFailed) {
		if _, gerr := l.store.GetCode(ctx, code); isNotFound(gerr) {
			return nil, model.ErrCodeNotFound
		} else if gerr != nil {
			return nil, storageErr("get code", gerr)
		}
		return nil, model.ErrAlreadyUsed
	}
	if err != nil {
		return nil, storageErr("mark code used", err)
	}

	amount := decimal.NewFromInt(c.Value)
	acc, err := l.store.CreditDeposit(ctx, accountID, amount, now)
	if err != nil {
		// The code is spent but the balance was not credited; needs an operator.
		l.log.Error("deposit credit failed after code was spent",
			zap.String("account_id", accountID), zap.String("code", code), zap.Error(err))
		return nil, storageErr("credit deposit", err)
	}

	tx := &model.AccountTransaction{
		ID:           newID(),
		AccountID:    accountID,
		Type:         model.TxDeposit,
		Amount:       amount,
		BalanceAfter: acc.Balance,
		Method:       "code",
		Reference:    code,
		Status:       txStatusCompleted,
		CreatedAt:    now,
	}
	l.audit(ctx, "deposit", func(ctx context.Context) error { return l.store.RecordTransaction(ctx, tx) })
	l.log.Info("deposit credited", zap.String("account_id", accountID), zap.Int64("amount", c.Value))

	return &model.DepositResult{
		Amount:         c.Value,
		NewBalance:     acc.Balance,
		WagerRequired:  acc.WagerRequired,
		WagerCompleted: acc.WagerCompleted,
		WagerMet:       acc.WagerMet(),
	}, nil
}

// RequestWithdrawalCode sends a verification code to email-only accounts.
// Accounts with a wallet identity are told no code is required.
func validWithdrawalAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() || !amount.Equal(amount.Round(2)) {
		return model.NewError(model.CodeInvalidParams, "amount must be positive, in cents")
	}
	return nil
}

func (l *Ledger) RequestWithdrawalCode(ctx context.Context, accountID string, amount decimal.Decimal) (*model.TwoFactorRequestResult, error) {
	if err := validWithdrawalAmount(amount); err != nil {
		return nil, err
	}
	acc, err := l.loadAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if acc.Email == "" {
		return nil, model.NewError(model.CodeInvalidParams, "account has no email address")
	}
	if !acc.EmailOnly() {
		return &model.TwoFactorRequestResult{Sent: false, Required: false}, nil
	}
	if err := l.gate.Generate(ctx, acc, amount); err != nil {
		return nil, storageErr("generate two-factor code", err)
	}
	return &model.TwoFactorRequestResult{Sent: true, Required: true}, nil
}

func (l *Ledger) VerifyWithdrawalCode(ctx context.Context, accountID, code string) error {
	acc, err := l.loadAccount(ctx, accountID)
	if err != nil {
		return err
	}
	if !acc.EmailOnly() {
		return nil
	}
	if err := l.gate.Verify(ctx, acc.ID, strings.TrimSpace(code)); err != nil {
		return storageErr("verify two-factor code", err)
	}
	if err := l.store.TouchAccount(ctx, acc.ID, l.now()); err != nil {
		l.log.Warn("touch account failed", zap.String("account_id", acc.ID), zap.Error(err))
	}
	return nil
}

// Withdraw debits the balance. The account is re-read right before the
// debit, and the debit itself re-checks balance and wager in storage.
func (l *Ledger) Withdraw(ctx context.Context, accountID string, in model.WithdrawInput) (*model.WithdrawResult, error) {
	if err := validWithdrawalAmount(in.Amount); err != nil {
		return nil, err
	}
	if !in.Method.Valid() {
		return nil, model.NewError(model.CodeInvalidParams, "method must be crypto or cash")
	}
	dest := strings.TrimSpace(in.Destination)
	if in.Method == model.MethodCrypto && dest == "" {
		return nil, model.NewError(model.CodeInvalidParams, "destination address is required for crypto withdrawals")
	}

	acc, err := l.loadAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if err := accountCanWithdraw(acc, in.Amount); err != nil {
		return nil, err
	}
	if acc.EmailOnly() {
		ok, err := l.gate.Consume(ctx, acc.ID)
		if err != nil {
			return nil, storageErr("consume clearance", err)
		}
		if !ok {
			return nil, model.ErrTwoFactorRequired
		}
	}

	now := l.now()
	updated, err := l.store.DebitWithdrawal(ctx, acc.ID, in.Amount, now)
	if errors.Is(err, repository.ErrConditionFailed) {
		fresh, rerr := l.loadAccount(ctx, acc.ID)
		if rerr != nil {
			return nil, rerr
		}
		if cerr := accountCanWithdraw(fresh, in.Amount); cerr != nil {
			return nil, cerr
		}
		return nil, model.ErrInsufficientBal
	}
	if err != nil {
		return nil, storageErr("debit withdrawal", err)
	}

	tx := &model.AccountTransaction{
		ID:           newID(),
		AccountID:    acc.ID,
		Type:         model.TxWithdrawal,
		Amount:       in.Amount,
		BalanceAfter: updated.Balance,
		Method:       string(in.Method),
		Destination:  dest,
		Status:       txStatusSubmitted,
		CreatedAt:    now,
	}
	l.audit(ctx, "withdrawal", func(ctx context.Context) error { return l.store.RecordTransaction(ctx, tx) })
	l.log.Info("withdrawal submitted",
		zap.String("account_id", acc.ID), zap.String("amount", in.Amount.String()), zap.String("method", string(in.Method)))

	return &model.WithdrawResult{TransactionID: tx.ID, NewBalance: updated.Balance}, nil
}

func accountCanWithdraw(acc *model.Account, amount decimal.Decimal) error {
	if !acc.WagerMet() {
		return model.NewError(model.CodeWagerNotMet, "wager %s more before withdrawing", acc.WagerShortfall()).
			WithShortfall(acc.WagerShortfall())
	}
	if acc.Balance.LessThan(amount) {
		return model.NewError(model.CodeInsufficientBal, "balance %s is below %s", acc.Balance, amount).
			WithShortfall(amount.Sub(acc.Balance))
	}
	return nil
}
