package repository

import (
	"context"
	"fmt"
	"time"

	"prizeledger/internal/model"

	"github.com/shopspring/decimal"
)

// Email and wallet are nullable so their unique indexes allow many blanks.
const accountColumns = `id, COALESCE(email, ''), COALESCE(wallet_address, ''), full_name, country,
	balance, wager_required, wager_completed, active, created_at, last_activity_at`

func scanAccount(row rowScanner) (*model.Account, error) {
	var a model.Account
	err := row.Scan(&a.ID, &a.Email, &a.WalletAddress, &a.FullName, &a.Country,
		&a.Balance, &a.WagerRequired, &a.WagerCompleted, &a.Active, &a.CreatedAt, &a.LastActivityAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *PostgresStore) CreateAccount(ctx context.Context, a *model.Account) error {
	query := `INSERT INTO accounts
		(id, email, wallet_address, full_name, country, balance, wager_required, wager_completed, active, created_at)
		VALUES ($1, NULLIF($2::TEXT, ''), NULLIF($3::TEXT, ''), $4, $5, $6, $7, $8, $9, $10)`
	_, err := s.db.Exec(ctx, query, a.ID, a.Email, a.WalletAddress, a.FullName, a.Country,
		a.Balance, a.WagerRequired, a.WagerCompleted, a.Active, a.CreatedAt)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetAccount(ctx context.Context, id string) (*model.Account, error) {
	a, err := scanAccount(s.db.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id))
	if err != nil {
		return nil, noRows(err, ErrNotFound, "select account")
	}
	return a, nil
}

func (s *PostgresStore) LinkWallet(ctx context.Context, id, wallet string) (*model.Account, error) {
	a, err := scanAccount(s.db.QueryRow(ctx, `UPDATE accounts SET wallet_address = $2 WHERE id = $1
		RETURNING `+accountColumns, id, wallet))
	if isUniqueViolation(err) {
		return nil, ErrDuplicate
	}
	if err != nil {
		return nil, noRows(err, ErrNotFound, "link wallet")
	}
	return a, nil
}

func (s *PostgresStore) CreditDeposit(ctx context.Context, id string, amount decimal.Decimal, at time.Time) (*model.Account, error) {
	query := `UPDATE accounts
		SET balance = balance + $2, wager_required = wager_required + $2, last_activity_at = $3
		WHERE id = $1
		RETURNING ` + accountColumns
	a, err := scanAccount(s.db.QueryRow(ctx, query, id, amount, at))
	if err != nil {
		return nil, noRows(err, ErrNotFound, "credit deposit")
	}
	return a, nil
}

func (s *PostgresStore) SettleAccountBet(ctx context.Context, id string, bet, prize decimal.Decimal, at time.Time) (*model.Account, error) {
	query := `UPDATE accounts
		SET balance = balance - $2 + $3, wager_completed = wager_completed + $2, last_activity_at = $4
		WHERE id = $1 AND balance >= $2
		RETURNING ` + accountColumns
	a, err := scanAccount(s.db.QueryRow(ctx, query, id, bet, prize, at))
	if err != nil {
		return nil, noRows(err, ErrConditionFailed, "settle account bet")
	}
	return a, nil
}

func (s *PostgresStore) DebitWithdrawal(ctx context.Context, id string, amount decimal.Decimal, at time.Time) (*model.Account, error) {
	query := `UPDATE accounts
		SET balance = balance - $2, last_activity_at = $3
		WHERE id = $1 AND balance >= $2 AND wager_completed >= wager_required
		RETURNING ` + accountColumns
	a, err := scanAccount(s.db.QueryRow(ctx, query, id, amount, at))
	if err != nil {
		return nil, noRows(err, ErrConditionFailed, "debit withdrawal")
	}
	return a, nil
}

func (s *PostgresStore) TouchAccount(ctx context.Context, id string, at time.Time) error {
	tag, err := s.db.Exec(ctx, `UPDATE accounts SET last_activity_at = $2 WHERE id = $1`, id, at)
	if err != nil {
		return fmt.Errorf("touch account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) RecordTransaction(ctx context.Context, t *model.AccountTransaction) error {
	query := `INSERT INTO account_transactions
		(id, account_id, type, amount, balance_after, method, destination, reference, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := s.db.Exec(ctx, query, t.ID, t.AccountID, t.Type, t.Amount, t.BalanceAfter,
		t.Method, t.Destination, t.Reference, t.Status, t.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert account transaction: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListTransactions(ctx context.Context, accountID string, limit int) ([]model.AccountTransaction, error) {
	query, args := withLimit(`SELECT id, account_id, type, amount, balance_after, method, destination, reference, status, created_at
		FROM account_transactions WHERE account_id = $1 ORDER BY created_at DESC`, limit, []any{accountID})

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list account transactions: %w", err)
	}
	defer rows.Close()

	var out []model.AccountTransaction
	for rows.Next() {
		var t model.AccountTransaction
		if err := rows.Scan(&t.ID, &t.AccountID, &t.Type, &t.Amount, &t.BalanceAfter,
			&t.Method, &t.Destination, &t.Reference, &t.Status, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan account transaction: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
