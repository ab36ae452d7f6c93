package repository

import (
	"context"
	"fmt"
	"time"

	"prizeledger/internal/model"
)

const requestColumns = `id, code, game_id, amount, player_name, player_phone, player_country, status,
	seller_id, created_at, processed_at, processed_by, processed_by_name, notes`

func scanRequest(row rowScanner) (*model.PayoutRequest, error) {
	var r model.PayoutRequest
	err := row.Scan(&r.ID, &r.Code, &r.GameID, &r.Amount, &r.PlayerName, &r.PlayerPhone, &r.PlayerCountry,
		&r.Status, &r.SellerID, &r.CreatedAt, &r.ProcessedAt, &r.ProcessedBy, &r.ProcessedByName, &r.Notes)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// CreatePayoutRequest holds the session and inserts the request in one
// statement; the insert sees no row unless the hold matched.
func (s *PostgresStore) CreatePayoutRequest(ctx context.Context, r *model.PayoutRequest) error {
	query := `WITH held AS (
			UPDATE sessions SET payout_hold = TRUE, updated_at = $10
			WHERE code = $2 AND total_winnings = $4 AND claimed = FALSE AND payout_hold = FALSE
			RETURNING code
		)
		INSERT INTO payout_requests
			(id, code, game_id, amount, player_name, player_phone, player_country, status, seller_id, created_at, notes)
		SELECT $1, held.code, $3, $4, $5, $6, $7, $8, $9, $10, $11 FROM held`
	tag, err := s.db.Exec(ctx, query, r.ID, r.Code, r.GameID, r.Amount, r.PlayerName, r.PlayerPhone,
		r.PlayerCountry, r.Status, r.SellerID, r.CreatedAt, r.Notes)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("insert payout request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := s.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM payout_requests WHERE code = $1)`, r.Code).Scan(&exists); err != nil {
			return fmt.Errorf("check payout request: %w", err)
		}
		if exists {
			return ErrDuplicate
		}
		return ErrConditionFailed
	}
	return nil
}

func (s *PostgresStore) GetPayoutRequest(ctx context.Context, id string) (*model.PayoutRequest, error) {
	r, err := scanRequest(s.db.QueryRow(ctx, `SELECT `+requestColumns+` FROM payout_requests WHERE id = $1`, id))
	if err != nil {
		return nil, noRows(err, ErrNotFound, "select payout request")
	}
	return r, nil
}

func (s *PostgresStore) GetPayoutRequestByCode(ctx context.Context, code string) (*model.PayoutRequest, error) {
	r, err := scanRequest(s.db.QueryRow(ctx, `SELECT `+requestColumns+` FROM payout_requests WHERE code = $1`, code))
	if err != nil {
		return nil, noRows(err, ErrNotFound, "select payout request by code")
	}
	return r, nil
}

func (s *PostgresStore) ListPayoutRequests(ctx context.Context, f PayoutRequestFilter) ([]model.PayoutRequest, error) {
	var conds []string
	var args []any
	if f.Status != "" {
		args = append(args, f.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	query, args := withLimit(`SELECT `+requestColumns+` FROM payout_requests`+where(conds)+` ORDER BY created_at DESC`, f.Limit, args)

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list payout requests: %w", err)
	}
	defer rows.Close()

	var out []model.PayoutRequest
	for rows.Next() {
		r, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payout request: %w", err)
		}
		out = append(out, *r)
	}
	return out, rows.Err()
}

func (s *PostgresStore) TransitionPayoutRequest(ctx context.Context, id string, from, to model.PayoutStatus, op model.Operator, notes string, at time.Time) (*model.PayoutRequest, error) {
	query := `WITH moved AS (
			UPDATE payout_requests
			SET status = $3, processed_at = $4, processed_by = $5, processed_by_name = $6,
				notes = COALESCE(NULLIF($7::TEXT, ''), notes)
			WHERE id = $1 AND status = $2
			RETURNING ` + requestColumns + `
		), released AS (
			UPDATE sessions SET payout_hold = FALSE, updated_at = $4
			WHERE $3::TEXT = 'rejected' AND claimed = FALSE AND code IN (SELECT code FROM moved)
		)
		SELECT ` + requestColumns + ` FROM moved`
	r, err := scanRequest(s.db.QueryRow(ctx, query, id, from, to, at, op.ID, op.Name, notes))
	if err != nil {
		return nil, noRows(err, ErrConditionFailed, "transition payout request")
	}
	return r, nil
}

const payoutColumns = `id, code, amount, type, player_name, player_phone, player_country,
	paid_by, paid_by_name, paid_at, request_id, notes`

func scanPayout(row rowScanner) (*model.Payout, error) {
	var p model.Payout
	err := row.Scan(&p.ID, &p.Code, &p.Amount, &p.Type, &p.PlayerName, &p.PlayerPhone, &p.PlayerCountry,
		&p.PaidBy, &p.PaidByName, &p.PaidAt, &p.RequestID, &p.Notes)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *PostgresStore) CreatePayout(ctx context.Context, p *model.Payout) error {
	query := `INSERT INTO payouts (` + payoutColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := s.db.Exec(ctx, query, p.ID, p.Code, p.Amount, p.Type, p.PlayerName, p.PlayerPhone,
		p.PlayerCountry, p.PaidBy, p.PaidByName, p.PaidAt, p.RequestID, p.Notes)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("insert payout: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetPayoutByCode(ctx context.Context, code string) (*model.Payout, error) {
	p, err := scanPayout(s.db.QueryRow(ctx, `SELECT `+payoutColumns+` FROM payouts WHERE code = $1`, code))
	if err != nil {
		return nil, noRows(err, ErrNotFound, "select payout")
	}
	return p, nil
}

func (s *PostgresStore) ListPayouts(ctx context.Context, f PayoutFilter) ([]model.Payout, error) {
	var conds []string
	var args []any
	if f.PaidBy != "" {
		args = append(args, f.PaidBy)
		conds = append(conds, fmt.Sprintf("paid_by = $%d", len(args)))
	}
	query, args := withLimit(`SELECT `+payoutColumns+` FROM payouts`+where(conds)+` ORDER BY paid_at DESC`, f.Limit, args)
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list payouts: %w", err)
	}
	defer rows.Close()

	var out []model.Payout
	for rows.Next() {
		p, err := scanPayout(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payout: %w", err)
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (s *PostgresStore) PayoutStats(ctx context.Context, paidBy string, now time.Time) (model.PayoutStats, error) {
	var st model.PayoutStats
	args := []any{startOfDay(now), startOfMonth(now)}
	var conds []string
	if paidBy != "" {
		args = append(args, paidBy)
		conds = append(conds, "paid_by = $3")
	}
	query := `SELECT
			count(*), COALESCE(sum(amount), 0),
			count(*) FILTER (WHERE paid_at >= $1), COALESCE(sum(amount) FILTER (WHERE paid_at >= $1), 0),
			count(*) FILTER (WHERE paid_at >= $2), COALESCE(sum(amount) FILTER (WHERE paid_at >= $2), 0)
		FROM payouts` + where(conds)
	err := s.db.QueryRow(ctx, query, args...).Scan(
		&st.TotalPayouts, &st.TotalAmount,
		&st.TodayPayouts, &st.TodayAmount,
		&st.MonthPayouts, &st.MonthAmount,
	)
	if err != nil {
		return st, fmt.Errorf("payout stats: %w", err)
	}
	return st, nil
}
