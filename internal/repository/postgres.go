package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"prizeledger/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PostgresStore is the production Store. Every state change is a single
// conditional statement, so concurrent callers race on the row, not in Go.
type PostgresStore struct {
	db *pgxpool.Pool
}

var _ Store = (*PostgresStore)(nil)

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// noRows maps pgx.ErrNoRows to the given sentinel and wraps everything else.
func noRows(err error, sentinel error, op string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return sentinel
	}
	return fmt.Errorf("%s: %w", op, err)
}

func where(conds []string) string {
	if len(conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(conds, " AND ")
}

func withLimit(query string, limit int, args []any) (string, []any) {
	if limit <= 0 {
		return query, args
	}
	args = append(args, limit)
	return fmt.Sprintf("%s LIMIT $%d", query, len(args)), args
}

// ── codes ────────────────────────────────────────────────────────────────────

const codeColumns = `code, value, used, used_at, used_by, created_by, created_at, sold_at, sold_by, sold_by_name`

func scanCode(row rowScanner) (*model.Code, error) {
	var c model.Code
	err := row.Scan(&c.Code, &c.Value, &c.Used, &c.UsedAt, &c.UsedBy, &c.CreatedBy, &c.CreatedAt,
		&c.SoldAt, &c.SoldBy, &c.SoldByName)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *PostgresStore) CreateCode(ctx context.Context, c *model.Code) error {
	query := `INSERT INTO codes (code, value, used, created_by, created_at, sold_at, sold_by, sold_by_name)
		VALUES ($1, $2, FALSE, $3, $4, $5, $6, $7)`
	_, err := s.db.Exec(ctx, query, c.Code, c.Value, c.CreatedBy, c.CreatedAt, c.SoldAt, c.SoldBy, c.SoldByName)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("insert code: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetCode(ctx context.Context, code string) (*model.Code, error) {
	c, err := scanCode(s.db.QueryRow(ctx, `SELECT `+codeColumns+` FROM codes WHERE code = $1`, code))
	if err != nil {
		return nil, noRows(err, ErrNotFound, "select code")
	}
	return c, nil
}

func (s *PostgresStore) MarkCodeUsed(ctx context.Context, code, usedBy string, at time.Time) (*model.Code, error) {
	query := `UPDATE codes SET used = TRUE, used_at = $3, used_by = $2
		WHERE code = $1 AND used = FALSE
		RETURNING ` + codeColumns
	c, err := scanCode(s.db.QueryRow(ctx, query, code, usedBy, at))
	if err != nil {
		return nil, noRows(err, ErrConditionFailed, "mark code used")
	}
	return c, nil
}

func (s *PostgresStore) ListCodes(ctx context.Context, f CodeFilter) ([]model.Code, error) {
	var conds []string
	var args []any
	if f.Used != nil {
		args = append(args, *f.Used)
		conds = append(conds, fmt.Sprintf("used = $%d", len(args)))
	}
	if f.CreatedBy != "" {
		args = append(args, f.CreatedBy)
		conds = append(conds, fmt.Sprintf("created_by = $%d", len(args)))
	}
	if f.SoldBy != "" {
		args = append(args, f.SoldBy)
		conds = append(conds, fmt.Sprintf("sold_by = $%d", len(args)))
	}
	clause := where(conds)
	query, args := withLimit(`SELECT `+codeColumns+` FROM codes`+clause+` ORDER BY created_at DESC`, f.Limit, args)

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list codes: %w", err)
	}
	defer rows.Close()

	var out []model.Code
	for rows.Next() {
		c, err := scanCode(rows)
		if err != nil {
			return nil, fmt.Errorf("scan code: %w", err)
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func (s *PostgresStore) CodeStats(ctx context.Context) (model.CodeStats, error) {
	var st model.CodeStats
	query := `SELECT count(*),
			count(*) FILTER (WHERE used),
			COALESCE(sum(value), 0)::BIGINT,
			COALESCE(sum(value) FILTER (WHERE used), 0)::BIGINT
		FROM codes`
	if err := s.db.QueryRow(ctx, query).Scan(&st.Total, &st.Used, &st.TotalValue, &st.UsedValue); err != nil {
		return st, fmt.Errorf("code stats: %w", err)
	}
	st.Unused = st.Total - st.Used
	return st, nil
}

func (s *PostgresStore) SalesStats(ctx context.Context, sellerID string, now time.Time) (model.SalesStats, error) {
	var st model.SalesStats
	args := []any{startOfDay(now), startOfMonth(now)}
	var conds []string
	if sellerID != "" {
		args = append(args, sellerID)
		conds = append(conds, "sold_by = $3")
	}
	query := `SELECT count(*), COALESCE(sum(value), 0)::BIGINT,
			count(*) FILTER (WHERE COALESCE(sold_at, created_at) >= $1),
			COALESCE(sum(value) FILTER (WHERE COALESCE(sold_at, created_at) >= $1), 0)::BIGINT,
			count(*) FILTER (WHERE COALESCE(sold_at, created_at) >= $2),
			COALESCE(sum(value) FILTER (WHERE COALESCE(sold_at, created_at) >= $2), 0)::BIGINT
		FROM codes` + where(conds)
	err := s.db.QueryRow(ctx, query, args...).Scan(
		&st.TotalSales, &st.TotalRevenue,
		&st.TodaySales, &st.TodayRevenue,
		&st.MonthSales, &st.MonthRevenue,
	)
	if err != nil {
		return st, fmt.Errorf("sales stats: %w", err)
	}
	// one play per credit
	st.TotalPlays = st.TotalRevenue
	return st, nil
}

func (s *PostgresStore) TopSellers(ctx context.Context, limit int) ([]model.SellerSales, error) {
	query, args := withLimit(`SELECT sold_by, max(sold_by_name), count(*), COALESCE(sum(value), 0)::BIGINT
		FROM codes WHERE sold_by <> ''
		GROUP BY sold_by
		ORDER BY 4 DESC, 3 DESC, sold_by`, limit, nil)
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("top sellers: %w", err)
	}
	defer rows.Close()

	var out []model.SellerSales
	for rows.Next() {
		var ss model.SellerSales
		if err := rows.Scan(&ss.SellerID, &ss.SellerName, &ss.TotalSales, &ss.TotalRevenue); err != nil {
			return nil, fmt.Errorf("scan seller sales: %w", err)
		}
		out = append(out, ss)
	}
	return out, rows.Err()
}

// ── sessions ─────────────────────────────────────────────────────────────────

const sessionColumns = `code, credits_issued, credits_used, total_winnings, claimed, claimed_at, payout_hold, last_game_id, started_at, updated_at`

func scanSession(row rowScanner) (*model.Session, error) {
	var ss model.Session
	err := row.Scan(&ss.Code, &ss.CreditsIssued, &ss.CreditsUsed, &ss.TotalWinnings,
		&ss.Claimed, &ss.ClaimedAt, &ss.PayoutHold, &ss.LastGameID, &ss.StartedAt, &ss.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &ss, nil
}

func (s *PostgresStore) CreateSession(ctx context.Context, ss *model.Session) (*model.Session, bool, error) {
	query := `INSERT INTO sessions (code, credits_issued, credits_used, total_winnings, claimed, last_game_id, started_at, updated_at)
		VALUES ($1, $2, 0, 0, FALSE, '', $3, $3)
		ON CONFLICT (code) DO NOTHING
		RETURNING ` + sessionColumns
	created, err := scanSession(s.db.QueryRow(ctx, query, ss.Code, ss.CreditsIssued, ss.StartedAt))
	if err == nil {
		return created, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, fmt.Errorf("insert session: %w", err)
	}
	existing, err := s.GetSession(ctx, ss.Code)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

func (s *PostgresStore) GetSession(ctx context.Context, code string) (*model.Session, error) {
	ss, err := scanSession(s.db.QueryRow(ctx, `SELECT `+sessionColumns+` FROM sessions WHERE code = $1`, code))
	if err != nil {
		return nil, noRows(err, ErrNotFound, "select session")
	}
	return ss, nil
}

func (s *PostgresStore) SettleSessionPlay(ctx context.Context, code string, bet int64, prize decimal.Decimal, gameID string, at time.Time) (*model.Session, error) {
	query := `UPDATE sessions
		SET credits_used = credits_used + $2,
			total_winnings = total_winnings + $3,
			last_game_id = $4,
			updated_at = $5
		WHERE code = $1 AND credits_issued - credits_used >= $2 AND claimed = FALSE AND payout_hold = FALSE
		RETURNING ` + sessionColumns
	ss, err := scanSession(s.db.QueryRow(ctx, query, code, bet, prize, gameID, at))
	if err != nil {
		return nil, noRows(err, ErrConditionFailed, "settle session play")
	}
	return ss, nil
}

func (s *PostgresStore) ClaimSession(ctx context.Context, code string, at time.Time) (bool, error) {
	tag, err := s.db.Exec(ctx, `UPDATE sessions SET claimed = TRUE, claimed_at = $2, updated_at = $2
		WHERE code = $1 AND claimed = FALSE`, code, at)
	if err != nil {
		return false, fmt.Errorf("claim session: %w", err)
	}
	if tag.RowsAffected() == 1 {
		return true, nil
	}
	if _, err := s.GetSession(ctx, code); err != nil {
		return false, err
	}
	return false, nil
}

func (s *PostgresStore) ConvertSessionWinnings(ctx context.Context, code string, expected decimal.Decimal, credits int64, at time.Time) (*model.Session, error) {
	query := `UPDATE sessions
		SET credits_issued = credits_issued + $3, total_winnings = 0, updated_at = $4
		WHERE code = $1 AND total_winnings = $2 AND claimed = FALSE AND payout_hold = FALSE
		RETURNING ` + sessionColumns
	ss, err := scanSession(s.db.QueryRow(ctx, query, code, expected, credits, at))
	if err != nil {
		return nil, noRows(err, ErrConditionFailed, "convert winnings")
	}
	return ss, nil
}

func (s *PostgresStore) HoldSessionWinnings(ctx context.Context, code string, expected decimal.Decimal, at time.Time) (*model.Session, error) {
	query := `UPDATE sessions SET payout_hold = TRUE, updated_at = $3
		WHERE code = $1 AND total_winnings = $2 AND claimed = FALSE AND payout_hold = FALSE
		RETURNING ` + sessionColumns
	ss, err := scanSession(s.db.QueryRow(ctx, query, code, expected, at))
	if err != nil {
		return nil, noRows(err, ErrConditionFailed, "hold winnings")
	}
	return ss, nil
}

// ── plays ────────────────────────────────────────────────────────────────────

func (s *PostgresStore) RecordPlay(ctx context.Context, p *model.Play) error {
	query := `INSERT INTO plays (id, session_code, account_id, game_id, bet, prize, outcome, played_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	if _, err := s.db.Exec(ctx, query, p.ID, p.SessionCode, p.AccountID, p.GameID, p.Bet, p.Prize, p.Outcome, p.PlayedAt); err != nil {
		return fmt.Errorf("insert play: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListPlays(ctx context.Context, f PlayFilter) ([]model.Play, error) {
	var conds []string
	var args []any
	if f.SessionCode != "" {
		args = append(args, f.SessionCode)
		conds = append(conds, fmt.Sprintf("session_code = $%d", len(args)))
	}
	if f.AccountID != "" {
		args = append(args, f.AccountID)
		conds = append(conds, fmt.Sprintf("account_id = $%d", len(args)))
	}
	clause := where(conds)
	query, args := withLimit(`SELECT id, session_code, account_id, game_id, bet, prize, outcome, played_at
		FROM plays`+clause+` ORDER BY played_at DESC`, f.Limit, args)

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list plays: %w", err)
	}
	defer rows.Close()

	var out []model.Play
	for rows.Next() {
		var p model.Play
		if err := rows.Scan(&p.ID, &p.SessionCode, &p.AccountID, &p.GameID, &p.Bet, &p.Prize, &p.Outcome, &p.PlayedAt); err != nil {
			return nil, fmt.Errorf("scan play: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *PostgresStore) PlayStats(ctx context.Context) ([]model.GameStats, error) {
	rows, err := s.db.Query(ctx, `SELECT game_id, count(*), count(*) FILTER (WHERE prize > 0),
			COALESCE(sum(bet), 0), COALESCE(sum(prize), 0)
		FROM plays GROUP BY game_id ORDER BY game_id`)
	if err != nil {
		return nil, fmt.Errorf("play stats: %w", err)
	}
	defer rows.Close()

	var out []model.GameStats
	for rows.Next() {
		var st model.GameStats
		if err := rows.Scan(&st.GameID, &st.Plays, &st.Wins, &st.TotalBet, &st.TotalPrize); err != nil {
			return nil, fmt.Errorf("scan play stats: %w", err)
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

func (s *PostgresStore) RecordConversion(ctx context.Context, c *model.CreditConversion) error {
	query := `INSERT INTO credit_conversions
		(id, code, game_id, amount, credits, player_name, player_phone, player_country, converted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := s.db.Exec(ctx, query, c.ID, c.Code, c.GameID, c.Amount, c.Credits,
		c.PlayerName, c.PlayerPhone, c.PlayerCountry, c.ConvertedAt)
	if err != nil {
		return fmt.Errorf("insert credit conversion: %w", err)
	}
	return nil
}
