package repository

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

//go:embed consume_code.lua
var consumeCodeScript string

// expiredGrace keeps an expired code around long enough to be reported as
// expired rather than missing.
const expiredGrace = time.Hour

// PendingCode is a hashed two-factor code awaiting verification.
type PendingCode struct {
	Hash      string
	ExpiresAt time.Time
}

func (p *PendingCode) Expired(now time.Time) bool {
	return !now.Before(p.ExpiresAt)
}

// TwoFactorStore holds at most one pending code and one withdrawal clearance
// per account.
type TwoFactorStore interface {
	// SavePendingCode overwrites any previous code for the account.
	SavePendingCode(ctx context.Context, accountID string, code PendingCode) error
	PendingCode(ctx context.Context, accountID string) (*PendingCode, error)
	// DeletePendingCode removes the code only if it still carries hash, and
	// reports whether this call removed it.
	DeletePendingCode(ctx context.Context, accountID, hash string) (bool, error)
	GrantClearance(ctx context.Context, accountID string, ttl time.Duration) error
	// ConsumeClearance reports whether a clearance existed; it is gone either way.
	ConsumeClearance(ctx context.Context, accountID string) (bool, error)
}

type RedisTwoFactorStore struct {
	rdb    *redis.Client
	script *redis.Script
}

var _ TwoFactorStore = (*RedisTwoFactorStore)(nil)

func NewRedisTwoFactorStore(rdb *redis.Client) *RedisTwoFactorStore {
	return &RedisTwoFactorStore{rdb: rdb, script: redis.NewScript(consumeCodeScript)}
}

func pendingKey(accountID string) string   { return fmt.Sprintf("2fa:code:%s", accountID) }
func clearanceKey(accountID string) string { return fmt.Sprintf("2fa:clearance:%s", accountID) }

func (s *RedisTwoFactorStore) SavePendingCode(ctx context.Context, accountID string, code PendingCode) error {
	key := pendingKey(accountID)
	ttl := time.Until(code.ExpiresAt) + expiredGrace
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.HSet(ctx, key, "hash", code.Hash, "expires_at", code.ExpiresAt.UnixMilli())
		pipe.PExpire(ctx, key, ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("save pending code: %w", err)
	}
	return nil
}

func (s *RedisTwoFactorStore) PendingCode(ctx context.Context, accountID string) (*PendingCode, error) {
	fields, err := s.rdb.HGetAll(ctx, pendingKey(accountID)).Result()
	if err != nil {
		return nil, fmt.Errorf("load pending code: %w", err)
	}
	hash, ok := fields["hash"]
	if !ok {
		return nil, ErrNotFound
	}
	ms, err := strconv.ParseInt(fields["expires_at"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parse pending code expiry: %w", err)
	}
	return &PendingCode{Hash: hash, ExpiresAt: time.UnixMilli(ms)}, nil
}

func (s *RedisTwoFactorStore) DeletePendingCode(ctx context.Context, accountID, hash string) (bool, error) {
	n, err := s.script.Run(ctx, s.rdb, []string{pendingKey(accountID)}, hash).Int64()
	if err != nil {
		return false, fmt.Errorf("error executing Lua script: %w", err)
	}
	return n == 1, nil
}

func (s *RedisTwoFactorStore) GrantClearance(ctx context.Context, accountID string, ttl time.Duration) error {
	if err := s.rdb.Set(ctx, clearanceKey(accountID), 1, ttl).Err(); err != nil {
		return fmt.Errorf("grant clearance: %w", err)
	}
	return nil
}

func (s *RedisTwoFactorStore) ConsumeClearance(ctx context.Context, accountID string) (bool, error) {
	err := s.rdb.GetDel(ctx, clearanceKey(accountID)).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("consume clearance: %w", err)
	}
	return true, nil
}

// MemoryTwoFactorStore is the in-process TwoFactorStore used by tests.
type MemoryTwoFactorStore struct {
	mu         sync.Mutex
	codes      map[string]PendingCode
	clearances map[string]time.Time
	now        func() time.Time
}

var _ TwoFactorStore = (*MemoryTwoFactorStore)(nil)

func NewMemoryTwoFactorStore(now func() time.Time) *MemoryTwoFactorStore {
	if now == nil {
		now = time.Now
	}
	return &MemoryTwoFactorStore{
		codes:      make(map[string]PendingCode),
		clearances: make(map[string]time.Time),
		now:        now,
	}
}

func (s *MemoryTwoFactorStore) SavePendingCode(_ context.Context, accountID string, code PendingCode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[accountID] = code
	return nil
}

func (s *MemoryTwoFactorStore) PendingCode(_ context.Context, accountID string) (*PendingCode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	code, ok := s.codes[accountID]
	if !ok {
		return nil, ErrNotFound
	}
	return &code, nil
}

func (s *MemoryTwoFactorStore) DeletePendingCode(_ context.Context, accountID, hash string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	code, ok := s.codes[accountID]
	if !ok || code.Hash != hash {
		return false, nil
	}
	delete(s.codes, accountID)
	return true, nil
}

func (s *MemoryTwoFactorStore) GrantClearance(_ context.Context, accountID string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearances[accountID] = s.now().Add(ttl)
	return nil
}

func (s *MemoryTwoFactorStore) ConsumeClearance(_ context.Context, accountID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	expires, ok := s.clearances[accountID]
	delete(s.clearances, accountID)
	return ok && s.now().Before(expires), nil
}
