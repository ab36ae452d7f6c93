package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"prizeledger/internal/model"
	"prizeledger/internal/repository"

	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"
)

const (
	codePrefix   = "001-"
	issueRetries = 5
)

var codeSpace = big.NewInt(1_000_000_000)

// generateCode returns 001- followed by nine random digits.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, codeSpace)
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}
	return fmt.Sprintf("%s%09d", codePrefix, n.Int64()), nil
}

func (l *Ledger) IssueCodes(ctx context.Context, in model.IssueCodeInput, op model.Operator) ([]model.Code, error) {
	if !model.ValidCodeValue(in.Value) {
		return nil, model.NewError(model.CodeInvalidParams, "value must be an integer between %d and %d", model.MinCodeValue, model.MaxCodeValue)
	}
	count := in.Count
	if count == 0 {
		count = 1
	}
	if count < 1 || count > maxIssueCount {
		return nil, model.NewError(model.CodeInvalidParams, "count must be between 1 and %d", maxIssueCount)
	}
	explicit := model.NormalizeCode(in.Code)
	if explicit != "" && count != 1 {
		return nil, model.NewError(model.CodeInvalidParams, "an explicit code can only be issued once")
	}

	out := make([]model.Code, 0, count)
	for i := 0; i < count; i++ {
		c, err := l.issueOne(ctx, in.Value, explicit, op)
		if err != nil {
			return out, err
		}
		out = append(out, *c)
	}
	l.log.Info("codes issued", zap.Int("count", len(out)), zap.Int64("value", in.Value), zap.String("operator", op.ID))
	return out, nil
}

func (l *Ledger) issueOne(ctx context.Context, value int64, explicit string, op model.Operator) (*model.Code, error) {
	now := l.now()
	c := &model.Code{
		Value:      value,
		CreatedBy:  op.ID,
		CreatedAt:  now,
		SoldAt:     &now,
		SoldBy:     op.ID,
		SoldByName: op.Name,
	}

	if explicit != "" {
		c.Code = explicit
		err := l.store.CreateCode(ctx, c)
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, model.NewError(model.CodeDuplicateCode, "code %s already exists", explicit)
		}
		if err != nil {
			return nil, storageErr("create code", err)
		}
		return c, nil
	}

	b := retry.WithMaxRetries(issueRetries, retry.NewConstant(time.Millisecond))
	err := retry.Do(ctx, b, func(ctx context.Context) error {
		code, err := l.newCode()
		if err != nil {
			return err
		}
		c.Code = code
		err = l.store.CreateCode(ctx, c)
		if errors.Is(err, repository.ErrDuplicate) {
			l.log.Debug("generated code collided, retrying", zap.String("code", code))
			return retry.RetryableError(err)
		}
		return err
	})
	if err != nil {
		return nil, storageErr("issue code", err)
	}
	return c, nil
}

// Redeem spends a code on a new play session. A second redeem of a code whose
// session still holds value returns that session with Recovered set.
func (l *Ledger) Redeem(ctx context.Context, raw string) (*model.SessionView, error) {
	code := model.NormalizeCode(raw)
	if code == "" {
		return nil, model.NewError(model.CodeInvalidParams, "code is required")
	}
	now := l.now()

	c, err := l.store.MarkCodeUsed(ctx, code, code, now)
	if err == nil {
		sess, _, err := l.store.CreateSession(ctx, newSession(c, now))
		if err != nil {
			return nil, storageErr("create session", err)
		}
		l.log.Info("code redeemed", zap.String("code", code), zap.Int64("credits", c.Value))
		v := sess.View()
		return &v, nil
	}
	if !errors.Is(err, repository.ErrConditionFailed) {
		return nil, storageErr("mark code used", err)
	}

	c, err = l.store.GetCode(ctx, code)
	if isNotFound(err) {
		return nil, model.ErrCodeNotFound
	}
	if err != nil {
		return nil, storageErr("get code", err)
	}
	if c.RedeemedIntoAccount() {
		return nil, model.ErrAlreadyUsed
	}

	// The code is spent on a session. Insert-if-absent heals a crash between
	// marking the code and creating its session.
	sess, created, err := l.store.CreateSession(ctx, newSession(c, now))
	if err != nil {
		return nil, storageErr("create session", err)
	}
	if !created && !sess.HasValue() {
		return nil, model.ErrAlreadyUsed
	}
	l.log.Info("session recovered", zap.String("code", code), zap.Bool("recreated", created))
	v := sess.View()
	v.Recovered = true
	return &v, nil
}

func newSession(c *model.Code, now time.Time) *model.Session {
	return &model.Session{
		Code:          c.Code,
		CreditsIssued: c.Value,
		StartedAt:     now,
		UpdatedAt:     now,
	}
}

func (l *Ledger) GetSession(ctx context.Context, raw string) (*model.SessionView, error) {
	sess, err := l.loadSession(ctx, raw)
	if err != nil {
		return nil, err
	}
	v := sess.View()
	return &v, nil
}

func (l *Ledger) loadSession(ctx context.Context, raw string) (*model.Session, error) {
	code := model.NormalizeCode(raw)
	if code == "" {
		return nil, model.NewError(model.CodeInvalidParams, "code is required")
	}
	sess, err := l.store.GetSession(ctx, code)
	if isNotFound(err) {
		return nil, model.ErrSessionNotFound
	}
	if err != nil {
		return nil, storageErr("get session", err)
	}
	return sess, nil
}
