package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"prizeledger/internal/model"
	"prizeledger/internal/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	minPlayerName  = 2
	minPlayerPhone = 6
)

func validateContact(c model.PlayerContact) (model.PlayerContact, error) {
	c.Name = strings.TrimSpace(c.Name)
	c.Phone = strings.TrimSpace(c.Phone)
	c.Country = strings.TrimSpace(c.Country)
	switch {
	case len(c.Name) < minPlayerName:
		return c, model.NewError(model.CodeInvalidParams, "full name is required (min %d characters)", minPlayerName)
	case len(c.Phone) < minPlayerPhone:
		return c, model.NewError(model.CodeInvalidParams, "valid phone number is required")
	case c.Country == "":
		return c, model.NewError(model.CodeInvalidParams, "country is required")
	}
	return c, nil
}

// ConvertWinnings turns a session's whole winnings back into play credits.
func (l *Ledger) ConvertWinnings(ctx context.Context, in model.ConvertInput) (*model.ConvertResult, error) {
	contact, err := validateContact(in.PlayerContact)
	if err != nil {
		return nil, err
	}
	if !in.Amount.IsPositive() {
		return nil, model.NewError(model.CodeInvalidParams, "amount must be positive")
	}

	sess, err := l.loadSession(ctx, in.Code)
	if err != nil {
		return nil, err
	}
	if err := winningsAvailable(sess, in.Amount); err != nil {
		return nil, err
	}
	credits := sess.TotalWinnings.Floor().IntPart()
	if credits < 1 {
		return nil, model.NewError(model.CodeInvalidParams, "winnings below one credit cannot be converted")
	}

	now := l.now()
	updated, err := l.store.ConvertSessionWinnings(ctx, sess.Code, in.Amount, credits, now)
	if errors.Is(err, repository.ErrConditionFailed) {
		return nil, l.winningsConflict(ctx, sess.Code, in.Amount)
	}
	if err != nil {
		return nil, storageErr("convert winnings", err)
	}

	gameID := in.GameID
	if gameID == "" {
		gameID = sess.LastGameID
	}
	if gameID == "" {
		gameID = "unknown"
	}
	conv := &model.CreditConversion{
		ID:            newID(),
		Code:          sess.Code,
		GameID:        gameID,
		Amount:        in.Amount,
		Credits:       credits,
		PlayerName:    contact.Name,
		PlayerPhone:   contact.Phone,
		PlayerCountry: contact.Country,
		ConvertedAt:   now,
	}
	l.audit(ctx, "credit conversion", func(ctx context.Context) error { return l.store.RecordConversion(ctx, conv) })
	l.log.Info("winnings converted", zap.String("code", sess.Code), zap.Int64("credits", credits))

	return &model.ConvertResult{
		ConversionID: conv.ID,
		Credits:      credits,
		NewCredits:   updated.CreditsLeft(),
	}, nil
}

// RequestPayout files a cash-out request for a session's full winnings.
func (l *Ledger) RequestPayout(ctx context.Context, in model.PayoutRequestInput) (*model.PayoutRequest, error) {
	contact, err := validateContact(in.PlayerContact)
	if err != nil {
		return nil, err
	}
	if !in.Amount.IsPositive() {
		return nil, model.NewError(model.CodeInvalidParams, "amount must be positive")
	}
	code := model.NormalizeCode(in.Code)
	if code == "" {
		return nil, model.NewError(model.CodeInvalidParams, "code is required")
	}

	_, err = l.store.GetPayoutRequestByCode(ctx, code)
	if err == nil {
		return nil, model.ErrDuplicateRequest
	}
	if !isNotFound(err) {
		return nil, storageErr("get payout request", err)
	}

	sess, err := l.loadSession(ctx, code)
	if err != nil {
		return nil, err
	}
	if err := winningsAvailable(sess, in.Amount); err != nil {
		return nil, err
	}

	var seller string
	if c, err := l.store.GetCode(ctx, code); err == nil {
		seller = c.SoldBy
	} else if !isNotFound(err) {
		return nil, storageErr("get code", err)
	}

	gameID := in.GameID
	if gameID == "" {
		gameID = sess.LastGameID
	}
	req := &model.PayoutRequest{
		ID:            newID(),
		Code:          code,
		GameID:        gameID,
		Amount:        in.Amount,
		PlayerName:    contact.Name,
		PlayerPhone:   contact.Phone,
		PlayerCountry: contact.Country,
		Status:        model.StatusPending,
		SellerID:      seller,
		CreatedAt:     l.now(),
	}
	err = l.store.CreatePayoutRequest(ctx, req)
	if errors.Is(err, repository.ErrDuplicate) {
		return nil, model.ErrDuplicateRequest
	}
	if errors.Is(err, repository.ErrConditionFailed) {
		if _, rerr := l.store.GetPayoutRequestByCode(ctx, code); rerr == nil {
			return nil, model.ErrDuplicateRequest
		}
		return nil, l.winningsConflict(ctx, code, in.Amount)
	}
	if err != nil {
		return nil, storageErr("create payout request", err)
	}
	l.log.Info("payout requested", zap.String("code", code), zap.String("request_id", req.ID), zap.String("amount", req.Amount.String()))
	return req, nil
}

func (l *Ledger) GetPayoutRequest(ctx context.Context, raw string) (*model.PayoutRequest, error) {
	code := model.NormalizeCode(raw)
	if code == "" {
		return nil, model.NewError(model.CodeInvalidParams, "code is required")
	}
	req, err := l.store.GetPayoutRequestByCode(ctx, code)
	if isNotFound(err) {
		return nil, model.ErrRequestNotFound
	}
	if err != nil {
		return nil, storageErr("get payout request", err)
	}
	return req, nil
}

// ProcessPayoutRequest applies an operator action. Pay is sequenced status,
// then payout record, then session claim; each step is safe to repeat, so a
// retried pay finishes a settlement that stopped halfway.
func (l *Ledger) ProcessPayoutRequest(ctx context.Context, in model.ProcessPayoutInput, op model.Operator) (*model.PayoutRequest, error) {
	if op.ID == "" {
		return nil, model.ErrUnauthorized
	}
	if !in.Action.Valid() {
		return nil, model.NewError(model.CodeInvalidParams, "action must be approve, reject or pay")
	}
	req, err := l.store.GetPayoutRequest(ctx, in.RequestID)
	if isNotFound(err) {
		return nil, model.ErrRequestNotFound
	}
	if err != nil {
		return nil, storageErr("get payout request", err)
	}

	if in.Action == model.ActionPay {
		return l.payRequest(ctx, req, in.Notes, op)
	}

	to, err := model.LegalTransition(req.Status, in.Action)
	if err != nil {
		return nil, err
	}
	updated, err := l.store.TransitionPayoutRequest(ctx, req.ID, req.Status, to, op, in.Notes, l.now())
	if errors.Is(err, repository.ErrConditionFailed) {
		return nil, model.NewError(model.CodeIllegalTransition, "request changed concurrently")
	}
	if err != nil {
		return nil, storageErr("transition payout request", err)
	}
	l.log.Info("payout request processed",
		zap.String("request_id", req.ID), zap.String("status", string(to)), zap.String("operator", op.ID))
	return updated, nil
}

func (l *Ledger) payRequest(ctx context.Context, req *model.PayoutRequest, notes string, op model.Operator) (*model.PayoutRequest, error) {
	paid, err := l.payoutExists(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if paid {
		return nil, model.ErrAlreadyPaid
	}

	// The hold freezes the winnings, so they must still equal the request.
	sess, err := l.store.GetSession(ctx, req.Code)
	if isNotFound(err) {
		return nil, model.ErrSessionNotFound
	}
	if err != nil {
		return nil, storageErr("get session", err)
	}
	if sess.Claimed {
		return nil, model.ErrSessionClaimed
	}
	if !sess.TotalWinnings.Equal(req.Amount) {
		return nil, model.ErrAmountMismatch
	}

	now := l.now()
	updated := req
	if req.Status != model.StatusPaid {
		to, err := model.LegalTransition(req.Status, model.ActionPay)
		if err != nil {
			return nil, err
		}
		updated, err = l.store.TransitionPayoutRequest(ctx, req.ID, req.Status, to, op, notes, now)
		if errors.Is(err, repository.ErrConditionFailed) {
			fresh, rerr := l.store.GetPayoutRequest(ctx, req.ID)
			if rerr != nil {
				return nil, storageErr("reload payout request", rerr)
			}
			if fresh.Status == model.StatusPaid {
				return nil, model.ErrAlreadyPaid
			}
			return nil, model.NewError(model.CodeIllegalTransition, "cannot pay a %s request", fresh.Status)
		}
		if err != nil {
			return nil, storageErr("transition payout request", err)
		}
	} else {
		l.log.Warn("completing interrupted payout", zap.String("request_id", req.ID))
	}

	payout := &model.Payout{
		ID:            newID(),
		Code:          req.Code,
		Amount:        req.Amount,
		Type:          model.PayoutCash,
		PlayerName:    req.PlayerName,
		PlayerPhone:   req.PlayerPhone,
		PlayerCountry: req.PlayerCountry,
		PaidBy:        op.ID,
		PaidByName:    op.Name,
		PaidAt:        now,
		RequestID:     req.ID,
		Notes:         notes,
	}
	if err := l.settle(ctx, payout); err != nil {
		return nil, err
	}
	return updated, nil
}

// DirectPayout records a payout for a code without a player request.
func (l *Ledger) DirectPayout(ctx context.Context, in model.DirectPayoutInput, op model.Operator) (*model.Payout, error) {
	if op.ID == "" {
		return nil, model.ErrUnauthorized
	}
	code := model.NormalizeCode(in.Code)
	if code == "" || !in.Amount.IsPositive() {
		return nil, model.NewError(model.CodeInvalidParams, "code and a positive amount are required")
	}

	paid, err := l.payoutExists(ctx, code)
	if err != nil {
		return nil, err
	}
	if paid {
		return nil, model.ErrAlreadyPaid
	}

	if _, err := l.store.GetPayoutRequestByCode(ctx, code); err == nil {
		return nil, model.ErrPayoutPending
	} else if !isNotFound(err) {
		return nil, storageErr("get payout request", err)
	}

	now := l.now()
	_, err = l.store.GetSession(ctx, code)
	switch {
	case err == nil:
		if err := l.holdForDirectPayout(ctx, code, in.Amount, now); err != nil {
			return nil, err
		}
	case isNotFound(err):
		if _, cerr := l.store.GetCode(ctx, code); isNotFound(cerr) {
			return nil, model.ErrCodeNotFound
		} else if cerr != nil {
			return nil, storageErr("get code", cerr)
		}
	default:
		return nil, storageErr("get session", err)
	}

	payout := &model.Payout{
		ID:         newID(),
		Code:       code,
		Amount:     in.Amount,
		Type:       model.PayoutCash,
		PaidBy:     op.ID,
		PaidByName: op.Name,
		PaidAt:     now,
		Notes:      in.Notes,
	}
	if err := l.settle(ctx, payout); err != nil {
		return nil, err
	}
	return payout, nil
}

// holdForDirectPayout reserves the winnings before the payout row is written.
// A hold with no request behind it is a direct payout that stopped before
// settling, and may be finished.
func (l *Ledger) holdForDirectPayout(ctx context.Context, code string, amount decimal.Decimal, at time.Time) error {
	_, err := l.store.HoldSessionWinnings(ctx, code, amount, at)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repository.ErrConditionFailed) {
		return storageErr("hold winnings", err)
	}
	fresh, err := l.store.GetSession(ctx, code)
	if err != nil {
		return storageErr("reload session", err)
	}
	switch {
	case fresh.Claimed:
		return model.ErrSessionClaimed
	case !fresh.TotalWinnings.Equal(amount):
		return model.ErrAmountMismatch
	}
	if _, err := l.store.GetPayoutRequestByCode(ctx, code); err == nil {
		return model.ErrPayoutPending
	} else if !isNotFound(err) {
		return storageErr("get payout request", err)
	}
	l.log.Warn("completing interrupted direct payout", zap.String("code", code))
	return nil
}

// winningsAvailable reports whether amount can be taken out of the session
// as a conversion or a cash payout.
func winningsAvailable(sess *model.Session, amount decimal.Decimal) error {
	switch {
	case sess.Claimed:
		return model.ErrSessionClaimed
	case sess.PayoutHold:
		return model.ErrPayoutPending
	case !amount.Equal(sess.TotalWinnings):
		return model.ErrAmountMismatch
	}
	return nil
}

// winningsConflict explains a conditional write on the winnings that matched
// nothing, using the session as it is now.
func (l *Ledger) winningsConflict(ctx context.Context, code string, amount decimal.Decimal) error {
	fresh, err := l.store.GetSession(ctx, code)
	if isNotFound(err) {
		return model.ErrSessionNotFound
	}
	if err != nil {
		return storageErr("reload session", err)
	}
	if err := winningsAvailable(fresh, amount); err != nil {
		return err
	}
	return model.ErrAmountMismatch
}

// settle inserts the payout record, which is the pay-once guard, then claims
// the session.
func (l *Ledger) settle(ctx context.Context, p *model.Payout) error {
	err := l.store.CreatePayout(ctx, p)
	if errors.Is(err, repository.ErrDuplicate) {
		return model.ErrAlreadyPaid
	}
	if err != nil {
		return storageErr("create payout", err)
	}

	claimed, err := l.store.ClaimSession(ctx, p.Code, p.PaidAt)
	if err != nil && !isNotFound(err) {
		return storageErr("claim session", err)
	}
	l.log.Info("payout settled",
		zap.String("code", p.Code),
		zap.String("amount", p.Amount.String()),
		zap.String("paid_by", p.PaidBy),
		zap.Bool("claimed", claimed),
	)
	l.publish(repository.TopicPayoutSettled, repository.PayoutSettledEvent{
		PayoutID:      p.ID,
		Code:          p.Code,
		Amount:        p.Amount,
		RequestID:     p.RequestID,
		PlayerName:    p.PlayerName,
		PlayerPhone:   p.PlayerPhone,
		PlayerCountry: p.PlayerCountry,
		PaidBy:        p.PaidBy,
		PaidAt:        p.PaidAt,
	})
	return nil
}

func (l *Ledger) payoutExists(ctx context.Context, code string) (bool, error) {
	_, err := l.store.GetPayoutByCode(ctx, code)
	if err == nil {
		return true, nil
	}
	if isNotFound(err) {
		return false, nil
	}
	return false, storageErr("get payout", err)
}

func (l *Ledger) ListPayoutRequests(ctx context.Context, status model.PayoutStatus, limit int) ([]model.PayoutRequest, error) {
	if status != "" && !status.Valid() {
		return nil, model.NewError(model.CodeInvalidParams, "unknown status %q", status)
	}
	out, err := l.store.ListPayoutRequests(ctx, repository.PayoutRequestFilter{Status: status, Limit: clampLimit(limit)})
	if err != nil {
		return nil, storageErr("list payout requests", err)
	}
	return out, nil
}
