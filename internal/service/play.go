package service

import (
	"context"
	"errors"

	"prizeledger/internal/model"
	"prizeledger/internal/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Play settles one bet against a code session, or against an account
// balance when AccountID is set. The draw happens before the conditional
// write; a lost race discards the draw and nothing is recorded.
func (l *Ledger) Play(ctx context.Context, req model.PlayRequest) (*model.PlayResult, error) {
	if req.AccountID != "" {
		return l.playAccount(ctx, req)
	}
	return l.playSession(ctx, req)
}

func (l *Ledger) playSession(ctx context.Context, req model.PlayRequest) (*model.PlayResult, error) {
	if !req.Bet.IsInteger() || req.Bet.LessThan(decimal.NewFromInt(1)) || req.Bet.GreaterThan(decimal.NewFromInt(l.opts.MaxCodeBet)) {
		return nil, model.NewError(model.CodeInvalidBet, "bet must be a whole number of credits between 1 and %d", l.opts.MaxCodeBet)
	}
	if err := l.engine.Validate(req.GameID, req.Bet, req.Params); err != nil {
		return nil, err
	}
	bet := req.Bet.IntPart()

	sess, err := l.loadSession(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if err := sessionCanBet(sess, bet); err != nil {
		return nil, err
	}

	out, err := l.engine.Play(req.GameID, req.Bet, req.Params)
	if err != nil {
		return nil, err
	}

	now := l.now()
	settled, err := l.store.SettleSessionPlay(ctx, sess.Code, bet, out.Prize, req.GameID, now)
	if errors.Is(err, repository.ErrConditionFailed) {
		// Lost a race with another play or a claim; report against fresh state.
		fresh, rerr := l.store.GetSession(ctx, sess.Code)
		if rerr != nil {
			return nil, storageErr("reload session", rerr)
		}
		if cerr := sessionCanBet(fresh, bet); cerr != nil {
			return nil, cerr
		}
		return nil, model.ErrInsufficientFunds
	}
	if err != nil {
		return nil, storageErr("settle play", err)
	}

	play := &model.Play{
		ID:          newID(),
		SessionCode: sess.Code,
		GameID:      req.GameID,
		Bet:         req.Bet,
		Prize:       out.Prize,
		Outcome:     out.Detail,
		PlayedAt:    now,
	}
	l.recordPlay(ctx, play)

	left := settled.CreditsLeft()
	return &model.PlayResult{
		PlayID:         play.ID,
		Prize:          out.Prize,
		OutcomeDetail:  out.Detail,
		CreditsLeft:    &left,
		TotalWinnings:  settled.TotalWinnings,
		WagerRequired:  decimal.NewFromInt(settled.WagerRequired()),
		WagerCompleted: decimal.NewFromInt(settled.WagerCompleted()),
		WagerMet:       settled.WagerCompleted() >= settled.WagerRequired(),
	}, nil
}

func sessionCanBet(sess *model.Session, bet int64) error {
	if sess.Claimed {
		return model.ErrSessionClaimed
	}
	if sess.PayoutHold {
		return model.ErrPayoutPending
	}
	if left := sess.CreditsLeft(); left < bet {
		return model.NewError(model.CodeInsufficientFunds, "%d credits left, bet is %d", left, bet).
			WithShortfall(decimal.NewFromInt(bet - left))
	}
	return nil
}

func (l *Ledger) playAccount(ctx context.Context, req model.PlayRequest) (*model.PlayResult, error) {
	if !req.Bet.IsPositive() || !req.Bet.Equal(req.Bet.Round(2)) || req.Bet.GreaterThan(l.opts.MaxAccountBet) {
		return nil, model.NewError(model.CodeInvalidBet, "bet must be positive, in cents, and at most %s", l.opts.MaxAccountBet)
	}
	if err := l.engine.Validate(req.GameID, req.Bet, req.Params); err != nil {
		return nil, err
	}

	acc, err := l.loadAccount(ctx, req.AccountID)
	if err != nil {
		return nil, err
	}
	if err := accountCanBet(acc, req.Bet); err != nil {
		return nil, err
	}

	out, err := l.engine.Play(req.GameID, req.Bet, req.Params)
	if err != nil {
		return nil, err
	}

	now := l.now()
	settled, err := l.store.SettleAccountBet(ctx, acc.ID, req.Bet, out.Prize, now)
	if errors.Is(err, repository.ErrConditionFailed) {
		fresh, rerr := l.loadAccount(ctx, acc.ID)
		if rerr != nil {
			return nil, rerr
		}
		if cerr := accountCanBet(fresh, req.Bet); cerr != nil {
			return nil, cerr
		}
		return nil, model.ErrInsufficientBal
	}
	if err != nil {
		return nil, storageErr("settle account bet", err)
	}

	play := &model.Play{
		ID:        newID(),
		AccountID: acc.ID,
		GameID:    req.GameID,
		Bet:       req.Bet,
		Prize:     out.Prize,
		Outcome:   out.Detail,
		PlayedAt:  now,
	}
	l.recordPlay(ctx, play)

	balance := settled.Balance
	return &model.PlayResult{
		PlayID:         play.ID,
		Prize:          out.Prize,
		OutcomeDetail:  out.Detail,
		Balance:        &balance,
		TotalWinnings:  decimal.Zero,
		WagerRequired:  settled.WagerRequired,
		WagerCompleted: settled.WagerCompleted,
		WagerMet:       settled.WagerMet(),
	}, nil
}

func accountCanBet(acc *model.Account, bet decimal.Decimal) error {
	if acc.Balance.LessThan(bet) {
		return model.NewError(model.CodeInsufficientBal, "balance %s is below bet %s", acc.Balance, bet).
			WithShortfall(bet.Sub(acc.Balance))
	}
	return nil
}

func (l *Ledger) recordPlay(ctx context.Context, p *model.Play) {
	l.audit(ctx, "play", func(ctx context.Context) error { return l.store.RecordPlay(ctx, p) })
	l.publish(repository.TopicPlaySettled, repository.PlaySettledEvent{
		PlayID:      p.ID,
		SessionCode: p.SessionCode,
		AccountID:   p.AccountID,
		GameID:      p.GameID,
		Bet:         p.Bet,
		Prize:       p.Prize,
		PlayedAt:    p.PlayedAt,
	})
	if p.Prize.IsPositive() {
		l.log.Info("play won",
			zap.String("play_id", p.ID),
			zap.String("game", p.GameID),
			zap.String("bet", p.Bet.String()),
			zap.String("prize", p.Prize.String()),
		)
	}
}

// RecentPlays lists the newest plays of a code session.
func (l *Ledger) RecentPlays(ctx context.Context, raw string, limit int) ([]model.Play, error) {
	sess, err := l.loadSession(ctx, raw)
	if err != nil {
		return nil, err
	}
	plays, err := l.store.ListPlays(ctx, repository.PlayFilter{SessionCode: sess.Code, Limit: clampLimit(limit)})
	if err != nil {
		return nil, storageErr("list plays", err)
	}
	return plays, nil
}

// Games lists the playable game ids.
func (l *Ledger) Games() []string { return l.engine.GameIDs() }
