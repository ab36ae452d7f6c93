package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Session is the per-code wallet created on first redemption.
type Session struct {
	Code          string          `json:"code"`
	CreditsIssued int64           `json:"creditsIssued"`
	CreditsUsed   int64           `json:"creditsUsed"`
	TotalWinnings decimal.Decimal `json:"totalWinnings"`
	Claimed       bool            `json:"claimed"`
	ClaimedAt     *time.Time      `json:"claimedAt,omitempty"`
	// PayoutHold reserves the winnings for a cash payout: no plays and no
	// conversion until the request is rejected or paid.
	PayoutHold bool      `json:"payoutHold,omitempty"`
	LastGameID string    `json:"lastGameId,omitempty"`
	StartedAt  time.Time `json:"startedAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (s *Session) CreditsLeft() int64 {
	return s.CreditsIssued - s.CreditsUsed
}

// Every issued credit counts toward the wager requirement of a code session.
func (s *Session) WagerRequired() int64  { return s.CreditsIssued }
func (s *Session) WagerCompleted() int64 { return s.CreditsUsed }

// HasValue reports whether the session still holds something the player can
// act on: unspent credits or unclaimed winnings.
func (s *Session) HasValue() bool {
	if s.CreditsLeft() > 0 {
		return true
	}
	return !s.Claimed && s.TotalWinnings.IsPositive()
}

// SessionView is the wire shape returned to players.
type SessionView struct {
	Code           string          `json:"code"`
	CreditsLeft    int64           `json:"creditsLeft"`
	TotalWinnings  decimal.Decimal `json:"totalWinnings"`
	WagerRequired  int64           `json:"wagerRequired"`
	WagerCompleted int64           `json:"wagerCompleted"`
	Claimed        bool            `json:"claimed"`
	PayoutPending  bool            `json:"payoutPending,omitempty"`
	Recovered      bool            `json:"recovered,omitempty"`
}

func (s *Session) View() SessionView {
	return SessionView{
		Code:           s.Code,
		CreditsLeft:    s.CreditsLeft(),
		TotalWinnings:  s.TotalWinnings,
		WagerRequired:  s.WagerRequired(),
		WagerCompleted: s.WagerCompleted(),
		Claimed:        s.Claimed,
		PayoutPending:  s.PayoutHold && !s.Claimed,
	}
}

// Play is the immutable fact of one settled bet.
type Play struct {
	ID          string          `json:"id"`
	SessionCode string          `json:"sessionCode,omitempty"`
	AccountID   string          `json:"accountId,omitempty"`
	GameID      string          `json:"gameId"`
	Bet         decimal.Decimal `json:"bet"`
	Prize       decimal.Decimal `json:"prize"`
	Outcome     string          `json:"outcome"`
	PlayedAt    time.Time       `json:"playedAt"`
}

// CreditConversion records winnings turned back into play credits.
type CreditConversion struct {
	ID            string          `json:"id"`
	Code          string          `json:"code"`
	GameID        string          `json:"gameId"`
	Amount        decimal.Decimal `json:"amount"`
	Credits       int64           `json:"credits"`
	PlayerName    string          `json:"playerName"`
	PlayerPhone   string          `json:"playerPhone"`
	PlayerCountry string          `json:"playerCountry"`
	ConvertedAt   time.Time       `json:"convertedAt"`
}

// GameStats aggregates settled plays per game.
type GameStats struct {
	GameID     string          `json:"gameId"`
	Plays      int64           `json:"plays"`
	Wins       int64           `json:"wins"`
	TotalBet   decimal.Decimal `json:"totalBet"`
	TotalPrize decimal.Decimal `json:"totalPrize"`
}
