package repository

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	TopicPlaySettled   = "plays.settled"
	TopicPayoutSettled = "payouts.settled"
	TopicTwoFactorCode = "notifications.twofactor"
)

type PlaySettledEvent struct {
	PlayID      string          `json:"play_id"`
	SessionCode string          `json:"session_code,omitempty"`
	AccountID   string          `json:"account_id,omitempty"`
	GameID      string          `json:"game_id"`
	Bet         decimal.Decimal `json:"bet"`
	Prize       decimal.Decimal `json:"prize"`
	PlayedAt    time.Time       `json:"played_at"`
}

type PayoutSettledEvent struct {
	PayoutID      string          `json:"payout_id"`
	Code          string          `json:"code"`
	Amount        decimal.Decimal `json:"amount"`
	RequestID     string          `json:"request_id,omitempty"`
	PlayerName    string          `json:"player_name,omitempty"`
	PlayerPhone   string          `json:"player_phone,omitempty"`
	PlayerCountry string          `json:"player_country,omitempty"`
	PaidBy        string          `json:"paid_by"`
	PaidAt        time.Time       `json:"paid_at"`
}

// TwoFactorCodeEvent carries the plain code to the mailer. It is the only
// place the code exists outside the player's inbox.
type TwoFactorCodeEvent struct {
	AccountID string          `json:"account_id"`
	Email     string          `json:"email"`
	Code      string          `json:"code"`
	Amount    decimal.Decimal `json:"amount"`
	ExpiresAt time.Time       `json:"expires_at"`
}
