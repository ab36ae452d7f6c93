package model

import (
	"github.com/shopspring/decimal"
)

// GameParams carries the per-game choices a player makes.
type GameParams struct {
	Target   decimal.Decimal `json:"target,omitempty"`
	Side     string          `json:"side,omitempty"`
	Segments int             `json:"segments,omitempty"`
	Pick     int             `json:"pick,omitempty"`
}

type RedeemRequest struct {
	Code string `json:"code"`
}

type PlayRequest struct {
	Code      string          `json:"code,omitempty"`
	AccountID string          `json:"accountId,omitempty"`
	GameID    string          `json:"gameId"`
	Bet       decimal.Decimal `json:"bet"`
	Params    GameParams      `json:"gameParams"`
}

type PlayResult struct {
	PlayID         string           `json:"playId"`
	Prize          decimal.Decimal  `json:"prize"`
	OutcomeDetail  string           `json:"outcomeDetail"`
	CreditsLeft    *int64           `json:"creditsLeft,omitempty"`
	Balance        *decimal.Decimal `json:"balance,omitempty"`
	TotalWinnings  decimal.Decimal  `json:"totalWinnings"`
	WagerRequired  decimal.Decimal  `json:"wagerRequired"`
	WagerCompleted decimal.Decimal  `json:"wagerCompleted"`
	WagerMet       bool             `json:"wagerMet"`
}

type PayoutRequestInput struct {
	Code   string          `json:"code"`
	GameID string          `json:"gameId"`
	Amount decimal.Decimal `json:"amount"`
	PlayerContact
}

type ProcessPayoutInput struct {
	RequestID string       `json:"requestId"`
	Action    PayoutAction `json:"action"`
	Notes     string       `json:"notes"`
}

type ConvertInput struct {
	Code   string          `json:"code"`
	GameID string          `json:"gameId"`
	Amount decimal.Decimal `json:"amount"`
	PlayerContact
}

type ConvertResult struct {
	ConversionID string `json:"conversionId"`
	Credits      int64  `json:"credits"`
	NewCredits   int64  `json:"newCredits"`
}

type DirectPayoutInput struct {
	Code   string          `json:"code"`
	Amount decimal.Decimal `json:"amount"`
	Notes  string          `json:"notes"`
}

type IssueCodeInput struct {
	Value int64  `json:"value"`
	Count int    `json:"count"`
	Code  string `json:"code"`
}

type RegisterAccountInput struct {
	Email         string `json:"email"`
	WalletAddress string `json:"walletAddress"`
	FullName      string `json:"fullName"`
	Country       string `json:"country"`
}

type DepositResult struct {
	Amount         int64           `json:"amount"`
	NewBalance     decimal.Decimal `json:"newBalance"`
	WagerRequired  decimal.Decimal `json:"wagerRequired"`
	WagerCompleted decimal.Decimal `json:"wagerCompleted"`
	WagerMet       bool            `json:"wagerMet"`
}

type TwoFactorRequestResult struct {
	Sent     bool `json:"sent"`
	Required bool `json:"required"`
}

type WithdrawInput struct {
	Amount      decimal.Decimal  `json:"amount"`
	Method      WithdrawalMethod `json:"method"`
	Destination string           `json:"destination"`
}

type WithdrawResult struct {
	TransactionID string          `json:"transactionId"`
	NewBalance    decimal.Decimal `json:"newBalance"`
}
