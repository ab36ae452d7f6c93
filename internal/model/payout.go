package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type PayoutStatus string

const (
	StatusPending  PayoutStatus = "pending"
	StatusApproved PayoutStatus = "approved"
	StatusRejected PayoutStatus = "rejected"
	StatusPaid     PayoutStatus = "paid"
)

func (s PayoutStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusPaid:
		return true
	}
	return false
}

// Terminal statuses accept no further actions.
func (s PayoutStatus) Terminal() bool {
	return s == StatusRejected || s == StatusPaid
}

type PayoutAction string

const (
	ActionApprove PayoutAction = "approve"
	ActionReject  PayoutAction = "reject"
	ActionPay     PayoutAction = "pay"
)

func (a PayoutAction) Valid() bool {
	return a == ActionApprove || a == ActionReject || a == ActionPay
}

var transitions = map[PayoutStatus]map[PayoutAction]PayoutStatus{
	StatusPending: {
		ActionApprove: StatusApproved,
		ActionReject:  StatusRejected,
		ActionPay:     StatusPaid,
	},
	StatusApproved: {
		ActionPay: StatusPaid,
	},
}

// LegalTransition is the only place payout request transitions are decided.
func LegalTransition(from PayoutStatus, action PayoutAction) (PayoutStatus, error) {
	if !action.Valid() {
		return "", NewError(CodeInvalidParams, "unknown action %q", action)
	}
	to, ok := transitions[from][action]
	if !ok {
		return "", NewError(CodeIllegalTransition, "cannot %s a %s request", action, from)
	}
	return to, nil
}

type OperatorRole string

const (
	RoleSeller OperatorRole = "seller"
	RoleAdmin  OperatorRole = "admin"
	RoleSuper  OperatorRole = "super"
)

func (r OperatorRole) Valid() bool {
	switch r {
	case RoleSeller, RoleAdmin, RoleSuper:
		return true
	}
	return false
}

// Operator identifies the seller or admin acting on a record.
type Operator struct {
	ID   string       `json:"id"`
	Name string       `json:"name"`
	Role OperatorRole `json:"role,omitempty"`
}

// SeesAll reports whether the operator's reports cover every seller rather
// than only their own records.
func (o Operator) SeesAll() bool {
	return o.Role == RoleAdmin || o.Role == RoleSuper
}

// PlayerContact is the identity snapshot a player attaches to a payout
// request or credit conversion.
type PlayerContact struct {
	Name    string `json:"playerName"`
	Phone   string `json:"playerPhone"`
	Country string `json:"playerCountry"`
}

type PayoutRequest struct {
	ID              string          `json:"id"`
	Code            string          `json:"code"`
	GameID          string          `json:"gameId,omitempty"`
	Amount          decimal.Decimal `json:"amount"`
	PlayerName      string          `json:"playerName"`
	PlayerPhone     string          `json:"playerPhone"`
	PlayerCountry   string          `json:"playerCountry"`
	Status          PayoutStatus    `json:"status"`
	SellerID        string          `json:"sellerId,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	ProcessedAt     *time.Time      `json:"processedAt,omitempty"`
	ProcessedBy     string          `json:"processedBy,omitempty"`
	ProcessedByName string          `json:"processedByName,omitempty"`
	Notes           string          `json:"notes,omitempty"`
}

type PayoutType string

const (
	PayoutCash    PayoutType = "cash"
	PayoutCredits PayoutType = "credits"
)

// Payout is the settlement record. At most one exists per code.
type Payout struct {
	ID            string          `json:"id"`
	Code          string          `json:"code"`
	Amount        decimal.Decimal `json:"amount"`
	Type          PayoutType      `json:"type"`
	PlayerName    string          `json:"playerName,omitempty"`
	PlayerPhone   string          `json:"playerPhone,omitempty"`
	PlayerCountry string          `json:"playerCountry,omitempty"`
	PaidBy        string          `json:"paidBy"`
	PaidByName    string          `json:"paidByName"`
	PaidAt        time.Time       `json:"paidAt"`
	RequestID     string          `json:"requestId,omitempty"`
	Notes         string          `json:"notes,omitempty"`
}

type PayoutStats struct {
	TotalPayouts int64           `json:"totalPayouts"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	TodayPayouts int64           `json:"todayPayouts"`
	TodayAmount  decimal.Decimal `json:"todayAmount"`
	MonthPayouts int64           `json:"monthPayouts"`
	MonthAmount  decimal.Decimal `json:"monthAmount"`
}

// DashboardStats is the operator overview. Sales and payouts are scoped to
// the operator unless they see everything; the rest is admin only.
type DashboardStats struct {
	Sales         SalesStats      `json:"sales"`
	Payouts       PayoutStats     `json:"payouts"`
	NetProfit     decimal.Decimal `json:"netProfit"`
	Codes         *CodeStats      `json:"codes,omitempty"`
	Games         []GameStats     `json:"games,omitempty"`
	RecentSales   []Sale          `json:"recentSales,omitempty"`
	RecentPayouts []Payout        `json:"recentPayouts,omitempty"`
}
