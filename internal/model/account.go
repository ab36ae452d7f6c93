package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Account is a registered player wallet holding a cash balance.
type Account struct {
	ID             string          `json:"id"`
	Email          string          `json:"email,omitempty"`
	WalletAddress  string          `json:"walletAddress,omitempty"`
	FullName       string          `json:"fullName"`
	Country        string          `json:"country"`
	Balance        decimal.Decimal `json:"balance"`
	WagerRequired  decimal.Decimal `json:"wagerRequired"`
	WagerCompleted decimal.Decimal `json:"wagerCompleted"`
	Active         bool            `json:"active"`
	CreatedAt      time.Time       `json:"createdAt"`
	LastActivityAt *time.Time      `json:"lastActivityAt,omitempty"`
}

func (a *Account) WagerMet() bool {
	return a.WagerCompleted.GreaterThanOrEqual(a.WagerRequired)
}

// WagerShortfall is how much more must be wagered before withdrawal.
func (a *Account) WagerShortfall() decimal.Decimal {
	if a.WagerMet() {
		return decimal.Zero
	}
	return a.WagerRequired.Sub(a.WagerCompleted)
}

// EmailOnly accounts have no linked wallet identity and must pass the
// two-factor gate before withdrawing.
func (a *Account) EmailOnly() bool {
	return a.Email != "" && a.WalletAddress == ""
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func NormalizeWallet(address string) string {
	return strings.ToLower(strings.TrimSpace(address))
}

// BalanceView is the wire shape of an account balance.
type BalanceView struct {
	Balance        decimal.Decimal `json:"balance"`
	WagerRequired  decimal.Decimal `json:"wagerRequired"`
	WagerCompleted decimal.Decimal `json:"wagerCompleted"`
	WagerMet       bool            `json:"wagerMet"`
}

func (a *Account) BalanceView() BalanceView {
	return BalanceView{
		Balance:        a.Balance,
		WagerRequired:  a.WagerRequired,
		WagerCompleted: a.WagerCompleted,
		WagerMet:       a.WagerMet(),
	}
}

type TransactionType string

const (
	TxDeposit    TransactionType = "deposit"
	TxWithdrawal TransactionType = "withdrawal"
)

type WithdrawalMethod string

const (
	MethodCrypto WithdrawalMethod = "crypto"
	MethodCash   WithdrawalMethod = "cash"
)

func (m WithdrawalMethod) Valid() bool {
	return m == MethodCrypto || m == MethodCash
}

// AccountTransaction is the deposit/withdrawal history of an account.
type AccountTransaction struct {
	ID           string          `json:"id"`
	AccountID    string          `json:"accountId"`
	Type         TransactionType `json:"type"`
	Amount       decimal.Decimal `json:"amount"`
	BalanceAfter decimal.Decimal `json:"balanceAfter"`
	Method       string          `json:"method,omitempty"`
	Destination  string          `json:"destination,omitempty"`
	Reference    string          `json:"reference,omitempty"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"createdAt"`
}
