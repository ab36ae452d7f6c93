package model

import (
	"strings"
	"time"
)

const (
	MinCodeValue = 1
	MaxCodeValue = 1000

	accountRedeemPrefix = "account:"
)

// Code is a prepaid recharge card. Value is at once its price, its credits
// and its number of one-credit plays.
type Code struct {
	Code       string     `json:"code"`
	Value      int64      `json:"value"`
	Used       bool       `json:"used"`
	UsedAt     *time.Time `json:"usedAt,omitempty"`
	UsedBy     string     `json:"usedBy,omitempty"`
	CreatedBy  string     `json:"createdBy"`
	CreatedAt  time.Time  `json:"createdAt"`
	SoldAt     *time.Time `json:"soldAt,omitempty"`
	SoldBy     string     `json:"soldBy,omitempty"`
	SoldByName string     `json:"soldByName,omitempty"`
}

// Sale views the code as sold: every issued code counts, priced at its value.
func (c *Code) Sale() Sale {
	soldAt := c.CreatedAt
	if c.SoldAt != nil {
		soldAt = *c.SoldAt
	}
	return Sale{
		Code:       c.Code,
		Price:      c.Value,
		Plays:      c.Value,
		SellerID:   c.SoldBy,
		SellerName: c.SoldByName,
		Used:       c.Used,
		SoldAt:     soldAt,
	}
}

// NormalizeCode canonicalises user-entered codes.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// AccountRedeemer is the UsedBy marker for codes deposited into an account.
func AccountRedeemer(accountID string) string {
	return accountRedeemPrefix + accountID
}

// RedeemedIntoAccount reports whether the code was spent on an account deposit
// rather than a code session.
func (c *Code) RedeemedIntoAccount() bool {
	return strings.HasPrefix(c.UsedBy, accountRedeemPrefix)
}

// ValidCodeValue reports whether v is an issuable face value.
func ValidCodeValue(v int64) bool {
	return v >= MinCodeValue && v <= MaxCodeValue
}

type CodeStats struct {
	Total      int64 `json:"total"`
	Used       int64 `json:"used"`
	Unused     int64 `json:"unused"`
	TotalValue int64 `json:"totalValue"`
	UsedValue  int64 `json:"usedValue"`
}

type Sale struct {
	Code       string    `json:"code"`
	Price      int64     `json:"price"`
	Plays      int64     `json:"plays"`
	SellerID   string    `json:"sellerId"`
	SellerName string    `json:"sellerName"`
	Used       bool      `json:"used"`
	SoldAt     time.Time `json:"soldAt"`
}

// SalesStats counts sales and revenue, whole and for the current day and
// month. Revenue is in credits.
type SalesStats struct {
	TotalSales   int64 `json:"totalSales"`
	TotalRevenue int64 `json:"totalRevenue"`
	TotalPlays   int64 `json:"totalPlays"`
	TodaySales   int64 `json:"todaySales"`
	TodayRevenue int64 `json:"todayRevenue"`
	MonthSales   int64 `json:"monthSales"`
	MonthRevenue int64 `json:"monthRevenue"`
}

type SellerSales struct {
	SellerID     string `json:"sellerId"`
	SellerName   string `json:"sellerName"`
	TotalSales   int64  `json:"totalSales"`
	TotalRevenue int64  `json:"totalRevenue"`
}

type SalesReport struct {
	Sales      []Sale        `json:"sales"`
	Stats      SalesStats    `json:"stats"`
	TopSellers []SellerSales `json:"topSellers,omitempty"`
}
