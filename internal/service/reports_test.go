package service

import (
	"testing"

	"prizeledger/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var otherSeller = model.Operator{ID: "seller-2", Name: "Luis", Role: model.RoleSeller}

func TestLedger_SalesReportScopedBySeller(t *testing.T) {
	f := newFixture(t)
	f.issue(t, "001-000000701", 10)
	f.issue(t, "001-000000702", 20)
	_, err := f.ledger.IssueCodes(ctx, model.IssueCodeInput{Value: 50, Code: "001-000000703"}, otherSeller)
	require.NoError(t, err)

	all, err := f.ledger.Sales(ctx, admin, 0)
	require.NoError(t, err)
	assert.Len(t, all.Sales, 3)
	assert.Equal(t, int64(3), all.Stats.TotalSales)
	assert.Equal(t, int64(80), all.Stats.TotalRevenue)
	assert.Equal(t, int64(80), all.Stats.TodayRevenue)
	assert.Equal(t, int64(80), all.Stats.MonthRevenue)
	require.Len(t, all.TopSellers, 2)
	assert.Equal(t, model.SellerSales{SellerID: "seller-2", SellerName: "Luis", TotalSales: 1, TotalRevenue: 50}, all.TopSellers[0])
	assert.Equal(t, "Ana", all.TopSellers[1].SellerName)

	mine, err := f.ledger.Sales(ctx, seller, 0)
	require.NoError(t, err)
	require.Len(t, mine.Sales, 2)
	for _, s := range mine.Sales {
		assert.Equal(t, seller.ID, s.SellerID)
		assert.Equal(t, "Ana", s.SellerName)
		assert.Equal(t, s.Price, s.Plays)
	}
	assert.Equal(t, int64(30), mine.Stats.TotalRevenue)
	assert.Empty(t, mine.TopSellers)

	codes, err := f.ledger.ListCodes(ctx, otherSeller, nil, 0)
	require.NoError(t, err)
	require.Len(t, codes, 1)
	assert.Equal(t, "001-000000703", codes[0].Code)

	_, err = f.ledger.Sales(ctx, model.Operator{}, 0)
	requireKind(t, err, model.CodeUnauthorized)
}

func TestLedger_StatsNetProfitIsRevenueLessPayouts(t *testing.T) {
	f := newFixture(t, 0.1)
	winningSession(t, f, "001-000000710")
	f.issue(t, "001-000000711", 7)
	_, err := f.ledger.IssueCodes(ctx, model.IssueCodeInput{Value: 40, Code: "001-000000712"}, otherSeller)
	require.NoError(t, err)

	_, err = f.ledger.DirectPayout(ctx, model.DirectPayoutInput{Code: "001-000000710", Amount: d("1")}, seller)
	require.NoError(t, err)

	// 5 + 7 + 40 sold, unused codes included, less the 1 paid out.
	stats, err := f.ledger.Stats(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, int64(52), stats.Sales.TotalRevenue)
	assert.True(t, stats.NetProfit.Equal(d("51")), stats.NetProfit.String())
	require.NotNil(t, stats.Codes)
	assert.Equal(t, int64(5), stats.Codes.UsedValue)
	assert.Len(t, stats.RecentSales, 3)
	assert.Len(t, stats.RecentPayouts, 1)
	assert.NotEmpty(t, stats.Games)

	own, err := f.ledger.Stats(ctx, seller)
	require.NoError(t, err)
	assert.Equal(t, int64(12), own.Sales.TotalRevenue)
	assert.Equal(t, int64(1), own.Payouts.TotalPayouts)
	assert.True(t, own.NetProfit.Equal(d("11")))
	assert.Nil(t, own.Codes)
	assert.Empty(t, own.RecentSales)

	other, err := f.ledger.Stats(ctx, otherSeller)
	require.NoError(t, err)
	assert.Zero(t, other.Payouts.TotalPayouts)
	assert.True(t, other.NetProfit.Equal(d("40")))

	payouts, err := f.ledger.ListPayouts(ctx, otherSeller, 0)
	require.NoError(t, err)
	assert.Empty(t, payouts)
}
