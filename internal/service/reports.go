package service

import (
	"context"
	"time"

	"prizeledger/internal/model"
	"prizeledger/internal/repository"

	"github.com/shopspring/decimal"
)

const (
	topSellersLimit = 5
	recentLimit     = 10
)

// scope returns the seller id reports are filtered by, empty for operators
// that see every seller.
func scope(op model.Operator) string {
	if op.SeesAll() {
		return ""
	}
	return op.ID
}

func (l *Ledger) ListCodes(ctx context.Context, op model.Operator, used *bool, limit int) ([]model.Code, error) {
	if op.ID == "" {
		return nil, model.ErrUnauthorized
	}
	codes, err := l.store.ListCodes(ctx, repository.CodeFilter{Used: used, CreatedBy: scope(op), Limit: clampLimit(limit)})
	if err != nil {
		return nil, storageErr("list codes", err)
	}
	return codes, nil
}

func (l *Ledger) ListPayouts(ctx context.Context, op model.Operator, limit int) ([]model.Payout, error) {
	if op.ID == "" {
		return nil, model.ErrUnauthorized
	}
	out, err := l.store.ListPayouts(ctx, repository.PayoutFilter{PaidBy: scope(op), Limit: clampLimit(limit)})
	if err != nil {
		return nil, storageErr("list payouts", err)
	}
	return out, nil
}

// Sales lists sold codes with their stats. Admins see every seller and the
// top sellers; a seller sees only their own sales.
func (l *Ledger) Sales(ctx context.Context, op model.Operator, limit int) (*model.SalesReport, error) {
	if op.ID == "" {
		return nil, model.ErrUnauthorized
	}
	sales, err := l.listSales(ctx, scope(op), clampLimit(limit))
	if err != nil {
		return nil, err
	}
	stats, err := l.store.SalesStats(ctx, scope(op), l.now())
	if err != nil {
		return nil, storageErr("sales stats", err)
	}
	report := &model.SalesReport{Sales: sales, Stats: stats}
	if op.SeesAll() {
		if report.TopSellers, err = l.store.TopSellers(ctx, topSellersLimit); err != nil {
			return nil, storageErr("top sellers", err)
		}
	}
	return report, nil
}

func (l *Ledger) listSales(ctx context.Context, sellerID string, limit int) ([]model.Sale, error) {
	codes, err := l.store.ListCodes(ctx, repository.CodeFilter{SoldBy: sellerID, Limit: limit})
	if err != nil {
		return nil, storageErr("list sales", err)
	}
	sales := make([]model.Sale, 0, len(codes))
	for i := range codes {
		sales = append(sales, codes[i].Sale())
	}
	return sales, nil
}

// Stats is the operator dashboard. Net profit is sold code revenue minus
// everything paid out, both within the operator's scope.
func (l *Ledger) Stats(ctx context.Context, op model.Operator) (*model.DashboardStats, error) {
	if op.ID == "" {
		return nil, model.ErrUnauthorized
	}
	now := l.now().Truncate(time.Second)
	sales, err := l.store.SalesStats(ctx, scope(op), now)
	if err != nil {
		return nil, storageErr("sales stats", err)
	}
	payouts, err := l.store.PayoutStats(ctx, scope(op), now)
	if err != nil {
		return nil, storageErr("payout stats", err)
	}
	stats := &model.DashboardStats{
		Sales:     sales,
		Payouts:   payouts,
		NetProfit: decimal.NewFromInt(sales.TotalRevenue).Sub(payouts.TotalAmount),
	}
	if !op.SeesAll() {
		return stats, nil
	}

	codes, err := l.store.CodeStats(ctx)
	if err != nil {
		return nil, storageErr("code stats", err)
	}
	stats.Codes = &codes
	if stats.Games, err = l.store.PlayStats(ctx); err != nil {
		return nil, storageErr("play stats", err)
	}
	if stats.RecentSales, err = l.listSales(ctx, "", recentLimit); err != nil {
		return nil, err
	}
	if stats.RecentPayouts, err = l.store.ListPayouts(ctx, repository.PayoutFilter{Limit: recentLimit}); err != nil {
		return nil, storageErr("list payouts", err)
	}
	return stats, nil
}
