package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"prizeledger/internal/model"

	"github.com/shopspring/decimal"
)

// MemoryStore keeps everything in maps behind one mutex, so every method
// behaves like a single database statement. Records are copied in and out.
type MemoryStore struct {
	mu sync.Mutex

	codes       map[string]*model.Code
	codeOrder   []string
	sessions    map[string]*model.Session
	plays       []model.Play
	conversions []model.CreditConversion

	requests      map[string]*model.PayoutRequest
	requestByCode map[string]string
	requestOrder  []string
	payouts       map[string]*model.Payout
	payoutOrder   []string

	accounts     map[string]*model.Account
	emails       map[string]string
	wallets      map[string]string
	transactions []model.AccountTransaction
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		codes:         make(map[string]*model.Code),
		sessions:      make(map[string]*model.Session),
		requests:      make(map[string]*model.PayoutRequest),
		requestByCode: make(map[string]string),
		payouts:       make(map[string]*model.Payout),
		accounts:      make(map[string]*model.Account),
		emails:        make(map[string]string),
		wallets:       make(map[string]string),
	}
}

func limitOf(n, size int) int {
	if n <= 0 || n > size {
		return size
	}
	return n
}

// ── codes ────────────────────────────────────────────────────────────────────

func (m *MemoryStore) CreateCode(_ context.Context, c *model.Code) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.codes[c.Code]; ok {
		return ErrDuplicate
	}
	cp := *c
	m.codes[c.Code] = &cp
	m.codeOrder = append(m.codeOrder, c.Code)
	return nil
}

func (m *MemoryStore) GetCode(_ context.Context, code string) (*model.Code, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.codes[code]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *MemoryStore) MarkCodeUsed(_ context.Context, code, usedBy string, at time.Time) (*model.Code, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.codes[code]
	if !ok || c.Used {
		return nil, ErrConditionFailed
	}
	c.Used = true
	c.UsedAt = &at
	c.UsedBy = usedBy
	cp := *c
	return &cp, nil
}

func (m *MemoryStore) ListCodes(_ context.Context, f CodeFilter) ([]model.Code, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Code
	for i := len(m.codeOrder) - 1; i >= 0; i-- {
		c := m.codes[m.codeOrder[i]]
		if f.Used != nil && c.Used != *f.Used {
			continue
		}
		if f.CreatedBy != "" && c.CreatedBy != f.CreatedBy {
			continue
		}
		if f.SoldBy != "" && c.SoldBy != f.SoldBy {
			continue
		}
		out = append(out, *c)
		if f.Limit > 0 && len(out) == f.Limit {
			break
		}
	}
	return out, nil
}

func (m *MemoryStore) CodeStats(_ context.Context) (model.CodeStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var st model.CodeStats
	for _, c := range m.codes {
		st.Total++
		st.TotalValue += c.Value
		if c.Used {
			st.Used++
			st.UsedValue += c.Value
		}
	}
	st.Unused = st.Total - st.Used
	return st, nil
}

func (m *MemoryStore) SalesStats(_ context.Context, sellerID string, now time.Time) (model.SalesStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	day, month := startOfDay(now), startOfMonth(now)
	var st model.SalesStats
	for _, c := range m.codes {
		if sellerID != "" && c.SoldBy != sellerID {
			continue
		}
		sale := c.Sale()
		st.TotalSales++
		st.TotalRevenue += sale.Price
		st.TotalPlays += sale.Plays
		if !sale.SoldAt.Before(month) {
			st.MonthSales++
			st.MonthRevenue += sale.Price
		}
		if !sale.SoldAt.Before(day) {
			st.TodaySales++
			st.TodayRevenue += sale.Price
		}
	}
	return st, nil
}

func (m *MemoryStore) TopSellers(_ context.Context, limit int) ([]model.SellerSales, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	bySeller := make(map[string]*model.SellerSales)
	for _, c := range m.codes {
		if c.SoldBy == "" {
			continue
		}
		ss, ok := bySeller[c.SoldBy]
		if !ok {
			ss = &model.SellerSales{SellerID: c.SoldBy}
			bySeller[c.SoldBy] = ss
		}
		if c.SoldByName > ss.SellerName {
			ss.SellerName = c.SoldByName
		}
		ss.TotalSales++
		ss.TotalRevenue += c.Value
	}
	out := make([]model.SellerSales, 0, len(bySeller))
	for _, ss := range bySeller {
		out = append(out, *ss)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.TotalRevenue != b.TotalRevenue {
			return a.TotalRevenue > b.TotalRevenue
		}
		if a.TotalSales != b.TotalSales {
			return a.TotalSales > b.TotalSales
		}
		return a.SellerID < b.SellerID
	})
	return out[:limitOf(limit, len(out))], nil
}

// ── sessions ─────────────────────────────────────────────────────────────────

func (m *MemoryStore) CreateSession(_ context.Context, s *model.Session) (*model.Session, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.sessions[s.Code]; ok {
		cp := *existing
		return &cp, false, nil
	}
	cp := *s
	m.sessions[s.Code] = &cp
	out := cp
	return &out, true, nil
}

func (m *MemoryStore) GetSession(_ context.Context, code string) (*model.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[code]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *MemoryStore) SettleSessionPlay(_ context.Context, code string, bet int64, prize decimal.Decimal, gameID string, at time.Time) (*model.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[code]
	if !ok || s.Claimed || s.PayoutHold || s.CreditsLeft() < bet {
		return nil, ErrConditionFailed
	}
	s.CreditsUsed += bet
	s.TotalWinnings = s.TotalWinnings.Add(prize)
	s.LastGameID = gameID
	s.UpdatedAt = at
	cp := *s
	return &cp, nil
}

func (m *MemoryStore) ClaimSession(_ context.Context, code string, at time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[code]
	if !ok {
		return false, ErrNotFound
	}
	if s.Claimed {
		return false, nil
	}
	s.Claimed = true
	s.ClaimedAt = &at
	s.UpdatedAt = at
	return true, nil
}

func (m *MemoryStore) ConvertSessionWinnings(_ context.Context, code string, expected decimal.Decimal, credits int64, at time.Time) (*model.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[code]
	if !ok || s.Claimed || s.PayoutHold || !s.TotalWinnings.Equal(expected) {
		return nil, ErrConditionFailed
	}
	s.CreditsIssued += credits
	s.TotalWinnings = decimal.Zero
	s.UpdatedAt = at
	cp := *s
	return &cp, nil
}

func (m *MemoryStore) HoldSessionWinnings(_ context.Context, code string, expected decimal.Decimal, at time.Time) (*model.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[code]
	if !ok || !holdable(s, expected) {
		return nil, ErrConditionFailed
	}
	s.PayoutHold = true
	s.UpdatedAt = at
	cp := *s
	return &cp, nil
}

func holdable(s *model.Session, expected decimal.Decimal) bool {
	return !s.Claimed && !s.PayoutHold && s.TotalWinnings.Equal(expected)
}

func (m *MemoryStore) RecordPlay(_ context.Context, p *model.Play) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.plays = append(m.plays, *p)
	return nil
}

func (m *MemoryStore) ListPlays(_ context.Context, f PlayFilter) ([]model.Play, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Play
	for i := len(m.plays) - 1; i >= 0; i-- {
		p := m.plays[i]
		if f.SessionCode != "" && p.SessionCode != f.SessionCode {
			continue
		}
		if f.AccountID != "" && p.AccountID != f.AccountID {
			continue
		}
		out = append(out, p)
		if f.Limit > 0 && len(out) == f.Limit {
			break
		}
	}
	return out, nil
}

func (m *MemoryStore) PlayStats(_ context.Context) ([]model.GameStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	byGame := make(map[string]*model.GameStats)
	for _, p := range m.plays {
		st, ok := byGame[p.GameID]
		if !ok {
			st = &model.GameStats{GameID: p.GameID, TotalBet: decimal.Zero, TotalPrize: decimal.Zero}
			byGame[p.GameID] = st
		}
		st.Plays++
		if p.Prize.IsPositive() {
			st.Wins++
		}
		st.TotalBet = st.TotalBet.Add(p.Bet)
		st.TotalPrize = st.TotalPrize.Add(p.Prize)
	}
	out := make([]model.GameStats, 0, len(byGame))
	for _, st := range byGame {
		out = append(out, *st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].GameID < out[j].GameID })
	return out, nil
}

func (m *MemoryStore) RecordConversion(_ context.Context, c *model.CreditConversion) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.conversions = append(m.conversions, *c)
	return nil
}

// ── payouts ──────────────────────────────────────────────────────────────────

func (m *MemoryStore) CreatePayoutRequest(_ context.Context, r *model.PayoutRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.requestByCode[r.Code]; ok {
		return ErrDuplicate
	}
	s, ok := m.sessions[r.Code]
	if !ok || !holdable(s, r.Amount) {
		return ErrConditionFailed
	}
	s.PayoutHold = true
	s.UpdatedAt = r.CreatedAt
	cp := *r
	m.requests[r.ID] = &cp
	m.requestByCode[r.Code] = r.ID
	m.requestOrder = append(m.requestOrder, r.ID)
	return nil
}

func (m *MemoryStore) GetPayoutRequest(_ context.Context, id string) (*model.PayoutRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.requests[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *MemoryStore) GetPayoutRequestByCode(_ context.Context, code string) (*model.PayoutRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.requestByCode[code]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *m.requests[id]
	return &cp, nil
}

func (m *MemoryStore) ListPayoutRequests(_ context.Context, f PayoutRequestFilter) ([]model.PayoutRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.PayoutRequest
	for i := len(m.requestOrder) - 1; i >= 0; i-- {
		r := m.requests[m.requestOrder[i]]
		if f.Status != "" && r.Status != f.Status {
			continue
		}
		out = append(out, *r)
		if f.Limit > 0 && len(out) == f.Limit {
			break
		}
	}
	return out, nil
}

func (m *MemoryStore) TransitionPayoutRequest(_ context.Context, id string, from, to model.PayoutStatus, op model.Operator, notes string, at time.Time) (*model.PayoutRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.requests[id]
	if !ok || r.Status != from {
		return nil, ErrConditionFailed
	}
	r.Status = to
	r.ProcessedAt = &at
	r.ProcessedBy = op.ID
	r.ProcessedByName = op.Name
	if notes != "" {
		r.Notes = notes
	}
	if s, ok := m.sessions[r.Code]; ok && to == model.StatusRejected && !s.Claimed {
		s.PayoutHold = false
		s.UpdatedAt = at
	}
	cp := *r
	return &cp, nil
}

func (m *MemoryStore) CreatePayout(_ context.Context, p *model.Payout) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.payouts[p.Code]; ok {
		return ErrDuplicate
	}
	cp := *p
	m.payouts[p.Code] = &cp
	m.payoutOrder = append(m.payoutOrder, p.Code)
	return nil
}

func (m *MemoryStore) GetPayoutByCode(_ context.Context, code string) (*model.Payout, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.payouts[code]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *MemoryStore) ListPayouts(_ context.Context, f PayoutFilter) ([]model.Payout, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Payout
	for i := len(m.payoutOrder) - 1; i >= 0; i-- {
		p := m.payouts[m.payoutOrder[i]]
		if f.PaidBy != "" && p.PaidBy != f.PaidBy {
			continue
		}
		out = append(out, *p)
		if f.Limit > 0 && len(out) == f.Limit {
			break
		}
	}
	return out, nil
}

func (m *MemoryStore) PayoutStats(_ context.Context, paidBy string, now time.Time) (model.PayoutStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	day, month := startOfDay(now), startOfMonth(now)
	st := model.PayoutStats{TotalAmount: decimal.Zero, TodayAmount: decimal.Zero, MonthAmount: decimal.Zero}
	for _, p := range m.payouts {
		if paidBy != "" && p.PaidBy != paidBy {
			continue
		}
		st.TotalPayouts++
		st.TotalAmount = st.TotalAmount.Add(p.Amount)
		if !p.PaidAt.Before(month) {
			st.MonthPayouts++
			st.MonthAmount = st.MonthAmount.Add(p.Amount)
		}
		if !p.PaidAt.Before(day) {
			st.TodayPayouts++
			st.TodayAmount = st.TodayAmount.Add(p.Amount)
		}
	}
	return st, nil
}

// ── accounts ─────────────────────────────────────────────────────────────────

func (m *MemoryStore) CreateAccount(_ context.Context, a *model.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accounts[a.ID]; ok {
		return ErrDuplicate
	}
	if _, ok := m.emails[a.Email]; a.Email != "" && ok {
		return ErrDuplicate
	}
	if _, ok := m.wallets[a.WalletAddress]; a.WalletAddress != "" && ok {
		return ErrDuplicate
	}
	cp := *a
	m.accounts[a.ID] = &cp
	if a.Email != "" {
		m.emails[a.Email] = a.ID
	}
	if a.WalletAddress != "" {
		m.wallets[a.WalletAddress] = a.ID
	}
	return nil
}

func (m *MemoryStore) GetAccount(_ context.Context, id string) (*model.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.accounts[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *MemoryStore) LinkWallet(_ context.Context, id, wallet string) (*model.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.accounts[id]
	if !ok {
		return nil, ErrNotFound
	}
	if owner, taken := m.wallets[wallet]; taken && owner != id {
		return nil, ErrDuplicate
	}
	if a.WalletAddress != "" {
		delete(m.wallets, a.WalletAddress)
	}
	a.WalletAddress = wallet
	m.wallets[wallet] = id
	cp := *a
	return &cp, nil
}

func (m *MemoryStore) CreditDeposit(_ context.Context, id string, amount decimal.Decimal, at time.Time) (*model.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.accounts[id]
	if !ok {
		return nil, ErrNotFound
	}
	a.Balance = a.Balance.Add(amount)
	a.WagerRequired = a.WagerRequired.Add(amount)
	a.LastActivityAt = &at
	cp := *a
	return &cp, nil
}

func (m *MemoryStore) SettleAccountBet(_ context.Context, id string, bet, prize decimal.Decimal, at time.Time) (*model.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.accounts[id]
	if !ok || a.Balance.LessThan(bet) {
		return nil, ErrConditionFailed
	}
	a.Balance = a.Balance.Sub(bet).Add(prize)
	a.WagerCompleted = a.WagerCompleted.Add(bet)
	a.LastActivityAt = &at
	cp := *a
	return &cp, nil
}

func (m *MemoryStore) DebitWithdrawal(_ context.Context, id string, amount decimal.Decimal, at time.Time) (*model.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.accounts[id]
	if !ok || a.Balance.LessThan(amount) || !a.WagerMet() {
		return nil, ErrConditionFailed
	}
	a.Balance = a.Balance.Sub(amount)
	a.LastActivityAt = &at
	cp := *a
	return &cp, nil
}

func (m *MemoryStore) TouchAccount(_ context.Context, id string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.accounts[id]
	if !ok {
		return ErrNotFound
	}
	a.LastActivityAt = &at
	return nil
}

func (m *MemoryStore) RecordTransaction(_ context.Context, t *model.AccountTransaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transactions = append(m.transactions, *t)
	return nil
}

func (m *MemoryStore) ListTransactions(_ context.Context, accountID string, limit int) ([]model.AccountTransaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.AccountTransaction
	for i := len(m.transactions) - 1; i >= 0; i-- {
		t := m.transactions[i]
		if t.AccountID != accountID {
			continue
		}
		out = append(out, t)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}
