package prize

import (
	"fmt"
	"math"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// probabilityTolerance bounds float error when checking that a table sums to 1.
const probabilityTolerance = 1e-9

// Row is one configured outcome: Amount is won with probability 1/Odds.
// A row with Amount 0 and Odds 0 marks the residual loss outcome.
type Row struct {
	Amount int64 `yaml:"amount" json:"amount"`
	Odds   int64 `yaml:"odds" json:"odds"`
}

type entry struct {
	amount int64
	prob   float64
}

// Table is an immutable odds table. The loss outcome is stored as an explicit
// last entry carrying the residual probability mass.
type Table struct {
	wins []entry
	loss entry
}

// DefaultRows is the house table: about 50% RTP and an 18% hit rate.
var DefaultRows = []Row{
	{Amount: 500, Odds: 8945},
	{Amount: 100, Odds: 3334},
	{Amount: 50, Odds: 1243},
	{Amount: 20, Odds: 463},
	{Amount: 10, Odds: 173},
	{Amount: 5, Odds: 64},
	{Amount: 2, Odds: 24},
	{Amount: 1, Odds: 9},
	{Amount: 0, Odds: 0},
}

// NewTable validates rows and builds a table whose probabilities sum to 1.
func NewTable(rows []Row) (*Table, error) {
	t := &Table{}
	seen := make(map[int64]bool, len(rows))
	var total float64

	for i, r := range rows {
		if r.Amount == 0 && r.Odds == 0 {
			if i != len(rows)-1 {
				return nil, fmt.Errorf("prize table: loss row must be last (row %d)", i)
			}
			continue
		}
		if r.Amount <= 0 {
			return nil, fmt.Errorf("prize table: row %d has non-positive amount %d", i, r.Amount)
		}
		if r.Odds <= 0 {
			return nil, fmt.Errorf("prize table: row %d (amount %d) has non-positive odds %d", i, r.Amount, r.Odds)
		}
		if seen[r.Amount] {
			return nil, fmt.Errorf("prize table: duplicate amount %d", r.Amount)
		}
		seen[r.Amount] = true

		p := 1 / float64(r.Odds)
		total += p
		t.wins = append(t.wins, entry{amount: r.Amount, prob: p})
	}

	if len(t.wins) == 0 {
		return nil, fmt.Errorf("prize table: no winning rows")
	}
	if total > 1+probabilityTolerance {
		return nil, fmt.Errorf("prize table: winning probabilities sum to %.6f > 1", total)
	}

	t.loss = entry{amount: 0, prob: math.Max(0, 1-total)}

	if sum := t.TotalProbability(); math.Abs(sum-1) > probabilityTolerance {
		return nil, fmt.Errorf("prize table: probabilities sum to %.12f, want 1", sum)
	}
	return t, nil
}

// MustDefaultTable panics if the built-in table is invalid.
func MustDefaultTable() *Table {
	t, err := NewTable(DefaultRows)
	if err != nil {
		panic(err)
	}
	return t
}

// LoadTable reads an odds table from a YAML file of the form
//
//	rows:
//	  - {amount: 500, odds: 8945}
func LoadTable(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read odds file: %w", err)
	}
	var doc struct {
		Rows []Row `yaml:"rows"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse odds file: %w", err)
	}
	return NewTable(doc.Rows)
}

// Draw maps a uniform r in [0,1) to a raw prize amount. The first winning row
// whose cumulative boundary exceeds r wins; otherwise the draw is a loss.
func (t *Table) Draw(r float64) int64 {
	var cumulative float64
	for _, e := range t.wins {
		cumulative += e.prob
		if r < cumulative {
			return e.amount
		}
	}
	return t.loss.amount
}

// Determine is the prize for a bet: the raw amount times the bet multiplier,
// capped at maxPrize (no cap when maxPrize is zero).
func (t *Table) Determine(r float64, bet, maxPrize decimal.Decimal) decimal.Decimal {
	amount := t.Draw(r)
	if amount == 0 {
		return decimal.Zero
	}
	prize := decimal.NewFromInt(amount).Mul(bet)
	if maxPrize.IsPositive() && prize.GreaterThan(maxPrize) {
		return maxPrize
	}
	return prize
}

// Probability returns the configured probability of a raw amount.
func (t *Table) Probability(amount int64) float64 {
	if amount == 0 {
		return t.loss.prob
	}
	for _, e := range t.wins {
		if e.amount == amount {
			return e.prob
		}
	}
	return 0
}

// Amounts lists the winning amounts in table order.
func (t *Table) Amounts() []int64 {
	out := make([]int64, len(t.wins))
	for i, e := range t.wins {
		out[i] = e.amount
	}
	return out
}

func (t *Table) WinProbability() float64 {
	return 1 - t.loss.prob
}

func (t *Table) TotalProbability() float64 {
	sum := t.loss.prob
	for _, e := range t.wins {
		sum += e.prob
	}
	return sum
}

// ExpectedReturn is the RTP of a one-unit bet before any cap.
func (t *Table) ExpectedReturn() float64 {
	var rtp float64
	for _, e := range t.wins {
		rtp += float64(e.amount) * e.prob
	}
	return rtp
}

var symbols = map[int64]string{
	500: "diamond",
	100: "seven",
	50:  "bar",
	20:  "bell",
	10:  "star",
	5:   "cherry",
	2:   "plum",
	1:   "lemon",
}

// Symbol names the reel symbol shown for a raw prize amount.
func Symbol(amount int64) string {
	if amount == 0 {
		return "none"
	}
	if s, ok := symbols[amount]; ok {
		return s
	}
	return "lemon"
}
