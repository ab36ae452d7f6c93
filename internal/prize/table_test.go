package prize

import (
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTable_SumsToOne(t *testing.T) {
	table := MustDefaultTable()

	assert.InDelta(t, 1.0, table.TotalProbability(), probabilityTolerance)
	assert.LessOrEqual(t, table.WinProbability(), 1.0)
	assert.InDelta(t, 0.1776, table.WinProbability(), 0.001)
	assert.InDelta(t, 0.8224, table.Probability(0), 0.001)
	assert.InDelta(t, 0.5, table.ExpectedReturn(), 0.02)
}

func TestNewTable_Rejects(t *testing.T) {
	cases := map[string][]Row{
		"empty":         nil,
		"only loss":     {{Amount: 0, Odds: 0}},
		"zero odds":     {{Amount: 5, Odds: 0}},
		"negative":      {{Amount: -1, Odds: 4}},
		"duplicate":     {{Amount: 5, Odds: 4}, {Amount: 5, Odds: 8}},
		"over one":      {{Amount: 1, Odds: 1}, {Amount: 2, Odds: 2}},
		"loss not last": {{Amount: 0, Odds: 0}, {Amount: 2, Odds: 2}},
	}
	for name, rows := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewTable(rows)
			assert.Error(t, err)
		})
	}
}

func TestNewTable_ResidualIsExplicit(t *testing.T) {
	table, err := NewTable([]Row{{Amount: 4, Odds: 4}, {Amount: 2, Odds: 2}})
	require.NoError(t, err)

	assert.InDelta(t, 0.25, table.Probability(0), probabilityTolerance)
	assert.Equal(t, []int64{4, 2}, table.Amounts())
	assert.Zero(t, table.Probability(7))
}

func TestTable_DrawBoundaries(t *testing.T) {
	table := MustDefaultTable()

	cases := []struct {
		r    float64
		want int64
	}{
		{0, 500},
		{0.0001, 500},
		{0.0002, 100},
		{0.05, 2},
		{0.1, 1},
		{0.2, 0},
		{0.5, 0},
		{0.999999, 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, table.Draw(tc.r), "r=%v", tc.r)
	}
}

func TestTable_DetermineCapsAndMultiplies(t *testing.T) {
	table := MustDefaultTable()

	got := table.Determine(0.05, decimal.NewFromInt(3), DefaultMaxPrize)
	assert.True(t, got.Equal(decimal.NewFromInt(6)), got.String())

	got = table.Determine(0.0002, decimal.NewFromInt(10), DefaultMaxPrize)
	assert.True(t, got.Equal(DefaultMaxPrize), got.String())

	got = table.Determine(0.9, decimal.NewFromInt(10), DefaultMaxPrize)
	assert.True(t, got.IsZero())
}

func TestTable_NeverReturnsUnconfiguredAmount(t *testing.T) {
	table := MustDefaultTable()
	rng := rand.New(rand.NewPCG(1, 2))

	counts := make(map[int64]int)
	const draws = 200000
	for i := 0; i < draws; i++ {
		amount := table.Draw(rng.Float64())
		require.Greater(t, table.Probability(amount), 0.0, "amount %d", amount)
		counts[amount]++
	}

	observedLoss := float64(counts[0]) / draws
	assert.Less(t, math.Abs(observedLoss-table.Probability(0)), 0.01)
}

func TestLoadTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "odds.yaml")
	doc := "rows:\n  - {amount: 10, odds: 10}\n  - {amount: 1, odds: 2}\n  - {amount: 0, odds: 0}\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	table, err := LoadTable(path)
	require.NoError(t, err)
	assert.InDelta(t, 0.4, table.Probability(0), probabilityTolerance)
	assert.Equal(t, int64(10), table.Draw(0.05))
	assert.Equal(t, int64(1), table.Draw(0.5))
	assert.Equal(t, int64(0), table.Draw(0.7))

	_, err = LoadTable(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestSymbol(t *testing.T) {
	assert.Equal(t, "diamond", Symbol(500))
	assert.Equal(t, "lemon", Symbol(1))
	assert.Equal(t, "none", Symbol(0))
}
