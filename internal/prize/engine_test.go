package prize

import (
	"testing"

	"prizeledger/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newTestEngine(draws ...float64) *Engine {
	return NewEngine(MustDefaultTable(), NewSequenceSource(draws...), Options{})
}

func TestMultiplier(t *testing.T) {
	assert.True(t, Multiplier(d("1"), d("50")).Equal(d("1.98")))
	assert.True(t, Multiplier(d("1"), d("10")).Equal(d("9.9")))
	assert.True(t, Multiplier(d("0"), d("25")).Equal(d("4")))
}

func TestEngine_SlotsConsumesOneDrawPerPlay(t *testing.T) {
	e := newTestEngine(0.1, 0.9, 0.05)

	out, err := e.Play(GameSlots, d("1"), model.GameParams{})
	require.NoError(t, err)
	assert.True(t, out.Win)
	assert.True(t, out.Prize.Equal(d("1")))
	assert.Equal(t, "lemon", out.Detail)

	out, err = e.Play(GameScratch, d("1"), model.GameParams{})
	require.NoError(t, err)
	assert.False(t, out.Win)
	assert.True(t, out.Prize.IsZero())

	out, err = e.Play(GameSlots, d("2"), model.GameParams{})
	require.NoError(t, err)
	assert.True(t, out.Prize.Equal(d("4")))
	assert.Equal(t, "plum", out.Detail)
}

func TestEngine_Dice(t *testing.T) {
	e := newTestEngine(0.25, 0.75)
	params := model.GameParams{Target: d("2")}

	out, err := e.Play(GameDice, d("5"), params)
	require.NoError(t, err)
	assert.True(t, out.Win)
	assert.True(t, out.Prize.Equal(d("10")), out.Prize.String())
	assert.Equal(t, "roll 25.00 under 49.50", out.Detail)

	out, err = e.Play(GameDice, d("5"), params)
	require.NoError(t, err)
	assert.False(t, out.Win)
	assert.True(t, out.Prize.IsZero())
}

func TestEngine_CoinFlip(t *testing.T) {
	e := newTestEngine(0.1, 0.7)

	out, err := e.Play(GameCoinFlip, d("10"), model.GameParams{Side: "heads"})
	require.NoError(t, err)
	assert.Equal(t, "heads", out.Detail)
	assert.True(t, out.Prize.Equal(d("19.8")), out.Prize.String())

	out, err = e.Play(GameCoinFlip, d("10"), model.GameParams{Side: "HEADS"})
	require.NoError(t, err)
	assert.Equal(t, "tails", out.Detail)
	assert.True(t, out.Prize.IsZero())
}

func TestEngine_Wheel(t *testing.T) {
	e := newTestEngine(0.35, 0.45)
	params := model.GameParams{Segments: 10, Pick: 3}

	out, err := e.Play(GameWheel, d("1"), params)
	require.NoError(t, err)
	assert.True(t, out.Win)
	assert.True(t, out.Prize.Equal(d("9.9")), out.Prize.String())

	out, err = e.Play(GameWheel, d("1"), params)
	require.NoError(t, err)
	assert.False(t, out.Win)
	assert.Equal(t, "segment 4 of 10", out.Detail)
}

func TestEngine_CapsPrize(t *testing.T) {
	e := newTestEngine(0.005)

	out, err := e.Play(GameWheel, d("10"), model.GameParams{Segments: 100, Pick: 0})
	require.NoError(t, err)
	assert.True(t, out.Prize.Equal(DefaultMaxPrize), out.Prize.String())
}

func TestEngine_Rejects(t *testing.T) {
	e := newTestEngine(0.5)

	_, err := e.Play("roulette", d("1"), model.GameParams{})
	assert.ErrorIs(t, err, model.ErrInvalidParams)

	_, err = e.Play(GameSlots, d("0"), model.GameParams{})
	assert.ErrorIs(t, err, model.ErrInvalidBet)

	_, err = e.Play(GameDice, d("1"), model.GameParams{Target: d("100")})
	assert.ErrorIs(t, err, model.ErrInvalidParams)

	_, err = e.Play(GameCoinFlip, d("1"), model.GameParams{Side: "edge"})
	assert.ErrorIs(t, err, model.ErrInvalidParams)

	_, err = e.Play(GameWheel, d("1"), model.GameParams{Segments: 5, Pick: 5})
	assert.ErrorIs(t, err, model.ErrInvalidParams)
}

func TestEngine_GameIDs(t *testing.T) {
	e := newTestEngine(0.5)
	assert.Equal(t, []string{GameCoinFlip, GameDice, GameScratch, GameSlots, GameWheel}, e.GameIDs())
}

func TestCryptoSource_Range(t *testing.T) {
	var src CryptoSource
	for i := 0; i < 1000; i++ {
		v := src.Float64()
		require.GreaterOrEqual(t, v, 0.0)
		require.Less(t, v, 1.0)
	}
}
