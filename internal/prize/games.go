package prize

import (
	"fmt"
	"strings"

	"prizeledger/internal/model"

	"github.com/shopspring/decimal"
)

const (
	GameSlots    = "slots"
	GameScratch  = "scratch"
	GameDice     = "dice"
	GameCoinFlip = "coinflip"
	GameWheel    = "wheel"
)

var (
	hundred       = decimal.NewFromInt(100)
	minDiceTarget = decimal.RequireFromString("1.01")
	maxDiceTarget = decimal.NewFromInt(99)
)

const (
	minWheelSegments = 2
	maxWheelSegments = 100
)

// Outcome is the resolved result of one draw.
type Outcome struct {
	Prize  decimal.Decimal
	Detail string
	Win    bool
}

// Game resolves a single uniform draw into an outcome. Resolve must be a pure
// function of its arguments.
type Game interface {
	ID() string
	Validate(bet decimal.Decimal, p model.GameParams) error
	Resolve(r float64, bet decimal.Decimal, p model.GameParams) Outcome
}

// Multiplier is the fair payout for a win chance, less the house edge:
// (100 - houseEdge) / winChancePercent.
func Multiplier(houseEdge, winChancePercent decimal.Decimal) decimal.Decimal {
	return hundred.Sub(houseEdge).Div(winChancePercent)
}

func payout(bet, multiplier decimal.Decimal) decimal.Decimal {
	return bet.Mul(multiplier).RoundFloor(2)
}

// tableGame serves slots and scratch cards from the odds table.
type tableGame struct {
	id       string
	table    *Table
	maxPrize decimal.Decimal
}

func (g *tableGame) ID() string { return g.id }

func (g *tableGame) Validate(decimal.Decimal, model.GameParams) error { return nil }

func (g *tableGame) Resolve(r float64, bet decimal.Decimal, _ model.GameParams) Outcome {
	amount := g.table.Draw(r)
	if amount == 0 {
		return Outcome{Prize: decimal.Zero, Detail: Symbol(0)}
	}
	prize := g.table.Determine(r, bet, g.maxPrize)
	return Outcome{Prize: prize, Detail: Symbol(amount), Win: true}
}

// diceGame pays Target times the bet when the roll lands under the win chance
// implied by the target.
type diceGame struct {
	houseEdge decimal.Decimal
}

func (g *diceGame) ID() string { return GameDice }

func (g *diceGame) Validate(_ decimal.Decimal, p model.GameParams) error {
	if p.Target.LessThan(minDiceTarget) || p.Target.GreaterThan(maxDiceTarget) {
		return model.NewError(model.CodeInvalidParams, "target multiplier must be between %s and %s", minDiceTarget, maxDiceTarget)
	}
	return nil
}

func (g *diceGame) Resolve(r float64, bet decimal.Decimal, p model.GameParams) Outcome {
	winChance := hundred.Sub(g.houseEdge).Div(p.Target)
	roll := decimal.NewFromFloat(r * 100).RoundFloor(2)
	detail := fmt.Sprintf("roll %s under %s", roll.StringFixed(2), winChance.StringFixed(2))
	if roll.LessThan(winChance) {
		return Outcome{Prize: payout(bet, p.Target), Detail: detail, Win: true}
	}
	return Outcome{Prize: decimal.Zero, Detail: detail}
}

type coinFlipGame struct {
	houseEdge decimal.Decimal
}

func (g *coinFlipGame) ID() string { return GameCoinFlip }

func (g *coinFlipGame) Validate(_ decimal.Decimal, p model.GameParams) error {
	switch strings.ToLower(p.Side) {
	case "heads", "tails":
		return nil
	}
	return model.NewError(model.CodeInvalidParams, "side must be heads or tails")
}

func (g *coinFlipGame) Resolve(r float64, bet decimal.Decimal, p model.GameParams) Outcome {
	landed := "tails"
	if r < 0.5 {
		landed = "heads"
	}
	if landed == strings.ToLower(p.Side) {
		return Outcome{Prize: payout(bet, Multiplier(g.houseEdge, decimal.NewFromInt(50))), Detail: landed, Win: true}
	}
	return Outcome{Prize: decimal.Zero, Detail: landed}
}

// wheelGame has Segments equal slots; the player wins on their picked slot.
type wheelGame struct {
	houseEdge decimal.Decimal
}

func (g *wheelGame) ID() string { return GameWheel }

func (g *wheelGame) Validate(_ decimal.Decimal, p model.GameParams) error {
	if p.Segments < minWheelSegments || p.Segments > maxWheelSegments {
		return model.NewError(model.CodeInvalidParams, "segments must be between %d and %d", minWheelSegments, maxWheelSegments)
	}
	if p.Pick < 0 || p.Pick >= p.Segments {
		return model.NewError(model.CodeInvalidParams, "pick must be between 0 and %d", p.Segments-1)
	}
	return nil
}

func (g *wheelGame) Resolve(r float64, bet decimal.Decimal, p model.GameParams) Outcome {
	landed := int(r * float64(p.Segments))
	if landed >= p.Segments {
		landed = p.Segments - 1
	}
	detail := fmt.Sprintf("segment %d of %d", landed, p.Segments)
	if landed != p.Pick {
		return Outcome{Prize: decimal.Zero, Detail: detail}
	}
	winChance := hundred.Div(decimal.NewFromInt(int64(p.Segments)))
	return Outcome{Prize: payout(bet, Multiplier(g.houseEdge, winChance)), Detail: detail, Win: true}
}
