package prize

import (
	"sort"

	"prizeledger/internal/model"

	"github.com/shopspring/decimal"
)

// Options configures the engine. Both values are fixed for the process
// lifetime.
type Options struct {
	MaxPrize  decimal.Decimal
	HouseEdge decimal.Decimal
}

var (
	DefaultMaxPrize  = decimal.NewFromInt(500)
	DefaultHouseEdge = decimal.NewFromInt(1)
)

// Engine owns the game catalogue and the random source. Each Play consumes
// exactly one draw.
type Engine struct {
	games    map[string]Game
	src      Source
	maxPrize decimal.Decimal
}

func NewEngine(table *Table, src Source, opts Options) *Engine {
	if opts.MaxPrize.IsZero() {
		opts.MaxPrize = DefaultMaxPrize
	}
	if opts.HouseEdge.IsZero() {
		opts.HouseEdge = DefaultHouseEdge
	}
	e := &Engine{
		games:    make(map[string]Game),
		src:      src,
		maxPrize: opts.MaxPrize,
	}
	e.register(&tableGame{id: GameSlots, table: table, maxPrize: opts.MaxPrize})
	e.register(&tableGame{id: GameScratch, table: table, maxPrize: opts.MaxPrize})
	e.register(&diceGame{houseEdge: opts.HouseEdge})
	e.register(&coinFlipGame{houseEdge: opts.HouseEdge})
	e.register(&wheelGame{houseEdge: opts.HouseEdge})
	return e
}

func (e *Engine) register(g Game) {
	e.games[g.ID()] = g
}

// Game looks up a registered game.
func (e *Engine) Game(id string) (Game, bool) {
	g, ok := e.games[id]
	return g, ok
}

// GameIDs lists registered games in stable order.
func (e *Engine) GameIDs() []string {
	ids := make([]string, 0, len(e.games))
	for id := range e.games {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (e *Engine) MaxPrize() decimal.Decimal { return e.maxPrize }

// Validate checks a play without drawing.
func (e *Engine) Validate(gameID string, bet decimal.Decimal, p model.GameParams) error {
	g, ok := e.games[gameID]
	if !ok {
		return model.NewError(model.CodeInvalidParams, "unknown game %q", gameID)
	}
	if !bet.IsPositive() {
		return model.ErrInvalidBet
	}
	return g.Validate(bet, p)
}

// Play validates the game parameters, draws once and resolves the outcome.
func (e *Engine) Play(gameID string, bet decimal.Decimal, p model.GameParams) (Outcome, error) {
	if err := e.Validate(gameID, bet, p); err != nil {
		return Outcome{}, err
	}
	out := e.games[gameID].Resolve(e.src.Float64(), bet, p)
	if out.Prize.GreaterThan(e.maxPrize) {
		out.Prize = e.maxPrize
	}
	return out, nil
}
