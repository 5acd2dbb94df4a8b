package minimax

import (
	"math/rand"
	"sync"
	"time"

	"github.com/montplusa/tictactoe/pkg/game"
	"github.com/montplusa/tictactoe/pkg/game/debug"
)

// MinimaxAI plays the move returned by a full-depth Search.
type MinimaxAI struct {
	randomOpening bool

	mu  sync.Mutex
	rng *rand.Rand
}

// Option configures a MinimaxAI.
type Option func(*MinimaxAI)

// WithRandomOpening makes the agent play a random cell on an empty board
// instead of searching.
func WithRandomOpening(on bool) Option {
	return func(ai *MinimaxAI) { ai.randomOpening = on }
}

// WithRand sets the source used for random openings.
func WithRand(r *rand.Rand) Option {
	return func(ai *MinimaxAI) { ai.rng = r }
}

// New returns a MinimaxAI.
func New(opts ...Option) *MinimaxAI {
	ai := &MinimaxAI{}
	for _, o := range opts {
		o(ai)
	}
	if ai.rng == nil {
		ai.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return ai
}

func (ai *MinimaxAI) Name() string {
	return "minimax"
}

// SelectTurn always moves first.
func (ai *MinimaxAI) SelectTurn(b game.Board) int {
	return 0
}

// SelectMove searches to the number of remaining empty cells.
func (ai *MinimaxAI) SelectMove(b *game.Board, p game.Player) game.Move {
	depth := len(b.EmptyCells())
	if ai.randomOpening && depth == game.Size*game.Size {
		ai.mu.Lock()
		m := game.Move{Row: ai.rng.Intn(game.Size), Col: ai.rng.Intn(game.Size)}
		ai.mu.Unlock()
		debug.Log("minimax: random opening %v", m)
		return m
	}

	if !debug.Enabled() {
		return Search(b, depth, p).Move()
	}
	var st Stats
	res := SearchStats(b, depth, p, &st)
	debug.Log("minimax: %s depth %d -> %v score %d (%d nodes, %d leaves)",
		p, depth, res.Move(), res.Score, st.Nodes, st.Leaves)
	return res.Move()
}
