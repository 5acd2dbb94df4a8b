package random

import (
	"math/rand"
	"sync"
	"time"

	"github.com/montplusa/tictactoe/pkg/game"
)

// RandomAI はランダムに行動を選ぶ実装
type RandomAI struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New は RandomAI を生成する
func New() *RandomAI {
	return NewWithRand(rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewWithRand uses r for every choice.
func NewWithRand(r *rand.Rand) *RandomAI { return &RandomAI{rng: r} }

func (r *RandomAI) Name() string { return "random" }

func (r *RandomAI) SelectTurn(b game.Board) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Intn(2)
}

func (r *RandomAI) SelectMove(b *game.Board, p game.Player) game.Move {
	cells := b.EmptyCells()
	r.mu.Lock()
	defer r.mu.Unlock()
	return cells[r.rng.Intn(len(cells))]
}
