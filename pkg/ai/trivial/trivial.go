package trivial

import (
	"github.com/montplusa/tictactoe/pkg/game"
)

type TrivialAI struct{}

func (ai *TrivialAI) Name() string {
	return "trivial"
}

func New() *TrivialAI {
	return &TrivialAI{}
}

// SelectTurn は先手(0)を選択します
func (ai *TrivialAI) SelectTurn(b game.Board) int {
	return 0
}

var center = game.Move{Row: 1, Col: 1}

// SelectMove は一手先だけを読みます
// 勝てる手 → 相手の勝ちを防ぐ手 → 中央 → 最初の空きマス の順に選びます
func (ai *TrivialAI) SelectMove(b *game.Board, p game.Player) game.Move {
	cells := b.EmptyCells()
	if m, ok := completing(b, cells, p); ok {
		return m
	}
	if m, ok := completing(b, cells, p.Opponent()); ok {
		return m
	}
	if b.At(center) == game.Empty {
		return center
	}
	return cells[0]
}

// completing returns the first cell that gives p a line.
func completing(b *game.Board, cells []game.Move, p game.Player) (game.Move, bool) {
	for _, m := range cells {
		won := false
		b.WithMove(m, p, func() { won = b.IsWinner(p) })
		if won {
			return m, true
		}
	}
	return game.Move{}, false
}
