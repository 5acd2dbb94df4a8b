// Package minimax implements exhaustive minimax search over the 3x3 board.
package minimax

import "github.com/montplusa/tictactoe/pkg/game"

// Result is a chosen cell and the minimax value of the position after playing
// it. Row and Col are -1 when the result is a leaf evaluation.
type Result struct {
	Row   int `json:"row"`
	Col   int `json:"col"`
	Score int `json:"score"`
}

// Move returns the result's coordinates.
func (r Result) Move() game.Move { return game.Move{Row: r.Row, Col: r.Col} }

// IsLeaf reports whether the result carries no move.
func (r Result) IsLeaf() bool { return r.Row < 0 || r.Col < 0 }

// Stats counts the work done by one search.
type Stats struct {
	Nodes  int
	Leaves int
}

// Search returns the best move for player on b, looking depth plies ahead.
// The AI side maximises the score, the human side minimises it. Among equal
// scores the first cell in row-major order is kept. b is mutated during the
// search and restored before Search returns.
func Search(b *game.Board, depth int, player game.Player) Result {
	return search(b, depth, player, nil)
}

// SearchStats is Search with node counting.
func SearchStats(b *game.Board, depth int, player game.Player, st *Stats) Result {
	return search(b, depth, player, st)
}

func search(b *game.Board, depth int, player game.Player, st *Stats) Result {
	if st != nil {
		st.Nodes++
	}
	leaf := func() Result {
		if st != nil {
			st.Leaves++
		}
		return Result{Row: -1, Col: -1, Score: b.Evaluate()}
	}

	if depth == 0 || b.IsTerminal() {
		return leaf()
	}

	var best Result
	found := false
	for _, m := range b.EmptyCells() {
		var child Result
		b.WithMove(m, player, func() {
			child = search(b, depth-1, player.Opponent(), st)
		})
		child.Row, child.Col = m.Row, m.Col

		if !found || improves(player, child.Score, best.Score) {
			best, found = child, true
		}
	}

	// depth exceeded the number of empty cells and the board is full.
	if !found {
		return leaf()
	}
	return best
}

func improves(player game.Player, score, best int) bool {
	if player == game.AI {
		return score > best
	}
	return score < best
}
