package mcts

import (
	"math/rand"
	"testing"

	"github.com/montplusa/tictactoe/pkg/game"
)

func TestMCTSFindsOnlyWinningMove(t *testing.T) {
	// X . O / O X . / X O . : (2,2) wins, the rest draw at best.
	var b game.Board
	for _, m := range []game.Move{{Row: 0, Col: 0}, {Row: 1, Col: 1}, {Row: 2, Col: 0}} {
		b.ApplyMove(m, game.AI)
	}
	for _, m := range []game.Move{{Row: 0, Col: 2}, {Row: 1, Col: 0}, {Row: 2, Col: 1}} {
		b.ApplyMove(m, game.Human)
	}
	before := b

	ai := NewWithRand(2000, rand.New(rand.NewSource(5)))
	m := ai.SelectMove(&b, game.AI)
	if m != (game.Move{Row: 2, Col: 2}) {
		t.Fatalf("SelectMove = %v, want (2,2)", m)
	}
	if b != before {
		t.Fatalf("SelectMove changed the board")
	}
}

func TestMCTSPlaysForHuman(t *testing.T) {
	// the human completes the main diagonal at (2,2).
	var b game.Board
	for _, m := range []game.Move{{Row: 0, Col: 0}, {Row: 1, Col: 1}, {Row: 2, Col: 0}} {
		b.ApplyMove(m, game.Human)
	}
	for _, m := range []game.Move{{Row: 0, Col: 2}, {Row: 1, Col: 0}, {Row: 2, Col: 1}} {
		b.ApplyMove(m, game.AI)
	}
	ai := NewWithRand(2000, rand.New(rand.NewSource(9)))
	if m := ai.SelectMove(&b, game.Human); m != (game.Move{Row: 2, Col: 2}) {
		t.Fatalf("SelectMove = %v, want (2,2)", m)
	}
}

func TestMCTSLegalOnEmptyBoard(t *testing.T) {
	ai := NewWithRand(200, rand.New(rand.NewSource(1)))
	var b game.Board
	m := ai.SelectMove(&b, game.AI)
	if !game.InBounds(m) || b.At(m) != game.Empty {
		t.Fatalf("illegal move %v", m)
	}
}

func TestDefaultSimulations(t *testing.T) {
	if ai := New(0); ai.simulations != DefaultSimulations {
		t.Fatalf("simulations = %d, want %d", ai.simulations, DefaultSimulations)
	}
	if ai := New(0); ai.Name() != "mcts" {
		t.Fatalf("name = %q", ai.Name())
	}
}
