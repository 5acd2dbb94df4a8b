package game

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrGameOver    = errors.New("game over")
	ErrNotYourTurn = errors.New("not your turn")
	ErrBadSymbol   = errors.New("symbol must be X or O")
)

// Status is the outcome of a match so far.
type Status int

const (
	StatusRunning Status = iota
	StatusHumanWon
	StatusAIWon
	StatusDraw
)

func (s Status) String() string {
	switch s {
	case StatusHumanWon:
		return "human_won"
	case StatusAIWon:
		return "ai_won"
	case StatusDraw:
		return "draw"
	default:
		return "running"
	}
}

// Ply is one recorded move.
type Ply struct {
	Player Player `json:"player"`
	Move
}

// Match is a human-versus-agent game: the board used for actual play plus
// whose turn it is.
type Match struct {
	Board       Board
	HumanSymbol string
	AISymbol    string
	ToMove      Player
	History     []Ply
}

// ParseSymbol normalises a symbol choice to "X" or "O".
func ParseSymbol(s string) (string, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "X":
		return "X", nil
	case "O":
		return "O", nil
	}
	return "", ErrBadSymbol
}

// NewMatch starts a match on an empty board.
func NewMatch(humanSymbol string, humanFirst bool) (*Match, error) {
	sym, err := ParseSymbol(humanSymbol)
	if err != nil {
		return nil, err
	}
	m := &Match{HumanSymbol: sym, AISymbol: "O", ToMove: AI}
	if sym == "O" {
		m.AISymbol = "X"
	}
	if humanFirst {
		m.ToMove = Human
	}
	return m, nil
}

// Status reports the current outcome.
func (m *Match) Status() Status {
	if w, ok := m.Board.Winner(); ok {
		if w == AI {
			return StatusAIWon
		}
		return StatusHumanWon
	}
	if m.Board.IsFull() {
		return StatusDraw
	}
	return StatusRunning
}

// Over reports whether the match has finished.
func (m *Match) Over() bool { return m.Status() != StatusRunning }

func (m *Match) play(mv Move, p Player) error {
	if m.Over() {
		return ErrGameOver
	}
	if m.ToMove != p {
		return ErrNotYourTurn
	}
	if err := m.Board.Play(mv, p); err != nil {
		return err
	}
	m.History = append(m.History, Ply{Player: p, Move: mv})
	m.ToMove = p.Opponent()
	return nil
}

// PlayHuman applies the human's move.
func (m *Match) PlayHuman(mv Move) error {
	return m.play(mv, Human)
}

// PlayAI asks agent for a move and applies it.
func (m *Match) PlayAI(agent Agent) (Move, error) {
	if m.Over() {
		return Move{}, ErrGameOver
	}
	if m.ToMove != AI {
		return Move{}, ErrNotYourTurn
	}
	mv := agent.SelectMove(m.Board.Clone(), AI)
	if err := m.play(mv, AI); err != nil {
		return mv, fmt.Errorf("%s chose %v: %w", agent.Name(), mv, err)
	}
	return mv, nil
}

// Render draws the match board with its symbols.
func (m *Match) Render() string {
	return Render(&m.Board, m.AISymbol, m.HumanSymbol)
}
