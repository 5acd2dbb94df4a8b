package game

import "errors"

// Size is the side length of the board.
const Size = 3

// Scores returned by Evaluate.
const (
	WinScore  = 10
	DrawScore = 0
	LossScore = -10
)

// Player identifies a side. Negating a Player yields its opponent.
type Player int8

const (
	Human Player = -1
	AI    Player = 1
)

// Opponent returns the other side.
func (p Player) Opponent() Player { return -p }

func (p Player) String() string {
	switch p {
	case AI:
		return "AI"
	case Human:
		return "Human"
	default:
		return "none"
	}
}

// Cell holds Empty or the Player whose mark occupies it.
type Cell int8

const Empty Cell = 0

// Board is the 3x3 grid, indexed [row][col].
type Board [Size][Size]Cell

// Move is a (row, col) coordinate.
type Move struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

var (
	ErrOutOfRange = errors.New("cell out of range")
	ErrOccupied   = errors.New("cell occupied")
	ErrBadChoice  = errors.New("bad choice")
)

// lines lists the eight winning lines: rows, columns, diagonals.
var lines = [8][3]Move{
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
	{{0, 0}, {1, 1}, {2, 2}},
	{{2, 0}, {1, 1}, {0, 2}},
}

// Clone returns a copy of the board.
func (b *Board) Clone() *Board {
	c := *b
	return &c
}

// At returns the cell at m.
func (b *Board) At(m Move) Cell { return b[m.Row][m.Col] }

// InBounds reports whether m addresses a cell of the board.
func InBounds(m Move) bool {
	return m.Row >= 0 && m.Row < Size && m.Col >= 0 && m.Col < Size
}

// EmptyCells returns every empty cell in row-major order.
func (b *Board) EmptyCells() []Move {
	cells := make([]Move, 0, Size*Size)
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if b[r][c] == Empty {
				cells = append(cells, Move{r, c})
			}
		}
	}
	return cells
}

// IsFull reports whether no empty cell remains.
func (b *Board) IsFull() bool {
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if b[r][c] == Empty {
				return false
			}
		}
	}
	return true
}

// IsWinner reports whether p holds any complete line.
func (b *Board) IsWinner(p Player) bool {
	mark := Cell(p)
	for _, ln := range lines {
		if b.At(ln[0]) == mark && b.At(ln[1]) == mark && b.At(ln[2]) == mark {
			return true
		}
	}
	return false
}

// IsTerminal reports whether either player has won. A full board without a
// winner is not terminal.
func (b *Board) IsTerminal() bool {
	return b.IsWinner(AI) || b.IsWinner(Human)
}

// Winner returns the winning player, if any.
func (b *Board) Winner() (Player, bool) {
	switch {
	case b.IsWinner(AI):
		return AI, true
	case b.IsWinner(Human):
		return Human, true
	}
	return 0, false
}

// Evaluate scores the board: WinScore if the AI has a line, LossScore if the
// human has one, DrawScore otherwise.
func (b *Board) Evaluate() int {
	switch {
	case b.IsWinner(AI):
		return WinScore
	case b.IsWinner(Human):
		return LossScore
	}
	return DrawScore
}

// ApplyMove writes p's mark at m. The cell must be empty.
func (b *Board) ApplyMove(m Move, p Player) {
	b[m.Row][m.Col] = Cell(p)
}

// ClearCell empties the cell at m.
func (b *Board) ClearCell(m Move) {
	b[m.Row][m.Col] = Empty
}

// WithMove applies p's mark at m for the duration of fn. The cell is cleared
// again on every return path, including a panic in fn.
func (b *Board) WithMove(m Move, p Player, fn func()) {
	b.ApplyMove(m, p)
	defer b.ClearCell(m)
	fn()
}

// Play validates m and applies it for p.
func (b *Board) Play(m Move, p Player) error {
	if !InBounds(m) {
		return ErrOutOfRange
	}
	if b.At(m) != Empty {
		return ErrOccupied
	}
	b.ApplyMove(m, p)
	return nil
}

// numpad maps keypad digits onto the grid as they appear on a keyboard.
var numpad = map[int]Move{
	7: {0, 0}, 8: {0, 1}, 9: {0, 2},
	4: {1, 0}, 5: {1, 1}, 6: {1, 2},
	1: {2, 0}, 2: {2, 1}, 3: {2, 2},
}

// MoveFromNumpad converts a keypad digit 1..9 to a cell.
func MoveFromNumpad(n int) (Move, error) {
	m, ok := numpad[n]
	if !ok {
		return Move{}, ErrBadChoice
	}
	return m, nil
}

// NumpadKey is the inverse of MoveFromNumpad.
func NumpadKey(m Move) int {
	for k, v := range numpad {
		if v == m {
			return k
		}
	}
	return 0
}
