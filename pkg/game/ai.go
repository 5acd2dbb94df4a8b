package game

// Agent is a game-playing program.
type Agent interface {
	Name() string
	// SelectTurn returns 0 to move first or 1 to move second.
	SelectTurn(b Board) int
	// SelectMove picks an empty cell for p. b may be mutated during the call
	// but must be restored before returning.
	SelectMove(b *Board, p Player) Move
}
