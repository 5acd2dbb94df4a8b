package mcts

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/montplusa/tictactoe/pkg/game"
)

// DefaultSimulations is used when New is given a non-positive count.
const DefaultSimulations = 1000

// Exploration parameter
const exploration = 1.414 // sqrt(2)

// MCTSNode represents a node in the Monte Carlo search tree
type MCTSNode struct {
	board        game.Board
	parent       *MCTSNode
	move         game.Move // move that led here from parent
	children     []*MCTSNode
	visits       int
	totalReward  float64 // from the perspective of the player who made move
	unexplored   []game.Move
	playerToMove game.Player
}

// MCTSAI chooses moves by Monte Carlo Tree Search with random playouts.
type MCTSAI struct {
	simulations int

	mu  sync.Mutex
	rng *rand.Rand
}

// New returns an agent running the given number of simulations per move.
func New(simulations int) *MCTSAI {
	return NewWithRand(simulations, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewWithRand is New with an explicit random source.
func NewWithRand(simulations int, r *rand.Rand) *MCTSAI {
	if simulations <= 0 {
		simulations = DefaultSimulations
	}
	return &MCTSAI{simulations: simulations, rng: r}
}

func (s *MCTSAI) Name() string {
	return "mcts"
}

func (s *MCTSAI) SelectTurn(b game.Board) int {
	return 0
}

// SelectMove performs Monte Carlo Tree Search to find the best move
func (s *MCTSAI) SelectMove(b *game.Board, p game.Player) game.Move {
	s.mu.Lock()
	defer s.mu.Unlock()

	root := newNode(*b, nil, game.Move{Row: -1, Col: -1}, p)

	for i := 0; i < s.simulations; i++ {
		// Selection and expansion
		node := s.selectNode(root)

		// Simulation
		winner, won := s.simulate(node.board, node.playerToMove)

		// Backpropagation
		backpropagate(node, winner, won)
	}

	// Choose the most visited child of root
	var bestChild *MCTSNode
	for _, child := range root.children {
		if bestChild == nil || child.visits > bestChild.visits {
			bestChild = child
		}
	}
	if bestChild == nil {
		// Fallback to first legal move if no child was expanded
		return b.EmptyCells()[0]
	}
	return bestChild.move
}

func newNode(b game.Board, parent *MCTSNode, m game.Move, toMove game.Player) *MCTSNode {
	n := &MCTSNode{board: b, parent: parent, move: m, playerToMove: toMove}
	if !b.IsTerminal() {
		n.unexplored = b.EmptyCells()
	}
	return n
}

// selectNode selects a node for expansion using UCB1
func (s *MCTSAI) selectNode(node *MCTSNode) *MCTSNode {
	// If node is not fully expanded, expand it
	if len(node.unexplored) > 0 {
		index := s.rng.Intn(len(node.unexplored))
		move := node.unexplored[index]
		node.unexplored = append(node.unexplored[:index], node.unexplored[index+1:]...)

		childBoard := node.board
		childBoard.ApplyMove(move, node.playerToMove)
		child := newNode(childBoard, node, move, node.playerToMove.Opponent())
		node.children = append(node.children, child)
		return child
	}

	// Terminal node
	if len(node.children) == 0 {
		return node
	}

	var bestChild *MCTSNode
	var bestUCB float64
	for _, child := range node.children {
		exploitation := child.totalReward / float64(child.visits)
		explore := exploration * math.Sqrt(math.Log(float64(node.visits))/float64(child.visits))
		ucb := exploitation + explore

		if bestChild == nil || ucb > bestUCB {
			bestChild = child
			bestUCB = ucb
		}
	}

	return s.selectNode(bestChild)
}

// simulate plays uniformly random moves until the game ends and returns the
// winner, if any.
func (s *MCTSAI) simulate(b game.Board, toMove game.Player) (game.Player, bool) {
	for {
		if w, ok := b.Winner(); ok {
			return w, true
		}
		cells := b.EmptyCells()
		if len(cells) == 0 {
			return 0, false
		}
		b.ApplyMove(cells[s.rng.Intn(len(cells))], toMove)
		toMove = toMove.Opponent()
	}
}

// backpropagate updates the statistics for all nodes in the path
func backpropagate(node *MCTSNode, winner game.Player, won bool) {
	for n := node; n != nil; n = n.parent {
		n.visits++
		if !won {
			continue
		}
		// the player who moved into n is the opponent of n's player to move
		if winner == n.playerToMove.Opponent() {
			n.totalReward++
		} else {
			n.totalReward--
		}
	}
}
