package game

import (
	"math/rand"
	"time"

	uuid "github.com/nu7hatch/gouuid"

	"github.com/montplusa/tictactoe/pkg/game/debug"
)

// BattleResult は対戦結果の記録
type BattleResult struct {
	ID      string    `json:"id"`
	Agents  [2]string `json:"agents"`
	First   int       `json:"first"`   // 先手のエージェント番号
	Moves   []Ply     `json:"moves"`   // 手の履歴
	Final   Board     `json:"final"`   // 最終盤面
	Winner  int       `json:"winner"`  // 0/1, 引き分けは -1
	Forfeit bool      `json:"forfeit"` // 不正な手による反則負け
}

// GameRunner は対戦を管理
type GameRunner struct {
	agents [2]Agent
	rng    *rand.Rand
}

// sides maps agent index to the side it plays.
var sides = [2]Player{AI, Human}

// SideOf returns the side agent i plays in a GameRunner battle.
func SideOf(i int) Player { return sides[i] }

// NewGameRunner は AI エージェントをセットして返す
func NewGameRunner(a0, a1 Agent) *GameRunner {
	return &GameRunner{
		agents: [2]Agent{a0, a1},
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// SetRand replaces the source used to pick who chooses the turn order.
func (gr *GameRunner) SetRand(r *rand.Rand) {
	gr.rng = r
}

// Run は対戦を実行して BattleResult を返す
func (gr *GameRunner) Run() BattleResult {
	var board Board

	// 1) 先後選択
	chooser := gr.rng.Intn(2)
	first := chooser
	if gr.agents[chooser].SelectTurn(board) == 1 {
		first = 1 - chooser
	}

	// 2) 結果オブジェクトの初期化
	result := BattleResult{
		ID:     newID(),
		Agents: [2]string{gr.agents[0].Name(), gr.agents[1].Name()},
		First:  first,
		Moves:  make([]Ply, 0, Size*Size),
		Winner: -1,
	}

	// 3) ゲームループ
	turn := first
	for !board.IsTerminal() && !board.IsFull() {
		player := sides[turn]
		debug.Log("turn %d (%s), %d empty", turn, player, len(board.EmptyCells()))

		scratch := board
		m := gr.agents[turn].SelectMove(&scratch, player)
		if err := board.Play(m, player); err != nil {
			debug.Log("%s played illegal move %v: %v", gr.agents[turn].Name(), m, err)
			result.Winner = 1 - turn
			result.Forfeit = true
			break
		}
		result.Moves = append(result.Moves, Ply{Player: player, Move: m})
		turn = 1 - turn
	}

	if w, ok := board.Winner(); ok {
		if w == sides[0] {
			result.Winner = 0
		} else {
			result.Winner = 1
		}
	}
	result.Final = board
	return result
}

func newID() string {
	u, err := uuid.NewV4()
	if err != nil {
		return ""
	}
	return u.String()
}
