//go:build js && wasm
// +build js,wasm

package main

import (
	"encoding/json"
	"syscall/js"

	"github.com/montplusa/tictactoe/pkg/ai"
	"github.com/montplusa/tictactoe/pkg/ai/minimax"
	"github.com/montplusa/tictactoe/pkg/game"
)

// bestMove(boardJSON, player) returns the search result as JSON.
func bestMove(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return errorJSON("usage: bestMove(boardJSON, player)")
	}
	var board game.Board
	if err := json.Unmarshal([]byte(args[0].String()), &board); err != nil {
		return errorJSON(err.Error())
	}
	player := game.Player(args[1].Int())
	if player != game.AI && player != game.Human {
		return errorJSON("player must be 1 or -1")
	}

	res := minimax.Search(&board, len(board.EmptyCells()), player)
	b, _ := json.Marshal(res)
	return string(b)
}

// runBattle(a0, a1) plays one self-play game and returns the BattleResult as JSON.
func runBattle(this js.Value, args []js.Value) interface{} {
	names := [2]string{"minimax", "random"}
	for i := 0; i < len(args) && i < 2; i++ {
		names[i] = args[i].String()
	}

	// 1) AI の初期化
	a0, err := ai.New(names[0], ai.Options{})
	if err != nil {
		return errorJSON(err.Error())
	}
	a1, err := ai.New(names[1], ai.Options{})
	if err != nil {
		return errorJSON(err.Error())
	}

	// 2) GameRunner の実行
	gr := game.NewGameRunner(a0, a1)
	result := gr.Run() // BattleResult 型を返す

	// 3) JSON 文字列にシリアライズ
	b, _ := json.Marshal(result)
	return string(b)
}

func errorJSON(msg string) string {
	b, _ := json.Marshal(map[string]string{"error": msg})
	return string(b)
}

func main() {
	js.Global().Set("bestMove", js.FuncOf(bestMove))
	js.Global().Set("runBattle", js.FuncOf(runBattle))
	select {} // ブロック
}
