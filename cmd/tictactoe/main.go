package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/montplusa/tictactoe/pkg/ai"
	"github.com/montplusa/tictactoe/pkg/console"
	"github.com/montplusa/tictactoe/pkg/game/debug"
)

func main() {
	agentName := flag.String("ai", "minimax", "Opponent agent: "+strings.Join(ai.Names(), ", "))
	randomOpening := flag.Bool("random-opening", true, "Play a random cell when the AI opens on an empty board")
	sims := flag.Int("mcts-sims", 1000, "Simulations per move for the mcts agent")
	noClear := flag.Bool("no-clear", false, "Do not clear the screen between turns")
	verbose := flag.Bool("debug", false, "Log search statistics to stderr")
	flag.Parse()

	if *verbose {
		debug.SetEnabled(true)
	}

	agent, err := ai.New(*agentName, ai.Options{RandomOpening: *randomOpening, Simulations: *sims})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		flag.Usage()
		os.Exit(2)
	}

	session := console.New(os.Stdin, os.Stdout, agent, console.Options{Clear: !*noClear})
	if err := session.Run(); err != nil {
		log.Fatalf("tictactoe: %v", err)
	}
}
