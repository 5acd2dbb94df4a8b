package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/montplusa/tictactoe/pkg/ai"
	"github.com/montplusa/tictactoe/pkg/game/debug"
	"github.com/montplusa/tictactoe/pkg/server"
)

func main() {
	addr := flag.String("addr", ":8080", "Listen address")
	agentName := flag.String("ai", "minimax", "Opponent agent: "+strings.Join(ai.Names(), ", "))
	randomOpening := flag.Bool("random-opening", false, "Play a random cell when the AI opens on an empty board")
	sims := flag.Int("mcts-sims", 1000, "Simulations per move for the mcts agent")
	verbose := flag.Bool("debug", false, "Log search statistics")
	flag.Parse()

	if *verbose {
		debug.SetEnabled(true)
	}

	agent, err := ai.New(*agentName, ai.Options{RandomOpening: *randomOpening, Simulations: *sims})
	if err != nil {
		log.Fatalf("tictactoe-server: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(server.Config{Addr: *addr, Agent: agent})
	if err := srv.ListenAndServe(ctx); err != nil {
		log.Fatalf("tictactoe-server: %v", err)
	}
}
