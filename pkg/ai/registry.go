// Package ai builds agents by name.
package ai

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"github.com/montplusa/tictactoe/pkg/ai/mcts"
	"github.com/montplusa/tictactoe/pkg/ai/minimax"
	"github.com/montplusa/tictactoe/pkg/ai/random"
	"github.com/montplusa/tictactoe/pkg/ai/trivial"
	"github.com/montplusa/tictactoe/pkg/game"
)

var ErrUnknownAgent = errors.New("unknown agent")

// Options carries the settings an agent constructor may use.
type Options struct {
	// Rand seeds agents that make random choices. nil means time-seeded.
	Rand *rand.Rand
	// RandomOpening lets minimax play a random first move on an empty board.
	RandomOpening bool
	// Simulations per move for mcts.
	Simulations int
}

var constructors = map[string]func(Options) game.Agent{
	"minimax": func(o Options) game.Agent {
		opts := []minimax.Option{minimax.WithRandomOpening(o.RandomOpening)}
		if o.Rand != nil {
			opts = append(opts, minimax.WithRand(o.Rand))
		}
		return minimax.New(opts...)
	},
	"random": func(o Options) game.Agent {
		if o.Rand != nil {
			return random.NewWithRand(o.Rand)
		}
		return random.New()
	},
	"trivial": func(Options) game.Agent { return trivial.New() },
	"mcts": func(o Options) game.Agent {
		if o.Rand != nil {
			return mcts.NewWithRand(o.Simulations, o.Rand)
		}
		return mcts.New(o.Simulations)
	},
}

// New returns the agent registered under name.
func New(name string, opts Options) (game.Agent, error) {
	ctor, ok := constructors[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w %q (have %s)", ErrUnknownAgent, name, strings.Join(Names(), ", "))
	}
	return ctor(opts), nil
}

// Names lists the registered agents in sorted order.
func Names() []string {
	names := make([]string, 0, len(constructors))
	for n := range constructors {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
