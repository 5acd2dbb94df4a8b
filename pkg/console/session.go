// Package console runs interactive human-versus-agent games on a terminal.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/montplusa/tictactoe/pkg/game"
)

const clearScreen = "\033[H\033[2J"

// errQuit ends the session after the input is exhausted.
var errQuit = errors.New("quit")

// Options configures a Session.
type Options struct {
	// Clear emits an ANSI clear-screen sequence before each screen.
	Clear bool
}

// Session is one console run, possibly spanning several games.
type Session struct {
	in    *bufio.Scanner
	out   io.Writer
	agent game.Agent
	opts  Options
}

// New returns a session reading from in and writing to out.
func New(in io.Reader, out io.Writer, agent game.Agent, opts Options) *Session {
	return &Session{in: bufio.NewScanner(in), out: out, agent: agent, opts: opts}
}

// Run plays games until the human declines another one or the input ends.
func (s *Session) Run() error {
	err := s.run()
	if errors.Is(err, errQuit) {
		s.println("Bye")
		return nil
	}
	return err
}

func (s *Session) run() error {
	for {
		if err := s.playGame(); err != nil {
			return err
		}
		again, err := s.askYesNo("Do you want to play again?[y/n]: ")
		if err != nil {
			return err
		}
		if !again {
			return nil
		}
	}
}

func (s *Session) playGame() error {
	s.clear()
	symbol, err := s.askSymbol()
	if err != nil {
		return err
	}
	s.clear()
	humanFirst, err := s.askYesNo("First to start?[y/n]: ")
	if err != nil {
		return err
	}

	match, err := game.NewMatch(symbol, humanFirst)
	if err != nil {
		return err
	}

	for !match.Over() {
		if match.ToMove == game.AI {
			if err := s.aiTurn(match); err != nil {
				return err
			}
			continue
		}
		if err := s.humanTurn(match); err != nil {
			return err
		}
	}

	s.clear()
	switch match.Status() {
	case game.StatusHumanWon:
		s.printf("Human turn [%s]\n", match.HumanSymbol)
		s.printf("%s", match.Render())
		s.println("WINNER!")
	case game.StatusAIWon:
		s.printf("AI turn [%s]\n", match.AISymbol)
		s.printf("%s", match.Render())
		s.println("LOSER!")
	default:
		s.printf("%s", match.Render())
		s.println("DRAW!")
	}
	return nil
}

func (s *Session) aiTurn(match *game.Match) error {
	s.clear()
	s.printf("AI turn [%s]\n", match.AISymbol)
	s.printf("%s", match.Render())
	if _, err := match.PlayAI(s.agent); err != nil {
		return fmt.Errorf("ai turn: %w", err)
	}
	return nil
}

func (s *Session) humanTurn(match *game.Match) error {
	s.clear()
	s.printf("Human turn [%s]\n", match.HumanSymbol)
	s.printf("%s", match.Render())

	for {
		line, err := s.prompt("Use numpad (1..9): ")
		if err != nil {
			return err
		}
		n, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil {
			s.println("Bad choice")
			continue
		}
		m, err := game.MoveFromNumpad(n)
		if err != nil {
			s.println("Bad choice")
			continue
		}
		if err := match.PlayHuman(m); err != nil {
			if errors.Is(err, game.ErrOccupied) {
				s.println("Bad move")
				continue
			}
			return fmt.Errorf("human turn: %w", err)
		}
		return nil
	}
}

func (s *Session) askSymbol() (string, error) {
	for {
		s.println("")
		line, err := s.prompt("Choose X or O\nChosen: ")
		if err != nil {
			return "", err
		}
		if sym, err := game.ParseSymbol(line); err == nil {
			return sym, nil
		}
		s.println("Please input X or O only!")
	}
}

func (s *Session) askYesNo(question string) (bool, error) {
	for {
		line, err := s.prompt(question)
		if err != nil {
			return false, err
		}
		switch strings.ToUpper(strings.TrimSpace(line)) {
		case "Y", "YES":
			return true, nil
		case "N", "NO":
			return false, nil
		}
		s.println("Please input Y or N only!")
	}
}

// prompt writes text and reads one line. End of input yields errQuit.
func (s *Session) prompt(text string) (string, error) {
	s.printf("%s", text)
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		s.println("")
		return "", errQuit
	}
	return s.in.Text(), nil
}

func (s *Session) clear() {
	if s.opts.Clear {
		s.printf("%s", clearScreen)
	}
}

func (s *Session) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

func (s *Session) println(text string) {
	fmt.Fprintln(s.out, text)
}
