package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	uuid "github.com/nu7hatch/gouuid"

	"github.com/montplusa/tictactoe/pkg/ai/minimax"
	"github.com/montplusa/tictactoe/pkg/game"
)

var (
	errUnknownGame = errors.New("unknown game")
	errBadPlayer   = errors.New("player must be 1 (ai) or -1 (human)")
	errBadCell     = errors.New("board cells must be -1, 0 or 1")
	errNoMoves     = errors.New("position is already decided")
	errNoMove      = errors.New("move needs cell or row and col")
)

type gameEntry struct {
	mu      sync.Mutex
	id      string
	match   *game.Match
	lastAI  *game.Move
	clients map[*client]struct{}
}

type gameDTO struct {
	ID          string     `json:"id"`
	Board       game.Board `json:"board"`
	HumanSymbol string     `json:"human_symbol"`
	AISymbol    string     `json:"ai_symbol"`
	ToMove      string     `json:"to_move"`
	Status      string     `json:"status"`
	History     []game.Ply `json:"history"`
	LastAIMove  *game.Move `json:"last_ai_move,omitempty"`
	LastAICell  int        `json:"last_ai_cell,omitempty"` // numpad key of LastAIMove
}

type createRequest struct {
	HumanSymbol string `json:"human_symbol"`
	HumanFirst  bool   `json:"human_first"`
}

type moveRequest struct {
	Cell *int `json:"cell,omitempty"`
	Row  *int `json:"row,omitempty"`
	Col  *int `json:"col,omitempty"`
}

type searchRequest struct {
	Board  game.Board  `json:"board"`
	Player game.Player `json:"player"`
}

// dto must be called with e.mu held.
func (e *gameEntry) dto() gameDTO {
	history := append([]game.Ply{}, e.match.History...)
	to := "human"
	if e.match.ToMove == game.AI {
		to = "ai"
	}
	cell := 0
	if e.lastAI != nil {
		cell = game.NumpadKey(*e.lastAI)
	}
	return gameDTO{
		ID:          e.id,
		Board:       e.match.Board,
		HumanSymbol: e.match.HumanSymbol,
		AISymbol:    e.match.AISymbol,
		ToMove:      to,
		Status:      e.match.Status().String(),
		History:     history,
		LastAIMove:  e.lastAI,
		LastAICell:  cell,
	}
}

// playAI lets the agent reply when it is on move. e.mu must be held.
func (e *gameEntry) playAI(agent game.Agent) error {
	if e.match.Over() || e.match.ToMove != game.AI {
		return nil
	}
	m, err := e.match.PlayAI(agent)
	if err != nil {
		return err
	}
	e.lastAI = &m
	return nil
}

// applyMove plays the human move and the agent's reply. e.mu must be held.
func (e *gameEntry) applyMove(agent game.Agent, req moveRequest) error {
	m, err := req.move()
	if err != nil {
		return err
	}
	if err := e.match.PlayHuman(m); err != nil {
		return err
	}
	return e.playAI(agent)
}

func (r moveRequest) move() (game.Move, error) {
	if r.Cell != nil {
		return game.MoveFromNumpad(*r.Cell)
	}
	if r.Row != nil && r.Col != nil {
		return game.Move{Row: *r.Row, Col: *r.Col}, nil
	}
	return game.Move{}, errNoMove
}

func (s *Server) lookup(id string) (*gameEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.games[id]
	return e, ok
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid payload: %w", err))
		return
	}
	if req.Player != game.AI && req.Player != game.Human {
		writeError(w, http.StatusBadRequest, errBadPlayer)
		return
	}
	for _, row := range req.Board {
		for _, c := range row {
			if c != game.Empty && c != game.Cell(game.AI) && c != game.Cell(game.Human) {
				writeError(w, http.StatusBadRequest, errBadCell)
				return
			}
		}
	}
	if req.Board.IsTerminal() || req.Board.IsFull() {
		writeError(w, http.StatusBadRequest, errNoMoves)
		return
	}

	depth := len(req.Board.EmptyCells())
	writeJSON(w, http.StatusOK, minimax.Search(&req.Board, depth, req.Player))
}

func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	req := createRequest{HumanSymbol: "X", HumanFirst: true}
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("invalid payload: %w", err))
			return
		}
	}
	match, err := game.NewMatch(req.HumanSymbol, req.HumanFirst)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	u, err := uuid.NewV4()
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Errorf("generate id: %w", err))
		return
	}

	e := &gameEntry{id: u.String(), match: match, clients: make(map[*client]struct{})}
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.playAI(s.cfg.Agent); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	s.mu.Lock()
	s.games[e.id] = e
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, e.dto())
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	e, ok := s.lookup(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, errUnknownGame)
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	writeJSON(w, http.StatusOK, e.dto())
}

func (s *Server) handleDeleteGame(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.mu.Lock()
	e, ok := s.games[id]
	delete(s.games, id)
	s.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, errUnknownGame)
		return
	}
	e.mu.Lock()
	e.closeClients()
	e.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"deleted": true, "id": id})
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	e, ok := s.lookup(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, errUnknownGame)
		return
	}
	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid payload: %w", err))
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.applyMove(s.cfg.Agent, req); err != nil {
		writeError(w, moveStatus(err), err)
		return
	}
	state := e.dto()
	e.broadcast(state)
	writeJSON(w, http.StatusOK, state)
}

func moveStatus(err error) int {
	switch {
	case errors.Is(err, game.ErrBadChoice), errors.Is(err, game.ErrOutOfRange), errors.Is(err, errNoMove):
		return http.StatusBadRequest
	case errors.Is(err, game.ErrOccupied), errors.Is(err, game.ErrGameOver), errors.Is(err, game.ErrNotYourTurn):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) closeAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, e := range s.games {
		e.mu.Lock()
		e.closeClients()
		e.mu.Unlock()
		delete(s.games, id)
	}
}
