package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/montplusa/tictactoe/pkg/game/debug"
)

const wsIdlePingInterval = 30 * time.Second

type wsMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type client struct {
	send chan []byte
}

func (c *client) sendJSON(msg wsMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

// broadcast must be called with e.mu held.
func (e *gameEntry) broadcast(state gameDTO) {
	msg := wsMessage{Type: "state", Payload: mustMarshal(state)}
	for c := range e.clients {
		c.sendJSON(msg)
	}
}

// closeClients must be called with e.mu held.
func (e *gameEntry) closeClients() {
	for c := range e.clients {
		delete(e.clients, c)
		close(c.send)
	}
}

func (e *gameEntry) unregister(c *client) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.clients[c]; ok {
		delete(e.clients, c)
		close(c.send)
	}
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	e, ok := s.lookup(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, errUnknownGame)
		return
	}
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	c := &client{send: make(chan []byte, 16)}

	e.mu.Lock()
	e.clients[c] = struct{}{}
	c.sendJSON(wsMessage{Type: "state", Payload: mustMarshal(e.dto())})
	e.mu.Unlock()

	go func() {
		defer conn.Close()
		if err := writeWSWithHeartbeat(conn, c.send); err != nil {
			debug.Log("ws %s: write: %v", e.id, err)
		}
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			e.unregister(c)
			return
		}
		var msg wsMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}
		s.handleWSMessage(e, c, msg)
	}
}

func (s *Server) handleWSMessage(e *gameEntry, c *client, msg wsMessage) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.clients[c]; !ok {
		return
	}

	switch msg.Type {
	case "request_state":
		c.sendJSON(wsMessage{Type: "state", Payload: mustMarshal(e.dto())})
	case "move":
		var req moveRequest
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			c.sendJSON(wsMessage{Type: "error", Payload: mustMarshal(map[string]string{"error": err.Error()})})
			return
		}
		if err := e.applyMove(s.cfg.Agent, req); err != nil {
			c.sendJSON(wsMessage{Type: "error", Payload: mustMarshal(map[string]string{"error": err.Error()})})
			return
		}
		e.broadcast(e.dto())
	}
}

func writeWSWithHeartbeat(conn *websocket.Conn, send <-chan []byte) error {
	ticker := time.NewTicker(wsIdlePingInterval)
	defer ticker.Stop()
	lastWrite := time.Now()
	pingPayload := mustMarshal(wsMessage{Type: "ping"})

	for {
		select {
		case msg, ok := <-send:
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return nil
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return err
			}
			lastWrite = time.Now()
		case <-ticker.C:
			if time.Since(lastWrite) < wsIdlePingInterval {
				continue
			}
			if err := conn.WriteMessage(websocket.TextMessage, pingPayload); err != nil {
				return err
			}
			lastWrite = time.Now()
		}
	}
}
