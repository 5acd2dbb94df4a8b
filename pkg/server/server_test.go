package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/montplusa/tictactoe/pkg/ai/minimax"
	"github.com/montplusa/tictactoe/pkg/game"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := New(Config{Agent: minimax.New()})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func do(t *testing.T, ts *httptest.Server, method, path, body string, out any) int {
	t.Helper()
	req, err := http.NewRequest(method, ts.URL+path, strings.NewReader(body))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s %s: %v", method, path, err)
		}
	}
	return resp.StatusCode
}

func TestPing(t *testing.T) {
	ts := newTestServer(t)
	var out map[string]bool
	if code := do(t, ts, http.MethodGet, "/api/ping", "", &out); code != http.StatusOK || !out["ok"] {
		t.Fatalf("ping: %d %v", code, out)
	}
}

func TestSearchEndpoint(t *testing.T) {
	ts := newTestServer(t)

	var res minimax.Result
	body := `{"board": [[1,0,-1],[-1,1,0],[1,-1,0]], "player": 1}`
	if code := do(t, ts, http.MethodPost, "/api/search", body, &res); code != http.StatusOK {
		t.Fatalf("search: status %d", code)
	}
	if res.Row != 2 || res.Col != 2 || res.Score != game.WinScore {
		t.Fatalf("search = %+v, want (2,2) +10", res)
	}

	bad := []string{
		`{"board": [[5,0,0],[0,0,0],[0,0,0]], "player": 1}`,
		`{"board": [[0,0,0],[0,0,0],[0,0,0]], "player": 0}`,
		`{"board": [[1,1,1],[-1,-1,0],[0,0,0]], "player": -1}`,
		`{"board": [[1,-1,1],[1,-1,-1],[-1,1,1]], "player": 1}`,
		`not json`,
	}
	for _, b := range bad {
		var e map[string]string
		if code := do(t, ts, http.MethodPost, "/api/search", b, &e); code != http.StatusBadRequest || e["error"] == "" {
			t.Fatalf("%s: status %d %v", b, code, e)
		}
	}
}

func TestGameLifecycle(t *testing.T) {
	ts := newTestServer(t)

	var g gameDTO
	if code := do(t, ts, http.MethodPost, "/api/games", `{"human_symbol":"x","human_first":true}`, &g); code != http.StatusCreated {
		t.Fatalf("create: status %d", code)
	}
	if g.ID == "" || g.HumanSymbol != "X" || g.AISymbol != "O" || g.ToMove != "human" || g.Status != "running" {
		t.Fatalf("create: %+v", g)
	}

	if code := do(t, ts, http.MethodPost, "/api/games/"+g.ID+"/moves", `{"cell":5}`, &g); code != http.StatusOK {
		t.Fatalf("move: status %d", code)
	}
	if g.Board[1][1] != game.Cell(game.Human) {
		t.Fatalf("human mark missing: %v", g.Board)
	}
	if len(g.History) != 2 || g.LastAIMove == nil || *g.LastAIMove != (game.Move{Row: 0, Col: 0}) {
		t.Fatalf("ai reply: %+v", g)
	}
	if g.LastAICell != 7 {
		t.Fatalf("last_ai_cell = %d, want 7", g.LastAICell)
	}

	var e map[string]string
	cases := []struct {
		body string
		code int
	}{
		{`{"cell":5}`, http.StatusConflict},
		{`{"row":0,"col":0}`, http.StatusConflict},
		{`{"cell":10}`, http.StatusBadRequest},
		{`{"row":3,"col":0}`, http.StatusBadRequest},
		{`{}`, http.StatusBadRequest},
	}
	for _, tc := range cases {
		if code := do(t, ts, http.MethodPost, "/api/games/"+g.ID+"/moves", tc.body, &e); code != tc.code {
			t.Fatalf("%s: status %d, want %d (%v)", tc.body, code, tc.code, e)
		}
	}

	var got gameDTO
	if code := do(t, ts, http.MethodGet, "/api/games/"+g.ID, "", &got); code != http.StatusOK || got.ID != g.ID {
		t.Fatalf("get: %d %+v", code, got)
	}
	if code := do(t, ts, http.MethodDelete, "/api/games/"+g.ID, "", nil); code != http.StatusOK {
		t.Fatalf("delete: status %d", code)
	}
	if code := do(t, ts, http.MethodGet, "/api/games/"+g.ID, "", &e); code != http.StatusNotFound {
		t.Fatalf("get after delete: status %d", code)
	}
	if code := do(t, ts, http.MethodPost, "/api/games/nope/moves", `{"cell":1}`, &e); code != http.StatusNotFound {
		t.Fatalf("unknown game: status %d", code)
	}
}

func TestCreateGameAIFirst(t *testing.T) {
	ts := newTestServer(t)
	var g gameDTO
	if code := do(t, ts, http.MethodPost, "/api/games", `{"human_symbol":"O","human_first":false}`, &g); code != http.StatusCreated {
		t.Fatalf("create: status %d", code)
	}
	if len(g.History) != 1 || g.ToMove != "human" || g.Board[0][0] != game.Cell(game.AI) {
		t.Fatalf("ai should have opened in the first corner: %+v", g)
	}

	var e map[string]string
	if code := do(t, ts, http.MethodPost, "/api/games", `{"human_symbol":"Q"}`, &e); code != http.StatusBadRequest {
		t.Fatalf("bad symbol: status %d", code)
	}
}

func readState(t *testing.T, conn *websocket.Conn) gameDTO {
	t.Helper()
	for {
		_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
		var msg wsMessage
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("read: %v", err)
		}
		if msg.Type != "state" {
			continue
		}
		var g gameDTO
		if err := json.Unmarshal(msg.Payload, &g); err != nil {
			t.Fatalf("payload: %v", err)
		}
		return g
	}
}

func TestWebsocketPlay(t *testing.T) {
	ts := newTestServer(t)
	var g gameDTO
	do(t, ts, http.MethodPost, "/api/games", "", &g)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/games/" + g.ID
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	if first := readState(t, conn); first.ID != g.ID || len(first.History) != 0 {
		t.Fatalf("initial state: %+v", first)
	}

	if err := conn.WriteJSON(wsMessage{Type: "move", Payload: json.RawMessage(`{"cell":5}`)}); err != nil {
		t.Fatalf("write: %v", err)
	}
	after := readState(t, conn)
	if len(after.History) != 2 || after.Board[1][1] != game.Cell(game.Human) {
		t.Fatalf("state after move: %+v", after)
	}

	if err := conn.WriteJSON(wsMessage{Type: "move", Payload: json.RawMessage(`{"cell":5}`)}); err != nil {
		t.Fatalf("write: %v", err)
	}
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var msg wsMessage
	if err := conn.ReadJSON(&msg); err != nil || msg.Type != "error" {
		t.Fatalf("expected error message, got %+v %v", msg, err)
	}

	if err := conn.WriteJSON(wsMessage{Type: "request_state"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if again := readState(t, conn); len(again.History) != 2 {
		t.Fatalf("request_state: %+v", again)
	}
}

func TestWebsocketUnknownGame(t *testing.T) {
	ts := newTestServer(t)
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/games/nope"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err == nil {
		t.Fatalf("expected dial failure")
	}
	if resp == nil || resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %v", resp)
	}
}
