// Package mudtest provides a mock game server for package tests: it speaks
// the new-user login dialogue and answers every command with one line of
// output followed by a prompt.
package mudtest

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

// GameServer is a scripted in-process game endpoint.
type GameServer struct {
	httpServer *httptest.Server

	// Open counts currently-open websocket connections, for asserting that
	// clients release their connections.
	Open atomic.Int64

	replyDelay atomic.Int64 // nanoseconds before each server write
}

// SetReplyDelay makes the server pause before every line it sends,
// simulating a loaded game server that answers well after the client has
// started waiting.
func (s *GameServer) SetReplyDelay(d time.Duration) {
	s.replyDelay.Store(int64(d))
}

func (s *GameServer) pause() {
	if d := s.replyDelay.Load(); d > 0 {
		time.Sleep(time.Duration(d))
	}
}

// NewGameServer starts a game server that is shut down with the test.
func NewGameServer(t *testing.T) *GameServer {
	t.Helper()

	s := &GameServer{}
	upgrader := websocket.Upgrader{}
	s.httpServer = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		s.Open.Add(1)
		defer s.Open.Add(-1)
		defer ws.Close()
		s.serve(ws)
	}))
	t.Cleanup(s.httpServer.Close)
	return s
}

// URL returns the ws:// address of the server.
func (s *GameServer) URL() string {
	return "ws" + strings.TrimPrefix(s.httpServer.URL, "http")
}

func (s *GameServer) serve(ws *websocket.Conn) {
	script := []string{
		"Enter your name:\n> ",
		"Create a new user? (yes/no)\n> ",
		"Create a password:\n> ",
	}
	for _, out := range script {
		s.pause()
		if err := ws.WriteMessage(websocket.TextMessage, []byte(out)); err != nil {
			return
		}
		if _, _, err := ws.ReadMessage(); err != nil {
			return
		}
	}
	s.pause()
	if err := ws.WriteMessage(websocket.TextMessage, []byte("Welcome!\n> ")); err != nil {
		return
	}

	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			return
		}
		cmd := strings.TrimSuffix(string(data), "\n")
		s.pause()
		if err := ws.WriteMessage(websocket.TextMessage, []byte("You "+cmd+".\r\n> ")); err != nil {
			return
		}
	}
}
