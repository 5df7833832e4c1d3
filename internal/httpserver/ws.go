// internal/httpserver/ws.go
//
// WebSocket stream for one game session (GET /game/events?token=...).
//
// Server → client messages:
//   - {"type":"hello","elapsed":"00:00","view":{...}}            on connect
//   - {"type":"event","event":{...},"view":{...},"result":{...}} per game event
//   - {"type":"tick","elapsed":"00:07"}                          once per second while the timer runs
//
// Client → server messages (optional; the REST routes do the same):
//   - {"action":"click","index":3}
//   - {"action":"start","difficulty":"hard"}
//   - {"action":"restart"}
//   - {"action":"difficulty","difficulty":"easy"}

package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/devfolio/internal/game"
	"github.com/robalobadob/devfolio/internal/scores"
	"github.com/robalobadob/devfolio/internal/store"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = wsPongWait * 9 / 10
	wsSendBuffer = 32
	wsReadLimit  = 1 << 12
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		o := r.Header.Get("Origin")
		return o == "" || o == clientOrigin()
	},
}

// wsMsg is one server → client frame.
type wsMsg struct {
	Type    string         `json:"type"`
	Elapsed string         `json:"elapsed,omitempty"`
	Event   *game.Event    `json:"event,omitempty"`
	Result  *scores.Result `json:"result,omitempty"`
	View    *game.View     `json:"view,omitempty"`
}

// wsAction is one client → server frame.
type wsAction struct {
	Action     string `json:"action"`
	Index      *int   `json:"index,omitempty"`
	Difficulty string `json:"difficulty,omitempty"`
}

// wsClient is one connected socket.
type wsClient struct {
	conn  *websocket.Conn
	entry *store.Entry
	send  chan wsMsg
	touch func() // marks the session as in use

	mu     sync.Mutex
	closed bool
}

// push queues m without blocking; frames for a slow client are dropped.
func (c *wsClient) push(m wsMsg) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.send <- m:
	default:
		log.Debug().Str("game", c.entry.ID).Str("type", m.Type).Msg("ws send buffer full, dropping")
	}
}

func (c *wsClient) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

// handleEvents upgrades the request and streams the session's events.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	e := entryFrom(r)
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Str("game", e.ID).Msg("ws upgrade")
		return
	}
	c := &wsClient{
		conn:  conn,
		entry: e,
		send:  make(chan wsMsg, wsSendBuffer),
		touch: func() {
			if _, err := s.cfg.Sessions.Get(context.Background(), e.ID); err != nil {
				log.Debug().Err(err).Str("game", e.ID).Msg("ws session gone")
			}
		},
	}

	v := e.Game.View()
	c.push(wsMsg{Type: "hello", Elapsed: e.Scores.Stopwatch().Display(), View: &v})

	// Listeners only queue; the view is attached by the writer.
	unsubGame := e.Game.Subscribe(func(ev game.Event) {
		m := wsMsg{Type: "event", Event: &ev}
		if ev.Kind == game.EventWon {
			m.Result = e.Scores.Last()
		}
		c.push(m)
	})
	unsubTick := e.Scores.Stopwatch().OnTick(func(n int) {
		c.push(wsMsg{Type: "tick", Elapsed: scores.FormatClock(n)})
	})
	log.Debug().Str("game", e.ID).Msg("ws connected")

	go c.writePump()
	c.readPump()

	unsubGame()
	unsubTick()
	c.close()
	log.Debug().Str("game", e.ID).Msg("ws disconnected")
}

func (c *wsClient) writePump() {
	ping := time.NewTicker(wsPingPeriod)
	defer func() {
		ping.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case m, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if m.Type == "event" {
				v := c.entry.Game.View()
				m.View = &v
			}
			if err := c.conn.WriteJSON(m); err != nil {
				log.Debug().Err(err).Str("game", c.entry.ID).Msg("ws write")
				return
			}
		case <-ping.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *wsClient) readPump() {
	c.conn.SetReadLimit(wsReadLimit)
	_ = c.conn.SetReadDeadline(time.Now().Add(wsPongWait))
	// An open, answering socket keeps the session from being swept.
	c.conn.SetPongHandler(func(string) error {
		c.touch()
		return c.conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})
	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Debug().Err(err).Str("game", c.entry.ID).Msg("ws read")
			}
			return
		}
		c.touch()
		var a wsAction
		if err := json.Unmarshal(raw, &a); err != nil {
			log.Debug().Err(err).Str("game", c.entry.ID).Msg("ws bad frame")
			continue
		}
		c.apply(a)
	}
}

// apply runs a client action against the controller. Errors are logged;
// the resulting events reach the client through the subscription.
func (c *wsClient) apply(a wsAction) {
	g := c.entry.Game
	var err error
	switch a.Action {
	case "click":
		if a.Index == nil {
			return
		}
		_, err = g.Click(*a.Index)
	case "start":
		_, err = g.Start(game.Difficulty(a.Difficulty))
	case "restart":
		err = g.Restart()
	case "difficulty":
		err = g.ChangeDifficulty(game.Difficulty(a.Difficulty))
	default:
		log.Debug().Str("game", c.entry.ID).Str("action", a.Action).Msg("ws unknown action")
		return
	}
	if err != nil {
		log.Debug().Err(err).Str("game", c.entry.ID).Str("action", a.Action).Msg("ws action")
	}
}
