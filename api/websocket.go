package api

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/seenimoa/valuekit/internal/calc"
	"github.com/seenimoa/valuekit/pkg/models"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true // CORS applies to the HTTP routes only
	},
}

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 64 << 10
)

// Message types exchanged on the simulation stream.
const (
	msgSimulate = "simulate" // client → server: start a run
	msgCancel   = "cancel"   // client → server: stop the current run
	msgPing     = "ping"
	msgPong     = "pong"
	msgStarted  = "started" // server → client, once per run
	msgPath     = "path"    // one per finished path, completion order
	msgSummary  = "summary" // final result without the paths
	msgError    = "error"
)

// WSRequest is a client message. Data holds the model inputs.
type WSRequest struct {
	Type  string          `json:"type"`
	Model string          `json:"model,omitempty"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// WSMessage is a message sent over WebSocket connections.
type WSMessage struct {
	Type  string `json:"type"`
	Data  any    `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
	Kind  string `json:"kind,omitempty"`
}

// wsSession is one connection. At most one simulation runs at a time.
type wsSession struct {
	srv  *Server
	send chan WSMessage
	ctx  context.Context

	mu        sync.Mutex
	runCancel context.CancelFunc
}

// handleWebSocket upgrades the connection and streams simulation paths
// as they finish.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}

	// The request context ends when the handler returns, so the session
	// gets its own.
	ctx, cancel := context.WithCancel(context.Background())
	sess := &wsSession{
		srv:  s,
		send: make(chan WSMessage, 256),
		ctx:  ctx,
	}

	go sess.writePump(conn)
	go func() {
		defer cancel()
		sess.readPump(conn)
	}()
}

// readPump handles client messages until the connection closes.
func (ws *wsSession) readPump(conn *websocket.Conn) {
	defer func() {
		ws.stopRun()
		conn.Close()
	}()

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("WebSocket read error: %v", err)
			}
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))

		var req WSRequest
		if err := json.Unmarshal(message, &req); err != nil {
			ws.emit(WSMessage{Type: msgError, Error: "malformed message: " + err.Error(), Kind: "invalid_input"})
			continue
		}

		switch req.Type {
		case msgSimulate:
			ws.startRun(req)
		case msgCancel:
			ws.stopRun()
		case msgPing:
			ws.emit(WSMessage{Type: msgPong})
		default:
			ws.emit(WSMessage{Type: msgError, Error: "unknown message type " + req.Type, Kind: "invalid_input"})
		}
	}
}

func (ws *wsSession) startRun(req WSRequest) {
	sm, ok := calc.LookupSimulation(req.Model)
	if !ok {
		ws.emit(WSMessage{Type: msgError, Error: "unknown model " + req.Model, Kind: "invalid_input"})
		return
	}

	// A busy session must not spend a limiter token.
	ws.mu.Lock()
	if ws.runCancel != nil {
		ws.mu.Unlock()
		ws.emit(WSMessage{Type: msgError, Error: "a simulation is already running", Kind: "busy"})
		return
	}
	if !ws.srv.limiter.Allow() {
		ws.mu.Unlock()
		ws.emit(WSMessage{Type: msgError, Error: "simulation rate limit exceeded", Kind: "rate_limited"})
		return
	}
	ctx, cancel := context.WithCancel(ws.ctx)
	ws.runCancel = cancel
	ws.mu.Unlock()

	go func() {
		defer ws.finishRun(cancel)

		ws.emit(WSMessage{Type: msgStarted, Data: map[string]string{"model": sm.Name}})
		res, err := sm.Run(ctx, ws.srv.sim, ws.srv.defaults, jsonDecoder(req.Data), func(p models.RatePath) error {
			if ws.srv.debug {
				log.Printf("simulation %s path %d done", sm.Name, p.Index)
			}
			if !ws.emit(WSMessage{Type: msgPath, Data: p}) {
				return ctx.Err()
			}
			return nil
		})
		if err != nil {
			if !errors.Is(err, context.Canceled) || ws.ctx.Err() == nil {
				ws.emit(WSMessage{Type: msgError, Error: err.Error(), Kind: models.KindName(err)})
			}
			return
		}
		res.Paths = nil
		ws.emit(WSMessage{Type: msgSummary, Data: res})
	}()
}

func (ws *wsSession) stopRun() {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	if ws.runCancel != nil {
		ws.runCancel()
	}
}

func (ws *wsSession) finishRun(cancel context.CancelFunc) {
	cancel()
	ws.mu.Lock()
	ws.runCancel = nil
	ws.mu.Unlock()
}

// emit queues msg for the writer. It reports false once the session is
// gone.
func (ws *wsSession) emit(msg WSMessage) bool {
	select {
	case ws.send <- msg:
		return true
	case <-ws.ctx.Done():
		return false
	}
}

// writePump is the only writer on conn.
func (ws *wsSession) writePump(conn *websocket.Conn) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case <-ws.ctx.Done():
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
			return

		case msg := <-ws.send:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(msg); err != nil {
				log.Printf("WebSocket write error: %v", err)
				return
			}

		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
