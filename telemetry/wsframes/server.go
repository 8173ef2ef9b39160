// Package wsframes pushes the frame events handed to Server.Broadcast to
// connected browser clients over a websocket, as an alternative or
// companion to an append-only debug log file. The coordinator does not
// call Broadcast itself; the caller that owns the Server feeds it.
package wsframes

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Moonlight-Companies/givenergy-modbus/common"
)

// Frame is one entry in the live feed: either a successfully decoded PDU
// summary or a rejected/unparseable frame, timestamped when observed.
type Frame struct {
	At        time.Time `json:"at"`
	Direction string    `json:"direction"` // "rx" or "tx"
	Kind      string    `json:"kind"`      // concrete PDU type name, or "rejected"
	Summary   string    `json:"summary"`
	Rejected  bool      `json:"rejected"`
}

// Server fans out Frame events to every connected websocket client. A slow
// reader never blocks Broadcast: when a client's send buffer is full, the
// frame is dropped for that client, which stays connected.
type Server struct {
	logger   common.LoggerInterface
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*client]struct{}
}

type client struct {
	conn *websocket.Conn
	send chan Frame
}

// New returns a Server ready to be mounted as an http.Handler.
func New(logger common.LoggerInterface) *Server {
	return &Server{
		logger:   logger,
		upgrader: websocket.Upgrader{ReadBufferSize: 1024, WriteBufferSize: 1024},
		clients:  make(map[*client]struct{}),
	}
}

// ServeHTTP upgrades the request to a websocket and registers the
// connection as a frame subscriber until it disconnects.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn(r.Context(), "wsframes: upgrade failed: %v", err)
		return
	}

	c := &client{conn: conn, send: make(chan Frame, 32)}
	s.mu.Lock()
	s.clients[c] = struct{}{}
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.clients, c)
		s.mu.Unlock()
		conn.Close()
	}()

	// Drain the connection's read side purely to notice a client-initiated
	// close; this feed is one-directional.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				conn.Close()
				return
			}
		}
	}()

	for frame := range c.send {
		conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
		if err := conn.WriteJSON(frame); err != nil {
			return
		}
	}
}

// Broadcast pushes frame to every connected client, dropping it for any
// client whose buffer is currently full.
func (s *Server) Broadcast(frame Frame) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		select {
		case c.send <- frame:
		default:
			s.logger.Warn(context.Background(), "wsframes: dropping frame for slow client")
		}
	}
}

// MarshalSummary renders v (typically a pdu.PDU) to a compact JSON string
// for Frame.Summary, falling back to fmt's %v on marshal failure.
func MarshalSummary(v interface{}) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}
