package api

import (
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

const (
	maxStreamConns = 8
	writeWait      = 10 * time.Second
	pingInterval   = 15 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browser clients connect cross-origin from the dashboard; CORS policy
	// is enforced at the HTTP layer.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// handleStream upgrades to a websocket and forwards every bus notification
// to the client as a JSON message.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	current := atomic.AddInt32(&s.wsConns, 1)
	if current > maxStreamConns {
		atomic.AddInt32(&s.wsConns, -1)
		http.Error(w, "too many stream connections", http.StatusServiceUnavailable)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		atomic.AddInt32(&s.wsConns, -1)
		slog.Warn("websocket upgrade failed", "error", err)
		return
	}

	subID, ch := s.World.Bus.SubscribeChan(64)
	slog.Info("stream client connected", "sub_id", subID, "remote", r.RemoteAddr)

	done := make(chan struct{})

	// Read pump: discard incoming frames, detect close.
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	go func() {
		defer func() {
			s.World.Bus.UnsubscribeChan(subID)
			atomic.AddInt32(&s.wsConns, -1)
			conn.Close()
			slog.Info("stream client disconnected", "sub_id", subID)
		}()

		ping := time.NewTicker(pingInterval)
		defer ping.Stop()

		for {
			select {
			case n, ok := <-ch:
				if !ok {
					return
				}
				conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteJSON(n); err != nil {
					return
				}
			case <-ping.C:
				conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			case <-done:
				return
			}
		}
	}()
}
