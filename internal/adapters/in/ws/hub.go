// Package ws pushes order notifications to connected clients over WebSocket.
// The hub keeps the set of live connections and fans messages out to them;
// delivery is best effort, a failed write drops the connection and never
// fails the business operation that triggered the push.
package ws

import (
	"context"
	"log/slog"
	"sync"

	"takeaway/internal/core/ports"
)

// conn is the subset of a WebSocket connection the hub writes to.
// *websocket.Conn satisfies it.
type conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

// session is one registered client connection. WriteJSON on a gorilla
// connection does not tolerate concurrent writers, so each session carries
// its own write lock.
type session struct {
	conn conn
	mu   sync.Mutex
}

func (s *session) send(n ports.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteJSON(n)
}

// Hub maintains all active client connections and implements the Notifier
// port by fanning notifications out to them.
type Hub struct {
	mu       sync.RWMutex
	sessions map[string]*session
	logger   *slog.Logger
}

// NewHub creates an empty connection hub.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		sessions: make(map[string]*session),
		logger:   logger.With("component", "ws_hub"),
	}
}

// Register adds a connection under the session id. A second connection with
// the same id replaces the first, which is closed.
func (h *Hub) Register(sid string, c conn) {
	h.mu.Lock()
	previous := h.sessions[sid]
	h.sessions[sid] = &session{conn: c}
	h.mu.Unlock()

	if previous != nil {
		_ = previous.conn.Close()
	}

	h.logger.Info("client connected", "sid", sid)
}

// Unregister removes and closes the connection registered under the session
// id. Unknown ids are ignored.
func (h *Hub) Unregister(sid string) {
	h.mu.Lock()
	s, ok := h.sessions[sid]
	if ok {
		delete(h.sessions, sid)
	}
	h.mu.Unlock()

	if !ok {
		return
	}

	_ = s.conn.Close()
	h.logger.Info("client disconnected", "sid", sid)
}

// Broadcast sends the notification to every connected client. Connections
// whose write fails are dropped.
func (h *Hub) Broadcast(ctx context.Context, n ports.Notification) {
	h.mu.RLock()
	targets := make(map[string]*session, len(h.sessions))
	for sid, s := range h.sessions {
		targets[sid] = s
	}
	h.mu.RUnlock()

	for sid, s := range targets {
		if err := s.send(n); err != nil {
			h.logger.WarnContext(ctx, "dropping client after failed write",
				"sid", sid, "error", err)
			h.Unregister(sid)
		}
	}
}

// SendTo sends the notification to one client. Unknown session ids and
// write failures are logged and swallowed.
func (h *Hub) SendTo(ctx context.Context, sid string, n ports.Notification) {
	h.mu.RLock()
	s, ok := h.sessions[sid]
	h.mu.RUnlock()

	if !ok {
		h.logger.DebugContext(ctx, "no client for session", "sid", sid)
		return
	}

	if err := s.send(n); err != nil {
		h.logger.WarnContext(ctx, "dropping client after failed write",
			"sid", sid, "error", err)
		h.Unregister(sid)
	}
}

// ConnectionCount returns the number of registered connections.
func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}
