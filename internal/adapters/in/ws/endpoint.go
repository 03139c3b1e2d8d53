package ws

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(_ *http.Request) bool {
		return true
	},
}

// Endpoint upgrades HTTP requests to WebSocket connections and registers
// them with the hub.
type Endpoint struct {
	hub    *Hub
	logger *slog.Logger
}

// NewEndpoint creates the WebSocket endpoint for the hub.
func NewEndpoint(hub *Hub, logger *slog.Logger) *Endpoint {
	return &Endpoint{
		hub:    hub,
		logger: logger.With("component", "ws_endpoint"),
	}
}

// Handle serves GET /ws/:sid. The sid path parameter identifies the client
// session; when absent a fresh id is generated. The connection stays
// registered until the client disconnects.
func (e *Endpoint) Handle(c echo.Context) error {
	sid := c.Param("sid")
	if sid == "" {
		sid = uuid.NewString()
	}

	wsConn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		e.logger.ErrorContext(c.Request().Context(), "WebSocket upgrade failed",
			"sid", sid, "error", err)
		return err
	}

	e.hub.Register(sid, wsConn)

	// The read loop exists to detect disconnects; inbound payloads carry no
	// commands and are only logged.
	go func() {
		defer e.hub.Unregister(sid)
		for {
			_, payload, readErr := wsConn.ReadMessage()
			if readErr != nil {
				return
			}
			e.logger.Debug("Received client message", "sid", sid, "payload", string(payload))
		}
	}()

	return nil
}
