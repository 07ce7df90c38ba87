// Package ws bridges WebSocket connections into the delivery core.
package ws

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"chat-arena/internal"
	"chat-arena/realtime"
)

// Server upgrades HTTP requests and runs one read pump and one write pump
// per connection. Frames are handed to the router; the router owns all
// session state.
type Server struct {
	cfg      internal.Config
	log      *slog.Logger
	router   *realtime.Router
	upgrader websocket.Upgrader
}

func NewServer(cfg internal.Config, log *slog.Logger, router *realtime.Router) *Server {
	return &Server{
		cfg:    cfg,
		log:    log,
		router: router,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				// The API is origin-agnostic; auth happens in-band.
				return true
			},
		},
	}
}

// HandleWebSocket handles the upgrade and the connection lifecycle.
func (s *Server) HandleWebSocket(c echo.Context) error {
	socket, err := s.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", "err", err)
		return err
	}

	conn := newConnection(socket, s.cfg.ConnectionBufferSize)
	s.log.Debug("websocket connected", "conn_id", conn.ID(), "remote", socket.RemoteAddr())

	go s.writePump(conn)
	go s.readPump(conn)

	return nil
}

func (s *Server) readPump(conn *Connection) {
	ctx := context.Background()
	defer func() {
		s.router.HandleClose(ctx, conn)
		_ = conn.Close()
	}()

	conn.ws.SetReadLimit(s.cfg.MaxMessageSize)
	_ = conn.ws.SetReadDeadline(time.Now().Add(s.cfg.ReadTimeout))
	conn.ws.SetPongHandler(func(string) error {
		return conn.ws.SetReadDeadline(time.Now().Add(s.cfg.ReadTimeout))
	})

	for {
		_, data, err := conn.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Warn("websocket read error", "conn_id", conn.ID(), "err", err)
			}
			return
		}
		s.router.HandleFrame(ctx, conn, data)
	}
}

func (s *Server) writePump(conn *Connection) {
	ticker := time.NewTicker(s.cfg.PingInterval)
	defer func() {
		ticker.Stop()
		_ = conn.Close()
	}()

	for {
		select {
		case data := <-conn.out:
			if err := conn.writeMessage(websocket.TextMessage, data, s.cfg.WriteTimeout); err != nil {
				s.log.Warn("websocket write error", "conn_id", conn.ID(), "err", err)
				return
			}
		case <-ticker.C:
			if err := conn.writeMessage(websocket.PingMessage, nil, s.cfg.WriteTimeout); err != nil {
				return
			}
		}
	}
}
