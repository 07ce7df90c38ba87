package ws

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// ErrBufferFull is returned when a connection's outgoing buffer is saturated.
var ErrBufferFull = fmt.Errorf("send buffer full")

// Connection wraps one WebSocket and implements realtime.Conn. Writes go
// through a buffered channel drained by the write pump, so enqueueing never
// blocks the delivery core.
type Connection struct {
	id        string
	ws        *websocket.Conn
	out       chan []byte
	closeOnce sync.Once
}

func newConnection(ws *websocket.Conn, bufferSize int) *Connection {
	return &Connection{
		id:  uuid.NewString(),
		ws:  ws,
		out: make(chan []byte, bufferSize),
	}
}

// ID identifies the connection in logs.
func (c *Connection) ID() string {
	return c.id
}

// Send enqueues data for the write pump. A full buffer drops the frame with
// an error rather than stalling the caller.
func (c *Connection) Send(data []byte) error {
	select {
	case c.out <- data:
		return nil
	default:
		return ErrBufferFull
	}
}

// Close shuts the underlying socket down. The read pump unblocks with an
// error and runs the close path exactly once.
func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		err = c.ws.Close()
	})
	return err
}

func (c *Connection) writeMessage(messageType int, data []byte, deadline time.Duration) error {
	_ = c.ws.SetWriteDeadline(time.Now().Add(deadline))
	return c.ws.WriteMessage(messageType, data)
}
