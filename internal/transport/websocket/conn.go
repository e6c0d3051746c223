package websocket

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
)

const defaultWriteTimeout = 5 * time.Second

// Conn is a participant connected from a browser. Every message goes out as
// one text frame.
type Conn struct {
	id           string
	socket       *websocket.Conn
	writeTimeout time.Duration
	closeOnce    sync.Once
}

func newConn(socket *websocket.Conn, writeTimeout time.Duration) *Conn {
	if writeTimeout <= 0 {
		writeTimeout = defaultWriteTimeout
	}

	return &Conn{
		id:           uuid.NewString(),
		socket:       socket,
		writeTimeout: writeTimeout,
	}
}

func (that *Conn) ID() string {
	return that.id
}

func (that *Conn) Send(message string) error {
	ctx, cancel := context.WithTimeout(context.Background(), that.writeTimeout)
	defer cancel()

	if err := that.socket.Write(ctx, websocket.MessageText, []byte(message)); err != nil {
		_ = that.Close()
		return fmt.Errorf("write frame: %w", err)
	}

	return nil
}

// Close starts the closing handshake without waiting for the peer.
func (that *Conn) Close() error {
	that.closeOnce.Do(func() {
		go func() {
			_ = that.socket.Close(websocket.StatusNormalClosure, "")
		}()
	})

	return nil
}
