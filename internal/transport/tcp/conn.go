package tcp

import (
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Conn is a participant connected over raw TCP.
type Conn struct {
	id           string
	netConn      net.Conn
	writeTimeout time.Duration

	writeMu   sync.Mutex
	closeOnce sync.Once
	closeErr  error
}

func newConn(netConn net.Conn, writeTimeout time.Duration) *Conn {
	return &Conn{
		id:           uuid.NewString(),
		netConn:      netConn,
		writeTimeout: writeTimeout,
	}
}

func (that *Conn) ID() string {
	return that.id
}

func (that *Conn) RemoteAddr() string {
	return that.netConn.RemoteAddr().String()
}

// Send writes message as is. A failed write closes the connection so the
// reader reports it as gone.
func (that *Conn) Send(message string) error {
	that.writeMu.Lock()
	defer that.writeMu.Unlock()

	if that.writeTimeout > 0 {
		if err := that.netConn.SetWriteDeadline(time.Now().Add(that.writeTimeout)); err != nil {
			return fmt.Errorf("set write deadline: %w", err)
		}
	}

	if _, err := that.netConn.Write([]byte(message)); err != nil {
		_ = that.Close()
		return fmt.Errorf("write: %w", err)
	}

	return nil
}

// Close is safe to call more than once.
func (that *Conn) Close() error {
	that.closeOnce.Do(func() {
		that.closeErr = that.netConn.Close()
	})

	return that.closeErr
}
