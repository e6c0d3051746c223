package tictactoe

import (
	"context"
	"time"

	"github.com/rocketscienceinc/tictactoe-tcp/internal/session"
)

type eventKind int

const (
	eventConnected eventKind = iota
	eventReceived
	eventDisconnected
)

type event struct {
	kind eventKind
	conn session.Conn
	line string
}

// Connected hands a freshly accepted connection to the game.
func (that *Coordinator) Connected(conn session.Conn) {
	that.submit(event{kind: eventConnected, conn: conn})
}

// Received hands one line of input, without its terminator, to the game.
func (that *Coordinator) Received(conn session.Conn, line string) {
	that.submit(event{kind: eventReceived, conn: conn, line: line})
}

// Disconnected reports that conn is gone. Reporting it more than once is harmless.
func (that *Coordinator) Disconnected(conn session.Conn) {
	that.submit(event{kind: eventDisconnected, conn: conn})
}

func (that *Coordinator) submit(ev event) {
	select {
	case <-that.done:
		if ev.kind == eventConnected {
			_ = ev.conn.Close()
		}
		return
	default:
	}

	select {
	case that.events <- ev:
	case <-that.done:
		if ev.kind == eventConnected {
			_ = ev.conn.Close()
		}
	}
}

// Run processes events one at a time until ctx is canceled, then notifies and
// drops every participant. It must be called once.
func (that *Coordinator) Run(ctx context.Context) error {
	log := that.logger.With("method", "Run")

	ticker := time.NewTicker(that.pollInterval)
	defer ticker.Stop()
	defer close(that.done)

	log.Info("waiting for players", "timeout", that.timeout.String())

	for {
		select {
		case <-ctx.Done():
			that.shutdown()
			return nil
		case ev := <-that.events:
			that.dispatch(ev)
		case <-ticker.C:
			that.checkTimeout()
		}
	}
}

func (that *Coordinator) dispatch(ev event) {
	switch ev.kind {
	case eventConnected:
		that.join(ev.conn)
	case eventReceived:
		that.handleLine(ev.conn, ev.line)
	case eventDisconnected:
		that.leave(ev.conn)
	}
}
