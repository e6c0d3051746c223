package tcp

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/rocketscienceinc/tictactoe-tcp/internal/session"
)

const (
	maxLineLength = 1024
	acceptBackoff = 50 * time.Millisecond
)

type game interface {
	Connected(conn session.Conn)
	Received(conn session.Conn, line string)
	Disconnected(conn session.Conn)
}

type Server struct {
	logger       *slog.Logger
	game         game
	listener     net.Listener
	writeTimeout time.Duration
}

// Listen binds addr. Serve must be called to start accepting players.
func Listen(logger *slog.Logger, game game, addr string, writeTimeout time.Duration) (*Server, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	return &Server{
		logger:       logger.With("component", "tcp"),
		game:         game,
		listener:     listener,
		writeTimeout: writeTimeout,
	}, nil
}

func (that *Server) Addr() net.Addr {
	return that.listener.Addr()
}

// Serve accepts connections until ctx is canceled. Every connection gets its
// own reader goroutine that forwards lines to the game.
func (that *Server) Serve(ctx context.Context) error {
	log := that.logger.With("method", "Serve")

	go func() {
		<-ctx.Done()
		if err := that.listener.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			log.Error("could not close listener", "error", err)
		}
	}()

	log.Info("accepting connections", "addr", that.listener.Addr().String())

	for {
		netConn, err := that.listener.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}

			log.Warn("accept failed", "error", err)
			time.Sleep(acceptBackoff)

			continue
		}

		go that.handle(newConn(netConn, that.writeTimeout))
	}
}

func (that *Server) handle(conn *Conn) {
	log := that.logger.With("method", "handle", "conn_id", conn.ID(), "remote_addr", conn.RemoteAddr())
	log.Info("connection accepted")

	that.game.Connected(conn)

	scanner := bufio.NewScanner(conn.netConn)
	scanner.Buffer(make([]byte, 0, maxLineLength), maxLineLength)

	for scanner.Scan() {
		that.game.Received(conn, scanner.Text())
	}

	if err := scanner.Err(); err != nil && !errors.Is(err, net.ErrClosed) {
		log.Info("read failed", "error", err)
	}

	that.game.Disconnected(conn)
	_ = conn.Close()

	log.Info("connection closed")
}
