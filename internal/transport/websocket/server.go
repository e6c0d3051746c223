package websocket

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/coder/websocket"

	"github.com/rocketscienceinc/tictactoe-tcp/internal/session"
)

const (
	readLimit         = 4096
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 5 * time.Second
)

type game interface {
	Connected(conn session.Conn)
	Received(conn session.Conn, line string)
	Disconnected(conn session.Conn)
}

// Server lets browsers join the same game as terminal players.
type Server struct {
	logger       *slog.Logger
	game         game
	writeTimeout time.Duration
}

func New(logger *slog.Logger, game game, writeTimeout time.Duration) *Server {
	return &Server{
		logger:       logger.With("component", "websocket"),
		game:         game,
		writeTimeout: writeTimeout,
	}
}

func (that *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", that.handleSocket)
	mux.HandleFunc("/ping", pingHandler)

	return mux
}

// Start - serves /ws on port until ctx is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	log := that.logger.With("method", "Start")

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           that.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("could not shut down websocket server", "error", err)
		}
	}()

	log.Info("accepting websocket connections", "port", port)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func (that *Server) handleSocket(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "handleSocket", "remote_addr", req.RemoteAddr)

	socket, err := websocket.Accept(writer, req, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		log.Warn("failed to accept websocket", "error", err)
		return
	}

	socket.SetReadLimit(readLimit)

	conn := newConn(socket, that.writeTimeout)
	log = log.With("conn_id", conn.ID())
	log.Info("websocket connection established")

	that.game.Connected(conn)

	defer func() {
		that.game.Disconnected(conn)
		_ = conn.Close()

		log.Info("websocket connection closed")
	}()

	ctx := req.Context()

	for {
		msgType, data, err := socket.Read(ctx)
		if err != nil {
			log.Debug("read ended", "error", err)
			return
		}

		if msgType != websocket.MessageText {
			log.Debug("ignoring binary frame")
			continue
		}

		for _, line := range splitLines(string(data)) {
			that.game.Received(conn, line)
		}
	}
}

// splitLines breaks a text frame into command lines. A single trailing
// newline does not produce an extra empty line.
func splitLines(text string) []string {
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}

	return lines
}
