package client

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/pterm/pterm"

	"github.com/rocketscienceinc/tictactoe-tcp/internal/config"
	"github.com/rocketscienceinc/tictactoe-tcp/internal/tictactoe"
)

const (
	dialTimeout = 10 * time.Second
	readBuffer  = 1024
)

const helpText = "\n--- Tic-Tac-Toe Client Help ---\n" +
	"Commands:\n" +
	"  move <row> <col>  - Make a move (rows and cols are 0-2)\n" +
	"  help              - Show this help message\n" +
	"  quit              - Exit the game\n" +
	"\nExample: move 0 1 (places your mark in the top-middle position)\n\n"

// Client relays a terminal to a game server: typed lines go out, server
// messages are printed as they arrive.
type Client struct {
	logger *slog.Logger
	in     io.Reader
	out    io.Writer
}

func New(logger *slog.Logger, in io.Reader, out io.Writer) *Client {
	return &Client{
		logger: logger,
		in:     in,
		out:    &lockedWriter{out: out},
	}
}

// lockedWriter keeps server output and local notices from interleaving.
type lockedWriter struct {
	mu  sync.Mutex
	out io.Writer
}

func (that *lockedWriter) Write(p []byte) (int, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.out.Write(p)
}

// Address adds the default game port to host when it has none.
func Address(host string) string {
	if _, _, err := net.SplitHostPort(host); err == nil {
		return host
	}

	return net.JoinHostPort(strings.Trim(host, "[]"), config.DefaultPort)
}

// Run plays until the user quits, the server hangs up, input ends or ctx is
// canceled. Only a failed connection attempt is an error.
func (that *Client) Run(ctx context.Context, host string) error {
	addr := Address(host)
	info := pterm.Info.WithWriter(that.out)

	info.Printfln("Connecting to %s...", addr)

	dialer := &net.Dialer{Timeout: dialTimeout}

	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return errors.Wrapf(err, "failed to connect to server %s", addr)
	}
	defer conn.Close()

	pterm.Success.WithWriter(that.out).Println("Connected to server!")
	that.print(helpText)

	serverGone := make(chan struct{})
	go func() {
		defer close(serverGone)
		that.relayServer(conn)
	}()

	inputDone := make(chan struct{})
	go func() {
		defer close(inputDone)
		that.relayInput(conn)
	}()

	select {
	case <-serverGone:
		info.Println("Server closed the connection.")
	case <-inputDone:
	case <-ctx.Done():
		that.logger.Debug("interrupted", "reason", ctx.Err())
	}

	info.Println("Disconnected from server.")

	return nil
}

func (that *Client) relayServer(conn net.Conn) {
	buf := make([]byte, readBuffer)

	for {
		n, err := conn.Read(buf)
		if n > 0 {
			that.print(string(buf[:n]))
		}

		if err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, net.ErrClosed) {
				that.logger.Debug("read from server failed", "error", err)
			}
			return
		}
	}
}

// relayInput returns after sending quit or when input ends.
func (that *Client) relayInput(conn net.Conn) {
	scanner := bufio.NewScanner(that.in)

	for scanner.Scan() {
		line := scanner.Text()

		if _, err := io.WriteString(conn, line+"\n"); err != nil {
			that.logger.Debug("write to server failed", "error", err)
			return
		}

		if tictactoe.ParseCommand(line).Kind == tictactoe.CommandQuit {
			pterm.Info.WithWriter(that.out).Println("Exiting...")
			return
		}
	}
}

func (that *Client) print(text string) {
	if _, err := io.WriteString(that.out, text); err != nil {
		that.logger.Debug("write to terminal failed", "error", err)
	}
}
