package client

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"log/slog"
	"net"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type safeBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (that *safeBuffer) Write(p []byte) (int, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.buf.Write(p)
}

func (that *safeBuffer) String() string {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.buf.String()
}

func newTestClient(in io.Reader) (*Client, *safeBuffer) {
	pterm.DisableStyling()

	out := &safeBuffer{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return New(logger, in, out), out
}

// fakeServer accepts one connection and hands it to serve.
func fakeServer(t *testing.T, serve func(conn net.Conn)) string {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = listener.Close() })

	go func() {
		conn, err := listener.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		serve(conn)
	}()

	return listener.Addr().String()
}

func TestAddress(t *testing.T) {
	tests := []struct {
		host string
		want string
	}{
		{host: "127.0.0.1", want: "127.0.0.1:8080"},
		{host: "localhost:9000", want: "localhost:9000"},
		{host: "::1", want: "[::1]:8080"},
		{host: "[::1]", want: "[::1]:8080"},
		{host: "[::1]:9000", want: "[::1]:9000"},
	}

	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			assert.Equal(t, tt.want, Address(tt.host))
		})
	}
}

func TestClient_Run(t *testing.T) {
	t.Run("quit", func(t *testing.T) {
		received := make(chan []string, 1)
		addr := fakeServer(t, func(conn net.Conn) {
			var lines []string

			scanner := bufio.NewScanner(conn)
			for scanner.Scan() {
				lines = append(lines, scanner.Text())
			}

			received <- lines
		})

		client, out := newTestClient(strings.NewReader("help\nquit\nmove 1 1\n"))

		// When: the user types help and then quit
		err := client.Run(context.Background(), addr)

		// Then: both lines reach the server and nothing after quit
		require.NoError(t, err)

		select {
		case lines := <-received:
			assert.Equal(t, []string{"help", "quit"}, lines)
		case <-time.After(2 * time.Second):
			t.Fatal("server did not see the client hang up")
		}

		output := out.String()
		assert.Contains(t, output, "Connecting to "+addr+"...")
		assert.Contains(t, output, "Connected to server!")
		assert.Contains(t, output, "--- Tic-Tac-Toe Client Help ---")
		assert.Contains(t, output, "Exiting...")
		assert.Contains(t, output, "Disconnected from server.")
	})

	t.Run("server closes the connection", func(t *testing.T) {
		addr := fakeServer(t, func(conn net.Conn) {
			_, _ = io.WriteString(conn, "Game is full. Try again later.\n")
		})

		in, inWriter := io.Pipe()
		t.Cleanup(func() { _ = inWriter.Close() })

		client, out := newTestClient(in)

		// When: the server hangs up right after its message
		err := client.Run(context.Background(), addr)

		// Then: the message is printed verbatim and the client exits cleanly
		require.NoError(t, err)

		output := out.String()
		assert.Contains(t, output, "Game is full. Try again later.\n")
		assert.Contains(t, output, "Server closed the connection.")
	})

	t.Run("interrupted", func(t *testing.T) {
		hold := make(chan struct{})
		t.Cleanup(func() { close(hold) })

		addr := fakeServer(t, func(net.Conn) {
			<-hold
		})

		in, inWriter := io.Pipe()
		t.Cleanup(func() { _ = inWriter.Close() })

		client, out := newTestClient(in)

		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		defer cancel()

		// When: the context is canceled while playing
		err := client.Run(ctx, addr)

		// Then: the client leaves without an error
		require.NoError(t, err)
		assert.Contains(t, out.String(), "Disconnected from server.")
	})

	t.Run("connection refused", func(t *testing.T) {
		listener, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)

		addr := listener.Addr().String()
		require.NoError(t, listener.Close())

		client, out := newTestClient(strings.NewReader(""))

		// When: nobody listens on the address
		err = client.Run(context.Background(), addr)

		// Then: the failure is reported
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to connect to server")
		assert.NotContains(t, out.String(), "Connected to server!")
	})
}
