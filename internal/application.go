package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-tcp/internal/config"
	"github.com/rocketscienceinc/tictactoe-tcp/internal/repository"
	"github.com/rocketscienceinc/tictactoe-tcp/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-tcp/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-tcp/internal/transport/tcp"
	"github.com/rocketscienceinc/tictactoe-tcp/internal/transport/websocket"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the game server until SIGINT or SIGTERM.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	gameRepo, closeRepo, err := newGameRepository(ctx, log, conf)
	if err != nil {
		return err
	}
	defer closeRepo()

	coordinator := tictactoe.NewCoordinator(logger, gameRepo, conf.Game)

	tcpServer, err := tcp.Listen(logger, coordinator, ":"+conf.Port, conf.Game.WriteTimeout)
	if err != nil {
		return fmt.Errorf("could not start game server: %w", err)
	}

	coordinatorDone := make(chan struct{})
	go func() {
		defer close(coordinatorDone)
		if runErr := coordinator.Run(ctx); runErr != nil {
			log.Error("coordinator stopped", "error", runErr)
		}
	}()

	// run TCP server
	tcpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting TCP server", "port", conf.Port)
		if tcpErr := tcpServer.Serve(ctx); tcpErr != nil {
			log.Error("TCP server error", "error", tcpErr)
			tcpErrCh <- tcpErr
		}
	}()

	// run Websocket server
	wsErrCh := make(chan error, 1)
	if conf.WebSocketPort != "" {
		go func() {
			log.Info("Starting WebSocket server", "port", conf.WebSocketPort)
			wsServer := websocket.New(logger, coordinator, conf.Game.WriteTimeout)
			if wsErr := wsServer.Start(ctx, conf.WebSocketPort); wsErr != nil {
				log.Error("WebSocket server error", "error", wsErr)
				wsErrCh <- wsErr
			}
		}()
	}

	select {
	case err = <-tcpErrCh:
		err = fmt.Errorf("TCP server error: %w", err)
	case err = <-wsErrCh:
		err = fmt.Errorf("WebSocket server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
	}

	cancel()
	<-coordinatorDone

	return err
}

// newGameRepository picks the redis mirror when enabled, a no-op one otherwise.
func newGameRepository(ctx context.Context, log *slog.Logger, conf *config.Config) (repository.GameRepository, func(), error) {
	if !conf.Redis.Enabled {
		log.Info("redis mirror disabled")
		return repository.NewNopGameRepository(), func() {}, nil
	}

	redisAddrString := conf.Redis.GetRedisAddr()
	if conf.Redis.Host == "" || conf.Redis.Port == "" {
		return nil, nil, ErrAddrNotFound
	}

	redisStorage, err := storage.New(ctx, redisAddrString)
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	log.Info("mirroring games to redis", "addr", redisAddrString, "channel", conf.Redis.Channel)

	closeRepo := func() {
		if err := redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}

	return repository.NewGameRepository(redisStorage, conf.Redis.Channel), closeRepo, nil
}
