package tictactoe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-tcp/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-tcp/internal/config"
	"github.com/rocketscienceinc/tictactoe-tcp/internal/entity"
	"github.com/rocketscienceinc/tictactoe-tcp/internal/session"
)

const (
	eventBuffer         = 64
	defaultPollInterval = time.Second
)

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	DeleteByID(ctx context.Context, id string) error
	Publish(ctx context.Context, event *entity.Event) error
}

// Coordinator owns the board, the turn and the participants of the single
// game hosted by the server. All of its state is touched only from the Run
// goroutine; transports talk to it through Connected, Received and Disconnected.
type Coordinator struct {
	logger   *slog.Logger
	gameRepo gameRepo

	board        entity.Board
	turn         entity.Turn
	registry     *session.Registry
	active       bool
	gameID       string
	lastActivity time.Time

	timeout      time.Duration
	pollInterval time.Duration
	storeTimeout time.Duration
	now          func() time.Time

	events chan event
	done   chan struct{}
}

func NewCoordinator(logger *slog.Logger, gameRepo gameRepo, conf config.Game) *Coordinator {
	if conf.PollInterval <= 0 {
		conf.PollInterval = defaultPollInterval
	}

	return &Coordinator{
		logger:       logger.With("component", "coordinator"),
		gameRepo:     gameRepo,
		registry:     session.NewRegistry(),
		timeout:      conf.InactivityTimeout,
		pollInterval: conf.PollInterval,
		storeTimeout: conf.WriteTimeout,
		now:          time.Now,
		events:       make(chan event, eventBuffer),
		done:         make(chan struct{}),
	}
}

// join registers conn or turns it away when both slots are taken.
func (that *Coordinator) join(conn session.Conn) {
	log := that.logger.With("method", "join", "conn_id", conn.ID())

	slot, err := that.registry.Join(conn)
	if err != nil {
		log.Info("rejecting connection", "error", err)
		that.sendTo(conn, msgGameFull)
		that.closeConn(conn)
		return
	}

	that.lastActivity = that.now()
	log.Info("player joined", "player", slot.Number(), "mark", slot.Mark().String())

	that.sendTo(conn, welcomeMessage(slot))

	if !that.registry.IsFull() {
		that.sendTo(conn, msgWaiting)
		return
	}

	if !that.active {
		that.newRound()
		that.broadcast(msgGameStarting)
		that.broadcastState()
	}
}

// handleLine dispatches one line of input from a registered participant.
func (that *Coordinator) handleLine(conn session.Conn, line string) {
	log := that.logger.With("method", "handleLine", "conn_id", conn.ID())

	slot, ok := that.registry.SlotOf(conn)
	if !ok {
		log.Debug("ignoring line from unregistered connection")
		return
	}

	that.lastActivity = that.now()

	command := ParseCommand(line)
	log.Debug("command received", "player", slot.Number(), "kind", command.Kind)

	switch command.Kind {
	case CommandMove:
		that.move(conn, slot, command.Row, command.Col)
	case CommandQuit:
		that.broadcast(quitMessage(slot))
		that.leave(conn)
	case CommandHelp:
		that.sendTo(conn, msgHelp)
	default:
		that.sendTo(conn, msgUnknownCommand)
	}
}

func (that *Coordinator) move(conn session.Conn, slot entity.Slot, row, col int) {
	log := that.logger.With("method", "move", "player", slot.Number())

	err := that.makeMove(slot, row, col)
	switch {
	case errors.Is(err, apperror.ErrGameIsNotStarted):
		that.sendTo(conn, msgNotStarted)
		return
	case errors.Is(err, apperror.ErrNotYourTurn):
		that.sendTo(conn, msgNotYourTurn)
		return
	case err != nil:
		log.Debug("move rejected", "error", err)
		that.sendTo(conn, msgInvalidMove)
		return
	}

	that.broadcast(moveMessage(slot, row, col))
	that.broadcast(that.board.Render())

	if _, won := that.board.Winner(); won {
		log.Info("round won", "game_id", that.gameID)
		that.broadcast(winMessage(slot))
		that.finishRound(entity.EventGameWin, slot.Mark().String())
		return
	}

	if that.board.IsFull() {
		log.Info("round drawn", "game_id", that.gameID)
		that.broadcast(msgDraw)
		that.finishRound(entity.EventGameDraw, entity.PlayerTie)
		return
	}

	that.turn.Advance()
	that.broadcast(turnMessage(that.turn.Current()))

	player := that.player(slot)
	that.saveGame(that.snapshot())
	that.publish(&entity.Event{Type: entity.EventGameMove, Player: player, Row: &row, Col: &col})
}

// makeMove validates and applies a move for slot.
func (that *Coordinator) makeMove(slot entity.Slot, row, col int) error {
	if !that.active {
		return apperror.ErrGameIsNotStarted
	}

	if !that.turn.IsTurnOf(slot) {
		return apperror.ErrNotYourTurn
	}

	if err := that.board.Place(row, col, slot.Mark()); err != nil {
		return fmt.Errorf("invalid move: %w", err)
	}

	return nil
}

// finishRound reports the result of the round that just ended and immediately
// starts a rematch with the same participants.
func (that *Coordinator) finishRound(eventType, winner string) {
	game := that.snapshot()
	game.Status = entity.StatusFinished
	game.Winner = winner
	game.Turn = ""

	that.publish(&entity.Event{Type: eventType, Game: game})
	that.dropGame()

	that.broadcast(msgNewGame)
	that.newRound()
	that.broadcastState()
}

// leave runs the disconnect path for conn. A conn that is no longer
// registered is ignored, so a transport may report the same loss twice.
func (that *Coordinator) leave(conn session.Conn) {
	log := that.logger.With("method", "leave", "conn_id", conn.ID())

	slot, err := that.registry.Leave(conn)
	if err != nil {
		log.Debug("connection already gone", "error", err)
		return
	}

	that.closeConn(conn)
	log.Info("player left", "player", slot.Number(), "remaining", that.registry.Count())

	that.broadcast(msgDisconnected)

	if !that.active {
		return
	}

	that.abortRound(entity.EventGameAbort)

	if that.registry.Count() > 0 {
		that.broadcast(msgWaiting)
	}
}

// checkTimeout ends an active round nobody has touched for longer than the
// inactivity timeout and drops every participant.
func (that *Coordinator) checkTimeout() {
	if !that.active {
		return
	}

	idle := that.now().Sub(that.lastActivity)
	if idle <= that.timeout {
		return
	}

	that.logger.Info("game timed out", "method", "checkTimeout", "game_id", that.gameID, "idle", idle.String())

	that.broadcast(msgTimeout)
	that.abortRound(entity.EventGameTimeout)

	for _, conn := range that.registry.Clear() {
		that.closeConn(conn)
	}
}

func (that *Coordinator) shutdown() {
	that.logger.Info("shutting down", "method", "shutdown", "players", that.registry.Count())

	that.broadcast(msgShutdown)

	if that.active {
		that.abortRound(entity.EventServerShutdown)
	} else {
		that.publish(&entity.Event{Type: entity.EventServerShutdown})
	}

	for _, conn := range that.registry.Clear() {
		that.closeConn(conn)
	}
}

func (that *Coordinator) newRound() {
	that.board.Reset()
	that.turn.Reset()
	that.active = true
	that.gameID = uuid.NewString()
	that.lastActivity = that.now()

	that.logger.Info("round started", "game_id", that.gameID)

	game := that.snapshot()
	that.saveGame(game)
	that.publish(&entity.Event{Type: entity.EventGameStart, Game: game})
}

// abortRound ends the active round without a result.
func (that *Coordinator) abortRound(eventType string) {
	that.publish(&entity.Event{Type: eventType, Game: that.snapshot()})
	that.dropGame()

	that.board.Reset()
	that.turn.Reset()
	that.active = false
	that.gameID = ""
}

func (that *Coordinator) broadcastState() {
	that.broadcast(that.board.Render())
	that.broadcast(turnMessage(that.turn.Current()))
}

func (that *Coordinator) broadcast(message string) {
	if err := that.registry.Broadcast(message); err != nil {
		that.logger.Warn("broadcast failed", "method", "broadcast", "error", err)
	}
}

func (that *Coordinator) sendTo(conn session.Conn, message string) {
	if err := conn.Send(message); err != nil {
		that.logger.Warn("send failed", "method", "sendTo", "conn_id", conn.ID(), "error", err)
	}
}

func (that *Coordinator) closeConn(conn session.Conn) {
	if err := conn.Close(); err != nil {
		that.logger.Debug("close failed", "method", "closeConn", "conn_id", conn.ID(), "error", err)
	}
}

func (that *Coordinator) player(slot entity.Slot) *entity.Player {
	conn, ok := that.registry.Conn(slot)
	if !ok {
		return nil
	}

	return entity.NewPlayer(conn.ID(), slot)
}

// snapshot captures the current round for the mirror.
func (that *Coordinator) snapshot() *entity.Game {
	game := &entity.Game{
		ID:      that.gameID,
		Board:   that.board.Cells(),
		Status:  entity.StatusWaiting,
		Players: make([]*entity.Player, 0, that.registry.Count()),
	}

	if that.active {
		game.Status = entity.StatusOngoing
		game.Turn = that.turn.Current().Mark().String()
	}

	for i := range that.registry.Count() {
		game.Players = append(game.Players, that.player(entity.Slot(i)))
	}

	return game
}

func (that *Coordinator) saveGame(game *entity.Game) {
	ctx, cancel := context.WithTimeout(context.Background(), that.storeTimeout)
	defer cancel()

	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		that.logger.Warn("could not mirror game", "method", "saveGame", "game_id", game.ID, "error", err)
	}
}

func (that *Coordinator) dropGame() {
	ctx, cancel := context.WithTimeout(context.Background(), that.storeTimeout)
	defer cancel()

	if err := that.gameRepo.DeleteByID(ctx, that.gameID); err != nil {
		that.logger.Warn("could not drop mirrored game", "method", "dropGame", "game_id", that.gameID, "error", err)
	}
}

func (that *Coordinator) publish(event *entity.Event) {
	ctx, cancel := context.WithTimeout(context.Background(), that.storeTimeout)
	defer cancel()

	event.GameID = that.gameID
	event.At = that.now().UTC()

	if err := that.gameRepo.Publish(ctx, event); err != nil {
		that.logger.Warn("could not publish event", "method", "publish", "type", event.Type, "error", err)
	}
}
