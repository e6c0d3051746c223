package entity

import "time"

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"
	StatusWaiting  = "waiting"

	PlayerX   = "X"
	PlayerO   = "O"
	PlayerTie = "-"
)

const (
	EventGameStart      = "game:start"
	EventGameMove       = "game:move"
	EventGameWin        = "game:win"
	EventGameDraw       = "game:draw"
	EventGameAbort      = "game:abort"
	EventGameTimeout    = "game:timeout"
	EventServerShutdown = "server:shutdown"
)

// Game is a read-only snapshot of one round, published for observers.
type Game struct {
	ID      string    `json:"id"`
	Board   [9]string `json:"board"`
	Winner  string    `json:"winner"`
	Status  string    `json:"status"`
	Turn    string    `json:"player_turn"`
	Players []*Player `json:"players,omitempty"`
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) IsWaiting() bool {
	return that.Status == StatusWaiting
}

// Event describes a state transition of the coordinator.
type Event struct {
	Type   string    `json:"type"`
	GameID string    `json:"game_id,omitempty"`
	Player *Player   `json:"player,omitempty"`
	Row    *int      `json:"row,omitempty"`
	Col    *int      `json:"col,omitempty"`
	Game   *Game     `json:"game,omitempty"`
	At     time.Time `json:"at"`
}
