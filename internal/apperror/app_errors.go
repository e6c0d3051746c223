package apperror

import "errors"

var (
	ErrOutOfBounds      = errors.New("cell is out of bounds")
	ErrCellOccupied     = errors.New("cell is already occupied")
	ErrInvalidMark      = errors.New("invalid mark")
	ErrNotYourTurn      = errors.New("it's not your turn")
	ErrGameIsNotStarted = errors.New("game is not started")
	ErrGameFull         = errors.New("game is full")
	ErrNotFound         = errors.New("connection not found")
)
