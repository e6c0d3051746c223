package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-tcp/internal/entity"
)

const (
	msgWaiting        = "Waiting for another player to join...\n"
	msgGameStarting   = "Game is starting!\n"
	msgNewGame        = "Starting a new game...\n"
	msgDraw           = "Game ended in a draw!\n"
	msgNotYourTurn    = "Not your turn! Please wait.\n"
	msgInvalidMove    = "Invalid move! Try again.\n"
	msgNotStarted     = "Game has not started yet. Waiting for another player.\n"
	msgUnknownCommand = "Unknown command. Type 'help' for available commands.\n"
	msgGameFull       = "Game is full. Try again later.\n"
	msgDisconnected   = "A player has disconnected.\n"
	msgTimeout        = "Game timed out due to inactivity.\n"
	msgShutdown       = "Server is shutting down. Goodbye!\n"

	msgHelp = "Commands:\n" +
		"  move <row> <col> - Make a move (rows and cols are 0-2)\n" +
		"  quit - Exit the game\n" +
		"  help - Show this help message\n"
)

func welcomeMessage(slot entity.Slot) string {
	return fmt.Sprintf("Welcome! You are Player %d (%s)\n", slot.Number(), slot.Mark())
}

func turnMessage(slot entity.Slot) string {
	return fmt.Sprintf("It's Player %d's (%s) turn\n", slot.Number(), slot.Mark())
}

func moveMessage(slot entity.Slot, row, col int) string {
	return fmt.Sprintf("Player %d (%s) placed at position (%d,%d)\n", slot.Number(), slot.Mark(), row, col)
}

func winMessage(slot entity.Slot) string {
	return fmt.Sprintf("Player %d (%s) wins!\n", slot.Number(), slot.Mark())
}

func quitMessage(slot entity.Slot) string {
	return fmt.Sprintf("Player %d has quit the game.\n", slot.Number())
}
