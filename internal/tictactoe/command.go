package tictactoe

import (
	"strconv"
	"strings"
)

type CommandKind int

const (
	CommandUnknown CommandKind = iota
	CommandMove
	CommandHelp
	CommandQuit
)

type Command struct {
	Kind CommandKind
	Row  int
	Col  int
}

// ParseCommand turns one line of client input into a Command.
//
// A move is only recognized as exactly "move <row> <col>" with decimal
// integers. Everything else is matched by prefix of its first word against
// "quit" and "help"; the rest is unknown.
func ParseCommand(line string) Command {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{Kind: CommandUnknown}
	}

	if fields[0] == "move" && len(fields) == 3 {
		row, rowErr := strconv.Atoi(fields[1])
		col, colErr := strconv.Atoi(fields[2])

		if rowErr == nil && colErr == nil {
			return Command{Kind: CommandMove, Row: row, Col: col}
		}
	}

	switch {
	case strings.HasPrefix(fields[0], "quit"):
		return Command{Kind: CommandQuit}
	case strings.HasPrefix(fields[0], "help"):
		return Command{Kind: CommandHelp}
	default:
		return Command{Kind: CommandUnknown}
	}
}
