package entity

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-tcp/internal/apperror"
)

const BoardSize = 3

// Mark is the content of a single board cell.
type Mark int

const (
	EmptyCell Mark = iota
	MarkX
	MarkO
)

// String returns the symbol used in board renders and messages.
func (that Mark) String() string {
	switch that {
	case MarkX:
		return PlayerX
	case MarkO:
		return PlayerO
	default:
		return " "
	}
}

// WinLines lists every row, column and diagonal as (row, col) pairs.
var WinLines = [8][3][2]int{
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
	{{0, 0}, {1, 1}, {2, 2}},
	{{0, 2}, {1, 1}, {2, 0}},
}

// Board is a 3x3 grid. The zero value is an empty board.
type Board struct {
	cells [BoardSize][BoardSize]Mark
}

// Place writes mark into (row, col). It is the only way a cell changes.
func (that *Board) Place(row, col int, mark Mark) error {
	if row < 0 || row >= BoardSize || col < 0 || col >= BoardSize {
		return fmt.Errorf("%w: (%d,%d)", apperror.ErrOutOfBounds, row, col)
	}

	if mark != MarkX && mark != MarkO {
		return fmt.Errorf("%w: %d", apperror.ErrInvalidMark, mark)
	}

	if that.cells[row][col] != EmptyCell {
		return fmt.Errorf("%w: (%d,%d)", apperror.ErrCellOccupied, row, col)
	}

	that.cells[row][col] = mark

	return nil
}

// At returns the mark at (row, col), or EmptyCell when out of bounds.
func (that *Board) At(row, col int) Mark {
	if row < 0 || row >= BoardSize || col < 0 || col >= BoardSize {
		return EmptyCell
	}

	return that.cells[row][col]
}

func (that *Board) IsFull() bool {
	for _, row := range that.cells {
		for _, cell := range row {
			if cell == EmptyCell {
				return false
			}
		}
	}

	return true
}

// Winner returns the mark that completes a line, if any.
func (that *Board) Winner() (Mark, bool) {
	for _, line := range WinLines {
		a := that.cells[line[0][0]][line[0][1]]
		b := that.cells[line[1][0]][line[1][1]]
		c := that.cells[line[2][0]][line[2][1]]

		if a != EmptyCell && a == b && b == c {
			return a, true
		}
	}

	return EmptyCell, false
}

func (that *Board) Reset() {
	that.cells = [BoardSize][BoardSize]Mark{}
}

// Cells flattens the board row by row into symbols, empty cells as "".
func (that *Board) Cells() [BoardSize * BoardSize]string {
	var flat [BoardSize * BoardSize]string

	for row := range that.cells {
		for col, cell := range that.cells[row] {
			if cell != EmptyCell {
				flat[row*BoardSize+col] = cell.String()
			}
		}
	}

	return flat
}

// Render draws the board with a column header and row indexes.
func (that *Board) Render() string {
	var sb strings.Builder

	sb.WriteString("\n  0 1 2\n")

	for row := range that.cells {
		fmt.Fprintf(&sb, "%d %s|%s|%s\n", row, that.cells[row][0], that.cells[row][1], that.cells[row][2])

		if row < BoardSize-1 {
			sb.WriteString("  -+-+-\n")
		}
	}

	sb.WriteString("\n")

	return sb.String()
}
