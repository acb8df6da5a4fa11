package entity

import "strings"

type Mark string

const (
	PlayerX Mark = "X"
	PlayerO Mark = "O"

	EmptyCell Mark = ""
)

// BoardSize - number of cells on the board.
const BoardSize = 9

// Line - three cell indexes that win the game when they hold the same mark.
type Line [3]int

// WinCombos - every winning line: 3 rows, 3 columns, 2 diagonals. The order is fixed.
var WinCombos = [8]Line{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Board - row-major 3x3 grid, index = row*3 + col.
type Board [BoardSize]Mark

func (that Mark) IsValid() bool {
	return that == PlayerX || that == PlayerO
}

// Opponent - returns the complementary mark. EmptyCell has no opponent.
func (that Mark) Opponent() Mark {
	switch that {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	default:
		return EmptyCell
	}
}

func IsValidCell(cell int) bool {
	return cell >= 0 && cell < BoardSize
}

func (that *Board) IsEmpty(cell int) bool {
	return that[cell] == EmptyCell
}

func (that *Board) IsFull() bool {
	for _, cell := range that {
		if cell == EmptyCell {
			return false
		}
	}

	return true
}

func (that *Board) Clear() {
	*that = Board{}
}

// String - compact form used in logs: "XO.X....." with '.' for empty cells.
func (that Board) String() string {
	var sb strings.Builder
	sb.Grow(BoardSize)

	for _, cell := range that {
		if cell == EmptyCell {
			sb.WriteByte('.')
			continue
		}
		sb.WriteString(string(cell))
	}

	return sb.String()
}
