package entity

type ResultKind int

const (
	InProgress ResultKind = iota
	Win
	Draw
)

const (
	StatusInProgress = "in_progress"
	StatusWin        = "win"
	StatusDraw       = "draw"
)

func (that ResultKind) String() string {
	switch that {
	case Win:
		return StatusWin
	case Draw:
		return StatusDraw
	default:
		return StatusInProgress
	}
}

// GameResult - outcome of a board. Mark and Line are set only for Win.
type GameResult struct {
	Kind ResultKind
	Mark Mark
	Line Line
}

func (that GameResult) IsTerminal() bool {
	return that.Kind != InProgress
}

// Evaluate - determines whether the board is won, drawn or still in progress.
// The first winning line in WinCombos order is reported.
func Evaluate(board Board) GameResult {
	for _, combo := range WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a != EmptyCell && a == b && b == c {
			return GameResult{Kind: Win, Mark: a, Line: combo}
		}
	}

	// the game will continue until all the squares are full
	if !board.IsFull() {
		return GameResult{Kind: InProgress}
	}

	return GameResult{Kind: Draw}
}
