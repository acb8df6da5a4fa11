package tictactoe

import (
	"math"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

const (
	WinScore  = 10
	LossScore = -WinScore
	DrawScore = 0

	// NoMove - index reported when there is no empty cell to play.
	NoMove = -1
)

// moveOrder - center, corners, then edges.
var moveOrder = [entity.BoardSize]int{4, 0, 2, 6, 8, 1, 3, 5, 7}

// Move - cell chosen by the search and its score from the maximizer's point of view.
type Move struct {
	Score int `json:"score"`
	Index int `json:"index"`
}

type Stats struct {
	Visited  uint64 `json:"visited"`
	Terminal uint64 `json:"terminal"`
	Cuts     uint64 `json:"cuts"`
}

// Searcher - minimax search with alpha-beta pruning for a fixed maximizing mark.
// A Searcher is not safe for concurrent use.
type Searcher struct {
	maximizer entity.Mark
	minimizer entity.Mark

	st Stats
}

func NewSearcher(maximizer entity.Mark) *Searcher {
	return &Searcher{
		maximizer: maximizer,
		minimizer: maximizer.Opponent(),
	}
}

// BestMove - searches the board with toMove to play and returns the optimal move for
// maximizer. The board is left exactly as it was passed in.
func BestMove(board *entity.Board, toMove, maximizer entity.Mark) Move {
	return NewSearcher(maximizer).BestMove(board, toMove)
}

// BestMove - runs a full search and resets the stats of the previous one.
func (that *Searcher) BestMove(board *entity.Board, toMove entity.Mark) Move {
	that.st = Stats{}

	return that.search(board, toMove, math.MinInt, math.MaxInt)
}

func (that *Searcher) Stats() Stats {
	return that.st
}

func (that *Searcher) search(board *entity.Board, toMove entity.Mark, alpha, beta int) Move {
	that.st.Visited++

	if result := entity.Evaluate(*board); result.IsTerminal() {
		that.st.Terminal++
		return Move{Score: that.leafScore(result), Index: NoMove}
	}

	maximizing := toMove == that.maximizer

	best := Move{Score: math.MaxInt, Index: NoMove}
	if maximizing {
		best.Score = math.MinInt
	}

	for _, cell := range moveOrder {
		if !board.IsEmpty(cell) {
			continue
		}

		score := that.try(board, cell, toMove, alpha, beta)

		// one point per ply, charged against the mover
		if maximizing {
			score--
		} else {
			score++
		}

		if maximizing {
			if score > best.Score {
				best = Move{Score: score, Index: cell}
			}
			alpha = max(alpha, score)
		} else {
			if score < best.Score {
				best = Move{Score: score, Index: cell}
			}
			beta = min(beta, score)
		}

		if beta <= alpha {
			that.st.Cuts++
			break
		}
	}

	return best
}

// try - places mark on cell, searches the reply and restores the cell.
func (that *Searcher) try(board *entity.Board, cell int, mark entity.Mark, alpha, beta int) int {
	board[cell] = mark
	defer func() { board[cell] = entity.EmptyCell }()

	return that.search(board, mark.Opponent(), alpha, beta).Score
}

func (that *Searcher) leafScore(result entity.GameResult) int {
	switch {
	case result.Kind == entity.Win && result.Mark == that.maximizer:
		return WinScore
	case result.Kind == entity.Win && result.Mark == that.minimizer:
		return LossScore
	default:
		return DrawScore
	}
}
