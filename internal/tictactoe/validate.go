package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

// ValidateMove - reports why PlayHumanMove would ignore the cell, or nil if the move
// would be applied.
func (that *Session) ValidateMove(cell int) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.validateMove(cell)
}

func (that *Session) validateMove(cell int) error {
	if that.state == StateGameOver {
		return apperror.ErrGameFinished
	}

	if !entity.IsValidCell(cell) {
		return fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	if !that.board.IsEmpty(cell) {
		return apperror.ErrCellOccupied
	}

	return nil
}
