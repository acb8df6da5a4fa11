package stdio

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/repository"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

func (that *Server) handleNewGame(ctx context.Context, msg *Message) error {
	log := that.logger.With("method", "handleNewGame")

	payloadReq, err := decodePayload(msg)
	if err != nil {
		return that.sendErrorResponse(msg.Action, err.Error())
	}

	humanMark := entity.Mark(payloadReq.HumanMark)
	if that.strict && humanMark != entity.EmptyCell && !humanMark.IsValid() {
		return that.sendErrorResponse(msg.Action, fmt.Sprintf("%v: %q", apperror.ErrInvalidMark, payloadReq.HumanMark))
	}

	game, err := that.gameManager.NewGame(ctx, payloadReq.GameID, humanMark)
	if err != nil {
		log.Error("failed to create game", "error", err)
		return that.sendErrorResponse(msg.Action, "failed to create a new game")
	}

	log.Info("game started", "gameID", game.ID, "human", game.HumanMark)

	return that.sendMessage(msg.Action, ResponsePayload{Game: &game})
}

func (that *Server) handleGameTurn(ctx context.Context, msg *Message) error {
	log := that.logger.With("method", "handleGameTurn")

	payloadReq, err := decodePayload(msg)
	if err != nil {
		return that.sendErrorResponse(msg.Action, err.Error())
	}

	if payloadReq.GameID == "" {
		return that.sendErrorResponse(msg.Action, "game_id is required")
	}

	if payloadReq.Cell == nil {
		return that.sendErrorResponse(msg.Action, "cell is required")
	}

	log = log.With("gameID", payloadReq.GameID, "cell", *payloadReq.Cell)

	if that.strict {
		err = that.gameManager.ValidateMove(ctx, payloadReq.GameID, *payloadReq.Cell)
		switch {
		case errors.Is(err, apperror.ErrGameFinished),
			errors.Is(err, apperror.ErrCellOccupied),
			errors.Is(err, apperror.ErrInvalidCell):
			log.Info("move rejected", "reason", err)
			return that.sendErrorResponse(msg.Action, err.Error())
		case err != nil:
			return that.sendGameError(msg.Action, payloadReq.GameID, err)
		}
	}

	report, err := that.gameManager.PlayHumanMove(ctx, payloadReq.GameID, *payloadReq.Cell)
	if err != nil {
		return that.sendGameError(msg.Action, payloadReq.GameID, err)
	}

	payloadResp := ResponsePayload{Game: &report.Game}
	if report.AICell != tictactoe.NoMove {
		payloadResp.AICell = &report.AICell
	}

	return that.sendMessage(msg.Action, payloadResp)
}

func (that *Server) handleGameState(ctx context.Context, msg *Message) error {
	payloadReq, err := decodePayload(msg)
	if err != nil {
		return that.sendErrorResponse(msg.Action, err.Error())
	}

	game, err := that.gameManager.GetBoardState(ctx, payloadReq.GameID)
	if err != nil {
		return that.sendGameError(msg.Action, payloadReq.GameID, err)
	}

	return that.sendMessage(msg.Action, ResponsePayload{Game: &game})
}

func (that *Server) handleGameLeave(ctx context.Context, msg *Message) error {
	log := that.logger.With("method", "handleGameLeave")

	payloadReq, err := decodePayload(msg)
	if err != nil {
		return that.sendErrorResponse(msg.Action, err.Error())
	}

	game, err := that.gameManager.EndGame(ctx, payloadReq.GameID)
	if err != nil {
		return that.sendGameError(msg.Action, payloadReq.GameID, err)
	}

	log.Info("game left", "gameID", game.ID)

	return that.sendMessage(msg.Action, ResponsePayload{Game: &game})
}

// sendGameError - reports a failed lookup of the game to the caller.
func (that *Server) sendGameError(action, gameID string, err error) error {
	if errors.Is(err, repository.ErrGameNotFound) {
		return that.sendErrorResponse(action, fmt.Sprintf("game %s: %v", gameID, repository.ErrGameNotFound))
	}

	that.logger.Error("game request failed", "action", action, "gameID", gameID, "error", err)

	return that.sendErrorResponse(action, fmt.Sprintf("game %s: request failed", gameID))
}

func decodePayload(msg *Message) (RequestPayload, error) {
	var payloadReq RequestPayload
	if len(msg.Payload) == 0 {
		return payloadReq, nil
	}

	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
		return payloadReq, fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	return payloadReq, nil
}
