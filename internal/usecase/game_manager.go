package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/pkg"
	"github.com/rocketscienceinc/tictactoe-engine/internal/repository"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

type sessionRepo interface {
	CreateOrUpdate(ctx context.Context, session *tictactoe.Session) error
	GetByID(ctx context.Context, id string) (*tictactoe.Session, error)
	DeleteByID(ctx context.Context, id string) error
}

// GameManager - runs many independent games, one session per game ID.
type GameManager struct {
	logger      *slog.Logger
	sessionRepo sessionRepo
	opts        tictactoe.Options
}

func NewGameManager(logger *slog.Logger, sessionRepo sessionRepo, opts tictactoe.Options) *GameManager {
	return &GameManager{
		logger: logger.With("component", "gameManager"),

		sessionRepo: sessionRepo,
		opts:        opts,
	}
}

// NewGame - restarts the game with the given ID, or creates it when it does not exist yet.
// An empty ID gets a generated one.
func (that *GameManager) NewGame(ctx context.Context, gameID string, humanMark entity.Mark) (tictactoe.Snapshot, error) {
	log := that.logger.With("method", "NewGame")

	if gameID == "" {
		gameID = pkg.GenerateGameID()
	}

	session, err := that.sessionRepo.GetByID(ctx, gameID)
	if err != nil && !errors.Is(err, repository.ErrGameNotFound) {
		return tictactoe.Snapshot{}, fmt.Errorf("failed get game by id: %w", err)
	}

	var snapshot tictactoe.Snapshot

	if session == nil {
		session = tictactoe.StartSession(that.logger, gameID, that.opts, humanMark)
		snapshot = session.BoardState()
		log.Info("game created", "gameID", gameID)
	} else {
		snapshot = session.NewGame(humanMark)
	}

	if err = that.sessionRepo.CreateOrUpdate(ctx, session); err != nil {
		return tictactoe.Snapshot{}, fmt.Errorf("failed to create game: %w", err)
	}

	return snapshot, nil
}

// PlayHumanMove - applies the human move in the game and returns the AI answer.
func (that *GameManager) PlayHumanMove(ctx context.Context, gameID string, cell int) (tictactoe.TurnReport, error) {
	session, err := that.getSession(ctx, gameID)
	if err != nil {
		return tictactoe.TurnReport{}, err
	}

	return session.PlayHumanMove(cell), nil
}

// ValidateMove - reports why a human move would be ignored.
func (that *GameManager) ValidateMove(ctx context.Context, gameID string, cell int) error {
	session, err := that.getSession(ctx, gameID)
	if err != nil {
		return err
	}

	return session.ValidateMove(cell) //nolint: wrapcheck // sentinel errors are matched by callers
}

func (that *GameManager) GetBoardState(ctx context.Context, gameID string) (tictactoe.Snapshot, error) {
	session, err := that.getSession(ctx, gameID)
	if err != nil {
		return tictactoe.Snapshot{}, err
	}

	return session.BoardState(), nil
}

// EndGame - drops the game. The final state is returned to the caller.
func (that *GameManager) EndGame(ctx context.Context, gameID string) (tictactoe.Snapshot, error) {
	log := that.logger.With("method", "EndGame")

	session, err := that.getSession(ctx, gameID)
	if err != nil {
		return tictactoe.Snapshot{}, err
	}

	if err = that.sessionRepo.DeleteByID(ctx, gameID); err != nil {
		return tictactoe.Snapshot{}, fmt.Errorf("failed to delete game: %w", err)
	}

	log.Info("game deleted", "gameID", gameID)

	return session.BoardState(), nil
}

func (that *GameManager) getSession(ctx context.Context, gameID string) (*tictactoe.Session, error) {
	session, err := that.sessionRepo.GetByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return session, nil
}
