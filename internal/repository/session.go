package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

var ErrGameNotFound = errors.New("game not found")

type SessionRepository interface {
	CreateOrUpdate(ctx context.Context, session *tictactoe.Session) error
	GetByID(ctx context.Context, id string) (*tictactoe.Session, error)
	DeleteByID(ctx context.Context, id string) error
}

// memSession - keeps live sessions in process memory, keyed by game ID.
type memSession struct {
	mu       sync.RWMutex
	sessions map[string]*tictactoe.Session
}

func NewSessionRepository() SessionRepository {
	return &memSession{
		sessions: make(map[string]*tictactoe.Session),
	}
}

func (that *memSession) CreateOrUpdate(ctx context.Context, session *tictactoe.Session) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("failed to set game: %w", err)
	}

	that.mu.Lock()
	that.sessions[session.ID()] = session
	that.mu.Unlock()

	return nil
}

func (that *memSession) GetByID(ctx context.Context, id string) (*tictactoe.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	that.mu.RLock()
	session, ok := that.sessions[id]
	that.mu.RUnlock()

	if !ok {
		return nil, ErrGameNotFound
	}

	return session, nil
}

func (that *memSession) DeleteByID(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("failed to delete game by id: %w", err)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.sessions[id]; !ok {
		return ErrGameNotFound
	}

	delete(that.sessions, id)

	return nil
}
