package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-engine/testing/suite"
)

func TestSessionRepository_CreateOrUpdate(t *testing.T) {
	ctx, st := suite.New(t)

	sessionRepo := NewSessionRepository()

	// Given: a session with ID
	session := st.NewSession("123")

	// When: CreateOrUpdate is called
	err := sessionRepo.CreateOrUpdate(ctx, session)

	// Then: no error should be returned, and session is stored
	require.NoError(t, err)
}

func TestSessionRepository_GetByID(t *testing.T) {
	t.Run("GetByID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		sessionRepo := NewSessionRepository()

		// Given: a stored session
		session := st.NewSession("123")
		require.NoError(t, sessionRepo.CreateOrUpdate(ctx, session))

		// When: GetByID is called with existing ID
		retrieved, err := sessionRepo.GetByID(ctx, "123")

		// Then: the same session is returned
		require.NoError(t, err)
		assert.Same(t, session, retrieved)
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		ctx, _ := suite.New(t)

		sessionRepo := NewSessionRepository()

		// When: GetByID is called with non-existent ID
		retrieved, err := sessionRepo.GetByID(ctx, "9999999")

		// Then: an ErrGameNotFound error should be returned
		require.ErrorIs(t, err, ErrGameNotFound)
		assert.Nil(t, retrieved)
	})

	t.Run("GetByID_CanceledContext", func(t *testing.T) {
		_, st := suite.New(t)

		sessionRepo := NewSessionRepository()
		require.NoError(t, sessionRepo.CreateOrUpdate(context.Background(), st.NewSession("123")))

		// Given: a canceled context
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		// When: GetByID is called
		_, err := sessionRepo.GetByID(ctx, "123")

		// Then: the context error is returned
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestSessionRepository_DeleteByID(t *testing.T) {
	t.Run("DeleteByID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		sessionRepo := NewSessionRepository()

		// Given: a stored session
		require.NoError(t, sessionRepo.CreateOrUpdate(ctx, st.NewSession("123")))

		// When: DeleteByID is called with existing ID
		err := sessionRepo.DeleteByID(ctx, "123")

		// Then: no error should be returned and the session is gone
		require.NoError(t, err)

		_, err = sessionRepo.GetByID(ctx, "123")
		require.ErrorIs(t, err, ErrGameNotFound)
	})

	t.Run("DeleteByID_NotFound", func(t *testing.T) {
		ctx, _ := suite.New(t)

		sessionRepo := NewSessionRepository()

		// When: DeleteByID is called with non-existent ID
		err := sessionRepo.DeleteByID(ctx, "9999999")

		// Then: an ErrGameNotFound error should be returned
		require.ErrorIs(t, err, ErrGameNotFound)
	})
}
