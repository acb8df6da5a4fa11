package suite

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

const maxWaitDuration = 30 * time.Second

type Suite struct {
	*testing.T
	Logger *slog.Logger

	Options tictactoe.Options
}

// New - returns a context bound to the test lifetime and a suite with a discarding logger.
func New(t *testing.T) (context.Context, *Suite) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), maxWaitDuration)
	t.Cleanup(func() {
		cancel()
	})

	logger := slog.New(slog.NewJSONHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))

	return ctx, &Suite{
		T:      t,
		Logger: logger,
		Options: tictactoe.Options{
			DefaultHumanMark: "X",
			FirstMark:        "X",
		},
	}
}

// NewSession - starts a session with the suite defaults.
func (that *Suite) NewSession(id string) *tictactoe.Session {
	that.Helper()

	return tictactoe.NewSession(that.Logger, id, that.Options)
}
