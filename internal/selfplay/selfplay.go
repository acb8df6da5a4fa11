package selfplay

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/pkg"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

const (
	OpponentExhaustive = "exhaustive"
	OpponentRandom     = "random"
)

const prime = 1099511628211

var ErrUnknownOpponent = errors.New("unknown opponent")

type Config struct {
	// Games is only used by the random opponent; the exhaustive one plays every line.
	Games    int
	Workers  int
	Opponent string
	Seed     int64
	Verbose  bool

	Options tictactoe.Options
}

// Summary - tally of finished games, seen from the human side.
type Summary struct {
	Games     int `json:"games"`
	HumanWins int `json:"human_wins"`
	AIWins    int `json:"ai_wins"`
	Draws     int `json:"draws"`
}

func (that *Summary) add(outcome string) {
	that.Games++

	switch outcome {
	case tictactoe.OutcomeHumanWon:
		that.HumanWins++
	case tictactoe.OutcomeAIWon:
		that.AIWins++
	case tictactoe.OutcomeDraw:
		that.Draws++
	}
}

func (that Summary) Merge(other Summary) Summary {
	that.Games += other.Games
	that.HumanWins += other.HumanWins
	that.AIWins += other.AIWins
	that.Draws += other.Draws

	return that
}

type runner struct {
	logger        *slog.Logger
	sessionLogger *slog.Logger
	cfg           Config

	mu      sync.Mutex
	summary Summary
}

// Run - plays the engine against the configured opponent and returns the tally.
func Run(ctx context.Context, logger *slog.Logger, cfg Config) (Summary, error) {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}

	r := &runner{
		logger:        logger.With("component", "selfplay"),
		sessionLogger: slog.New(slog.NewJSONHandler(io.Discard, nil)),
		cfg:           cfg,
	}

	if cfg.Verbose {
		r.sessionLogger = logger
	}

	var err error

	switch cfg.Opponent {
	case OpponentExhaustive:
		err = r.exhaustive(ctx)
	case OpponentRandom:
		err = r.random(ctx)
	default:
		return Summary{}, fmt.Errorf("%w: %q", ErrUnknownOpponent, cfg.Opponent)
	}

	if err != nil {
		return Summary{}, err
	}

	r.logger.Info("selfplay finished",
		"opponent", cfg.Opponent,
		"games", r.summary.Games,
		"humanWins", r.summary.HumanWins,
		"aiWins", r.summary.AIWins,
		"draws", r.summary.Draws,
	)

	return r.summary, nil
}

func (that *runner) record(part Summary) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.summary = that.summary.Merge(part)
}

func (that *runner) newSession(humanMark entity.Mark) *tictactoe.Session {
	opts := that.cfg.Options
	opts.DefaultHumanMark = humanMark

	return tictactoe.NewSession(that.sessionLogger, pkg.GenerateGameID(), opts)
}

// exhaustive - tries every human move in every reachable position, for both human marks.
// Each first human move is explored on its own worker.
func (that *runner) exhaustive(ctx context.Context) error {
	grp, ctx := errgroup.WithContext(ctx)
	grp.SetLimit(that.cfg.Workers)

	for _, mark := range []entity.Mark{entity.PlayerX, entity.PlayerO} {
		mark := mark
		opening := that.newSession(mark).BoardState()

		for _, cell := range freeCells(opening) {
			cell := cell
			grp.Go(func() error {
				var part Summary
				if err := that.explore(ctx, mark, []int{cell}, &part); err != nil {
					return err
				}

				that.record(part)

				return nil
			})
		}
	}

	if err := grp.Wait(); err != nil {
		return fmt.Errorf("exhaustive selfplay: %w", err)
	}

	return nil
}

// explore - replays the human moves on a fresh session and branches on every free cell
// until the game is over.
func (that *runner) explore(ctx context.Context, mark entity.Mark, moves []int, part *Summary) error {
	if err := ctx.Err(); err != nil {
		return err //nolint: wrapcheck // wrapped by the caller
	}

	session := that.newSession(mark)

	var state tictactoe.Snapshot
	for _, cell := range moves {
		state = session.PlayHumanMove(cell).Game
	}

	if state.State == tictactoe.StateGameOver {
		that.logger.Debug("game over", "human", mark, "moves", moves, "outcome", state.Outcome)
		part.add(state.Outcome)

		return nil
	}

	for _, cell := range freeCells(state) {
		next := append(moves[:len(moves):len(moves)], cell)
		if err := that.explore(ctx, mark, next, part); err != nil {
			return err
		}
	}

	return nil
}

// random - plays cfg.Games games where the human picks a random free cell. Human marks
// alternate between games.
func (that *runner) random(ctx context.Context) error {
	grp, ctx := errgroup.WithContext(ctx)
	grp.SetLimit(that.cfg.Workers)

	for i := 0; i < that.cfg.Games; i++ {
		i := i
		grp.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err //nolint: wrapcheck // wrapped below
			}

			mark := entity.PlayerX
			if i%2 == 1 {
				mark = entity.PlayerO
			}

			rng := rand.New(rand.NewSource(prime*that.cfg.Seed + int64(i))) //nolint: gosec // reproducible games

			var part Summary
			part.add(that.playRandom(mark, rng))
			that.record(part)

			return nil
		})
	}

	if err := grp.Wait(); err != nil {
		return fmt.Errorf("random selfplay: %w", err)
	}

	return nil
}

func (that *runner) playRandom(mark entity.Mark, rng *rand.Rand) string {
	session := that.newSession(mark)
	state := session.BoardState()

	for state.State != tictactoe.StateGameOver {
		cells := freeCells(state)
		state = session.PlayHumanMove(cells[rng.Intn(len(cells))]).Game
	}

	that.logger.Debug("game over", "gameID", session.ID(), "human", mark, "outcome", state.Outcome)

	return state.Outcome
}

func freeCells(state tictactoe.Snapshot) []int {
	var cells []int

	for i, cell := range state.Board {
		if cell == string(entity.EmptyCell) {
			cells = append(cells, i)
		}
	}

	return cells
}
