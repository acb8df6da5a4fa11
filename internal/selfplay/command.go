package selfplay

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	"github.com/google/subcommands"

	"github.com/rocketscienceinc/tictactoe-engine/internal/config"
)

type Command struct {
	logger *slog.Logger
	conf   *config.Config
	out    io.Writer

	games    int
	workers  int
	opponent string
	seed     int64
	verbose  bool
}

func NewCommand(logger *slog.Logger, conf *config.Config) *Command {
	return &Command{
		logger: logger,
		conf:   conf,
		out:    os.Stdout,
	}
}

func (*Command) Name() string     { return "selfplay" }
func (*Command) Synopsis() string { return "Play the engine against a scripted opponent and report results" }
func (*Command) Usage() string {
	return `selfplay [flags]

Plays every possible human line (-opponent exhaustive) or random human moves
(-opponent random) against the engine. Exits with a failure if the human ever wins.
`
}

func (c *Command) SetFlags(flags *flag.FlagSet) {
	flags.IntVar(&c.games, "games", c.conf.SelfPlay.Games, "number of games for the random opponent")
	flags.IntVar(&c.workers, "workers", c.conf.SelfPlay.Workers, "number of parallel workers")
	flags.StringVar(&c.opponent, "opponent", c.conf.SelfPlay.Opponent, "opponent: exhaustive or random")
	flags.Int64Var(&c.seed, "seed", c.conf.SelfPlay.Seed, "random seed, 0 picks one from the clock")
	flags.BoolVar(&c.verbose, "v", false, "log every session")
}

func (c *Command) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.seed == 0 {
		c.seed = time.Now().Unix()
	}

	summary, err := Run(ctx, c.logger, Config{
		Games:    c.games,
		Workers:  c.workers,
		Opponent: c.opponent,
		Seed:     c.seed,
		Verbose:  c.verbose,
		Options:  c.conf.GameOptions(),
	})
	if err != nil {
		c.logger.Error("selfplay failed", "error", err)
		return subcommands.ExitFailure
	}

	if err = c.writeSummary(summary); err != nil {
		c.logger.Error("failed to write summary", "error", err)
		return subcommands.ExitFailure
	}

	if summary.HumanWins > 0 {
		c.logger.Error("engine lost games", "humanWins", summary.HumanWins, "seed", c.seed)
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}

func (c *Command) writeSummary(summary Summary) error {
	tw := tabwriter.NewWriter(c.out, 2, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "opponent\tgames\thuman\tai\tdraw\n")
	fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\n",
		c.opponent, summary.Games, summary.HumanWins, summary.AIWins, summary.Draws)

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("flush summary: %w", err)
	}

	return nil
}
