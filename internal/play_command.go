package application

import (
	"context"
	"flag"
	"io"
	"log/slog"
	"os"

	"github.com/google/subcommands"

	"github.com/rocketscienceinc/tictactoe-engine/internal/config"
)

type PlayCommand struct {
	logger *slog.Logger
	conf   *config.Config
	in     io.Reader
	out    io.Writer

	humanMark string
	strict    bool
}

func NewPlayCommand(logger *slog.Logger, conf *config.Config) *PlayCommand {
	return &PlayCommand{
		logger: logger,
		conf:   conf,
		in:     os.Stdin,
		out:    os.Stdout,
	}
}

func (*PlayCommand) Name() string     { return "play" }
func (*PlayCommand) Synopsis() string { return "Play games against the engine over stdin/stdout" }
func (*PlayCommand) Usage() string {
	return `play [flags]

Reads one JSON message per line from stdin and writes one response per line to stdout:

  {"action":"game:new","payload":{"game_id":"g1","human_mark":"X"}}
  {"action":"game:turn","payload":{"game_id":"g1","cell":4}}
  {"action":"game:state","payload":{"game_id":"g1"}}
  {"action":"game:leave","payload":{"game_id":"g1"}}
`
}

func (c *PlayCommand) SetFlags(flags *flag.FlagSet) {
	flags.StringVar(&c.humanMark, "human", c.conf.HumanMark, "default mark for the human: X or O")
	flags.BoolVar(&c.strict, "strict", c.conf.StrictMoves, "report rejected moves as errors")
}

func (c *PlayCommand) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	conf := *c.conf
	conf.HumanMark = c.humanMark
	conf.StrictMoves = c.strict

	if err := RunApp(ctx, c.logger, &conf, c.in, c.out); err != nil {
		c.logger.Error("app run failed", "error", err)
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}
