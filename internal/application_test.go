package application

import (
	"bytes"
	"encoding/json"
	"flag"
	"strings"
	"testing"

	"github.com/google/subcommands"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-engine/internal/config"
	"github.com/rocketscienceinc/tictactoe-engine/internal/transport/stdio"
	"github.com/rocketscienceinc/tictactoe-engine/testing/suite"
)

func TestRunApp(t *testing.T) {
	ctx, st := suite.New(t)

	// Given: a config where the human plays O
	conf := &config.Config{HumanMark: "O", FirstMark: "X"}
	in := strings.NewReader(`{"action":"game:new","payload":{"game_id":"g1"}}` + "\n")

	var out bytes.Buffer

	// When: the app serves the input
	err := RunApp(ctx, st.Logger, conf, in, &out)

	// Then: the engine has opened as X in the center
	require.NoError(t, err)

	var msg struct {
		Action  string                `json:"action"`
		Payload stdio.ResponsePayload `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &msg))
	require.NotNil(t, msg.Payload.Game)
	assert.Equal(t, "X", msg.Payload.Game.Board[4])
	assert.Equal(t, "O", string(msg.Payload.Game.HumanMark))
}

func TestPlayCommand_Execute(t *testing.T) {
	ctx, st := suite.New(t)

	// Given: a play command in strict mode
	cmd := NewPlayCommand(st.Logger, &config.Config{HumanMark: "X", FirstMark: "X"})
	cmd.in = strings.NewReader(strings.Join([]string{
		`{"action":"game:new","payload":{"game_id":"g1"}}`,
		`{"action":"game:turn","payload":{"game_id":"g1","cell":9}}`,
	}, "\n"))

	var out bytes.Buffer
	cmd.out = &out

	flags := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	cmd.SetFlags(flags)
	require.NoError(t, flags.Parse([]string{"-strict"}))

	// When: executing it
	status := cmd.Execute(ctx, flags)

	// Then: the out of range move is reported
	assert.Equal(t, subcommands.ExitSuccess, status)
	assert.Contains(t, out.String(), "invalid cell index: cell 9")
}
