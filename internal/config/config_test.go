package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	t.Run("Applies defaults for missing keys", func(t *testing.T) {
		// Given: a config file that only sets the log level
		path := writeConfig(t, "log-level: debug\n")

		// When: loading it
		conf, err := Load(path)

		// Then: the remaining values come from defaults
		require.NoError(t, err)
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, "X", conf.HumanMark)
		assert.Equal(t, "X", conf.FirstMark)
		assert.False(t, conf.StrictMoves)
		assert.Equal(t, 100, conf.SelfPlay.Games)
		assert.Equal(t, 4, conf.SelfPlay.Workers)
		assert.Equal(t, "exhaustive", conf.SelfPlay.Opponent)
	})

	t.Run("Reads nested values", func(t *testing.T) {
		// Given: a full config file
		path := writeConfig(t, `
human-mark: O
strict-moves: true
selfplay:
  games: 10
  opponent: random
  seed: 7
`)

		// When: loading it
		conf, err := Load(path)

		// Then: the file values win over defaults
		require.NoError(t, err)
		assert.Equal(t, "O", conf.HumanMark)
		assert.True(t, conf.StrictMoves)
		assert.Equal(t, 10, conf.SelfPlay.Games)
		assert.Equal(t, "random", conf.SelfPlay.Opponent)
		assert.Equal(t, int64(7), conf.SelfPlay.Seed)
	})

	t.Run("Environment overrides the file", func(t *testing.T) {
		// Given: a config file and an env override
		path := writeConfig(t, "human-mark: O\n")
		t.Setenv("HUMAN_MARK", "X")

		// When: loading it
		conf, err := Load(path)

		// Then: the env value is used
		require.NoError(t, err)
		assert.Equal(t, "X", conf.HumanMark)
	})

	t.Run("Missing file is an error", func(t *testing.T) {
		// When: loading a file that does not exist
		_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))

		// Then: an error is returned
		require.Error(t, err)
		assert.Panics(t, func() { MustLoad(filepath.Join(t.TempDir(), "nope.yml")) })
	})
}

func TestConfig_GameOptions(t *testing.T) {
	// Given: a config where the human plays O and O moves first
	conf := &Config{HumanMark: "O", FirstMark: "O"}

	// When: building the session options
	opts := conf.GameOptions()

	// Then: the marks are carried over
	assert.Equal(t, tictactoe.Options{DefaultHumanMark: entity.PlayerO, FirstMark: entity.PlayerO}, opts)
}
