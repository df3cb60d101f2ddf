package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"tictac/game"
	"tictac/game/tictactoe"
	"tictac/game/ultimate"
)

func write(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRead(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		config, err := Read(filepath.Join(t.TempDir(), "missing.yaml"))
		require.NoError(t, err)
		require.Equal(t, Default(), config, "Missing file should yield defaults")
	})

	t.Run("full file", func(t *testing.T) {
		path := write(t, `
seed: 42
log_level: debug
minimax:
  max_depth: 4
games:
  ultimate:
    simulations: 900
`)
		config, err := Read(path)

		require.NoError(t, err)
		require.NotNil(t, config.Seed)
		require.Equal(t, uint64(42), *config.Seed)
		require.Equal(t, zerolog.DebugLevel, config.Level())
		require.Equal(t, 4, config.Minimax.MaxDepth)
		require.Equal(t, 900, config.Simulations(ultimate.Info))
		require.Equal(t, tictactoe.Info.Simulations, config.Simulations(tictactoe.Info), "Unconfigured games should keep their default")
	})

	t.Run("partial file", func(t *testing.T) {
		config, err := Read(write(t, "minimax:\n  max_depth: 2\n"))
		require.NoError(t, err)
		require.Nil(t, config.Seed)
		require.Equal(t, zerolog.InfoLevel, config.Level(), "Omitted fields should keep their defaults")
	})

	t.Run("malformed file", func(t *testing.T) {
		_, err := Read(write(t, "minimax: [1, 2"))
		require.Error(t, err)
	})

	t.Run("invalid values", func(t *testing.T) {
		path := write(t, `
log_level: loud
minimax:
  max_depth: -1
games:
  tictactoe:
    simulations: -3
`)
		_, err := Read(path)

		require.True(t, errors.Is(err, game.ErrConfiguration))
		var merr *multierror.Error
		require.True(t, errors.As(err, &merr))
		require.Len(t, merr.Errors, 3, "Every invalid field should be reported")
	})
}
