package cmd_test

import (
	"bytes"
	"testing"

	"github.com/coder/serpent"
	"github.com/stretchr/testify/require"

	"github.com/Emyrk/calltree/cmd"
)

func TestLogger(t *testing.T) {
	t.Run("Level", func(t *testing.T) {
		var stderr bytes.Buffer
		r := &cmd.Root{LogLevel: "warn"}
		logger := r.Logger(&serpent.Invocation{Stderr: &stderr})

		logger.Info().Msg("hidden")
		require.Empty(t, stderr.String())

		logger.Warn().Msg("shown")
		require.Contains(t, stderr.String(), `"message":"shown"`)
		require.Contains(t, stderr.String(), `"boot_id":"`)
	})

	t.Run("UnknownLevel", func(t *testing.T) {
		var stderr bytes.Buffer
		r := &cmd.Root{LogLevel: "loud"}
		logger := r.Logger(&serpent.Invocation{Stderr: &stderr})
		require.Contains(t, stderr.String(), "unknown log level")

		stderr.Reset()
		logger.Debug().Msg("hidden")
		logger.Info().Msg("shown")
		require.NotContains(t, stderr.String(), "hidden")
		require.Contains(t, stderr.String(), "shown")
	})

	t.Run("Human", func(t *testing.T) {
		var stderr bytes.Buffer
		r := &cmd.Root{LogHuman: true, LogLevel: "info"}
		logger := r.Logger(&serpent.Invocation{Stderr: &stderr})

		logger.Info().Msg("hello")
		require.Contains(t, stderr.String(), "hello")
		require.NotContains(t, stderr.String(), `"message"`)
	})
}
