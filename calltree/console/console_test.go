package console_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/Emyrk/calltree/calltree"
	"github.com/Emyrk/calltree/calltree/calltreetest"
	"github.com/Emyrk/calltree/calltree/console"
)

func TestRender(t *testing.T) {
	clock := calltreetest.NewManualClock()
	p := calltree.New(calltree.Options{Clock: clock}, zerolog.Nop())

	require.NoError(t, p.Enter("main"))
	require.NoError(t, p.Enter("parse"))
	clock.Advance(10*time.Millisecond, 100)
	require.NoError(t, p.Leave())
	require.NoError(t, p.Enter("idle"))
	require.NoError(t, p.Leave())
	require.NoError(t, p.Leave())
	require.NoError(t, p.Finalize())

	var buf bytes.Buffer
	require.NoError(t, console.Render(&buf, p))
	output := buf.String()

	lines := strings.Split(strings.TrimSuffix(output, "\n"), "\n")
	require.Len(t, lines, 4)
	require.Contains(t, lines[0], "Root")
	require.Contains(t, lines[0], "10ms")
	require.Contains(t, lines[0], "100 cycles")

	require.Contains(t, lines[1], "└─ ")
	require.Contains(t, lines[1], "main")
	require.Contains(t, lines[1], "100%")

	require.Contains(t, lines[2], "├─ ")
	require.Contains(t, lines[2], "parse")
	require.Contains(t, lines[2], "x1")

	require.Contains(t, lines[3], "└─ ")
	require.Contains(t, lines[3], "idle")
	require.Contains(t, lines[3], "0ms")
}

func TestRenderEmptyTree(t *testing.T) {
	p := calltree.New(calltree.Options{Clock: calltreetest.NewManualClock()}, zerolog.Nop())
	require.NoError(t, p.Finalize())

	var buf bytes.Buffer
	require.NoError(t, console.Render(&buf, p))
	require.Equal(t, 1, strings.Count(buf.String(), "\n"))
}

func TestFormatMillis(t *testing.T) {
	tests := []struct {
		ms   float64
		want string
	}{
		{0, "0ms"},
		{0.0004, "0ms"},
		{1, "1ms"},
		{12.345, "12.3ms"},
		{999, "999ms"},
		{1000, "1.00s"},
		{1500, "1.50s"},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, console.FormatMillis(tt.ms), "FormatMillis(%v)", tt.ms)
	}
}

func TestStylesPercent(t *testing.T) {
	var buf bytes.Buffer
	styles := console.NewStyles(&buf)

	require.Contains(t, styles.Percent(12.5), "12.5%")
	require.Contains(t, styles.Percent(55), "55%")
	require.Contains(t, styles.Percent(97.5), "97.5%")
}
