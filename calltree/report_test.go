package calltree_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Emyrk/calltree/calltree"
)

func TestNearZero(t *testing.T) {
	testCases := []struct {
		In   float64
		Want float64
	}{
		{In: 0, Want: 0},
		{In: 0.0009, Want: 0},
		{In: -0.0009, Want: 0},
		{In: 0.001, Want: 0.001},
		{In: -0.5, Want: -0.5},
		{In: 12.5, Want: 12.5},
	}

	for _, testCase := range testCases {
		require.Equal(t, testCase.Want, calltree.NearZero(testCase.In), "NearZero(%v)", testCase.In)
	}
}

func TestWriteReport(t *testing.T) {
	p, clock := newProfiler(t)

	// main -> {parse, run -> parse}, timed so every percentage is exact
	// enough to spell out.
	steps := []struct {
		advance time.Duration
		step    string
	}{
		{time.Millisecond, "main"},
		{2 * time.Millisecond, "parse"},
		{4 * time.Millisecond, "-"},
		{time.Millisecond, "run"},
		{time.Millisecond, "parse"},
		{2 * time.Millisecond, "-"},
		{time.Millisecond, "-"},
		{time.Millisecond, "-"},
	}
	for _, s := range steps {
		clock.Advance(s.advance, uint64(s.advance/time.Millisecond)*100)
		play(t, p, s.step)
	}
	clock.Advance(time.Millisecond, 100)
	require.NoError(t, p.Finalize())

	var buf bytes.Buffer
	require.NoError(t, p.WriteReport(&buf))

	want := strings.Join([]string{
		`"Root"  Calls: 1  Time: 14  Cycles: 1400  %: 1`,
		"\t" + `"main"  Calls: 1  Time: 12  Cycles: 1200  %: 85.7`,
		"\t\t" + `"parse"  Calls: 1  Time: 4  Cycles: 400  %: 33.3`,
		"\t\t" + `"run"  Calls: 1  Time: 4  Cycles: 400  %: 33.3`,
		"\t\t\t" + `"parse"  Calls: 1  Time: 2  Cycles: 200  %: 50`,
	}, "\n") + "\n"
	require.Equal(t, want, buf.String())
}

func TestPercent(t *testing.T) {
	p, clock := newProfiler(t)
	play(t, p, "A", "B")
	clock.Advance(time.Millisecond, 300)
	play(t, p, "-")
	clock.Advance(time.Millisecond, 100)
	play(t, p, "-")
	clock.Advance(time.Millisecond, 600)
	require.NoError(t, p.Finalize())

	a, _ := p.Find("A")
	b, _ := p.Find("A", "B")
	require.Equal(t, 1.0, p.Percent(p.Root()))
	require.InDelta(t, 40.0, p.Percent(a), 1e-9)
	require.InDelta(t, 75.0, p.Percent(b), 1e-9)
}

func TestPercentOfZeroCycleParent(t *testing.T) {
	p, clock := newProfiler(t)
	play(t, p, "A", "B")
	clock.Advance(time.Millisecond, 0)
	play(t, p, "-", "-")
	require.NoError(t, p.Finalize())

	b, _ := p.Find("A", "B")
	require.Zero(t, p.Percent(b))

	var buf bytes.Buffer
	require.NoError(t, p.WriteReport(&buf))
	require.NotContains(t, buf.String(), "NaN")
	require.Contains(t, buf.String(), "\t\t"+`"B"  Calls: 1  Time: 1  Cycles: 0  %: 0`)
}

func TestReportClampsNearZeroTime(t *testing.T) {
	p, clock := newProfiler(t)
	play(t, p, "A")
	clock.Advance(500*time.Nanosecond, 1)
	play(t, p, "-")
	require.NoError(t, p.Finalize())

	var buf bytes.Buffer
	a, _ := p.Find("A")
	require.NoError(t, p.RenderNode(&buf, a, 1))
	require.Equal(t, "\t"+`"A"  Calls: 1  Time: 0  Cycles: 1  %: 100`+"\n", buf.String())
}

func TestReportSignificantDigits(t *testing.T) {
	p, clock := newProfiler(t)
	play(t, p, "slow")
	clock.Advance(1234500*time.Microsecond, 3)
	play(t, p, "-")
	clock.Advance(0, 6)
	require.NoError(t, p.Finalize())

	var buf bytes.Buffer
	slow, _ := p.Find("slow")
	require.NoError(t, p.RenderNode(&buf, slow, 0))
	require.Equal(t, `"slow"  Calls: 1  Time: 1.23e+03  Cycles: 3  %: 33.3`+"\n", buf.String())
}

type failingWriter struct{}

var errDiskFull = errors.New("disk full")

func (failingWriter) Write([]byte) (int, error) { return 0, errDiskFull }

func TestWriteReportError(t *testing.T) {
	p, _ := newProfiler(t)
	play(t, p, "A", "-")
	require.NoError(t, p.Finalize())

	err := p.WriteReport(failingWriter{})
	require.ErrorIs(t, err, errDiskFull)
}
