// Package calltreetest holds helpers for testing code that uses calltree.
package calltreetest

import (
	"time"

	"github.com/Emyrk/calltree/calltree"
)

var _ calltree.Clock = (*ManualClock)(nil)

// ManualClock only moves when told to.
type ManualClock struct {
	wall   time.Duration
	cycles uint64
}

func NewManualClock() *ManualClock {
	return &ManualClock{}
}

func (c *ManualClock) Wall() time.Duration { return c.wall }
func (c *ManualClock) Cycles() uint64      { return c.cycles }

// Advance moves both readings forward.
func (c *ManualClock) Advance(wall time.Duration, cycles uint64) {
	c.wall += wall
	c.cycles += cycles
}

// Set puts both readings at absolute values, which may be lower than the
// current ones.
func (c *ManualClock) Set(wall time.Duration, cycles uint64) {
	c.wall = wall
	c.cycles = cycles
}
