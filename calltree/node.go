package calltree

import "time"

// NodeID addresses a node inside the profiler's arena. It is the node's
// index there, so it has the range of a slice index.
type NodeID int

const (
	// RootID is always the first node created by New.
	RootID NodeID = 0
	// NoParent is the parent of the root.
	NoParent NodeID = -1
)

// Node is one distinct call path. Two scopes with the same name are the same
// node only when they share the same parent.
type Node struct {
	Name     string
	Parent   NodeID
	Children []NodeID

	// Calls counts non-recursive entries.
	Calls uint64
	// Recursion is the number of open self-recursive entries still waiting
	// for their Leave.
	Recursion uint64

	Wall   time.Duration
	Cycles uint64

	wallStart  time.Duration
	cycleStart uint64
	open       bool
}

// IsRoot reports whether the node has no parent.
func (n Node) IsRoot() bool {
	return n.Parent == NoParent
}

// Open reports whether the node's timer is currently running.
func (n Node) Open() bool {
	return n.open
}

// WallMillis is the accumulated wall-clock time in milliseconds.
func (n Node) WallMillis() float64 {
	return float64(n.Wall) / float64(time.Millisecond)
}

func (n *Node) start(c Clock) {
	n.wallStart = c.Wall()
	n.cycleStart = c.Cycles()
	n.open = true
}

// stop adds the elapsed interval to the accumulators. Readings that went
// backwards contribute nothing.
func (n *Node) stop(c Clock) {
	if !n.open {
		return
	}
	if wall := c.Wall(); wall > n.wallStart {
		n.Wall += wall - n.wallStart
	}
	if cycles := c.Cycles(); cycles > n.cycleStart {
		n.Cycles += cycles - n.cycleStart
	}
	n.open = false
}
