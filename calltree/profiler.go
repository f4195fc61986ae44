// Package calltree builds a tree of distinct call paths out of nested
// Enter/Leave calls and times every path with two clocks: a monotonic wall
// clock and a CPU-cost counter.
//
// Direct self-recursion is collapsed into the node that is already open, so
// a recursive chain is timed once, by its outermost entry. Indirect
// recursion (A calls B calls A) produces ordinary nested nodes.
//
// A Profiler observes exactly one logical call stack. It is not safe for
// concurrent use; give each goroutine its own Profiler.
//
// Example usage:
//
//	p := calltree.New(calltree.Options{}, logger)
//	func work() {
//		defer p.Scope("work")()
//		// ...
//	}
//	work()
//	_ = p.Finalize()
//	_ = p.WriteReport(os.Stdout)
package calltree

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

const (
	DefaultRootName  = "Root"
	DefaultNamespace = "calltree"
)

type Options struct {
	// RootName names the sentinel node spanning the whole session.
	RootName    string            `yaml:"root_name"`
	Namespace   string            `yaml:"metrics_namespace"`
	ConstLabels prometheus.Labels `yaml:"constant_labels"`

	// Clock defaults to SystemClock.
	Clock Clock `yaml:"-"`
}

// Profiler owns the call tree and the cursor pointing at the innermost open
// scope. Nodes are stored in an arena and are never removed.
type Profiler struct {
	nodes     []Node
	current   NodeID
	depth     int
	maxDepth  int
	finalized bool

	clock   Clock
	logger  zerolog.Logger
	metrics *metrics
}

// New creates the root node and starts its timer.
func New(opts Options, logger zerolog.Logger) *Profiler {
	if opts.RootName == "" {
		opts.RootName = DefaultRootName
	}
	if opts.Namespace == "" {
		opts.Namespace = DefaultNamespace
	}
	if opts.Clock == nil {
		opts.Clock = SystemClock()
	}

	p := &Profiler{
		clock:   opts.Clock,
		logger:  logger,
		metrics: newMetrics(opts.Namespace, opts.ConstLabels),
	}
	p.current = p.newNode(opts.RootName, NoParent)
	p.nodes[p.current].start(p.clock)
	return p
}

func (p *Profiler) newNode(name string, parent NodeID) NodeID {
	id := NodeID(len(p.nodes))
	p.nodes = append(p.nodes, Node{
		Name:   name,
		Parent: parent,
		Calls:  1,
	})
	if parent != NoParent {
		p.nodes[parent].Children = append(p.nodes[parent].Children, id)
	}
	p.metrics.nodes.Set(float64(len(p.nodes)))
	return id
}

// child finds the child of parent called name. Branching at a single call
// site is small, a linear scan is enough.
func (p *Profiler) child(parent NodeID, name string) (NodeID, bool) {
	for _, id := range p.nodes[parent].Children {
		if p.nodes[id].Name == name {
			return id, true
		}
	}
	return 0, false
}

// Enter moves the cursor into the scope called name, creating the call path
// on first sight. Entering the scope that is already current only counts a
// recursion level; its timer keeps running.
func (p *Profiler) Enter(name string) error {
	if p.finalized {
		p.logger.Error().Str("name", name).Msg("enter after finalize")
		return fmt.Errorf("enter %q: %w", name, ErrFinalized)
	}
	if name == "" {
		p.logger.Error().Int("depth", p.depth).Msg("enter without a scope name")
		return ErrEmptyName
	}

	p.depth++
	if p.depth > p.maxDepth {
		p.maxDepth = p.depth
	}
	p.metrics.enters.Inc()
	p.metrics.depth.Set(float64(p.depth))

	if cur := &p.nodes[p.current]; cur.Name == name {
		cur.Recursion++
		p.metrics.recursiveEnters.Inc()
		return nil
	}

	id, found := p.child(p.current, name)
	if found {
		p.nodes[id].Calls++
	} else {
		id = p.newNode(name, p.current)
		p.logger.Trace().
			Str("name", name).
			Str("parent", p.nodes[p.current].Name).
			Int("node_id", int(id)).
			Msg("new call path")
	}

	p.current = id
	p.nodes[id].start(p.clock)
	return nil
}

// Leave closes the innermost open scope. While unwinding self-recursion the
// node stays open and current; only the outermost Leave stops its timer.
func (p *Profiler) Leave() error {
	if p.finalized {
		p.logger.Error().Msg("leave after finalize")
		return fmt.Errorf("leave: %w", ErrFinalized)
	}

	cur := &p.nodes[p.current]
	switch {
	case cur.Recursion > 0:
		cur.Recursion--
	case p.current == RootID:
		p.metrics.unbalanced.Inc()
		p.logger.Error().Str("root", cur.Name).Msg("leave without a matching enter")
		return fmt.Errorf("leave at root %q: %w", cur.Name, ErrUnbalanced)
	default:
		cur.stop(p.clock)
		p.current = cur.Parent
	}

	p.depth--
	p.metrics.leaves.Inc()
	p.metrics.depth.Set(float64(p.depth))
	return nil
}

// Finalize ends the session by stopping the root timer. Scopes that are
// still open are closed first, innermost to outermost, so the cursor always
// ends at the root.
func (p *Profiler) Finalize() error {
	if p.finalized {
		return fmt.Errorf("finalize: %w", ErrFinalized)
	}

	openScopes := p.depth
	unwound := 0
	for p.current != RootID {
		n := &p.nodes[p.current]
		n.Recursion = 0
		n.stop(p.clock)
		p.current = n.Parent
		unwound++
	}
	if openScopes > 0 {
		p.logger.Warn().
			Int("open_scopes", openScopes).
			Int("nodes_closed", unwound).
			Msg("finalize with open scopes")
	}

	root := &p.nodes[RootID]
	root.Recursion = 0
	root.stop(p.clock)

	p.depth = 0
	p.metrics.depth.Set(0)
	p.finalized = true

	p.logger.Debug().
		Int("nodes", len(p.nodes)).
		Int("max_depth", p.maxDepth).
		Float64("wall_ms", root.WallMillis()).
		Uint64("cycles", root.Cycles).
		Msg("profiling session finalized")
	return nil
}

func (p *Profiler) Finalized() bool { return p.finalized }
func (p *Profiler) Root() NodeID    { return RootID }
func (p *Profiler) Current() NodeID { return p.current }

// Depth is the number of Enter calls not yet matched by a Leave.
func (p *Profiler) Depth() int    { return p.depth }
func (p *Profiler) MaxDepth() int { return p.maxDepth }

// Len is the number of nodes created so far, root included.
func (p *Profiler) Len() int { return len(p.nodes) }

// Node returns a copy of the node. It panics if id was not produced by this
// profiler.
func (p *Profiler) Node(id NodeID) Node {
	n := p.nodes[id]
	n.Children = append([]NodeID(nil), n.Children...)
	return n
}

// Path returns the names from the root down to id, root excluded.
func (p *Profiler) Path(id NodeID) []string {
	var path []string
	for ; id != NoParent && id != RootID; id = p.nodes[id].Parent {
		path = append(path, p.nodes[id].Name)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// Find follows names from the root and returns the node at the end of the
// path. An empty path is the root.
func (p *Profiler) Find(path ...string) (NodeID, bool) {
	id := RootID
	for _, name := range path {
		next, ok := p.child(id, name)
		if !ok {
			return 0, false
		}
		id = next
	}
	return id, true
}

// Walk visits every node depth-first in pre-order, children in discovery
// order. Returning false from fn skips that node's subtree.
func (p *Profiler) Walk(fn func(id NodeID, level int) bool) {
	p.walk(RootID, 0, fn)
}

func (p *Profiler) walk(id NodeID, level int, fn func(NodeID, int) bool) {
	if !fn(id, level) {
		return
	}
	for _, child := range p.nodes[id].Children {
		p.walk(child, level+1, fn)
	}
}
