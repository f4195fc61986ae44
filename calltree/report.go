package calltree

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

const nearZeroEpsilon = 0.001

// NearZero returns 0 for magnitudes below 0.001 so timer noise does not show
// up in the report.
func NearZero(v float64) float64 {
	if math.Abs(v) < nearZeroEpsilon {
		return 0
	}
	return v
}

// Percent is the node's share of its parent's cycles, scaled to 100. The
// root is reported as the raw fraction 1. A parent that accumulated no
// cycles yields 0.
func (p *Profiler) Percent(id NodeID) float64 {
	n := p.nodes[id]
	if n.IsRoot() {
		return 1
	}
	parent := p.nodes[n.Parent].Cycles
	if parent == 0 {
		return 0
	}
	return NearZero(float64(n.Cycles) / float64(parent) * 100)
}

// RenderNode writes the single report line for id, indented by level tabs:
//
//	"name"  Calls: 3  Time: 12.5  Cycles: 48211  %: 37.2
func (p *Profiler) RenderNode(w io.Writer, id NodeID, level int) error {
	n := p.nodes[id]
	_, err := fmt.Fprintf(w, "%s\"%s\"  Calls: %d  Time: %s  Cycles: %d  %%: %s\n",
		strings.Repeat("\t", level),
		n.Name,
		n.Calls,
		significant(NearZero(n.WallMillis())),
		n.Cycles,
		significant(p.Percent(id)),
	)
	return err
}

// RenderSubtree writes id and then each child one level deeper, in the
// order the children were first entered.
func (p *Profiler) RenderSubtree(w io.Writer, id NodeID, level int) error {
	if err := p.RenderNode(w, id, level); err != nil {
		return err
	}
	for _, child := range p.nodes[id].Children {
		if err := p.RenderSubtree(w, child, level+1); err != nil {
			return err
		}
	}
	return nil
}

// WriteReport writes the whole tree. Call it after Finalize, before that the
// root has not accumulated any time.
func (p *Profiler) WriteReport(w io.Writer) error {
	if err := p.RenderSubtree(w, RootID, 0); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// significant formats v with three significant digits.
func significant(v float64) string {
	return strconv.FormatFloat(v, 'g', 3, 64)
}
