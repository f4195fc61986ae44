// Package console draws a finished call tree for a terminal.
//
// Example output:
//
//	Root: 412ms  1203883412 cycles
//	└─ main  x1  411ms  99.8%
//	   ├─ parse  x1  12.1ms  2.9%
//	   └─ run  x1  398ms  96.7%
package console

import (
	"fmt"
	"io"
	"strconv"

	"github.com/muesli/termenv"

	"github.com/Emyrk/calltree/calltree"
)

const (
	warmPercent = 50
	hotPercent  = 90
)

// Styles wraps a termenv output. On anything that is not a terminal the
// styling degrades to plain text.
type Styles struct {
	output *termenv.Output
}

func NewStyles(w io.Writer) *Styles {
	return &Styles{
		output: termenv.NewOutput(w),
	}
}

// Keyword is bold.
func (s *Styles) Keyword(text string) string {
	return s.output.String(text).Bold().String()
}

// Dim is for secondary information and zero-cost nodes.
func (s *Styles) Dim(text string) string {
	return s.output.String(text).Faint().String()
}

// Warm is yellow.
func (s *Styles) Warm(text string) string {
	return s.output.String(text).Foreground(s.output.Color("3")).String()
}

// Hot is red and bold.
func (s *Styles) Hot(text string) string {
	return s.output.String(text).Foreground(s.output.Color("1")).Bold().String()
}

// Percent colors a share of the parent by how much of it the node took.
func (s *Styles) Percent(pct float64) string {
	text := strconv.FormatFloat(pct, 'g', 3, 64) + "%"
	switch {
	case pct >= hotPercent:
		return s.Hot(text)
	case pct >= warmPercent:
		return s.Warm(text)
	default:
		return text
	}
}

// Render writes the tree of p to w.
func Render(w io.Writer, p *calltree.Profiler) error {
	styles := NewStyles(w)

	root := p.Node(p.Root())
	_, err := fmt.Fprintf(w, "%s: %s  %s\n",
		styles.Keyword(root.Name),
		FormatMillis(root.WallMillis()),
		styles.Dim(strconv.FormatUint(root.Cycles, 10)+" cycles"),
	)
	if err != nil {
		return err
	}

	for i, child := range root.Children {
		if err := renderNode(w, p, child, "", i == len(root.Children)-1, styles); err != nil {
			return err
		}
	}
	return nil
}

func renderNode(w io.Writer, p *calltree.Profiler, id calltree.NodeID, prefix string, isLast bool, styles *Styles) error {
	n := p.Node(id)

	branch, extension := "├─ ", "│  "
	if isLast {
		branch, extension = "└─ ", "   "
	}

	var line string
	if n.Cycles == 0 && calltree.NearZero(n.WallMillis()) == 0 {
		line = styles.Dim(fmt.Sprintf("%s  x%d  0ms", n.Name, n.Calls))
	} else {
		line = fmt.Sprintf("%s  %s  %s  %s",
			n.Name,
			styles.Dim(fmt.Sprintf("x%d", n.Calls)),
			FormatMillis(n.WallMillis()),
			styles.Percent(p.Percent(id)),
		)
	}

	if _, err := fmt.Fprintf(w, "%s%s\n", styles.Dim(prefix+branch), line); err != nil {
		return err
	}

	childPrefix := prefix + extension
	for i, child := range n.Children {
		if err := renderNode(w, p, child, childPrefix, i == len(n.Children)-1, styles); err != nil {
			return err
		}
	}
	return nil
}

// FormatMillis shows three significant digits of milliseconds below one
// second and seconds above it.
func FormatMillis(ms float64) string {
	ms = calltree.NearZero(ms)
	if ms < 999.5 {
		return strconv.FormatFloat(ms, 'g', 3, 64) + "ms"
	}
	return strconv.FormatFloat(ms/1000, 'f', 2, 64) + "s"
}
