// Package workdemo is a small CPU-bound workload instrumented with scopes.
// Between them its functions produce every shape the call tree handles:
// a plain call chain, the same function under two parents, repeated calls,
// direct self-recursion and mutual recursion.
package workdemo

import (
	"github.com/Emyrk/calltree/calltree"
)

type Options struct {
	Iterations int `yaml:"iterations"`
	Work       int `yaml:"work"`
	Fib        int `yaml:"fib"`
	PingPong   int `yaml:"ping_pong"`
}

func (o Options) withDefaults() Options {
	if o.Iterations <= 0 {
		o.Iterations = 3
	}
	if o.Work <= 0 {
		o.Work = 100000
	}
	if o.Fib <= 0 {
		o.Fib = 12
	}
	if o.PingPong <= 0 {
		o.PingPong = 4
	}
	return o
}

type Workload struct {
	p    *calltree.Profiler
	opts Options
}

func New(p *calltree.Profiler, opts Options) *Workload {
	return &Workload{
		p:    p,
		opts: opts.withDefaults(),
	}
}

// Run executes the whole workload under a "main" scope and returns a value
// derived from the work so it cannot be optimized away.
func (w *Workload) Run() int {
	defer w.p.Scope("main")()

	count := w.Parse(1)
	for i := 0; i < w.opts.Iterations; i++ {
		count = w.CallStackOne(count + i)
	}
	count += w.Fib(w.opts.Fib)
	count += w.Ping(w.opts.PingPong)
	return count
}

func (w *Workload) CallStackOne(count int) int {
	defer w.p.Scope("CallStackOne")()
	count = w.spin(count)
	return w.CallStackTwo(count)
}

func (w *Workload) CallStackTwo(count int) int {
	defer w.p.Scope("CallStackTwo")()
	count = w.spin(count)
	count = w.Parse(count)
	return w.CallStackThree(count)
}

func (w *Workload) CallStackThree(count int) int {
	defer w.p.Scope("CallStackThree")()
	count = w.spin(count)
	return w.CallStackFour(count)
}

func (w *Workload) CallStackFour(count int) int {
	defer w.p.Scope("CallStackFour")()
	return w.spin(count)
}

// Parse is reached from main and from CallStackTwo.
func (w *Workload) Parse(count int) int {
	defer w.p.Scope("Parse")()
	return w.spin(count)
}

// Fib recurses into itself.
func (w *Workload) Fib(n int) int {
	defer w.p.Scope("Fib")()
	if n < 2 {
		return n
	}
	return w.Fib(n-1) + w.Fib(n-2)
}

// Ping and Pong call each other until n runs out.
func (w *Workload) Ping(n int) int {
	defer w.p.Scope("Ping")()
	if n <= 0 {
		return 0
	}
	return 1 + w.Pong(n-1)
}

func (w *Workload) Pong(n int) int {
	defer w.p.Scope("Pong")()
	if n <= 0 {
		return 0
	}
	return 1 + w.Ping(n-1)
}

func (w *Workload) spin(count int) int {
	for i := 0; i < w.opts.Work; i++ {
		count += i
		if i%2 == 0 {
			count = count / 2
		}
	}
	return count
}
