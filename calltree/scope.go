package calltree

import (
	"runtime"
	"strings"
)

// Scope enters name and returns the function that leaves it, meant to be
// deferred so the scope is closed on every exit path, panics included:
//
//	defer p.Scope("decode")()
//
// If Enter fails the returned function does nothing, so a rejected entry
// never consumes someone else's Leave.
func (p *Profiler) Scope(name string) func() {
	if err := p.Enter(name); err != nil {
		return func() {}
	}
	return func() {
		_ = p.Leave()
	}
}

// ScopeFunc is Scope named after the calling function, e.g.
// "workdemo.CallStackOne".
func (p *Profiler) ScopeFunc() func() {
	return p.Scope(callerName(2))
}

func callerName(skip int) string {
	pcs := make([]uintptr, 1)
	// +1 for runtime.Callers itself.
	if runtime.Callers(skip+1, pcs) == 0 {
		return "unknown"
	}
	frame, _ := runtime.CallersFrames(pcs).Next()
	name := frame.Function
	if name == "" {
		return "unknown"
	}
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}
	return name
}
