//go:build !nocalltree

package calltree

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Emyrk/calltree/calltree/reportfile"
)

// Enabled is false when built with the nocalltree tag.
const Enabled = true

// std is the process-wide profiler. It follows the same single call stack
// contract as any other Profiler.
var std *Profiler

// Init starts the process-wide profiling session. Calling it again replaces
// the previous session without reporting it.
func Init(opts Options, logger zerolog.Logger) *Profiler {
	std = New(opts, logger)
	return std
}

// Default returns the process-wide profiler, or nil before Init.
func Default() *Profiler {
	return std
}

// ProfileMe opens a scope on the process-wide profiler named after the
// calling function. It does nothing before Init.
//
//	func decode() {
//		defer calltree.ProfileMe()()
//		...
//	}
func ProfileMe() func() {
	if std == nil {
		return func() {}
	}
	return std.Scope(callerName(2))
}

// Shutdown finalizes the process-wide session and writes its report to
// filename, resolved against the user's documents directory. It returns the
// path written.
func Shutdown(filename string) (string, error) {
	if std == nil {
		return "", fmt.Errorf("shutdown: profiler not initialized")
	}
	p := std
	std = nil

	if err := p.Finalize(); err != nil {
		return "", err
	}
	path, err := reportfile.Path(filename)
	if err != nil {
		return "", fmt.Errorf("resolve report path: %w", err)
	}
	if err := reportfile.Write(path, p); err != nil {
		return "", err
	}
	p.logger.Info().Str("path", path).Int("nodes", p.Len()).Msg("profiling report written")
	return path, nil
}
