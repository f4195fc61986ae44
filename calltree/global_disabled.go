//go:build nocalltree

package calltree

import "github.com/rs/zerolog"

// Stubbed no-op versions when built with the "nocalltree" tag.

const Enabled = false

func Init(opts Options, logger zerolog.Logger) *Profiler { return nil }
func Default() *Profiler                                 { return nil }
func ProfileMe() func()                                  { return func() {} }
func Shutdown(filename string) (string, error)           { return "", nil }
