package calltree

import "errors"

var (
	// ErrUnbalanced is returned by Leave when there is no Enter left to match.
	ErrUnbalanced = errors.New("unbalanced enter/leave")
	// ErrFinalized is returned by any mutation after Finalize.
	ErrFinalized = errors.New("profiler already finalized")
	// ErrEmptyName is returned by Enter when the scope has no name.
	ErrEmptyName = errors.New("scope name must not be empty")
)
