package corpus

import "errors"

var (
	// ErrStorage marks a failed fetch from the relational store.
	ErrStorage = errors.New("storage error")
	// ErrConcurrency marks a rebuild that could not acquire or complete its
	// exclusive section.
	ErrConcurrency = errors.New("concurrency error")
	// ErrInvalidArgument marks a request rejected before any work was done.
	ErrInvalidArgument = errors.New("invalid argument")
)
