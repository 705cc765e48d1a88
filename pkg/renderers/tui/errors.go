package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrDisplayUnsupported is returned for display mode; the terminal
	// renderer only edits.
	ErrDisplayUnsupported = errors.New("tui: display mode not supported")
)
