// Package console decorates the terminal the host runs in.
package console

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// isTerminal is replaced in tests.
var isTerminal = func(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

type fdWriter interface {
	io.Writer
	Fd() uintptr
}

// SetTitle writes the OSC 0 sequence that sets the terminal window title.
// It only does so in development and when w is a terminal, and reports
// whether the title was written.
func SetTitle(w io.Writer, env, title string) (bool, error) {
	if !strings.EqualFold(env, "development") {
		return false, nil
	}
	title = sanitizeTitle(title)
	if title == "" {
		return false, nil
	}
	f, ok := w.(fdWriter)
	if !ok || !isTerminal(f.Fd()) {
		return false, nil
	}
	if _, err := fmt.Fprintf(f, "\x1b]0;%s\x07", title); err != nil {
		return false, fmt.Errorf("console: set title: %w", err)
	}
	return true, nil
}

// SetStdoutTitle is SetTitle for os.Stdout.
func SetStdoutTitle(env, title string) (bool, error) {
	return SetTitle(os.Stdout, env, title)
}

// sanitizeTitle drops control characters so the title cannot terminate the
// escape sequence early.
func sanitizeTitle(title string) string {
	return strings.TrimSpace(strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, title))
}
