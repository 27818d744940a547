package cmd

import (
	"os"

	"github.com/mattn/go-isatty"
)

// isPiped reports whether f carries piped or redirected input rather than a
// terminal. A nil file is never piped.
func isPiped(f *os.File) bool {
	if f == nil {
		return false
	}
	if isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()) {
		return false
	}
	// an unattached stdin (e.g. < /dev/null from a daemon) is not a task source
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice == 0
}
