// Package job provides ready-made work functions for the wait dialog.
package job

import (
	"context"
	"io"
	"strings"

	"github.com/evgfitil/pleasewait/internal/waitdialog"
)

// Lines returns work that reports every non-blank line read from r as status.
// The result is the number of lines reported. A read blocked on r is not
// interrupted by cancellation; the next line observes it.
func Lines(r io.Reader) waitdialog.WorkFunc {
	return func(ctx context.Context, progress waitdialog.Reporter) (any, error) {
		count := 0
		err := scanLines(r, func(line string) error {
			if err := waitdialog.ContextErr(ctx); err != nil {
				return err
			}
			line = strings.TrimSpace(line)
			if line == "" {
				return nil
			}
			count++
			return progress.Report(line)
		})
		if err != nil {
			return nil, err
		}
		return count, nil
	}
}
