// Package action hands the result of a finished dialog to the user.
package action

import (
	"fmt"
	"io"
	"strings"
)

// Format renders a work result as text. Strings keep their content without a
// trailing newline; nil renders as empty.
func Format(result any) string {
	switch v := result.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimRight(v, "\n")
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// Deliver writes the result to w and, if toClipboard is set, to the clipboard.
// Empty results print nothing.
func Deliver(w io.Writer, result any, toClipboard bool) error {
	text := Format(result)
	if text != "" {
		if _, err := fmt.Fprintln(w, text); err != nil {
			return fmt.Errorf("writing result: %w", err)
		}
	}
	if toClipboard {
		return CopyToClipboard(text)
	}
	return nil
}
