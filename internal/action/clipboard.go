package action

import (
	"fmt"

	"github.com/atotto/clipboard"
)

// CopyToClipboard puts the delivered result on the system clipboard. On Linux
// this needs xclip, xsel or wl-copy on PATH.
func CopyToClipboard(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("copy result to clipboard: %w", err)
	}
	return nil
}
