package picker

import (
	"errors"

	"github.com/ktr0731/go-fuzzyfinder"
)

// ErrAborted indicates user cancelled selection
var ErrAborted = errors.New("selection aborted")

// PickJob displays an fzf-style picker over the job names and returns the
// chosen one. command supplies the preview text for a name.
func PickJob(names []string, command func(name string) string) (string, error) {
	if len(names) == 0 {
		return "", errors.New("no jobs to pick from")
	}

	if len(names) == 1 {
		return names[0], nil
	}

	idx, err := fuzzyfinder.Find(names,
		func(i int) string {
			return names[i]
		},
		fuzzyfinder.WithPromptString("job> "),
		fuzzyfinder.WithPreviewWindow(func(i, _, _ int) string {
			if i < 0 || command == nil {
				return ""
			}
			return command(names[i])
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return "", ErrAborted
		}
		return "", err
	}

	return names[idx], nil
}
