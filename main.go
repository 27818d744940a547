package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/evgfitil/pleasewait/cmd"
	"github.com/evgfitil/pleasewait/internal/job"
)

func main() {
	if err := cmd.Execute(); err != nil {
		if errors.Is(err, cmd.ErrCancelled) {
			os.Exit(cmd.ExitCodeCancelled)
		}
		fmt.Fprintln(os.Stderr, err)
		var exitErr *job.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}
