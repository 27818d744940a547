package job

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/evgfitil/pleasewait/internal/waitdialog"
)

// killDelay bounds how long Wait keeps reading output after the command was
// killed on cancellation.
const killDelay = 2 * time.Second

// ExitError wraps a subprocess exit code so callers can propagate it.
type ExitError struct {
	Code   int
	Stderr string
}

func (e *ExitError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return fmt.Sprintf("exit status %d: %s", e.Code, e.Stderr)
}

// detectShell returns the user's shell from $SHELL env var,
// falling back to /bin/sh if unset.
func detectShell() string {
	if shell := os.Getenv("SHELL"); shell != "" {
		return shell
	}
	return "/bin/sh"
}

// Shell returns work that runs command in the user's shell. Every stdout line
// is reported as status; the result is the whole stdout as a string.
// Cancelling the dialog kills the command.
func Shell(command string) waitdialog.WorkFunc {
	return func(ctx context.Context, progress waitdialog.Reporter) (any, error) {
		cmd := exec.CommandContext(ctx, detectShell(), "-c", command)
		cmd.WaitDelay = killDelay

		var stderr bytes.Buffer
		cmd.Stderr = &stderr
		stdout, err := cmd.StdoutPipe()
		if err != nil {
			return nil, fmt.Errorf("command setup failed: %w", err)
		}

		if err := cmd.Start(); err != nil {
			return nil, fmt.Errorf("command start failed: %w", err)
		}

		var out strings.Builder
		reportErr := scanLines(stdout, func(line string) error {
			out.WriteString(line)
			out.WriteString("\n")
			if line == "" {
				return nil
			}
			return progress.Report(line)
		})
		if reportErr != nil {
			// drain so the command is not blocked on a full pipe while it dies
			_, _ = io.Copy(io.Discard, stdout)
		}

		waitErr := cmd.Wait()
		switch {
		case ctx.Err() != nil:
			return nil, waitdialog.ContextErr(ctx)
		case reportErr != nil:
			return nil, reportErr
		case waitErr != nil:
			var exitErr *exec.ExitError
			if errors.As(waitErr, &exitErr) {
				return nil, &ExitError{Code: exitErr.ExitCode(), Stderr: strings.TrimSpace(stderr.String())}
			}
			return nil, fmt.Errorf("command execution failed: %w", waitErr)
		}
		return out.String(), nil
	}
}

// scanLines calls fn for every line of r until fn fails or r is exhausted.
func scanLines(r io.Reader, fn func(line string) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if err := fn(strings.TrimRight(scanner.Text(), "\r")); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading output: %w", err)
	}
	return nil
}
