package job

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evgfitil/pleasewait/internal/waitdialog"
)

// recorder is a Reporter that keeps statuses and can cancel after n reports.
type recorder struct {
	statuses []string
	cancelAt int
	cancel   context.CancelFunc
	ctx      context.Context
}

func newRecorder(cancelAt int) *recorder {
	ctx, cancel := context.WithCancel(context.Background())
	return &recorder{cancelAt: cancelAt, cancel: cancel, ctx: ctx}
}

func (r *recorder) Report(status string) error {
	if r.ctx.Err() != nil {
		return waitdialog.ErrCancelled
	}
	r.statuses = append(r.statuses, status)
	if r.cancelAt > 0 && len(r.statuses) == r.cancelAt {
		r.cancel()
	}
	return nil
}

func TestDetectShell_FromEnv(t *testing.T) {
	t.Setenv("SHELL", "/bin/zsh")

	assert.Equal(t, "/bin/zsh", detectShell())
}

func TestDetectShell_Fallback(t *testing.T) {
	t.Setenv("SHELL", "")

	assert.Equal(t, "/bin/sh", detectShell())
}

func TestShell_ReportsLinesAndReturnsOutput(t *testing.T) {
	t.Setenv("SHELL", "/bin/sh")
	rec := newRecorder(0)
	defer rec.cancel()

	result, err := Shell("echo one; echo; echo two")(rec.ctx, rec)

	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, rec.statuses)
	assert.Equal(t, "one\n\ntwo\n", result)
}

func TestShell_ExitCode(t *testing.T) {
	t.Setenv("SHELL", "/bin/sh")
	rec := newRecorder(0)
	defer rec.cancel()

	_, err := Shell("echo oops >&2; exit 3")(rec.ctx, rec)

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 3, exitErr.Code)
	assert.Equal(t, "oops", exitErr.Stderr)
	assert.Equal(t, "exit status 3: oops", exitErr.Error())
}

func TestShell_CancelledByReporter(t *testing.T) {
	t.Setenv("SHELL", "/bin/sh")
	rec := newRecorder(1)
	defer rec.cancel()

	start := time.Now()
	_, err := Shell("while true; do echo tick; sleep 0.01; done")(rec.ctx, rec)

	assert.ErrorIs(t, err, waitdialog.ErrCancelled)
	assert.True(t, waitdialog.IsCancelled(err))
	assert.Less(t, time.Since(start), 10*time.Second)
}

func TestShell_CancelledContext(t *testing.T) {
	t.Setenv("SHELL", "/bin/sh")
	ctx, cancel := context.WithCancel(context.Background())
	rec := newRecorder(0)
	defer rec.cancel()

	time.AfterFunc(50*time.Millisecond, cancel)
	_, err := Shell("sleep 5")(ctx, rec)

	assert.ErrorIs(t, err, waitdialog.ErrCancelled)
}

func TestShell_DeadlineIsNotCancellation(t *testing.T) {
	t.Setenv("SHELL", "/bin/sh")
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	rec := newRecorder(0)
	defer rec.cancel()

	_, err := Shell("sleep 5")(ctx, rec)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, waitdialog.IsCancelled(err))
}

func TestShell_MissingShell(t *testing.T) {
	t.Setenv("SHELL", "/nonexistent/shell")
	rec := newRecorder(0)
	defer rec.cancel()

	_, err := Shell("true")(rec.ctx, rec)

	assert.ErrorContains(t, err, "command start failed")
}

func TestExitError_NoStderr(t *testing.T) {
	assert.Equal(t, "exit status 1", (&ExitError{Code: 1}).Error())
}

func TestLines_ReportsNonBlankLines(t *testing.T) {
	rec := newRecorder(0)
	defer rec.cancel()

	result, err := Lines(strings.NewReader("alpha\n\n  beta  \r\ngamma"))(rec.ctx, rec)

	require.NoError(t, err)
	assert.Equal(t, 3, result)
	assert.Equal(t, []string{"alpha", "beta", "gamma"}, rec.statuses)
}

func TestLines_StopsWhenCancelled(t *testing.T) {
	rec := newRecorder(2)
	defer rec.cancel()

	_, err := Lines(strings.NewReader("a\nb\nc\nd\n"))(rec.ctx, rec)

	assert.ErrorIs(t, err, waitdialog.ErrCancelled)
	assert.Equal(t, []string{"a", "b"}, rec.statuses)
}

func TestLines_DeadlineIsNotCancellation(t *testing.T) {
	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()
	rec := newRecorder(0)
	defer rec.cancel()

	_, err := Lines(strings.NewReader("alpha\nbeta\n"))(ctx, rec)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, waitdialog.IsCancelled(err))
	assert.Empty(t, rec.statuses)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("read failed") }

func TestLines_ReadError(t *testing.T) {
	rec := newRecorder(0)
	defer rec.cancel()

	_, err := Lines(failingReader{})(rec.ctx, rec)

	assert.ErrorContains(t, err, "read failed")
}
