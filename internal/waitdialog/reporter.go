package waitdialog

import (
	"context"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
)

// Reporter lets a work function publish status text to the dialog.
type Reporter interface {
	// Report returns ErrCancelled if cancellation was requested, or the
	// wrapped context error once a deadline passed; the status is not shown
	// in either case.
	Report(status string) error
}

// WorkFunc is the background operation run by a dialog.
//
// ctx is cancelled when the user activates the cancel button. The function
// must watch it (directly or through progress.Report) and return an error
// wrapping context.Canceled to end a cancelled run promptly.
type WorkFunc func(ctx context.Context, progress Reporter) (any, error)

// statusMsg carries a raw status string from the worker to the event loop.
type statusMsg struct {
	status string
}

// doneMsg is the last message a worker sends.
type doneMsg struct {
	result any
	err    error
}

// mailbox is the worker side of the channel drained by the event loop.
type mailbox struct {
	events chan<- tea.Msg
	closed <-chan struct{}
}

// deliver blocks until the event loop takes msg. It returns false if the
// dialog went away first.
func (b mailbox) deliver(msg tea.Msg) bool {
	select {
	case b.events <- msg:
		return true
	case <-b.closed:
		return false
	}
}

type progressReporter struct {
	ctx context.Context
	box mailbox
}

func (r *progressReporter) Report(status string) error {
	if err := ContextErr(r.ctx); err != nil {
		return err
	}
	if !r.box.deliver(statusMsg{status: status}) {
		return ErrCancelled
	}
	return nil
}

// runWork calls work and converts a panic into a *PanicError.
func runWork(ctx context.Context, work WorkFunc, progress Reporter) (result any, err error) {
	defer func() {
		if v := recover(); v != nil {
			result = nil
			err = &PanicError{Value: v, Stack: debug.Stack()}
		}
	}()
	return work(ctx, progress)
}

// startWork returns a command that runs work on its own goroutine and posts
// the completion to box.
func startWork(ctx context.Context, work WorkFunc, box mailbox) tea.Cmd {
	return func() tea.Msg {
		result, err := runWork(ctx, work, &progressReporter{ctx: ctx, box: box})
		box.deliver(doneMsg{result: result, err: err})
		return nil
	}
}

// listen waits for the next worker message. Only one listen is in flight at
// a time, which keeps statuses in the order they were reported.
func listen(events <-chan tea.Msg, closed <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-events:
			return msg
		case <-closed:
			return nil
		}
	}
}
