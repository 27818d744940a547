// Package waitdialog implements a modal "please wait" dialog for terminal
// programs. The dialog runs one operation on a background goroutine, shows the
// status text it reports and lets the user request cooperative cancellation.
package waitdialog

import (
	"context"
	"errors"
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// Dialog is a modal wait dialog owning a single background operation.
// A Dialog can be shown once.
type Dialog struct {
	work WorkFunc
	opts options

	mu            sync.Mutex
	shown         bool
	cancelEnabled bool
	program       *tea.Program

	result  any
	err     error
	outcome Outcome
}

// New creates a dialog that will run work when shown.
func New(work WorkFunc, opts ...Option) *Dialog {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Dialog{
		work:          work,
		opts:          o,
		cancelEnabled: o.cancelEnabled,
	}
}

// ShowModal shows the dialog, starts the work and blocks until the dialog
// closes. It returns ResultOK if the work succeeded and ResultCancel
// otherwise; Err tells why.
//
// The returned error is only set when the dialog itself could not run (for
// example the terminal failed) or when it was shown before. Cancelling ctx
// cancels the work the same way the cancel button does.
func (d *Dialog) ShowModal(ctx context.Context) (DialogResult, error) {
	d.mu.Lock()
	if d.shown {
		d.mu.Unlock()
		return ResultCancel, ErrAlreadyShown
	}
	d.shown = true

	workCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan tea.Msg)
	closed := make(chan struct{})
	defer close(closed)

	progOpts, theme, cleanup := d.opts.programOptions()
	defer cleanup()

	o := d.opts
	o.theme = theme
	m := newModel(modelParams{
		opts:          o,
		cancelEnabled: d.cancelEnabled,
		ctx:           workCtx,
		cancel:        cancel,
		work:          d.work,
		events:        events,
		closed:        closed,
	})
	p := tea.NewProgram(m, progOpts...)
	d.program = p
	d.mu.Unlock()

	final, runErr := p.Run()

	d.mu.Lock()
	defer d.mu.Unlock()
	d.program = nil

	if runErr != nil {
		if errors.Is(runErr, tea.ErrInterrupted) {
			d.err = fmt.Errorf("%w: %w", ErrCancelled, runErr)
		} else {
			d.err = fmt.Errorf("wait dialog: %w", runErr)
		}
		d.outcome = classify(d.err)
		d.opts.logger.Error().Err(runErr).Msg("dialog terminated")
		return ResultCancel, d.err
	}

	fm, ok := final.(Model)
	if !ok {
		d.err = fmt.Errorf("unexpected model type: %T", final)
		d.outcome = OutcomeFailed
		return ResultCancel, d.err
	}
	if fm.state != stateDone {
		// The program quit before the work reported back.
		cancel()
		d.err = ErrCancelled
		d.outcome = OutcomeCancelled
		d.opts.logger.Info().Msg("dialog closed before work finished")
		return ResultCancel, nil
	}
	d.result = fm.result
	d.err = fm.err
	d.outcome = fm.outcome
	return d.outcome.Result(), nil
}

// Result returns the value returned by the work. It is nil unless the dialog
// closed with ResultOK.
func (d *Dialog) Result() any {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.result
}

// Err returns the error the work ended with, or nil if it succeeded or has
// not finished.
func (d *Dialog) Err() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.err
}

// Outcome returns how the run ended.
func (d *Dialog) Outcome() Outcome {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.outcome
}

// DialogResult returns the close code, or ResultNone before the dialog closed.
func (d *Dialog) DialogResult() DialogResult {
	return d.Outcome().Result()
}

// CancelEnabled reports whether the cancel button is interactive.
func (d *Dialog) CancelEnabled() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cancelEnabled
}

// SetCancelEnabled enables or disables the cancel button. It may be called
// while the dialog is shown, from any goroutine.
func (d *Dialog) SetCancelEnabled(enabled bool) {
	d.mu.Lock()
	d.cancelEnabled = enabled
	p := d.program
	d.mu.Unlock()

	if p != nil {
		p.Send(cancelEnabledMsg{enabled: enabled})
	}
}

// RequestCancel activates the cancel button. It has no effect when the button
// is disabled or the dialog is not shown.
func (d *Dialog) RequestCancel() {
	d.mu.Lock()
	p := d.program
	d.mu.Unlock()

	if p != nil {
		p.Send(cancelRequestMsg{})
	}
}

// Wait shows a dialog running work and returns the work's result and error.
func Wait(ctx context.Context, work WorkFunc, opts ...Option) (any, error) {
	d := New(work, opts...)
	if _, err := d.ShowModal(ctx); err != nil {
		return nil, err
	}
	return d.Result(), d.Err()
}
