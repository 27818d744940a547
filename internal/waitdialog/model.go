package waitdialog

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
)

type state int

const (
	stateRunning state = iota
	stateCancelling
	stateDone
)

const maxWidth = 72

// cancelRequestMsg activates the cancel button from outside the event loop.
type cancelRequestMsg struct{}

// cancelEnabledMsg toggles the cancel button while the dialog is shown.
type cancelEnabledMsg struct {
	enabled bool
}

type keyMap struct {
	Cancel key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Cancel}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func defaultKeyMap() keyMap {
	return keyMap{
		Cancel: key.NewBinding(
			key.WithKeys("esc", "ctrl+c", "c"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// Model is the bubbletea model behind a shown dialog. All of its fields are
// only touched from the program's event loop.
type Model struct {
	state         state
	theme         Theme
	title         string
	label         string
	spinner       spinner.Model
	help          help.Model
	keys          keyMap
	width         int
	cancelEnabled bool
	format        LabelFormatter
	onLabel       func(string)
	log           zerolog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	work   WorkFunc
	events chan tea.Msg
	closed chan struct{}

	result  any
	err     error
	outcome Outcome
}

type modelParams struct {
	opts          options
	cancelEnabled bool
	ctx           context.Context
	cancel        context.CancelFunc
	work          WorkFunc
	events        chan tea.Msg
	closed        chan struct{}
}

func newModel(p modelParams) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = p.opts.theme.MutedStyle()

	h := help.New()
	h.Styles.ShortKey = p.opts.theme.MutedStyle()
	h.Styles.ShortDesc = p.opts.theme.MutedStyle()

	m := Model{
		state:   stateRunning,
		theme:   p.opts.theme,
		title:   p.opts.title,
		spinner: s,
		help:    h,
		keys:    defaultKeyMap(),
		format:  p.opts.format,
		onLabel: p.opts.onLabel,
		log:     p.opts.logger,
		ctx:     p.ctx,
		cancel:  p.cancel,
		work:    p.work,
		events:  p.events,
		closed:  p.closed,
	}
	m.setCancelEnabled(p.cancelEnabled)
	return m
}

// Init implements tea.Model. It starts the work.
func (m Model) Init() tea.Cmd {
	m.log.Debug().Msg("starting work")
	return tea.Batch(
		m.spinner.Tick,
		startWork(m.ctx, m.work, mailbox{events: m.events, closed: m.closed}),
		listen(m.events, m.closed),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Cancel) {
			return m.requestCancel()
		}

	case cancelRequestMsg:
		return m.requestCancel()

	case cancelEnabledMsg:
		m.setCancelEnabled(msg.enabled)

	case statusMsg:
		if m.state == stateDone {
			return m, nil
		}
		if m.state == stateCancelling {
			// A status sent just before the cancel; keep draining.
			return m, listen(m.events, m.closed)
		}
		m.label = m.format(msg.status)
		if m.onLabel != nil {
			m.onLabel(m.label)
		}
		m.log.Debug().Str("label", m.label).Msg("progress")
		return m, listen(m.events, m.closed)

	case doneMsg:
		return m.finish(msg)

	case spinner.TickMsg:
		if m.state != stateDone {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

func (m *Model) setCancelEnabled(enabled bool) {
	m.cancelEnabled = enabled
	m.keys.Cancel.SetEnabled(enabled)
}

func (m Model) requestCancel() (tea.Model, tea.Cmd) {
	if m.state != stateRunning {
		return m, nil
	}
	if !m.cancelEnabled {
		m.log.Debug().Msg("cancel ignored, button disabled")
		return m, nil
	}
	m.cancel()
	m.state = stateCancelling
	m.log.Info().Msg("cancel requested")
	return m, nil
}

func (m Model) finish(msg doneMsg) (tea.Model, tea.Cmd) {
	if m.state == stateDone {
		return m, nil
	}
	m.state = stateDone
	m.outcome = classify(msg.err)

	switch m.outcome {
	case OutcomeSucceeded:
		m.result = msg.result
		m.log.Info().Stringer("outcome", m.outcome).Msg("work finished")
	case OutcomeCancelled:
		m.err = msg.err
		m.log.Info().Stringer("outcome", m.outcome).Msg("work finished")
	default:
		m.err = msg.err
		m.log.Warn().Err(msg.err).Stringer("outcome", m.outcome).Msg("work finished")
	}
	return m, tea.Quit
}

// Label returns the label currently shown.
func (m Model) Label() string {
	return m.label
}
