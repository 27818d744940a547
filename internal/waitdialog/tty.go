package waitdialog

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

const ttyPath = "/dev/tty"

// ttySession is the controlling terminal borrowed for one dialog run. The
// dialog draws there, never on stdout, which belongs to the caller's result.
type ttySession struct {
	out   *os.File
	owned bool
	fd    int
	saved *term.State
}

// openSession picks the dialog's output: the controlling terminal when there
// is one, stderr otherwise. The raw mode state of the terminal is captured so
// it can be put back even if the program dies without restoring it.
func openSession() *ttySession {
	s := &ttySession{out: os.Stderr, fd: -1}
	if f, err := os.OpenFile(ttyPath, os.O_RDWR, 0); err == nil {
		s.out, s.owned, s.fd = f, true, int(f.Fd())
	} else if term.IsTerminal(int(os.Stderr.Fd())) {
		s.fd = int(os.Stderr.Fd())
	}
	if s.fd >= 0 {
		if st, err := term.GetState(s.fd); err == nil {
			s.saved = st
		}
	}
	return s
}

// bind returns theme drawing with the color profile of the session output.
func (s *ttySession) bind(theme Theme) Theme {
	if !s.owned {
		return theme.WithRenderer(lipgloss.DefaultRenderer())
	}
	return theme.WithRenderer(lipgloss.NewRenderer(s.out))
}

func (s *ttySession) close() {
	if s.saved != nil {
		_ = term.Restore(s.fd, s.saved)
	}
	if s.owned {
		_ = s.out.Close()
	}
}

// programOptions returns the bubbletea options for a dialog run, the theme
// bound to the chosen output, and a cleanup to call once the program exits.
//
// bubbletea's signal handler is off: a SIGTERM or SIGINT turned into a plain
// quit would close the dialog without an outcome. Hosts route signals to
// Dialog.RequestCancel instead, and a program that still quits early is
// recorded as cancelled by ShowModal.
func (o options) programOptions() ([]tea.ProgramOption, Theme, func()) {
	if o.customIO {
		return []tea.ProgramOption{
			tea.WithInput(o.in),
			tea.WithOutput(o.out),
			tea.WithoutSignalHandler(),
		}, o.theme, func() {}
	}

	s := openSession()
	return []tea.ProgramOption{
		tea.WithOutput(s.out),
		tea.WithInputTTY(),
		tea.WithoutSignalHandler(),
	}, s.bind(o.theme), s.close
}
