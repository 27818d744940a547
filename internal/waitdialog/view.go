package waitdialog

import (
	"strings"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.state == stateDone {
		return ""
	}

	inner := 0
	if m.width > 0 {
		// border and padding take two columns each side
		inner = min(m.width, maxWidth) - 4
	}

	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(m.theme.TitleStyle().Render(m.title))
	b.WriteString("\n\n")

	label := m.theme.LabelStyle()
	if inner > 0 {
		label = label.Width(inner)
	}
	b.WriteString(label.Render(m.label))
	b.WriteString("\n\n")

	b.WriteString(m.viewButton())
	if h := m.help.View(m.keys); h != "" {
		b.WriteString("  ")
		b.WriteString(h)
	}

	frame := m.theme.BorderStyle()
	if inner > 0 {
		frame = frame.Width(inner + 2)
	}
	return frame.Render(b.String()) + "\n"
}

func (m Model) viewButton() string {
	switch {
	case m.state == stateCancelling:
		return m.theme.MutedStyle().Italic(true).Render("Cancelling...")
	case !m.cancelEnabled:
		return m.theme.ButtonStyle(false).Render("Cancel")
	default:
		return m.theme.ButtonStyle(true).Render("Cancel")
	}
}
