package waitdialog

import "github.com/charmbracelet/lipgloss"

// Theme defines the visual appearance of the dialog.
type Theme struct {
	TitleFg  string
	TextFg   string
	MutedFg  string
	ButtonFg string
	ButtonBg string
	Border   string
	BorderFg string
	renderer *lipgloss.Renderer
}

// WithRenderer returns a copy of the theme with the given renderer set.
// The renderer decides which output the styles detect colors on, so the dialog
// keeps its colors when stdout is captured by the caller.
func (t Theme) WithRenderer(r *lipgloss.Renderer) Theme {
	t.renderer = r
	return t
}

func (t Theme) newStyle() lipgloss.Style {
	if t.renderer != nil {
		return t.renderer.NewStyle()
	}
	return lipgloss.NewStyle()
}

// DefaultTheme returns the default dialog theme.
func DefaultTheme() Theme {
	return Theme{
		TitleFg:  "205",
		TextFg:   "252",
		MutedFg:  "241",
		ButtonFg: "230",
		ButtonBg: "62",
		Border:   "rounded",
		BorderFg: "240",
	}
}

// TitleStyle returns the style for the dialog title.
func (t Theme) TitleStyle() lipgloss.Style {
	return t.newStyle().Foreground(lipgloss.Color(t.TitleFg)).Bold(true)
}

// LabelStyle returns the style for the progress label.
func (t Theme) LabelStyle() lipgloss.Style {
	return t.newStyle().Foreground(lipgloss.Color(t.TextFg))
}

// MutedStyle returns the style for secondary text like the spinner and help.
func (t Theme) MutedStyle() lipgloss.Style {
	return t.newStyle().Foreground(lipgloss.Color(t.MutedFg))
}

// ButtonStyle returns the style for the cancel button. A disabled button is
// rendered faint without a background.
func (t Theme) ButtonStyle(enabled bool) lipgloss.Style {
	if !enabled {
		return t.MutedStyle().Faint(true).Padding(0, 1)
	}
	return t.newStyle().
		Foreground(lipgloss.Color(t.ButtonFg)).
		Background(lipgloss.Color(t.ButtonBg)).
		Padding(0, 1)
}

// BorderStyle returns the dialog frame style based on the theme's border type.
func (t Theme) BorderStyle() lipgloss.Style {
	return t.newStyle().
		Border(t.borderType()).
		BorderForeground(lipgloss.Color(t.BorderFg)).
		Padding(0, 1)
}

func (t Theme) borderType() lipgloss.Border {
	switch t.Border {
	case "normal":
		return lipgloss.NormalBorder()
	case "thick":
		return lipgloss.ThickBorder()
	case "double":
		return lipgloss.DoubleBorder()
	case "hidden":
		return lipgloss.HiddenBorder()
	default:
		return lipgloss.RoundedBorder()
	}
}
