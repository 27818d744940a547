package waitdialog

import (
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
)

// LabelFormatter maps a raw status string to the text shown in the dialog.
// It is called on the event loop and should not block.
type LabelFormatter func(status string) string

// DefaultLabel is the formatter used when none is given.
func DefaultLabel(status string) string {
	return fmt.Sprintf("Currently Processing %s. Please Wait.", status)
}

// StatusPlaceholder is replaced by the raw status in TemplateLabel templates.
const StatusPlaceholder = "{status}"

// TemplateLabel returns a formatter that substitutes the status into tmpl.
// An empty template yields DefaultLabel; a template without the placeholder
// gets the status appended.
func TemplateLabel(tmpl string) LabelFormatter {
	if tmpl == "" {
		return DefaultLabel
	}
	if !strings.Contains(tmpl, StatusPlaceholder) {
		return func(status string) string {
			return tmpl + " " + status
		}
	}
	return func(status string) string {
		return strings.ReplaceAll(tmpl, StatusPlaceholder, status)
	}
}

const defaultTitle = "Please Wait"

type options struct {
	format        LabelFormatter
	title         string
	theme         Theme
	cancelEnabled bool
	logger        zerolog.Logger
	onLabel       func(string)

	customIO bool
	in       io.Reader
	out      io.Writer
}

func defaultOptions() options {
	return options{
		format:        DefaultLabel,
		title:         defaultTitle,
		theme:         DefaultTheme(),
		cancelEnabled: true,
		logger:        zerolog.Nop(),
	}
}

// Option configures a Dialog.
type Option func(*options)

// WithLabelFormatter sets the label formatter. A nil formatter keeps the default.
func WithLabelFormatter(f LabelFormatter) Option {
	return func(o *options) {
		if f != nil {
			o.format = f
		}
	}
}

// WithTitle sets the dialog title.
func WithTitle(title string) Option {
	return func(o *options) {
		if title != "" {
			o.title = title
		}
	}
}

// WithTheme sets the dialog theme.
func WithTheme(t Theme) Option {
	return func(o *options) {
		o.theme = t
	}
}

// WithCancelEnabled sets the initial state of the cancel button.
func WithCancelEnabled(enabled bool) Option {
	return func(o *options) {
		o.cancelEnabled = enabled
	}
}

// WithLogger sets the logger used for lifecycle events.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithLabelHook registers fn to be called on the event loop with every label
// the dialog shows, in order. fn runs inside the event loop and must not call
// back into the Dialog.
func WithLabelHook(fn func(label string)) Option {
	return func(o *options) {
		o.onLabel = fn
	}
}

// WithIO makes the dialog read keys from in and render to out instead of
// /dev/tty. A nil in disables keyboard input.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(o *options) {
		o.customIO = true
		o.in = in
		o.out = out
	}
}
