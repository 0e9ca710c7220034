package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/mgomes/escopo/escopo"
)

var (
	accentColor    = lipgloss.Color("#3B82F6")
	successColor   = lipgloss.Color("#10B981")
	errorColor     = lipgloss.Color("#EF4444")
	mutedColor     = lipgloss.Color("#6B7280")
	highlightColor = lipgloss.Color("#F59E0B")

	promptStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	resultStyle = lipgloss.NewStyle().
			Foreground(successColor)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	mutedStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	bannerStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	headerStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true).
			Padding(0, 1)

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(highlightColor)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	borderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accentColor).
			Padding(0, 1)
)

func eventStyle(kind escopo.EventKind) lipgloss.Style {
	switch kind {
	case escopo.EventBlockEntered, escopo.EventBlockExited:
		return bannerStyle
	case escopo.EventDiagnostic:
		return errorStyle
	default:
		return resultStyle
	}
}

// styledSink writes the same layout as escopo.WriterSink with each event
// colored by kind.
type styledSink struct {
	w   io.Writer
	err error
}

func newStyledSink(w io.Writer) *styledSink {
	return &styledSink{w: w}
}

func (s *styledSink) Emit(ev escopo.Event) {
	if s.err != nil {
		return
	}
	text := eventStyle(ev.Kind).Render(ev.Text)
	if ev.Banner() {
		_, s.err = fmt.Fprintf(s.w, "\n%s\n", text)
		return
	}
	_, s.err = fmt.Fprintln(s.w, text)
}

func (s *styledSink) Err() error {
	return s.err
}
