package ui

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Styles holds the lipgloss styles used for one writer
type Styles struct {
	Error    lipgloss.Style
	Warning  lipgloss.Style
	Header   lipgloss.Style
	Hunk     lipgloss.Style
	Added    lipgloss.Style
	Removed  lipgloss.Style
	Missing  lipgloss.Style
	Modified lipgloss.Style
	Muted    lipgloss.Style
}

// NewStyles builds styles bound to w. FormatText yields styles that render
// text unchanged.
func NewStyles(w io.Writer, format Format) Styles {
	r := lipgloss.NewRenderer(w)
	if format.Resolve(w) == FormatTerminal {
		r.SetColorProfile(termenv.ANSI256)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}
	return Styles{
		Error:    r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Warning:  r.NewStyle().Foreground(lipgloss.Color("11")),
		Header:   r.NewStyle().Bold(true),
		Hunk:     r.NewStyle().Foreground(lipgloss.Color("6")),
		Added:    r.NewStyle().Foreground(lipgloss.Color("2")),
		Removed:  r.NewStyle().Foreground(lipgloss.Color("1")),
		Missing:  r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		Modified: r.NewStyle().Foreground(lipgloss.Color("3")),
		Muted:    r.NewStyle().Foreground(lipgloss.Color("8")),
	}
}
