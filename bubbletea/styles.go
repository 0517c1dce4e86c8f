package bubbletea

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/clinicalqa/vera"
)

// Styles maps a Theme to lipgloss styles for TUI rendering.
type Styles struct {
	Question   lipgloss.Style
	Guideline  lipgloss.Style
	Drug       lipgloss.Style
	Other      lipgloss.Style
	StepActive lipgloss.Style
	StepDone   lipgloss.Style
	Error      lipgloss.Style
	Muted      lipgloss.Style
	Accent     lipgloss.Style
	Focused    lipgloss.Style
}

// NewStyles creates Styles from a Theme.
func NewStyles(t vera.Theme) Styles {
	return Styles{
		Question:   lipgloss.NewStyle().Foreground(ansiColor(t.Question)).Bold(true),
		Guideline:  lipgloss.NewStyle().Foreground(ansiColor(t.Guideline)).Bold(true),
		Drug:       lipgloss.NewStyle().Foreground(ansiColor(t.Drug)).Bold(true),
		Other:      lipgloss.NewStyle().Foreground(ansiColor(t.Other)).Bold(true),
		StepActive: lipgloss.NewStyle().Foreground(ansiColor(t.StepActive)),
		StepDone:   lipgloss.NewStyle().Foreground(ansiColor(t.StepDone)),
		Error:      lipgloss.NewStyle().Foreground(ansiColor(t.Error)),
		Muted:      lipgloss.NewStyle().Foreground(ansiColor(t.Muted)).Faint(true),
		Accent:     lipgloss.NewStyle().Foreground(ansiColor(t.Accent)).Bold(true),
		Focused:    lipgloss.NewStyle().Reverse(true),
	}
}

// Section returns the header style for sections of type t.
func (s Styles) Section(t vera.SectionType) lipgloss.Style {
	switch t {
	case vera.SectionGuideline:
		return s.Guideline
	case vera.SectionDrug:
		return s.Drug
	default:
		return s.Other
	}
}

func ansiColor(index int) lipgloss.TerminalColor {
	if index < 0 {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(strconv.Itoa(index))
}
