package bubbletea

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/clinicalqa/vera"
	"github.com/clinicalqa/vera/markdown"
	"github.com/rivo/uniseg"
)

var _ MessageBlock = (*ProgressBlock)(nil)

const (
	pendingMarker   = "●"
	completedMarker = "✓"
)

// ProgressBlock renders the latest progress-step snapshot of a cycle.
// Each snapshot replaces the previous one.
type ProgressBlock struct {
	steps  []vera.ProgressStep
	frame  string
	styles Styles
}

// NewProgressBlock creates an empty ProgressBlock.
func NewProgressBlock(styles Styles) *ProgressBlock {
	return &ProgressBlock{frame: "◐", styles: styles}
}

// SetSteps replaces the displayed steps.
func (b *ProgressBlock) SetSteps(steps []vera.ProgressStep) {
	b.steps = steps
}

// Steps returns the displayed steps.
func (b *ProgressBlock) Steps() []vera.ProgressStep {
	return b.steps
}

// SetFrame sets the glyph drawn in front of active steps.
func (b *ProgressBlock) SetFrame(frame string) {
	if frame = strings.TrimSpace(frame); frame != "" {
		b.frame = frame
	}
}

func (b *ProgressBlock) Update(msg tea.Msg) (MessageBlock, tea.Cmd) {
	return b, nil
}

func (b *ProgressBlock) View(width int) string {
	if len(b.steps) == 0 {
		return ""
	}
	lines := make([]string, 0, len(b.steps))
	for _, step := range b.steps {
		marker, style := b.marker(step.State())
		indent := uniseg.StringWidth(marker) + 1
		textWidth := max(width-indent, 1)
		text := lipgloss.NewStyle().Width(textWidth).Render(markdown.Sanitize(step.Text))
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, style.Render(marker+" "), style.Render(text)))
		if step.ExtraInfo != "" {
			extra := lipgloss.NewStyle().Width(textWidth).Render(markdown.Sanitize(step.ExtraInfo))
			lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, strings.Repeat(" ", indent), b.styles.Muted.Render(extra)))
		}
	}
	return strings.Join(lines, "\n")
}

func (b *ProgressBlock) marker(state vera.StepState) (string, lipgloss.Style) {
	switch state {
	case vera.StepActive:
		return b.frame, b.styles.StepActive
	case vera.StepCompleted:
		return completedMarker, b.styles.StepDone
	default:
		return pendingMarker, b.styles.Muted
	}
}

func (b *ProgressBlock) hasActive() bool {
	for _, step := range b.steps {
		if step.State() == vera.StepActive {
			return true
		}
	}
	return false
}
