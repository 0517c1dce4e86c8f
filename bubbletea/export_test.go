package bubbletea

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Throttle exports throttle for testing.
type Throttle = throttle

// FlushMsg exports flushMsg for testing.
type FlushMsg = flushMsg

// NewThrottle exports newThrottle for testing.
func NewThrottle(interval time.Duration) *Throttle {
	return newThrottle(interval)
}

// Admit exports throttle.admit for testing.
func Admit(t *Throttle) (bool, tea.Cmd) {
	return t.admit()
}

// Flushed exports throttle.flushed for testing.
func Flushed(t *Throttle) {
	t.flushed()
}

// RenderContent exports renderContent for testing.
func RenderContent(m Model) string {
	return m.renderContent()
}

// Blocks returns the model's transcript blocks.
func Blocks(m Model) []MessageBlock {
	return m.blocks
}

// BlockFocus returns the index of the focused block.
func BlockFocus(m Model) int {
	return m.blockFocus
}
