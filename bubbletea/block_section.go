package bubbletea

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/clinicalqa/vera"
	"github.com/clinicalqa/vera/markdown"
	"github.com/mattn/go-runewidth"
)

var _ MessageBlock = (*SectionBlock)(nil)

// SectionBlock renders a tagged section with a collapsible toggle.
type SectionBlock struct {
	section   vera.Section
	collapsed bool
	focused   bool
	theme     vera.Theme
	styles    Styles
}

// NewSectionBlock creates a SectionBlock. Sections of the answer being
// streamed start expanded; sections restored from history start collapsed.
func NewSectionBlock(section vera.Section, collapsed bool, theme vera.Theme, styles Styles) *SectionBlock {
	return &SectionBlock{section: section, collapsed: collapsed, theme: theme, styles: styles}
}

// Section returns the rendered section.
func (b *SectionBlock) Section() vera.Section {
	return b.section
}

// Collapsed reports whether the content is hidden.
func (b *SectionBlock) Collapsed() bool {
	return b.collapsed
}

func (b *SectionBlock) Update(msg tea.Msg) (MessageBlock, tea.Cmd) {
	switch msg := msg.(type) {
	case ToggleMsg:
		b.collapsed = !b.collapsed
	case FocusMsg:
		b.focused = msg.Focused
	}
	return b, nil
}

func (b *SectionBlock) View(width int) string {
	indicator := "▶"
	if !b.collapsed {
		indicator = "▼"
	}
	title := indicator + " " + vera.Icon(b.section.Type) + " " + b.section.Title()
	if width > 0 {
		title = runewidth.Truncate(title, width, "…")
	}
	header := b.styles.Section(b.section.Type).Render(title)
	if b.focused {
		header = b.styles.Focused.Render(header)
	}
	if b.collapsed {
		return header
	}
	body := markdown.Render(b.section.Content, max(width-2, 1), b.theme)
	gutter := lipgloss.NewStyle().
		Border(lipgloss.Border{Left: "│"}, false, false, false, true).
		BorderForeground(ansiColor(b.theme.SectionColor(b.section.Type))).
		PaddingLeft(1)
	return header + "\n" + gutter.Render(body)
}
