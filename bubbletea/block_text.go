package bubbletea

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/clinicalqa/vera"
	"github.com/clinicalqa/vera/markdown"
)

var _ MessageBlock = (*TextBlock)(nil)

// TextBlock renders an untagged section as markdown. Rendering is cached
// per width since sections are replaced rather than mutated.
type TextBlock struct {
	content  string
	theme    vera.Theme
	rendered map[int]string
}

// NewTextBlock creates a TextBlock for section content.
func NewTextBlock(content string, theme vera.Theme) *TextBlock {
	return &TextBlock{content: content, theme: theme, rendered: make(map[int]string)}
}

// Content returns the raw markdown.
func (b *TextBlock) Content() string {
	return b.content
}

func (b *TextBlock) Update(msg tea.Msg) (MessageBlock, tea.Cmd) {
	return b, nil
}

func (b *TextBlock) View(width int) string {
	if out, ok := b.rendered[width]; ok {
		return out
	}
	out := markdown.Render(b.content, width, b.theme)
	b.rendered[width] = out
	return out
}
