package bubbletea

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/clinicalqa/vera/markdown"
)

var _ MessageBlock = (*ErrorBlock)(nil)

// ErrorBlock renders the failure message of an exchange.
type ErrorBlock struct {
	message string
	styles  Styles
}

// NewErrorBlock creates an ErrorBlock.
func NewErrorBlock(message string, styles Styles) *ErrorBlock {
	return &ErrorBlock{message: message, styles: styles}
}

func (b *ErrorBlock) Update(msg tea.Msg) (MessageBlock, tea.Cmd) {
	return b, nil
}

func (b *ErrorBlock) View(width int) string {
	return b.styles.Error.Render(lipgloss.NewStyle().Width(width).Render("Error: " + markdown.Sanitize(b.message)))
}

var _ MessageBlock = (*NoticeBlock)(nil)

// NoticeBlock renders a muted one-line status, such as a cancelled answer.
type NoticeBlock struct {
	text   string
	styles Styles
}

// NewNoticeBlock creates a NoticeBlock.
func NewNoticeBlock(text string, styles Styles) *NoticeBlock {
	return &NoticeBlock{text: text, styles: styles}
}

func (b *NoticeBlock) Update(msg tea.Msg) (MessageBlock, tea.Cmd) {
	return b, nil
}

func (b *NoticeBlock) View(width int) string {
	return b.styles.Muted.Render(lipgloss.NewStyle().Width(width).Render(b.text))
}
