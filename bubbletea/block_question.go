package bubbletea

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var _ MessageBlock = (*QuestionBlock)(nil)

// QuestionBlock renders the question that started an exchange.
type QuestionBlock struct {
	question string
	styles   Styles
}

// NewQuestionBlock creates a QuestionBlock.
func NewQuestionBlock(question string, styles Styles) *QuestionBlock {
	return &QuestionBlock{question: question, styles: styles}
}

func (b *QuestionBlock) Update(msg tea.Msg) (MessageBlock, tea.Cmd) {
	return b, nil
}

func (b *QuestionBlock) View(width int) string {
	prompt := b.styles.Question.Render("> ")
	body := lipgloss.NewStyle().Width(max(width-2, 1)).Render(b.question)
	return lipgloss.JoinHorizontal(lipgloss.Top, prompt, b.styles.Question.Render(body))
}
