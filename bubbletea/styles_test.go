package bubbletea_test

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/clinicalqa/vera"
	bt "github.com/clinicalqa/vera/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestNewStyles(t *testing.T) {
	t.Parallel()

	styles := bt.NewStyles(vera.DefaultTheme())

	assert.Equal(t, lipgloss.Color("4"), styles.Question.GetForeground())
	assert.True(t, styles.Question.GetBold())

	assert.Equal(t, lipgloss.Color("6"), styles.Guideline.GetForeground())
	assert.Equal(t, lipgloss.Color("5"), styles.Drug.GetForeground())
	assert.Equal(t, lipgloss.Color("3"), styles.Other.GetForeground())

	assert.Equal(t, lipgloss.Color("3"), styles.StepActive.GetForeground())
	assert.Equal(t, lipgloss.Color("2"), styles.StepDone.GetForeground())
	assert.Equal(t, lipgloss.Color("1"), styles.Error.GetForeground())

	assert.Equal(t, lipgloss.Color("8"), styles.Muted.GetForeground())
	assert.True(t, styles.Muted.GetFaint())

	assert.Equal(t, lipgloss.Color("5"), styles.Accent.GetForeground())
	assert.True(t, styles.Accent.GetBold())
}

func TestStyles_Section(t *testing.T) {
	t.Parallel()

	styles := bt.NewStyles(vera.DefaultTheme())

	assert.Equal(t, styles.Guideline, styles.Section(vera.SectionGuideline))
	assert.Equal(t, styles.Drug, styles.Section(vera.SectionDrug))
	assert.Equal(t, styles.Other, styles.Section(vera.SectionOther))
}

func TestNewStylesNegativeIndexYieldsNoColor(t *testing.T) {
	t.Parallel()

	styles := bt.NewStyles(vera.Theme{Question: -1})

	assert.Equal(t, lipgloss.NoColor{}, styles.Question.GetForeground())
}
