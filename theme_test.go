package vera_test

import (
	"testing"

	"github.com/clinicalqa/vera"
	"github.com/stretchr/testify/assert"
)

func TestDefaultTheme(t *testing.T) {
	t.Parallel()

	theme := vera.DefaultTheme()

	assert.Equal(t, 4, theme.Question)
	assert.Equal(t, 6, theme.Guideline)
	assert.Equal(t, 5, theme.Drug)
	assert.Equal(t, 3, theme.Other)
	assert.Equal(t, 1, theme.Error)
	assert.Equal(t, 8, theme.Muted)
	assert.Equal(t, 0, theme.CodeBg)
	assert.Equal(t, 5, theme.Accent)
}

func TestTheme_SectionColor(t *testing.T) {
	t.Parallel()

	theme := vera.DefaultTheme()

	assert.Equal(t, theme.Guideline, theme.SectionColor(vera.SectionGuideline))
	assert.Equal(t, theme.Drug, theme.SectionColor(vera.SectionDrug))
	assert.Equal(t, theme.Other, theme.SectionColor(vera.SectionOther))
	assert.Equal(t, theme.Other, theme.SectionColor(vera.SectionText))
}
