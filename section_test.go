package vera_test

import (
	"testing"

	"github.com/clinicalqa/vera"
	"github.com/stretchr/testify/assert"
)

func TestTagTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		tag  string
		want string
	}{
		{"guideline", "Guideline"},
		{"GUIDELINE", "Guideline"},
		{"drug", "Drug Information"},
		{"Drug", "Drug Information"},
		{"note", "Note"},
		{"warning_box", "Warning_box"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, vera.TagTitle(tt.tag))
		})
	}
}

func TestSectionTypeFor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, vera.SectionGuideline, vera.SectionTypeFor("Guideline"))
	assert.Equal(t, vera.SectionDrug, vera.SectionTypeFor("DRUG"))
	assert.Equal(t, vera.SectionOther, vera.SectionTypeFor("note"))
}

func TestIcon(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "📋", vera.Icon(vera.SectionGuideline))
	assert.Equal(t, "💊", vera.Icon(vera.SectionDrug))
	assert.Equal(t, "📄", vera.Icon(vera.SectionOther))
}

func TestSection_Title(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Drug Information", vera.Section{Type: vera.SectionDrug, TagName: "drug"}.Title())
	assert.Equal(t, "Information", vera.Section{Type: vera.SectionOther}.Title())
	assert.True(t, vera.Section{Type: vera.SectionOther, TagName: "note"}.Tagged())
	assert.False(t, vera.Section{Type: vera.SectionText}.Tagged())
}
