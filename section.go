package vera

import (
	"strings"

	"github.com/rivo/uniseg"
)

// SectionType classifies a Section.
type SectionType string

const (
	SectionText      SectionType = "text"
	SectionGuideline SectionType = "guideline"
	SectionDrug      SectionType = "drug"
	SectionOther     SectionType = "other"
)

// Section is one unit of Segmenter output: plain text or one tagged span.
// ID is unique within a single result only; it is regenerated on every pass.
type Section struct {
	ID      string
	Type    SectionType
	Content string
	TagName string // Verbatim tag name, empty for text sections.
}

// Tagged reports whether s came from a tagged span.
func (s Section) Tagged() bool {
	return s.Type != SectionText
}

// Title returns the display title of a tagged section.
func (s Section) Title() string {
	if s.TagName == "" {
		return "Information"
	}
	return TagTitle(s.TagName)
}

// SectionTypeFor derives the section type from a tag name, ignoring case.
func SectionTypeFor(tagName string) SectionType {
	switch strings.ToLower(tagName) {
	case "guideline":
		return SectionGuideline
	case "drug":
		return SectionDrug
	default:
		return SectionOther
	}
}

var tagTitles = map[string]string{
	"guideline": "Guideline",
	"drug":      "Drug Information",
}

// TagTitle maps a tag name to its display title. Unknown names are returned
// with the first character upper-cased.
func TagTitle(tagName string) string {
	if title, ok := tagTitles[strings.ToLower(tagName)]; ok {
		return title
	}
	first, rest, _, _ := uniseg.FirstGraphemeClusterInString(tagName, -1)
	return strings.ToUpper(first) + rest
}

// Icon returns the glyph shown in front of a tagged section's title.
func Icon(t SectionType) string {
	switch t {
	case SectionGuideline:
		return "📋"
	case SectionDrug:
		return "💊"
	default:
		return "📄"
	}
}
