// Package markdown renders the plain-text sections of an answer to
// ANSI-styled terminal output, using goldmark for parsing and lipgloss for
// styling.
package markdown

import "github.com/clinicalqa/vera"

const defaultWidth = 80

// Render parses markdown source and returns styled terminal output wrapped
// to width. Code blocks and tables keep their layout. A width of zero or
// less falls back to 80 columns. The source is passed through Sanitize first.
func Render(source string, width int, theme vera.Theme) string {
	if source == "" {
		return ""
	}
	if width <= 0 {
		width = defaultWidth
	}
	return newRenderer(theme).render([]byte(Sanitize(source)), width)
}
