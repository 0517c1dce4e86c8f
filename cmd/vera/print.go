package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/clinicalqa/vera"
	"github.com/clinicalqa/vera/markdown"
)

// printWidth is the wrap width for non-interactive output.
const printWidth = 80

// printSections writes sections in order. Tagged sections get a title line
// and indented content.
func printSections(w io.Writer, sections []vera.Section, theme vera.Theme) error {
	for i, s := range sections {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		body := markdown.Render(s.Content, printWidth-2, theme)
		if !s.Tagged() {
			if _, err := fmt.Fprintln(w, body); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintf(w, "%s %s\n", vera.Icon(s.Type), s.Title()); err != nil {
			return err
		}
		for _, line := range strings.Split(body, "\n") {
			if _, err := fmt.Fprintln(w, "  "+line); err != nil {
				return err
			}
		}
	}
	return nil
}
