package vera

// Theme maps semantic roles to ANSI color indices (0-15). The terminal's own
// palette supplies the RGB values.
type Theme struct {
	Question   int // Submitted question accent
	Guideline  int // Guideline section header
	Drug       int // Drug information section header
	Other      int // Sections with an unrecognised tag
	StepActive int // Search step in progress
	StepDone   int // Completed search step
	Error      int // Error messages
	Muted      int // Status bar, placeholders, pending steps
	CodeBg     int // Code block background
	Accent     int // Headings, links
}

// DefaultTheme returns the default ANSI color mapping.
func DefaultTheme() Theme {
	return Theme{
		Question:   4,
		Guideline:  6,
		Drug:       5,
		Other:      3,
		StepActive: 3,
		StepDone:   2,
		Error:      1,
		Muted:      8,
		CodeBg:     0,
		Accent:     5,
	}
}

// SectionColor returns the header color for sections of type t.
func (th Theme) SectionColor(t SectionType) int {
	switch t {
	case SectionGuideline:
		return th.Guideline
	case SectionDrug:
		return th.Drug
	default:
		return th.Other
	}
}
