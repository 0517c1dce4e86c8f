package vera

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxQueryLength is the longest question, in runes, that ValidateQuery accepts.
const MaxQueryLength = 500

// ValidateQuery trims q and checks it is a submittable question. It returns
// the trimmed question.
func ValidateQuery(q string) (string, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return "", fmt.Errorf("question is empty: %w", ErrValidation)
	}
	if n := utf8.RuneCountInString(q); n > MaxQueryLength {
		return "", fmt.Errorf("question is %d characters, limit is %d: %w", n, MaxQueryLength, ErrValidation)
	}
	return q, nil
}
