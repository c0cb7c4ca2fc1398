package validate

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxPreviewRows caps --rows so a typo cannot dump a whole table to the terminal.
const MaxPreviewRows = 10000

var delimiterNames = map[string]rune{
	"comma":     ',',
	"semicolon": ';',
	"tab":       '\t',
	`\t`:        '\t',
	"pipe":      '|',
	"space":     ' ',
}

// Delimiter parses a delimiter flag value: a single character or one of the
// names comma, semicolon, tab (or \t), pipe, space.
// It rejects characters encoding/csv cannot split on.
func Delimiter(field, value string) (rune, error) {
	if value == "" {
		return 0, fmt.Errorf("%s: cannot be empty", field)
	}
	if r, ok := delimiterNames[strings.ToLower(value)]; ok {
		return r, nil
	}
	if utf8.RuneCountInString(value) != 1 {
		return 0, fmt.Errorf("%s: must be a single character, got %q", field, value)
	}
	r, _ := utf8.DecodeRuneInString(value)
	switch {
	case r == utf8.RuneError:
		return 0, fmt.Errorf("%s: must be valid UTF-8, got %q", field, value)
	case r == '"':
		return 0, fmt.Errorf("%s: the quote character cannot be a delimiter", field)
	case r == '\r' || r == '\n':
		return 0, fmt.Errorf("%s: line breaks cannot be delimiters", field)
	}
	return r, nil
}

// DelimiterName renders a delimiter for display, naming the invisible ones.
func DelimiterName(r rune) string {
	switch r {
	case '\t':
		return "tab"
	case ' ':
		return "space"
	}
	return string(r)
}

// PreviewRows validates the number of records shown after a conversion.
func PreviewRows(n int) error {
	if n < 0 {
		return fmt.Errorf("rows: must be at least 0, got %d", n)
	}
	if n > MaxPreviewRows {
		return fmt.Errorf("rows: must be at most %d, got %d", MaxPreviewRows, n)
	}
	return nil
}

// NonEmpty validates that a required string field is not empty.
func NonEmpty(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s: cannot be empty", field)
	}
	return nil
}
