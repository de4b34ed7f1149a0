package rx

import "unicode/utf8"

// Input abstracts the source of runes to be matched.
type Input interface {
	// Step returns the rune at pos and its width in bytes. It returns
	// (0, 0) at or beyond the end of input.
	Step(pos int) (rune, int)
	// Len returns the input length in bytes.
	Len() int
}

// StringInput implements Input over a string.
type StringInput struct {
	str string
}

func NewStringInput(s string) *StringInput {
	return &StringInput{str: s}
}

func (s *StringInput) Step(pos int) (rune, int) {
	if pos >= len(s.str) {
		return 0, 0
	}
	r, w := utf8.DecodeRuneInString(s.str[pos:])
	return r, w
}

func (s *StringInput) Len() int { return len(s.str) }
