package tokenize

import (
	"iter"
	"strings"
)

// Span is a piece of an encoded furigana string. Bracketed spans include the
// surrounding brackets. Text is always a substring of the scanned input.
type Span struct {
	Text      string
	Offset    int
	Bracketed bool
	// Unterminated is set on the trailing plain span when it still holds a
	// '[' that was never closed.
	Unterminated bool
}

// End returns the byte offset right after the span.
func (s Span) End() int { return s.Offset + len(s.Text) }

// Scanner splits an encoded furigana string into plain and bracketed spans.
// The zero value scans the empty string. A Scanner can't be rewound; create a
// new one to scan again.
type Scanner struct {
	src     string
	pos     int
	pending Span
	hasPend bool
}

// NewScanner creates a scanner over s.
func NewScanner(s string) Scanner {
	return Scanner{src: s}
}

// Next returns the next span. The second return value is false once the input
// is exhausted.
//
// A block opens at the last '[' seen before a ']'. A ']' without an open
// block is plain text, so `[[1|],[2|]]` yields `[`, `[1|]`, `,`, `[2|]`, `]`.
func (s *Scanner) Next() (Span, bool) {
	if s.hasPend {
		s.hasPend = false
		return s.pending, true
	}
	if s.pos >= len(s.src) {
		return Span{}, false
	}

	start, open := s.pos, -1
	for i := start; i < len(s.src); i++ {
		switch s.src[i] {
		case '[':
			open = i
		case ']':
			if open < 0 {
				continue
			}
			block := Span{Text: s.src[open : i+1], Offset: open, Bracketed: true}
			s.pos = i + 1
			if start < open {
				s.pending, s.hasPend = block, true
				return Span{Text: s.src[start:open], Offset: start}, true
			}
			return block, true
		}
	}

	s.pos = len(s.src)
	return Span{Text: s.src[start:], Offset: start, Unterminated: open >= 0}, true
}

// Spans yields all spans of s in order.
func Spans(s string) iter.Seq[Span] {
	return func(yield func(Span) bool) {
		sc := NewScanner(s)
		for {
			sp, ok := sc.Next()
			if !ok || !yield(sp) {
				return
			}
		}
	}
}

// Split returns all spans of s.
func Split(s string) []Span {
	var out []Span
	for sp := range Spans(s) {
		out = append(out, sp)
	}
	return out
}

// Cut strips the brackets of a block and cuts it at the first field separator.
// hasSep is false if the block has no '|' at all.
func Cut(block string) (literal, readings string, hasSep bool) {
	if len(block) >= 2 && block[0] == '[' && block[len(block)-1] == ']' {
		block = block[1 : len(block)-1]
	}
	return strings.Cut(block, "|")
}

// NextField returns the first field of readings and the remainder after its
// separator. more is false when field is the last one.
func NextField(readings string) (field, tail string, more bool) {
	return strings.Cut(readings, "|")
}

// FieldCount returns the number of reading fields of a cut block.
func FieldCount(readings string, hasSep bool) int {
	if !hasSep {
		return 0
	}
	return strings.Count(readings, "|") + 1
}
