package parse

import (
	"iter"
	"strings"
	"unicode/utf8"

	"furigana/model"
	"furigana/tokenize"
)

// Mode selects how malformed blocks are handled.
type Mode uint8

const (
	// ModeStrict rejects malformed input.
	ModeStrict Mode = iota
	// ModeLenient never fails and degrades malformed blocks instead.
	ModeLenient
)

func (m Mode) String() string {
	if m == ModeLenient {
		return "lenient"
	}
	return "strict"
}

// Segment interprets a single span.
//
// In lenient mode malformed blocks degrade as follows: a block with an empty
// literal is kept as plain text, a block without '|' becomes a kanji segment
// with an empty reading and a block whose reading count matches neither 1 nor
// the literal count keeps its fields as given. Such a segment is not detailed,
// so every consumer treats its joined readings as covering the whole literal.
func Segment(sp tokenize.Span, mode Mode) (model.Segment, error) {
	if !sp.Bracketed {
		if sp.Unterminated && mode == ModeStrict {
			at := strings.LastIndexByte(sp.Text, '[')
			return model.Segment{}, &Error{Kind: ErrUnterminatedBlock, Offset: sp.Offset + at, Block: sp.Text[at:]}
		}
		return model.Kana(sp.Text), nil
	}

	literal, rest, hasSep := tokenize.Cut(sp.Text)
	if literal == "" {
		if mode == ModeStrict {
			return model.Segment{}, &Error{Kind: ErrEmptyLiteral, Offset: sp.Offset, Block: sp.Text}
		}
		return model.Kana(sp.Text), nil
	}
	if !hasSep {
		if mode == ModeStrict {
			return model.Segment{}, &Error{Kind: ErrMissingReading, Offset: sp.Offset, Block: sp.Text}
		}
		return model.Kanji(literal, ""), nil
	}

	n := tokenize.FieldCount(rest, hasSep)
	if n == 1 {
		return model.Kanji(literal, rest), nil
	}
	if mode == ModeStrict && n != utf8.RuneCountInString(literal) {
		return model.Segment{}, &Error{Kind: ErrReadingCountMismatch, Offset: sp.Offset, Block: sp.Text}
	}

	readings := make([]string, 0, n)
	for {
		field, tail, more := tokenize.NextField(rest)
		readings = append(readings, field)
		if !more {
			break
		}
		rest = tail
	}
	return model.Kanji(literal, readings...), nil
}

// Segments yields the strictly parsed segments of s. Iteration ends after
// the first error.
func Segments(s string) iter.Seq2[model.Segment, error] {
	return func(yield func(model.Segment, error) bool) {
		for sp := range tokenize.Spans(s) {
			seg, err := Segment(sp, ModeStrict)
			if !yield(seg, err) || err != nil {
				return
			}
		}
	}
}

// Strict parses s and fails on the first malformed block.
func Strict(s string) (model.Sequence, error) {
	segs := make([]model.Segment, 0, estimate(s))
	for seg, err := range Segments(s) {
		if err != nil {
			return model.Sequence{}, err
		}
		segs = append(segs, seg)
	}
	return model.NewSequence(segs...), nil
}

// Lenient parses s without ever failing.
func Lenient(s string) model.Sequence {
	segs := make([]model.Segment, 0, estimate(s))
	for sp := range tokenize.Spans(s) {
		seg, _ := Segment(sp, ModeLenient)
		segs = append(segs, seg)
	}
	return model.NewSequence(segs...)
}

// Check reports whether s parses in strict mode.
func Check(s string) bool {
	sc := tokenize.NewScanner(s)
	for {
		sp, ok := sc.Next()
		if !ok {
			return true
		}
		if !valid(sp) {
			return false
		}
	}
}

// valid mirrors the strict checks of Segment without building a segment.
func valid(sp tokenize.Span) bool {
	if !sp.Bracketed {
		return !sp.Unterminated
	}
	literal, rest, hasSep := tokenize.Cut(sp.Text)
	if literal == "" || !hasSep {
		return false
	}
	n := tokenize.FieldCount(rest, hasSep)
	return n == 1 || n == utf8.RuneCountInString(literal)
}

// estimate guesses the segment count from the number of blocks.
func estimate(s string) int {
	return 2*strings.Count(s, "]") + 1
}
