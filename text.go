package furigana

import (
	"errors"
	"fmt"
	"iter"
	"strings"

	"furigana/model"
	"furigana/parse"
	"furigana/projection"
	"furigana/tokenize"
)

// ErrInvalid is returned when a string is not valid furigana.
var ErrInvalid = errors.New("invalid furigana")

// Text is a valid encoded furigana string. The zero value is the empty text.
type Text struct {
	raw string
}

// New validates s and wraps it.
func New(s string) (Text, error) {
	if _, err := parse.Strict(s); err != nil {
		return Text{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return Text{raw: s}, nil
}

// MustNew is like New but panics on invalid input. It is meant for
// constants.
func MustNew(s string) Text {
	t, err := New(s)
	if err != nil {
		panic(err)
	}
	return t
}

// Raw returns the encoded string.
func (t Text) Raw() string { return t.raw }

// String returns the encoded string.
func (t Text) String() string { return t.raw }

// IsEmpty reports whether t holds no text.
func (t Text) IsEmpty() bool { return t.raw == "" }

// Kana returns the kana projection.
func (t Text) Kana() string { return projection.Kana(t.raw) }

// Kanji returns the kanji projection.
func (t Text) Kanji() string { return projection.Kanji(t.raw) }

// Reading returns both projections.
func (t Text) Reading() model.Reading { return projection.Both(t.raw) }

// HasKanji reports whether t has at least one kanji block.
func (t Text) HasKanji() bool {
	for seg := range t.Segments() {
		if seg.IsKanji() {
			return true
		}
	}
	return false
}

// Segments yields the segments of t. They reference t's storage.
func (t Text) Segments() iter.Seq[model.Segment] {
	return func(yield func(model.Segment) bool) {
		for sp := range tokenize.Spans(t.raw) {
			seg, _ := parse.Segment(sp, parse.ModeLenient)
			if seg.IsEmpty() {
				continue
			}
			if !yield(seg) {
				return
			}
		}
	}
}

// SegmentAt returns the segment at position i.
func (t Text) SegmentAt(i int) (model.Segment, bool) {
	if i < 0 {
		return model.Segment{}, false
	}
	n := 0
	for seg := range t.Segments() {
		if n == i {
			return seg, true
		}
		n++
	}
	return model.Segment{}, false
}

// SegmentCount returns the number of segments.
func (t Text) SegmentCount() int {
	n := 0
	for range t.Segments() {
		n++
	}
	return n
}

// Sequence parses t into a sequence.
func (t Text) Sequence() model.Sequence {
	return parse.Lenient(t.raw)
}

// PushString appends s. It fails if s isn't valid furigana on its own, in
// which case t is unchanged.
func (t *Text) PushString(s string) error {
	if !parse.Check(s) {
		return fmt.Errorf("push %q: %w", s, ErrInvalid)
	}
	t.raw += s
	return nil
}

// PushSegment appends the encoded form of seg. seg is not validated; a
// malformed kanji segment makes t invalid.
func (t *Text) PushSegment(seg model.Segment) {
	var b strings.Builder
	b.Grow(len(t.raw) + len(seg.Text) + 8)
	b.WriteString(t.raw)
	seg.EncodeTo(&b)
	t.raw = b.String()
}

// MarshalText returns the encoded string.
func (t Text) MarshalText() ([]byte, error) {
	return []byte(t.raw), nil
}

// UnmarshalText validates b and stores it.
func (t *Text) UnmarshalText(b []byte) error {
	v, err := New(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}
