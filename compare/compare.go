// Package compare decides whether two furigana sequences are equal.
//
// Two modes are supported. In reading mode sequences are equal when they
// read the same and show the same kanji, no matter how the readings are
// split into blocks: `[音楽|おん|がく]` equals `[音楽|おんがく]`. In literal mode
// the sequences are flattened into one segment per literal and compared
// element by element, so `[音楽|おん|がく]` equals `[音|おん][楽|がく]` but not
// `[音楽|おんがく]`.
package compare

import (
	"iter"
	"strings"

	"furigana/model"
	"furigana/script"
)

// Option configures a Comparator.
type Option func(*Comparator)

// FoldKana makes readings compare equal regardless of katakana or hiragana
// spelling.
func FoldKana() Option {
	return func(c *Comparator) {
		c.foldKana = true
	}
}

// Comparator compares sequences. It holds no state besides its options and
// is safe for concurrent use.
type Comparator struct {
	literalMatch bool
	foldKana     bool
}

// New creates a Comparator. literalMatch selects literal mode.
func New(literalMatch bool, opts ...Option) *Comparator {
	c := &Comparator{literalMatch: literalMatch}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// LiteralMatch reports whether c compares in literal mode.
func (c *Comparator) LiteralMatch() bool { return c.literalMatch }

// Sequences reports whether a and b are equal.
func (c *Comparator) Sequences(a, b model.Sequence) bool {
	if a.IsEmpty() || b.IsEmpty() {
		return a.IsEmpty() && b.IsEmpty()
	}
	if c.literalMatch {
		return c.streams(a.Flattened(), b.Flattened())
	}
	return c.reading(a.KanaReading(), b.KanaReading()) && a.KanjiReading() == b.KanjiReading()
}

// Segments reports whether two single segments are equal under the same rules
// as Sequences.
func (c *Comparator) Segments(a, b model.Segment) bool {
	if c.literalMatch {
		return c.streams(a.Flatten(), b.Flatten())
	}
	return c.reading(a.KanaReading(), b.KanaReading()) && a.MainReading() == b.MainReading()
}

// streams compares two flattened streams and stops at the first difference.
func (c *Comparator) streams(a, b iter.Seq[model.Segment]) bool {
	next, stop := iter.Pull(b)
	defer stop()

	for sa := range a {
		sb, ok := next()
		if !ok || !c.flat(sa, sb) {
			return false
		}
	}
	_, more := next()
	return !more
}

// flat compares two flattened segments. A flattened kanji segment carries a
// single reading, or several for malformed input, which are joined.
func (c *Comparator) flat(a, b model.Segment) bool {
	if a.Kind != b.Kind || a.Text != b.Text {
		return false
	}
	if a.IsKana() {
		return true
	}
	return c.reading(joined(a), joined(b))
}

func (c *Comparator) reading(a, b string) bool {
	if a == b {
		return true
	}
	return c.foldKana && script.ToHiragana(a) == script.ToHiragana(b)
}

func joined(s model.Segment) string {
	if len(s.Readings) == 1 {
		return s.Readings[0]
	}
	return strings.Join(s.Readings, "")
}
