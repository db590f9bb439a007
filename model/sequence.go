package model

import (
	"errors"
	"iter"
	"strings"
)

// ErrEmptySegment is returned when pushing a structurally empty segment.
var ErrEmptySegment = errors.New("empty segment")

// Sequence is an ordered list of segments in reading order.
type Sequence struct {
	segs []Segment
}

// NewSequence creates a sequence holding segs. Empty segments are dropped.
func NewSequence(segs ...Segment) Sequence {
	out := Sequence{segs: make([]Segment, 0, len(segs))}
	for _, s := range segs {
		if !s.IsEmpty() {
			out.segs = append(out.segs, s)
		}
	}
	return out
}

// Len returns the number of segments.
func (q Sequence) Len() int { return len(q.segs) }

// IsEmpty reports whether the sequence holds no segment.
func (q Sequence) IsEmpty() bool { return len(q.segs) == 0 }

// Push appends seg to the end of the sequence.
func (q *Sequence) Push(seg Segment) error {
	if seg.IsEmpty() {
		return ErrEmptySegment
	}
	q.segs = append(q.segs, seg)
	return nil
}

// At returns the segment at position i.
func (q Sequence) At(i int) (Segment, bool) {
	if i < 0 || i >= len(q.segs) {
		return Segment{}, false
	}
	return q.segs[i], true
}

// All yields every segment with its position.
func (q Sequence) All() iter.Seq2[int, Segment] {
	return func(yield func(int, Segment) bool) {
		for i, s := range q.segs {
			if !yield(i, s) {
				return
			}
		}
	}
}

// Segments returns a copy of the segment slice.
func (q Sequence) Segments() []Segment {
	out := make([]Segment, len(q.segs))
	copy(out, q.segs)
	return out
}

// HasKanji reports whether any segment is a kanji segment.
func (q Sequence) HasKanji() bool {
	for _, s := range q.segs {
		if s.IsKanji() {
			return true
		}
	}
	return false
}

// Flattened yields all segments with multi literal kanji segments split into
// one segment per literal.
func (q Sequence) Flattened() iter.Seq[Segment] {
	return func(yield func(Segment) bool) {
		for _, s := range q.segs {
			for f := range s.Flatten() {
				if !yield(f) {
					return
				}
			}
		}
	}
}

// Encode returns the sequence in the bracketed furigana encoding.
func (q Sequence) Encode() string {
	var b strings.Builder
	b.Grow(q.encodedLen())
	for _, s := range q.segs {
		s.EncodeTo(&b)
	}
	return b.String()
}

func (q Sequence) encodedLen() int {
	n := 0
	for _, s := range q.segs {
		n += len(s.Text)
		if s.IsKanji() {
			n += 2
			for _, r := range s.Readings {
				n += len(r) + 1
			}
		}
	}
	return n
}

// String returns the encoded sequence.
func (q Sequence) String() string { return q.Encode() }

// MarshalText encodes the sequence, so JSON output carries the encoded string.
func (q Sequence) MarshalText() ([]byte, error) {
	return []byte(q.Encode()), nil
}

// KanaReading returns the sequence as kana only.
// Eg `[音楽|おん|がく]が[好|す]き` returns `おんがくがすき`.
func (q Sequence) KanaReading() string {
	var b strings.Builder
	for _, s := range q.segs {
		b.WriteString(s.KanaReading())
	}
	return b.String()
}

// KanjiReading returns the sequence with kanji literals in place of their
// readings. Eg `[音楽|おん|がく]が[好|す]き` returns `音楽が好き`.
func (q Sequence) KanjiReading() string {
	var b strings.Builder
	for _, s := range q.segs {
		b.WriteString(s.MainReading())
	}
	return b.String()
}

// ToReading returns the kana and, if the sequence holds any kanji, the kanji
// reading of the sequence.
func (q Sequence) ToReading() Reading {
	if !q.HasKanji() {
		return NewReading(q.KanaReading())
	}
	return NewReadingWithKanji(q.KanaReading(), q.KanjiReading())
}

// Clone returns a copy that shares no memory with q or the input it was
// parsed from.
func (q Sequence) Clone() Sequence {
	out := Sequence{segs: make([]Segment, len(q.segs))}
	for i, s := range q.segs {
		out.segs[i] = s.Clone()
	}
	return out
}

// Equal reports whether both sequences hold structurally equal segments.
func (q Sequence) Equal(o Sequence) bool {
	if len(q.segs) != len(o.segs) {
		return false
	}
	for i := range q.segs {
		if !q.segs[i].Equal(o.segs[i]) {
			return false
		}
	}
	return true
}
