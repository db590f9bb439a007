package model

import (
	"fmt"
	"iter"
	"strings"
	"unicode/utf8"
)

// Kind tells the two segment variants apart.
type Kind uint8

const (
	// KindKana is a run of text outside of any kanji block.
	KindKana Kind = iota
	// KindKanji is a kanji block with one or more assigned readings.
	KindKanji
)

func (k Kind) String() string {
	if k == KindKanji {
		return "kanji"
	}
	return "kana"
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name.
func (k *Kind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "kana":
		*k = KindKana
	case "kanji":
		*k = KindKanji
	default:
		return fmt.Errorf("unknown segment kind %q", b)
	}
	return nil
}

// Segment is a single unit of an encoded furigana string. Kana segments hold
// their text verbatim, kanji segments hold the literal run in Text and the
// assigned kana readings in Readings.
//
// Segments built by the parser reference the parsed input; use Clone to detach
// them from it.
type Segment struct {
	Kind     Kind     `json:"kind"`
	Text     string   `json:"text"`
	Readings []string `json:"readings,omitempty"`
}

// Kana creates a kana segment.
func Kana(text string) Segment {
	return Segment{Kind: KindKana, Text: text}
}

// Kanji creates a kanji segment. Without readings the segment gets a single
// empty reading, meaning the reading is unknown.
func Kanji(literal string, readings ...string) Segment {
	if len(readings) == 0 {
		readings = []string{""}
	}
	return Segment{Kind: KindKanji, Text: literal, Readings: readings}
}

// IsKana reports whether the segment is a kana segment.
func (s Segment) IsKana() bool { return s.Kind == KindKana }

// IsKanji reports whether the segment is a kanji segment.
func (s Segment) IsKanji() bool { return s.Kind == KindKanji }

// IsEmpty reports whether the segment is structurally empty.
func (s Segment) IsEmpty() bool {
	if s.Kind == KindKanji {
		return s.Text == "" || len(s.Readings) == 0
	}
	return s.Text == ""
}

// IsDetailed reports whether every literal has its own reading.
func (s Segment) IsDetailed() bool {
	return s.Kind == KindKanji && len(s.Readings) == utf8.RuneCountInString(s.Text)
}

// IsCollapsed reports whether a single reading covers the whole literal run.
func (s Segment) IsCollapsed() bool {
	return s.Kind == KindKanji && len(s.Readings) == 1
}

// HasEmptyReading reports whether a kanji segment carries no reading at all.
func (s Segment) HasEmptyReading() bool {
	if s.Kind != KindKanji {
		return false
	}
	for _, r := range s.Readings {
		if r != "" {
			return false
		}
	}
	return true
}

// KanaReading returns the kana text of the segment. Kanji segments without a
// reading fall back to their literal.
func (s Segment) KanaReading() string {
	if s.Kind == KindKana {
		return s.Text
	}
	if s.HasEmptyReading() {
		return s.Text
	}
	if len(s.Readings) == 1 {
		return s.Readings[0]
	}
	return strings.Join(s.Readings, "")
}

// MainReading returns the literal for kanji segments and the text for kana.
func (s Segment) MainReading() string {
	return s.Text
}

// Encode returns the segment in its encoded form.
func (s Segment) Encode() string {
	var b strings.Builder
	s.EncodeTo(&b)
	return b.String()
}

// EncodeTo writes the encoded segment into b.
func (s Segment) EncodeTo(b *strings.Builder) {
	if s.Kind == KindKana {
		b.WriteString(s.Text)
		return
	}
	b.WriteByte('[')
	b.WriteString(s.Text)
	if len(s.Readings) == 0 {
		b.WriteByte('|')
	}
	for _, r := range s.Readings {
		b.WriteByte('|')
		b.WriteString(r)
	}
	b.WriteByte(']')
}

// String returns the encoded segment.
func (s Segment) String() string { return s.Encode() }

// Flatten yields the segment split into one segment per literal. Kana
// segments and kanji segments without detailed readings are yielded whole,
// the latter with their readings joined into one.
func (s Segment) Flatten() iter.Seq[Segment] {
	return func(yield func(Segment) bool) {
		if s.Kind == KindKana {
			yield(s)
			return
		}
		if len(s.Readings) == 1 {
			yield(s)
			return
		}
		if !s.IsDetailed() {
			yield(Kanji(s.Text, strings.Join(s.Readings, "")))
			return
		}
		for i, pos := 0, 0; pos < len(s.Text); i++ {
			_, size := utf8.DecodeRuneInString(s.Text[pos:])
			if !yield(Kanji(s.Text[pos:pos+size], s.Readings[i])) {
				return
			}
			pos += size
		}
	}
}

// Clone returns a copy that shares no memory with the original.
func (s Segment) Clone() Segment {
	out := Segment{Kind: s.Kind, Text: strings.Clone(s.Text)}
	if s.Readings != nil {
		out.Readings = make([]string, len(s.Readings))
		for i, r := range s.Readings {
			out.Readings[i] = strings.Clone(r)
		}
	}
	return out
}

// Equal reports whether both segments hold the same kind, text and readings.
func (s Segment) Equal(o Segment) bool {
	if s.Kind != o.Kind || s.Text != o.Text || len(s.Readings) != len(o.Readings) {
		return false
	}
	for i := range s.Readings {
		if s.Readings[i] != o.Readings[i] {
			return false
		}
	}
	return true
}
