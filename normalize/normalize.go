// Package normalize rewrites encoded furigana strings into a different block
// layout without changing what they read as.
package normalize

import (
	"slices"
	"strings"
	"unicode/utf8"

	"furigana/model"
	"furigana/parse"
	"furigana/tokenize"
)

// Option configures a Formatter.
type Option func(*Formatter)

// Lossy lets Merge join runs that contain collapsed blocks. The merged block
// gets a single joined reading, so the split between the readings of the
// members is lost.
func Lossy() Option {
	return func(f *Formatter) {
		f.lossy = true
	}
}

// Formatter applies block layout transformations. Every method takes an
// encoded string, parses it leniently and returns a new encoded string; it
// never fails.
type Formatter struct {
	lossy bool
}

// New creates a Formatter.
func New(opts ...Option) *Formatter {
	f := &Formatter{}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// All runs Merge, RemoveEmptyKanji and FixBlocks in that order.
func (f *Formatter) All(s string) string {
	return f.FixBlocks(f.RemoveEmptyKanji(f.Merge(s)))
}

// Merge joins adjacent kanji blocks into one block.
// Eg `[大|だい][丈|じょう][夫|ぶ]` becomes `[大丈夫|だい|じょう|ぶ]`.
//
// Only detailed blocks are merged unless the formatter is lossy. Blocks
// without a reading end a run and are written as `[literal|]`.
func (f *Formatter) Merge(s string) string {
	var m merger
	m.out.Grow(len(s) + 16)
	for sp := range tokenize.Spans(s) {
		seg, _ := parse.Segment(sp, parse.ModeLenient)
		detailed := seg.IsDetailed()
		empty := seg.HasEmptyReading()

		if (seg.IsKana() || !(detailed || f.lossy) || empty) && m.pending() {
			m.flush()
		}

		switch {
		case seg.IsKana():
			m.out.WriteString(sp.Text)
		case empty:
			m.out.WriteByte('[')
			m.out.WriteString(seg.Text)
			m.out.WriteString("|]")
		case !detailed && !f.lossy:
			m.out.WriteString(sp.Text)
		default:
			m.add(seg, detailed)
		}
	}
	if m.pending() {
		m.flush()
	}
	return m.out.String()
}

// merger accumulates a run of kanji blocks. The literals go straight to the
// output once the block is opened; the readings wait in acc until the run
// ends.
type merger struct {
	out        strings.Builder
	acc        []string
	open       bool
	undetailed bool
}

func (m *merger) pending() bool { return len(m.acc) > 0 }

func (m *merger) add(seg model.Segment, detailed bool) {
	if !detailed {
		m.undetailed = true
	}
	if !m.open {
		m.open = true
		m.out.WriteByte('[')
	}
	m.out.WriteString(seg.Text)
	m.acc = append(m.acc, seg.Readings...)
}

// flush closes the open block. A run with a collapsed member can't keep one
// field per literal, so its readings are joined.
func (m *merger) flush() {
	m.out.WriteByte('|')
	if m.undetailed {
		for _, r := range m.acc {
			m.out.WriteString(r)
		}
	} else {
		m.out.WriteString(strings.Join(m.acc, "|"))
	}
	m.out.WriteByte(']')
	m.acc = m.acc[:0]
	m.open = false
	m.undetailed = false
}

// RemoveEmptyKanji turns blocks without a reading into plain text.
// Eg `[毎朝|まい|あさ][6|][時|じ]` becomes `[毎朝|まい|あさ]6[時|じ]`.
//
// A block is kept when plain text before it still holds a '[', since the
// '[' would otherwise pair with a later ']' and open a new block.
func (f *Formatter) RemoveEmptyKanji(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 16)
	open := false
	for sp := range tokenize.Spans(s) {
		if !sp.Bracketed {
			b.WriteString(sp.Text)
			open = open || strings.IndexByte(sp.Text, '[') >= 0
			continue
		}
		seg, _ := parse.Segment(sp, parse.ModeLenient)
		if seg.HasEmptyReading() && !open {
			b.WriteString(seg.Text)
			continue
		}
		b.WriteString(sp.Text)
		open = false
	}
	return b.String()
}

// FixBlocks repairs blocks whose reading count matches neither one nor the
// number of literals by joining all readings into one.
// Eg `[音楽大|おんがく|だい]` becomes `[音楽大|おんがくだい]`.
func (f *Formatter) FixBlocks(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 16)
	for sp := range tokenize.Spans(s) {
		seg, _ := parse.Segment(sp, parse.ModeLenient)
		if seg.IsKana() || seg.IsDetailed() || seg.IsCollapsed() {
			b.WriteString(sp.Text)
			continue
		}
		b.WriteByte('[')
		b.WriteString(seg.Text)
		b.WriteByte('|')
		for _, r := range seg.Readings {
			b.WriteString(r)
		}
		b.WriteByte(']')
	}
	return b.String()
}

// Split is the reverse of Merge: detailed blocks with more than one literal
// are split into one block per literal. Blocks with a partly empty reading
// are kept, since splitting them would change their kana.
// Eg `[大丈夫|だい|じょう|ぶ]` becomes `[大|だい][丈|じょう][夫|ぶ]`.
func (f *Formatter) Split(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 16)
	for sp := range tokenize.Spans(s) {
		seg, _ := parse.Segment(sp, parse.ModeLenient)
		if !seg.IsDetailed() || utf8.RuneCountInString(seg.Text) < 2 || slices.Contains(seg.Readings, "") {
			b.WriteString(sp.Text)
			continue
		}
		for part := range seg.Flatten() {
			part.EncodeTo(&b)
		}
	}
	return b.String()
}
