// Package projection extracts the kana or kanji reading of an encoded
// furigana string directly from the raw text, without building a sequence.
package projection

import (
	"strings"
	"unicode/utf8"

	"furigana/model"
	"furigana/tokenize"
)

// Option configures a Projector.
type Option func(*Projector)

// WithoutKanjiFallback disables the kanji fallback: blocks without a reading
// contribute nothing to the kana projection instead of their literal.
func WithoutKanjiFallback() Option {
	return func(p *Projector) {
		p.kanjiFallback = false
	}
}

// Projector computes projections of encoded furigana strings. The zero value
// has the kanji fallback disabled; use New for the default behaviour.
type Projector struct {
	kanjiFallback bool
}

// New creates a Projector. The kanji fallback is enabled unless disabled by
// an option.
func New(opts ...Option) Projector {
	p := Projector{kanjiFallback: true}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

var std = New()

// Kana returns the kana projection of s.
// Eg `[音楽|おん|がく]が[好|す]き` returns `おんがくがすき`.
func Kana(s string) string { return std.Kana(s) }

// Kanji returns the kanji projection of s.
// Eg `[音楽|おん|がく]が[好|す]き` returns `音楽が好き`.
func Kanji(s string) string { return std.Kanji(s) }

// Both returns the kana and kanji projection of s in a single pass.
func Both(s string) model.Reading { return std.Both(s) }

// Kana returns the kana projection of s.
func (p Projector) Kana(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	p.run(s, true, func(part string) { b.WriteString(part) })
	return b.String()
}

// Kanji returns the kanji projection of s.
func (p Projector) Kanji(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	p.run(s, false, func(part string) { b.WriteString(part) })
	return b.String()
}

// Len returns the byte length of the kana or kanji projection of s without
// building it.
func (p Projector) Len(s string, kana bool) int {
	n := 0
	p.run(s, kana, func(part string) { n += len(part) })
	return n
}

// RuneCount returns the number of characters of the kana or kanji projection
// of s without building it.
func (p Projector) RuneCount(s string, kana bool) int {
	n := 0
	p.run(s, kana, func(part string) { n += utf8.RuneCountInString(part) })
	return n
}

// Both returns the kana and kanji projection of s. The kanji buffer is only
// started at the first kanji block, by copying the kana seen so far; Kanji
// stays nil if s has no block.
func (p Projector) Both(s string) model.Reading {
	var kana, kanji strings.Builder
	kana.Grow(len(s))
	hasKanji := false

	sc := tokenize.NewScanner(s)
	for {
		sp, ok := sc.Next()
		if !ok {
			break
		}
		var literal, rest string
		var hasSep bool
		if sp.Bracketed {
			literal, rest, hasSep = tokenize.Cut(sp.Text)
		}
		if literal == "" {
			kana.WriteString(sp.Text)
			if hasKanji {
				kanji.WriteString(sp.Text)
			}
			continue
		}
		if !hasKanji {
			hasKanji = true
			kanji.Grow(len(s))
			kanji.WriteString(kana.String())
		}
		kanji.WriteString(literal)
		p.kanaOf(literal, rest, hasSep, func(part string) { kana.WriteString(part) })
	}

	if !hasKanji {
		return model.NewReading(kana.String())
	}
	return model.NewReadingWithKanji(kana.String(), kanji.String())
}

// run feeds the parts of the chosen projection to w.
func (p Projector) run(s string, kana bool, w func(string)) {
	sc := tokenize.NewScanner(s)
	for {
		sp, ok := sc.Next()
		if !ok {
			return
		}
		if !sp.Bracketed {
			w(sp.Text)
			continue
		}
		literal, rest, hasSep := tokenize.Cut(sp.Text)
		switch {
		case literal == "":
			// A block without literal is plain text.
			w(sp.Text)
		case kana:
			p.kanaOf(literal, rest, hasSep, w)
		default:
			w(literal)
		}
	}
}

// kanaOf writes the readings of a cut block.
func (p Projector) kanaOf(literal, rest string, hasSep bool, w func(string)) {
	pushed := false
	for hasSep {
		var field string
		field, rest, hasSep = tokenize.NextField(rest)
		if field != "" {
			pushed = true
			w(field)
		}
	}
	if !pushed && p.kanjiFallback {
		w(literal)
	}
}
