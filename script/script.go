// Package script classifies Japanese characters and folds kana for
// comparisons.
package script

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// Script is the writing system of a character.
type Script uint8

const (
	Other Script = iota
	Kanji
	Hiragana
	Katakana
)

func (s Script) String() string {
	switch s {
	case Kanji:
		return "kanji"
	case Hiragana:
		return "hiragana"
	case Katakana:
		return "katakana"
	}
	return "other"
}

// Classify returns the script of r.
func Classify(r rune) Script {
	switch {
	case IsKanji(r):
		return Kanji
	case IsHiragana(r):
		return Hiragana
	case IsKatakana(r):
		return Katakana
	}
	return Other
}

// IsKanji reports whether r is a Han ideograph, including the iteration mark.
func IsKanji(r rune) bool {
	return unicode.Is(unicode.Han, r)
}

// IsHiragana reports whether r is a hiragana character.
func IsHiragana(r rune) bool {
	return r >= 0x3041 && r <= 0x309F
}

// IsKatakana reports whether r is a katakana character, halfwidth forms
// included.
func IsKatakana(r rune) bool {
	return (r >= 0x30A0 && r <= 0x30FF) || (r >= 0x31F0 && r <= 0x31FF) || (r >= 0xFF66 && r <= 0xFF9D)
}

// IsKana reports whether r is hiragana or katakana.
func IsKana(r rune) bool {
	return IsHiragana(r) || IsKatakana(r)
}

// KanjiCount returns the number of kanji in s.
func KanjiCount(s string) int {
	n := 0
	for _, r := range s {
		if IsKanji(r) {
			n++
		}
	}
	return n
}

// HasKanji reports whether s contains at least one kanji.
func HasKanji(s string) bool {
	return strings.IndexFunc(s, IsKanji) >= 0
}

// ToHiragana folds s for reading comparisons: halfwidth forms are widened,
// voicing marks composed and katakana shifted to hiragana. Characters without
// a hiragana counterpart, like the long vowel mark, are kept.
func ToHiragana(s string) string {
	s = norm.NFC.String(width.Fold.String(s))
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 0x30A1 && r <= 0x30F6:
			return r - 0x60
		case r == 0x30FD || r == 0x30FE:
			return r - 0x60
		}
		return r
	}, s)
}
