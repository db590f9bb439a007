package furigana

import (
	"furigana/compare"
	"furigana/model"
	"furigana/normalize"
	"furigana/parse"
	"furigana/projection"
)

// ParseStrict parses text and fails on the first malformed block.
func ParseStrict(text string) (model.Sequence, error) {
	return parse.Strict(text)
}

// ParseLenient parses text without ever failing.
func ParseLenient(text string) model.Sequence {
	return parse.Lenient(text)
}

// IsValid reports whether text parses in strict mode.
func IsValid(text string) bool {
	return parse.Check(text)
}

// KanaProjection returns the kana reading of text.
func KanaProjection(text string) string {
	return projection.Kana(text)
}

// KanjiProjection returns text with every block replaced by its literal.
func KanjiProjection(text string) string {
	return projection.Kanji(text)
}

// ReadingProjection returns both projections of text.
func ReadingProjection(text string) model.Reading {
	return projection.Both(text)
}

// Compare reports whether a and b are equal. With literalMatch set they must
// match literal by literal, otherwise it's enough that they read the same and
// show the same kanji.
func Compare(a, b model.Sequence, literalMatch bool) bool {
	return compare.New(literalMatch).Sequences(a, b)
}

// Options configures Normalize.
type Options struct {
	// Lossy allows merging collapsed blocks into their neighbours.
	Lossy bool `json:"lossy" yaml:"lossy"`
}

func (o Options) formatter() *normalize.Formatter {
	if o.Lossy {
		return normalize.New(normalize.Lossy())
	}
	return normalize.New()
}

// Normalize merges adjacent kanji blocks.
// Eg `[大|だい][丈|じょう][夫|ぶ]` becomes `[大丈夫|だい|じょう|ぶ]`.
func Normalize(text string, opts Options) string {
	return opts.formatter().Merge(text)
}

// RemoveEmptyKanji turns blocks without reading into plain text.
func RemoveEmptyKanji(text string) string {
	return normalize.New().RemoveEmptyKanji(text)
}

// FixMalformedBlocks joins the readings of blocks whose reading count matches
// neither one nor the literal count.
func FixMalformedBlocks(text string) string {
	return normalize.New().FixBlocks(text)
}

// NormalizeAll merges blocks, removes empty ones and fixes malformed ones.
func NormalizeAll(text string) string {
	return normalize.New().All(text)
}

// SplitBlocks splits detailed blocks into one block per literal.
func SplitBlocks(text string) string {
	return normalize.New().Split(text)
}
