package model

// Reading is the simplified view of a furigana string: the kana reading and,
// if the source holds kanji, the text written with kanji.
type Reading struct {
	Kana  string  `json:"kana"`
	Kanji *string `json:"kanji,omitempty"`
}

// NewReading creates a kana only reading.
func NewReading(kana string) Reading {
	return Reading{Kana: kana}
}

// NewReadingWithKanji creates a reading with a kanji writing.
func NewReadingWithKanji(kana, kanji string) Reading {
	return Reading{Kana: kana, Kanji: &kanji}
}

// HasKanji reports whether the reading has a kanji writing.
func (r Reading) HasKanji() bool { return r.Kanji != nil }

// KanjiOrKana returns the kanji writing if present, the kana otherwise.
func (r Reading) KanjiOrKana() string {
	if r.Kanji != nil {
		return *r.Kanji
	}
	return r.Kana
}

// Equal compares both readings by value.
func (r Reading) Equal(o Reading) bool {
	if r.Kana != o.Kana || r.HasKanji() != o.HasKanji() {
		return false
	}
	return r.Kanji == nil || *r.Kanji == *o.Kanji
}
