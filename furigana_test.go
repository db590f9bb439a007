package furigana

import (
	"encoding/json"
	"os"
	"testing"

	"furigana/model"
	"furigana/parse"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type corpusEntry struct {
	In       string `yaml:"in"`
	Valid    bool   `yaml:"valid"`
	Segments int    `yaml:"segments"`
	Kana     string `yaml:"kana"`
	Kanji    string `yaml:"kanji"`
}

func loadCorpus(t *testing.T) []corpusEntry {
	t.Helper()
	b, err := os.ReadFile("testdata/corpus.yaml")
	require.NoError(t, err)
	var entries []corpusEntry
	require.NoError(t, yaml.Unmarshal(b, &entries))
	require.NotEmpty(t, entries)
	return entries
}

func TestCorpus(t *testing.T) {
	for _, e := range loadCorpus(t) {
		t.Run(e.In, func(t *testing.T) {
			assert.Equal(t, e.Valid, IsValid(e.In))
			assert.Equal(t, e.Kana, KanaProjection(e.In))
			assert.Equal(t, e.Kanji, KanjiProjection(e.In))

			seq := ParseLenient(e.In)
			assert.Equal(t, e.Segments, seq.Len())
			assert.Equal(t, e.Kana, seq.KanaReading())
			assert.Equal(t, e.Kanji, seq.KanjiReading())
			assert.True(t, seq.ToReading().Equal(ReadingProjection(e.In)))

			strict, err := ParseStrict(e.In)
			if !e.Valid {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, e.In, strict.Encode())
			assert.True(t, Compare(strict, seq, true))
		})
	}
}

func TestNormalizeKeepsProjections(t *testing.T) {
	for _, e := range loadCorpus(t) {
		for _, out := range []string{
			Normalize(e.In, Options{}),
			Normalize(e.In, Options{Lossy: true}),
			RemoveEmptyKanji(e.In),
			FixMalformedBlocks(e.In),
			NormalizeAll(e.In),
			SplitBlocks(e.In),
		} {
			assert.Equal(t, e.Kana, KanaProjection(out), "%s -> %s", e.In, out)
			assert.Equal(t, e.Kanji, KanjiProjection(out), "%s -> %s", e.In, out)
		}
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "それは[大丈夫|だい|じょう|ぶ]", Normalize("それは[大|だい][丈|じょう][夫|ぶ]", Options{}))
	assert.Equal(t, "それは[大丈夫|だいじょうぶ]だよ", Normalize("それは[大|だい][丈夫|じょうぶ]だよ", Options{Lossy: true}))
	assert.Equal(t, "[毎朝|まい|あさ]6[時|じ]に", RemoveEmptyKanji("[毎朝|まい|あさ][6|][時|じ]に"))
	assert.Equal(t, "[音楽大|おんがくだい]", FixMalformedBlocks("[音楽大|おんがく|だい]"))
	assert.Equal(t, "[大|だい][丈|じょう][夫|ぶ]", SplitBlocks("[大丈夫|だい|じょう|ぶ]"))
}

func TestCompare(t *testing.T) {
	a, err := ParseStrict("[音楽|おん|がく]")
	require.NoError(t, err)
	b, err := ParseStrict("[音楽|おんがく]")
	require.NoError(t, err)
	assert.True(t, Compare(a, b, false))
	assert.False(t, Compare(a, b, true))
}

func TestText(t *testing.T) {
	txt, err := New("[音楽|おん|がく]が[好|す]き")
	require.NoError(t, err)
	assert.Equal(t, "おんがくがすき", txt.Kana())
	assert.Equal(t, "音楽が好き", txt.Kanji())
	assert.True(t, txt.HasKanji())
	assert.Equal(t, 4, txt.SegmentCount())
	assert.Equal(t, 4, txt.Sequence().Len())

	seg, ok := txt.SegmentAt(2)
	require.True(t, ok)
	assert.Equal(t, model.Kanji("好", "す"), seg)
	_, ok = txt.SegmentAt(4)
	assert.False(t, ok)

	require.NoError(t, txt.PushString("です"))
	assert.ErrorIs(t, txt.PushString("[好す]"), ErrInvalid)
	txt.PushSegment(model.Kanji("楽", "たの"))
	assert.Equal(t, "[音楽|おん|がく]が[好|す]きです[楽|たの]", txt.Raw())
	assert.Equal(t, txt.Raw(), txt.String())

	r := txt.Reading()
	assert.Equal(t, "おんがくがすきですたの", r.Kana)
}

func TestTextInvalid(t *testing.T) {
	_, err := New("[音楽|おん|がく]が[好す]き")
	assert.ErrorIs(t, err, ErrInvalid)
	assert.ErrorIs(t, err, parse.ErrMissingReading)
	assert.Panics(t, func() { MustNew("[好す") })

	var zero Text
	assert.True(t, zero.IsEmpty())
	assert.False(t, zero.HasKanji())
	assert.Zero(t, zero.SegmentCount())
}

func TestTextJSON(t *testing.T) {
	type doc struct {
		Title Text `json:"title"`
	}
	in := doc{Title: MustNew("[楽|たの]しい")}
	b, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"[楽|たの]しい"}`, string(b))

	var out doc
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, in, out)

	err = json.Unmarshal([]byte(`{"title":"[楽たの]しい"}`), &out)
	assert.ErrorIs(t, err, ErrInvalid)
}
