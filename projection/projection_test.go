package projection

import (
	"sync"
	"testing"
	"unicode/utf8"

	"furigana/parse"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const withBrackets = "[2|][x|えっくす]+[1|]の[定義|てい|ぎ][域|いき]が[A|えい]=[[1|],[2|]]のとき、[f|えふ]の[値域|ち|いき]は[f|えふ]([A|えい]) = [[3|],[5|]]となる。"

var inputs = []string{
	"",
	"ひらがなだけ",
	"おんがくが[好|す]",
	"[音楽|おん|がく]が[好|す]き",
	"[音楽|おん|がく]が[大好|だい|す]きです",
	"[拝金主義|はい|きん|しゅ|ぎ]は[問題|もん|だい]",
	"[高校生|こう|こう|せい]の[時|とき]は[毎朝|まい|あさ][6|][時|じ]に[起|お]きていた。",
	"[音楽おん|がく]が[好す",
	"[好す]き",
	"[拝金主義|はい|]",
	"あ[|よみ]い",
	"[]",
	"[Wi|ワイ][-|][Fi|ファイ] って",
	withBrackets,
}

func TestKana(t *testing.T) {
	assert.Equal(t, "おんがくがすき", Kana("[音楽|おん|がく]が[好|す]き"))
	assert.Equal(t, "2えっくす+1のていぎがえい=[1,2] = [3,5]",
		Kana("[2|][x|えっくす]+[1|]の[定義|てい|ぎ]が[A|えい]=[[1|],[2|]] = [[3|],[5|]]"))
	assert.Equal(t, "こうこうせいのときはまいあさ6じにおきていた。",
		Kana("[高校生|こう|こう|せい]の[時|とき]は[毎朝|まい|あさ][6|][時|じ]に[起|お]きていた。"))
}

func TestKanji(t *testing.T) {
	assert.Equal(t, "音楽が好き", Kanji("[音楽|おん|がく]が[好|す]き"))
	assert.Equal(t, "[3,5]ああ", Kanji("[[3|],[5|]]ああ"))
	assert.Equal(t, "2x+1の定義域がA=[1,2]のとき、fの値域はf(A) = [3,5]となる。", Kanji(withBrackets))
}

func TestBoth(t *testing.T) {
	r := Both("[音楽|おん|がく]が[大好|だい|す]きです")
	assert.Equal(t, "おんがくがだいすきです", r.Kana)
	require.True(t, r.HasKanji())
	assert.Equal(t, "音楽が大好きです", *r.Kanji)

	r = Both("ひらがなだけ")
	assert.False(t, r.HasKanji())
	assert.Equal(t, "ひらがなだけ", r.Kana)

	r = Both("")
	assert.False(t, r.HasKanji())
	assert.Empty(t, r.Kana)
	assert.Empty(t, Kana(""))
	assert.Empty(t, Kanji(""))
}

func TestMatchesParsedSequence(t *testing.T) {
	for _, in := range inputs {
		seq := parse.Lenient(in)
		assert.Equal(t, seq.KanaReading(), Kana(in), in)
		assert.Equal(t, seq.KanjiReading(), Kanji(in), in)
		assert.True(t, seq.ToReading().Equal(Both(in)), in)
	}
}

func TestWithoutKanjiFallback(t *testing.T) {
	p := New(WithoutKanjiFallback())
	in := "[Wi|ワイ][-|][Fi|ファイ] って"
	assert.Equal(t, "ワイファイ って", p.Kana(in))
	assert.Equal(t, "ワイ-ファイ って", Kana(in))
	assert.Equal(t, "Wi-Fi って", p.Kanji(in))

	r := p.Both("[6|][時|じ]")
	assert.Equal(t, "じ", r.Kana)
	assert.Equal(t, "6時", *r.Kanji)
}

func TestLenAndRuneCount(t *testing.T) {
	p := New()
	for _, in := range inputs {
		assert.Equal(t, len(p.Kana(in)), p.Len(in, true), in)
		assert.Equal(t, len(p.Kanji(in)), p.Len(in, false), in)
		assert.Equal(t, utf8.RuneCountInString(p.Kana(in)), p.RuneCount(in, true), in)
		assert.Equal(t, utf8.RuneCountInString(p.Kanji(in)), p.RuneCount(in, false), in)
	}
}

func TestCache(t *testing.T) {
	c, err := NewCache(2, New())
	require.NoError(t, err)

	assert.Equal(t, "おんがくがすき", c.Kana("[音楽|おん|がく]が[好|す]き"))
	assert.Equal(t, "音楽が好き", c.Kanji("[音楽|おん|がく]が[好|す]き"))
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, "かな", c.Kanji("かな"))
	c.Both("[楽|たの]しい")
	assert.Equal(t, 2, c.Len())

	c.Purge()
	assert.Zero(t, c.Len())
}

func TestCacheConcurrent(t *testing.T) {
	c, err := NewCache(0, New())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, in := range inputs {
				assert.Equal(t, Kana(in), c.Kana(in))
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, len(inputs), c.Len())
}

func BenchmarkKana(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = Kana(withBrackets)
	}
}

func BenchmarkBoth(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = Both(withBrackets)
	}
}

func BenchmarkParsedReading(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = parse.Lenient(withBrackets).ToReading()
	}
}
