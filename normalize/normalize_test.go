package normalize

import (
	"os"
	"testing"

	"furigana/parse"
	"furigana/projection"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type testCase struct {
	Name string `yaml:"name"`
	In   string `yaml:"in"`
	Out  string `yaml:"out"`
}

type testCases struct {
	Merge       []testCase `yaml:"merge"`
	Lossy       []testCase `yaml:"lossy"`
	RemoveEmpty []testCase `yaml:"remove_empty"`
	FixBlocks   []testCase `yaml:"fix_blocks"`
	Split       []testCase `yaml:"split"`
}

func loadCases(t *testing.T) testCases {
	t.Helper()
	b, err := os.ReadFile("testdata/cases.yaml")
	require.NoError(t, err)
	var tc testCases
	require.NoError(t, yaml.Unmarshal(b, &tc))
	require.NotEmpty(t, tc.Merge)
	return tc
}

// assertSameReading checks that the rewrite reads exactly like the input.
func assertSameReading(t *testing.T, in, out string) {
	t.Helper()
	assert.Equal(t, projection.Kana(in), projection.Kana(out), "kana of %s", out)
	assert.Equal(t, projection.Kanji(in), projection.Kanji(out), "kanji of %s", out)
}

func run(t *testing.T, cases []testCase, fn func(string) string, sameReading bool) {
	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			got := fn(tc.In)
			assert.Equal(t, tc.Out, got)
			if sameReading {
				assertSameReading(t, tc.In, got)
			}
		})
	}
}

func TestMerge(t *testing.T) {
	run(t, loadCases(t).Merge, New().Merge, true)
}

func TestMergeLossy(t *testing.T) {
	run(t, loadCases(t).Lossy, New(Lossy()).Merge, true)
}

func TestRemoveEmptyKanji(t *testing.T) {
	run(t, loadCases(t).RemoveEmpty, New().RemoveEmptyKanji, true)
}

func TestFixBlocks(t *testing.T) {
	run(t, loadCases(t).FixBlocks, New().FixBlocks, true)
}

func TestSplit(t *testing.T) {
	run(t, loadCases(t).Split, New().Split, true)
}

func TestSplitReversesMerge(t *testing.T) {
	f := New()
	for _, in := range []string{
		"それは[大|だい][丈|じょう][夫|ぶ]",
		"[音|おん][楽|がく]が[好|す]き",
		"[定|てい][義|ぎ][域|いき]",
	} {
		merged := f.Merge(in)
		assert.NotEqual(t, in, merged)
		assert.Equal(t, in, f.Split(merged))
	}
}

func TestAll(t *testing.T) {
	f := New()
	out := f.All("[毎|まい][朝|あさ][6|][時|じ]に[音楽大|おんがく|だい]")
	assert.Equal(t, "[毎朝|まい|あさ]6[時|じ]に[音楽大|おんがくだい]", out)
	assert.True(t, parse.Check(out))
}

func TestAllMakesLenientInputValid(t *testing.T) {
	f := New()
	for _, in := range []string{
		"[拝金主義|はい|きん|しゅ|ぎ|e]は[問題|もん|だい]",
		"[拝金主義|はい|]",
		"[音楽|おん|がく]が[好す]き",
		"[2|][x|えっくす]+[1|]の[定義|てい|ぎ]",
	} {
		out := f.All(in)
		assert.True(t, parse.Check(out), "%s -> %s", in, out)
		assertSameReading(t, in, out)
	}
}

func TestEmptyInput(t *testing.T) {
	f := New(Lossy())
	assert.Empty(t, f.Merge(""))
	assert.Empty(t, f.All(""))
	assert.Empty(t, f.Split(""))
}

func BenchmarkAll(b *testing.B) {
	in := "[2|][x|えっくす]+[1|]の[定義|てい|ぎ][域|いき]が[A|えい]=[[1|],[2|]]のとき、[f|えふ]の[値域|ち|いき]は[f|えふ]([A|えい]) = [[3|],[5|]]となる。"
	f := New()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = f.All(in)
	}
}
