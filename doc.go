/*
Package furigana parses, projects, compares and reformats Japanese text with
furigana in the bracket encoding:

	[音楽|おん|がく]が[好|す]き

A kanji block holds a run of literal characters followed by its readings,
separated by '|'. A block either carries one reading per literal (detailed)
or one reading for the whole run (collapsed). `[6|]` is a block whose reading
is unknown. Everything outside of blocks is plain text.

# Parsing

[ParseStrict] rejects malformed blocks with a [parse.Error] naming the
problem and its byte offset. [ParseLenient] never fails and degrades
malformed blocks instead. [IsValid] validates without building a sequence.

# Projections

[KanaProjection] returns the text as it is read, [KanjiProjection] as it is
written:

	KanaProjection("[音楽|おん|がく]が[好|す]き")  // おんがくがすき
	KanjiProjection("[音楽|おん|がく]が[好|す]き") // 音楽が好き

Both work on the raw string without allocating segments. Blocks without a
reading contribute their literal to the kana projection.

# Comparing

[Compare] tells whether two sequences are equal either by what they read as
or literal by literal, see package compare.

# Normalizing

[Normalize] merges adjacent kanji blocks, [RemoveEmptyKanji] drops blocks
without a reading and [FixMalformedBlocks] repairs blocks with a wrong
number of readings. None of them changes the projections of the input.

# Text

[Text] wraps a validated encoded string for callers that store furigana and
need its projections or segments on demand.
*/
package furigana
