package segment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hakarun/kifuku/internal/model"
	"github.com/hakarun/kifuku/internal/rules"
)

type fakeSegmenter struct {
	morphemes []model.Morpheme
}

func (f fakeSegmenter) Segment(_ context.Context, _ string) ([]model.Morpheme, error) {
	return f.morphemes, nil
}

func newTestPipeline(t *testing.T, morphemes []model.Morpheme, overrides map[string]model.AccentPattern) *Pipeline {
	t.Helper()
	table, err := rules.LoadSuffixTable()
	require.NoError(t, err)
	return NewPipeline(fakeSegmenter{morphemes: morphemes}, rules.NewSuffixEngine(table), overrides)
}

func TestPipeline_VerbChain(t *testing.T) {
	morphemes := []model.Morpheme{
		{Surface: "食べ", Reading: "タベ", POS1: "動詞", CType: "下一段-バ行", Lemma: "食べる", AType: "2"},
		{Surface: "ない", Reading: "ナイ", POS1: "助動詞", CType: "助動詞-ナイ", ConType: "動詞%F4@0"},
	}
	p := newTestPipeline(t, morphemes, nil)

	sentence, err := p.AnalyzeSentence(context.Background(), "食べない")
	require.NoError(t, err)
	require.Len(t, sentence.Words, 1)

	word := sentence.Words[0]
	assert.Equal(t, "食べない", word.Surface)
	assert.Equal(t, "たべない", word.Reading)
	assert.Equal(t, model.AccentPattern{MoraCount: 4, Downstep: 2}, word.Pattern)
	assert.True(t, word.IsContentWord)
	assert.Equal(t, "食べる", word.Lemma)
}

func TestPipeline_NounCompound(t *testing.T) {
	morphemes := []model.Morpheme{
		{Surface: "安全", Reading: "アンゼン", POS1: "名詞", POS2: "一般", AType: "0"},
		{Surface: "保障", Reading: "ホショウ", POS1: "名詞", POS2: "一般", AType: "0"},
	}
	p := newTestPipeline(t, morphemes, nil)

	words := p.Annotate(morphemes)
	require.Len(t, words, 1)

	word := words[0]
	assert.Equal(t, "安全保障", word.Surface)
	assert.Equal(t, "あんぜんほしょう", word.Reading)
	assert.Equal(t, model.AccentPattern{MoraCount: 7, Downstep: 5}, word.Pattern)
	assert.True(t, word.IsCompound)
	assert.Equal(t, "複合", word.POS2)
	assert.NotEmpty(t, word.Trace)
}

func TestPipeline_OverrideBeatsSandhi(t *testing.T) {
	morphemes := []model.Morpheme{
		{Surface: "安全", Reading: "アンゼン", POS1: "名詞", POS2: "一般", AType: "0"},
		{Surface: "保障", Reading: "ホショウ", POS1: "名詞", POS2: "一般", AType: "0"},
	}
	overrides := map[string]model.AccentPattern{
		"安全保障": {MoraCount: 7, Downstep: 3},
	}
	p := newTestPipeline(t, morphemes, overrides)

	words := p.Annotate(morphemes)
	require.Len(t, words, 1)

	assert.Equal(t, model.AccentPattern{MoraCount: 7, Downstep: 3}, words[0].Pattern)
	assert.Equal(t, []string{"lexicalized_override"}, words[0].Trace)
}

func TestPipeline_NumeralCounter(t *testing.T) {
	morphemes := []model.Morpheme{
		{Surface: "3", Reading: "サン", POS1: "名詞", POS2: "数詞"},
		{Surface: "匹", Reading: "ヒキ", POS1: "接尾辞", POS2: "助数詞"},
	}
	p := newTestPipeline(t, morphemes, nil)

	words := p.Annotate(morphemes)
	require.Len(t, words, 1)

	word := words[0]
	assert.Equal(t, "3匹", word.Surface)
	assert.Equal(t, "さんびき", word.Reading)
	assert.Equal(t, model.AccentPattern{MoraCount: 4, Downstep: 1}, word.Pattern)
	assert.Equal(t, "数詞句", word.POS2)
	require.Len(t, word.Trace, 1)
	assert.Contains(t, word.Trace[0], "numeral:")
}

func TestPipeline_UnknownCounterFallsBackToCompound(t *testing.T) {
	// 隻 is not in the counter table; the run goes through compound
	// sandhi instead of failing.
	morphemes := []model.Morpheme{
		{Surface: "2", Reading: "ニ", POS1: "名詞", POS2: "数詞"},
		{Surface: "隻", Reading: "セキ", POS1: "接尾辞", POS2: "助数詞"},
	}
	p := newTestPipeline(t, morphemes, nil)

	words := p.Annotate(morphemes)
	require.Len(t, words, 1)

	word := words[0]
	assert.Equal(t, "にせき", word.Reading)
	assert.Equal(t, model.AccentPattern{MoraCount: 3, Downstep: 1}, word.Pattern)
	assert.Equal(t, "複合", word.POS2)
}

func TestPipeline_ParticleNotContentWord(t *testing.T) {
	morphemes := []model.Morpheme{
		{Surface: "犬", Reading: "イヌ", POS1: "名詞", POS2: "一般", AType: "2"},
		{Surface: "は", Reading: "ワ", POS1: "助詞", POS2: "係助詞"},
	}
	p := newTestPipeline(t, morphemes, nil)

	words := p.Annotate(morphemes)
	require.Len(t, words, 2)

	assert.True(t, words[0].IsContentWord)
	assert.Equal(t, model.AccentPattern{MoraCount: 2, Downstep: 2}, words[0].Pattern)
	assert.False(t, words[1].IsContentWord)
}

func TestPipeline_DigitSurfaceReading(t *testing.T) {
	// A lone numeral with a digit surface gets its spelled-out reading.
	morphemes := []model.Morpheme{
		{Surface: "1952", Reading: "*", POS1: "名詞", POS2: "数詞"},
	}
	p := newTestPipeline(t, morphemes, nil)

	words := p.Annotate(morphemes)
	require.Len(t, words, 1)
	assert.Equal(t, "せんきゅうひゃくごじゅうに", words[0].Reading)
}

func TestPipeline_AnalyzeText(t *testing.T) {
	morphemes := []model.Morpheme{
		{Surface: "犬", Reading: "イヌ", POS1: "名詞", POS2: "一般", AType: "2"},
	}
	p := newTestPipeline(t, morphemes, nil)

	sentences, err := p.AnalyzeText(context.Background(), "犬。犬。")
	require.NoError(t, err)
	require.Len(t, sentences, 2)
	assert.Equal(t, "犬。", sentences[0].Original)

	content := sentences[0].ContentWords()
	require.Len(t, content, 1)
	assert.Equal(t, "犬", content[0].Surface)
}
