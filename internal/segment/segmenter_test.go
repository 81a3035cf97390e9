package segment

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// uniDicLine builds one mecab output line with a full 27-field UniDic
// feature string, quoting fields that contain commas the way mecab does.
func uniDicLine(surface string, fields map[int]string) string {
	feats := make([]string, 27)
	for i := range feats {
		feats[i] = "*"
	}
	for i, v := range fields {
		feats[i] = v
	}
	for i, f := range feats {
		if strings.Contains(f, ",") {
			feats[i] = `"` + f + `"`
		}
	}
	return surface + "\t" + strings.Join(feats, ",")
}

func TestParseMeCabOutput(t *testing.T) {
	output := strings.Join([]string{
		uniDicLine("食べ", map[int]string{
			fieldPOS1:  "動詞",
			fieldPOS2:  "一般",
			fieldCType: "下一段-バ行",
			fieldCForm: "連用形-一般",
			fieldLemma: "食べる",
			fieldKana:  "タベ",
			fieldAType: "2",
		}),
		uniDicLine("ない", map[int]string{
			fieldPOS1:    "助動詞",
			fieldCType:   "助動詞-ナイ",
			fieldCForm:   "終止形-一般",
			fieldLemma:   "ない",
			fieldKana:    "ナイ",
			fieldAType:   "1",
			fieldConType: "動詞%F4@0,形容詞%F2@1",
		}),
		"EOS",
		"",
	}, "\n")

	morphemes, err := ParseMeCabOutput(output)
	require.NoError(t, err)
	require.Len(t, morphemes, 2)

	assert.Equal(t, "食べ", morphemes[0].Surface)
	assert.Equal(t, "タベ", morphemes[0].Reading)
	assert.Equal(t, "動詞", morphemes[0].POS1)
	assert.Equal(t, "下一段-バ行", morphemes[0].CType)
	assert.Equal(t, "食べる", morphemes[0].Lemma)
	assert.Equal(t, "2", morphemes[0].AType)

	// The comma inside aConType must survive CSV unquoting.
	assert.Equal(t, "動詞%F4@0,形容詞%F2@1", morphemes[1].ConType)
	assert.Equal(t, "助動詞", morphemes[1].POS1)
}

func TestParseMeCabOutput_ShortFeatureList(t *testing.T) {
	// Unknown words get a truncated feature list; missing fields read
	// as "*".
	morphemes, err := ParseMeCabOutput("ｷﾞｮｴｰ\t感動詞,一般,*,*,*,*\nEOS\n")
	require.NoError(t, err)
	require.Len(t, morphemes, 1)

	assert.Equal(t, "感動詞", morphemes[0].POS1)
	assert.Equal(t, "*", morphemes[0].Reading)
	assert.Equal(t, "*", morphemes[0].AType)
	assert.Equal(t, "*", morphemes[0].ConType)
}

func TestParseMeCabOutput_MalformedFeatures(t *testing.T) {
	_, err := ParseMeCabOutput("x\ta,\"unterminated\nEOS\n")
	assert.Error(t, err)
}

func TestParseMeCabOutput_SkipsEOSAndBlank(t *testing.T) {
	morphemes, err := ParseMeCabOutput("\nEOS\n\nEOS\n")
	require.NoError(t, err)
	assert.Empty(t, morphemes)
}

func TestExtractSentences(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "punctuation kept",
			text: "今日は晴れ。明日は雨！どうかな",
			want: []string{"今日は晴れ。", "明日は雨！", "どうかな"},
		},
		{
			name: "newlines split without being kept",
			text: "一行目\n二行目\n",
			want: []string{"一行目", "二行目"},
		},
		{
			name: "question mark",
			text: "元気？うん。",
			want: []string{"元気？", "うん。"},
		},
		{
			name: "empty",
			text: "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractSentences(tt.text))
		})
	}
}
