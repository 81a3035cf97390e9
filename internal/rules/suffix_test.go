package rules

import (
	"strings"
	"testing"

	"github.com/hakarun/kifuku/internal/model"
)

func newTestEngine(t *testing.T) *SuffixEngine {
	t.Helper()
	table, err := LoadSuffixTable()
	if err != nil {
		t.Fatalf("failed to load suffix table: %v", err)
	}
	return NewSuffixEngine(table)
}

func TestSuffixEngine_TabenaiChain(t *testing.T) {
	engine := newTestEngine(t)

	// 食べ[2] + ない(F4@0): the accent lands on the stem's final mora.
	result := engine.ComputeAccent([]model.Morpheme{
		{Surface: "食べ", Reading: "タベ", POS1: "動詞", CType: "下一段-バ行", AType: "2"},
		{Surface: "ない", Reading: "ナイ", POS1: "助動詞", CType: "助動詞-ナイ", ConType: "動詞%F4@0"},
	})

	if result.Surface != "食べない" {
		t.Errorf("Surface = %q", result.Surface)
	}
	if result.Reading != "たべない" {
		t.Errorf("Reading = %q", result.Reading)
	}
	want := model.AccentPattern{MoraCount: 4, Downstep: 2}
	if result.Pattern != want {
		t.Errorf("Pattern = %+v, want %+v", result.Pattern, want)
	}
}

func TestSuffixEngine_TableFallback(t *testing.T) {
	engine := newTestEngine(t)

	// The analyzer gave ない no aConType of its own; the static table
	// supplies the same F4@0 rule.
	result := engine.ComputeAccent([]model.Morpheme{
		{Surface: "食べ", Reading: "タベ", POS1: "動詞", AType: "2"},
		{Surface: "ない", Reading: "ナイ", POS1: "助動詞", ConType: "*"},
	})

	want := model.AccentPattern{MoraCount: 4, Downstep: 2}
	if result.Pattern != want {
		t.Errorf("Pattern = %+v, want %+v", result.Pattern, want)
	}
}

func TestSuffixEngine_MasuChain(t *testing.T) {
	engine := newTestEngine(t)

	// 食べ[2] + ます(F4@1): accent on ま.
	result := engine.ComputeAccent([]model.Morpheme{
		{Surface: "食べ", Reading: "タベ", POS1: "動詞", AType: "2"},
		{Surface: "ます", Reading: "マス", POS1: "助動詞", ConType: "*"},
	})

	want := model.AccentPattern{MoraCount: 4, Downstep: 3}
	if result.Pattern != want {
		t.Errorf("Pattern = %+v, want %+v", result.Pattern, want)
	}
}

func TestSuffixEngine_AdjectivePast(t *testing.T) {
	engine := newTestEngine(t)

	// 高[2] + かった(F6@0@1, accented branch): accent one past the stem.
	result := engine.ComputeAccent([]model.Morpheme{
		{Surface: "高", Reading: "タカ", POS1: "形容詞", AType: "2"},
		{Surface: "かった", Reading: "カッタ", POS1: "助動詞", ConType: "*"},
	})

	want := model.AccentPattern{MoraCount: 5, Downstep: 3}
	if result.Pattern != want {
		t.Errorf("Pattern = %+v, want %+v", result.Pattern, want)
	}
}

func TestSuffixEngine_UnknownSuffixPreserves(t *testing.T) {
	engine := newTestEngine(t)

	result := engine.ComputeAccent([]model.Morpheme{
		{Surface: "食べ", Reading: "タベ", POS1: "動詞", AType: "2"},
		{Surface: "ぽよ", Reading: "ポヨ", POS1: "助動詞", ConType: "*"},
	})

	want := model.AccentPattern{MoraCount: 4, Downstep: 2}
	if result.Pattern != want {
		t.Errorf("Pattern = %+v, want %+v", result.Pattern, want)
	}

	found := false
	for _, line := range result.Trace {
		if strings.Contains(line, "no rule found") {
			found = true
		}
	}
	if !found {
		t.Errorf("trace does not record the missing rule: %v", result.Trace)
	}
}

func TestSuffixEngine_ModTypeOnStem(t *testing.T) {
	engine := newTestEngine(t)

	// A conjugated stem carries M4@1: the dictionary accent shifts left
	// before any suffix combines.
	result := engine.ComputeAccent([]model.Morpheme{
		{Surface: "書い", Reading: "カイ", POS1: "動詞", AType: "1", ModType: "M4@1"},
		{Surface: "た", Reading: "タ", POS1: "助動詞", ConType: "動詞%F1"},
	})

	// base 1 shifted by 1 floors at heiban; F1 preserves it.
	want := model.AccentPattern{MoraCount: 3, Downstep: 0}
	if result.Pattern != want {
		t.Errorf("Pattern = %+v, want %+v", result.Pattern, want)
	}
}

func TestSuffixEngine_MultiValuedAType(t *testing.T) {
	engine := newTestEngine(t)

	result := engine.ComputeAccent([]model.Morpheme{
		{Surface: "人", Reading: "ヒト", POS1: "名詞", AType: "2,0"},
	})

	if result.Pattern.Downstep != 2 {
		t.Errorf("multi-valued aType: Downstep = %d, want 2", result.Pattern.Downstep)
	}
}

func TestSuffixEngine_EmptyInput(t *testing.T) {
	engine := newTestEngine(t)
	result := engine.ComputeAccent(nil)
	if result.Surface != "" || result.Pattern.MoraCount != 0 {
		t.Errorf("empty input produced %+v", result)
	}
}
