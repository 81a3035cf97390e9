package rules

import (
	"strings"
	"testing"

	"github.com/hakarun/kifuku/internal/model"
)

func elem(surface, reading string, accent int) model.CompoundElement {
	return model.NewCompoundElement(surface, reading, accent)
}

func TestCombineCompound_DeaccentingSuffix(t *testing.T) {
	got, rule := CombineCompound(elem("文化", "ぶんか", 1), elem("的", "てき", 0))
	if !got.Pattern.IsHeiban() {
		t.Errorf("deaccenting suffix: Pattern = %+v", got.Pattern)
	}
	if rule != "heiban_suffix" {
		t.Errorf("rule = %q", rule)
	}
	if got.Reading != "ぶんかてき" {
		t.Errorf("Reading = %q", got.Reading)
	}
}

func TestCombineCompound_ShortN2Boundary(t *testing.T) {
	// N2 of 1-2 mora: the accent lands on N1's final mora.
	got, rule := CombineCompound(elem("神", "かみ", 1), elem("様", "さま", 0))
	want := model.AccentPattern{MoraCount: 4, Downstep: 2}
	if got.Pattern != want {
		t.Errorf("Pattern = %+v, want %+v", got.Pattern, want)
	}
	if rule != "N2≤2_boundary" {
		t.Errorf("rule = %q", rule)
	}
}

func TestCombineCompound_ShortN2SpecialMoraShift(t *testing.T) {
	// N1 ends in ん: the boundary accent shifts left onto an accentable mora.
	got, rule := CombineCompound(elem("日本", "にほん", 2), elem("人", "じん", 0))
	want := model.AccentPattern{MoraCount: 5, Downstep: 2}
	if got.Pattern != want {
		t.Errorf("Pattern = %+v, want %+v", got.Pattern, want)
	}
	if !strings.HasPrefix(rule, "N2≤2_special_shift") {
		t.Errorf("rule = %q", rule)
	}
}

func TestCombineCompound_MidN2HeibanTakesInitial(t *testing.T) {
	// N2 of 3-4 mora, heiban: accent on N2's first mora.
	got, rule := CombineCompound(elem("安全", "あんぜん", 0), elem("保障", "ほしょう", 0))
	want := model.AccentPattern{MoraCount: 7, Downstep: 5}
	if got.Pattern != want {
		t.Errorf("Pattern = %+v, want %+v", got.Pattern, want)
	}
	if rule != "N2=3-4_heiban/odaka→N2_initial" {
		t.Errorf("rule = %q", rule)
	}
}

func TestCombineCompound_MidN2OdakaTakesInitial(t *testing.T) {
	// Odaka N2 behaves like heiban at a compound boundary.
	got, _ := CombineCompound(elem("株式", "かぶしき", 0), elem("男", "おとこ", 3))
	want := model.AccentPattern{MoraCount: 7, Downstep: 5}
	if got.Pattern != want {
		t.Errorf("Pattern = %+v, want %+v", got.Pattern, want)
	}
}

func TestCombineCompound_MidN2AccentedPreserved(t *testing.T) {
	// Accented (non-odaka) N2 keeps its accent under offset.
	got, rule := CombineCompound(elem("夏", "なつ", 2), elem("休み", "やすみ", 1))
	want := model.AccentPattern{MoraCount: 5, Downstep: 3}
	if got.Pattern != want {
		t.Errorf("Pattern = %+v, want %+v", got.Pattern, want)
	}
	if rule != "N2=3-4_preserve_N2" {
		t.Errorf("rule = %q", rule)
	}
}

func TestCombineCompound_LongN2Heiban(t *testing.T) {
	got, rule := CombineCompound(elem("総合", "そうごう", 0), elem("体育館", "たいいくかん", 0))
	if !got.Pattern.IsHeiban() {
		t.Errorf("Pattern = %+v", got.Pattern)
	}
	if rule != "N2≥5_heiban→compound_heiban" {
		t.Errorf("rule = %q", rule)
	}
}

func TestCombineCompound_LongN2Accented(t *testing.T) {
	got, rule := CombineCompound(elem("国立", "こくりつ", 0), elem("美術館", "びじゅつかん", 3))
	// びじゅつかん is 5 mora with accent 3; offset by N1's 4.
	want := model.AccentPattern{MoraCount: 9, Downstep: 7}
	if got.Pattern != want {
		t.Errorf("Pattern = %+v, want %+v", got.Pattern, want)
	}
	if rule != "N2≥5_preserve_N2" {
		t.Errorf("rule = %q", rule)
	}
}

func TestFoldCompound_ThreeElements(t *testing.T) {
	// ((安全+保障)+面): the first boundary accents ほ, the second pulls the
	// accent to the new N1's final mora.
	combined, trace := FoldCompound([]model.CompoundElement{
		elem("安全", "あんぜん", 0),
		elem("保障", "ほしょう", 0),
		elem("面", "めん", 1),
	})

	want := model.AccentPattern{MoraCount: 9, Downstep: 7}
	if combined.Pattern != want {
		t.Errorf("Pattern = %+v, want %+v", combined.Pattern, want)
	}
	if combined.Surface != "安全保障面" {
		t.Errorf("Surface = %q", combined.Surface)
	}
	if len(trace) != 2 {
		t.Errorf("trace = %v, want two boundary applications", trace)
	}
}

func TestFoldCompound_Single(t *testing.T) {
	combined, trace := FoldCompound([]model.CompoundElement{elem("山", "やま", 2)})
	if combined.Pattern.Downstep != 2 {
		t.Errorf("Pattern = %+v", combined.Pattern)
	}
	if len(trace) != 1 || trace[0] != "single_noun" {
		t.Errorf("trace = %v", trace)
	}
}

func TestFoldCompound_Empty(t *testing.T) {
	combined, trace := FoldCompound(nil)
	if combined.Surface != "" || trace != nil {
		t.Errorf("empty fold produced %+v, %v", combined, trace)
	}
}

func TestCombineCompound_InvariantHolds(t *testing.T) {
	// Every combination keeps 0 <= downstep <= mora.
	readings := []struct {
		reading string
		accent  int
	}{
		{"か", 0}, {"か", 1}, {"やま", 2}, {"にほん", 0},
		{"ほしょう", 3}, {"たいいくかん", 0}, {"びじゅつかん", 3},
	}
	for _, n1 := range readings {
		for _, n2 := range readings {
			got, rule := CombineCompound(
				elem("a", n1.reading, n1.accent),
				elem("b", n2.reading, n2.accent))
			p := got.Pattern
			if p.Downstep < 0 || p.Downstep > p.MoraCount {
				t.Errorf("invariant violated for %q+%q (%s): %+v",
					n1.reading, n2.reading, rule, p)
			}
		}
	}
}
