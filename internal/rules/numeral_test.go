package rules

import (
	"errors"
	"testing"

	"github.com/hakarun/kifuku/internal/common"
	"github.com/hakarun/kifuku/internal/model"
)

func TestClassifyCounter(t *testing.T) {
	cat, err := ClassifyCounter("本")
	if err != nil {
		t.Fatalf("ClassifyCounter(本) error: %v", err)
	}
	if cat != CategoryBeta {
		t.Errorf("本 classified as %s, want β", cat)
	}

	_, err = ClassifyCounter("隻")
	if !errors.Is(err, common.ErrUnknownCounter) {
		t.Errorf("unknown counter error = %v, want ErrUnknownCounter", err)
	}
}

func TestNumeralCounterAccent(t *testing.T) {
	tests := []struct {
		name    string
		numeral int
		counter string
		reading string
		want    model.AccentPattern
	}{
		{
			name: "いっぽん sokuon and handakuon", numeral: 1, counter: "本",
			reading: "いっぽん",
			want:    model.AccentPattern{MoraCount: 4, Downstep: 3},
		},
		{
			name: "さんぼん rendaku, normal sandhi", numeral: 3, counter: "本",
			reading: "さんぼん",
			want:    model.AccentPattern{MoraCount: 4, Downstep: 2},
		},
		{
			name: "さんびき atamadaka override", numeral: 3, counter: "匹",
			reading: "さんびき",
			want:    model.AccentPattern{MoraCount: 4, Downstep: 1},
		},
		{
			name: "ひとり suppletive reading", numeral: 1, counter: "人",
			reading: "ひとり",
			want:    model.AccentPattern{MoraCount: 3, Downstep: 2},
		},
		{
			name: "さんにん heiban override", numeral: 3, counter: "人",
			reading: "さんにん",
			want:    model.AccentPattern{MoraCount: 4, Downstep: 0},
		},
		{
			name: "にねん heiban group", numeral: 2, counter: "年",
			reading: "にねん",
			want:    model.AccentPattern{MoraCount: 3, Downstep: 0},
		},
		{
			name: "よじ suppletive reading", numeral: 4, counter: "時",
			reading: "よじ",
			want:    model.AccentPattern{MoraCount: 2, Downstep: 2},
		},
		{
			name: "large numeral defaults to heiban", numeral: 25, counter: "円",
			reading: "にじゅうごえん",
			want:    model.AccentPattern{MoraCount: 6, Downstep: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			phrase, err := NumeralCounterAccent(tt.numeral, tt.counter)
			if err != nil {
				t.Fatalf("NumeralCounterAccent error: %v", err)
			}
			if phrase.Reading != tt.reading {
				t.Errorf("Reading = %q, want %q", phrase.Reading, tt.reading)
			}
			if phrase.Pattern != tt.want {
				t.Errorf("Pattern = %+v, want %+v", phrase.Pattern, tt.want)
			}
		})
	}
}

func TestNumeralCounterAccent_UnknownCounter(t *testing.T) {
	_, err := NumeralCounterAccent(2, "隻")
	if !errors.Is(err, common.ErrUnknownCounter) {
		t.Errorf("error = %v, want ErrUnknownCounter", err)
	}
}

// The engine is a pure function: same inputs, same outputs, and the
// downstep invariant holds across the whole input space.
func TestNumeralCounterAccent_PureAndBounded(t *testing.T) {
	counters := []string{"つ", "個", "本", "杯", "階", "年", "回", "分", "円", "歳", "時", "日", "人", "台", "匹", "番"}
	for n := 1; n <= 30; n++ {
		for _, c := range counters {
			first, err := NumeralCounterAccent(n, c)
			if err != nil {
				t.Fatalf("NumeralCounterAccent(%d, %s) error: %v", n, c, err)
			}
			second, err := NumeralCounterAccent(n, c)
			if err != nil {
				t.Fatalf("NumeralCounterAccent(%d, %s) second call error: %v", n, c, err)
			}
			if first != second {
				t.Errorf("NumeralCounterAccent(%d, %s) not deterministic: %+v vs %+v", n, c, first, second)
			}
			p := first.Pattern
			if p.Downstep < 0 || p.Downstep > p.MoraCount {
				t.Errorf("NumeralCounterAccent(%d, %s) violated invariant: %+v", n, c, p)
			}
		}
	}
}
