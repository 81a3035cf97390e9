package render

import (
	"strings"
	"testing"

	"github.com/hakarun/kifuku/internal/model"
)

func TestFormatWordPlain(t *testing.T) {
	word := model.Word{
		Surface: "食べない",
		Reading: "たべない",
		Pattern: model.AccentPattern{MoraCount: 4, Downstep: 2},
	}

	got := FormatWordPlain(word)
	want := "食べない\tたべない\t[2]\tLHLLL\tnakadaka"
	if got != want {
		t.Errorf("FormatWordPlain = %q, want %q", got, want)
	}
}

func TestFormatWordPlain_Heiban(t *testing.T) {
	word := model.Word{
		Surface: "日本",
		Reading: "にほん",
		Pattern: model.AccentPattern{MoraCount: 3, Downstep: 0},
	}

	got := FormatWordPlain(word)
	want := "日本\tにほん\t[0]\tLHHH\theiban"
	if got != want {
		t.Errorf("FormatWordPlain = %q, want %q", got, want)
	}
}

func TestFormatSentence_PlainSkipsFunctionWords(t *testing.T) {
	words := []model.Word{
		{Surface: "犬", Reading: "いぬ", Pattern: model.AccentPattern{MoraCount: 2, Downstep: 2}, IsContentWord: true},
		{Surface: "は", Reading: "わ", IsContentWord: false},
	}

	got := FormatSentence("犬は", words, true)
	if !strings.Contains(got, "犬\t") {
		t.Errorf("missing content word line: %q", got)
	}
	if strings.Contains(got, "は\t") {
		t.Errorf("particle should be skipped: %q", got)
	}
	if !strings.HasPrefix(got, "犬は\n") {
		t.Errorf("missing sentence header: %q", got)
	}
}

func TestHTMLReading(t *testing.T) {
	pattern := model.AccentPattern{MoraCount: 4, Downstep: 2}
	got := HTMLReading("たべない", pattern)

	want := `<span class="pitch-l">た</span>` +
		`<span class="pitch-h pitch-drop">べ</span>` +
		`<span class="pitch-l">な</span>` +
		`<span class="pitch-l">い</span>`
	if got != want {
		t.Errorf("HTMLReading = %q, want %q", got, want)
	}
}

func TestHTMLReading_HeibanHasNoDrop(t *testing.T) {
	pattern := model.AccentPattern{MoraCount: 3, Downstep: 0}
	got := HTMLReading("にほん", pattern)

	if strings.Contains(got, "pitch-drop") {
		t.Errorf("heiban reading must not carry a drop marker: %q", got)
	}
	if strings.Count(got, "pitch-h") != 2 {
		t.Errorf("expected two high mora: %q", got)
	}
}

func TestColoredReading_CoversAllMora(t *testing.T) {
	// Styling depends on the terminal; the mora text itself must always
	// survive in order.
	pattern := model.AccentPattern{MoraCount: 4, Downstep: 3}
	got := ColoredReading("コーヒー", pattern)

	for _, m := range model.SplitMora("コーヒー") {
		if !strings.Contains(got, m) {
			t.Errorf("mora %q missing from %q", m, got)
		}
	}
}

func TestLegend_NotEmpty(t *testing.T) {
	if Legend() == "" {
		t.Error("empty legend")
	}
}
