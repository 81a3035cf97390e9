package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/hakarun/kifuku/internal/model"

	"github.com/charmbracelet/lipgloss"
)

// ColoredReading renders a word's reading one mora at a time, high pitch in
// red, low in teal, with the accent nucleus underlined.
func ColoredReading(reading string, pattern model.AccentPattern) string {
	mora := model.SplitMora(reading)
	contour := pattern.Pattern(false)

	var b strings.Builder
	for i, m := range mora {
		if i >= len(contour) {
			b.WriteString(m)
			continue
		}
		switch {
		case i+1 == pattern.Downstep:
			b.WriteString(DownstepStyle.Render(m))
		case contour[i] == 'H':
			b.WriteString(HighStyle.Render(m))
		default:
			b.WriteString(LowStyle.Render(m))
		}
	}
	return b.String()
}

// FormatWord renders one annotated word for terminal output:
//
//	食べない  たべない [2] LHLL (nakadaka)
func FormatWord(w model.Word) string {
	shape := w.Pattern.Shape()
	line := fmt.Sprintf("%s  %s [%d] %s (%s)",
		w.Surface,
		ColoredReading(w.Reading, w.Pattern),
		w.Pattern.Downstep,
		w.Pattern.Pattern(true),
		shape)
	if len(w.Trace) > 0 {
		line += "  " + SubtleStyle.Render(strings.Join(w.Trace, " → "))
	}
	return line
}

// FormatWordPlain renders a word without ANSI styling, for piped output.
func FormatWordPlain(w model.Word) string {
	return fmt.Sprintf("%s\t%s\t[%d]\t%s\t%s",
		w.Surface, w.Reading, w.Pattern.Downstep, w.Pattern.Pattern(true), w.Pattern.Shape())
}

// FormatSentence renders a sentence header plus one line per content word.
func FormatSentence(original string, words []model.Word, plain bool) string {
	var b strings.Builder
	if plain {
		b.WriteString(original)
	} else {
		b.WriteString(TitleStyle.UnsetMargins().Render(original))
	}
	b.WriteString("\n")
	for _, w := range words {
		if !w.IsContentWord {
			continue
		}
		b.WriteString("  ")
		if plain {
			b.WriteString(FormatWordPlain(w))
		} else {
			b.WriteString(FormatWord(w))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// HTMLReading renders a reading as pitch-classed spans for Anki cards:
// <span class="pitch-h">た</span><span class="pitch-l">べ</span>...
// The nucleus gets an extra class so card CSS can mark the fall.
func HTMLReading(reading string, pattern model.AccentPattern) string {
	mora := model.SplitMora(reading)
	contour := pattern.Pattern(false)

	var b strings.Builder
	for i, m := range mora {
		class := "pitch-l"
		if i < len(contour) && contour[i] == 'H' {
			class = "pitch-h"
		}
		if i+1 == pattern.Downstep {
			class += " pitch-drop"
		}
		fmt.Fprintf(&b, `<span class="%s">%s</span>`, class, html.EscapeString(m))
	}
	return b.String()
}

// Legend returns the color legend shown under analysis output.
func Legend() string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		HighStyle.Render("高"), " ",
		LowStyle.Render("低"), " ",
		DownstepStyle.Render("核"), " ",
		SubtleStyle.Render("(下線 = アクセント核)"),
	)
}
