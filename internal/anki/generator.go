// Package anki generates pitch-accent flashcards from analyzed sentences.
// Cards are written as tab-separated files that Anki imports directly.
package anki

import (
	"context"
	"fmt"
	"strings"

	"github.com/hakarun/kifuku/internal/model"
	"github.com/hakarun/kifuku/internal/render"
	"github.com/hakarun/kifuku/internal/rules"
	"github.com/hakarun/kifuku/internal/segment"
)

// Card is one flashcard: the bare surface on the front, the pitch-marked
// reading and metadata on the back.
type Card struct {
	Front   string
	Back    string // HTML with pitch spans
	Reading string
	Accent  int
	Shape   string
	Tags    string
}

// Generator turns sentences into word and conjugation cards.
type Generator struct {
	pipeline *segment.Pipeline
	suffix   *rules.SuffixEngine
}

// NewGenerator wires a card generator over an analysis pipeline.
func NewGenerator(pipeline *segment.Pipeline, suffix *rules.SuffixEngine) *Generator {
	return &Generator{pipeline: pipeline, suffix: suffix}
}

// GenerateFromText analyzes text and emits one card per content word,
// deduplicated on surface+reading.
func (g *Generator) GenerateFromText(ctx context.Context, text string) ([]Card, error) {
	sentences, err := g.pipeline.AnalyzeText(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("analyzing card source: %w", err)
	}

	seen := make(map[string]struct{})
	var cards []Card
	for _, s := range sentences {
		for _, w := range s.ContentWords() {
			key := w.Surface + "|" + w.Reading
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			cards = append(cards, WordCard(w, s.Original))
		}
	}
	return cards, nil
}

// WordCard builds one card for an annotated word. The sentence the word
// came from goes on the back as context.
func WordCard(w model.Word, sentence string) Card {
	var back strings.Builder
	back.WriteString(render.HTMLReading(w.Reading, w.Pattern))
	fmt.Fprintf(&back, ` <span class="accent-number">[%d]</span>`, w.Pattern.Downstep)
	if sentence != "" && sentence != w.Surface {
		fmt.Fprintf(&back, `<br><span class="context">%s</span>`, sentence)
	}

	return Card{
		Front:   w.Surface,
		Back:    back.String(),
		Reading: w.Reading,
		Accent:  w.Pattern.Downstep,
		Shape:   w.Pattern.Shape().String(),
		Tags:    "kifuku " + tagForPOS(w.POS1),
	}
}

func tagForPOS(pos1 string) string {
	switch pos1 {
	case "動詞":
		return "verb"
	case "形容詞":
		return "adjective"
	case "名詞", "代名詞":
		return "noun"
	case "副詞":
		return "adverb"
	default:
		return "other"
	}
}

// conjugationForm is one drilled inflection: the auxiliary chain appended
// to a stem, plus the surface stem transformation that licenses it.
type conjugationForm struct {
	label    string
	suffixes []model.Morpheme
}

var verbForms = []conjugationForm{
	{label: "過去", suffixes: []model.Morpheme{{Surface: "た", Reading: "タ", POS1: "助動詞", CType: "助動詞-タ"}}},
	{label: "テ形", suffixes: []model.Morpheme{{Surface: "て", Reading: "テ", POS1: "助詞", POS2: "接続助詞"}}},
	{label: "否定", suffixes: []model.Morpheme{{Surface: "ない", Reading: "ナイ", POS1: "助動詞", CType: "助動詞-ナイ"}}},
	{label: "丁寧", suffixes: []model.Morpheme{{Surface: "ます", Reading: "マス", POS1: "助動詞", CType: "助動詞-マス"}}},
}

var adjectiveForms = []conjugationForm{
	{label: "過去", suffixes: []model.Morpheme{{Surface: "かった", Reading: "カッタ", POS1: "助動詞"}}},
	{label: "否定", suffixes: []model.Morpheme{{Surface: "くない", Reading: "クナイ", POS1: "助動詞"}}},
	{label: "テ形", suffixes: []model.Morpheme{{Surface: "くて", Reading: "クテ", POS1: "助詞", POS2: "接続助詞"}}},
}

// ConjugationCards drills a verb or adjective through its basic inflections,
// one card per form, each accent computed by the suffix engine.
func (g *Generator) ConjugationCards(m model.Morpheme) []Card {
	var forms []conjugationForm
	switch posClass(m) {
	case "動詞":
		forms = verbForms
	case "形容詞":
		forms = adjectiveForms
	default:
		return nil
	}

	stem, ok := conjugationStem(m)
	if !ok {
		return nil
	}

	var cards []Card
	for _, f := range forms {
		chain := append([]model.Morpheme{stem}, f.suffixes...)
		result := g.suffix.ComputeAccent(chain)

		var back strings.Builder
		back.WriteString(render.HTMLReading(result.Reading, result.Pattern))
		fmt.Fprintf(&back, ` <span class="accent-number">[%d]</span>`, result.Pattern.Downstep)

		cards = append(cards, Card{
			Front:   fmt.Sprintf("%s (%s)", m.Surface, f.label),
			Back:    back.String(),
			Reading: result.Reading,
			Accent:  result.Pattern.Downstep,
			Shape:   result.Pattern.Shape().String(),
			Tags:    "kifuku conjugation " + tagForPOS(posClass(m)),
		})
	}
	return cards
}

func posClass(m model.Morpheme) string {
	switch {
	case strings.HasPrefix(m.POS1, "動詞"):
		return "動詞"
	case strings.HasPrefix(m.POS1, "形容詞"):
		return "形容詞"
	default:
		return m.POS1
	}
}

// conjugationStem strips the dictionary-form ending so the suffix chain
// reads naturally. Only ichidan verbs and i-adjectives inflect by bare
// truncation; godan verbs keep their analyzer-supplied conjugated forms
// and are not drilled here.
func conjugationStem(m model.Morpheme) (model.Morpheme, bool) {
	stem := m
	switch posClass(m) {
	case "動詞":
		if !strings.Contains(m.CType, "一段") {
			return model.Morpheme{}, false
		}
		if !strings.HasSuffix(m.Surface, "る") {
			return model.Morpheme{}, false
		}
		stem.Surface = strings.TrimSuffix(m.Surface, "る")
		stem.Reading = strings.TrimSuffix(m.Reading, "ル")
	case "形容詞":
		if !strings.HasSuffix(m.Surface, "い") {
			return model.Morpheme{}, false
		}
		stem.Surface = strings.TrimSuffix(m.Surface, "い")
		stem.Reading = strings.TrimSuffix(m.Reading, "イ")
	default:
		return model.Morpheme{}, false
	}
	if stem.Surface == "" || stem.Reading == "" {
		return model.Morpheme{}, false
	}
	return stem, true
}
