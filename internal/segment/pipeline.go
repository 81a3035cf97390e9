package segment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hakarun/kifuku/internal/common"
	"github.com/hakarun/kifuku/internal/model"
	"github.com/hakarun/kifuku/internal/reading"
	"github.com/hakarun/kifuku/internal/rules"
)

// POS classes the pipeline keys on.
var (
	skipPOS = map[string]struct{}{
		"助詞": {}, "助動詞": {}, "補助記号": {}, "空白": {}, "記号": {},
	}
	contentPOS = map[string]struct{}{
		"動詞": {}, "名詞": {}, "形容詞": {}, "副詞": {}, "代名詞": {},
	}
)

// Sentence is one analyzed sentence with its annotated words.
type Sentence struct {
	Original string
	Words    []model.Word
}

// ContentWords returns the words that carry accent annotation.
func (s Sentence) ContentWords() []model.Word {
	var out []model.Word
	for _, w := range s.Words {
		if w.IsContentWord {
			out = append(out, w)
		}
	}
	return out
}

// Pipeline joins the external segmenter with the three accent engines:
// verb/adjective chains go to the suffix engine, noun runs to the compound
// sandhi engine, and numeral+counter runs to the numeral engine.
//
// The override map holds lexicalized compounds with memorized accents; it
// is consulted before the sandhi engine ever sees the compound, keeping
// exception policy out of the engine itself.
type Pipeline struct {
	segmenter Segmenter
	suffix    *rules.SuffixEngine
	overrides map[string]model.AccentPattern
}

// NewPipeline wires a pipeline. overrides may be nil.
func NewPipeline(segmenter Segmenter, suffix *rules.SuffixEngine, overrides map[string]model.AccentPattern) *Pipeline {
	return &Pipeline{
		segmenter: segmenter,
		suffix:    suffix,
		overrides: overrides,
	}
}

// AnalyzeText splits text into sentences and analyzes each.
func (p *Pipeline) AnalyzeText(ctx context.Context, text string) ([]Sentence, error) {
	var sentences []Sentence
	for _, s := range ExtractSentences(text) {
		analyzed, err := p.AnalyzeSentence(ctx, s)
		if err != nil {
			return nil, err
		}
		sentences = append(sentences, analyzed)
	}
	return sentences, nil
}

// AnalyzeSentence segments one sentence and computes surface accents.
func (p *Pipeline) AnalyzeSentence(ctx context.Context, sentence string) (Sentence, error) {
	morphemes, err := p.segmenter.Segment(ctx, sentence)
	if err != nil {
		return Sentence{}, fmt.Errorf("segmenting %q: %w", sentence, err)
	}
	return Sentence{Original: sentence, Words: p.Annotate(morphemes)}, nil
}

// Annotate walks an already-segmented morpheme list and groups it into
// annotated words. Exposed separately so callers with their own analyzer
// output can skip the mecab subprocess.
func (p *Pipeline) Annotate(morphemes []model.Morpheme) []model.Word {
	var words []model.Word

	for i := 0; i < len(morphemes); {
		m := morphemes[i]

		if isNounLike(m) {
			j := i + 1
			for j < len(morphemes) && isNounLike(morphemes[j]) {
				j++
			}
			words = append(words, p.processNounRun(morphemes[i:j]))
			i = j
			continue
		}

		if m.POS1 == "動詞" || m.POS1 == "形容詞" {
			j := i + 1
			for j < len(morphemes) && isAttachable(morphemes[j]) {
				j++
			}
			chain := morphemes[i:j]
			result := p.suffix.ComputeAccent(chain)
			words = append(words, model.Word{
				Surface:       result.Surface,
				Reading:       result.Reading,
				POS1:          m.POS1,
				POS2:          m.POS2,
				Lemma:         m.Lemma,
				Pattern:       result.Pattern,
				IsContentWord: true,
				Morphemes:     chain,
				Trace:         result.Trace,
			})
			i = j
			continue
		}

		words = append(words, p.singleWord(m))
		i++
	}

	return words
}

func isNounLike(m model.Morpheme) bool {
	if m.POS1 == "名詞" || m.POS1 == "代名詞" {
		return true
	}
	if m.POS2 == "数詞" || m.POS2 == "助数詞" {
		return true
	}
	return m.POS1 == "接尾辞" && m.POS2 == "名詞的"
}

// isAttachable reports whether a morpheme continues a verb/adjective chain:
// auxiliaries and conjunctive particles such as て.
func isAttachable(m model.Morpheme) bool {
	if m.POS1 == "助動詞" {
		return true
	}
	return m.POS1 == "助詞" && m.POS2 == "接続助詞"
}

// processNounRun applies the numeral engine to numeral+counter runs and
// the sandhi engine to multi-noun runs, checking the lexicalized override
// map first.
func (p *Pipeline) processNounRun(run []model.Morpheme) model.Word {
	surface := joinSurfaces(run)

	word := model.Word{
		Surface:       surface,
		POS1:          run[0].POS1,
		POS2:          run[0].POS2,
		Lemma:         surface,
		IsContentWord: true,
		Morphemes:     run,
	}
	if len(run) > 1 {
		word.POS2 = "複合"
		word.IsCompound = true
	}

	hasNumeral := false
	hasCounter := false
	for _, m := range run {
		switch m.POS2 {
		case "数詞":
			hasNumeral = true
		case "助数詞":
			hasCounter = true
		}
	}

	if hasNumeral && hasCounter {
		if w, ok := p.numeralPhrase(run, word); ok {
			return w
		}
		// Unknown counter: fall through to compound handling.
	}

	if len(run) == 1 {
		m := run[0]
		word.Reading = readingFor(m)
		accent := m.BaseAccent()
		mora := model.CountMora(word.Reading)
		if accent > mora {
			accent = mora
		}
		word.Pattern = model.AccentPattern{MoraCount: mora, Downstep: accent}
		word.IsContentWord = isContentWord(m)
		return word
	}

	word.Reading = joinReadings(run)

	if p.overrides != nil {
		if pattern, ok := p.overrides[surface]; ok {
			word.Pattern = pattern
			word.Trace = []string{"lexicalized_override"}
			return word
		}
	}

	elements := make([]model.CompoundElement, 0, len(run))
	for _, m := range run {
		elements = append(elements, model.NewCompoundElement(m.Surface, readingFor(m), m.BaseAccent()))
	}
	combined, ruleTrace := rules.FoldCompound(elements)
	word.Pattern = combined.Pattern
	word.Trace = ruleTrace
	return word
}

// numeralPhrase computes the accent of a numeral+counter run. Returns
// false when the counter is not classified, leaving the run to the
// compound path.
func (p *Pipeline) numeralPhrase(run []model.Morpheme, word model.Word) (model.Word, bool) {
	var numeralSurface string
	var counter string
	for _, m := range run {
		switch m.POS2 {
		case "数詞":
			numeralSurface += m.Surface
		case "助数詞":
			if counter == "" {
				counter = m.Surface
			}
		}
	}

	value, _, ok := reading.ExtractNumber(numeralSurface)
	if !ok {
		return word, false
	}

	phrase, err := rules.NumeralCounterAccent(value, counter)
	if err != nil {
		if errors.Is(err, common.ErrUnknownCounter) {
			common.LogDebug("unclassified counter, using compound rules",
				common.Fields{"counter": counter, "numeral": value})
			return word, false
		}
		return word, false
	}

	word.POS2 = "数詞句"
	word.Reading = phrase.Reading
	word.Pattern = phrase.Pattern
	word.Trace = []string{fmt.Sprintf("numeral: %s", phrase.Rule)}
	return word, true
}

func (p *Pipeline) singleWord(m model.Morpheme) model.Word {
	r := readingFor(m)
	accent := m.BaseAccent()
	mora := model.CountMora(r)
	if accent > mora {
		accent = mora
	}
	return model.Word{
		Surface:       m.Surface,
		Reading:       r,
		POS1:          m.POS1,
		POS2:          m.POS2,
		Lemma:         m.Lemma,
		Pattern:       model.AccentPattern{MoraCount: mora, Downstep: accent},
		IsContentWord: isContentWord(m),
		Morphemes:     []model.Morpheme{m},
	}
}

func isContentWord(m model.Morpheme) bool {
	if _, skip := skipPOS[m.POS1]; skip {
		return false
	}
	if m.POS2 == "数詞" || m.POS2 == "助数詞" {
		return true
	}
	_, ok := contentPOS[m.POS1]
	return ok
}

// readingFor returns a morpheme's hiragana reading, converting an
// Arabic-digit surface to its spelled-out numeral reading.
func readingFor(m model.Morpheme) string {
	r := m.ReadingHira()
	if isDigits(m.Surface) {
		if n, rest, ok := reading.ExtractNumber(m.Surface); ok && rest == "" {
			return reading.NumberToReading(n)
		}
	}
	if isDigits(r) {
		if n, rest, ok := reading.ExtractNumber(r); ok && rest == "" {
			return reading.NumberToReading(n)
		}
	}
	return r
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func joinSurfaces(run []model.Morpheme) string {
	var b strings.Builder
	for _, m := range run {
		b.WriteString(m.Surface)
	}
	return b.String()
}

func joinReadings(run []model.Morpheme) string {
	var b strings.Builder
	for _, m := range run {
		b.WriteString(readingFor(m))
	}
	return b.String()
}
