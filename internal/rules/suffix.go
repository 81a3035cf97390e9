package rules

import (
	"fmt"
	"strings"

	"github.com/hakarun/kifuku/internal/model"
)

// SuffixEngine merges a stem's accent with the accent behavior of the
// suffixes and auxiliaries attached to it, one boundary at a time. Each
// step consumes the previous step's output as its new stem.
type SuffixEngine struct {
	table *SuffixTable
}

// NewSuffixEngine creates an engine over a validated rule table.
func NewSuffixEngine(table *SuffixTable) *SuffixEngine {
	return &SuffixEngine{table: table}
}

// AccentResult is the outcome of a suffix-chain computation.
type AccentResult struct {
	Surface string
	Reading string // hiragana
	Pattern model.AccentPattern
	Trace   []string
}

// posKey maps a stem's POS1 onto the three classes UniDic aConType entries
// are keyed by.
func posKey(pos1 string) string {
	switch {
	case strings.Contains(pos1, "動詞") && !strings.Contains(pos1, "助動詞"):
		return "動詞"
	case strings.Contains(pos1, "形容詞"):
		return "形容詞"
	default:
		return "名詞"
	}
}

// ComputeAccent folds the suffix combination rules left to right over a
// morpheme sequence. The first morpheme supplies the base accent (with its
// aModType applied); every following morpheme contributes an F-rule taken
// from its own aConType, falling back to the static table, and failing
// that preserves the running accent.
func (e *SuffixEngine) ComputeAccent(morphemes []model.Morpheme) AccentResult {
	if len(morphemes) == 0 {
		return AccentResult{}
	}

	first := morphemes[0]
	baseAccent := first.BaseAccent()

	var trace []string
	if first.ModType != "" && first.ModType != "*" {
		modified := ApplyModType(first.ModType, baseAccent)
		trace = append(trace, fmt.Sprintf("%s: base=%d, aModType=%s → %d",
			first.Surface, baseAccent, first.ModType, modified))
		baseAccent = modified
	} else {
		trace = append(trace, fmt.Sprintf("%s: base accent=%d", first.Surface, baseAccent))
	}

	reading := first.ReadingHira()
	stemMora := model.CountMora(reading)
	if baseAccent > stemMora {
		baseAccent = stemMora
	}
	current := model.AccentPattern{MoraCount: stemMora, Downstep: baseAccent}
	surface := first.Surface
	key := posKey(first.POS1)

	for _, m := range morphemes[1:] {
		mReading := m.ReadingHira()
		mMora := model.CountMora(mReading)

		rule, ok := ParseConType(m.ConType, key)
		if !ok {
			rule, ok = e.table.Lookup(m.Surface, key)
		}

		if ok {
			prev := current
			current = Combine(current, rule, mMora)
			trace = append(trace, fmt.Sprintf("+ %s: %s (N1=%d, M1=%d) → accent=%d",
				m.Surface, rule, prev.MoraCount, prev.Downstep, current.Downstep))
		} else {
			current = model.AccentPattern{
				MoraCount: current.MoraCount + mMora,
				Downstep:  current.Downstep,
			}
			trace = append(trace, fmt.Sprintf("+ %s: no rule found, preserving accent=%d",
				m.Surface, current.Downstep))
		}

		reading += mReading
		surface += m.Surface
	}

	return AccentResult{
		Surface: surface,
		Reading: reading,
		Pattern: current,
		Trace:   trace,
	}
}
