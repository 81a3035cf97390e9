package rules

import (
	"fmt"

	"github.com/hakarun/kifuku/internal/common"
	"github.com/hakarun/kifuku/internal/model"
	"github.com/hakarun/kifuku/internal/reading"
)

// CounterCategory is the Miyazaki-style classification bucket of a counter
// word. The set is closed (α-ν); the category jointly with the numeral
// selects the accent behavior of the phrase.
type CounterCategory string

// The counter categories.
const (
	CategoryAlpha   CounterCategory = "α"
	CategoryBeta    CounterCategory = "β"
	CategoryGamma   CounterCategory = "γ"
	CategoryDelta   CounterCategory = "δ"
	CategoryEpsilon CounterCategory = "ε"
	CategoryZeta    CounterCategory = "ζ"
	CategoryEta     CounterCategory = "η"
	CategoryTheta   CounterCategory = "θ"
	CategoryIota    CounterCategory = "ι"
	CategoryKappa   CounterCategory = "κ"
	CategoryLambda  CounterCategory = "λ"
	CategoryMu      CounterCategory = "μ"
	CategoryNu      CounterCategory = "ν"
)

// counterCategories assigns each known counter to its category.
var counterCategories = map[string]CounterCategory{
	"つ": CategoryAlpha, "個": CategoryAlpha, "枚": CategoryAlpha,
	"本": CategoryBeta, "杯": CategoryBeta,
	"階": CategoryGamma, "軒": CategoryGamma,
	"年": CategoryDelta, "月": CategoryDelta, "週": CategoryDelta,
	"回": CategoryEpsilon, "度": CategoryEpsilon,
	"分": CategoryZeta, "秒": CategoryZeta,
	"円": CategoryEta,
	"歳": CategoryTheta, "才": CategoryTheta,
	"時": CategoryIota, "時間": CategoryIota,
	"日": CategoryKappa, "日間": CategoryKappa,
	"人": CategoryLambda, "名": CategoryLambda,
	"台": CategoryMu, "匹": CategoryMu, "頭": CategoryMu,
	"番": CategoryNu, "号": CategoryNu,
}

// CounterRule selects how a numeral phrase is accented.
type CounterRule int

// The rule codes of the numeral-counter table.
const (
	RuleNormalSandhi   CounterRule = iota // fall through to the length rules
	RuleHeiban                            // force heiban
	RuleCounterInitial                    // accent the counter's first mora
	RuleCounterFinal                      // accent the counter's last mora
	RuleAtamadaka                         // accent the phrase's first mora
)

type overrideKey struct {
	Numeral  int
	Category CounterCategory
}

// Override table for irregular (numeral, category) pairs. The bucketed
// default handles everything absent here.
var numeralCounterOverrides = map[overrideKey]CounterRule{
	// 年 group: heiban throughout.
	{1, CategoryDelta}: RuleHeiban, {2, CategoryDelta}: RuleHeiban,
	{3, CategoryDelta}: RuleHeiban, {4, CategoryDelta}: RuleHeiban,
	{5, CategoryDelta}: RuleHeiban, {6, CategoryDelta}: RuleHeiban,
	{7, CategoryDelta}: RuleHeiban, {8, CategoryDelta}: RuleHeiban,
	{9, CategoryDelta}: RuleHeiban, {10, CategoryDelta}: RuleHeiban,

	// 人 group: suppletive readings for 1-2, heiban for 3-4, counter-initial above.
	{1, CategoryLambda}: RuleNormalSandhi, {2, CategoryLambda}: RuleNormalSandhi,
	{3, CategoryLambda}: RuleHeiban, {4, CategoryLambda}: RuleHeiban,
	{5, CategoryLambda}: RuleCounterInitial, {6, CategoryLambda}: RuleCounterInitial,
	{7, CategoryLambda}: RuleCounterInitial, {8, CategoryLambda}: RuleCounterInitial,
	{9, CategoryLambda}: RuleCounterInitial, {10, CategoryLambda}: RuleCounterInitial,

	// 本 group.
	{1, CategoryBeta}: RuleCounterInitial, {2, CategoryBeta}: RuleCounterInitial,
	{3, CategoryBeta}: RuleNormalSandhi, {4, CategoryBeta}: RuleCounterInitial,
	{5, CategoryBeta}: RuleCounterInitial, {6, CategoryBeta}: RuleNormalSandhi,
	{7, CategoryBeta}: RuleCounterInitial, {8, CategoryBeta}: RuleNormalSandhi,
	{9, CategoryBeta}: RuleCounterInitial, {10, CategoryBeta}: RuleNormalSandhi,

	// 円 group: heiban throughout.
	{1, CategoryEta}: RuleHeiban, {2, CategoryEta}: RuleHeiban,
	{3, CategoryEta}: RuleHeiban, {4, CategoryEta}: RuleHeiban,
	{5, CategoryEta}: RuleHeiban, {6, CategoryEta}: RuleHeiban,
	{7, CategoryEta}: RuleHeiban, {8, CategoryEta}: RuleHeiban,
	{9, CategoryEta}: RuleHeiban, {10, CategoryEta}: RuleHeiban,

	// 回 group.
	{1, CategoryEpsilon}: RuleCounterInitial, {2, CategoryEpsilon}: RuleHeiban,
	{3, CategoryEpsilon}: RuleHeiban, {4, CategoryEpsilon}: RuleHeiban,
	{5, CategoryEpsilon}: RuleHeiban, {6, CategoryEpsilon}: RuleNormalSandhi,
	{7, CategoryEpsilon}: RuleHeiban, {8, CategoryEpsilon}: RuleNormalSandhi,
	{9, CategoryEpsilon}: RuleHeiban, {10, CategoryEpsilon}: RuleNormalSandhi,

	// 時 group: counter-initial throughout.
	{1, CategoryIota}: RuleCounterInitial, {2, CategoryIota}: RuleCounterInitial,
	{3, CategoryIota}: RuleCounterInitial, {4, CategoryIota}: RuleCounterInitial,
	{5, CategoryIota}: RuleCounterInitial, {6, CategoryIota}: RuleCounterInitial,
	{7, CategoryIota}: RuleCounterInitial, {8, CategoryIota}: RuleCounterInitial,
	{9, CategoryIota}: RuleCounterInitial, {10, CategoryIota}: RuleCounterInitial,

	// 日 group: suppletive date readings; normal sandhi fits them best.
	{1, CategoryKappa}: RuleNormalSandhi, {2, CategoryKappa}: RuleNormalSandhi,
	{3, CategoryKappa}: RuleNormalSandhi, {4, CategoryKappa}: RuleNormalSandhi,
	{5, CategoryKappa}: RuleNormalSandhi, {6, CategoryKappa}: RuleNormalSandhi,
	{7, CategoryKappa}: RuleNormalSandhi, {8, CategoryKappa}: RuleNormalSandhi,
	{9, CategoryKappa}: RuleNormalSandhi, {10, CategoryKappa}: RuleNormalSandhi,

	// 匹/頭/台 group: さんびき and friends are atamadaka for 3 only.
	{3, CategoryMu}: RuleAtamadaka,
}

// ClassifyCounter returns the accent category of a counter word.
// An unknown counter is a recoverable gap, not a configuration error: the
// caller decides whether to fall back to a default pattern or surface it.
func ClassifyCounter(counter string) (CounterCategory, error) {
	cat, ok := counterCategories[counter]
	if !ok {
		return "", fmt.Errorf("%w: %q", common.ErrUnknownCounter, counter)
	}
	return cat, nil
}

// NumeralPhrase is the accent assignment for a numeral+counter phrase.
type NumeralPhrase struct {
	Reading string // full hiragana reading, alternations applied
	Pattern model.AccentPattern
	Rule    string // trace label of the rule that fired
}

// NumeralCounterAccent computes the accent of a numeral+counter phrase.
// Exact (numeral, category) overrides win over the bucketed default;
// numerals above ten with no override default to heiban.
func NumeralCounterAccent(numeral int, counter string) (NumeralPhrase, error) {
	category, err := ClassifyCounter(counter)
	if err != nil {
		return NumeralPhrase{}, err
	}

	numReading, counterReading := reading.NumeralCounterReading(numeral, counter)
	full := numReading + counterReading
	totalMora := model.CountMora(full)
	numMora := model.CountMora(numReading)
	counterMora := model.CountMora(counterReading)

	rule, hasOverride := numeralCounterOverrides[overrideKey{numeral, category}]
	if !hasOverride {
		if numeral > 10 {
			return NumeralPhrase{
				Reading: full,
				Pattern: model.AccentPattern{MoraCount: totalMora, Downstep: 0},
				Rule:    "large_number_default_heiban",
			}, nil
		}
		rule = RuleNormalSandhi
	}

	var downstep int
	var label string
	switch rule {
	case RuleNormalSandhi:
		// Same length rules as a noun compound boundary.
		if counterMora <= 2 {
			downstep = numMora
		} else {
			downstep = numMora + 1
		}
		label = fmt.Sprintf("normal_sandhi_cat_%s", category)
	case RuleHeiban:
		downstep = 0
		label = fmt.Sprintf("heiban_cat_%s", category)
	case RuleCounterInitial:
		downstep = numMora + 1
		label = fmt.Sprintf("counter_initial_cat_%s", category)
	case RuleCounterFinal:
		downstep = totalMora
		label = fmt.Sprintf("counter_final_cat_%s", category)
	case RuleAtamadaka:
		downstep = 1
		label = fmt.Sprintf("atamadaka_cat_%s", category)
	}

	if downstep > totalMora {
		downstep = totalMora
	}
	return NumeralPhrase{
		Reading: full,
		Pattern: model.AccentPattern{MoraCount: totalMora, Downstep: downstep},
		Rule:    label,
	}, nil
}
