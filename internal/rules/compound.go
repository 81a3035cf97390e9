package rules

import (
	"fmt"

	"github.com/hakarun/kifuku/internal/model"
)

// Deaccenting suffixes (平板化接尾辞): one-kanji elements that pull the
// whole compound to heiban regardless of the length rules.
var deaccentingSuffixes = map[string]struct{}{
	"語": {}, "色": {}, "的": {}, "性": {}, "化": {},
	"家": {}, "者": {}, "員": {}, "式": {}, "用": {},
	"中": {}, "内": {}, "外": {}, "上": {}, "下": {},
	"間": {}, "前": {}, "後": {}, "代": {}, "感": {},
}

// IsDeaccentingSuffix reports whether an N2 surface forces a heiban
// compound.
func IsDeaccentingSuffix(surface string) bool {
	_, ok := deaccentingSuffixes[surface]
	return ok
}

// CombineCompound derives the accent of a two-element noun compound from
// N2's mora length and shape. N1's internal accent is discarded at the
// boundary; only its mora count (and trailing special mora) matter. The
// returned rule name feeds the trace output.
//
// Lexicalized exceptions are out of scope here: callers consult their
// override map before invoking the engine.
func CombineCompound(n1, n2 model.CompoundElement) (model.CompoundElement, string) {
	n1Len := n1.Pattern.MoraCount
	n2Len := n2.Pattern.MoraCount
	total := n1Len + n2Len

	combined := model.CompoundElement{
		Surface: n1.Surface + n2.Surface,
		Reading: n1.Reading + n2.Reading,
	}

	mk := func(downstep int, rule string) (model.CompoundElement, string) {
		if downstep < 0 {
			downstep = 0
		}
		if downstep > total {
			downstep = total
		}
		combined.Pattern = model.AccentPattern{MoraCount: total, Downstep: downstep}
		return combined, rule
	}

	if IsDeaccentingSuffix(n2.Surface) {
		return mk(0, "heiban_suffix")
	}

	// N2 of 1-2 mora: accent lands on N1's final mora, shifted left past
	// any trailing special mora.
	if n2Len <= 2 {
		if model.EndsWithSpecialMora(n1.Reading) {
			shift := model.TrailingSpecialMora(n1.Reading)
			pos := n1Len - shift
			if pos < 1 {
				pos = 1
			}
			return mk(pos, fmt.Sprintf("N2≤2_special_shift_%d", shift))
		}
		return mk(n1Len, "N2≤2_boundary")
	}

	// N2 of 3-4 mora: heiban and odaka N2 accent the first mora of N2;
	// otherwise N2's internal accent survives under offset.
	if n2Len <= 4 {
		shape := n2.Pattern.Shape()
		if shape == model.Heiban || shape == model.Odaka {
			return mk(n1Len+1, "N2=3-4_heiban/odaka→N2_initial")
		}
		return mk(n1Len+n2.Pattern.Downstep, "N2=3-4_preserve_N2")
	}

	// N2 of 5+ mora: heiban N2 makes the whole compound heiban; an
	// accented N2 keeps its accent under offset.
	if n2.Pattern.IsHeiban() {
		return mk(0, "N2≥5_heiban→compound_heiban")
	}
	return mk(n1Len+n2.Pattern.Downstep, "N2≥5_preserve_N2")
}

// FoldCompound reduces a 3+ element compound with an explicit left fold:
// ((N1+N2)+N3)+N4. The fold order is part of the contract, not a call-order
// accident.
func FoldCompound(elements []model.CompoundElement) (model.CompoundElement, []string) {
	switch len(elements) {
	case 0:
		return model.CompoundElement{}, nil
	case 1:
		return elements[0], []string{"single_noun"}
	}

	var rules []string
	current, rule := CombineCompound(elements[0], elements[1])
	rules = append(rules, fmt.Sprintf("%s+%s: %s", elements[0].Surface, elements[1].Surface, rule))

	for _, next := range elements[2:] {
		current, rule = CombineCompound(current, next)
		rules = append(rules, fmt.Sprintf("+%s: %s", next.Surface, rule))
	}
	return current, rules
}
