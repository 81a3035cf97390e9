// Package rules implements the three Tokyo-dialect accent rule engines:
// suffix combination (UniDic F-types), compound noun sandhi, and
// numeral-counter accent assignment. All three operate on the shared
// AccentPattern representation and are pure functions over their inputs;
// the rule tables are loaded once and never mutated.
package rules

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/hakarun/kifuku/internal/common"
	"github.com/hakarun/kifuku/internal/model"
)

// FType is a UniDic accent combination rule code. The set is closed: every
// aConType entry names one of F1-F6, and an unrecognized code is a broken
// rule table, not bad input.
type FType int

// The six F-type combination rules.
const (
	F1 FType = iota + 1 // preserve the preceding accent
	F2                  // heiban -> N1+M, else preserve
	F3                  // heiban -> stay heiban, else N1+M
	F4                  // always N1+M
	F5                  // always heiban
	F6                  // heiban -> N1+M, else N1+L
)

func (f FType) String() string {
	if f < F1 || f > F6 {
		return fmt.Sprintf("FType(%d)", int(f))
	}
	return fmt.Sprintf("F%d", int(f))
}

// FRule is one parsed aConType entry: an F-type plus its M (position
// offset) and L (F6 alternate offset) parameters.
type FRule struct {
	Type FType
	M    int
	L    int
}

func (r FRule) String() string {
	s := r.Type.String()
	if r.M != 0 || r.Type == F4 || r.Type == F2 || r.Type == F6 {
		s += fmt.Sprintf("@%d", r.M)
	}
	if r.Type == F6 {
		s += fmt.Sprintf(",%d", r.L)
	}
	return s
}

var fRuleRe = regexp.MustCompile(`^F([1-6])(?:@(-?\d+))?(?:@(-?\d+))?$`)

// ParseFRule parses a single rule spec such as "F4@1" or "F6@0@1".
func ParseFRule(spec string) (FRule, error) {
	m := fRuleRe.FindStringSubmatch(spec)
	if m == nil {
		return FRule{}, fmt.Errorf("%w: %q", common.ErrUnknownFType, spec)
	}
	n, _ := strconv.Atoi(m[1])
	rule := FRule{Type: FType(n)}
	if m[2] != "" {
		rule.M, _ = strconv.Atoi(m[2])
	}
	if m[3] != "" {
		rule.L, _ = strconv.Atoi(m[3])
	}
	return rule, nil
}

// ParseConType extracts the rule applying after a given part of speech from
// a full aConType value such as "動詞%F4@1,名詞%F1". The second return is
// false when no entry matches posKey.
func ParseConType(conType, posKey string) (FRule, bool) {
	if conType == "" || conType == "*" {
		return FRule{}, false
	}
	for _, part := range strings.Split(conType, ",") {
		pos, spec, ok := strings.Cut(part, "%")
		if !ok || pos != posKey {
			continue
		}
		rule, err := ParseFRule(spec)
		if err != nil {
			continue
		}
		return rule, true
	}
	return FRule{}, false
}

// Combine applies an F-type rule at a stem-suffix boundary and returns the
// accent pattern of the combined form. The stem pattern is never mutated.
// Zero-mora suffixes are legal: they leave the mora count alone but may
// still move the downstep.
func Combine(stem model.AccentPattern, rule FRule, suffixMora int) model.AccentPattern {
	var downstep int

	switch rule.Type {
	case F1:
		downstep = stem.Downstep
	case F2:
		if stem.IsHeiban() {
			downstep = stem.MoraCount + rule.M
		} else {
			downstep = stem.Downstep
		}
	case F3:
		if stem.IsHeiban() {
			downstep = 0
		} else {
			downstep = stem.MoraCount + rule.M
		}
	case F4:
		downstep = stem.MoraCount + rule.M
	case F5:
		downstep = 0
	case F6:
		if stem.IsHeiban() {
			downstep = stem.MoraCount + rule.M
		} else {
			downstep = stem.MoraCount + rule.L
		}
	default:
		// Unreachable for table-validated rules; preserve.
		downstep = stem.Downstep
	}

	total := stem.MoraCount + suffixMora
	if downstep < 0 {
		downstep = 0
	}
	if downstep > total {
		downstep = total
	}
	return model.AccentPattern{MoraCount: total, Downstep: downstep}
}

var modTypeRe = regexp.MustCompile(`^M(\d+)@(-?\d+)$`)

// ApplyModType applies a UniDic aModType inflection modification to a base
// accent. M4@n shifts an accented stem left by n (heiban stays heiban);
// M1@n sets the accent to n outright (volitional forms).
func ApplyModType(modType string, baseAccent int) int {
	if modType == "" || modType == "*" {
		return baseAccent
	}
	m := modTypeRe.FindStringSubmatch(modType)
	if m == nil {
		return baseAccent
	}
	mType, _ := strconv.Atoi(m[1])
	mVal, _ := strconv.Atoi(m[2])

	switch mType {
	case 4:
		if baseAccent == 0 {
			return 0
		}
		if shifted := baseAccent - mVal; shifted > 0 {
			return shifted
		}
		return 0
	case 1:
		return mVal
	}
	return baseAccent
}
