package model

import (
	"strconv"
	"strings"
)

// Morpheme is one unit as supplied by the external morphological analyzer
// (UniDic field names kept as-is). The engines never segment text
// themselves; they consume these.
type Morpheme struct {
	Surface string
	Reading string // katakana, as UniDic emits it
	POS1    string // 品詞 major class (動詞, 名詞, ...)
	POS2    string // subclass (数詞, 助数詞, ...)
	CType   string // conjugation type
	CForm   string // conjugation form
	AType   string // base accent, possibly multi-valued ("1,0") or "*"
	ConType string // aConType combination spec, e.g. "動詞%F4@1,名詞%F1"
	ModType string // aModType inflection modification, e.g. "M4@1"
	Lemma   string
}

// BaseAccent parses the morpheme's aType field. Multi-valued entries keep
// the first listed accent; "*" and empty mean heiban.
func (m Morpheme) BaseAccent() int {
	return ParseAType(m.AType)
}

// ReadingHira returns the reading converted to hiragana, falling back to
// the surface when the analyzer gave none.
func (m Morpheme) ReadingHira() string {
	if m.Reading == "" {
		return KataToHira(m.Surface)
	}
	return KataToHira(m.Reading)
}

// MoraCount counts mora in the morpheme's reading.
func (m Morpheme) MoraCount() int {
	return CountMora(m.ReadingHira())
}

// ParseAType parses a UniDic aType value ("2", "1,0", "*") into a downstep.
func ParseAType(atype string) int {
	if atype == "" || atype == "*" {
		return 0
	}
	first := atype
	if i := strings.IndexByte(atype, ','); i >= 0 {
		first = atype[:i]
	}
	n, err := strconv.Atoi(first)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// CompoundElement is one member of a noun-noun compound: its pattern in
// isolation plus the readings the sandhi engine keys on.
type CompoundElement struct {
	Surface string
	Reading string // hiragana
	Pattern AccentPattern
}

// NewCompoundElement builds an element from a reading and an isolated
// accent value, clamping an out-of-range dictionary accent to odaka.
func NewCompoundElement(surface, reading string, accent int) CompoundElement {
	mora := CountMora(reading)
	if accent < 0 {
		accent = 0
	}
	if accent > mora {
		accent = mora
	}
	return CompoundElement{
		Surface: surface,
		Reading: reading,
		Pattern: AccentPattern{MoraCount: mora, Downstep: accent},
	}
}

// Word is a pipeline output unit: one content word (possibly a merged
// compound or numeral phrase) with its computed surface accent.
type Word struct {
	Surface       string
	Reading       string // hiragana
	POS1          string
	POS2          string
	Lemma         string
	Pattern       AccentPattern
	IsContentWord bool
	IsCompound    bool
	Morphemes     []Morpheme
	Trace         []string // rule-by-rule computation trace
}
