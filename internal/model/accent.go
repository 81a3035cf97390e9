// Package model defines the value types shared by the accent engines:
// accent patterns, mora arithmetic, and analyzer-supplied morphemes.
package model

import (
	"fmt"
	"strings"
)

// Shape is the accent-shape class of a word, determined by where (and
// whether) the pitch falls.
type Shape int

// The four Tokyo-dialect accent shapes.
const (
	Heiban    Shape = iota // no fall within the word
	Atamadaka              // falls after the first mora
	Nakadaka               // falls word-internally
	Odaka                  // falls only on a following particle
)

func (s Shape) String() string {
	switch s {
	case Heiban:
		return "heiban"
	case Atamadaka:
		return "atamadaka"
	case Nakadaka:
		return "nakadaka"
	case Odaka:
		return "odaka"
	default:
		return fmt.Sprintf("Shape(%d)", int(s))
	}
}

// AccentPattern is the canonical representation of a word's pitch shape:
// its mora count and the mora after which the pitch drops. Downstep 0 means
// heiban (no drop). Immutable; combination operations return new values.
type AccentPattern struct {
	MoraCount int
	Downstep  int
}

// NewAccentPattern validates the downstep invariant 0 <= downstep <= mora.
// A violation indicates an engine bug, never bad input.
func NewAccentPattern(moraCount, downstep int) (AccentPattern, error) {
	if moraCount < 0 {
		return AccentPattern{}, fmt.Errorf("negative mora count %d", moraCount)
	}
	if downstep < 0 || downstep > moraCount {
		return AccentPattern{}, fmt.Errorf("downstep %d outside [0, %d]", downstep, moraCount)
	}
	return AccentPattern{MoraCount: moraCount, Downstep: downstep}, nil
}

// MustAccentPattern is NewAccentPattern for statically known-valid values.
func MustAccentPattern(moraCount, downstep int) AccentPattern {
	p, err := NewAccentPattern(moraCount, downstep)
	if err != nil {
		panic(err)
	}
	return p
}

// Shape classifies the pattern by downstep position.
func (p AccentPattern) Shape() Shape {
	switch {
	case p.Downstep == 0:
		return Heiban
	case p.Downstep == 1:
		return Atamadaka
	case p.Downstep == p.MoraCount:
		return Odaka
	default:
		return Nakadaka
	}
}

// IsHeiban reports whether the pattern has no downstep.
func (p AccentPattern) IsHeiban() bool { return p.Downstep == 0 }

// Pattern renders the pitch contour as an L/H string, one letter per mora.
// With includeParticle an extra position is appended so heiban and odaka
// become distinguishable (the jpdb convention).
func (p AccentPattern) Pattern(includeParticle bool) string {
	if p.MoraCount == 0 {
		return ""
	}

	total := p.MoraCount
	if includeParticle {
		total++
	}

	if p.MoraCount == 1 && !includeParticle {
		if p.Downstep == 1 {
			return "H"
		}
		return "L"
	}

	switch {
	case p.Downstep == 0:
		return "L" + strings.Repeat("H", total-1)
	case p.Downstep == 1:
		return "H" + strings.Repeat("L", total-1)
	case p.Downstep > total:
		// Accent beyond word+particle; render as rising.
		return "L" + strings.Repeat("H", total-1)
	default:
		return "L" + strings.Repeat("H", p.Downstep-1) + strings.Repeat("L", total-p.Downstep)
	}
}

// String renders the bracket notation used throughout the CLI, e.g. "[2]/4拍".
func (p AccentPattern) String() string {
	return fmt.Sprintf("[%d]/%d拍", p.Downstep, p.MoraCount)
}

// PatternFromContour derives a pattern from an L/H string such as "LHLL".
// Returns the downstep position, or 0 when the contour never falls.
func PatternFromContour(contour string) AccentPattern {
	mora := len(contour)
	for i := 1; i < len(contour); i++ {
		if contour[i-1] == 'H' && contour[i] == 'L' {
			return AccentPattern{MoraCount: mora, Downstep: i}
		}
	}
	return AccentPattern{MoraCount: mora, Downstep: 0}
}
