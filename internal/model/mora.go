package model

import "strings"

// Small kana merge into the preceding mora and never count on their own.
// The sokuon (っ/ッ) is deliberately absent: it occupies a full mora slot
// for accent purposes.
const smallKana = "ぁぃぅぇぉゃゅょゎァィゥェォャュョヮ"

// Special mora cannot carry an accent nucleus. A downstep computed onto one
// of these is shifted left by the sandhi engine.
const specialMora = "んっー"

// Long-vowel tails whose second element behaves like a special mora.
var longVowelTails = []string{"おう", "うう", "おお", "えい", "いい", "ああ"}

// CountMora returns the number of mora in a kana reading. Small kana attach
// to the previous mora; every other rune counts as one.
func CountMora(reading string) int {
	count := 0
	for _, r := range reading {
		if strings.ContainsRune(smallKana, r) {
			continue
		}
		count++
	}
	return count
}

// IsSmallKana reports whether r is a combining small kana.
func IsSmallKana(r rune) bool {
	return strings.ContainsRune(smallKana, r)
}

// IsSpecialMora reports whether r is a mora that cannot host an accent
// nucleus (ん, っ, ー).
func IsSpecialMora(r rune) bool {
	return strings.ContainsRune(specialMora, r)
}

// EndsWithSpecialMora reports whether a reading ends in ん, っ, ー or a
// long-vowel sequence such as おう or えい.
func EndsWithSpecialMora(reading string) bool {
	runes := []rune(reading)
	if len(runes) == 0 {
		return false
	}
	if IsSpecialMora(runes[len(runes)-1]) {
		return true
	}
	if len(runes) >= 2 {
		tail := string(runes[len(runes)-2:])
		for _, lv := range longVowelTails {
			if tail == lv {
				return true
			}
		}
	}
	return false
}

// TrailingSpecialMora counts consecutive special mora at the end of a
// reading. The sandhi engine uses this to shift a boundary accent left.
func TrailingSpecialMora(reading string) int {
	runes := []rune(reading)
	count := 0
	for i := len(runes) - 1; i >= 0; i-- {
		if !IsSpecialMora(runes[i]) {
			break
		}
		count++
	}
	return count
}

// KataToHira converts katakana runes to their hiragana equivalents, leaving
// everything else untouched.
func KataToHira(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if r >= 0x30A1 && r <= 0x30F6 {
			b.WriteRune(r - 0x60)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// SplitMora splits a reading into mora units, attaching small kana to the
// preceding unit. Used by the renderer to color one mora at a time.
func SplitMora(reading string) []string {
	var mora []string
	for _, r := range reading {
		if IsSmallKana(r) && len(mora) > 0 {
			mora[len(mora)-1] += string(r)
			continue
		}
		mora = append(mora, string(r))
	}
	return mora
}
