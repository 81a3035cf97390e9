// Package reading converts numerals to kana readings and applies the
// phonological alternations that occur at numeral-counter boundaries.
package reading

import (
	"strings"
	"unicode/utf8"
)

var digits = map[int]string{
	1: "いち", 2: "に", 3: "さん", 4: "よん", 5: "ご",
	6: "ろく", 7: "なな", 8: "はち", 9: "きゅう",
}

// NumberToReading converts an integer to its hiragana reading, up to 兆.
// Rendaku inside large numbers (さんびゃく etc.) is deliberately ignored;
// the accent engines only need mora counts, and the plain readings keep
// those correct.
func NumberToReading(n int) string {
	if n == 0 {
		return "ゼロ"
	}
	if n < 0 {
		return "マイナス" + NumberToReading(-n)
	}

	var parts []string

	// 万 and above always spell the multiplier, even for 1 (いちまん).
	if n >= 1_000_000_000_000 {
		parts = append(parts, NumberToReading(n/1_000_000_000_000), "ちょう")
		n %= 1_000_000_000_000
	}
	if n >= 100_000_000 {
		parts = append(parts, NumberToReading(n/100_000_000), "おく")
		n %= 100_000_000
	}
	if n >= 10_000 {
		parts = append(parts, NumberToReading(n/10_000), "まん")
		n %= 10_000
	}
	if n >= 1000 {
		if sen := n / 1000; sen > 1 {
			parts = append(parts, digits[sen])
		}
		parts = append(parts, "せん")
		n %= 1000
	}
	if n >= 100 {
		if hyaku := n / 100; hyaku > 1 {
			parts = append(parts, digits[hyaku])
		}
		parts = append(parts, "ひゃく")
		n %= 100
	}
	if n >= 10 {
		if juu := n / 10; juu > 1 {
			parts = append(parts, digits[juu])
		}
		parts = append(parts, "じゅう")
		n %= 10
	}
	if n > 0 {
		parts = append(parts, digits[n])
	}

	return strings.Join(parts, "")
}

// alternations holds special (numeral, counter) readings: sokuon insertion
// (いっぽん), rendaku (さんぼん), and fully suppletive forms (ひとり,
// ついたち). Values are the numeral part and counter part separately so the
// accent engine can still find the boundary.
type alternationKey struct {
	numeral int
	counter string
}

var alternations = map[alternationKey][2]string{
	{1, "本"}: {"いっ", "ぽん"},
	{1, "杯"}: {"いっ", "ぱい"},
	{1, "回"}: {"いっ", "かい"},
	{1, "階"}: {"いっ", "かい"},
	{6, "本"}: {"ろっ", "ぽん"},
	{6, "杯"}: {"ろっ", "ぱい"},
	{6, "回"}: {"ろっ", "かい"},
	{8, "本"}: {"はっ", "ぽん"},
	{8, "杯"}: {"はっ", "ぱい"},
	{8, "回"}: {"はっ", "かい"},
	{10, "本"}: {"じゅっ", "ぽん"},
	{10, "杯"}: {"じゅっ", "ぱい"},
	{10, "回"}: {"じっ", "かい"},

	{3, "本"}: {"さん", "ぼん"},

	{1, "匹"}:  {"いっ", "ぴき"},
	{3, "匹"}:  {"さん", "びき"},
	{6, "匹"}:  {"ろっ", "ぴき"},
	{8, "匹"}:  {"はっ", "ぴき"},
	{10, "匹"}: {"じゅっ", "ぴき"},

	{1, "人"}: {"ひと", "り"},
	{2, "人"}: {"ふた", "り"},
	{4, "人"}: {"よ", "にん"},

	{1, "日"}:  {"つい", "たち"},
	{2, "日"}:  {"ふつ", "か"},
	{3, "日"}:  {"みっ", "か"},
	{4, "日"}:  {"よっ", "か"},
	{5, "日"}:  {"いつ", "か"},
	{6, "日"}:  {"むい", "か"},
	{7, "日"}:  {"なの", "か"},
	{8, "日"}:  {"よう", "か"},
	{9, "日"}:  {"ここの", "か"},
	{10, "日"}: {"とお", "か"},
	{14, "日"}: {"じゅうよっ", "か"},
	{20, "日"}: {"はつ", "か"},
	{24, "日"}: {"にじゅうよっ", "か"},

	{4, "時"}: {"よ", "じ"},
	{7, "時"}: {"しち", "じ"},
	{9, "時"}: {"く", "じ"},
}

var counterReadings = map[string]string{
	"年": "ねん", "月": "がつ", "日": "にち", "時": "じ", "時間": "じかん",
	"分": "ふん", "秒": "びょう", "週": "しゅう", "人": "にん", "名": "めい",
	"本": "ほん", "杯": "はい", "回": "かい", "度": "ど", "円": "えん",
	"歳": "さい", "才": "さい", "個": "こ", "枚": "まい", "つ": "つ",
	"台": "だい", "匹": "ひき", "頭": "とう", "階": "かい", "軒": "けん",
	"番": "ばん", "号": "ごう", "日間": "にちかん",
}

// NumeralCounterReading returns the kana readings for the numeral and the
// counter in a numeral phrase, with boundary alternations applied.
func NumeralCounterReading(numeral int, counter string) (string, string) {
	if alt, ok := alternations[alternationKey{numeral, counter}]; ok {
		return alt[0], alt[1]
	}

	numReading := NumberToReading(numeral)
	counterReading, ok := counterReadings[counter]
	if !ok {
		counterReading = counter
	}
	return numReading, counterReading
}

// ExtractNumber returns the leading decimal number in text and the
// remainder, or (0, text, false) when text does not start with digits.
func ExtractNumber(text string) (int, string, bool) {
	end := 0
	for end < len(text) && text[end] >= '0' && text[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, text, false
	}
	n := 0
	for _, r := range text[:end] {
		n = n*10 + int(r-'0')
	}
	return n, text[end:], true
}

// leadingCounter matches the longest known counter at the start of s.
func leadingCounter(s string) (counter, rest string, ok bool) {
	runes := []rune(s)
	for l := 2; l >= 1; l-- {
		if len(runes) < l {
			continue
		}
		c := string(runes[:l])
		if _, known := counterReadings[c]; known {
			return c, string(runes[l:]), true
		}
	}
	return "", s, false
}

// ConvertNumeralsInText replaces every run of Arabic digits with its
// hiragana reading, reading a known counter directly after the digits
// together with them so boundary alternations apply: "1952年" becomes
// "せんきゅうひゃくごじゅうにねん", "1本" becomes "いっぽん". Counters
// outside the known set are left as written.
func ConvertNumeralsInText(text string) string {
	var b strings.Builder
	rest := text
	for rest != "" {
		if rest[0] >= '0' && rest[0] <= '9' {
			n, remainder, _ := ExtractNumber(rest)
			if counter, after, ok := leadingCounter(remainder); ok {
				num, counterReading := NumeralCounterReading(n, counter)
				b.WriteString(num)
				b.WriteString(counterReading)
				rest = after
				continue
			}
			b.WriteString(NumberToReading(n))
			rest = remainder
			continue
		}
		r, size := utf8.DecodeRuneInString(rest)
		b.WriteRune(r)
		rest = rest[size:]
	}
	return b.String()
}
