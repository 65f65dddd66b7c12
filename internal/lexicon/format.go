package lexicon

import (
	"strings"

	"github.com/verte-zerg/tonedrill/internal/model"
)

var toneVowels = map[rune][4]rune{
	'a': {'ā', 'á', 'ǎ', 'à'},
	'o': {'ō', 'ó', 'ǒ', 'ò'},
	'e': {'ē', 'é', 'ě', 'è'},
	'i': {'ī', 'í', 'ǐ', 'ì'},
	'u': {'ū', 'ú', 'ǔ', 'ù'},
	'ü': {'ǖ', 'ǘ', 'ǚ', 'ǜ'},
}

// Pinyin renders a unit with its tone mark, e.g. "mǎ". Neutral tone is unmarked.
func Pinyin(u model.PhoneticUnit) string {
	syllable := u.Syllable()
	if u.Tone < 1 || u.Tone > 4 {
		return syllable
	}
	runes := []rune(syllable)
	idx := markIndex(runes)
	if idx < 0 {
		return syllable
	}
	runes[idx] = toneVowels[runes[idx]][u.Tone-1]
	return string(runes)
}

// PinyinItem renders every unit of an item separated by spaces.
func PinyinItem(item model.DrillItem) string {
	parts := make([]string, len(item))
	for i, u := range item {
		parts[i] = Pinyin(u)
	}
	return strings.Join(parts, " ")
}

// markIndex picks the vowel carrying the tone mark: a or e if present,
// o in "ou", otherwise the last vowel.
func markIndex(runes []rune) int {
	last := -1
	for i, r := range runes {
		switch r {
		case 'a', 'e':
			return i
		case 'o':
			if i+1 < len(runes) && runes[i+1] == 'u' {
				return i
			}
		}
		if _, ok := toneVowels[r]; ok {
			last = i
		}
	}
	return last
}

// Label renders a component value for display: prefixes as "b-", the empty
// prefix as "∅-", endings as "-a" and tones as "T3".
func Label(key model.ComponentKey) string {
	switch key.Class {
	case model.ClassPrefix:
		if key.Value == "" {
			return "∅-"
		}
		return key.Value + "-"
	case model.ClassEnding:
		return "-" + key.Value
	case model.ClassTone:
		return "T" + key.Value
	default:
		return key.Value
	}
}
