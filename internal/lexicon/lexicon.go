// Package lexicon holds the table of valid syllables and their spoken forms.
package lexicon

import (
	"fmt"
	"sort"
	"strings"

	"github.com/verte-zerg/tonedrill/internal/model"
)

// fallbackForm is spoken for units missing from the table.
const fallbackForm = "的"

// Entry is one lexicon row: a spoken form for a toned syllable.
type Entry struct {
	Form   string `yaml:"form" validate:"required"`
	Pinyin string `yaml:"pinyin" validate:"required,lowercase"`
	Tone   int    `yaml:"tone" validate:"min=1,max=5"`
}

// Lexicon is an immutable set of valid phonetic units.
type Lexicon struct {
	units []model.PhoneticUnit
	forms map[model.PhoneticUnit][]string
	tones map[string][]int
}

// Default returns the built-in lexicon.
func Default() *Lexicon {
	lex, err := New(builtin)
	if err != nil {
		panic(fmt.Sprintf("built-in lexicon is invalid: %v", err))
	}
	return lex
}

// New builds a lexicon from entries. Duplicate units keep every form in
// entry order; the first form is the one spoken.
func New(entries []Entry) (*Lexicon, error) {
	lex := &Lexicon{
		forms: map[model.PhoneticUnit][]string{},
		tones: map[string][]int{},
	}
	for i, e := range entries {
		prefix, ending := Split(e.Pinyin)
		if ending == "" {
			return nil, fmt.Errorf("entry %d (%s%d): pinyin has no ending", i, e.Pinyin, e.Tone)
		}
		if e.Tone < 1 || e.Tone > model.NeutralTone {
			return nil, fmt.Errorf("entry %d (%s%d): tone out of range", i, e.Pinyin, e.Tone)
		}
		u := model.PhoneticUnit{Prefix: prefix, Ending: ending, Tone: e.Tone}
		if _, ok := lex.forms[u]; !ok {
			lex.units = append(lex.units, u)
			lex.tones[u.Syllable()] = append(lex.tones[u.Syllable()], u.Tone)
		}
		lex.forms[u] = append(lex.forms[u], e.Form)
	}
	if len(lex.units) == 0 {
		return nil, fmt.Errorf("lexicon is empty")
	}
	return lex, nil
}

// Units returns every distinct unit in table order.
func (l *Lexicon) Units() []model.PhoneticUnit {
	out := make([]model.PhoneticUnit, len(l.units))
	copy(out, l.units)
	return out
}

// Len reports the number of distinct units.
func (l *Lexicon) Len() int {
	return len(l.units)
}

// Contains reports whether the unit is a valid syllable.
func (l *Lexicon) Contains(u model.PhoneticUnit) bool {
	_, ok := l.forms[u]
	return ok
}

// TonesFor returns the tones that exist for a toneless syllable.
func (l *Lexicon) TonesFor(prefix, ending string) []int {
	tones := l.tones[prefix+ending]
	out := make([]int, len(tones))
	copy(out, tones)
	return out
}

// Form returns the spoken form of a unit.
func (l *Lexicon) Form(u model.PhoneticUnit) string {
	forms := l.forms[u]
	if len(forms) == 0 {
		return fallbackForm
	}
	return forms[0]
}

// Forms returns all spoken forms of a unit.
func (l *Lexicon) Forms(u model.PhoneticUnit) []string {
	forms := l.forms[u]
	out := make([]string, len(forms))
	copy(out, forms)
	return out
}

// Text joins the spoken forms of the item's units.
func (l *Lexicon) Text(item model.DrillItem) string {
	var b strings.Builder
	for _, u := range item {
		b.WriteString(l.Form(u))
	}
	return b.String()
}

// PrefixesInUse returns the prefixes that occur in the lexicon, in Prefixes order.
func (l *Lexicon) PrefixesInUse() []string {
	seen := map[string]struct{}{}
	for _, u := range l.units {
		seen[u.Prefix] = struct{}{}
	}
	return ordered(Prefixes, seen)
}

// EndingsInUse returns the endings that occur in the lexicon. Endings not
// in the canonical list are appended in sorted order.
func (l *Lexicon) EndingsInUse() []string {
	seen := map[string]struct{}{}
	for _, u := range l.units {
		seen[u.Ending] = struct{}{}
	}
	out := ordered(Endings, seen)
	var extra []string
	known := map[string]struct{}{}
	for _, e := range Endings {
		known[e] = struct{}{}
	}
	for e := range seen {
		if _, ok := known[e]; !ok {
			extra = append(extra, e)
		}
	}
	sort.Strings(extra)
	return append(out, extra...)
}

func ordered(order []string, seen map[string]struct{}) []string {
	out := make([]string, 0, len(seen))
	for _, v := range order {
		if _, ok := seen[v]; ok {
			out = append(out, v)
		}
	}
	return out
}

// Split separates a toneless pinyin syllable into prefix and ending,
// matching the longest known prefix.
func Split(pinyin string) (prefix, ending string) {
	for _, p := range prefixesByLength {
		if p != "" && strings.HasPrefix(pinyin, p) && len(pinyin) > len(p) {
			return p, pinyin[len(p):]
		}
	}
	return "", pinyin
}

var prefixesByLength = func() []string {
	out := make([]string, len(Prefixes))
	copy(out, Prefixes)
	sort.SliceStable(out, func(i, j int) bool {
		return len(out[i]) > len(out[j])
	})
	return out
}()
