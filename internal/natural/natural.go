// Package natural repairs tone patterns that rarely occur in real speech.
package natural

import (
	"github.com/verte-zerg/tonedrill/internal/lexicon"
	"github.com/verte-zerg/tonedrill/internal/model"
)

// maxNeutral is the number of neutral tones an item may carry.
const maxNeutral = 2

var (
	leadTones   = []int{1, 2, 3, 4}
	breakTones  = []int{1, 2, 4}
	thirdTone   = 3
	neutralTone = model.NeutralTone
)

// Source yields uniform numbers in [0, 1).
type Source interface {
	Float64() float64
}

// Processor applies the naturalness rules to drill items.
type Processor struct {
	lex *lexicon.Lexicon
	src Source
}

// New returns a Processor drawing replacements from lex.
func New(lex *lexicon.Lexicon, src Source) *Processor {
	return &Processor{lex: lex, src: src}
}

// Repair fixes item against the whole lexicon. A replacement keeps the
// unit's prefix and ending; when the lexicon has no allowed tone for that
// syllable the tone is forced and the result may fall outside the lexicon.
func (p *Processor) Repair(item model.DrillItem) model.DrillItem {
	return p.repair(item, nil, false)
}

// RepairWithin fixes item using replacements from pool only. When the pool
// has no allowed tone for the same syllable, any pool unit with an allowed
// tone is used before the tone is forced. With no such unit, as for a
// neutral-only pool, the forced tone lies outside the pool.
func (p *Processor) RepairWithin(item model.DrillItem, pool []model.PhoneticUnit) model.DrillItem {
	return p.repair(item, pool, true)
}

// Rule A runs once, then B over every window, then C left to right.
func (p *Processor) repair(item model.DrillItem, pool []model.PhoneticUnit, strict bool) model.DrillItem {
	out := make(model.DrillItem, len(item))
	copy(out, item)

	if len(out) > 1 && out[0].Tone == neutralTone {
		out[0] = p.substitute(out, 0, leadTones, pool, strict)
	}

	for i := 0; i+2 < len(out); i++ {
		if out[i].Tone == thirdTone && out[i+1].Tone == thirdTone && out[i+2].Tone == thirdTone {
			out[i+1] = p.substitute(out, i+1, breakTones, pool, strict)
		}
	}

	excess := countNeutral(out) - maxNeutral
	for i := 0; i < len(out) && excess > 0; i++ {
		if out[i].Tone != neutralTone {
			continue
		}
		allowed := leadTones
		if completesThirdRun(out, i) {
			allowed = breakTones
		}
		out[i] = p.substitute(out, i, allowed, pool, strict)
		excess--
	}
	return out
}

func (p *Processor) substitute(item model.DrillItem, i int, allowed []int, pool []model.PhoneticUnit, strict bool) model.PhoneticUnit {
	orig := item[i]
	if !strict {
		return p.substituteTone(orig, allowed)
	}
	var same, anyTone []model.PhoneticUnit
	for _, u := range pool {
		if !containsTone(allowed, u.Tone) {
			continue
		}
		if u.Prefix == orig.Prefix && u.Ending == orig.Ending {
			same = append(same, u)
		}
		anyTone = append(anyTone, u)
	}
	if len(same) > 0 {
		return same[p.pick(len(same))]
	}
	if len(anyTone) > 0 {
		return anyTone[p.pick(len(anyTone))]
	}
	orig.Tone = allowed[p.pick(len(allowed))]
	return orig
}

// substituteTone gives orig an allowed tone the lexicon has for its
// syllable, or forces one when there is none.
func (p *Processor) substituteTone(orig model.PhoneticUnit, allowed []int) model.PhoneticUnit {
	var tones []int
	for _, t := range p.lex.TonesFor(orig.Prefix, orig.Ending) {
		if containsTone(allowed, t) {
			tones = append(tones, t)
		}
	}
	if len(tones) == 0 {
		tones = allowed
	}
	orig.Tone = tones[p.pick(len(tones))]
	return orig
}

func (p *Processor) pick(n int) int {
	idx := int(p.src.Float64() * float64(n))
	if idx >= n {
		idx = n - 1
	}
	if idx < 0 {
		idx = 0
	}
	return idx
}

// IsNatural reports whether item passes every naturalness rule.
func IsNatural(item model.DrillItem) bool {
	if len(item) == 0 {
		return false
	}
	if len(item) > 1 && item[0].Tone == neutralTone {
		return false
	}
	for i := 0; i+2 < len(item); i++ {
		if item[i].Tone == thirdTone && item[i+1].Tone == thirdTone && item[i+2].Tone == thirdTone {
			return false
		}
	}
	return countNeutral(item) <= maxNeutral
}

// completesThirdRun reports whether giving unit i the third tone would
// create three consecutive third tones.
func completesThirdRun(item model.DrillItem, i int) bool {
	third := func(j int) bool {
		return j >= 0 && j < len(item) && item[j].Tone == thirdTone
	}
	return (third(i-2) && third(i-1)) || (third(i-1) && third(i+1)) || (third(i+1) && third(i+2))
}

func countNeutral(item model.DrillItem) int {
	n := 0
	for _, u := range item {
		if u.Tone == neutralTone {
			n++
		}
	}
	return n
}

func containsTone(tones []int, tone int) bool {
	for _, t := range tones {
		if t == tone {
			return true
		}
	}
	return false
}
