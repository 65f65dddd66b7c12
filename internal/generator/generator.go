// Package generator builds weighted drill items.
package generator

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/verte-zerg/tonedrill/internal/lexicon"
	"github.com/verte-zerg/tonedrill/internal/model"
	"github.com/verte-zerg/tonedrill/internal/natural"
)

// fallbackBonus multiplies a candidate's weight for every axis it shares
// with the originally drawn unit.
const fallbackBonus = 3.0

// Weights supplies the training weight of a component.
type Weights interface {
	Weight(key model.ComponentKey) float64
}

// Uniform weighs every component equally.
type Uniform struct{}

// Weight implements Weights.
func (Uniform) Weight(model.ComponentKey) float64 { return 1 }

// Generator produces drill items from a lexicon.
type Generator struct {
	lex  *lexicon.Lexicon
	src  Source
	post *natural.Processor
}

// Option configures a Generator.
type Option func(*Generator)

// WithSource replaces the time-seeded random source.
func WithSource(src Source) Option {
	return func(g *Generator) {
		g.src = src
	}
}

// New returns a Generator seeded with the current time.
func New(lex *lexicon.Lexicon, opts ...Option) *Generator {
	g := &Generator{
		lex: lex,
		src: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.post = natural.New(lex, g.src)
	return g
}

// Lexicon returns the generator's lexicon.
func (g *Generator) Lexicon() *lexicon.Lexicon {
	return g.lex
}

// Available returns the lexicon units admitted by filter, in lexicon order.
func (g *Generator) Available(filter model.FilterConfig) []model.PhoneticUnit {
	prefixes := stringSet(filter.Prefixes)
	endings := stringSet(filter.Endings)
	tones := intSet(filter.Tones)
	var out []model.PhoneticUnit
	for _, u := range g.lex.Units() {
		if _, ok := prefixes[u.Prefix]; !ok {
			continue
		}
		if _, ok := endings[u.Ending]; !ok {
			continue
		}
		if _, ok := tones[u.Tone]; !ok {
			continue
		}
		out = append(out, u)
	}
	return out
}

// Generate produces one drill item and repairs unnatural tone patterns
// using replacements admitted by filter.
func (g *Generator) Generate(filter model.FilterConfig, weights Weights) (model.DrillItem, error) {
	available := g.Available(filter)
	raw, err := g.generate(filter, weights, available)
	if err != nil {
		return nil, err
	}
	return g.post.RepairWithin(raw, available), nil
}

// GenerateRaw produces one drill item without the naturalness pass.
func (g *Generator) GenerateRaw(filter model.FilterConfig, weights Weights) (model.DrillItem, error) {
	return g.generate(filter, weights, g.Available(filter))
}

func (g *Generator) generate(filter model.FilterConfig, weights Weights, available []model.PhoneticUnit) (model.DrillItem, error) {
	if len(available) == 0 {
		return nil, fmt.Errorf("%w (%d prefixes, %d endings, %d tones enabled)",
			ErrConfiguration, len(filter.Prefixes), len(filter.Endings), len(filter.Tones))
	}
	if weights == nil {
		weights = Uniform{}
	}
	count := g.unitCount(filter.Counts)
	item := make(model.DrillItem, 0, count)
	for i := 0; i < count; i++ {
		u, ok := g.weightedUnit(filter, weights, available)
		if ok {
			item = append(item, u)
		}
	}
	if len(item) == 0 {
		return nil, fmt.Errorf("%w (requested %d units from %d candidates)", ErrGeneration, count, len(available))
	}
	return item, nil
}

// unitCount draws uniformly from the positive enabled counts, 1 when none.
func (g *Generator) unitCount(counts []int) int {
	positive := make([]int, 0, len(counts))
	for _, c := range counts {
		if c > 0 {
			positive = append(positive, c)
		}
	}
	if len(positive) == 0 {
		return 1
	}
	return positive[uniform(g.src, len(positive))]
}

// weightedUnit draws prefix, ending and tone independently by weight. An
// invalid combination falls back to the available unit closest to it.
// Every drawn axis comes from filter, so lexicon membership is enough.
func (g *Generator) weightedUnit(filter model.FilterConfig, weights Weights, available []model.PhoneticUnit) (model.PhoneticUnit, bool) {
	prefix, ok := Choose(g.src, weighStrings(filter.Prefixes, model.PrefixKey, weights))
	if !ok {
		return model.PhoneticUnit{}, false
	}
	ending, ok := Choose(g.src, weighStrings(filter.Endings, model.EndingKey, weights))
	if !ok {
		return model.PhoneticUnit{}, false
	}
	tone, ok := Choose(g.src, weighTones(filter.Tones, weights))
	if !ok {
		return model.PhoneticUnit{}, false
	}

	want := model.PhoneticUnit{Prefix: prefix, Ending: ending, Tone: tone}
	if g.lex.Contains(want) {
		return want, true
	}

	candidates := make([]Weighted[model.PhoneticUnit], len(available))
	for i, u := range available {
		w := 1.0
		if u.Prefix == want.Prefix {
			w *= fallbackBonus
		}
		if u.Ending == want.Ending {
			w *= fallbackBonus
		}
		if u.Tone == want.Tone {
			w *= fallbackBonus
		}
		candidates[i] = Weighted[model.PhoneticUnit]{Value: u, Weight: w}
	}
	return Choose(g.src, candidates)
}

func weighStrings(values []string, key func(string) model.ComponentKey, weights Weights) []Weighted[string] {
	out := make([]Weighted[string], len(values))
	for i, v := range values {
		out[i] = Weighted[string]{Value: v, Weight: weights.Weight(key(v))}
	}
	return out
}

func weighTones(tones []int, weights Weights) []Weighted[int] {
	out := make([]Weighted[int], len(tones))
	for i, t := range tones {
		out[i] = Weighted[int]{Value: t, Weight: weights.Weight(model.ToneKey(t))}
	}
	return out
}

func stringSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

func intSet(values []int) map[int]struct{} {
	set := make(map[int]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
