package natural

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/tonedrill/internal/lexicon"
	"github.com/verte-zerg/tonedrill/internal/model"
)

func unit(prefix, ending string, tone int) model.PhoneticUnit {
	return model.PhoneticUnit{Prefix: prefix, Ending: ending, Tone: tone}
}

func newProcessor(seed int64) *Processor {
	return New(lexicon.Default(), rand.New(rand.NewSource(seed)))
}

func TestRepairBreaksThirdToneRun(t *testing.T) {
	p := newProcessor(42)
	in := model.DrillItem{unit("m", "a", 3), unit("m", "a", 3), unit("m", "a", 3), unit("d", "a", 2)}
	out := p.Repair(in)

	require.Len(t, out, 4)
	assert.Contains(t, []int{1, 2, 4}, out[1].Tone)
	assert.Equal(t, "m", out[1].Prefix)
	assert.Equal(t, "a", out[1].Ending)
	assert.Equal(t, in[0], out[0])
	assert.Equal(t, in[2], out[2])
	assert.Equal(t, in[3], out[3])
	assert.True(t, IsNatural(out))
	assert.Equal(t, 3, in[1].Tone, "input is not modified")
}

func TestRepairLeadingNeutral(t *testing.T) {
	p := newProcessor(1)
	out := p.Repair(model.DrillItem{unit("m", "a", 5), unit("h", "ao", 3)})
	assert.Contains(t, []int{1, 2, 3, 4}, out[0].Tone)
	assert.True(t, lexicon.Default().Contains(out[0]))

	single := p.Repair(model.DrillItem{unit("m", "a", 5)})
	assert.Equal(t, 5, single[0].Tone, "single neutral unit is natural")
}

func TestRepairForcesToneWhenSyllableHasNoAlternative(t *testing.T) {
	p := newProcessor(7)
	out := p.Repair(model.DrillItem{unit("m", "e", 5), unit("m", "a", 1)})
	assert.Equal(t, "m", out[0].Prefix)
	assert.Equal(t, "e", out[0].Ending)
	assert.Contains(t, []int{1, 2, 3, 4}, out[0].Tone)
	assert.False(t, lexicon.Default().Contains(out[0]))
}

func TestRepairLimitsNeutralTones(t *testing.T) {
	p := newProcessor(3)
	in := model.DrillItem{unit("d", "a", 4), unit("m", "a", 5), unit("m", "a", 5), unit("m", "a", 5), unit("m", "a", 5)}
	out := p.Repair(in)
	assert.Equal(t, 2, countNeutral(out))
	assert.Equal(t, 5, out[3].Tone)
	assert.Equal(t, 5, out[4].Tone)
	assert.True(t, IsNatural(out))
}

func TestRepairNeutralFixAvoidsThirdRun(t *testing.T) {
	src := &constSource{v: 0.6} // picks tone 3 out of {1,2,3,4}
	p := New(lexicon.Default(), src)
	in := model.DrillItem{unit("m", "a", 3), unit("m", "a", 3), unit("m", "a", 5), unit("m", "a", 5), unit("m", "a", 5)}
	out := p.Repair(in)
	assert.True(t, IsNatural(out), "got %v", out.Tones())
	assert.NotEqual(t, 3, out[2].Tone)
}

func TestRepairWithinStaysInPool(t *testing.T) {
	p := newProcessor(11)
	pool := []model.PhoneticUnit{unit("d", "a", 4), unit("d", "a", 3), unit("b", "a", 1)}
	in := model.DrillItem{unit("d", "a", 3), unit("d", "a", 3), unit("d", "a", 3)}
	out := p.RepairWithin(in, pool)
	assert.Equal(t, unit("d", "a", 4), out[1])

	in = model.DrillItem{unit("m", "e", 5), unit("d", "a", 4)}
	out = p.RepairWithin(in, pool)
	assert.Contains(t, pool, out[0])
}

func TestRepairWithinNeutralOnlyPoolForcesTone(t *testing.T) {
	p := newProcessor(13)
	pool := []model.PhoneticUnit{unit("m", "a", 5)}
	out := p.RepairWithin(model.DrillItem{unit("m", "a", 5), unit("m", "a", 5)}, pool)
	assert.Equal(t, "m", out[0].Prefix)
	assert.Equal(t, "a", out[0].Ending)
	assert.Contains(t, []int{1, 2, 3, 4}, out[0].Tone)
	assert.NotContains(t, pool, out[0])
	assert.Equal(t, unit("m", "a", 5), out[1])
	assert.True(t, IsNatural(out))
}

func TestIsNatural(t *testing.T) {
	cases := []struct {
		tones []int
		want  bool
	}{
		{nil, false},
		{[]int{5}, true},
		{[]int{5, 1}, false},
		{[]int{1, 5}, true},
		{[]int{3, 3}, true},
		{[]int{3, 3, 3}, false},
		{[]int{1, 3, 3, 3}, false},
		{[]int{1, 5, 5}, true},
		{[]int{1, 5, 5, 5}, false},
	}
	for _, tc := range cases {
		item := make(model.DrillItem, len(tc.tones))
		for i, tone := range tc.tones {
			item[i] = unit("m", "a", tone)
		}
		assert.Equal(t, tc.want, IsNatural(item), "%v", tc.tones)
	}
}

func TestRepairIsNaturalForAllToneSequences(t *testing.T) {
	p := newProcessor(99)
	pool := lexicon.Default().Units()
	syllables := [][2]string{{"m", "a"}, {"", "er"}, {"m", "e"}, {"zz", "q"}}
	for length := 1; length <= 6; length++ {
		for _, syl := range syllables {
			forEachToneSequence(length, func(tones []int) {
				item := make(model.DrillItem, length)
				for i, tone := range tones {
					item[i] = unit(syl[0], syl[1], tone)
				}
				for _, out := range []model.DrillItem{p.Repair(item), p.RepairWithin(item, pool)} {
					if len(out) != len(item) {
						t.Fatalf("length changed: %v -> %v", item.Tones(), out.Tones())
					}
					if !IsNatural(out) {
						t.Fatalf("not natural: %v -> %v", item.Tones(), out.Tones())
					}
				}
			})
		}
	}
}

func forEachToneSequence(length int, fn func([]int)) {
	tones := make([]int, length)
	var walk func(int)
	walk = func(pos int) {
		if pos == length {
			fn(tones)
			return
		}
		for tone := 1; tone <= 5; tone++ {
			tones[pos] = tone
			walk(pos + 1)
		}
	}
	walk(0)
}

type constSource struct {
	v float64
}

func (c *constSource) Float64() float64 {
	return c.v
}
