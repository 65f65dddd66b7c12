package generator

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

type scripted struct {
	values []float64
	i      int
}

func (s *scripted) Float64() float64 {
	v := s.values[s.i%len(s.values)]
	s.i++
	return v
}

func TestChooseWalksCumulativeWeight(t *testing.T) {
	items := []Weighted[string]{{"a", 1}, {"b", 2}, {"c", 1}}
	cases := map[float64]string{
		0.0:   "a",
		0.25:  "a", // 1.0 left after subtracting a -> 0
		0.26:  "b",
		0.75:  "b",
		0.76:  "c",
		0.999: "c",
	}
	for r, want := range cases {
		got, ok := Choose(&scripted{values: []float64{r}}, items)
		assert.True(t, ok)
		assert.Equal(t, want, got, "r=%v", r)
	}
}

func TestChooseSkipsZeroWeights(t *testing.T) {
	items := []Weighted[int]{{1, 0}, {2, 5}, {3, 0}}
	for _, r := range []float64{0, 0.5, 0.999} {
		got, ok := Choose(&scripted{values: []float64{r}}, items)
		assert.True(t, ok)
		assert.Equal(t, 2, got)
	}
}

func TestChooseUniformWhenAllZero(t *testing.T) {
	items := []Weighted[int]{{1, 0}, {2, 0}, {3, 0}, {4, 0}}
	got, ok := Choose(&scripted{values: []float64{0.6}}, items)
	assert.True(t, ok)
	assert.Equal(t, 3, got)
}

func TestChooseEmpty(t *testing.T) {
	_, ok := Choose(&scripted{values: []float64{0.5}}, []Weighted[string]{})
	assert.False(t, ok)
}

func TestChooseOrderDoesNotBias(t *testing.T) {
	forward := []Weighted[string]{{"x", 1}, {"y", 3}}
	backward := []Weighted[string]{{"y", 3}, {"x", 1}}
	for _, items := range [][]Weighted[string]{forward, backward} {
		rnd := rand.New(rand.NewSource(5))
		counts := map[string]int{}
		for i := 0; i < 20000; i++ {
			v, _ := Choose(rnd, items)
			counts[v]++
		}
		ratio := float64(counts["y"]) / float64(counts["x"])
		assert.InDelta(t, 3.0, ratio, 0.3)
	}
}
