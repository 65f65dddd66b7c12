package generator

// Source yields uniform numbers in [0, 1). *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// Weighted pairs a value with its selection weight.
type Weighted[T any] struct {
	Value  T
	Weight float64
}

// Choose performs a roulette-wheel draw over items. A draw in
// [0, total) is walked down the list until the remainder reaches zero.
// Items with a non-positive weight are never chosen unless every weight is
// non-positive, in which case the pick is uniform. ok is false for an empty list.
func Choose[T any](src Source, items []Weighted[T]) (value T, ok bool) {
	if len(items) == 0 {
		return value, false
	}
	total := 0.0
	for _, it := range items {
		if it.Weight > 0 {
			total += it.Weight
		}
	}
	if total <= 0 {
		return items[uniform(src, len(items))].Value, true
	}
	r := src.Float64() * total
	last := -1
	for i, it := range items {
		if it.Weight <= 0 {
			continue
		}
		last = i
		r -= it.Weight
		if r <= 0 {
			return it.Value, true
		}
	}
	// Rounding can leave a tiny remainder after the last item.
	return items[last].Value, true
}

func uniform(src Source, n int) int {
	idx := int(src.Float64() * float64(n))
	if idx >= n {
		idx = n - 1
	}
	if idx < 0 {
		idx = 0
	}
	return idx
}
