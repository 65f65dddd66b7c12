package lexicon

import (
	"strings"

	"github.com/verte-zerg/tonedrill/internal/model"
)

// NormalizePrefix accepts the display forms "b-", "-" and "∅-" as well as the
// bare value and returns the bare prefix.
func NormalizePrefix(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "-", "∅", "∅-", "0":
		return ""
	}
	return strings.TrimSuffix(s, "-")
}

// NormalizeEnding accepts "-a" as well as "a". "v" is read as "ü".
func NormalizeEnding(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimPrefix(s, "-")
	return strings.ReplaceAll(s, "v", "ü")
}

// DefaultFilter enables every prefix, ending and tone, with 1-3 units per item.
func DefaultFilter() model.FilterConfig {
	return model.FilterConfig{
		Prefixes: append([]string(nil), Prefixes...),
		Endings:  append([]string(nil), Endings...),
		Tones:    append([]int(nil), Tones...),
		Counts:   []int{1, 2, 3},
	}
}

// NormalizeFilter cleans display-form values and drops duplicates.
func NormalizeFilter(f model.FilterConfig) model.FilterConfig {
	out := model.FilterConfig{}
	seen := map[string]struct{}{}
	for _, p := range f.Prefixes {
		p = NormalizePrefix(p)
		if _, ok := seen["p"+p]; ok {
			continue
		}
		seen["p"+p] = struct{}{}
		out.Prefixes = append(out.Prefixes, p)
	}
	for _, e := range f.Endings {
		e = NormalizeEnding(e)
		if _, ok := seen["e"+e]; e == "" || ok {
			continue
		}
		seen["e"+e] = struct{}{}
		out.Endings = append(out.Endings, e)
	}
	out.Tones = uniqueInts(f.Tones)
	out.Counts = uniqueInts(f.Counts)
	return out
}

func uniqueInts(values []int) []int {
	seen := map[int]struct{}{}
	var out []int
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
