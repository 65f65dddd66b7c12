package stats

import (
	"sort"

	"github.com/verte-zerg/tonedrill/internal/ledger"
)

// Weakest returns up to n trained rows with the highest weight.
// Ties are broken by value so the output is stable.
func Weakest(rows []ledger.Row, n int) []ledger.Row {
	candidates := make([]ledger.Row, 0, len(rows))
	for _, r := range rows {
		if r.Attempts > 0 {
			candidates = append(candidates, r)
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Weight == candidates[j].Weight {
			return candidates[i].Key.Value < candidates[j].Key.Value
		}
		return candidates[i].Weight > candidates[j].Weight
	})
	if n <= 0 || n > len(candidates) {
		n = len(candidates)
	}
	return candidates[:n]
}
