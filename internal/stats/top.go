package stats

import (
	"sort"

	"github.com/verte-zerg/tonedrill/internal/ledger"
)

// MostPracticed returns the top n rows by attempts.
func MostPracticed(rows []ledger.Row, n int) []ledger.Row {
	if n <= 0 || len(rows) == 0 {
		return nil
	}
	items := make([]ledger.Row, len(rows))
	copy(items, rows)
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Attempts == items[j].Attempts {
			return items[i].Key.Value < items[j].Key.Value
		}
		return items[i].Attempts > items[j].Attempts
	})
	if n > len(items) {
		n = len(items)
	}
	return items[:n]
}
