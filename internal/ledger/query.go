package ledger

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/verte-zerg/tonedrill/internal/model"
)

// SortKey selects the column records are ordered by.
type SortKey int

// Sort keys.
const (
	SortClass SortKey = iota
	SortValue
	SortAttempts
	SortSuccessRate
	SortLastTrained
	SortWeight
)

var sortKeyNames = []string{"class", "value", "attempts", "success", "last", "weight"}

func (k SortKey) String() string {
	if int(k) < len(sortKeyNames) {
		return sortKeyNames[k]
	}
	return fmt.Sprintf("sort(%d)", int(k))
}

// ParseSortKey accepts a sort key name as printed by String.
func ParseSortKey(s string) (SortKey, error) {
	for i, name := range sortKeyNames {
		if strings.EqualFold(s, name) {
			return SortKey(i), nil
		}
	}
	return 0, fmt.Errorf("unknown sort key %q (want one of %s)", s, strings.Join(sortKeyNames, ", "))
}

// Query filters and orders ledger records for display.
type Query struct {
	Classes []model.ComponentClass // empty matches every class
	Search  string                 // case-insensitive substring of the value
	SortBy  SortKey
	Desc    bool
}

// Row is a record with its derived weight.
type Row struct {
	model.StatRecord
	Weight float64
}

// Query returns matching records ordered by q.SortBy. Ties keep insertion order.
func (l *Ledger) Query(ctx context.Context, q Query) ([]Row, error) {
	records, err := l.read(ctx)
	if err != nil {
		return nil, err
	}
	return FilterRows(records, q, l.floor), nil
}

// FilterRows applies q to records without touching the store.
func FilterRows(records []model.StatRecord, q Query, floor float64) []Row {
	classes := map[model.ComponentClass]struct{}{}
	for _, c := range q.Classes {
		classes[c] = struct{}{}
	}
	search := strings.ToLower(strings.TrimSpace(q.Search))

	rows := make([]Row, 0, len(records))
	for _, rec := range records {
		if len(classes) > 0 {
			if _, ok := classes[rec.Key.Class]; !ok {
				continue
			}
		}
		if search != "" && !strings.Contains(strings.ToLower(rec.Key.Value), search) {
			continue
		}
		rows = append(rows, Row{StatRecord: rec, Weight: WeightFor(rec, floor)})
	}

	less := rowLess(q.SortBy)
	sort.SliceStable(rows, func(i, j int) bool {
		if q.Desc {
			return less(rows[j], rows[i])
		}
		return less(rows[i], rows[j])
	})
	return rows
}

func rowLess(key SortKey) func(a, b Row) bool {
	switch key {
	case SortValue:
		return func(a, b Row) bool {
			return strings.ToLower(a.Key.Value) < strings.ToLower(b.Key.Value)
		}
	case SortAttempts:
		return func(a, b Row) bool { return a.Attempts < b.Attempts }
	case SortSuccessRate:
		return func(a, b Row) bool { return a.SuccessRate < b.SuccessRate }
	case SortLastTrained:
		return func(a, b Row) bool { return a.LastTrainedAt.Before(b.LastTrainedAt) }
	case SortWeight:
		return func(a, b Row) bool { return a.Weight < b.Weight }
	default:
		return func(a, b Row) bool { return a.Key.Class < b.Key.Class }
	}
}
