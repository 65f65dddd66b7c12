package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/tonedrill/internal/model"
)

func sampleRecords() []model.StatRecord {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return []model.StatRecord{
		{Key: model.ToneKey(3), Attempts: 4, Successes: 1, SuccessRate: 25, LastTrainedAt: base.Add(3 * time.Hour)},
		{Key: model.PrefixKey("Zh"), Attempts: 2, Successes: 2, SuccessRate: 100, LastTrainedAt: base.Add(1 * time.Hour)},
		{Key: model.EndingKey("ang"), Attempts: 4, Successes: 2, SuccessRate: 50, LastTrainedAt: base.Add(2 * time.Hour)},
		{Key: model.PrefixKey("b"), Attempts: 4, Successes: 4, SuccessRate: 100, LastTrainedAt: base},
		{Key: model.EndingKey("an"), Attempts: 0},
	}
}

func values(rows []Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Key.Value
	}
	return out
}

func TestFilterRowsByClassAndSearch(t *testing.T) {
	rows := FilterRows(sampleRecords(), Query{Classes: []model.ComponentClass{model.ClassEnding}}, DefaultFloor)
	assert.Equal(t, []string{"ang", "an"}, values(rows))

	rows = FilterRows(sampleRecords(), Query{Search: "ZH"}, DefaultFloor)
	assert.Equal(t, []string{"Zh"}, values(rows))

	rows = FilterRows(sampleRecords(), Query{Search: "an", Classes: []model.ComponentClass{model.ClassPrefix}}, DefaultFloor)
	assert.Empty(t, rows)
}

func TestFilterRowsSortStable(t *testing.T) {
	rows := FilterRows(sampleRecords(), Query{SortBy: SortAttempts}, DefaultFloor)
	assert.Equal(t, []string{"an", "Zh", "3", "ang", "b"}, values(rows))

	rows = FilterRows(sampleRecords(), Query{SortBy: SortAttempts, Desc: true}, DefaultFloor)
	assert.Equal(t, []string{"3", "ang", "b", "Zh", "an"}, values(rows))

	rows = FilterRows(sampleRecords(), Query{SortBy: SortSuccessRate}, DefaultFloor)
	assert.Equal(t, []string{"an", "3", "ang", "Zh", "b"}, values(rows))
}

func TestFilterRowsSortByValueIgnoresCase(t *testing.T) {
	rows := FilterRows(sampleRecords(), Query{SortBy: SortValue}, DefaultFloor)
	assert.Equal(t, []string{"3", "an", "ang", "b", "Zh"}, values(rows))
}

func TestFilterRowsSortByWeightAndTime(t *testing.T) {
	rows := FilterRows(sampleRecords(), Query{SortBy: SortWeight, Desc: true}, DefaultFloor)
	assert.Equal(t, []string{"an", "3", "ang", "Zh", "b"}, values(rows))
	assert.Equal(t, NeverTrainedWeight, rows[0].Weight)
	assert.Equal(t, 75.0, rows[1].Weight)

	rows = FilterRows(sampleRecords(), Query{SortBy: SortLastTrained}, DefaultFloor)
	assert.Equal(t, []string{"an", "b", "Zh", "ang", "3"}, values(rows))
}

func TestFilterRowsSortByClass(t *testing.T) {
	rows := FilterRows(sampleRecords(), Query{SortBy: SortClass}, DefaultFloor)
	assert.Equal(t, []string{"Zh", "b", "ang", "an", "3"}, values(rows))
}

func TestParseSortKey(t *testing.T) {
	for _, k := range []SortKey{SortClass, SortValue, SortAttempts, SortSuccessRate, SortLastTrained, SortWeight} {
		got, err := ParseSortKey(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}
	_, err := ParseSortKey("nope")
	assert.Error(t, err)
}
