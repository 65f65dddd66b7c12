package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/tonedrill/internal/model"
)

type memStore struct {
	records map[string][]model.StatRecord
	writes  int
}

func newMemStore() *memStore {
	return &memStore{records: map[string][]model.StatRecord{}}
}

func (m *memStore) ReadRecords(_ context.Context, name string) ([]model.StatRecord, error) {
	out := make([]model.StatRecord, len(m.records[name]))
	copy(out, m.records[name])
	return out, nil
}

func (m *memStore) WriteRecords(_ context.Context, name string, records []model.StatRecord) error {
	m.writes++
	m.records[name] = append([]model.StatRecord(nil), records...)
	return nil
}

func (m *memStore) Clear(_ context.Context, name string) error {
	delete(m.records, name)
	return nil
}

type failingStore struct {
	err error
}

func (f failingStore) ReadRecords(context.Context, string) ([]model.StatRecord, error) {
	return nil, f.err
}

func (f failingStore) WriteRecords(context.Context, string, []model.StatRecord) error {
	return f.err
}

func (f failingStore) Clear(context.Context, string) error {
	return f.err
}

func newTestLedger(t *testing.T, opts ...Option) (*Ledger, *memStore) {
	t.Helper()
	st := newMemStore()
	l, err := New(st, opts...)
	require.NoError(t, err)
	return l, st
}

func findRecord(t *testing.T, l *Ledger, key model.ComponentKey) model.StatRecord {
	t.Helper()
	records, err := l.Records(context.Background())
	require.NoError(t, err)
	for _, rec := range records {
		if rec.Key == key {
			return rec
		}
	}
	t.Fatalf("record %s not found", key)
	return model.StatRecord{}
}

func TestUpdateFreshKey(t *testing.T) {
	ctx := context.Background()
	stamp := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	l, _ := newTestLedger(t, WithClock(func() time.Time { return stamp }))

	okKey := model.ToneKey(1)
	require.NoError(t, l.Update(ctx, okKey, true))
	rec := findRecord(t, l, okKey)
	assert.Equal(t, 1, rec.Attempts)
	assert.Equal(t, 1, rec.Successes)
	assert.Equal(t, 100.0, rec.SuccessRate)
	assert.Equal(t, stamp, rec.LastTrainedAt)

	badKey := model.ToneKey(2)
	require.NoError(t, l.Update(ctx, badKey, false))
	rec = findRecord(t, l, badKey)
	assert.Equal(t, 1, rec.Attempts)
	assert.Equal(t, 0, rec.Successes)
	assert.Equal(t, 0.0, rec.SuccessRate)
}

func TestUpdateAccumulates(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLedger(t)
	key := model.PrefixKey("zh")
	for _, correct := range []bool{true, false, true, true} {
		require.NoError(t, l.Update(ctx, key, correct))
	}
	rec := findRecord(t, l, key)
	assert.Equal(t, 4, rec.Attempts)
	assert.Equal(t, 3, rec.Successes)
	assert.InDelta(t, 75.0, rec.SuccessRate, 1e-9)

	records, err := l.Records(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 1, "one record per key")
}

func TestWeightNeverTrained(t *testing.T) {
	l, _ := newTestLedger(t)
	w, err := l.Weight(context.Background(), model.EndingKey("ang"))
	require.NoError(t, err)
	assert.Equal(t, NeverTrainedWeight, w)
}

func TestWeightScenarioToneThreeFailures(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLedger(t)
	for i := 0; i < 10; i++ {
		require.NoError(t, l.Update(ctx, model.ToneKey(3), false))
	}
	w3, err := l.Weight(ctx, model.ToneKey(3))
	require.NoError(t, err)
	w1, err := l.Weight(ctx, model.ToneKey(1))
	require.NoError(t, err)
	assert.Equal(t, 100.0, w3)
	assert.Equal(t, 1000.0, w1)
}

func TestWeightFloor(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLedger(t, WithFloor(5))
	require.NoError(t, l.Update(ctx, model.ToneKey(4), true))
	w, err := l.Weight(ctx, model.ToneKey(4))
	require.NoError(t, err)
	assert.Equal(t, 5.0, w)
}

func TestWeightMonotonic(t *testing.T) {
	for attempts := 1; attempts <= 50; attempts++ {
		for a := 0; a <= attempts; a++ {
			for b := a + 1; b <= attempts; b++ {
				wa := WeightFor(model.StatRecord{Attempts: attempts, Successes: a}, DefaultFloor)
				wb := WeightFor(model.StatRecord{Attempts: attempts, Successes: b}, DefaultFloor)
				if wa <= wb {
					t.Fatalf("attempts=%d: weight(%d)=%v not above weight(%d)=%v", attempts, a, wa, b, wb)
				}
				assert.Less(t, wa, NeverTrainedWeight)
			}
		}
	}
}

func TestWeightFlatAtFloor(t *testing.T) {
	nearly := WeightFor(model.StatRecord{Attempts: 200, Successes: 199}, DefaultFloor)
	perfect := WeightFor(model.StatRecord{Attempts: 200, Successes: 200}, DefaultFloor)
	assert.Equal(t, DefaultFloor, nearly)
	assert.Equal(t, DefaultFloor, perfect)

	prev := NeverTrainedWeight
	for s := 0; s <= 200; s++ {
		w := WeightFor(model.StatRecord{Attempts: 200, Successes: s}, DefaultFloor)
		assert.LessOrEqual(t, w, prev, "successes=%d", s)
		assert.GreaterOrEqual(t, w, DefaultFloor)
		prev = w
	}
}

func TestNewRejectsBadFloor(t *testing.T) {
	for _, floor := range []float64{0, -1, 11} {
		_, err := New(newMemStore(), WithFloor(floor))
		assert.ErrorIs(t, err, ErrInvalidFloor)
	}
}

func TestRecordAnswer(t *testing.T) {
	ctx := context.Background()
	l, st := newTestLedger(t)
	item := model.DrillItem{
		{Prefix: "n", Ending: "i", Tone: 3},
		{Prefix: "h", Ending: "ao", Tone: 3},
	}
	require.NoError(t, l.RecordAnswer(ctx, item, false))
	assert.Equal(t, 1, st.writes, "one read-modify-write cycle")

	assert.Equal(t, 2, findRecord(t, l, model.ToneKey(3)).Attempts)
	assert.Equal(t, 1, findRecord(t, l, model.PrefixKey("n")).Attempts)
	assert.Equal(t, 1, findRecord(t, l, model.UnitKey(item[1])).Attempts)
	combo := findRecord(t, l, model.CombinationKey(item))
	assert.Equal(t, "ni_3+hao_3", combo.Key.Value)
	assert.Equal(t, 1, combo.Attempts)

	records, err := l.Records(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 8)
}

func TestRecordAnswerSingleUnitHasNoCombination(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLedger(t)
	require.NoError(t, l.RecordAnswer(ctx, model.DrillItem{{Prefix: "m", Ending: "a", Tone: 1}}, true))
	rows, err := l.Query(ctx, Query{Classes: []model.ComponentClass{model.ClassCombination}})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestResetAll(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLedger(t)
	require.NoError(t, l.Update(ctx, model.ToneKey(1), true))
	require.NoError(t, l.ResetAll(ctx))
	records, err := l.Records(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)
	w, err := l.Weight(ctx, model.ToneKey(1))
	require.NoError(t, err)
	assert.Equal(t, NeverTrainedWeight, w)
}

func TestStorageErrors(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("disk full")
	l, err := New(failingStore{err: boom})
	require.NoError(t, err)

	err = l.Update(ctx, model.ToneKey(1), true)
	assert.ErrorIs(t, err, ErrStorage)
	assert.ErrorIs(t, err, boom)

	_, err = l.Weight(ctx, model.ToneKey(1))
	assert.ErrorIs(t, err, ErrStorage)
	assert.ErrorIs(t, l.ResetAll(ctx), ErrStorage)
	_, err = l.Query(ctx, Query{})
	assert.ErrorIs(t, err, ErrStorage)
}

func TestSnapshotReadsOnce(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLedger(t)
	require.NoError(t, l.Update(ctx, model.ToneKey(2), true))
	require.NoError(t, l.Update(ctx, model.ToneKey(2), false))
	snap, err := l.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 50.0, snap.Weight(model.ToneKey(2)))
	assert.Equal(t, NeverTrainedWeight, snap.Weight(model.ToneKey(5)))

	var nilSnap *Snapshot
	assert.Equal(t, NeverTrainedWeight, nilSnap.Weight(model.ToneKey(2)))
}
