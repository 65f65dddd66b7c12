package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/verte-zerg/tonedrill/internal/ledger"
	"github.com/verte-zerg/tonedrill/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "data", "tonedrill.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func TestRecordsRoundTrip(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	empty, err := st.ReadRecords(ctx, ledger.StatisticsRecord)
	if err != nil {
		t.Fatalf("read empty: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected empty collection, got %d", len(empty))
	}

	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	records := []model.StatRecord{
		{Key: model.ToneKey(3), Attempts: 4, Successes: 1, SuccessRate: 25, LastTrainedAt: at},
		{Key: model.PrefixKey(""), Attempts: 1, Successes: 1, SuccessRate: 100, LastTrainedAt: at},
		{Key: model.CombinationKey([]model.PhoneticUnit{{Prefix: "n", Ending: "i", Tone: 3}, {Prefix: "h", Ending: "ao", Tone: 3}}), Attempts: 2, LastTrainedAt: at},
	}
	if err := st.WriteRecords(ctx, ledger.StatisticsRecord, records); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := st.ReadRecords(ctx, ledger.StatisticsRecord)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(got) != len(records) {
		t.Fatalf("expected %d records, got %d", len(records), len(got))
	}
	for i := range records {
		if got[i].Key != records[i].Key || got[i].Attempts != records[i].Attempts || got[i].Successes != records[i].Successes {
			t.Fatalf("record %d: expected %+v, got %+v", i, records[i], got[i])
		}
		if !got[i].LastTrainedAt.Equal(at) {
			t.Fatalf("record %d: unexpected time %v", i, got[i].LastTrainedAt)
		}
	}

	if err := st.WriteRecords(ctx, ledger.StatisticsRecord, records[:1]); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	got, err = st.ReadRecords(ctx, ledger.StatisticsRecord)
	if err != nil {
		t.Fatalf("read after rewrite: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected collection to be replaced, got %d records", len(got))
	}

	if err := st.Clear(ctx, ledger.StatisticsRecord); err != nil {
		t.Fatalf("clear: %v", err)
	}
	got, err = st.ReadRecords(ctx, ledger.StatisticsRecord)
	if err != nil {
		t.Fatalf("read after clear: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty after clear, got %d", len(got))
	}
}

func TestLedgerOverStore(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	l, err := ledger.New(st)
	if err != nil {
		t.Fatalf("ledger: %v", err)
	}
	item := model.DrillItem{{Prefix: "m", Ending: "a", Tone: 3}, {Prefix: "", Ending: "a", Tone: 1}}
	if err := l.RecordAnswer(ctx, item, false); err != nil {
		t.Fatalf("record answer: %v", err)
	}
	w, err := l.Weight(ctx, model.ToneKey(3))
	if err != nil {
		t.Fatalf("weight: %v", err)
	}
	if w != 100 {
		t.Fatalf("expected weight 100 after one miss, got %v", w)
	}
	w, err = l.Weight(ctx, model.ToneKey(2))
	if err != nil {
		t.Fatalf("weight: %v", err)
	}
	if w != ledger.NeverTrainedWeight {
		t.Fatalf("expected untrained weight, got %v", w)
	}
}

func TestSessionsHistory(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	start := time.Unix(0, 0).UTC()
	for i := 0; i < 5; i++ {
		sess := model.Session{
			RunID:   "run-1",
			Units:   model.DrillItem{{Prefix: "", Ending: "e", Tone: i%5 + 1}, {Prefix: "zh", Ending: "ong", Tone: 1}},
			Correct: i%2 == 0,
			At:      start.Add(time.Duration(i) * time.Second),
		}
		if _, err := st.InsertSession(ctx, sess); err != nil {
			t.Fatalf("insert session %d: %v", i, err)
		}
	}

	recent, err := st.ListSessions(ctx, 3)
	if err != nil {
		t.Fatalf("list sessions: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("expected 3 sessions, got %d", len(recent))
	}
	if recent[0].Units[0].Tone != 3 || recent[2].Units[0].Tone != 5 {
		t.Fatalf("expected oldest-first window of the latest sessions, got %v", recent)
	}
	if !recent[0].Correct || recent[1].Correct {
		t.Fatalf("unexpected correctness flags: %v %v", recent[0].Correct, recent[1].Correct)
	}
	if recent[0].Units[1] != (model.PhoneticUnit{Prefix: "zh", Ending: "ong", Tone: 1}) {
		t.Fatalf("unexpected unit: %v", recent[0].Units[1])
	}

	if err := st.ClearSessions(ctx); err != nil {
		t.Fatalf("clear sessions: %v", err)
	}
	all, err := st.ListSessions(ctx, 0)
	if err != nil {
		t.Fatalf("list after clear: %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("expected empty history, got %d", len(all))
	}
}

func TestSessionsCapped(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	for i := 0; i < MaxSessions+5; i++ {
		sess := model.Session{RunID: "r", Units: model.DrillItem{{Ending: "a", Tone: 1}}, At: time.Unix(int64(i), 0)}
		if _, err := st.InsertSession(ctx, sess); err != nil {
			t.Fatalf("insert %d: %v", i, err)
		}
	}
	all, err := st.ListSessions(ctx, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != MaxSessions {
		t.Fatalf("expected %d sessions, got %d", MaxSessions, len(all))
	}
	if all[0].At.Unix() != 5 {
		t.Fatalf("expected oldest entries trimmed, first at %v", all[0].At.Unix())
	}
}

func TestDecodeUnitsRejectsGarbage(t *testing.T) {
	if _, err := DecodeUnits("ma_3"); err == nil {
		t.Fatalf("expected error for malformed unit")
	}
	if _, err := DecodeUnits("m-a-x"); err == nil {
		t.Fatalf("expected error for bad tone")
	}
	units, err := DecodeUnits(EncodeUnits(model.DrillItem{{Prefix: "", Ending: "er", Tone: 2}}))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if units[0].Prefix != "" || units[0].Ending != "er" || units[0].Tone != 2 {
		t.Fatalf("unexpected units %v", units)
	}
}
