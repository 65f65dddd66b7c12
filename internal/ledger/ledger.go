// Package ledger keeps per-component attempt counts and derives training weights.
package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/verte-zerg/tonedrill/internal/model"
)

// StatisticsRecord is the record collection name used in the store.
const StatisticsRecord = "statistics"

// RecordStore persists whole record collections by name.
type RecordStore interface {
	ReadRecords(ctx context.Context, name string) ([]model.StatRecord, error)
	WriteRecords(ctx context.Context, name string, records []model.StatRecord) error
	Clear(ctx context.Context, name string) error
}

// Ledger is the authoritative record of per-component performance.
// It is not safe for concurrent writers; callers serialize updates.
type Ledger struct {
	store RecordStore
	floor float64
	now   func() time.Time
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithFloor sets the minimum weight of a trained component.
func WithFloor(floor float64) Option {
	return func(l *Ledger) {
		l.floor = floor
	}
}

// WithClock replaces time.Now for LastTrainedAt stamps.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) {
		l.now = now
	}
}

// New returns a Ledger backed by store.
func New(store RecordStore, opts ...Option) (*Ledger, error) {
	l := &Ledger{store: store, floor: DefaultFloor, now: time.Now}
	for _, opt := range opts {
		opt(l)
	}
	if l.floor <= 0 || l.floor > MaxFloor {
		return nil, fmt.Errorf("%w: %v not in (0, %v]", ErrInvalidFloor, l.floor, MaxFloor)
	}
	return l, nil
}

// Floor returns the configured weight floor.
func (l *Ledger) Floor() float64 {
	return l.floor
}

// Update records one answer for key.
func (l *Ledger) Update(ctx context.Context, key model.ComponentKey, correct bool) error {
	return l.apply(ctx, []model.ComponentKey{key}, correct)
}

// RecordAnswer records one answer for every component of item: prefix,
// ending, tone and unit of each unit, plus the combination when the item
// has more than one unit.
func (l *Ledger) RecordAnswer(ctx context.Context, item model.DrillItem, correct bool) error {
	if len(item) == 0 {
		return nil
	}
	keys := make([]model.ComponentKey, 0, len(item)*4+1)
	for _, u := range item {
		keys = append(keys,
			model.PrefixKey(u.Prefix),
			model.EndingKey(u.Ending),
			model.ToneKey(u.Tone),
			model.UnitKey(u),
		)
	}
	if len(item) > 1 {
		keys = append(keys, model.CombinationKey(item))
	}
	return l.apply(ctx, keys, correct)
}

func (l *Ledger) apply(ctx context.Context, keys []model.ComponentKey, correct bool) error {
	records, err := l.read(ctx)
	if err != nil {
		return err
	}
	index := make(map[model.ComponentKey]int, len(records))
	for i, rec := range records {
		index[rec.Key] = i
	}
	now := l.now()
	for _, key := range keys {
		i, ok := index[key]
		if !ok {
			records = append(records, model.StatRecord{Key: key})
			i = len(records) - 1
			index[key] = i
		}
		rec := &records[i]
		rec.Attempts++
		if correct {
			rec.Successes++
		}
		rec.SuccessRate = SuccessRate(rec.Attempts, rec.Successes)
		rec.LastTrainedAt = now
	}
	if err := l.store.WriteRecords(ctx, StatisticsRecord, records); err != nil {
		return fmt.Errorf("%w: failed to write statistics: %w", ErrStorage, err)
	}
	return nil
}

// Weight returns the training weight for key.
func (l *Ledger) Weight(ctx context.Context, key model.ComponentKey) (float64, error) {
	snap, err := l.Snapshot(ctx)
	if err != nil {
		return 0, err
	}
	return snap.Weight(key), nil
}

// Snapshot reads the ledger once and returns its weight table.
func (l *Ledger) Snapshot(ctx context.Context) (*Snapshot, error) {
	records, err := l.read(ctx)
	if err != nil {
		return nil, err
	}
	return newSnapshot(records, l.floor), nil
}

// Records returns every record in insertion order.
func (l *Ledger) Records(ctx context.Context) ([]model.StatRecord, error) {
	return l.read(ctx)
}

// ResetAll clears the whole record collection.
func (l *Ledger) ResetAll(ctx context.Context) error {
	if err := l.store.Clear(ctx, StatisticsRecord); err != nil {
		return fmt.Errorf("%w: failed to clear statistics: %w", ErrStorage, err)
	}
	return nil
}

func (l *Ledger) read(ctx context.Context) ([]model.StatRecord, error) {
	records, err := l.store.ReadRecords(ctx, StatisticsRecord)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read statistics: %w", ErrStorage, err)
	}
	return records, nil
}
