package ledger

import (
	"math"

	"github.com/verte-zerg/tonedrill/internal/model"
)

const (
	// NeverTrainedWeight is the weight of a component with no attempts.
	NeverTrainedWeight = 1000.0
	// DefaultFloor is the smallest weight a trained component can have.
	DefaultFloor = 1.0
	// MaxFloor bounds the configurable floor.
	MaxFloor = 10.0
)

// SuccessRate returns successes/attempts as a percentage, 0 when untrained.
func SuccessRate(attempts, successes int) float64 {
	if attempts <= 0 {
		return 0
	}
	return float64(successes) / float64(attempts) * 100
}

// WeightFor derives the training weight of a record.
func WeightFor(rec model.StatRecord, floor float64) float64 {
	if rec.Attempts <= 0 {
		return NeverTrainedWeight
	}
	return math.Max(100-SuccessRate(rec.Attempts, rec.Successes), floor)
}

// Snapshot is a read-only weight table taken from one ledger read.
type Snapshot struct {
	floor   float64
	weights map[model.ComponentKey]float64
}

func newSnapshot(records []model.StatRecord, floor float64) *Snapshot {
	s := &Snapshot{floor: floor, weights: make(map[model.ComponentKey]float64, len(records))}
	for _, rec := range records {
		s.weights[rec.Key] = WeightFor(rec, floor)
	}
	return s
}

// Weight returns the weight of key, NeverTrainedWeight when unseen.
func (s *Snapshot) Weight(key model.ComponentKey) float64 {
	if s == nil {
		return NeverTrainedWeight
	}
	if w, ok := s.weights[key]; ok {
		return w
	}
	return NeverTrainedWeight
}
