package generator

import "errors"

// Sentinel errors for the generator package.
// Use errors.Is to check: errors.Is(err, generator.ErrConfiguration)
var (
	// ErrConfiguration means the filters admit no lexicon unit.
	ErrConfiguration = errors.New("generator: no valid combinations with current filters")
	// ErrGeneration means no unit was produced despite a valid configuration.
	ErrGeneration = errors.New("generator: no units produced")
)
