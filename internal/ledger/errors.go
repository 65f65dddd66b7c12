package ledger

import "errors"

// Sentinel errors for the ledger package.
var (
	ErrStorage      = errors.New("ledger: storage failure")
	ErrInvalidFloor = errors.New("ledger: weight floor out of range")
)
