package invaders

import (
	"errors"
	"fmt"
	"math"
)

// ErrContract marks a caller or state-machine bug: a bad frame delta, a ragged
// alien grid, or a wave operation with no wave in play. These are never
// recoverable at runtime.
var ErrContract = errors.New("invaders: contract violation")

func checkDelta(dt float64) error {
	if math.IsNaN(dt) || math.IsInf(dt, 0) || dt < 0 {
		return fmt.Errorf("frame delta %v: %w", dt, ErrContract)
	}
	return nil
}
