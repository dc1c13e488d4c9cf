package algorithms

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidOptions is returned when an analyzer is called with options
// that violate its preconditions (negative counts, out-of-range factors).
var ErrInvalidOptions = errors.New("invalid options")

func invalidOptions(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidOptions, fmt.Sprintf(format, args...))
}

// round2 rounds to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
