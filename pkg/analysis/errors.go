package analysis

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	ErrNilGraph      = errors.New("graph is nil")
	ErrStagePanicked = errors.New("analysis stage panicked")
)

// AnalysisError describes a failed analysis run.
type AnalysisError struct {
	Op    string // Operation that failed (e.g., "AnalyzeGraph")
	Stage string // Stage name, or "options" for precondition failures
	Cause error  // Underlying error
}

// Error implements the error interface.
func (e *AnalysisError) Error() string {
	if e.Stage != "" {
		return fmt.Sprintf("%s (stage %s): %v", e.Op, e.Stage, e.Cause)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *AnalysisError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target error matches this error's cause.
func (e *AnalysisError) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}
